package calendar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/leaveport/leaveport-backend-go/internal/domain/calendar"
	"github.com/leaveport/leaveport-backend-go/internal/domain/leave"
	"github.com/leaveport/leaveport-backend-go/internal/domain/session"
	"github.com/leaveport/leaveport-backend-go/internal/pkg/graph"
	"github.com/leaveport/leaveport-backend-go/internal/pkg/oauth"
)

// CalendarServiceImpl reconciles the locally stored leave document with
// read-only events from the external calendar. The local store is the only
// source of truth; external events are fetched per view and never persisted.
type CalendarServiceImpl struct {
	leaveStore  leave.StoreRepository
	sessionRepo session.Repository
	graphClient graph.Client
	oauthSvc    oauth.MicrosoftService
	loc         *time.Location

	// today is cached and rolled over at midnight by the refresher so the
	// highlight does not drift on long-lived views.
	mu    sync.RWMutex
	today string
}

func NewCalendarService(
	leaveStore leave.StoreRepository,
	sessionRepo session.Repository,
	graphClient graph.Client,
	oauthSvc oauth.MicrosoftService,
	loc *time.Location,
) *CalendarServiceImpl {
	return &CalendarServiceImpl{
		leaveStore:  leaveStore,
		sessionRepo: sessionRepo,
		graphClient: graphClient,
		oauthSvc:    oauthSvc,
		loc:         loc,
		today:       time.Now().In(loc).Format("2006-01-02"),
	}
}

// RefreshToday recomputes the cached today key. Wired to the midnight
// refresher.
func (s *CalendarServiceImpl) RefreshToday(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.today = time.Now().In(s.loc).Format("2006-01-02")
}

func (s *CalendarServiceImpl) todayKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.today
}

// MonthView implements calendar.Service.
func (s *CalendarServiceImpl) MonthView(ctx context.Context, userID string, month string) (calendar.MonthViewResponse, error) {
	anchor, err := s.parseMonth(month)
	if err != nil {
		return calendar.MonthViewResponse{}, err
	}

	doc, err := s.leaveStore.Load(ctx, userID)
	if err != nil {
		return calendar.MonthViewResponse{}, fmt.Errorf("failed to load leave document: %w", err)
	}
	days := ExpandLeaveRequests(doc.Requests)

	resp := calendar.MonthViewResponse{
		Month:  anchor.Format("2006-01"),
		Leaves: days,
	}

	events, consentURL, degraded := s.fetchEvents(ctx, userID)
	resp.ConsentURL = consentURL
	resp.ExternalDegraded = degraded
	MergeEvents(days, events, s.loc)

	resp.Cells = BuildMonthGrid(anchor, s.todayKey(), days)
	return resp, nil
}

// Upcoming implements calendar.Service.
func (s *CalendarServiceImpl) Upcoming(ctx context.Context, userID string, limit int) (calendar.UpcomingResponse, error) {
	events, _, _ := s.fetchEvents(ctx, userID)

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartKey() < events[j].StartKey()
	})

	today := s.todayKey()
	upcoming := make([]calendar.ExternalEvent, 0, limit)
	for _, ev := range events {
		key, ok := ev.LocalDateKey(s.loc)
		if !ok || key < today {
			continue
		}
		upcoming = append(upcoming, ev)
		if limit > 0 && len(upcoming) >= limit {
			break
		}
	}
	return calendar.UpcomingResponse{Events: upcoming}, nil
}

// fetchEvents pulls external events for the user's active session. Every
// failure path degrades to an empty event list: no session, no provider
// token, missing permission, or a provider outage.
func (s *CalendarServiceImpl) fetchEvents(ctx context.Context, userID string) (events []calendar.ExternalEvent, consentURL string, degraded bool) {
	sess, err := s.sessionRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, session.ErrSessionNotFound) {
			slog.Warn("Failed to look up session for calendar fetch", "user_id", userID, "error", err)
		}
		return nil, "", true
	}
	if sess.ProviderToken == nil || *sess.ProviderToken == "" {
		return nil, "", true
	}

	// Without the calendar scope the call is known to fail, so skip it and
	// go straight to the consent offer.
	if !sess.HasScope(s.oauthSvc.CalendarScope()) {
		return nil, s.offerConsent(ctx, sess.ID), true
	}

	events, err = s.graphClient.ListEvents(ctx, *sess.ProviderToken)
	if err == nil {
		return events, "", false
	}

	if errors.Is(err, graph.ErrConsentRequired) {
		// The grant can be revoked out of band; a rejected call is treated
		// like a missing scope.
		return nil, s.offerConsent(ctx, sess.ID), true
	}

	slog.Warn("External calendar fetch failed", "user_id", userID, "error", err)
	return nil, "", true
}

// offerConsent records that re-consent was requested for the session and
// returns the consent route the first time only; after that the view just
// stays local-only.
func (s *CalendarServiceImpl) offerConsent(ctx context.Context, sessionID string) string {
	already, err := s.sessionRepo.MarkConsentRequested(ctx, sessionID)
	if err != nil {
		slog.Warn("Failed to record consent request", "session_id", sessionID, "error", err)
		return ""
	}
	if already {
		return ""
	}
	return session.ConsentRoute
}

func (s *CalendarServiceImpl) parseMonth(month string) (time.Time, error) {
	if month == "" {
		return MonthAnchor(time.Now().In(s.loc)), nil
	}
	t, err := time.ParseInLocation("2006-01", month, s.loc)
	if err != nil {
		return time.Time{}, calendar.ErrInvalidMonth
	}
	return MonthAnchor(t), nil
}
