package calendar

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/leaveport/leaveport-backend-go/internal/domain/calendar"
	"github.com/leaveport/leaveport-backend-go/internal/domain/leave"
)

// ExpandLeaveRequests flattens stored leave requests into a date-keyed map,
// one entry per covered day. Requests are newest first and the first writer
// of a date wins, so overlapping ranges keep the newest request's label.
func ExpandLeaveRequests(requests []leave.LeaveRequest) map[string]calendar.LeaveDay {
	days := make(map[string]calendar.LeaveDay)
	for _, r := range requests {
		from, err := time.Parse("2006-01-02", r.From)
		if err != nil {
			continue
		}
		to, err := time.Parse("2006-01-02", r.To)
		if err != nil || to.Before(from) {
			continue
		}
		for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
			key := d.Format("2006-01-02")
			if _, ok := days[key]; ok {
				continue
			}
			days[key] = calendar.LeaveDay{
				Date:   key,
				Reason: fmt.Sprintf("%s: %s", r.Type, r.Reason),
				Source: calendar.SourceUser,
			}
		}
	}
	return days
}

// MergeEvents overlays external events onto an existing leave-day map.
// User-entered leave always wins a date conflict; events never overwrite.
// Events without a usable start are skipped with a log line, not an error.
func MergeEvents(days map[string]calendar.LeaveDay, events []calendar.ExternalEvent, loc *time.Location) {
	for _, ev := range events {
		key, ok := ev.LocalDateKey(loc)
		if !ok {
			slog.Warn("Skipping calendar event without usable start", "subject", ev.Subject)
			continue
		}
		if _, taken := days[key]; taken {
			continue
		}
		days[key] = calendar.LeaveDay{
			Date:   key,
			Reason: ev.Subject,
			Source: calendar.SourceExternal,
		}
	}
}
