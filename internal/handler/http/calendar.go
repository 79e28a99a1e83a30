package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/leaveport/leaveport-backend-go/internal/domain/calendar"
	"github.com/leaveport/leaveport-backend-go/internal/domain/session"
	"github.com/leaveport/leaveport-backend-go/internal/handler/http/response"
)

type CalendarHandler interface {
	MonthView(w http.ResponseWriter, r *http.Request)
	Upcoming(w http.ResponseWriter, r *http.Request)
}

type CalendarHandlerImpl struct {
	calendarService calendar.Service
}

func NewCalendarHandler(calendarService calendar.Service) CalendarHandler {
	return &CalendarHandlerImpl{calendarService: calendarService}
}

// MonthView implements CalendarHandler. ?month=YYYY-MM selects the month;
// omitted means the current one.
func (h *CalendarHandlerImpl) MonthView(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		response.HandleError(w, session.ErrInvalidToken)
		return
	}

	view, err := h.calendarService.MonthView(r.Context(), userID, r.URL.Query().Get("month"))
	if err != nil {
		slog.Error("MonthView service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, view)
}

// Upcoming implements CalendarHandler.
func (h *CalendarHandlerImpl) Upcoming(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		response.HandleError(w, session.ErrInvalidToken)
		return
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	upcoming, err := h.calendarService.Upcoming(r.Context(), userID, limit)
	if err != nil {
		slog.Error("Upcoming service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, upcoming)
}
