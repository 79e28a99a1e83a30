package calendar

import "context"

// Service builds the reconciled calendar view: locally stored leave plus
// read-only external events. External data is always best-effort; a failed
// fetch degrades the view, never the request.
type Service interface {
	// MonthView reconciles the given YYYY-MM month for the user. An empty
	// month means the current month.
	MonthView(ctx context.Context, userID string, month string) (MonthViewResponse, error)
	// Upcoming lists the user's next external events in start order.
	Upcoming(ctx context.Context, userID string, limit int) (UpcomingResponse, error)
}
