package calendar

// Cell is one box in the month grid. Leading and trailing filler cells have
// Day == 0 and no date.
type Cell struct {
	Date    string    `json:"date,omitempty"`
	Day     int       `json:"day,omitempty"`
	InMonth bool      `json:"in_month"`
	Today   bool      `json:"today"`
	Leave   *LeaveDay `json:"leave,omitempty"`
}

// MonthViewResponse is the reconciled month: the grid plus the date-keyed
// leave map it was painted from.
type MonthViewResponse struct {
	Month  string              `json:"month"` // YYYY-MM
	Cells  []Cell              `json:"cells"`
	Leaves map[string]LeaveDay `json:"leaves"`
	// ConsentURL is set at most once per session, when the external calendar
	// could not be read for lack of permission.
	ConsentURL string `json:"consent_url,omitempty"`
	// ExternalDegraded flags that external events are missing from this view
	// (no token, no permission, or a fetch failure). Local data is complete.
	ExternalDegraded bool `json:"external_degraded"`
}

// UpcomingResponse lists the next external events in start order.
type UpcomingResponse struct {
	Events []ExternalEvent `json:"events"`
}
