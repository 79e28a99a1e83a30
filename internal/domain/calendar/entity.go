package calendar

import (
	"time"
)

type Source string

const (
	SourceUser     Source = "user"
	SourceExternal Source = "external"
)

// LeaveDay is a date-keyed calendar entry: either a user-entered leave day or
// an externally fetched event mapped onto a local calendar date. Purely a
// derived view; never the source of truth.
type LeaveDay struct {
	Date   string `json:"date"` // local calendar date, YYYY-MM-DD
	Reason string `json:"reason"`
	Source Source `json:"source"`
}

// EventTime is the calendar provider's start/end shape: either an all-day
// date or a timestamp qualified by a timezone name.
type EventTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

// ExternalEvent is a read-only event fetched from the calendar provider.
// Not persisted; re-fetched each session.
type ExternalEvent struct {
	ID      string    `json:"id,omitempty"`
	Subject string    `json:"subject"`
	Start   EventTime `json:"start"`
	End     EventTime `json:"end"`
}

// graph timestamps come without an offset ("2025-10-25T09:00:00.0000000")
// and carry the zone in a separate field.
var eventTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.9999999",
	"2006-01-02T15:04:05",
}

// LocalDateKey maps the event's start instant to a calendar date in the
// viewer's location. An all-day event's date field is used as-is; a
// timestamped event is converted from its own timezone to loc. Returns
// false when the event has neither start field or the timestamp is
// unparseable.
func (e ExternalEvent) LocalDateKey(loc *time.Location) (string, bool) {
	if e.Start.Date != "" {
		return e.Start.Date, true
	}
	if e.Start.DateTime == "" {
		return "", false
	}

	eventLoc := time.UTC
	if e.Start.TimeZone != "" {
		if l, err := time.LoadLocation(e.Start.TimeZone); err == nil {
			eventLoc = l
		}
	}

	for _, layout := range eventTimeLayouts {
		t, err := time.ParseInLocation(layout, e.Start.DateTime, eventLoc)
		if err == nil {
			return t.In(loc).Format("2006-01-02"), true
		}
	}
	return "", false
}

// StartKey is the event's raw start string, used only for sorting the
// upcoming-events listing.
func (e ExternalEvent) StartKey() string {
	if e.Start.DateTime != "" {
		return e.Start.DateTime
	}
	return e.Start.Date
}
