package leave

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"time"
)

type LeaveType string

const (
	LeaveTypeVacation  LeaveType = "Vacation"
	LeaveTypeSick      LeaveType = "Sick"
	LeaveTypePersonal  LeaveType = "Personal"
	LeaveTypeUnpaid    LeaveType = "Unpaid"
	LeaveTypeHoliday   LeaveType = "Holiday"
	LeaveTypeMaternity LeaveType = "Maternity"
)

var leaveTypes = []LeaveType{
	LeaveTypeVacation, LeaveTypeSick, LeaveTypePersonal,
	LeaveTypeUnpaid, LeaveTypeHoliday, LeaveTypeMaternity,
}

func (t LeaveType) Valid() bool {
	for _, lt := range leaveTypes {
		if t == lt {
			return true
		}
	}
	return false
}

// LeaveRequest entity. Days is derived on submission, never user-supplied.
// From/To are local calendar dates in YYYY-MM-DD form.
type LeaveRequest struct {
	ID          string    `json:"id"`
	User        string    `json:"user"`
	Type        LeaveType `json:"type"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	Reason      string    `json:"reason"`
	Days        int       `json:"days"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// SchemaVersion is the current leave document schema. Version 0 is the legacy
// unversioned bare array.
const SchemaVersion = 1

// Document is the per-user leave request store: a versioned envelope around
// the full request collection, read and written whole.
type Document struct {
	SchemaVersion int            `json:"schema_version"`
	Requests      []LeaveRequest `json:"requests"`
}

// DecodeDocument parses a stored leave document, migrating the legacy
// unversioned bare-array form (version 0) to the current envelope on read.
func DecodeDocument(raw []byte) (Document, error) {
	if len(raw) == 0 {
		return Document{SchemaVersion: SchemaVersion}, nil
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err == nil && doc.SchemaVersion > 0 {
		if doc.SchemaVersion > SchemaVersion {
			return Document{}, fmt.Errorf("unsupported leave document schema version %d", doc.SchemaVersion)
		}
		return doc, nil
	}

	// Legacy form: a bare JSON array of requests.
	var requests []LeaveRequest
	if err := json.Unmarshal(raw, &requests); err != nil {
		return Document{}, fmt.Errorf("malformed leave document: %w", err)
	}
	return Document{SchemaVersion: SchemaVersion, Requests: requests}, nil
}

// InclusiveDays computes the whole-day span between two YYYY-MM-DD dates,
// inclusive of both endpoints, clamped to >= 0. Dates are compared as plain
// calendar dates so the viewer's timezone cannot skew the count.
func InclusiveDays(from, to string) int {
	fromDate, err := time.Parse("2006-01-02", from)
	if err != nil {
		return 0
	}
	toDate, err := time.Parse("2006-01-02", to)
	if err != nil {
		return 0
	}
	days := int(toDate.Sub(fromDate).Hours()/24) + 1
	if days < 0 {
		return 0
	}
	return days
}

const idSuffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewRequestID builds a time-based id with a random base36 suffix. Collision
// probability is not zero but is treated as negligible.
func NewRequestID(now time.Time) string {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%d-000000", now.UnixMilli())
	}
	for i := range b {
		b[i] = idSuffixAlphabet[int(b[i])%len(idSuffixAlphabet)]
	}
	return fmt.Sprintf("%d-%s", now.UnixMilli(), b)
}
