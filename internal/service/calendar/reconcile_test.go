package calendar

import (
	"testing"
	"time"

	"github.com/leaveport/leaveport-backend-go/internal/domain/calendar"
	"github.com/leaveport/leaveport-backend-go/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandLeaveRequests(t *testing.T) {
	t.Run("expands inclusive range", func(t *testing.T) {
		days := ExpandLeaveRequests([]leave.LeaveRequest{
			{ID: "a", Type: leave.LeaveTypeVacation, From: "2025-10-25", To: "2025-10-27", Reason: "trip"},
		})
		require.Len(t, days, 3)
		assert.Contains(t, days, "2025-10-25")
		assert.Contains(t, days, "2025-10-27")
		assert.Equal(t, calendar.SourceUser, days["2025-10-26"].Source)
		assert.Equal(t, "Vacation: trip", days["2025-10-26"].Reason)
	})

	t.Run("overlap keeps the first writer", func(t *testing.T) {
		// Newest first, like the stored collection.
		days := ExpandLeaveRequests([]leave.LeaveRequest{
			{ID: "new", Type: leave.LeaveTypeSick, From: "2025-10-26", To: "2025-10-26", Reason: "flu"},
			{ID: "old", Type: leave.LeaveTypeVacation, From: "2025-10-25", To: "2025-10-27", Reason: "trip"},
		})
		assert.Equal(t, "Sick: flu", days["2025-10-26"].Reason)
		assert.Equal(t, "Vacation: trip", days["2025-10-25"].Reason)
	})

	t.Run("malformed dates are skipped", func(t *testing.T) {
		days := ExpandLeaveRequests([]leave.LeaveRequest{
			{ID: "a", From: "garbage", To: "2025-10-27"},
			{ID: "b", From: "2025-10-27", To: "2025-10-25"},
		})
		assert.Empty(t, days)
	})
}

func TestMergeEvents(t *testing.T) {
	loc := time.UTC

	t.Run("user leave wins the date, events fill the gaps", func(t *testing.T) {
		days := map[string]calendar.LeaveDay{
			"2025-10-25": {Date: "2025-10-25", Reason: "Vacation: trip", Source: calendar.SourceUser},
		}
		MergeEvents(days, []calendar.ExternalEvent{
			{Subject: "Team offsite", Start: calendar.EventTime{Date: "2025-10-25"}},
			{Subject: "All hands", Start: calendar.EventTime{Date: "2025-10-26"}},
		}, loc)

		assert.Equal(t, calendar.SourceUser, days["2025-10-25"].Source)
		assert.Equal(t, "Vacation: trip", days["2025-10-25"].Reason)
		assert.Equal(t, calendar.SourceExternal, days["2025-10-26"].Source)
		assert.Equal(t, "All hands", days["2025-10-26"].Reason)
	})

	t.Run("timestamped event converts from its own timezone", func(t *testing.T) {
		days := map[string]calendar.LeaveDay{}
		// 23:00 in UTC on the 25th is already the 26th in Singapore.
		MergeEvents(days, []calendar.ExternalEvent{
			{Subject: "Late call", Start: calendar.EventTime{DateTime: "2025-10-25T23:00:00.0000000", TimeZone: "UTC"}},
		}, mustLoadLocation(t, "Asia/Singapore"))

		assert.Contains(t, days, "2025-10-26")
	})

	t.Run("event without a start is skipped", func(t *testing.T) {
		days := map[string]calendar.LeaveDay{}
		MergeEvents(days, []calendar.ExternalEvent{
			{Subject: "Broken"},
			{Subject: "Unparseable", Start: calendar.EventTime{DateTime: "not-a-time"}},
		}, loc)
		assert.Empty(t, days)
	})

	t.Run("idempotent across repeated merges", func(t *testing.T) {
		days := map[string]calendar.LeaveDay{}
		events := []calendar.ExternalEvent{
			{Subject: "All hands", Start: calendar.EventTime{Date: "2025-10-26"}},
		}
		MergeEvents(days, events, loc)
		MergeEvents(days, events, loc)
		assert.Len(t, days, 1)
	})
}

func mustLoadLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}
