package calendar

import (
	"testing"
	"time"

	"github.com/leaveport/leaveport-backend-go/internal/domain/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthAnchorAndAddMonths(t *testing.T) {
	loc := time.UTC

	t.Run("anchor normalizes to the first", func(t *testing.T) {
		anchor := MonthAnchor(time.Date(2025, 10, 25, 14, 30, 0, 0, loc))
		assert.Equal(t, time.Date(2025, 10, 1, 0, 0, 0, 0, loc), anchor)
	})

	t.Run("navigation from Jan 31 cannot skip February", func(t *testing.T) {
		anchor := MonthAnchor(time.Date(2025, 1, 31, 0, 0, 0, 0, loc))
		next := AddMonths(anchor, 1)
		assert.Equal(t, time.February, next.Month())
		back := AddMonths(next, -1)
		assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, loc), back)
	})

	t.Run("year wrap", func(t *testing.T) {
		anchor := MonthAnchor(time.Date(2025, 12, 15, 0, 0, 0, 0, loc))
		assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, loc), AddMonths(anchor, 1))
		assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, loc), AddMonths(anchor, -12))
	})
}

func TestBuildMonthGrid(t *testing.T) {
	loc := time.UTC

	t.Run("October 2025 starts on Wednesday", func(t *testing.T) {
		anchor := time.Date(2025, 10, 1, 0, 0, 0, 0, loc)
		cells := BuildMonthGrid(anchor, "2025-10-25", nil)

		require.Zero(t, len(cells)%7, "grid is whole weeks")

		// Wed 1 Oct: two filler cells before it on a Monday-first row.
		assert.False(t, cells[0].InMonth)
		assert.False(t, cells[1].InMonth)
		assert.True(t, cells[2].InMonth)
		assert.Equal(t, 1, cells[2].Day)

		dayCells := 0
		for _, c := range cells {
			if c.InMonth {
				dayCells++
			}
		}
		assert.Equal(t, 31, dayCells)
	})

	t.Run("month starting on Monday has no leading filler", func(t *testing.T) {
		// September 2025 starts on a Monday.
		anchor := time.Date(2025, 9, 1, 0, 0, 0, 0, loc)
		cells := BuildMonthGrid(anchor, "", nil)
		assert.True(t, cells[0].InMonth)
		assert.Equal(t, 1, cells[0].Day)
		assert.Zero(t, len(cells)%7)
	})

	t.Run("month starting on Sunday gets six leading fillers", func(t *testing.T) {
		// June 2025 starts on a Sunday.
		anchor := time.Date(2025, 6, 1, 0, 0, 0, 0, loc)
		cells := BuildMonthGrid(anchor, "", nil)
		for i := 0; i < 6; i++ {
			assert.False(t, cells[i].InMonth)
		}
		assert.Equal(t, 1, cells[6].Day)
	})

	t.Run("leap February", func(t *testing.T) {
		anchor := time.Date(2024, 2, 1, 0, 0, 0, 0, loc)
		cells := BuildMonthGrid(anchor, "", nil)
		dayCells := 0
		for _, c := range cells {
			if c.InMonth {
				dayCells++
			}
		}
		assert.Equal(t, 29, dayCells)
	})

	t.Run("today highlight and leave attachment", func(t *testing.T) {
		anchor := time.Date(2025, 10, 1, 0, 0, 0, 0, loc)
		leaves := map[string]calendar.LeaveDay{
			"2025-10-06": {Date: "2025-10-06", Reason: "Vacation: family trip", Source: calendar.SourceUser},
		}
		cells := BuildMonthGrid(anchor, "2025-10-25", leaves)

		var today, withLeave int
		for _, c := range cells {
			if c.Today {
				today++
				assert.Equal(t, "2025-10-25", c.Date)
			}
			if c.Leave != nil {
				withLeave++
				assert.Equal(t, calendar.SourceUser, c.Leave.Source)
			}
		}
		assert.Equal(t, 1, today)
		assert.Equal(t, 1, withLeave)
	})
}
