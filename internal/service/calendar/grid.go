package calendar

import (
	"time"

	"github.com/leaveport/leaveport-backend-go/internal/domain/calendar"
)

// MonthAnchor normalizes any instant to the first day of its month. Month
// navigation always operates on anchors so day-of-month overflow (Jan 31 ->
// Feb) cannot skip a month.
func MonthAnchor(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// AddMonths steps an anchor by n months, staying on the 1st.
func AddMonths(anchor time.Time, n int) time.Time {
	return time.Date(anchor.Year(), anchor.Month()+time.Month(n), 1, 0, 0, 0, 0, anchor.Location())
}

// BuildMonthGrid lays the month out on a Monday-first week grid: leading
// filler for the weekday offset, one cell per day, trailing filler to a whole
// number of weeks.
func BuildMonthGrid(anchor time.Time, today string, leaves map[string]calendar.LeaveDay) []calendar.Cell {
	first := MonthAnchor(anchor)
	// Day zero of the next month is the last day of this one.
	daysInMonth := time.Date(first.Year(), first.Month()+1, 0, 0, 0, 0, 0, first.Location()).Day()

	// Go weeks start on Sunday; shift so Monday is column zero.
	offset := (int(first.Weekday()) + 6) % 7

	cells := make([]calendar.Cell, 0, offset+daysInMonth+6)
	for i := 0; i < offset; i++ {
		cells = append(cells, calendar.Cell{})
	}

	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, first.Location()).Format("2006-01-02")
		cell := calendar.Cell{
			Date:    date,
			Day:     day,
			InMonth: true,
			Today:   date == today,
		}
		if leave, ok := leaves[date]; ok {
			l := leave
			cell.Leave = &l
		}
		cells = append(cells, cell)
	}

	for len(cells)%7 != 0 {
		cells = append(cells, calendar.Cell{})
	}
	return cells
}
