package ledger

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ParseMonth parses a "YYYY-MM" selector. On any malformed or absent input
// it falls back to the year and month of now; it never fails. This leniency
// is deliberate: a bad month link on the dashboard should show the current
// month, not an error page.
func ParseMonth(param string, now time.Time) (year int, month time.Month) {
	year, month = now.Year(), now.Month()

	parts := strings.Split(param, "-")
	if len(parts) != 2 {
		return year, month
	}
	y, err := strconv.Atoi(parts[0])
	if err != nil || y < 1 {
		return year, month
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 1 || m > 12 {
		return year, month
	}
	return y, time.Month(m)
}

// MonthRange returns the half-open interval [start, end) covering the given
// month, in the given location.
func MonthRange(year int, month time.Month, loc *time.Location) (start, end time.Time) {
	start = time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}

// DayCell is a single calendar-grid cell. Nil cells pad the leading and
// trailing days that belong to neighbouring months.
type DayCell struct {
	Day     int             `json:"day"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// DayTotals maps a day of month (1-based) to its income/expense sums.
type DayTotals map[int]*DayCell

// CalendarWeeks shapes a month into week rows of 7 cells, Monday first,
// for calendar-grid rendering. Rows contain nil for days outside the month,
// so a month always yields between 4 and 6 rows.
func CalendarWeeks(year int, month time.Month, totals DayTotals) [][]*DayCell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	// time.Weekday is Sunday-based; shift so Monday == 0
	lead := (int(first.Weekday()) + 6) % 7

	weeks := make([][]*DayCell, 0, 6)
	week := make([]*DayCell, 7)
	col := lead
	for day := 1; day <= daysInMonth; day++ {
		cell := totals[day]
		if cell == nil {
			cell = &DayCell{Day: day}
		}
		week[col] = cell
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = make([]*DayCell, 7)
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}
