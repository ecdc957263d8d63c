package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC)

func TestParseMonthValid(t *testing.T) {
	year, month := ParseMonth("2026-01", testNow)
	assert.Equal(t, 2026, year)
	assert.Equal(t, time.January, month)
}

func TestParseMonthFallsBackToNow(t *testing.T) {
	for _, param := range []string{"", "2026", "2026-13", "2026-00", "garbage", "2026-1-1", "20a6-01", "2026-xx"} {
		year, month := ParseMonth(param, testNow)
		assert.Equal(t, 2026, year, "param %q", param)
		assert.Equal(t, time.March, month, "param %q", param)
	}
}

func TestMonthRange(t *testing.T) {
	start, end := MonthRange(2026, time.December, time.UTC)
	assert.Equal(t, time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestCalendarWeeksShape(t *testing.T) {
	// June 2026 starts on a Monday and has 30 days: exactly 5 rows, no
	// leading padding, 5 trailing nil cells.
	weeks := CalendarWeeks(2026, time.June, nil)
	assert.Len(t, weeks, 5)
	assert.NotNil(t, weeks[0][0])
	assert.Equal(t, 1, weeks[0][0].Day)
	assert.Equal(t, 30, weeks[4][1].Day)
	for col := 2; col < 7; col++ {
		assert.Nil(t, weeks[4][col])
	}

	// February 2027 starts on a Monday and has 28 days: 4 full rows.
	weeks = CalendarWeeks(2027, time.February, nil)
	assert.Len(t, weeks, 4)
	assert.Equal(t, 28, weeks[3][6].Day)

	// August 2026 starts on a Saturday and has 31 days: 6 rows with
	// 5 leading nil cells.
	weeks = CalendarWeeks(2026, time.August, nil)
	assert.Len(t, weeks, 6)
	for col := 0; col < 5; col++ {
		assert.Nil(t, weeks[0][col])
	}
	assert.Equal(t, 1, weeks[0][5].Day)
	assert.Equal(t, 31, weeks[5][0].Day)
}

func TestCalendarWeeksCarriesTotals(t *testing.T) {
	totals := DayTotals{
		3: {Day: 3, Income: amt("1000"), Expense: amt("250")},
	}
	weeks := CalendarWeeks(2026, time.June, totals)
	cell := weeks[0][2] // June 3rd 2026 is a Wednesday
	assert.Equal(t, 3, cell.Day)
	assert.True(t, amt("1000").Equal(cell.Income))
	assert.True(t, amt("250").Equal(cell.Expense))

	// untouched days come back zeroed, not nil
	assert.True(t, weeks[0][3].Income.IsZero())
}
