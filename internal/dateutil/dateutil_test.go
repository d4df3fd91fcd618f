package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEndOfMonth(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected time.Time
	}{
		{"mid-month", date(2024, time.September, 15), date(2024, time.September, 30)},
		{"already month end", date(2024, time.January, 31), date(2024, time.January, 31)},
		{"leap February", date(2024, time.February, 1), date(2024, time.February, 29)},
		{"non-leap February", date(2023, time.February, 10), date(2023, time.February, 28)},
		{"December", date(2024, time.December, 5), date(2024, time.December, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EndOfMonth(tt.input))
		})
	}
}

func TestNextMonthEnd(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected time.Time
	}{
		{"mid-month", date(2024, time.September, 15), date(2024, time.October, 31)},
		{"into leap February", date(2024, time.January, 31), date(2024, time.February, 29)},
		{"into non-leap February", date(2023, time.January, 31), date(2023, time.February, 28)},
		{"December to January rollover", date(2024, time.December, 31), date(2025, time.January, 31)},
		{"November to December", date(2024, time.November, 30), date(2024, time.December, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NextMonthEnd(tt.input))
		})
	}
}

func TestNextMonthEnd_Stepping(t *testing.T) {
	// Repeated stepping must stay on month ends and never skip a month.
	current := date(2024, time.September, 1)
	current = EndOfMonth(current)

	for i := 0; i < 48; i++ {
		next := NextMonthEnd(current)
		assert.Equal(t, next, EndOfMonth(next), "step %d should land on a month end", i)

		gap := (next.Year()-current.Year())*12 + int(next.Month()) - int(current.Month())
		assert.Equal(t, 1, gap, "step %d should advance exactly one month", i)
		current = next
	}
}

func TestMonthsBetween(t *testing.T) {
	assert.Equal(t, 0, MonthsBetween(date(2024, time.May, 1), date(2024, time.May, 1)))
	assert.Equal(t, 0, MonthsBetween(date(2024, time.May, 1), date(2024, time.April, 1)))
	assert.Equal(t, 12, MonthsBetween(date(2024, time.May, 1), date(2025, time.May, 1)))
	assert.Equal(t, 11, MonthsBetween(date(2024, time.May, 15), date(2025, time.May, 1)))
	assert.Equal(t, 360, MonthsBetween(date(2024, time.September, 1), date(2054, time.September, 1)))
}
