// Package dateutil provides the calendar arithmetic the simulation loop
// steps with. All functions are pure and preserve the input's location.
package dateutil

import "time"

// EndOfMonth returns the last calendar day of t's month, truncated to
// midnight.
func EndOfMonth(t time.Time) time.Time {
	// Day 0 of month+1 normalizes to the last day of month.
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location())
}

// NextMonthEnd returns the last calendar day of the month after t's month.
// Stepping with it keeps the period length at exactly one calendar month
// regardless of the starting day-of-month, including across December and
// leap-year February.
func NextMonthEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+2, 0, 0, 0, 0, 0, t.Location())
}

// MonthsBetween returns the number of whole calendar months from a to b,
// or 0 when b is not after a.
func MonthsBetween(a, b time.Time) int {
	if !b.After(a) {
		return 0
	}
	months := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if b.Day() < a.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}
