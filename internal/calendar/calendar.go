// Package calendar converts between timestamps and the calendar dates records are grouped by.
package calendar

import (
	"fmt"
	"time"
)

// Layout is the textual form of a calendar date.
const Layout = "2006-01-02"

// Parse reads a YYYY-MM-DD date as midnight in loc.
func Parse(value string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return t, nil
}

// Format renders the calendar date of t.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Day truncates t to midnight of its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Range returns the half-open interval [start, end) covering the calendar date of t.
func Range(t time.Time) (time.Time, time.Time) {
	start := Day(t)
	return start, start.AddDate(0, 0, 1)
}

// LastDays returns the n calendar dates ending with today, oldest first.
func LastDays(today time.Time, n int) []time.Time {
	start := Day(today).AddDate(0, 0, -(n - 1))
	days := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		days = append(days, start.AddDate(0, 0, i))
	}
	return days
}
