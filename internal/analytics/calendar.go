// Package analytics transforms raw time-log sessions into calendar-aligned
// aggregates, weekly velocity series, consistency streaks, momentum scores,
// and pacing projections. Every function is pure: results are recomputed
// from the inputs on each call, and anything clock-dependent takes an
// explicit now parameter so tests can freeze it.
package analytics

import (
	"fmt"
	"time"
)

// ISOWeek identifies a week in the ISO-8601 calendar. The year is the week's
// year, not the calendar year: Dec 31 can belong to week 1 of the next year
// and early January to week 52/53 of the previous one.
type ISOWeek struct {
	Year int
	Week int
}

// ISOWeekOf returns the ISO week containing the given instant, evaluated
// in UTC.
func ISOWeekOf(t time.Time) ISOWeek {
	year, week := t.UTC().ISOWeek()
	return ISOWeek{Year: year, Week: week}
}

// Key renders the week as "YYYY-Www", e.g. "2021-W01". Keys for the same
// year sort chronologically as strings.
func (w ISOWeek) Key() string {
	return fmt.Sprintf("%04d-W%02d", w.Year, w.Week)
}

// Start returns the UTC Monday beginning this week. ISO week 1 is the week
// containing Jan 4, so the anchor is the Monday of Jan 4's week, offset by
// whole weeks.
func (w ISOWeek) Start() time.Time {
	jan4 := time.Date(w.Year, time.January, 4, 0, 0, 0, 0, time.UTC)
	weekday := int(jan4.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday counts as day 7.
	}
	monday := jan4.AddDate(0, 0, -(weekday - 1))
	return monday.AddDate(0, 0, (w.Week-1)*7)
}

// Next returns the following ISO week, rolling across year boundaries.
func (w ISOWeek) Next() ISOWeek {
	return ISOWeekOf(w.Start().AddDate(0, 0, 7))
}

// Before reports whether w starts before other.
func (w ISOWeek) Before(other ISOWeek) bool {
	if w.Year != other.Year {
		return w.Year < other.Year
	}
	return w.Week < other.Week
}

// ParseWeekKey parses a "YYYY-Www" key back into an ISOWeek.
func ParseWeekKey(key string) (ISOWeek, error) {
	var w ISOWeek
	if _, err := fmt.Sscanf(key, "%d-W%d", &w.Year, &w.Week); err != nil {
		return ISOWeek{}, fmt.Errorf("invalid week key %q: %w", key, err)
	}
	if w.Week < 1 || w.Week > 53 {
		return ISOWeek{}, fmt.Errorf("invalid week key %q: week out of range", key)
	}
	return w, nil
}
