package analytics

import (
	"math"
	"sort"
	"time"

	"tenkhours/internal/timelog"
)

// FullHistory selects full-history mode in WeeklySeries: the series spans
// from the first matching session's week through the later of the last
// session's week and the current week.
const FullHistory = 0

// DefaultWindowWeeks is the fixed display window used for charts and the
// momentum score.
const DefaultWindowWeeks = 8

// WeeklySample is one ISO week of aggregated velocity: logged hours and
// session count, zero-filled for weeks with no activity. Derived fresh on
// every query, never persisted.
type WeeklySample struct {
	Week      string    `json:"week"`
	WeekStart time.Time `json:"week_start"`
	Hours     float64   `json:"hours"`
	Sessions  int       `json:"sessions"`
}

// round1 rounds to one decimal place, the display precision used for hours,
// slopes and growth percentages throughout.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// WeeklySeries computes the per-week (hours, sessions) series for the
// sessions counting toward the given activities.
//
// With windowWeeks > 0 the series holds exactly windowWeeks contiguous ISO
// weeks ending at the week containing now, zero-filled; contributions
// outside the window are discarded. With windowWeeks == FullHistory the
// series runs from the earliest matching session's week through the later
// of the latest session's week and the current week, again with no gaps.
//
// If no session matches the filter the result is nil: callers must treat
// that as insufficient data, not as a flat zero trend.
func WeeklySeries(sessions []timelog.Session, activityIDs []string, windowWeeks int, now time.Time) []WeeklySample {
	matched := timelog.FilterByActivities(sessions, activityIDs)
	if len(matched) == 0 {
		return nil
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].TimestampMs < matched[j].TimestampMs
	})

	currentWeek := ISOWeekOf(now)

	var first, last ISOWeek
	if windowWeeks > 0 {
		first = ISOWeekOf(currentWeek.Start().AddDate(0, 0, -7*(windowWeeks-1)))
		last = currentWeek
	} else {
		first = ISOWeekOf(matched[0].Time())
		last = ISOWeekOf(matched[len(matched)-1].Time())
		// Extend through the current week so an idle goal still shows
		// up-to-date zero weeks.
		if last.Before(currentWeek) {
			last = currentWeek
		}
	}

	// Enumerate the continuous week range, zero-filled.
	index := make(map[string]int)
	var series []WeeklySample
	for w := first; ; w = w.Next() {
		index[w.Key()] = len(series)
		series = append(series, WeeklySample{Week: w.Key(), WeekStart: w.Start()})
		if w == last {
			break
		}
	}

	// Fold matching sessions into their weeks, dropping anything outside
	// the enumerated range.
	for _, s := range matched {
		i, ok := index[ISOWeekOf(s.Time()).Key()]
		if !ok {
			continue
		}
		series[i].Hours += float64(s.DurationMinutes) / 60
		series[i].Sessions++
	}

	for i := range series {
		series[i].Hours = round1(series[i].Hours)
	}
	return series
}
