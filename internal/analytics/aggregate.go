package analytics

import (
	"sort"

	"tenkhours/internal/timelog"
)

// Granularity selects the calendar bucket size for aggregation.
type Granularity string

const (
	ByDay   Granularity = "day"
	ByWeek  Granularity = "week"
	ByMonth Granularity = "month"
	ByYear  Granularity = "year"
)

// Bucket is one calendar bucket of aggregated session time. Keys are
// "YYYY-MM-DD" for days, "YYYY-Www" for ISO weeks, "YYYY-MM" for months and
// "YYYY" for years, so buckets of one granularity sort chronologically as
// strings.
type Bucket struct {
	Key      string `json:"key"`
	Minutes  int    `json:"minutes"`
	Sessions int    `json:"sessions"`
}

// bucketKey returns the calendar key for a session under the granularity.
func bucketKey(s timelog.Session, g Granularity) string {
	t := s.Time()
	switch g {
	case ByDay:
		return t.Format("2006-01-02")
	case ByWeek:
		return ISOWeekOf(t).Key()
	case ByMonth:
		return t.Format("2006-01")
	default:
		return t.Format("2006")
	}
}

// Aggregate groups sessions into calendar buckets and sums their minutes.
// Buckets with no contributing sessions are omitted; zero-filling weekly
// series is WeeklySeries' job. Each session lands in exactly one bucket, so
// the bucket minutes always sum to the total minutes of the input.
func Aggregate(sessions []timelog.Session, g Granularity) []Bucket {
	totals := make(map[string]*Bucket)
	for _, s := range sessions {
		key := bucketKey(s, g)
		b, ok := totals[key]
		if !ok {
			b = &Bucket{Key: key}
			totals[key] = b
		}
		b.Minutes += s.DurationMinutes
		b.Sessions++
	}

	buckets := make([]Bucket, 0, len(totals))
	for _, b := range totals {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Key < buckets[j].Key
	})
	return buckets
}

// Summary is the whole-log aggregation view returned to callers, with the
// count of orphaned records excluded from every bucket.
type Summary struct {
	TotalSessions int      `json:"total_sessions"`
	TotalMinutes  int      `json:"total_minutes"`
	Orphans       int      `json:"orphans_excluded"`
	Buckets       []Bucket `json:"buckets"`
}

// Summarize validates sessions against the known activities, drops orphans
// (recording how many), and aggregates the rest at the given granularity.
func Summarize(sessions []timelog.Session, activities []timelog.Activity, g Granularity) Summary {
	valid, orphans := timelog.FilterValid(sessions, activities)

	sum := Summary{
		TotalSessions: len(valid),
		Orphans:       orphans,
		Buckets:       Aggregate(valid, g),
	}
	for _, s := range valid {
		sum.TotalMinutes += s.DurationMinutes
	}
	return sum
}
