package analytics

import (
	"testing"
	"time"

	"tenkhours/internal/timelog"
)

// sessionAt builds a test session at the given UTC date.
func sessionAt(id string, activityID string, minutes int, date time.Time) timelog.Session {
	return timelog.Session{
		ID:              id,
		ActivityIDs:     []string{activityID},
		DurationMinutes: minutes,
		TimestampMs:     date.UnixMilli(),
	}
}

func TestAggregate_ByDay(t *testing.T) {
	sessions := []timelog.Session{
		sessionAt("s1", "a", 30, time.Date(2021, 3, 1, 9, 0, 0, 0, time.UTC)),
		sessionAt("s2", "a", 45, time.Date(2021, 3, 1, 20, 0, 0, 0, time.UTC)),
		sessionAt("s3", "a", 60, time.Date(2021, 3, 2, 9, 0, 0, 0, time.UTC)),
	}

	buckets := Aggregate(sessions, ByDay)
	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(buckets))
	}
	if buckets[0].Key != "2021-03-01" || buckets[0].Minutes != 75 || buckets[0].Sessions != 2 {
		t.Errorf("unexpected first bucket: %+v", buckets[0])
	}
	if buckets[1].Key != "2021-03-02" || buckets[1].Minutes != 60 {
		t.Errorf("unexpected second bucket: %+v", buckets[1])
	}
}

func TestAggregate_ByWeek_ISOKeys(t *testing.T) {
	// Dec 31 2020 and Jan 1 2021 share ISO week 2020-W53; Jan 5 2021 is
	// 2021-W01.
	sessions := []timelog.Session{
		sessionAt("s1", "a", 30, time.Date(2020, 12, 31, 12, 0, 0, 0, time.UTC)),
		sessionAt("s2", "a", 30, time.Date(2021, 1, 1, 12, 0, 0, 0, time.UTC)),
		sessionAt("s3", "a", 60, time.Date(2021, 1, 5, 12, 0, 0, 0, time.UTC)),
	}

	buckets := Aggregate(sessions, ByWeek)
	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d: %+v", len(buckets), buckets)
	}
	if buckets[0].Key != "2020-W53" || buckets[0].Minutes != 60 {
		t.Errorf("unexpected week bucket: %+v", buckets[0])
	}
	if buckets[1].Key != "2021-W01" || buckets[1].Minutes != 60 {
		t.Errorf("unexpected week bucket: %+v", buckets[1])
	}
}

func TestAggregate_MonthAndYear(t *testing.T) {
	sessions := []timelog.Session{
		sessionAt("s1", "a", 10, time.Date(2021, 1, 15, 0, 0, 0, 0, time.UTC)),
		sessionAt("s2", "a", 20, time.Date(2021, 2, 15, 0, 0, 0, 0, time.UTC)),
		sessionAt("s3", "a", 30, time.Date(2022, 2, 15, 0, 0, 0, 0, time.UTC)),
	}

	months := Aggregate(sessions, ByMonth)
	if len(months) != 3 || months[0].Key != "2021-01" || months[2].Key != "2022-02" {
		t.Errorf("unexpected month buckets: %+v", months)
	}

	years := Aggregate(sessions, ByYear)
	if len(years) != 2 || years[0].Key != "2021" || years[0].Minutes != 30 || years[1].Minutes != 30 {
		t.Errorf("unexpected year buckets: %+v", years)
	}
}

// TestAggregate_Conservation checks that bucket minutes sum to the input's
// total minutes at every granularity: no omission, no double counting.
func TestAggregate_Conservation(t *testing.T) {
	sessions := []timelog.Session{
		sessionAt("s1", "a", 17, time.Date(2020, 12, 31, 1, 0, 0, 0, time.UTC)),
		sessionAt("s2", "b", 23, time.Date(2021, 1, 1, 2, 0, 0, 0, time.UTC)),
		sessionAt("s3", "a", 41, time.Date(2021, 1, 5, 3, 0, 0, 0, time.UTC)),
		sessionAt("s4", "c", 59, time.Date(2021, 6, 30, 4, 0, 0, 0, time.UTC)),
		// Multi-activity session must still be counted exactly once.
		{ID: "s5", ActivityIDs: []string{"a", "b", "c"}, DurationMinutes: 100,
			TimestampMs: time.Date(2021, 7, 1, 0, 0, 0, 0, time.UTC).UnixMilli()},
	}
	want := 17 + 23 + 41 + 59 + 100

	for _, g := range []Granularity{ByDay, ByWeek, ByMonth, ByYear} {
		total := 0
		for _, b := range Aggregate(sessions, g) {
			total += b.Minutes
		}
		if total != want {
			t.Errorf("granularity %s: total %d, want %d", g, total, want)
		}
	}
}

// TestAggregate_FilterPurity checks that filtering before aggregation equals
// filtering out the other activities' buckets by construction: totals for
// the filtered set are identical either way.
func TestAggregate_FilterPurity(t *testing.T) {
	sessions := []timelog.Session{
		sessionAt("s1", "a", 30, time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)),
		sessionAt("s2", "b", 40, time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)),
		{ID: "s3", ActivityIDs: []string{"a", "b"}, DurationMinutes: 50,
			TimestampMs: time.Date(2021, 3, 2, 0, 0, 0, 0, time.UTC).UnixMilli()},
	}

	filtered := timelog.FilterByActivities(sessions, []string{"a"})
	buckets := Aggregate(filtered, ByDay)
	total := 0
	for _, b := range buckets {
		total += b.Minutes
	}
	if total != 80 {
		t.Errorf("filtered total = %d, want 80 (s1 + s3 once)", total)
	}
}

func TestAggregate_Empty(t *testing.T) {
	if got := Aggregate(nil, ByWeek); len(got) != 0 {
		t.Errorf("expected no buckets for empty input, got %+v", got)
	}
}

func TestSummarize_ReportsOrphans(t *testing.T) {
	activities := []timelog.Activity{{ID: "a"}}
	sessions := []timelog.Session{
		sessionAt("s1", "a", 30, time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)),
		sessionAt("s2", "deleted", 99, time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)),
	}

	sum := Summarize(sessions, activities, ByDay)
	if sum.Orphans != 1 {
		t.Errorf("expected 1 orphan, got %d", sum.Orphans)
	}
	if sum.TotalMinutes != 30 {
		t.Errorf("orphan minutes must not leak into totals: got %d", sum.TotalMinutes)
	}
	if sum.TotalSessions != 1 {
		t.Errorf("expected 1 session, got %d", sum.TotalSessions)
	}
}
