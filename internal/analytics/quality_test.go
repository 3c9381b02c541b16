package analytics

import (
	"testing"
	"time"

	"tenkhours/internal/timelog"
)

func TestAnalyzeSessionQuality_NoData(t *testing.T) {
	q := AnalyzeSessionQuality(nil, []string{"a"}, nil)
	if q.AverageSessionMinutes != 0 || q.FocusDayAverage != 0 || q.NonFocusDayAverage != 0 {
		t.Errorf("expected all-zero quality, got %+v", q)
	}
	if len(q.UnusualSessions) != 0 {
		t.Errorf("expected no outliers, got %+v", q.UnusualSessions)
	}
}

func TestAnalyzeSessionQuality_Averages(t *testing.T) {
	// Day 1: two 30-min sessions (focus day by session count, 60 total).
	// Day 2: one 25-min session (neither threshold met).
	sessions := []timelog.Session{
		sessionAt("s1", "a", 30, time.Date(2021, 3, 8, 9, 0, 0, 0, time.UTC)),
		sessionAt("s2", "a", 30, time.Date(2021, 3, 8, 20, 0, 0, 0, time.UTC)),
		sessionAt("s3", "a", 25, time.Date(2021, 3, 9, 9, 0, 0, 0, time.UTC)),
	}

	q := AnalyzeSessionQuality(sessions, []string{"a"}, nil)
	if q.AverageSessionMinutes != 28 { // round(85/3)
		t.Errorf("average = %v, want 28", q.AverageSessionMinutes)
	}
	if q.FocusDayAverage != 60 {
		t.Errorf("focus day average = %v, want 60", q.FocusDayAverage)
	}
	if q.NonFocusDayAverage != 25 {
		t.Errorf("non-focus day average = %v, want 25", q.NonFocusDayAverage)
	}
}

func TestAnalyzeSessionQuality_LongSingleSessionIsFocusDay(t *testing.T) {
	// One 90-minute session: focus day via the cumulative-minutes threshold.
	sessions := []timelog.Session{
		sessionAt("s1", "a", 90, time.Date(2021, 3, 8, 9, 0, 0, 0, time.UTC)),
	}
	q := AnalyzeSessionQuality(sessions, []string{"a"}, nil)
	if q.FocusDayAverage != 90 || q.NonFocusDayAverage != 0 {
		t.Errorf("unexpected partition: %+v", q)
	}
}

func TestAnalyzeSessionQuality_BestWeek(t *testing.T) {
	series := []WeeklySample{
		{Week: "2021-W08", Hours: 2},
		{Week: "2021-W09", Hours: 5},
		{Week: "2021-W10", Hours: 1},
	}
	q := AnalyzeSessionQuality(nil, []string{"a"}, series)
	if q.BestWeek.Week != "2021-W09" {
		t.Errorf("best week = %s, want 2021-W09", q.BestWeek.Week)
	}
}

func TestAnalyzeSessionQuality_Outliers(t *testing.T) {
	base := time.Date(2021, 3, 8, 9, 0, 0, 0, time.UTC)
	// Average of 30,30,30,60,15 = 33. Ratios: 60/33=1.8 (normal),
	// 15/33=0.45 (short). Add a 70-min session -> recompute below.
	sessions := []timelog.Session{
		sessionAt("s1", "a", 30, base),
		sessionAt("s2", "a", 30, base.AddDate(0, 0, 1)),
		sessionAt("s3", "a", 30, base.AddDate(0, 0, 2)),
		sessionAt("s4", "a", 120, base.AddDate(0, 0, 3)),
		sessionAt("s5", "a", 15, base.AddDate(0, 0, 4)),
	}
	// Average = 225/5 = 45. 120/45 ≈ 2.67 -> long; 15/45 ≈ 0.33 -> short.
	q := AnalyzeSessionQuality(sessions, []string{"a"}, nil)
	if len(q.UnusualSessions) != 2 {
		t.Fatalf("expected 2 outliers, got %+v", q.UnusualSessions)
	}
	// Newest first: s5 (short) then s4 (long).
	if q.UnusualSessions[0].Type != "short" || q.UnusualSessions[0].DurationMinutes != 15 {
		t.Errorf("first outlier = %+v, want short 15m", q.UnusualSessions[0])
	}
	if q.UnusualSessions[1].Type != "long" || q.UnusualSessions[1].DurationMinutes != 120 {
		t.Errorf("second outlier = %+v, want long 120m", q.UnusualSessions[1])
	}
}

func TestAnalyzeSessionQuality_OutlierCap(t *testing.T) {
	base := time.Date(2021, 3, 1, 9, 0, 0, 0, time.UTC)
	var sessions []timelog.Session
	// Seven identical short spikes against a tall baseline: only the five
	// most recent outliers survive.
	for i := 0; i < 7; i++ {
		sessions = append(sessions, sessionAt("short", "a", 5, base.AddDate(0, 0, i)))
	}
	for i := 0; i < 7; i++ {
		sessions = append(sessions, sessionAt("base", "a", 60, base.AddDate(0, 0, 7+i)))
	}
	q := AnalyzeSessionQuality(sessions, []string{"a"}, nil)
	if len(q.UnusualSessions) > 5 {
		t.Errorf("outlier list must cap at 5, got %d", len(q.UnusualSessions))
	}
}

func TestAnalyzeSessionQuality_WindowedBySeries(t *testing.T) {
	// A session outside the series span must not contribute.
	series := []WeeklySample{
		{Week: "2021-W10", WeekStart: time.Date(2021, 3, 8, 0, 0, 0, 0, time.UTC), Hours: 1},
	}
	sessions := []timelog.Session{
		sessionAt("in", "a", 60, time.Date(2021, 3, 9, 0, 0, 0, 0, time.UTC)),
		sessionAt("out", "a", 600, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)),
	}
	q := AnalyzeSessionQuality(sessions, []string{"a"}, series)
	if q.AverageSessionMinutes != 60 {
		t.Errorf("average = %v, want 60 (out-of-window session excluded)", q.AverageSessionMinutes)
	}
}
