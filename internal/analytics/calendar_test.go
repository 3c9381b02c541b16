package analytics

import (
	"testing"
	"time"
)

func TestISOWeekOf_YearBoundaries(t *testing.T) {
	tests := []struct {
		name string
		time time.Time
		want ISOWeek
	}{
		// Verified against ISO-8601 reference calendar tables.
		{"dec 31 2020 is week 53 of 2020", time.Date(2020, 12, 31, 12, 0, 0, 0, time.UTC), ISOWeek{2020, 53}},
		{"jan 1 2021 is still 2020-W53", time.Date(2021, 1, 1, 12, 0, 0, 0, time.UTC), ISOWeek{2020, 53}},
		{"jan 5 2021 is week 1 of 2021", time.Date(2021, 1, 5, 12, 0, 0, 0, time.UTC), ISOWeek{2021, 1}},
		{"jan 4 is always week 1", time.Date(2022, 1, 4, 0, 0, 0, 0, time.UTC), ISOWeek{2022, 1}},
		{"dec 31 2018 is 2019-W01", time.Date(2018, 12, 31, 0, 0, 0, 0, time.UTC), ISOWeek{2019, 1}},
		{"jan 1 2017 is 2016-W52", time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC), ISOWeek{2016, 52}},
		{"mid-year sanity", time.Date(2021, 7, 7, 0, 0, 0, 0, time.UTC), ISOWeek{2021, 27}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ISOWeekOf(tc.time); got != tc.want {
				t.Errorf("ISOWeekOf(%v) = %v, want %v", tc.time, got, tc.want)
			}
		})
	}
}

func TestISOWeek_Key(t *testing.T) {
	if got := (ISOWeek{2021, 1}).Key(); got != "2021-W01" {
		t.Errorf("Key() = %q, want 2021-W01", got)
	}
	if got := (ISOWeek{2020, 53}).Key(); got != "2020-W53" {
		t.Errorf("Key() = %q, want 2020-W53", got)
	}
}

func TestISOWeek_Start(t *testing.T) {
	tests := []struct {
		week ISOWeek
		want time.Time
	}{
		{ISOWeek{2021, 1}, time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC)},
		{ISOWeek{2020, 53}, time.Date(2020, 12, 28, 0, 0, 0, 0, time.UTC)},
		{ISOWeek{2015, 1}, time.Date(2014, 12, 29, 0, 0, 0, 0, time.UTC)},
		{ISOWeek{2021, 27}, time.Date(2021, 7, 5, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range tests {
		got := tc.week.Start()
		if !got.Equal(tc.want) {
			t.Errorf("%v.Start() = %v, want %v", tc.week, got, tc.want)
		}
		if got.Weekday() != time.Monday {
			t.Errorf("%v.Start() is a %v, want Monday", tc.week, got.Weekday())
		}
	}
}

// TestISOWeek_RoundTrip exercises the inverse-mapping invariant: the start
// of a week must map back to that week, for every week of several years
// including a 53-week year (2020).
func TestISOWeek_RoundTrip(t *testing.T) {
	for _, year := range []int{2015, 2019, 2020, 2021, 2024, 2026} {
		lastWeek := 52
		// Years whose Jan 1 (or preceding leap year) pushes a 53rd week.
		if ISOWeekOf(time.Date(year, 12, 28, 0, 0, 0, 0, time.UTC)).Week == 53 {
			lastWeek = 53
		}
		for week := 1; week <= lastWeek; week++ {
			w := ISOWeek{Year: year, Week: week}
			if got := ISOWeekOf(w.Start()); got != w {
				t.Errorf("round trip failed: ISOWeekOf(%v.Start()) = %v", w, got)
			}
		}
	}
}

func TestISOWeek_Next(t *testing.T) {
	// Crossing a year boundary out of a 53-week year.
	if got := (ISOWeek{2020, 53}).Next(); got != (ISOWeek{2021, 1}) {
		t.Errorf("Next() = %v, want 2021-W01", got)
	}
	if got := (ISOWeek{2021, 1}).Next(); got != (ISOWeek{2021, 2}) {
		t.Errorf("Next() = %v, want 2021-W02", got)
	}
}

func TestParseWeekKey(t *testing.T) {
	w, err := ParseWeekKey("2020-W53")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w != (ISOWeek{2020, 53}) {
		t.Errorf("ParseWeekKey = %v", w)
	}

	for _, bad := range []string{"", "2020", "2020-W99", "garbage"} {
		if _, err := ParseWeekKey(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestISOWeek_Before(t *testing.T) {
	if !(ISOWeek{2020, 53}).Before(ISOWeek{2021, 1}) {
		t.Error("2020-W53 should be before 2021-W01")
	}
	if (ISOWeek{2021, 2}).Before(ISOWeek{2021, 1}) {
		t.Error("2021-W02 should not be before 2021-W01")
	}
}
