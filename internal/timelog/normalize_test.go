package timelog

import "testing"

func TestNormalize_LegacyScalar(t *testing.T) {
	s := Session{ID: "s1", ActivityID: "guitar"}
	s.Normalize()
	if len(s.ActivityIDs) != 1 || s.ActivityIDs[0] != "guitar" {
		t.Errorf("expected ActivityIDs [guitar], got %v", s.ActivityIDs)
	}

	// Idempotent: a second call must not duplicate the reference.
	s.Normalize()
	if len(s.ActivityIDs) != 1 {
		t.Errorf("expected 1 id after repeated Normalize, got %d", len(s.ActivityIDs))
	}
}

func TestNormalize_ListWins(t *testing.T) {
	s := Session{ID: "s1", ActivityID: "old", ActivityIDs: []string{"new1", "new2"}}
	s.Normalize()
	if len(s.ActivityIDs) != 2 {
		t.Errorf("list shape should be untouched, got %v", s.ActivityIDs)
	}
}

func TestPrimaryActivity(t *testing.T) {
	tests := []struct {
		name    string
		session Session
		want    string
	}{
		{"list shape", Session{ActivityIDs: []string{"a", "b"}}, "a"},
		{"legacy scalar", Session{ActivityID: "a"}, "a"},
		{"list beats scalar", Session{ActivityID: "old", ActivityIDs: []string{"new"}}, "new"},
		{"orphan", Session{}, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.session.PrimaryActivity(); got != tc.want {
				t.Errorf("PrimaryActivity() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFilterByActivities(t *testing.T) {
	sessions := []Session{
		{ID: "s1", ActivityIDs: []string{"a"}},
		{ID: "s2", ActivityID: "b"},
		{ID: "s3", ActivityIDs: []string{"c", "a"}},
		{ID: "s4", ActivityIDs: []string{"d"}},
	}

	got := FilterByActivities(sessions, []string{"a", "b"})
	if len(got) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(got))
	}

	// A session matching via two filter ids appears exactly once.
	got = FilterByActivities([]Session{{ID: "s1", ActivityIDs: []string{"a", "b"}}}, []string{"a", "b"})
	if len(got) != 1 {
		t.Errorf("expected 1 match for multi-id session, got %d", len(got))
	}

	if got := FilterByActivities(sessions, nil); got != nil {
		t.Errorf("empty filter should match nothing, got %v", got)
	}
}

func TestFilterValid(t *testing.T) {
	activities := []Activity{{ID: "a"}, {ID: "b"}}
	sessions := []Session{
		{ID: "s1", ActivityIDs: []string{"a"}},
		{ID: "s2", ActivityID: "b"},
		{ID: "s3", ActivityIDs: []string{"deleted"}},
		{ID: "s4"}, // no reference at all
	}

	valid, orphans := FilterValid(sessions, activities)
	if len(valid) != 2 {
		t.Errorf("expected 2 valid sessions, got %d", len(valid))
	}
	if orphans != 2 {
		t.Errorf("expected 2 orphans, got %d", orphans)
	}
}

func TestSessionTime_UTC(t *testing.T) {
	s := Session{TimestampMs: 1609459200000} // 2021-01-01T00:00:00Z
	got := s.Time()
	if got.Year() != 2021 || got.Month() != 1 || got.Day() != 1 {
		t.Errorf("unexpected time %v", got)
	}
	if got.Location() != nil && got.Location().String() != "UTC" {
		t.Errorf("expected UTC, got %v", got.Location())
	}
}
