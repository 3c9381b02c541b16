package analytics

import (
	"strings"
	"testing"
	"time"

	"tenkhours/internal/timelog"
)

func TestGoalProgress(t *testing.T) {
	goal := timelog.Goal{ID: "g1", TargetHours: 10, ActivityIDs: []string{"a"}}
	sessions := []timelog.Session{
		sessionAt("s1", "a", 300, time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)),
	}

	if got := GoalProgress(goal, sessions); got != 50 {
		t.Errorf("progress = %v, want 50", got)
	}
	if got := GoalProgress(timelog.Goal{TargetHours: 0}, sessions); got != 0 {
		t.Errorf("zero-target goal progress = %v, want 0", got)
	}
}

func TestCheckMilestones(t *testing.T) {
	now := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)
	goal := timelog.Goal{ID: "g1", Name: "Guitar"}

	fresh := CheckMilestones(goal, 60, nil, now)
	if len(fresh) != 2 {
		t.Fatalf("expected awards for 25 and 50, got %+v", fresh)
	}
	if fresh[0].Percentage != 25 || fresh[1].Percentage != 50 {
		t.Errorf("unexpected percentages: %+v", fresh)
	}

	// Already-awarded milestones are not repeated.
	existing := []timelog.Award{{GoalID: "g1", Percentage: 25}}
	fresh = CheckMilestones(goal, 60, existing, now)
	if len(fresh) != 1 || fresh[0].Percentage != 50 {
		t.Errorf("expected only the 50%% award, got %+v", fresh)
	}

	if got := CheckMilestones(goal, 10, nil, now); got != nil {
		t.Errorf("no milestone crossed, got %+v", got)
	}
}

func TestAwardMessage(t *testing.T) {
	for _, pct := range MilestonePercentages {
		msg := AwardMessage(pct, "Guitar")
		if !strings.Contains(msg, "Guitar") {
			t.Errorf("message for %d%% missing goal name: %q", pct, msg)
		}
	}
	if msg := AwardMessage(33, "Guitar"); !strings.Contains(msg, "33%") {
		t.Errorf("fallback message = %q", msg)
	}
}

func TestAwardProgress_NextMilestone(t *testing.T) {
	now := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)
	goal := timelog.Goal{ID: "g1", Name: "Guitar", TargetHours: 10, ActivityIDs: []string{"a"}}
	// 3.75h of 10h: 37.5% complete, halfway between the 25 and 50 bands.
	sessions := []timelog.Session{
		sessionAt("s1", "a", 225, now),
	}

	status := AwardProgress(goal, sessions, nil, now)
	if status.ProgressPercent != 37.5 {
		t.Errorf("progress = %v, want 37.5", status.ProgressPercent)
	}
	if status.NextMilestone != 50 {
		t.Errorf("next milestone = %d, want 50", status.NextMilestone)
	}
	if status.ProgressToNext != 50 {
		t.Errorf("progress to next = %v, want 50", status.ProgressToNext)
	}
	if len(status.NewAwards) != 1 || status.NewAwards[0].Percentage != 25 {
		t.Errorf("expected one new 25%% award, got %+v", status.NewAwards)
	}
}

func TestAwardProgress_Complete(t *testing.T) {
	now := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)
	goal := timelog.Goal{ID: "g1", TargetHours: 1, ActivityIDs: []string{"a"}}
	sessions := []timelog.Session{sessionAt("s1", "a", 90, now)}

	status := AwardProgress(goal, sessions, nil, now)
	if status.NextMilestone != 0 {
		t.Errorf("completed goal should have no next milestone, got %d", status.NextMilestone)
	}
	if len(status.NewAwards) != 4 {
		t.Errorf("expected all four awards, got %d", len(status.NewAwards))
	}
}
