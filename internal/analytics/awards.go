package analytics

import (
	"fmt"
	"time"

	"tenkhours/internal/timelog"
)

// MilestonePercentages are the goal-progress milestones that earn awards.
var MilestonePercentages = []int{25, 50, 75, 100}

// AwardStatus summarizes a goal's milestone standing: overall progress, the
// milestones already crossed but not yet awarded, and how far along the next
// milestone is.
type AwardStatus struct {
	ProgressPercent float64         `json:"progress_percent"`
	NewAwards       []timelog.Award `json:"new_awards,omitempty"`
	NextMilestone   int             `json:"next_milestone,omitempty"` // 0 when all crossed
	ProgressToNext  float64         `json:"progress_to_next"`         // 0-100 within the next band
}

// GoalProgress returns the goal's completion percentage computed from its
// matching session minutes. A goal with no target hours reports 0.
func GoalProgress(goal timelog.Goal, sessions []timelog.Session) float64 {
	if goal.TargetHours <= 0 {
		return 0
	}
	var minutes int
	for _, s := range timelog.FilterByActivities(sessions, goal.ActivityIDs) {
		minutes += s.DurationMinutes
	}
	return float64(minutes) / 60 / goal.TargetHours * 100
}

// AwardMessage renders the celebration line for a crossed milestone.
func AwardMessage(percentage int, goalName string) string {
	switch percentage {
	case 25:
		return fmt.Sprintf("Quarter Master! You've completed 25%% of %q!", goalName)
	case 50:
		return fmt.Sprintf("Halfway Hero! You've reached 50%% of %q!", goalName)
	case 75:
		return fmt.Sprintf("Almost There! You're 75%% through %q!", goalName)
	case 100:
		return fmt.Sprintf("Goal Crusher! You've completed %q!", goalName)
	}
	return fmt.Sprintf("You've reached %d%% of %q!", percentage, goalName)
}

// CheckMilestones returns awards for every milestone the goal's progress has
// crossed that is not already covered by an existing award.
func CheckMilestones(goal timelog.Goal, progress float64, existing []timelog.Award, now time.Time) []timelog.Award {
	awarded := make(map[int]bool, len(existing))
	for _, a := range existing {
		awarded[a.Percentage] = true
	}

	var fresh []timelog.Award
	for _, pct := range MilestonePercentages {
		if progress >= float64(pct) && !awarded[pct] {
			fresh = append(fresh, timelog.Award{
				GoalID:     goal.ID,
				Percentage: pct,
				AwardedAt:  now.UnixMilli(),
				Message:    AwardMessage(pct, goal.Name),
			})
		}
	}
	return fresh
}

// AwardProgress combines progress, newly crossed milestones and the
// progress-to-next-milestone figure for a goal.
func AwardProgress(goal timelog.Goal, sessions []timelog.Session, existing []timelog.Award, now time.Time) AwardStatus {
	progress := GoalProgress(goal, sessions)
	status := AwardStatus{
		ProgressPercent: round1(progress),
		NewAwards:       CheckMilestones(goal, progress, existing, now),
	}

	for _, pct := range MilestonePercentages {
		if progress < float64(pct) {
			status.NextMilestone = pct
			break
		}
	}
	if status.NextMilestone > 0 {
		previous := 0
		for _, pct := range MilestonePercentages {
			if pct < status.NextMilestone {
				previous = pct
			}
		}
		band := float64(status.NextMilestone - previous)
		status.ProgressToNext = round1(clamp((progress-float64(previous))/band*100, 0, 100))
	}
	return status
}
