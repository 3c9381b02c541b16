package analytics

import (
	"math"
	"time"

	"tenkhours/internal/timelog"
)

// PacingTolerance is the fraction of the required pace that still counts as
// on track: a 10% band, not exact equality.
const PacingTolerance = 0.9

// pacingTrailingWeeks is the window the current pace is averaged over.
const pacingTrailingWeeks = 4

// MilestonePacing compares the weekly pace required to hit a goal's target
// date against the actual trailing pace.
type MilestonePacing struct {
	TargetDate          *time.Time `json:"target_date,omitempty"`
	RequiredWeeklyHours float64    `json:"required_weekly_hours"`
	CurrentWeeklyHours  float64    `json:"current_weekly_hours"`
	GapHours            float64    `json:"gap_hours"`
	OnTrack             bool       `json:"on_track"`
}

// ComputePacing derives the pacing picture for a goal with the standard
// tolerance.
func ComputePacing(goal timelog.Goal, sessions []timelog.Session, targetDate *time.Time, now time.Time) MilestonePacing {
	return ComputePacingWith(goal, sessions, targetDate, now, PacingTolerance)
}

// ComputePacingWith derives the pacing picture for a goal. targetDate
// overrides the goal's own deadline when non-nil; with no deadline from
// either source the goal is trivially on track and the required pace simply
// mirrors the current one. Progress toward the target counts all matching
// sessions, while the current pace is the average over the trailing 4 ISO
// weeks. A pace of tolerance x required still counts as on track.
func ComputePacingWith(goal timelog.Goal, sessions []timelog.Session, targetDate *time.Time, now time.Time, tolerance float64) MilestonePacing {
	if tolerance <= 0 {
		tolerance = PacingTolerance
	}
	if targetDate == nil {
		targetDate = goal.TargetDate()
	}

	// A goal with no linked activities can never accrue progress; report a
	// neutral on-track result instead of an unreachable required pace.
	if len(goal.ActivityIDs) == 0 {
		return MilestonePacing{TargetDate: targetDate, OnTrack: true}
	}

	trailing := WeeklySeries(sessions, goal.ActivityIDs, pacingTrailingWeeks, now)
	current := round1(mean(trailing))

	if targetDate == nil {
		return MilestonePacing{
			RequiredWeeklyHours: current,
			CurrentWeeklyHours:  current,
			OnTrack:             true,
		}
	}

	var progressMinutes int
	for _, s := range timelog.FilterByActivities(sessions, goal.ActivityIDs) {
		progressMinutes += s.DurationMinutes
	}
	progressHours := float64(progressMinutes) / 60

	weeksRemaining := targetDate.Sub(now).Hours() / (24 * 7)
	if weeksRemaining < 1 {
		// A deadline inside the current week (or already past) still gets
		// a finite required pace.
		weeksRemaining = 1
	}

	required := math.Max(0, (goal.TargetHours-progressHours)/weeksRemaining)

	return MilestonePacing{
		TargetDate:          targetDate,
		RequiredWeeklyHours: round1(required),
		CurrentWeeklyHours:  current,
		GapHours:            round1(required - current),
		OnTrack:             current >= required*tolerance,
	}
}
