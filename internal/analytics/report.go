package analytics

import (
	"time"

	"tenkhours/internal/timelog"
)

// Report is the combined read-only analytics snapshot for one goal. Display
// metrics (series, slope, momentum, quality) come from a fixed recent
// window; streaks come from full history so an old break is never forgotten
// and an old run still counts as the longest.
type Report struct {
	GoalID   string          `json:"goal_id"`
	GoalName string          `json:"goal_name"`
	Weekly   []WeeklySample  `json:"weekly"`
	Slope    float64         `json:"slope"`
	Momentum MomentumScore   `json:"momentum"`
	Streak   Streak          `json:"streak"`
	Quality  SessionQuality  `json:"quality"`
	Pacing   MilestonePacing `json:"pacing"`
}

// ReportOptions tunes report computation.
type ReportOptions struct {
	// WindowWeeks is the display window size; FullHistory makes the
	// display series span all history too.
	WindowWeeks int

	// MinSessionsPerWeek is the streak qualification threshold.
	MinSessionsPerWeek int

	// Momentum holds the scoring constants.
	Momentum MomentumConfig

	// Quality holds the session-quality thresholds.
	Quality QualityConfig

	// PacingTolerance is the on-track tolerance band.
	PacingTolerance float64
}

// DefaultReportOptions returns the standard report parameters.
func DefaultReportOptions() ReportOptions {
	return ReportOptions{
		WindowWeeks:        DefaultWindowWeeks,
		MinSessionsPerWeek: DefaultMinSessionsPerWeek,
		Momentum:           DefaultMomentumConfig,
		Quality:            DefaultQualityConfig,
		PacingTolerance:    PacingTolerance,
	}
}

// BuildReport computes the full analytics snapshot for a goal from the
// given session log. Pure: same inputs and now, same report.
func BuildReport(goal timelog.Goal, sessions []timelog.Session, opts ReportOptions, now time.Time) Report {
	weekly := WeeklySeries(sessions, goal.ActivityIDs, opts.WindowWeeks, now)
	history := WeeklySeries(sessions, goal.ActivityIDs, FullHistory, now)

	return Report{
		GoalID:   goal.ID,
		GoalName: goal.Name,
		Weekly:   weekly,
		Slope:    Slope(weekly),
		Momentum: MomentumWith(weekly, opts.Momentum),
		Streak:   ComputeStreak(history, opts.MinSessionsPerWeek),
		Quality:  AnalyzeSessionQualityWith(sessions, goal.ActivityIDs, weekly, opts.Quality),
		Pacing:   ComputePacingWith(goal, sessions, nil, now, opts.PacingTolerance),
	}
}
