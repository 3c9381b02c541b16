// Package timelog defines the canonical domain types for tenkhours: logged
// practice sessions, the activities they count toward, and long-term hour
// goals. Records arriving from storage are normalized here before any
// analytics code sees them.
package timelog

import "time"

// Session is one logged interval of focused activity.
//
// Two shapes exist in stored data: older records carry a single ActivityID,
// newer ones a list in ActivityIDs. Normalize folds both into ActivityIDs so
// downstream code never branches on shape.
type Session struct {
	ID string `json:"id"`

	// ActivityID is the legacy single-activity reference. Empty on
	// normalized records unless it was the only reference present.
	ActivityID string `json:"activityId,omitempty"`

	// ActivityIDs are the activities this session counts toward.
	ActivityIDs []string `json:"activityIds,omitempty"`

	// DurationMinutes is the session length. Always positive.
	DurationMinutes int `json:"duration"`

	// TimestampMs is the session start in epoch milliseconds, UTC.
	TimestampMs int64 `json:"timestamp"`
}

// Time returns the session start as a UTC time.
func (s Session) Time() time.Time {
	return time.UnixMilli(s.TimestampMs).UTC()
}

// Activity is a named pursuit sessions are logged against. Owned by the
// store; the analytics layer only reads it to validate session references.
type Activity struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	TotalMinutes int    `json:"totalTime"`
	Color        string `json:"color"`
	CreatedAtMs  int64  `json:"createdAt"`
}

// Goal is a long-term hour target over one or more activities.
type Goal struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	TargetHours float64  `json:"targetHours"`
	ActivityIDs []string `json:"activityIds"`
	CreatedAtMs int64    `json:"createdAt"`

	// TargetDateMs is an optional calendar deadline in epoch millis.
	// Zero means no deadline.
	TargetDateMs int64 `json:"targetDate,omitempty"`
}

// TargetDate returns the goal's deadline as a UTC time, or nil if unset.
func (g Goal) TargetDate() *time.Time {
	if g.TargetDateMs == 0 {
		return nil
	}
	t := time.UnixMilli(g.TargetDateMs).UTC()
	return &t
}

// Award records a crossed goal milestone (25/50/75/100 percent).
type Award struct {
	ID         int64  `json:"id"`
	GoalID     string `json:"goalId"`
	Percentage int    `json:"percentage"`
	AwardedAt  int64  `json:"awardedAt"`
	Message    string `json:"message"`
}
