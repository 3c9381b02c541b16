package store

import (
	"fmt"

	"tenkhours/internal/timelog"
)

// RecordAward persists a milestone award for a goal.
func (db *DB) RecordAward(a timelog.Award) error {
	_, err := db.conn.Exec(
		"INSERT INTO goal_awards (goal_id, percentage, awarded_at, message) VALUES (?, ?, ?, ?)",
		a.GoalID, a.Percentage, a.AwardedAt, a.Message,
	)
	if err != nil {
		return fmt.Errorf("recording %d%% award for goal %s: %w", a.Percentage, a.GoalID, err)
	}
	return nil
}

// ListAwards returns the awards recorded for a goal, oldest first.
func (db *DB) ListAwards(goalID string) ([]timelog.Award, error) {
	rows, err := db.conn.Query(
		"SELECT id, goal_id, percentage, awarded_at, message FROM goal_awards WHERE goal_id = ? ORDER BY awarded_at, id",
		goalID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var awards []timelog.Award
	for rows.Next() {
		var a timelog.Award
		if err := rows.Scan(&a.ID, &a.GoalID, &a.Percentage, &a.AwardedAt, &a.Message); err != nil {
			return nil, err
		}
		awards = append(awards, a)
	}
	return awards, rows.Err()
}

// AwardedPercentages returns the set of milestone percentages already
// awarded for a goal.
func (db *DB) AwardedPercentages(goalID string) (map[int]bool, error) {
	rows, err := db.conn.Query(
		"SELECT DISTINCT percentage FROM goal_awards WHERE goal_id = ?", goalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	awarded := make(map[int]bool)
	for rows.Next() {
		var pct int
		if err := rows.Scan(&pct); err != nil {
			return nil, err
		}
		awarded[pct] = true
	}
	return awarded, rows.Err()
}
