package store

import (
	"database/sql"
	"fmt"

	"tenkhours/internal/timelog"
)

// CreateActivity inserts a new activity.
func (db *DB) CreateActivity(a timelog.Activity) error {
	_, err := db.conn.Exec(
		"INSERT INTO activities (id, name, color, total_minutes, created_at) VALUES (?, ?, ?, ?, ?)",
		a.ID, a.Name, a.Color, a.TotalMinutes, a.CreatedAtMs,
	)
	if err != nil {
		return fmt.Errorf("creating activity %s: %w", a.ID, err)
	}
	return nil
}

// GetActivity returns an activity by id, or nil if it does not exist.
func (db *DB) GetActivity(id string) (*timelog.Activity, error) {
	row := db.conn.QueryRow(
		"SELECT id, name, color, total_minutes, created_at FROM activities WHERE id = ?", id)
	var a timelog.Activity
	err := row.Scan(&a.ID, &a.Name, &a.Color, &a.TotalMinutes, &a.CreatedAtMs)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListActivities returns all activities ordered by creation time.
func (db *DB) ListActivities() ([]timelog.Activity, error) {
	rows, err := db.conn.Query(
		"SELECT id, name, color, total_minutes, created_at FROM activities ORDER BY created_at, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []timelog.Activity
	for rows.Next() {
		var a timelog.Activity
		if err := rows.Scan(&a.ID, &a.Name, &a.Color, &a.TotalMinutes, &a.CreatedAtMs); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

// UpdateActivity updates an activity's mutable fields.
func (db *DB) UpdateActivity(a timelog.Activity) error {
	_, err := db.conn.Exec(
		"UPDATE activities SET name = ?, color = ?, total_minutes = ? WHERE id = ?",
		a.Name, a.Color, a.TotalMinutes, a.ID,
	)
	return err
}

// DeleteActivity removes an activity. Sessions referencing it become
// orphans and are excluded (and counted) by the analytics layer.
func (db *DB) DeleteActivity(id string) error {
	_, err := db.conn.Exec("DELETE FROM activities WHERE id = ?", id)
	return err
}
