package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"tenkhours/internal/timelog"
)

func encodeIDs(ids []string) (string, error) {
	if ids == nil {
		ids = []string{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeIDs(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// CreateGoal inserts a new goal.
func (db *DB) CreateGoal(g timelog.Goal) error {
	ids, err := encodeIDs(g.ActivityIDs)
	if err != nil {
		return err
	}
	var targetDate sql.NullInt64
	if g.TargetDateMs != 0 {
		targetDate = sql.NullInt64{Int64: g.TargetDateMs, Valid: true}
	}
	_, err = db.conn.Exec(
		"INSERT INTO goals (id, name, target_hours, activity_ids, created_at, target_date) VALUES (?, ?, ?, ?, ?, ?)",
		g.ID, g.Name, g.TargetHours, ids, g.CreatedAtMs, targetDate,
	)
	if err != nil {
		return fmt.Errorf("creating goal %s: %w", g.ID, err)
	}
	return nil
}

// GetGoal returns a goal by id, or nil if it does not exist.
func (db *DB) GetGoal(id string) (*timelog.Goal, error) {
	row := db.conn.QueryRow(
		"SELECT id, name, target_hours, activity_ids, created_at, target_date FROM goals WHERE id = ?", id)
	g, err := scanGoal(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

// ListGoals returns all goals ordered by creation time.
func (db *DB) ListGoals() ([]timelog.Goal, error) {
	rows, err := db.conn.Query(
		"SELECT id, name, target_hours, activity_ids, created_at, target_date FROM goals ORDER BY created_at, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []timelog.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, *g)
	}
	return goals, rows.Err()
}

// UpdateGoal updates a goal's mutable fields.
func (db *DB) UpdateGoal(g timelog.Goal) error {
	ids, err := encodeIDs(g.ActivityIDs)
	if err != nil {
		return err
	}
	var targetDate sql.NullInt64
	if g.TargetDateMs != 0 {
		targetDate = sql.NullInt64{Int64: g.TargetDateMs, Valid: true}
	}
	_, err = db.conn.Exec(
		"UPDATE goals SET name = ?, target_hours = ?, activity_ids = ?, target_date = ? WHERE id = ?",
		g.Name, g.TargetHours, ids, targetDate, g.ID,
	)
	return err
}

// DeleteGoal removes a goal and its awards.
func (db *DB) DeleteGoal(id string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM goal_awards WHERE goal_id = ?", id); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM goals WHERE id = ?", id); err != nil {
		return err
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGoal(row rowScanner) (*timelog.Goal, error) {
	var g timelog.Goal
	var rawIDs string
	var targetDate sql.NullInt64
	if err := row.Scan(&g.ID, &g.Name, &g.TargetHours, &rawIDs, &g.CreatedAtMs, &targetDate); err != nil {
		return nil, err
	}
	ids, err := decodeIDs(rawIDs)
	if err != nil {
		return nil, fmt.Errorf("goal %s has malformed activity list: %w", g.ID, err)
	}
	g.ActivityIDs = ids
	if targetDate.Valid {
		g.TargetDateMs = targetDate.Int64
	}
	return &g, nil
}
