package store

import (
	"database/sql"
	"fmt"

	"tenkhours/internal/timelog"
)

// CreateSession inserts a session and credits its duration to the
// primary activity's running total.
func (db *DB) CreateSession(s timelog.Session) error {
	s.Normalize()
	ids, err := encodeIDs(s.ActivityIDs)
	if err != nil {
		return err
	}
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO sessions (id, activity_id, activity_ids, duration_minutes, timestamp_ms) VALUES (?, ?, ?, ?, ?)",
		s.ID, s.PrimaryActivity(), ids, s.DurationMinutes, s.TimestampMs,
	)
	if err != nil {
		return fmt.Errorf("creating session %s: %w", s.ID, err)
	}
	if primary := s.PrimaryActivity(); primary != "" {
		_, err = tx.Exec(
			"UPDATE activities SET total_minutes = MAX(0, total_minutes + ?) WHERE id = ?",
			s.DurationMinutes, primary,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetSession returns a session by id, or nil if it does not exist.
func (db *DB) GetSession(id string) (*timelog.Session, error) {
	row := db.conn.QueryRow(
		"SELECT id, activity_id, activity_ids, duration_minutes, timestamp_ms FROM sessions WHERE id = ?", id)
	s, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ListSessions returns all sessions ordered by timestamp. Legacy rows
// that carry only the scalar activity column come back normalized.
func (db *DB) ListSessions() ([]timelog.Session, error) {
	rows, err := db.conn.Query(
		"SELECT id, activity_id, activity_ids, duration_minutes, timestamp_ms FROM sessions ORDER BY timestamp_ms, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []timelog.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *s)
	}
	return sessions, rows.Err()
}

// UpdateSession replaces a session's fields and reconciles activity
// totals: the old duration is debited from the old primary activity and
// the new duration credited to the new one.
func (db *DB) UpdateSession(s timelog.Session) error {
	s.Normalize()
	old, err := db.GetSession(s.ID)
	if err != nil {
		return err
	}
	if old == nil {
		return fmt.Errorf("session %s not found", s.ID)
	}
	ids, err := encodeIDs(s.ActivityIDs)
	if err != nil {
		return err
	}
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"UPDATE sessions SET activity_id = ?, activity_ids = ?, duration_minutes = ?, timestamp_ms = ? WHERE id = ?",
		s.PrimaryActivity(), ids, s.DurationMinutes, s.TimestampMs, s.ID,
	)
	if err != nil {
		return err
	}
	if primary := old.PrimaryActivity(); primary != "" {
		_, err = tx.Exec(
			"UPDATE activities SET total_minutes = MAX(0, total_minutes - ?) WHERE id = ?",
			old.DurationMinutes, primary,
		)
		if err != nil {
			return err
		}
	}
	if primary := s.PrimaryActivity(); primary != "" {
		_, err = tx.Exec(
			"UPDATE activities SET total_minutes = MAX(0, total_minutes + ?) WHERE id = ?",
			s.DurationMinutes, primary,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// DeleteSession removes a session and debits its duration from the
// primary activity's total.
func (db *DB) DeleteSession(id string) error {
	old, err := db.GetSession(id)
	if err != nil {
		return err
	}
	if old == nil {
		return nil
	}
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM sessions WHERE id = ?", id); err != nil {
		return err
	}
	if primary := old.PrimaryActivity(); primary != "" {
		_, err := tx.Exec(
			"UPDATE activities SET total_minutes = MAX(0, total_minutes - ?) WHERE id = ?",
			old.DurationMinutes, primary,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func scanSession(row rowScanner) (*timelog.Session, error) {
	var s timelog.Session
	var rawIDs sql.NullString
	var legacyID sql.NullString
	if err := row.Scan(&s.ID, &legacyID, &rawIDs, &s.DurationMinutes, &s.TimestampMs); err != nil {
		return nil, err
	}
	if legacyID.Valid {
		s.ActivityID = legacyID.String
	}
	if rawIDs.Valid {
		ids, err := decodeIDs(rawIDs.String)
		if err != nil {
			return nil, fmt.Errorf("session %s has malformed activity list: %w", s.ID, err)
		}
		s.ActivityIDs = ids
	}
	s.Normalize()
	return &s, nil
}
