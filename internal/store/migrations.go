package store

import "fmt"

// currentSchemaVersion is the latest schema version.
const currentSchemaVersion = 1

// Migrate runs forward migrations to bring the database schema up to date.
func (db *DB) Migrate() error {
	// Create the schema_version table if it does not exist.
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	version := 0
	row := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1")
	if err := row.Scan(&version); err != nil {
		// No rows means version 0 (fresh database).
		version = 0
	}

	if version < 1 {
		if err := db.migrateV1(); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return nil
}

// migrateV1 creates all initial tables and indexes. Sessions keep both the
// legacy scalar activity_id column and the JSON activity_ids list so
// databases written by older builds load unchanged; scanning normalizes the
// two shapes.
func (db *DB) migrateV1() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS activities (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			color         TEXT NOT NULL DEFAULT '',
			total_minutes INTEGER NOT NULL DEFAULT 0,
			created_at    INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS goals (
			id           TEXT PRIMARY KEY,
			name         TEXT NOT NULL,
			target_hours REAL NOT NULL,
			activity_ids TEXT NOT NULL,
			created_at   INTEGER NOT NULL,
			target_date  INTEGER
		)`,

		`CREATE TABLE IF NOT EXISTS sessions (
			id               TEXT PRIMARY KEY,
			activity_id      TEXT,
			activity_ids     TEXT,
			duration_minutes INTEGER NOT NULL,
			timestamp_ms     INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS goal_awards (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			goal_id    TEXT NOT NULL REFERENCES goals(id),
			percentage INTEGER NOT NULL,
			awarded_at INTEGER NOT NULL,
			message    TEXT NOT NULL
		)`,

		// Indexes.
		`CREATE INDEX IF NOT EXISTS idx_sessions_timestamp ON sessions(timestamp_ms)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_activity ON sessions(activity_id)`,
		`CREATE INDEX IF NOT EXISTS idx_goal_awards_goal ON goal_awards(goal_id)`,
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:40], err)
		}
	}

	// Set schema version.
	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion); err != nil {
		return err
	}

	return tx.Commit()
}
