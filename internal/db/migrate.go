package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is idempotent, so it
// is safe to call on an already migrated database.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		name       TEXT PRIMARY KEY,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tracked_rows (
		id          TEXT PRIMARY KEY,
		user_name   TEXT NOT NULL REFERENCES users(name) ON DELETE CASCADE,
		seq         INTEGER NOT NULL,
		row_date    TEXT NOT NULL,
		start_time  TEXT NOT NULL,
		end_time    TEXT NOT NULL,
		total       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		UNIQUE(user_name, seq)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tracked_rows_user ON tracked_rows(user_name, seq)`,
}
