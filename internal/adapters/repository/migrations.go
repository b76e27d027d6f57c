package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Migrate creates the schema if it does not exist yet. Safe to run on every start.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	ts := "TIMESTAMPTZ"
	if sqlx.BindType(db.DriverName()) == sqlx.QUESTION {
		// modernc only scans declared TIMESTAMP columns back into time.Time.
		ts = "TIMESTAMP"
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at    {ts} NOT NULL,
			updated_at    {ts} NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS habits (
			id          TEXT PRIMARY KEY,
			user_id     TEXT NOT NULL,
			name        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			frequency   TEXT NOT NULL DEFAULT 'daily',
			color       TEXT NOT NULL DEFAULT '',
			created_at  {ts} NOT NULL,
			updated_at  {ts} NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_habits_user_id ON habits (user_id)`,
		`CREATE TABLE IF NOT EXISTS habit_completions (
			habit_id        TEXT NOT NULL REFERENCES habits (id) ON DELETE CASCADE,
			completion_date TEXT NOT NULL,
			created_at      {ts} NOT NULL,
			PRIMARY KEY (habit_id, completion_date)
		)`,
	}

	for i, stmt := range statements {
		if _, err := db.ExecContext(ctx, strings.ReplaceAll(stmt, "{ts}", ts)); err != nil {
			return fmt.Errorf("repository: migration %d failed: %w", i+1, err)
		}
	}

	return nil
}
