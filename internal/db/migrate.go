package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
)

// Migrate runs all schema migrations against a SQLite database.
func Migrate(db *sql.DB) error {
	return migrate(db, DialectSQLite)
}

func migrate(db *sql.DB, dialect Dialect) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d (%s): %w", i, dialect, err)
		}
	}
	return nil
}

// Every statement must run unchanged on SQLite and Postgres.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS schema_meta (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS practice_status (
		user_id    TEXT NOT NULL,
		id         TEXT NOT NULL,
		family     TEXT NOT NULL CHECK(family IN ('scale','dohnanyi','hanon')),
		status     TEXT NOT NULL CHECK(status IN ('practiced','mastered')),
		updated_at TEXT NOT NULL,
		PRIMARY KEY (user_id, id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_practice_status_family ON practice_status(user_id, family)`,

	`CREATE TABLE IF NOT EXISTS mastery_bpm (
		user_id    TEXT NOT NULL,
		id         TEXT NOT NULL,
		family     TEXT NOT NULL CHECK(family IN ('scale','dohnanyi','hanon')),
		bpm        INTEGER NOT NULL CHECK(bpm > 0),
		updated_at TEXT NOT NULL,
		PRIMARY KEY (user_id, id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_mastery_bpm_family ON mastery_bpm(user_id, family)`,

	`CREATE TABLE IF NOT EXISTS practice_logs (
		id               TEXT PRIMARY KEY,
		user_id          TEXT NOT NULL,
		duration_minutes INTEGER NOT NULL CHECK(duration_minutes >= 0),
		items            TEXT NOT NULL DEFAULT '[]',
		notes            TEXT NOT NULL DEFAULT '',
		created_at       TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_practice_logs_user_created ON practice_logs(user_id, created_at)`,
}

const identitySchemaKey = "identity_schema_version"

// ErrSchemaMismatch reports stored IDs written under a different identity layout.
var ErrSchemaMismatch = errors.New("identity schema mismatch")

// EnsureIdentitySchema records version on first use and fails when the
// database was populated under another identity layout.
func EnsureIdentitySchema(ctx context.Context, conn DBTX, version int) error {
	want := strconv.Itoa(version)
	if _, err := conn.ExecContext(ctx,
		`INSERT INTO schema_meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO NOTHING`,
		identitySchemaKey, want); err != nil {
		return fmt.Errorf("recording identity schema: %w", err)
	}
	var got string
	if err := conn.QueryRowContext(ctx,
		`SELECT value FROM schema_meta WHERE key = ?`, identitySchemaKey).Scan(&got); err != nil {
		return fmt.Errorf("reading identity schema: %w", err)
	}
	if got != want {
		return fmt.Errorf("%w: database has version %s, binary expects %s", ErrSchemaMismatch, got, want)
	}
	return nil
}
