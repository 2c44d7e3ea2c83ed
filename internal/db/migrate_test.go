package db

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"schema_meta", "practice_status", "mastery_bpm", "practice_logs"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, idx := range []string{
		"idx_practice_status_family",
		"idx_mastery_bpm_family",
		"idx_practice_logs_user_created",
	} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_StatusCheckRejectsUntouched(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO practice_status (user_id, id, family, status, updated_at)
		VALUES ('u', 'x', 'scale', 'untouched', '')`)
	assert.Error(t, err, "untouched is represented by absence")
}

func TestMigrate_BPMCheckRejectsZero(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO mastery_bpm (user_id, id, family, bpm, updated_at)
		VALUES ('u', 'x', 'hanon', 0, '')`)
	assert.Error(t, err)
}

func TestEnsureIdentitySchema(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, EnsureIdentitySchema(ctx, db, 1))
	require.NoError(t, EnsureIdentitySchema(ctx, db, 1), "second call is a no-op")

	err := EnsureIdentitySchema(ctx, db, 2)
	require.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestRebind(t *testing.T) {
	cases := []struct{ in, want string }{
		{`SELECT 1`, `SELECT 1`},
		{`SELECT * FROM t WHERE a = ? AND b = ?`, `SELECT * FROM t WHERE a = $1 AND b = $2`},
		{`INSERT INTO t (a, b) VALUES (?, '?')`, `INSERT INTO t (a, b) VALUES ($1, '?')`},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Rebind(tc.in))
	}
}

func TestDialect_Bind(t *testing.T) {
	db := openTestDB(t)
	assert.Same(t, db, DialectSQLite.Bind(db).(*sql.DB))
	_, ok := DialectPostgres.Bind(db).(rebinder)
	assert.True(t, ok)
	assert.Equal(t, "postgres", DialectPostgres.String())
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, _, err := Open(context.Background(), "mysql", "x")
	require.Error(t, err)
}
