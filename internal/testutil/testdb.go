package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/etude/internal/db"
)

// NewTestDB opens a migrated in-memory SQLite database that is closed when
// the test ends.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

// NewTestUoW returns the UnitOfWork the binary builds for a SQLite database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewUnitOfWork(database, db.DialectSQLite)
}
