package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/dayplan/internal/db"
)

// NewTestDB opens a migrated in-memory database that is closed with the test.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return openAt(t, db.MemoryPath)
}

// NewFileTestDB opens a migrated database file under t.TempDir and returns
// its path so tests can reopen it.
func NewFileTestDB(t *testing.T) (*sql.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "dayplan.db")
	return openAt(t, path), path
}

// NewTestDBAt opens (or reopens) a database file at path.
func NewTestDBAt(t *testing.T, path string) *sql.DB {
	t.Helper()
	return openAt(t, path)
}

func openAt(t *testing.T, path string) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(path)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
