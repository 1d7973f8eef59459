package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

// NewTestDB creates a fresh file-backed SQLite database with the schema applied.
// A file (not :memory:) is used so that concurrent connections share one database.
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.sqlite3")
	db, err := OpenSQLite(path, 10*time.Second)
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	if err := EnsureSchema(context.Background(), db); err != nil {
		db.Close()
		t.Fatalf("creating test database schema: %v", err)
	}

	t.Cleanup(func() { db.Close() })

	return db
}
