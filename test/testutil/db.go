package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/outlinedev/outline/internal/repo"
)

// OpenTestDB opens a throwaway sqlite database under t.TempDir with the full
// schema applied.
func OpenTestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "outline_test.db")
	conn, err := repo.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := repo.ApplyMigrations(conn); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	return conn, func() {
		_ = conn.Close()
	}
}
