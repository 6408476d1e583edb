package testutil

import (
	"testing"

	"careerhub/internal/storage"
)

// NewTestSQLiteStorage creates an in-memory SQLite storage with the schema
// applied. It is closed automatically when the test completes.
func NewTestSQLiteStorage(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	s, err := storage.NewSQLiteStorage(":memory:", FixedClock())
	if err != nil {
		t.Fatalf("failed to open sqlite storage: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})
	return s
}
