package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"careerhub/internal/hub"
	"careerhub/internal/storage/migrations"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStorage keeps every key as a row of the entries table.
type SQLiteStorage struct {
	db    *sql.DB
	clock hub.Clock
	path  string
}

// NewSQLiteStorage opens the database at path and migrates it to the latest
// schema. path can be a file path or ":memory:". A nil clock uses the real time.
func NewSQLiteStorage(path string, clock hub.Clock) (*SQLiteStorage, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}
	if err := migrations.Apply(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite storage %s: %w", path, err)
	}
	return NewSQLiteStorageFromDB(db, path, clock), nil
}

// NewSQLiteStorageFromDB wraps an existing, already migrated connection.
func NewSQLiteStorageFromDB(db *sql.DB, path string, clock hub.Clock) *SQLiteStorage {
	if clock == nil {
		clock = hub.RealClock{}
	}
	return &SQLiteStorage{db: db, clock: clock, path: path}
}

// OpenConnection opens and configures a SQLite connection.
// path can be a file path or ":memory:" for an in-memory database.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Each connection to ":memory:" is a separate database
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}
	return db, nil
}

func (s *SQLiteStorage) Get(key string) ([]byte, bool, error) {
	if err := ValidateKey(key); err != nil {
		return nil, false, err
	}

	var value []byte
	err := s.db.QueryRowContext(context.Background(),
		"SELECT value FROM entries WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading entry %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLiteStorage) Set(key string, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if value == nil {
		value = []byte{}
	}

	_, err := s.db.ExecContext(context.Background(), `
		INSERT INTO entries (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, s.clock.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("writing entry %s: %w", key, err)
	}
	return nil
}

// ValidateSetup checks that the schema is at the version this binary expects.
func (s *SQLiteStorage) ValidateSetup() error {
	if err := migrations.Check(s.db); err != nil {
		return fmt.Errorf("sqlite storage %s: %w", s.path, err)
	}
	return nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// Compile-time check that SQLiteStorage implements hub.Storage interface
var _ hub.Storage = (*SQLiteStorage)(nil)
