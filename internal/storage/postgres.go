package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver

	"careerhub/internal/hub"
)

const postgresSchema = `CREATE TABLE IF NOT EXISTS entries (
	key        TEXT        PRIMARY KEY,
	value      BYTEA       NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`

// PostgresStorage keeps every key as a row of the entries table in Postgres.
type PostgresStorage struct {
	db      *sql.DB
	clock   hub.Clock
	timeout time.Duration
}

// NewPostgresStorage connects to dsn and creates the entries table if needed.
// A nil clock uses the real time.
func NewPostgresStorage(dsn string, clock hub.Clock) (*PostgresStorage, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if clock == nil {
		clock = hub.RealClock{}
	}
	s := &PostgresStorage{db: db, clock: clock, timeout: 10 * time.Second}

	ctx, cancel := s.context()
	defer cancel()
	if _, err := db.ExecContext(ctx, postgresSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating entries table: %w", err)
	}
	return s, nil
}

func (s *PostgresStorage) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

func (s *PostgresStorage) Get(key string) ([]byte, bool, error) {
	if err := ValidateKey(key); err != nil {
		return nil, false, err
	}

	ctx, cancel := s.context()
	defer cancel()

	var value []byte
	err := s.db.QueryRowContext(ctx, "SELECT value FROM entries WHERE key = $1", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading entry %s: %w", key, err)
	}
	return value, true, nil
}

func (s *PostgresStorage) Set(key string, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if value == nil {
		value = []byte{}
	}

	ctx, cancel := s.context()
	defer cancel()

	const q = `INSERT INTO entries (key, value, updated_at) VALUES ($1, $2, $3)
	ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	if _, err := s.db.ExecContext(ctx, q, key, value, s.clock.Now().UTC()); err != nil {
		return fmt.Errorf("writing entry %s: %w", key, err)
	}
	return nil
}

// ValidateSetup pings the server.
func (s *PostgresStorage) ValidateSetup() error {
	ctx, cancel := s.context()
	defer cancel()
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres not reachable: %w", err)
	}
	return nil
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}

// Compile-time check that PostgresStorage implements hub.Storage interface
var _ hub.Storage = (*PostgresStorage)(nil)
