// Package migrations owns the schema of the entries table that backs
// SQLiteStorage.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// SchemaVersion is the entries schema this binary reads and writes. It must
// match the highest migration under files/.
const SchemaVersion uint = 1

//go:embed files/*.sql
var migrationFiles embed.FS

// Apply brings the entries schema to SchemaVersion and verifies the result.
// A database already at SchemaVersion is left untouched.
func Apply(db *sql.DB) error {
	m, err := newMigrate(db)
	if err != nil {
		return err
	}
	// m is not closed: that would close db, which the caller owns

	if err := m.Migrate(SchemaVersion); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrating entries schema to version %d: %w", SchemaVersion, err)
	}
	return check(m)
}

// Check reports whether the entries schema is exactly at SchemaVersion.
func Check(db *sql.DB) error {
	m, err := newMigrate(db)
	if err != nil {
		return err
	}
	return check(m)
}

func check(m *migrate.Migrate) error {
	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		return errors.New("entries schema has no version (needs migration)")
	case err != nil:
		return fmt.Errorf("reading entries schema version: %w", err)
	case dirty:
		return fmt.Errorf("entries schema is dirty at version %d (a migration failed)", version)
	case version < SchemaVersion:
		return fmt.Errorf("entries schema is at version %d, want %d", version, SchemaVersion)
	case version > SchemaVersion:
		return fmt.Errorf("entries schema version %d is newer than this binary's %d", version, SchemaVersion)
	}
	return nil
}

func newMigrate(db *sql.DB) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationFiles, "files")
	if err != nil {
		return nil, fmt.Errorf("loading entries migrations: %w", err)
	}
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		src.Close()
		return nil, fmt.Errorf("opening entries schema driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		src.Close()
		return nil, fmt.Errorf("preparing entries migrations: %w", err)
	}
	return m, nil
}
