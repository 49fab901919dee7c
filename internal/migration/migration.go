// Package migration applies the embedded NNN_name.sql files to a journal
// database and tracks the applied version in a one-row schema_version table.
package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/omayami/internal/constants"
)

var (
	ErrSchemaAhead  = errors.New("database schema version is newer than supported")
	ErrSchemaBehind = errors.New("database schema is behind, run '" + constants.AppName + " migrate'")
)

// Driver selects the placeholder dialect used for schema_version bookkeeping.
type Driver int

const (
	DriverSQLite Driver = iota
	DriverPostgres
)

type Migration struct {
	Version int
	Name    string
	SQL     string
}

type Runner struct {
	db     *sql.DB
	fs     fs.FS
	driver Driver
}

func NewRunner(db *sql.DB, migrationFS fs.FS, driver Driver) *Runner {
	return &Runner{db: db, fs: migrationFS, driver: driver}
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func (r *Runner) writeVersion(e execer, version int) error {
	if _, err := e.Exec("DELETE FROM schema_version"); err != nil {
		return fmt.Errorf("clear schema version: %w", err)
	}
	insert := "INSERT INTO schema_version (version) VALUES (?)"
	if r.driver == DriverPostgres {
		insert = "INSERT INTO schema_version (version) VALUES ($1)"
	}
	if _, err := e.Exec(insert, version); err != nil {
		return fmt.Errorf("record schema version %d: %w", version, err)
	}
	return nil
}

func (r *Runner) ensureVersionTable() error {
	_, err := r.db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY)`)
	if err != nil {
		return fmt.Errorf("create schema_version table: %w", err)
	}
	return nil
}

// GetCurrentVersion returns the applied schema version, 0 for a fresh database.
func (r *Runner) GetCurrentVersion() (int, error) {
	if err := r.ensureVersionTable(); err != nil {
		return 0, err
	}
	var version int
	switch err := r.db.QueryRow("SELECT version FROM schema_version").Scan(&version); {
	case errors.Is(err, sql.ErrNoRows):
		return 0, nil
	case err != nil:
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}

func (r *Runner) SetVersion(version int) error {
	if err := r.ensureVersionTable(); err != nil {
		return err
	}
	return r.writeVersion(r.db, version)
}

func parseFileName(name string) (int, string, error) {
	num, rest, ok := strings.Cut(strings.TrimSuffix(name, ".sql"), "_")
	if !ok {
		return 0, "", fmt.Errorf("invalid migration filename format: %s (expected NNN_name.sql)", name)
	}
	version, err := strconv.Atoi(num)
	if err != nil {
		return 0, "", fmt.Errorf("invalid version number in filename %s: %w", name, err)
	}
	if version < 1 {
		return 0, "", fmt.Errorf("invalid version number in filename %s: version must be at least 1", name)
	}
	return version, rest, nil
}

// ReadMigrationFiles returns the migrations in the runner's filesystem ordered
// by version. Non-.sql entries are ignored; duplicate versions are an error.
func (r *Runner) ReadMigrationFiles() ([]Migration, error) {
	entries, err := fs.ReadDir(r.fs, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var migrations []Migration
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".sql" {
			continue
		}
		version, name, err := parseFileName(entry.Name())
		if err != nil {
			return nil, err
		}
		body, err := fs.ReadFile(r.fs, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}
		migrations = append(migrations, Migration{Version: version, Name: name, SQL: string(body)})
	}

	slices.SortFunc(migrations, func(a, b Migration) int { return a.Version - b.Version })
	for i := 1; i < len(migrations); i++ {
		if migrations[i].Version == migrations[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d", migrations[i].Version)
		}
	}
	return migrations, nil
}

func (r *Runner) GetLatestVersion() (int, error) {
	migrations, err := r.ReadMigrationFiles()
	if err != nil || len(migrations) == 0 {
		return 0, err
	}
	return migrations[len(migrations)-1].Version, nil
}

// apply runs one migration and records its version in a single transaction.
func (r *Runner) apply(m Migration) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin migration %d: %w", m.Version, err)
	}
	if _, err := tx.Exec(m.SQL); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Name, err)
	}
	if err := r.writeVersion(tx, m.Version); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// ApplyMigrations brings the schema up to the latest embedded version and
// returns how many migrations ran. Progress goes to logFn when non-nil.
func (r *Runner) ApplyMigrations(logFn func(string)) (int, error) {
	logf := func(format string, args ...any) {
		if logFn != nil {
			logFn(fmt.Sprintf(format, args...))
		}
	}

	current, err := r.GetCurrentVersion()
	if err != nil {
		return 0, err
	}
	migrations, err := r.ReadMigrationFiles()
	if err != nil {
		return 0, err
	}
	if len(migrations) == 0 {
		logf("No migration files found")
		return 0, nil
	}

	latest := migrations[len(migrations)-1].Version
	if current > latest {
		return 0, fmt.Errorf("%w (%d > %d), upgrade %s", ErrSchemaAhead, current, latest, constants.AppName)
	}
	if current == latest {
		logf("Database schema is up to date (version %d)", current)
		return 0, nil
	}

	logf("Migrating schema from version %d to %d", current, latest)
	start := time.Now()
	applied := 0
	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		logf("  Applying migration %d: %s", m.Version, m.Name)
		if err := r.apply(m); err != nil {
			return applied, err
		}
		applied++
	}
	logf("Applied %d migration(s) in %v", applied, time.Since(start).Round(time.Millisecond))
	return applied, nil
}

// ValidateVersion fails unless the database is exactly at the latest version.
func (r *Runner) ValidateVersion() error {
	current, err := r.GetCurrentVersion()
	if err != nil {
		return err
	}
	latest, err := r.GetLatestVersion()
	if err != nil {
		return err
	}
	switch {
	case current > latest:
		return fmt.Errorf("%w (%d > %d), upgrade %s", ErrSchemaAhead, current, latest, constants.AppName)
	case current < latest:
		return fmt.Errorf("%w (%d < %d)", ErrSchemaBehind, current, latest)
	}
	return nil
}
