// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

// Package migration applies the catalogue schema with golang-migrate.
//
// The API calls [RunUp] at startup; the admin CLI drives a [Runner] directly
// for rollbacks and status checks.
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// Registers the "pgx5" database scheme.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// Registers the "file" source scheme.
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// ErrDirty reports a half-applied migration that needs a manual fix.
var ErrDirty = errors.New("migration_dirty")

// Status is the schema version recorded in schema_migrations.
type Status struct {
	Version uint `json:"version"`
	Dirty   bool `json:"dirty"`
	// Empty is true before the first migration ran.
	Empty bool `json:"empty"`
}

// Runner owns one golang-migrate instance. Close it when done.
type Runner struct {
	migrator *migrate.Migrate
	logger   *slog.Logger
}

// NewRunner opens the migrations directory against the database at dsn.
func NewRunner(dsn, migrationsPath string, logger *slog.Logger) (*Runner, error) {
	migrator, err := migrate.New("file://"+migrationsPath, ToPgx5DSN(dsn))
	if err != nil {
		return nil, fmt.Errorf("migration_init_failed: %w", err)
	}
	migrator.Log = &migrateLogger{logger: logger}

	return &Runner{migrator: migrator, logger: logger}, nil
}

// Status reads the current schema version.
func (runner *Runner) Status() (Status, error) {
	version, dirty, err := runner.migrator.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		return Status{Empty: true}, nil
	case err != nil:
		return Status{}, fmt.Errorf("migration_version_failed: %w", err)
	}
	return Status{Version: version, Dirty: dirty}, nil
}

// Up applies every pending migration. An up-to-date schema is not an error.
func (runner *Runner) Up() error {
	return runner.apply("up", runner.migrator.Up)
}

// Steps moves n migrations forward, or backward when n is negative.
func (runner *Runner) Steps(n int) error {
	if n == 0 {
		return nil
	}
	return runner.apply(fmt.Sprintf("steps %+d", n), func() error { return runner.migrator.Steps(n) })
}

func (runner *Runner) apply(operation string, step func() error) error {
	before, err := runner.Status()
	if err != nil {
		return err
	}
	if before.Dirty {
		return fmt.Errorf("%w: version %d", ErrDirty, before.Version)
	}

	if err := step(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			runner.logger.Info("migration_no_change", slog.String("operation", operation), slog.Uint64("version", uint64(before.Version)))
			return nil
		}
		return fmt.Errorf("migration_%s_failed: %w", strings.Fields(operation)[0], err)
	}

	after, err := runner.Status()
	if err != nil {
		return err
	}
	runner.logger.Info("migration_applied",
		slog.String("operation", operation),
		slog.Uint64("from_version", uint64(before.Version)),
		slog.Uint64("to_version", uint64(after.Version)),
	)
	return nil
}

// Close releases the source and database handles.
func (runner *Runner) Close() error {
	sourceErr, databaseErr := runner.migrator.Close()
	return errors.Join(sourceErr, databaseErr)
}

// RunUp is the startup path: open, apply pending migrations, close.
func RunUp(dsn, migrationsPath string, logger *slog.Logger) error {
	runner, err := NewRunner(dsn, migrationsPath, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := runner.Close(); closeErr != nil {
			logger.Warn("migration_close_failed", slog.Any("error", closeErr))
		}
	}()

	return runner.Up()
}

// ToPgx5DSN rewrites postgres:// and postgresql:// URLs to the pgx5:// scheme
// golang-migrate registers for the pgx/v5 driver. Other values pass through.
func ToPgx5DSN(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, prefix); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// migrateLogger routes golang-migrate output to slog at debug level.
type migrateLogger struct {
	logger *slog.Logger
}

func (adapter *migrateLogger) Printf(format string, args ...any) {
	adapter.logger.Debug("migration_log", slog.String("message", strings.TrimSpace(fmt.Sprintf(format, args...))))
}

func (adapter *migrateLogger) Verbose() bool { return false }
