package migration

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// Runner wraps golang-migrate with logging
type Runner struct {
	m      *migrate.Migrate
	logger *zap.Logger
}

// New creates a migration runner. sourceURL points at the migrations
// directory (e.g. "file://migrations"), databaseURL is the postgres DSN.
func New(sourceURL, databaseURL string, logger *zap.Logger) (*Runner, error) {
	m, err := migrate.New(sourceURL, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize migrations: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{m: m, logger: logger}, nil
}

// Up applies all pending migrations
func (r *Runner) Up() error {
	if err := r.m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			r.logger.Info("no pending migrations")
			return nil
		}
		return fmt.Errorf("migration up failed: %w", err)
	}
	r.logger.Info("migrations applied")
	return nil
}

// Down rolls back a single migration
func (r *Runner) Down() error {
	if err := r.m.Steps(-1); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			r.logger.Info("nothing to roll back")
			return nil
		}
		return fmt.Errorf("migration down failed: %w", err)
	}
	r.logger.Info("rolled back one migration")
	return nil
}

// Version reports the current schema version
func (r *Runner) Version() (uint, bool, error) {
	version, dirty, err := r.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

// Force sets the schema version without running migrations, used to
// recover from a dirty state
func (r *Runner) Force(version int) error {
	return r.m.Force(version)
}

// Close releases the underlying source and database handles
func (r *Runner) Close() error {
	sourceErr, dbErr := r.m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	return dbErr
}
