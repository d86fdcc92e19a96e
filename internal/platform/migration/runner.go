// Copyright (c) 2026 Vanlife. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration brings the van catalogue schema and its seed data up to
// date with golang-migrate before the API starts serving.
package migration

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // registers pgx5://
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// RunUp applies every pending migration found at the root of source.
//
// A database left dirty by an interrupted run is refused; it needs a manual
// `migrate force`.
func RunUp(dsn string, source fs.FS, logger *slog.Logger) error {
	driver, err := iofs.New(source, ".")
	if err != nil {
		return fmt.Errorf("migration: open source: %w", err)
	}

	migrator, err := migrate.NewWithSourceInstance("iofs", driver, toPgx5DSN(dsn))
	if err != nil {
		return fmt.Errorf("migration: initialize: %w", err)
	}
	defer func() {
		if sourceErr, dbErr := migrator.Close(); sourceErr != nil || dbErr != nil {
			logger.Warn("migration_close_failed", slog.Any("source_error", sourceErr), slog.Any("db_error", dbErr))
		}
	}()
	migrator.Log = migrateLogger{logger: logger}

	from, dirty, err := version(migrator)
	if err != nil {
		return err
	}
	if dirty {
		return fmt.Errorf("migration: database is dirty at version %d", from)
	}

	switch err := migrator.Up(); {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("migration_up_to_date", slog.Uint64("version", uint64(from)))
		return nil
	case err != nil:
		return fmt.Errorf("migration: up from version %d: %w", from, err)
	}

	to, _, err := version(migrator)
	if err != nil {
		return err
	}
	logger.Info("migration_applied", slog.Uint64("from_version", uint64(from)), slog.Uint64("to_version", uint64(to)))
	return nil
}

// version treats a fresh database as version 0.
func version(migrator *migrate.Migrate) (uint, bool, error) {
	current, dirty, err := migrator.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("migration: read version: %w", err)
	}
	return current, dirty, nil
}

// toPgx5DSN rewrites postgres:// URLs to the scheme the pgx/v5 driver registers.
func toPgx5DSN(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, prefix); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// migrateLogger sends golang-migrate's output to slog at debug level.
type migrateLogger struct {
	logger *slog.Logger
}

func (l migrateLogger) Printf(format string, args ...any) {
	l.logger.Debug("migration_progress", slog.String("detail", strings.TrimSpace(fmt.Sprintf(format, args...))))
}

func (l migrateLogger) Verbose() bool {
	return false
}
