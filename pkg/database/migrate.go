package database

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
)

// MigrationDirection selects what RunMigrations does.
type MigrationDirection string

const (
	MigrateUp   MigrationDirection = "up"
	MigrateDown MigrationDirection = "down"
)

// MigrationStatus is the schema version after a migration run.
type MigrationStatus struct {
	Version uint
	Dirty   bool
	Changed bool
}

// RunMigrations applies (up) or rolls back one step (down) of the migrations in source.
func RunMigrations(databaseURL string, source fs.FS, direction MigrationDirection, logger *slog.Logger) (MigrationStatus, error) {
	m, closeFn, err := newMigrator(databaseURL, source)
	if err != nil {
		return MigrationStatus{}, err
	}
	defer closeFn(logger)

	switch direction {
	case MigrateUp:
		err = m.Up()
	case MigrateDown:
		err = m.Steps(-1)
	default:
		return MigrationStatus{}, fmt.Errorf("unknown migration direction %q", direction)
	}

	changed := true
	if errors.Is(err, migrate.ErrNoChange) {
		changed = false
		err = nil
	}
	if err != nil {
		return MigrationStatus{}, fmt.Errorf("failed to apply migrations (%s): %w", direction, err)
	}

	status, err := versionOf(m)
	status.Changed = changed
	return status, err
}

// MigrationVersion reports the current schema version without changing it.
func MigrationVersion(databaseURL string, source fs.FS, logger *slog.Logger) (MigrationStatus, error) {
	m, closeFn, err := newMigrator(databaseURL, source)
	if err != nil {
		return MigrationStatus{}, err
	}
	defer closeFn(logger)
	return versionOf(m)
}

func versionOf(m *migrate.Migrate) (MigrationStatus, error) {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return MigrationStatus{}, nil
	}
	if err != nil {
		return MigrationStatus{}, fmt.Errorf("failed to read migration version: %w", err)
	}
	return MigrationStatus{Version: version, Dirty: dirty}, nil
}

func newMigrator(databaseURL string, source fs.FS) (*migrate.Migrate, func(*slog.Logger), error) {
	// Open a temporary standard sql.DB connection for migrations
	// Using pgx/v5/stdlib driver to be compatible with the main pool
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database connection for migrations: %w", err)
	}
	if err := migrationDB.Ping(); err != nil {
		migrationDB.Close()
		return nil, nil, fmt.Errorf("failed to ping database for migrations: %w", err)
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		migrationDB.Close()
		return nil, nil, fmt.Errorf("could not create postgres driver instance for migrations: %w", err)
	}

	src, err := iofs.New(source, ".")
	if err != nil {
		migrationDB.Close()
		return nil, nil, fmt.Errorf("could not read embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		migrationDB.Close()
		return nil, nil, fmt.Errorf("could not create migrate instance: %w", err)
	}

	closeFn := func(logger *slog.Logger) {
		sourceErr, dbErr := m.Close()
		if sourceErr != nil {
			logger.Error("Migration source error", slog.String("error", sourceErr.Error()))
		}
		if dbErr != nil {
			logger.Error("Migration database error", slog.String("error", dbErr.Error()))
		}
	}
	return m, closeFn, nil
}
