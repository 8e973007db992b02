package postgres

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // Postgres driver
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/monitoring/logging"
	"github.com/sboesen2/Drug-Interaction-Dashboard/migrations"
)

// migrateRunner is the subset of *migrate.Migrate used by Migrator.
type migrateRunner interface {
	Up() error
	Steps(n int) error
	Down() error
	Version() (uint, bool, error)
	Force(version int) error
	Close() (error, error)
}

// newMigrate builds a runner for the embedded migrations. Replaced in tests.
var newMigrate = func(files fs.FS, dbURL string) (migrateRunner, error) {
	src, err := iofs.New(files, ".")
	if err != nil {
		return nil, err
	}
	return migrate.NewWithSourceInstance("iofs", src, dbURL)
}

// MigrationState is the schema version recorded in schema_migrations.
type MigrationState struct {
	Version uint `json:"version"`
	Dirty   bool `json:"dirty"`
}

// Migrator applies the catalog schema embedded in the binary. Each call
// opens and closes its own connection so the application pool is never
// closed by golang-migrate.
type Migrator struct {
	dbURL  string
	files  fs.FS
	logger logging.Logger
}

// NewMigrator returns a Migrator for the database described by cfg.
func NewMigrator(cfg PostgresConfig, log logging.Logger) *Migrator {
	return &Migrator{
		dbURL:  buildDSN(cfg),
		files:  migrations.FS,
		logger: log,
	}
}

func (m *Migrator) run(fn func(r migrateRunner) error) error {
	r, err := newMigrate(m.files, m.dbURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		if srcErr, dbErr := r.Close(); srcErr != nil || dbErr != nil {
			m.logger.Warn("Failed to close migrate instance",
				logging.Any("source_error", srcErr),
				logging.Any("database_error", dbErr),
			)
		}
	}()
	return fn(r)
}

// Up applies all pending migrations. No pending migrations is not an error.
func (m *Migrator) Up() error {
	return m.run(func(r migrateRunner) error {
		if err := r.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			version, _, _ := r.Version()
			return fmt.Errorf("failed to run migrations (current version: %d): %w", version, err)
		}
		version, dirty, err := r.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			m.logger.Warn("Failed to get migration version", logging.Err(err))
		}
		m.logger.Info("Database migrations completed",
			logging.Int64("version", int64(version)),
			logging.Bool("dirty", dirty),
		)
		return nil
	})
}

// Down rolls back steps migrations, or every migration when steps <= 0.
func (m *Migrator) Down(steps int) error {
	return m.run(func(r migrateRunner) error {
		var err error
		if steps <= 0 {
			err = r.Down()
		} else {
			err = r.Steps(-steps)
		}
		if err != nil {
			if errors.Is(err, migrate.ErrNoChange) {
				return fmt.Errorf("no migrations to roll back")
			}
			return fmt.Errorf("failed to roll back migrations: %w", err)
		}
		m.logger.Info("Database migrations rolled back", logging.Int("steps", steps))
		return nil
	})
}

// Status reports the applied version. A fresh database is version 0.
func (m *Migrator) Status() (MigrationState, error) {
	var state MigrationState
	err := m.run(func(r migrateRunner) error {
		version, dirty, err := r.Version()
		if err != nil {
			if errors.Is(err, migrate.ErrNilVersion) {
				return nil
			}
			return fmt.Errorf("failed to get migration version: %w", err)
		}
		state = MigrationState{Version: version, Dirty: dirty}
		return nil
	})
	return state, err
}

// Force sets the recorded version without running migrations. It is the
// recovery path for a dirty schema.
func (m *Migrator) Force(version int) error {
	return m.run(func(r migrateRunner) error {
		if err := r.Force(version); err != nil {
			return fmt.Errorf("failed to force version %d: %w", version, err)
		}
		m.logger.Warn("Migration version forced", logging.Int("version", version))
		return nil
	})
}

//Personal.AI order the ending
