package postgres

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq" // database/sql driver used by the migrator
	"go.trai.ch/scango/internal/core/domain"
	"go.trai.ch/scango/internal/core/ports"
	"go.trai.ch/zerr"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations applies all pending migrations to the database at dsn.
func RunMigrations(dsn string, logger ports.Logger) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return zerr.Wrap(domain.ErrMigrationFailed, err.Error())
	}
	defer func() {
		_ = db.Close()
	}()

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return zerr.Wrap(domain.ErrMigrationFailed, err.Error())
	}

	driver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		return zerr.Wrap(domain.ErrMigrationFailed, err.Error())
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return zerr.Wrap(domain.ErrMigrationFailed, err.Error())
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return zerr.Wrap(domain.ErrMigrationFailed, err.Error())
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return zerr.Wrap(domain.ErrMigrationFailed, err.Error())
	}
	if dirty {
		logger.Warn(fmt.Sprintf("catalog schema at version %d (dirty)", version))
		return nil
	}
	logger.Info(fmt.Sprintf("catalog schema at version %d", version))
	return nil
}
