package migration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	authdomain "github.com/smallbiznis/heritage/internal/auth/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Run creates the application-owned tables (users, sessions). The catalog
// tables are never touched. Postgres goes through the versioned SQL files;
// other dialects fall back to gorm AutoMigrate.
func Run(ctx context.Context, conn *gorm.DB, log *zap.Logger) error {
	if conn == nil {
		return errors.New("migration database handle is required")
	}

	dialect := conn.Dialector.Name()
	if dialect != "postgres" {
		log.Info("auto-migrating auth tables", zap.String("dialect", dialect))
		return conn.WithContext(ctx).AutoMigrate(&authdomain.User{}, &authdomain.Session{})
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	version, err := RunMigrations(sqlDB)
	if err != nil {
		return err
	}
	log.Info("migrations applied", zap.Uint("version", version))
	return nil
}

// RunMigrations applies the embedded postgres migrations and returns the
// resulting schema version.
func RunMigrations(db *sql.DB) (uint, error) {
	if db == nil {
		return 0, errors.New("migration database handle is required")
	}

	source, err := newSource()
	if err != nil {
		return 0, err
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{MigrationsTable: "heritage_schema_migrations"})
	if err != nil {
		return 0, fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return 0, fmt.Errorf("create migrator: %w", err)
	}

	upErr := migrator.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return 0, fmt.Errorf("apply migrations: %w", upErr)
	}
	// Do not call migrator.Close here because it would close the shared *sql.DB.

	version, _, err := migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return 0, err
	}
	return version, nil
}

func newSource() (source.Driver, error) {
	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return nil, fmt.Errorf("open migrations: %w", err)
	}
	driver, err := iofs.New(sub, ".")
	if err != nil {
		return nil, fmt.Errorf("create migration source: %w", err)
	}
	return driver, nil
}
