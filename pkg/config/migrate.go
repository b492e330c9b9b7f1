package config

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	log "github.com/sirupsen/logrus"
)

// DefaultMigrationsDir holds the SQL migrations shipped with the repository
const DefaultMigrationsDir = "migrations"

func newMigrator(dir string) (*migrate.Migrate, error) {
	if DB == nil {
		return nil, errors.New("database not initialized")
	}
	db, err := DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+dir, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

// ExecuteMigrations runs all pending database migrations from dir
func ExecuteMigrations(dir string) error {
	m, err := newMigrator(dir)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations completed successfully")
	return nil
}

// RollbackMigration rolls back the last migration in dir
func RollbackMigration(dir string) error {
	m, err := newMigrator(dir)
	if err != nil {
		return err
	}

	if err := m.Steps(-1); err != nil {
		return fmt.Errorf("failed to rollback migration: %w", err)
	}

	log.Info("Migration rolled back successfully")
	return nil
}
