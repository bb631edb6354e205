// filepath: internal/repository/schema.go
package repository

import (
	"database/sql"
	"errors"
	"flexnas/internal/db/migrations"
	"flexnas/internal/logging"
	"fmt"

	"github.com/pressly/goose/v3"
)

func setupGoose() error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	return nil
}

// latestMigrationVersion returns the newest version embedded in the binary.
func latestMigrationVersion() (int64, error) {
	migrationSet, err := goose.CollectMigrations(".", 0, goose.MaxVersion)
	if err != nil {
		return 0, fmt.Errorf("failed to collect migrations: %w", err)
	}
	last, err := migrationSet.Last()
	if err != nil {
		return 0, fmt.Errorf("no migrations embedded: %w", err)
	}
	return last.Version, nil
}

func (s *Repository) versionTableExists() (bool, error) {
	var name string
	err := s.DB.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='goose_db_version'").Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// EnsureSchemaBootstrapped migrates a brand-new database to the latest version.
// A database that already carries a goose version table is left alone, so
// upgrades stay an explicit 'migrate up'.
func (s *Repository) EnsureSchemaBootstrapped() error {
	exists, err := s.versionTableExists()
	if err != nil {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}
	if exists {
		logging.Log.Debug("EnsureSchemaBootstrapped: version table found, skipping auto-migration.")
		return nil
	}

	logging.Log.Info("Fresh database detected, applying all migrations...")
	if err := setupGoose(); err != nil {
		return err
	}
	if err := goose.Up(s.DB, "."); err != nil {
		return fmt.Errorf("failed to bootstrap schema: %w", err)
	}
	return nil
}

// ValidateSchema fails if the database is behind the embedded migrations.
func (s *Repository) ValidateSchema() error {
	if err := setupGoose(); err != nil {
		return err
	}
	latest, err := latestMigrationVersion()
	if err != nil {
		return err
	}

	exists, err := s.versionTableExists()
	if err != nil {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}
	if !exists {
		return fmt.Errorf("database schema is outdated (version 0, expected %d): run 'flexnas migrate up'", latest)
	}

	var current sql.NullInt64
	if err := s.DB.QueryRow("SELECT MAX(version_id) FROM goose_db_version WHERE is_applied = 1").Scan(&current); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if !current.Valid || current.Int64 < latest {
		return fmt.Errorf("database schema is outdated (version %d, expected %d): run 'flexnas migrate up'", current.Int64, latest)
	}
	return nil
}

// Migrate runs a goose command ("up", "down", "status") against the database.
func (s *Repository) Migrate(command string) error {
	if err := setupGoose(); err != nil {
		return err
	}

	// The migrations directory is embedded, so "." is the root of the FS.
	dir := "."
	switch command {
	case "up":
		return goose.Up(s.DB, dir)
	case "down":
		return goose.Down(s.DB, dir)
	case "status":
		return goose.Status(s.DB, dir)
	default:
		return fmt.Errorf("unknown migration command: %s", command)
	}
}
