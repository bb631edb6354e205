// filepath: internal/repository/recovery_repo.go
package repository

import (
	"context"
	"database/sql"
	"errors"
	"flexnas/internal/logging"
	"flexnas/internal/models"
	"fmt"

	"github.com/Masterminds/squirrel"
)

// RestoreDefaultProtocols re-creates any seeded protocol row that has gone
// missing. With reset set, existing protocol rows are also returned to their
// seeded port and config and disabled; per-share overrides are dropped.
// It returns the number of rows inserted or reset.
func (s *Repository) RestoreDefaultProtocols(ctx context.Context, reset bool) (int, error) {
	fixed := 0
	for _, def := range models.DefaultProtocols() {
		def := def
		existing, err := s.GetServiceByName(ctx, def.Name)
		switch {
		case errors.Is(err, ErrNotFound):
			if err := s.CreateService(ctx, &def); err != nil {
				return fixed, fmt.Errorf("failed to restore protocol '%s': %w", def.Name, err)
			}
			logging.Log.Infof("Restored missing protocol '%s'", def.Name)
			fixed++
		case err != nil:
			return fixed, fmt.Errorf("failed to read protocol '%s': %w", def.Name, err)
		case reset:
			if err := s.resetService(ctx, existing.ID, def); err != nil {
				return fixed, fmt.Errorf("failed to reset protocol '%s': %w", def.Name, err)
			}
			logging.Log.Infof("Reset protocol '%s' to defaults", def.Name)
			fixed++
		}
	}
	return fixed, nil
}

func (s *Repository) resetService(ctx context.Context, id int64, def models.Service) error {
	config, err := encodeConfig(def.Config)
	if err != nil {
		return err
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		query, args, err := s.Builder.Update("services").
			Set("type", def.Type).
			Set("port", def.Port).
			Set("enabled", false).
			Set("config", config).
			Set("updated_at", s.timestamp()).
			Where(squirrel.Eq{"id": id}).
			ToSql()
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, query, args...)
		return err
	})
}
