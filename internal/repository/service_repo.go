// filepath: internal/repository/service_repo.go
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"flexnas/internal/logging"
	"flexnas/internal/models"
	"fmt"

	"github.com/Masterminds/squirrel"
)

var serviceColumns = []string{"id", "name", "type", "port", "enabled", "config", "updated_at"}

func scanService(row rowScanner) (*models.Service, error) {
	var (
		svc       models.Service
		config    string
		updatedAt int64
	)
	if err := row.Scan(&svc.ID, &svc.Name, &svc.Type, &svc.Port, &svc.Enabled, &config, &updatedAt); err != nil {
		return nil, err
	}
	svc.Config = map[string]interface{}{}
	if config != "" {
		if err := json.Unmarshal([]byte(config), &svc.Config); err != nil {
			return nil, fmt.Errorf("corrupt config for service '%s': %w", svc.Name, err)
		}
	}
	svc.UpdatedAt = unixToTime(updatedAt)
	return &svc, nil
}

func encodeConfig(config map[string]interface{}) (string, error) {
	if config == nil {
		config = map[string]interface{}{}
	}
	b, err := json.Marshal(config)
	return string(b), err
}

// GetServices returns every service row, optionally restricted to one type.
func (s *Repository) GetServices(ctx context.Context, serviceType string) ([]models.Service, error) {
	q := s.Builder.Select(serviceColumns...).From("services").OrderBy("id")
	if serviceType != "" {
		q = q.Where(squirrel.Eq{"type": serviceType})
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := make([]models.Service, 0)
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, *svc)
	}
	return services, rows.Err()
}

func (s *Repository) getServiceWhere(ctx context.Context, q queryRower, pred squirrel.Eq) (*models.Service, error) {
	query, args, err := s.Builder.Select(serviceColumns...).From("services").Where(pred).ToSql()
	if err != nil {
		return nil, err
	}
	svc, err := scanService(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, translateError(err)
	}
	return svc, nil
}

// GetServiceByID retrieves a service row by id.
func (s *Repository) GetServiceByID(ctx context.Context, id int64) (*models.Service, error) {
	return s.getServiceWhere(ctx, s.DB, squirrel.Eq{"id": id})
}

// GetServiceByName retrieves a service row by its unique name.
func (s *Repository) GetServiceByName(ctx context.Context, name string) (*models.Service, error) {
	return s.getServiceWhere(ctx, s.DB, squirrel.Eq{"name": name})
}

// ModifyServiceByID loads a service, lets fn mutate it and writes it back,
// all inside one transaction.
func (s *Repository) ModifyServiceByID(ctx context.Context, id int64, fn func(*models.Service) error) (*models.Service, error) {
	return s.modifyService(ctx, squirrel.Eq{"id": id}, fn)
}

// ModifyServiceByName is ModifyServiceByID keyed by name.
func (s *Repository) ModifyServiceByName(ctx context.Context, name string, fn func(*models.Service) error) (*models.Service, error) {
	return s.modifyService(ctx, squirrel.Eq{"name": name}, fn)
}

// modifyService is the read-merge-write used by every service update.
// Concurrent writers are serialized by the transaction, so two merges into
// different keys of the same config both survive.
func (s *Repository) modifyService(ctx context.Context, pred squirrel.Eq, fn func(*models.Service) error) (*models.Service, error) {
	var updated *models.Service
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		svc, err := s.getServiceWhere(ctx, tx, pred)
		if err != nil {
			return err
		}
		if err := fn(svc); err != nil {
			return err
		}
		config, err := encodeConfig(svc.Config)
		if err != nil {
			return err
		}
		now := s.timestamp()
		query, args, err := s.Builder.Update("services").
			Set("port", svc.Port).
			Set("enabled", svc.Enabled).
			Set("config", config).
			Set("updated_at", now).
			Where(squirrel.Eq{"id": svc.ID}).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return translateError(err)
		}
		svc.UpdatedAt = unixToTime(now)
		updated = svc
		return nil
	})
	if err != nil {
		return nil, err
	}
	logging.Log.Debugf("modifyService: service '%s' updated", updated.Name)
	return updated, nil
}

// CreateService inserts a service row and fills in id and updated_at.
func (s *Repository) CreateService(ctx context.Context, svc *models.Service) error {
	config, err := encodeConfig(svc.Config)
	if err != nil {
		return err
	}
	now := s.timestamp()
	query, args, err := s.Builder.Insert("services").
		Columns("name", "type", "port", "enabled", "config", "updated_at").
		Values(svc.Name, svc.Type, svc.Port, svc.Enabled, config, now).
		ToSql()
	if err != nil {
		return err
	}
	res, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return translateError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	svc.ID = id
	svc.UpdatedAt = unixToTime(now)
	return nil
}

// queryRower is satisfied by *sql.DB and *sql.Tx.
type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}
