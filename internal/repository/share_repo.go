// filepath: internal/repository/share_repo.go
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"flexnas/internal/logging"
	"flexnas/internal/models"

	"github.com/Masterminds/squirrel"
)

var shareColumns = []string{
	"s.id", "s.name", "s.path", "s.description", "s.created_by", "COALESCE(u.username, '')",
	"s.created_at", "s.is_public", "s.allowed_users", "s.read_only",
}

func (s *Repository) selectShares() squirrel.SelectBuilder {
	return s.Builder.Select(shareColumns...).
		From("shares s").
		LeftJoin("users u ON u.id = s.created_by")
}

func scanShare(row rowScanner) (*models.Share, error) {
	var (
		share     models.Share
		createdAt int64
		allowed   string
	)
	if err := row.Scan(&share.ID, &share.Name, &share.Path, &share.Description, &share.CreatedBy, &share.Creator,
		&createdAt, &share.IsPublic, &allowed, &share.ReadOnly); err != nil {
		return nil, err
	}
	share.CreatedAt = unixToTime(createdAt)
	users, err := decodeStringList(allowed)
	if err != nil {
		return nil, err
	}
	share.AllowedUsers = users
	return &share, nil
}

func encodeStringList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	return string(b), err
}

func decodeStringList(raw string) ([]string, error) {
	list := []string{}
	if raw == "" {
		return list, nil
	}
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Repository) queryShares(ctx context.Context, q squirrel.SelectBuilder) ([]models.Share, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shares := make([]models.Share, 0)
	for rows.Next() {
		share, err := scanShare(rows)
		if err != nil {
			return nil, err
		}
		shares = append(shares, *share)
	}
	return shares, rows.Err()
}

// GetShares returns every share ordered by id.
func (s *Repository) GetShares(ctx context.Context) ([]models.Share, error) {
	return s.queryShares(ctx, s.selectShares().OrderBy("s.id"))
}

// GetSharesVisibleTo returns public shares and shares whose allowed_users
// contains username as an exact element.
func (s *Repository) GetSharesVisibleTo(ctx context.Context, username string) ([]models.Share, error) {
	q := s.selectShares().
		Where(squirrel.Or{
			squirrel.Eq{"s.is_public": true},
			squirrel.Expr("EXISTS (SELECT 1 FROM json_each(s.allowed_users) WHERE json_each.value = ?)", username),
		}).
		OrderBy("s.id")
	return s.queryShares(ctx, q)
}

// GetShareByID retrieves a share by id.
func (s *Repository) GetShareByID(ctx context.Context, id int64) (*models.Share, error) {
	query, args, err := s.selectShares().Where(squirrel.Eq{"s.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	share, err := scanShare(s.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, translateError(err)
	}
	return share, nil
}

// GetShareByName retrieves a share by its unique name.
func (s *Repository) GetShareByName(ctx context.Context, name string) (*models.Share, error) {
	query, args, err := s.selectShares().Where(squirrel.Eq{"s.name": name}).ToSql()
	if err != nil {
		return nil, err
	}
	share, err := scanShare(s.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, translateError(err)
	}
	return share, nil
}

// CountShares returns the number of shares.
func (s *Repository) CountShares(ctx context.Context) (int, error) {
	var n int
	err := s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM shares").Scan(&n)
	return n, err
}

// CreateShare inserts share and fills in its id and created_at.
func (s *Repository) CreateShare(ctx context.Context, share *models.Share) error {
	allowed, err := encodeStringList(share.AllowedUsers)
	if err != nil {
		return err
	}
	createdAt := s.timestamp()
	query, args, err := s.Builder.Insert("shares").
		Columns("name", "path", "description", "created_by", "created_at", "is_public", "allowed_users", "read_only").
		Values(share.Name, share.Path, share.Description, share.CreatedBy, createdAt, share.IsPublic, allowed, share.ReadOnly).
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
	share.ID = id
	share.CreatedAt = unixToTime(createdAt)
	if share.AllowedUsers == nil {
		share.AllowedUsers = []string{}
	}
	logging.Log.Debugf("CreateShare: Share '%s' created with ID %d", share.Name, id)
	return nil
}

// UpdateShare rewrites a share's mutable fields. A rename carries the
// share's per-protocol overrides over to the new name in the same transaction.
func (s *Repository) UpdateShare(ctx context.Context, share *models.Share) error {
	allowed, err := encodeStringList(share.AllowedUsers)
	if err != nil {
		return err
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var oldName string
		query, args, err := s.Builder.Select("name").From("shares").Where(squirrel.Eq{"id": share.ID}).ToSql()
		if err != nil {
			return err
		}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&oldName); err != nil {
			return translateError(err)
		}

		query, args, err = s.Builder.Update("shares").
			Set("name", share.Name).
			Set("path", share.Path).
			Set("description", share.Description).
			Set("is_public", share.IsPublic).
			Set("allowed_users", allowed).
			Set("read_only", share.ReadOnly).
			Where(squirrel.Eq{"id": share.ID}).
			ToSql()
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return translateError(err)
		}
		if err := checkAffected(res); err != nil {
			return err
		}
		if oldName == share.Name {
			return nil
		}
		return s.moveShareOverrides(ctx, tx, oldName, share.Name)
	})
}

// DeleteShare removes a share by id along with its per-protocol overrides.
func (s *Repository) DeleteShare(ctx context.Context, id int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var name string
		query, args, err := s.Builder.Select("name").From("shares").Where(squirrel.Eq{"id": id}).ToSql()
		if err != nil {
			return err
		}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&name); err != nil {
			return translateError(err)
		}

		query, args, err = s.Builder.Delete("shares").Where(squirrel.Eq{"id": id}).ToSql()
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		if err := checkAffected(res); err != nil {
			return err
		}
		return s.moveShareOverrides(ctx, tx, name, "")
	})
}

// moveShareOverrides re-keys the override stored under from to to in every
// service config. An empty to drops the override.
func (s *Repository) moveShareOverrides(ctx context.Context, tx *sql.Tx, from, to string) error {
	query, args, err := s.Builder.Select(serviceColumns...).From("services").ToSql()
	if err != nil {
		return err
	}
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	var changed []*models.Service
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			rows.Close()
			return err
		}
		overrides, _ := svc.Config[models.ProtocolSharesKey].(map[string]interface{})
		override, ok := overrides[from]
		if !ok {
			continue
		}
		delete(overrides, from)
		if to != "" {
			overrides[to] = override
		}
		changed = append(changed, svc)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	for _, svc := range changed {
		config, err := encodeConfig(svc.Config)
		if err != nil {
			return err
		}
		query, args, err := s.Builder.Update("services").
			Set("config", config).
			Where(squirrel.Eq{"id": svc.ID}).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return translateError(err)
		}
		logging.Log.Debugf("moveShareOverrides: service '%s' override '%s' -> '%s'", svc.Name, from, to)
	}
	return nil
}
