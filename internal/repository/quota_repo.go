// filepath: internal/repository/quota_repo.go
package repository

import (
	"context"
	"flexnas/internal/models"

	"github.com/Masterminds/squirrel"
)

var quotaColumns = []string{
	"q.id", "q.user_id", "COALESCE(u.username, '')", "q.path", "q.soft_limit", "q.hard_limit",
	"q.used_space", "q.grace_period", "q.created_at", "q.updated_at",
}

func (s *Repository) selectQuotas() squirrel.SelectBuilder {
	return s.Builder.Select(quotaColumns...).
		From("quotas q").
		LeftJoin("users u ON u.id = q.user_id")
}

func scanQuota(row rowScanner) (*models.Quota, error) {
	var (
		q         models.Quota
		createdAt int64
		updatedAt int64
	)
	if err := row.Scan(&q.ID, &q.UserID, &q.Username, &q.Path, &q.SoftLimit, &q.HardLimit,
		&q.UsedSpace, &q.GracePeriod, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	q.CreatedAt = unixToTime(createdAt)
	q.UpdatedAt = unixToTime(updatedAt)
	return &q, nil
}

func (s *Repository) queryQuotas(ctx context.Context, b squirrel.SelectBuilder) ([]models.Quota, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	quotas := make([]models.Quota, 0)
	for rows.Next() {
		q, err := scanQuota(rows)
		if err != nil {
			return nil, err
		}
		quotas = append(quotas, *q)
	}
	return quotas, rows.Err()
}

// GetQuotas returns every quota ordered by id.
func (s *Repository) GetQuotas(ctx context.Context) ([]models.Quota, error) {
	return s.queryQuotas(ctx, s.selectQuotas().OrderBy("q.id"))
}

// GetQuotasByUser returns the quotas owned by userID.
func (s *Repository) GetQuotasByUser(ctx context.Context, userID int64) ([]models.Quota, error) {
	return s.queryQuotas(ctx, s.selectQuotas().Where(squirrel.Eq{"q.user_id": userID}).OrderBy("q.id"))
}

// GetQuotaByID retrieves one quota.
func (s *Repository) GetQuotaByID(ctx context.Context, id int64) (*models.Quota, error) {
	query, args, err := s.selectQuotas().Where(squirrel.Eq{"q.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	q, err := scanQuota(s.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, translateError(err)
	}
	return q, nil
}

// CountQuotas returns the number of quotas.
func (s *Repository) CountQuotas(ctx context.Context) (int, error) {
	var n int
	err := s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM quotas").Scan(&n)
	return n, err
}

// CreateQuota inserts q with used_space 0 and fills in id and timestamps.
func (s *Repository) CreateQuota(ctx context.Context, q *models.Quota) error {
	now := s.timestamp()
	query, args, err := s.Builder.Insert("quotas").
		Columns("user_id", "path", "soft_limit", "hard_limit", "used_space", "grace_period", "created_at", "updated_at").
		Values(q.UserID, q.Path, q.SoftLimit, q.HardLimit, 0, q.GracePeriod, now, now).
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
	q.ID = id
	q.UsedSpace = 0
	q.CreatedAt = unixToTime(now)
	q.UpdatedAt = q.CreatedAt
	return nil
}

// UpdateQuotaLimits replaces the limits of a quota and stamps updated_at.
func (s *Repository) UpdateQuotaLimits(ctx context.Context, id int64, soft, hard int64, gracePeriod int) error {
	query, args, err := s.Builder.Update("quotas").
		Set("soft_limit", soft).
		Set("hard_limit", hard).
		Set("grace_period", gracePeriod).
		Set("updated_at", s.timestamp()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

// DeleteQuota removes a quota by id.
func (s *Repository) DeleteQuota(ctx context.Context, id int64) error {
	query, args, err := s.Builder.Delete("quotas").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	res, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return checkAffected(res)
}
