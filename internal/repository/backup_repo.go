// filepath: internal/repository/backup_repo.go
package repository

import (
	"context"
	"database/sql"
	"flexnas/internal/models"
	"time"

	"github.com/Masterminds/squirrel"
)

var backupColumns = []string{
	"b.id", "b.name", "b.source_path", "b.destination_path", "b.schedule", "b.last_run", "b.next_run",
	"b.retention_days", "b.created_by", "COALESCE(u.username, '')", "b.created_at", "b.status", "b.type",
}

func (s *Repository) selectBackups() squirrel.SelectBuilder {
	return s.Builder.Select(backupColumns...).
		From("backups b").
		LeftJoin("users u ON u.id = b.created_by")
}

func scanBackup(row rowScanner) (*models.Backup, error) {
	var (
		b         models.Backup
		lastRun   sql.NullInt64
		nextRun   sql.NullInt64
		createdAt int64
	)
	if err := row.Scan(&b.ID, &b.Name, &b.SourcePath, &b.DestinationPath, &b.Schedule, &lastRun, &nextRun,
		&b.RetentionDays, &b.CreatedBy, &b.Creator, &createdAt, &b.Status, &b.Type); err != nil {
		return nil, err
	}
	b.LastRun = nullUnixToTime(lastRun)
	b.NextRun = nullUnixToTime(nextRun)
	b.CreatedAt = unixToTime(createdAt)
	return &b, nil
}

// GetBackups returns every backup job ordered by id.
func (s *Repository) GetBackups(ctx context.Context) ([]models.Backup, error) {
	query, args, err := s.selectBackups().OrderBy("b.id").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	backups := make([]models.Backup, 0)
	for rows.Next() {
		b, err := scanBackup(rows)
		if err != nil {
			return nil, err
		}
		backups = append(backups, *b)
	}
	return backups, rows.Err()
}

// GetBackupByID retrieves one backup job.
func (s *Repository) GetBackupByID(ctx context.Context, id int64) (*models.Backup, error) {
	query, args, err := s.selectBackups().Where(squirrel.Eq{"b.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	b, err := scanBackup(s.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, translateError(err)
	}
	return b, nil
}

// CountBackups returns the number of backup jobs.
func (s *Repository) CountBackups(ctx context.Context) (int, error) {
	var n int
	err := s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM backups").Scan(&n)
	return n, err
}

// CreateBackup inserts b and fills in its id and created_at.
func (s *Repository) CreateBackup(ctx context.Context, b *models.Backup) error {
	createdAt := s.timestamp()
	query, args, err := s.Builder.Insert("backups").
		Columns("name", "source_path", "destination_path", "schedule", "retention_days", "created_by", "created_at", "status", "type").
		Values(b.Name, b.SourcePath, b.DestinationPath, b.Schedule, b.RetentionDays, b.CreatedBy, createdAt, b.Status, b.Type).
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
	b.ID = id
	b.CreatedAt = unixToTime(createdAt)
	return nil
}

// SetBackupRun stores the last and next run timestamps of a job.
func (s *Repository) SetBackupRun(ctx context.Context, id int64, lastRun, nextRun time.Time) error {
	query, args, err := s.Builder.Update("backups").
		Set("last_run", lastRun.Unix()).
		Set("next_run", nextRun.Unix()).
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

// DeleteBackup removes a backup job by id.
func (s *Repository) DeleteBackup(ctx context.Context, id int64) error {
	query, args, err := s.Builder.Delete("backups").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	res, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return checkAffected(res)
}
