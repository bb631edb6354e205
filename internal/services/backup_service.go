// filepath: internal/services/backup_service.go
package services

import (
	"context"
	"flexnas/internal/logging"
	"flexnas/internal/models"
	"flexnas/internal/repository"
	"fmt"
	"time"
)

var _ BackupService = (*backupService)(nil)

// backupService keeps backup-job definitions. Running a job only records
// when it ran; no data is copied.
type backupService struct {
	Repo     *repository.Repository
	Activity ActivityService

	now func() time.Time
}

// NewBackupService creates a new BackupService.
func NewBackupService(repo *repository.Repository, activity ActivityService) *backupService {
	return &backupService{Repo: repo, Activity: activity, now: time.Now}
}

// SetClock overrides the time source used by RunBackup.
func (s *backupService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *backupService) ListBackups(ctx context.Context) ([]models.Backup, error) {
	backups, err := s.Repo.GetBackups(ctx)
	if err != nil {
		return nil, fromRepo(err, "backups")
	}
	return backups, nil
}

func (s *backupService) GetBackup(ctx context.Context, id int64) (*models.Backup, error) {
	b, err := s.Repo.GetBackupByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err, fmt.Sprintf("backup %d", id))
	}
	return b, nil
}

// CreateBackup stores a new job definition with defaults applied.
func (s *backupService) CreateBackup(ctx context.Context, actor *models.User, payload models.BackupPayload) (*models.Backup, error) {
	if err := requirePermission(actor, models.PermManageBackups); err != nil {
		return nil, err
	}
	if err := validateStruct(payload); err != nil {
		return nil, err
	}
	b := &models.Backup{
		Name:            payload.Name,
		SourcePath:      payload.SourcePath,
		DestinationPath: payload.DestinationPath,
		Schedule:        payload.Schedule,
		RetentionDays:   payload.RetentionDays,
		CreatedBy:       actor.ID,
		Creator:         actor.Username,
		Status:          models.BackupStatusActive,
		Type:            payload.Type,
	}
	if b.RetentionDays == 0 {
		b.RetentionDays = models.DefaultRetentionDays
	}
	if b.Type == "" {
		b.Type = models.DefaultBackupType
	}
	if err := s.Repo.CreateBackup(ctx, b); err != nil {
		return nil, fromRepo(err, fmt.Sprintf("backup '%s'", payload.Name))
	}
	s.Activity.Record(ctx, actor, ActionCreateBackup, fmt.Sprintf("Created backup %s", b.Name))
	return b, nil
}

// RunBackup stamps last_run with the current second and next_run with
// last_run plus the retention period. The status is left alone.
func (s *backupService) RunBackup(ctx context.Context, actor *models.User, id int64) (*models.Backup, error) {
	if err := requirePermission(actor, models.PermManageBackups); err != nil {
		return nil, err
	}
	b, err := s.Repo.GetBackupByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err, fmt.Sprintf("backup %d", id))
	}
	lastRun := s.now().UTC().Truncate(time.Second)
	nextRun := lastRun.AddDate(0, 0, b.RetentionDays)
	if err := s.Repo.SetBackupRun(ctx, id, lastRun, nextRun); err != nil {
		return nil, fromRepo(err, fmt.Sprintf("backup %d", id))
	}
	b.LastRun = &lastRun
	b.NextRun = &nextRun
	logging.Log.Infof("BackupService: backup '%s' marked as run by '%s'", b.Name, actor.Username)
	s.Activity.Record(ctx, actor, ActionRunBackup, fmt.Sprintf("Ran backup %s", b.Name))
	return b, nil
}

func (s *backupService) DeleteBackup(ctx context.Context, actor *models.User, id int64) error {
	if err := requirePermission(actor, models.PermManageBackups); err != nil {
		return err
	}
	b, err := s.Repo.GetBackupByID(ctx, id)
	if err != nil {
		return fromRepo(err, fmt.Sprintf("backup %d", id))
	}
	if err := s.Repo.DeleteBackup(ctx, id); err != nil {
		return fromRepo(err, fmt.Sprintf("backup %d", id))
	}
	s.Activity.Record(ctx, actor, ActionDeleteBackup, fmt.Sprintf("Deleted backup %s", b.Name))
	return nil
}
