// filepath: internal/services/activity_service.go
package services

import (
	"context"
	"flexnas/internal/logging"
	"flexnas/internal/models"
	"flexnas/internal/repository"
)

// Activity log action names.
const (
	ActionLogin                 = "login"
	ActionLogout                = "logout"
	ActionCreateUser            = "create_user"
	ActionUpdateUser            = "update_user"
	ActionChangePassword        = "change_password"
	ActionCreateShare           = "create_share"
	ActionUpdateShare           = "update_share"
	ActionDeleteShare           = "delete_share"
	ActionCreateBackup          = "create_backup"
	ActionDeleteBackup          = "delete_backup"
	ActionRunBackup             = "run_backup"
	ActionCreateQuota           = "create_quota"
	ActionUpdateQuota           = "update_quota"
	ActionDeleteQuota           = "delete_quota"
	ActionUpdateSystemSettings  = "update_system_settings"
	ActionUpdateNetworkSettings = "update_network_settings"
	ActionUpdateStorageSettings = "update_storage_settings"
	ActionUpdateProtocol        = "update_protocol"
	ActionUpdateProtocolShare   = "update_protocol_share"
	ActionUpdateService         = "update_service"
)

// MaxActivityLimit caps the ?limit= of the activity listing.
const MaxActivityLimit = 500

var _ ActivityService = (*activityService)(nil)

// activityService writes the activity log and mirrors entries to the auditor.
type activityService struct {
	Repo    *repository.Repository
	Auditor Auditor
}

// NewActivityService creates a new ActivityService. auditor may be nil.
func NewActivityService(repo *repository.Repository, auditor Auditor) *activityService {
	return &activityService{Repo: repo, Auditor: auditor}
}

// Record appends an entry. Failures are logged, never returned: the
// operation being recorded has already succeeded.
func (s *activityService) Record(ctx context.Context, actor *models.User, action, details string) {
	var (
		userID *int64
		name   string
	)
	if actor != nil {
		id := actor.ID
		userID = &id
		name = actor.Username
	}
	if _, err := s.Repo.InsertActivity(ctx, userID, action, details); err != nil {
		logging.Log.Errorf("ActivityService: failed to record '%s' for '%s': %v", action, name, err)
	}
	if s.Auditor != nil {
		s.Auditor.Log(ctx, action, name, details, nil)
	}
}

// ListRecent returns the newest entries. limit is clamped to 1..MaxActivityLimit;
// callers apply models.DefaultActivityLimit when no limit was given.
func (s *activityService) ListRecent(ctx context.Context, limit int) ([]models.ActivityEntry, error) {
	switch {
	case limit < 1:
		limit = 1
	case limit > MaxActivityLimit:
		limit = MaxActivityLimit
	}
	entries, err := s.Repo.GetRecentActivity(ctx, limit)
	if err != nil {
		return nil, fromRepo(err, "activity log")
	}
	return entries, nil
}
