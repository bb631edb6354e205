// filepath: internal/services/quota_service.go
package services

import (
	"context"
	"flexnas/internal/models"
	"flexnas/internal/repository"
	"fmt"
)

var _ QuotaService = (*quotaService)(nil)

// quotaService keeps per-user quota records. Limits are never enforced and
// used_space is never recomputed.
type quotaService struct {
	Repo     *repository.Repository
	Activity ActivityService
}

// NewQuotaService creates a new QuotaService.
func NewQuotaService(repo *repository.Repository, activity ActivityService) *quotaService {
	return &quotaService{Repo: repo, Activity: activity}
}

// ListQuotas returns all quotas for admins and the actor's own otherwise.
func (s *quotaService) ListQuotas(ctx context.Context, actor *models.User) ([]models.Quota, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}
	var (
		quotas []models.Quota
		err    error
	)
	if actor.IsAdmin() {
		quotas, err = s.Repo.GetQuotas(ctx)
	} else {
		quotas, err = s.Repo.GetQuotasByUser(ctx, actor.ID)
	}
	if err != nil {
		return nil, fromRepo(err, "quotas")
	}
	return quotas, nil
}

// GetQuota returns one quota owned by actor, or any quota for admins.
func (s *quotaService) GetQuota(ctx context.Context, actor *models.User, id int64) (*models.Quota, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}
	q, err := s.Repo.GetQuotaByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err, fmt.Sprintf("quota %d", id))
	}
	if !actor.IsAdmin() && q.UserID != actor.ID {
		return nil, ErrForbidden
	}
	return q, nil
}

// GetUserQuotas returns the quotas of username. Non-admins may only ask for themselves.
func (s *quotaService) GetUserQuotas(ctx context.Context, actor *models.User, username string) ([]models.Quota, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}
	if username != actor.Username && !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	user, err := s.Repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fromRepo(err, fmt.Sprintf("user '%s'", username))
	}
	quotas, err := s.Repo.GetQuotasByUser(ctx, user.ID)
	if err != nil {
		return nil, fromRepo(err, "quotas")
	}
	return quotas, nil
}

// CreateQuota adds a quota for an existing user. Admin only.
func (s *quotaService) CreateQuota(ctx context.Context, actor *models.User, payload models.QuotaCreatePayload) (*models.Quota, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := validateStruct(payload); err != nil {
		return nil, err
	}
	user, err := s.Repo.GetUserByUsername(ctx, payload.Username)
	if err != nil {
		return nil, fromRepo(err, fmt.Sprintf("user '%s'", payload.Username))
	}
	q := &models.Quota{
		UserID:      user.ID,
		Username:    user.Username,
		Path:        payload.Path,
		SoftLimit:   payload.SoftLimit,
		HardLimit:   payload.HardLimit,
		GracePeriod: models.DefaultGracePeriodDays,
	}
	if payload.GracePeriod != nil {
		q.GracePeriod = *payload.GracePeriod
	}
	if err := s.Repo.CreateQuota(ctx, q); err != nil {
		return nil, fromRepo(err, "quota")
	}
	s.Activity.Record(ctx, actor, ActionCreateQuota, fmt.Sprintf("Created quota for %s on %s", user.Username, q.Path))
	return q, nil
}

// UpdateQuota replaces the limits of a quota. Admin only.
func (s *quotaService) UpdateQuota(ctx context.Context, actor *models.User, id int64, payload models.QuotaUpdatePayload) (*models.Quota, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := validateStruct(payload); err != nil {
		return nil, err
	}
	existing, err := s.Repo.GetQuotaByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err, fmt.Sprintf("quota %d", id))
	}
	grace := existing.GracePeriod
	if payload.GracePeriod != nil {
		grace = *payload.GracePeriod
	}
	if err := s.Repo.UpdateQuotaLimits(ctx, id, payload.SoftLimit, payload.HardLimit, grace); err != nil {
		return nil, fromRepo(err, fmt.Sprintf("quota %d", id))
	}
	s.Activity.Record(ctx, actor, ActionUpdateQuota, fmt.Sprintf("Updated quota %d for %s", id, existing.Username))
	updated, err := s.Repo.GetQuotaByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err, fmt.Sprintf("quota %d", id))
	}
	return updated, nil
}

// DeleteQuota removes a quota. Admin only.
func (s *quotaService) DeleteQuota(ctx context.Context, actor *models.User, id int64) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	existing, err := s.Repo.GetQuotaByID(ctx, id)
	if err != nil {
		return fromRepo(err, fmt.Sprintf("quota %d", id))
	}
	if err := s.Repo.DeleteQuota(ctx, id); err != nil {
		return fromRepo(err, fmt.Sprintf("quota %d", id))
	}
	s.Activity.Record(ctx, actor, ActionDeleteQuota, fmt.Sprintf("Deleted quota %d for %s", id, existing.Username))
	return nil
}
