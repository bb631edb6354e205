// filepath: internal/services/share_service.go
package services

import (
	"context"
	"errors"
	"flexnas/internal/logging"
	"flexnas/internal/models"
	"flexnas/internal/repository"
	"fmt"
)

var _ ShareService = (*shareService)(nil)

// shareService handles business logic for share definitions.
type shareService struct {
	Repo     *repository.Repository
	Activity ActivityService
}

// NewShareService creates a new ShareService.
func NewShareService(repo *repository.Repository, activity ActivityService) *shareService {
	return &shareService{Repo: repo, Activity: activity}
}

// ListShares returns every share visible to actor.
func (s *shareService) ListShares(ctx context.Context, actor *models.User) ([]models.Share, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}
	var (
		shares []models.Share
		err    error
	)
	if actor.IsAdmin() {
		shares, err = s.Repo.GetShares(ctx)
	} else {
		shares, err = s.Repo.GetSharesVisibleTo(ctx, actor.Username)
	}
	if err != nil {
		return nil, fromRepo(err, "shares")
	}
	return shares, nil
}

// GetShare returns one share. Shares the actor may not see are reported as missing.
func (s *shareService) GetShare(ctx context.Context, actor *models.User, id int64) (*models.Share, error) {
	share, err := s.Repo.GetShareByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err, fmt.Sprintf("share %d", id))
	}
	if !share.VisibleTo(actor) {
		return nil, fmt.Errorf("share %d %w", id, ErrNotFound)
	}
	return share, nil
}

// CreateShare registers a new share owned by actor.
func (s *shareService) CreateShare(ctx context.Context, actor *models.User, payload models.SharePayload) (*models.Share, error) {
	if err := requirePermission(actor, models.PermManageShares); err != nil {
		return nil, err
	}
	if err := validateStruct(payload); err != nil {
		return nil, err
	}
	share := &models.Share{
		Name:         payload.Name,
		Path:         payload.Path,
		Description:  payload.Description,
		CreatedBy:    actor.ID,
		Creator:      actor.Username,
		IsPublic:     payload.IsPublic,
		AllowedUsers: payload.AllowedUsers,
		ReadOnly:     payload.ReadOnly,
	}
	if err := s.Repo.CreateShare(ctx, share); err != nil {
		return nil, fromRepo(err, fmt.Sprintf("share '%s'", payload.Name))
	}
	logging.Log.Infof("ShareService: share '%s' created by '%s'", share.Name, actor.Username)
	s.Activity.Record(ctx, actor, ActionCreateShare, fmt.Sprintf("Created share %s", share.Name))
	return share, nil
}

// UpdateShare replaces every mutable field of a share.
func (s *shareService) UpdateShare(ctx context.Context, actor *models.User, id int64, payload models.SharePayload) (*models.Share, error) {
	if err := requirePermission(actor, models.PermManageShares); err != nil {
		return nil, err
	}
	if err := validateStruct(payload); err != nil {
		return nil, err
	}
	share, err := s.Repo.GetShareByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err, fmt.Sprintf("share %d", id))
	}
	share.Name = payload.Name
	share.Path = payload.Path
	share.Description = payload.Description
	share.IsPublic = payload.IsPublic
	share.AllowedUsers = payload.AllowedUsers
	share.ReadOnly = payload.ReadOnly
	if share.AllowedUsers == nil {
		share.AllowedUsers = []string{}
	}

	if err := s.Repo.UpdateShare(ctx, share); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("share name '%s' is taken: %w", payload.Name, ErrConflict)
		}
		return nil, fromRepo(err, fmt.Sprintf("share %d", id))
	}
	s.Activity.Record(ctx, actor, ActionUpdateShare, fmt.Sprintf("Updated share %s", share.Name))
	return share, nil
}

// DeleteShare removes a share.
func (s *shareService) DeleteShare(ctx context.Context, actor *models.User, id int64) error {
	if err := requirePermission(actor, models.PermManageShares); err != nil {
		return err
	}
	share, err := s.Repo.GetShareByID(ctx, id)
	if err != nil {
		return fromRepo(err, fmt.Sprintf("share %d", id))
	}
	if err := s.Repo.DeleteShare(ctx, id); err != nil {
		return fromRepo(err, fmt.Sprintf("share %d", id))
	}
	s.Activity.Record(ctx, actor, ActionDeleteShare, fmt.Sprintf("Deleted share %s", share.Name))
	return nil
}
