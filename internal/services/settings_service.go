// filepath: internal/services/settings_service.go
package services

import (
	"context"
	"errors"
	"flexnas/internal/logging"
	"flexnas/internal/models"
	"flexnas/internal/repository"
	"time"
)

var _ SettingsService = (*settingsService)(nil)

// settingsService stores the system, network and storage records. Every
// write replaces the whole record; concurrent writers are last-writer-wins.
type settingsService struct {
	Repo     *repository.Repository
	Activity ActivityService
	Renamer  HostRenamer

	renameTimeout time.Duration
}

// NewSettingsService creates a new SettingsService. renamer may be nil, in
// which case hostname changes are only stored.
func NewSettingsService(repo *repository.Repository, activity ActivityService, renamer HostRenamer, renameTimeout time.Duration) *settingsService {
	if renameTimeout <= 0 {
		renameTimeout = 5 * time.Second
	}
	return &settingsService{Repo: repo, Activity: activity, Renamer: renamer, renameTimeout: renameTimeout}
}

// GetSettings aggregates the three sections, filling defaults for unset ones.
func (s *settingsService) GetSettings(ctx context.Context) (*models.Settings, error) {
	out := &models.Settings{
		System:  models.DefaultSystemSettings(),
		Network: models.DefaultNetworkSettings(),
		Storage: models.DefaultStorageSettings(),
	}
	if sys, err := s.Repo.GetSystemSettings(ctx); err == nil {
		out.System = *sys
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fromRepo(err, "system settings")
	}
	if nw, err := s.Repo.GetNetworkSettings(ctx); err == nil {
		out.Network = *nw
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fromRepo(err, "network settings")
	}
	if st, err := s.Repo.GetStorageSettings(ctx); err == nil {
		out.Storage = *st
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fromRepo(err, "storage settings")
	}
	return out, nil
}

// UpdateSettings replaces each supplied section. Sections are validated
// before anything is written.
func (s *settingsService) UpdateSettings(ctx context.Context, actor *models.User, payload models.SettingsUpdatePayload) (*models.Settings, error) {
	if err := requirePermission(actor, models.PermManageSystem); err != nil {
		return nil, err
	}
	for _, section := range []interface{}{payload.System, payload.Network, payload.Storage} {
		if isNilSection(section) {
			continue
		}
		if err := validateStruct(section); err != nil {
			return nil, err
		}
	}
	if payload.System != nil {
		if _, err := s.UpdateSystemSettings(ctx, actor, *payload.System); err != nil {
			return nil, err
		}
	}
	if payload.Network != nil {
		if _, err := s.UpdateNetworkSettings(ctx, actor, *payload.Network); err != nil {
			return nil, err
		}
	}
	if payload.Storage != nil {
		if _, err := s.UpdateStorageSettings(ctx, actor, *payload.Storage); err != nil {
			return nil, err
		}
	}
	return s.GetSettings(ctx)
}

func isNilSection(v interface{}) bool {
	switch t := v.(type) {
	case *models.SystemSettings:
		return t == nil
	case *models.NetworkSettings:
		return t == nil
	case *models.StorageSettings:
		return t == nil
	}
	return v == nil
}

func (s *settingsService) GetSystemSettings(ctx context.Context) (*models.SystemSettings, error) {
	st, err := s.Repo.GetSystemSettings(ctx)
	if err != nil {
		return nil, fromRepo(err, "system settings")
	}
	return st, nil
}

func (s *settingsService) UpdateSystemSettings(ctx context.Context, actor *models.User, st models.SystemSettings) (*models.SystemSettings, error) {
	if err := requirePermission(actor, models.PermManageSystem); err != nil {
		return nil, err
	}
	if err := validateStruct(st); err != nil {
		return nil, err
	}
	previous := ""
	if old, err := s.Repo.GetSystemSettings(ctx); err == nil {
		previous = old.Hostname
	}
	if err := s.Repo.PutSystemSettings(ctx, &st); err != nil {
		return nil, fromRepo(err, "system settings")
	}
	s.applyHostname(ctx, previous, st.Hostname)
	s.Activity.Record(ctx, actor, ActionUpdateSystemSettings, "Updated system settings")
	return &st, nil
}

func (s *settingsService) GetNetworkSettings(ctx context.Context) (*models.NetworkSettings, error) {
	ns, err := s.Repo.GetNetworkSettings(ctx)
	if err != nil {
		return nil, fromRepo(err, "network settings")
	}
	return ns, nil
}

func (s *settingsService) UpdateNetworkSettings(ctx context.Context, actor *models.User, ns models.NetworkSettings) (*models.NetworkSettings, error) {
	if err := requirePermission(actor, models.PermManageSystem); err != nil {
		return nil, err
	}
	if err := validateStruct(ns); err != nil {
		return nil, err
	}
	previous := ""
	if old, err := s.Repo.GetNetworkSettings(ctx); err == nil {
		previous = old.Hostname
	}
	if err := s.Repo.PutNetworkSettings(ctx, &ns); err != nil {
		return nil, fromRepo(err, "network settings")
	}
	s.applyHostname(ctx, previous, ns.Hostname)
	s.Activity.Record(ctx, actor, ActionUpdateNetworkSettings, "Updated network settings")
	return &ns, nil
}

func (s *settingsService) GetStorageSettings(ctx context.Context) (*models.StorageSettings, error) {
	st, err := s.Repo.GetStorageSettings(ctx)
	if err != nil {
		return nil, fromRepo(err, "storage settings")
	}
	return st, nil
}

func (s *settingsService) UpdateStorageSettings(ctx context.Context, actor *models.User, st models.StorageSettings) (*models.StorageSettings, error) {
	if err := requirePermission(actor, models.PermManageSystem); err != nil {
		return nil, err
	}
	if err := validateStruct(st); err != nil {
		return nil, err
	}
	if err := s.Repo.PutStorageSettings(ctx, &st); err != nil {
		return nil, fromRepo(err, "storage settings")
	}
	s.Activity.Record(ctx, actor, ActionUpdateStorageSettings, "Updated storage settings")
	return &st, nil
}

// applyHostname renames the host when the stored hostname changed.
// It is best effort: failures are logged and the stored settings stand.
func (s *settingsService) applyHostname(ctx context.Context, previous, hostname string) {
	if s.Renamer == nil || hostname == "" || hostname == previous {
		return
	}
	renameCtx, cancel := context.WithTimeout(ctx, s.renameTimeout)
	defer cancel()
	if err := s.Renamer.SetHostname(renameCtx, hostname); err != nil {
		logging.Log.Warnf("SettingsService: failed to apply hostname '%s': %v", hostname, err)
		return
	}
	logging.Log.Infof("SettingsService: hostname set to '%s'", hostname)
}

