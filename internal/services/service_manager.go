// filepath: internal/services/service_manager.go
package services

import (
	"context"
	"flexnas/internal/models"
	"flexnas/internal/repository"
	"fmt"
)

var _ ServiceManager = (*serviceManager)(nil)

// serviceManager exposes every service row by id.
type serviceManager struct {
	Repo     *repository.Repository
	Activity ActivityService
}

// NewServiceManager creates a new ServiceManager.
func NewServiceManager(repo *repository.Repository, activity ActivityService) *serviceManager {
	return &serviceManager{Repo: repo, Activity: activity}
}

func (s *serviceManager) ListServices(ctx context.Context) ([]models.ServiceView, error) {
	rows, err := s.Repo.GetServices(ctx, "")
	if err != nil {
		return nil, fromRepo(err, "services")
	}
	views := make([]models.ServiceView, 0, len(rows))
	for _, row := range rows {
		views = append(views, models.NewServiceView(row))
	}
	return views, nil
}

func (s *serviceManager) GetService(ctx context.Context, id int64) (*models.ServiceView, error) {
	row, err := s.Repo.GetServiceByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err, fmt.Sprintf("service %d", id))
	}
	view := models.NewServiceView(*row)
	return &view, nil
}

// UpdateService sets the enabled flag and, when supplied, replaces the config.
// Protocol rows get the same config check and share carry-over as UpdateProtocol.
func (s *serviceManager) UpdateService(ctx context.Context, actor *models.User, id int64, payload models.ServiceUpdatePayload) (*models.ServiceView, error) {
	if err := requirePermission(actor, models.PermManageSystem); err != nil {
		return nil, err
	}
	if err := validateStruct(payload); err != nil {
		return nil, err
	}
	row, err := s.Repo.ModifyServiceByID(ctx, id, func(svc *models.Service) error {
		svc.Enabled = *payload.IsEnabled
		if payload.Config == nil {
			return nil
		}
		if svc.Type == models.ServiceTypeFileSharing {
			if err := checkProtocolConfig(svc.Name, payload.Config); err != nil {
				return err
			}
		}
		svc.Config = replaceConfig(svc.Config, payload.Config)
		return nil
	})
	if err != nil {
		return nil, fromRepo(err, fmt.Sprintf("service %d", id))
	}
	s.Activity.Record(ctx, actor, ActionUpdateService, fmt.Sprintf("Updated service %s", row.Name))
	view := models.NewServiceView(*row)
	return &view, nil
}

// ControlService applies start, stop or restart. Restart ends enabled.
func (s *serviceManager) ControlService(ctx context.Context, actor *models.User, id int64, action string) (*models.ServiceView, error) {
	if err := requirePermission(actor, models.PermManageSystem); err != nil {
		return nil, err
	}
	if !validAction(action) {
		return nil, validationErrorf("unknown action '%s'", action)
	}
	row, err := s.Repo.ModifyServiceByID(ctx, id, func(svc *models.Service) error {
		svc.Enabled = action != models.ActionStop
		return nil
	})
	if err != nil {
		return nil, fromRepo(err, fmt.Sprintf("service %d", id))
	}
	s.Activity.Record(ctx, actor, action+"_service", fmt.Sprintf("%s service %s", action, row.Name))
	view := models.NewServiceView(*row)
	return &view, nil
}
