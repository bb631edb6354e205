// filepath: internal/services/protocol_service.go
package services

import (
	"context"
	"errors"
	"flexnas/internal/logging"
	"flexnas/internal/models"
	"flexnas/internal/repository"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

var _ ProtocolService = (*protocolService)(nil)

// protocolService exposes the file-sharing service rows by name. Nothing
// here talks to a real protocol server; state lives in the enabled flag
// and the config blob.
type protocolService struct {
	Repo     *repository.Repository
	Activity ActivityService
}

// NewProtocolService creates a new ProtocolService.
func NewProtocolService(repo *repository.Repository, activity ActivityService) *protocolService {
	return &protocolService{Repo: repo, Activity: activity}
}

func (s *protocolService) ListProtocols(ctx context.Context) ([]models.ProtocolView, error) {
	rows, err := s.Repo.GetServices(ctx, models.ServiceTypeFileSharing)
	if err != nil {
		return nil, fromRepo(err, "protocols")
	}
	views := make([]models.ProtocolView, 0, len(rows))
	for _, row := range rows {
		views = append(views, models.NewProtocolView(row))
	}
	return views, nil
}

func (s *protocolService) GetProtocol(ctx context.Context, name string) (*models.ProtocolView, error) {
	name = strings.ToLower(name)
	row, err := s.loadProtocol(ctx, name)
	if err != nil {
		return nil, err
	}
	view := models.NewProtocolView(*row)
	return &view, nil
}

func (s *protocolService) loadProtocol(ctx context.Context, name string) (*models.Service, error) {
	row, err := s.Repo.GetServiceByName(ctx, name)
	if err != nil {
		return nil, fromRepo(err, fmt.Sprintf("protocol '%s'", name))
	}
	if row.Type != models.ServiceTypeFileSharing {
		return nil, fmt.Errorf("protocol '%s' %w", name, ErrNotFound)
	}
	return row, nil
}

// modifyProtocol runs fn inside the repository's read-modify-write
// transaction, rejecting rows that are not file-sharing protocols.
func (s *protocolService) modifyProtocol(ctx context.Context, name string, fn func(*models.Service) error) (*models.Service, error) {
	row, err := s.Repo.ModifyServiceByName(ctx, name, func(svc *models.Service) error {
		if svc.Type != models.ServiceTypeFileSharing {
			return fmt.Errorf("protocol '%s' %w", name, ErrNotFound)
		}
		return fn(svc)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrValidation) {
			return nil, err
		}
		return nil, fromRepo(err, fmt.Sprintf("protocol '%s'", name))
	}
	return row, nil
}

// UpdateProtocol sets the enabled flag and optionally the port and config.
// A supplied config replaces the stored one, except that the per-share
// overrides are carried over when the new config does not mention them.
func (s *protocolService) UpdateProtocol(ctx context.Context, actor *models.User, name string, payload models.ProtocolUpdatePayload) (*models.ProtocolView, error) {
	name = strings.ToLower(name)
	if err := requirePermission(actor, models.PermManageSystem); err != nil {
		return nil, err
	}
	if err := validateStruct(payload); err != nil {
		return nil, err
	}
	if payload.Config != nil {
		if err := checkProtocolConfig(name, payload.Config); err != nil {
			return nil, err
		}
	}

	row, err := s.modifyProtocol(ctx, name, func(svc *models.Service) error {
		svc.Enabled = *payload.IsEnabled
		if payload.Port != nil {
			svc.Port = *payload.Port
		}
		if payload.Config != nil {
			svc.Config = replaceConfig(svc.Config, payload.Config)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.Activity.Record(ctx, actor, ActionUpdateProtocol, fmt.Sprintf("Updated %s configuration", row.Name))
	view := models.NewProtocolView(*row)
	return &view, nil
}

// replaceConfig returns next with the per-share overrides of current
// carried over when next does not set them.
func replaceConfig(current, next map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(next)+1)
	for k, v := range next {
		out[k] = v
	}
	if _, ok := out[models.ProtocolSharesKey]; !ok {
		if shares, had := current[models.ProtocolSharesKey]; had {
			out[models.ProtocolSharesKey] = shares
		}
	}
	return out
}

// checkProtocolConfig type-checks the known keys of a protocol config.
// Unknown keys are ignored here and stored unchanged.
func checkProtocolConfig(name string, config map[string]interface{}) error {
	schema := models.ProtocolConfigSchema(name)
	if schema == nil {
		return nil
	}
	known := make(map[string]interface{}, len(config))
	for k, v := range config {
		if k != models.ProtocolSharesKey {
			known[k] = v
		}
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  schema,
		TagName: "mapstructure",
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(known); err != nil {
		return validationErrorf("invalid %s config: %v", name, err)
	}
	if err := validate.Struct(schema); err != nil {
		return validationErrorf("invalid %s config: %v", name, err)
	}
	if shares, ok := config[models.ProtocolSharesKey]; ok {
		if _, isMap := shares.(map[string]interface{}); !isMap {
			return validationErrorf("invalid %s config: %s must be an object", name, models.ProtocolSharesKey)
		}
	}
	return nil
}

// ControlProtocol applies start, stop or restart. Restart leaves the
// enabled flag alone and only refreshes updated_at.
func (s *protocolService) ControlProtocol(ctx context.Context, actor *models.User, name, action string) (*models.ProtocolView, error) {
	name = strings.ToLower(name)
	if err := requirePermission(actor, models.PermManageSystem); err != nil {
		return nil, err
	}
	if !validAction(action) {
		return nil, validationErrorf("unknown action '%s'", action)
	}
	row, err := s.modifyProtocol(ctx, name, func(svc *models.Service) error {
		switch action {
		case models.ActionStart:
			svc.Enabled = true
		case models.ActionStop:
			svc.Enabled = false
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logging.Log.Infof("ProtocolService: %s %s by '%s'", action, name, actor.Username)
	s.Activity.Record(ctx, actor, action+"_protocol", fmt.Sprintf("%s %s", action, row.Name))
	view := models.NewProtocolView(*row)
	return &view, nil
}

func validAction(action string) bool {
	switch action {
	case models.ActionStart, models.ActionStop, models.ActionRestart:
		return true
	}
	return false
}

// ListProtocolShares returns every share with its override for the protocol.
func (s *protocolService) ListProtocolShares(ctx context.Context, name string) ([]models.ProtocolShare, error) {
	name = strings.ToLower(name)
	row, err := s.loadProtocol(ctx, name)
	if err != nil {
		return nil, err
	}
	shares, err := s.Repo.GetShares(ctx)
	if err != nil {
		return nil, fromRepo(err, "shares")
	}
	out := make([]models.ProtocolShare, 0, len(shares))
	for _, share := range shares {
		out = append(out, models.ProtocolShare{
			Share:          share,
			ProtocolConfig: shareOverride(row.Config, share.Name),
		})
	}
	return out, nil
}

// GetProtocolShare returns one share with its override for the protocol.
func (s *protocolService) GetProtocolShare(ctx context.Context, name string, shareID int64) (*models.ProtocolShare, error) {
	name = strings.ToLower(name)
	row, err := s.loadProtocol(ctx, name)
	if err != nil {
		return nil, err
	}
	share, err := s.Repo.GetShareByID(ctx, shareID)
	if err != nil {
		return nil, fromRepo(err, fmt.Sprintf("share %d", shareID))
	}
	return &models.ProtocolShare{Share: *share, ProtocolConfig: shareOverride(row.Config, share.Name)}, nil
}

// UpdateProtocolShare stores the override for one share, keeping every
// other key of the protocol config.
func (s *protocolService) UpdateProtocolShare(ctx context.Context, actor *models.User, name string, shareID int64, payload models.ProtocolSharePayload) (*models.ProtocolShare, error) {
	name = strings.ToLower(name)
	if err := requirePermission(actor, models.PermManageShares); err != nil {
		return nil, err
	}
	share, err := s.Repo.GetShareByID(ctx, shareID)
	if err != nil {
		return nil, fromRepo(err, fmt.Sprintf("share %d", shareID))
	}
	override := payload.ProtocolConfig
	if override == nil {
		override = map[string]interface{}{}
	}

	_, err = s.modifyProtocol(ctx, name, func(svc *models.Service) error {
		shares, _ := svc.Config[models.ProtocolSharesKey].(map[string]interface{})
		if shares == nil {
			shares = map[string]interface{}{}
		}
		shares[share.Name] = override
		svc.Config[models.ProtocolSharesKey] = shares
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.Activity.Record(ctx, actor, ActionUpdateProtocolShare, fmt.Sprintf("Updated %s configuration for share %s", name, share.Name))
	return &models.ProtocolShare{Share: *share, ProtocolConfig: override}, nil
}

func shareOverride(config map[string]interface{}, shareName string) map[string]interface{} {
	shares, _ := config[models.ProtocolSharesKey].(map[string]interface{})
	if override, ok := shares[shareName].(map[string]interface{}); ok {
		return override
	}
	return map[string]interface{}{}
}
