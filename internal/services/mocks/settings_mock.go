// filepath: internal/services/mocks/settings_mock.go
package mocks

import (
	"context"
	"flexnas/internal/models"
	"flexnas/internal/services"

	"github.com/stretchr/testify/mock"
)

// MockSettingsService is a mock implementation of services.SettingsService
type MockSettingsService struct {
	mock.Mock
}

var _ services.SettingsService = (*MockSettingsService)(nil)

func (m *MockSettingsService) GetSettings(ctx context.Context) (*models.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Settings), args.Error(1)
}

func (m *MockSettingsService) UpdateSettings(ctx context.Context, actor *models.User, payload models.SettingsUpdatePayload) (*models.Settings, error) {
	args := m.Called(ctx, actor, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Settings), args.Error(1)
}

func (m *MockSettingsService) GetSystemSettings(ctx context.Context) (*models.SystemSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SystemSettings), args.Error(1)
}

func (m *MockSettingsService) UpdateSystemSettings(ctx context.Context, actor *models.User, st models.SystemSettings) (*models.SystemSettings, error) {
	args := m.Called(ctx, actor, st)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SystemSettings), args.Error(1)
}

func (m *MockSettingsService) GetNetworkSettings(ctx context.Context) (*models.NetworkSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NetworkSettings), args.Error(1)
}

func (m *MockSettingsService) UpdateNetworkSettings(ctx context.Context, actor *models.User, ns models.NetworkSettings) (*models.NetworkSettings, error) {
	args := m.Called(ctx, actor, ns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NetworkSettings), args.Error(1)
}

func (m *MockSettingsService) GetStorageSettings(ctx context.Context) (*models.StorageSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StorageSettings), args.Error(1)
}

func (m *MockSettingsService) UpdateStorageSettings(ctx context.Context, actor *models.User, st models.StorageSettings) (*models.StorageSettings, error) {
	args := m.Called(ctx, actor, st)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StorageSettings), args.Error(1)
}
