// filepath: internal/services/mocks/service_manager_mock.go
package mocks

import (
	"context"
	"flexnas/internal/models"
	"flexnas/internal/services"

	"github.com/stretchr/testify/mock"
)

// MockServiceManager is a mock implementation of services.ServiceManager
type MockServiceManager struct {
	mock.Mock
}

var _ services.ServiceManager = (*MockServiceManager)(nil)

func (m *MockServiceManager) ListServices(ctx context.Context) ([]models.ServiceView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ServiceView), args.Error(1)
}

func (m *MockServiceManager) GetService(ctx context.Context, id int64) (*models.ServiceView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ServiceView), args.Error(1)
}

func (m *MockServiceManager) UpdateService(ctx context.Context, actor *models.User, id int64, payload models.ServiceUpdatePayload) (*models.ServiceView, error) {
	args := m.Called(ctx, actor, id, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ServiceView), args.Error(1)
}

func (m *MockServiceManager) ControlService(ctx context.Context, actor *models.User, id int64, action string) (*models.ServiceView, error) {
	args := m.Called(ctx, actor, id, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ServiceView), args.Error(1)
}
