// filepath: internal/services/mocks/protocol_mock.go
package mocks

import (
	"context"
	"flexnas/internal/models"
	"flexnas/internal/services"

	"github.com/stretchr/testify/mock"
)

// MockProtocolService is a mock implementation of services.ProtocolService
type MockProtocolService struct {
	mock.Mock
}

var _ services.ProtocolService = (*MockProtocolService)(nil)

func (m *MockProtocolService) ListProtocols(ctx context.Context) ([]models.ProtocolView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProtocolView), args.Error(1)
}

func (m *MockProtocolService) GetProtocol(ctx context.Context, name string) (*models.ProtocolView, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProtocolView), args.Error(1)
}

func (m *MockProtocolService) UpdateProtocol(ctx context.Context, actor *models.User, name string, payload models.ProtocolUpdatePayload) (*models.ProtocolView, error) {
	args := m.Called(ctx, actor, name, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProtocolView), args.Error(1)
}

func (m *MockProtocolService) ControlProtocol(ctx context.Context, actor *models.User, name, action string) (*models.ProtocolView, error) {
	args := m.Called(ctx, actor, name, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProtocolView), args.Error(1)
}

func (m *MockProtocolService) ListProtocolShares(ctx context.Context, name string) ([]models.ProtocolShare, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProtocolShare), args.Error(1)
}

func (m *MockProtocolService) GetProtocolShare(ctx context.Context, name string, shareID int64) (*models.ProtocolShare, error) {
	args := m.Called(ctx, name, shareID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProtocolShare), args.Error(1)
}

func (m *MockProtocolService) UpdateProtocolShare(ctx context.Context, actor *models.User, name string, shareID int64, payload models.ProtocolSharePayload) (*models.ProtocolShare, error) {
	args := m.Called(ctx, actor, name, shareID, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProtocolShare), args.Error(1)
}
