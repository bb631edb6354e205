// filepath: internal/services/mocks/share_mock.go
package mocks

import (
	"context"
	"flexnas/internal/models"
	"flexnas/internal/services"

	"github.com/stretchr/testify/mock"
)

// MockShareService is a mock implementation of services.ShareService
type MockShareService struct {
	mock.Mock
}

var _ services.ShareService = (*MockShareService)(nil)

func (m *MockShareService) ListShares(ctx context.Context, actor *models.User) ([]models.Share, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Share), args.Error(1)
}

func (m *MockShareService) GetShare(ctx context.Context, actor *models.User, id int64) (*models.Share, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Share), args.Error(1)
}

func (m *MockShareService) CreateShare(ctx context.Context, actor *models.User, payload models.SharePayload) (*models.Share, error) {
	args := m.Called(ctx, actor, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Share), args.Error(1)
}

func (m *MockShareService) UpdateShare(ctx context.Context, actor *models.User, id int64, payload models.SharePayload) (*models.Share, error) {
	args := m.Called(ctx, actor, id, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Share), args.Error(1)
}

func (m *MockShareService) DeleteShare(ctx context.Context, actor *models.User, id int64) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}
