// filepath: internal/services/mocks/quota_mock.go
package mocks

import (
	"context"
	"flexnas/internal/models"
	"flexnas/internal/services"

	"github.com/stretchr/testify/mock"
)

// MockQuotaService is a mock implementation of services.QuotaService
type MockQuotaService struct {
	mock.Mock
}

var _ services.QuotaService = (*MockQuotaService)(nil)

func (m *MockQuotaService) ListQuotas(ctx context.Context, actor *models.User) ([]models.Quota, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Quota), args.Error(1)
}

func (m *MockQuotaService) GetQuota(ctx context.Context, actor *models.User, id int64) (*models.Quota, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quota), args.Error(1)
}

func (m *MockQuotaService) GetUserQuotas(ctx context.Context, actor *models.User, username string) ([]models.Quota, error) {
	args := m.Called(ctx, actor, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Quota), args.Error(1)
}

func (m *MockQuotaService) CreateQuota(ctx context.Context, actor *models.User, payload models.QuotaCreatePayload) (*models.Quota, error) {
	args := m.Called(ctx, actor, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quota), args.Error(1)
}

func (m *MockQuotaService) UpdateQuota(ctx context.Context, actor *models.User, id int64, payload models.QuotaUpdatePayload) (*models.Quota, error) {
	args := m.Called(ctx, actor, id, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quota), args.Error(1)
}

func (m *MockQuotaService) DeleteQuota(ctx context.Context, actor *models.User, id int64) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}
