// filepath: internal/services/mocks/activity_mock.go
package mocks

import (
	"context"
	"flexnas/internal/models"
	"flexnas/internal/services"

	"github.com/stretchr/testify/mock"
)

// MockActivityService is a mock implementation of services.ActivityService
type MockActivityService struct {
	mock.Mock
}

var _ services.ActivityService = (*MockActivityService)(nil)

func (m *MockActivityService) Record(ctx context.Context, actor *models.User, action, details string) {
	m.Called(ctx, actor, action, details)
}

func (m *MockActivityService) ListRecent(ctx context.Context, limit int) ([]models.ActivityEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ActivityEntry), args.Error(1)
}
