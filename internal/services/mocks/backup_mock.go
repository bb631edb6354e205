// filepath: internal/services/mocks/backup_mock.go
package mocks

import (
	"context"
	"flexnas/internal/models"
	"flexnas/internal/services"

	"github.com/stretchr/testify/mock"
)

// MockBackupService is a mock implementation of services.BackupService
type MockBackupService struct {
	mock.Mock
}

var _ services.BackupService = (*MockBackupService)(nil)

func (m *MockBackupService) ListBackups(ctx context.Context) ([]models.Backup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Backup), args.Error(1)
}

func (m *MockBackupService) GetBackup(ctx context.Context, id int64) (*models.Backup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Backup), args.Error(1)
}

func (m *MockBackupService) CreateBackup(ctx context.Context, actor *models.User, payload models.BackupPayload) (*models.Backup, error) {
	args := m.Called(ctx, actor, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Backup), args.Error(1)
}

func (m *MockBackupService) RunBackup(ctx context.Context, actor *models.User, id int64) (*models.Backup, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Backup), args.Error(1)
}

func (m *MockBackupService) DeleteBackup(ctx context.Context, actor *models.User, id int64) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}
