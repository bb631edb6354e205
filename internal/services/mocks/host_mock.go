// filepath: internal/services/mocks/host_mock.go
package mocks

import (
	"context"
	"flexnas/internal/models"
	"flexnas/internal/services"

	"github.com/stretchr/testify/mock"
)

// MockHostProbe is a mock implementation of services.HostProbe
type MockHostProbe struct {
	mock.Mock
}

var _ services.HostProbe = (*MockHostProbe)(nil)

func (m *MockHostProbe) Status(ctx context.Context) (*models.SystemStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SystemStatus), args.Error(1)
}

func (m *MockHostProbe) Volumes(ctx context.Context) ([]models.Volume, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Volume), args.Error(1)
}

// MockFileBrowser is a mock implementation of services.FileBrowser
type MockFileBrowser struct {
	mock.Mock
}

var _ services.FileBrowser = (*MockFileBrowser)(nil)

func (m *MockFileBrowser) List(path string) ([]models.FileEntry, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FileEntry), args.Error(1)
}
