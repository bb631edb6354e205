// filepath: internal/services/mocks/token_mock.go
package mocks

import (
	"context"
	"flexnas/internal/models"
	"flexnas/internal/services/auth"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockTokenService is a mock implementation of auth.TokenService
type MockTokenService struct {
	mock.Mock
}

var _ auth.TokenService = (*MockTokenService)(nil)

func (m *MockTokenService) GenerateToken(user *models.User) (string, time.Time, error) {
	args := m.Called(user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenService) ValidateToken(ctx context.Context, tokenString string) (*models.User, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockSessionService is a mock implementation of auth.SessionService
type MockSessionService struct {
	mock.Mock
}

var _ auth.SessionService = (*MockSessionService)(nil)

func (m *MockSessionService) Login(ctx context.Context, username, password, clientIP string) (*models.LoginResponse, error) {
	args := m.Called(ctx, username, password, clientIP)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LoginResponse), args.Error(1)
}

func (m *MockSessionService) Logout(ctx context.Context, user *models.User) {
	m.Called(ctx, user)
}
