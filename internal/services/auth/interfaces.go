// filepath: internal/services/auth/interfaces.go
package auth

import (
	"context"
	"flexnas/internal/models"
	"time"
)

// TokenService defines the contract for JWT operations.
type TokenService interface {
	GenerateToken(user *models.User) (token string, expiresAt time.Time, err error)
	ValidateToken(ctx context.Context, tokenString string) (*models.User, error)
}

// SessionService handles login and logout.
type SessionService interface {
	Login(ctx context.Context, username, password, clientIP string) (*models.LoginResponse, error)
	Logout(ctx context.Context, user *models.User)
}
