// filepath: internal/services/auth/session.go
package auth

import (
	"context"
	"errors"
	"flexnas/internal/logging"
	"flexnas/internal/metrics"
	"flexnas/internal/models"
	"flexnas/internal/repository"
	"flexnas/internal/services"
	"fmt"
)

var _ SessionService = (*sessionService)(nil)

type sessionService struct {
	repo     *repository.Repository
	users    services.UserService
	tokens   TokenService
	throttle *Throttle
	activity services.ActivityService
}

// NewSessionService creates a SessionService. throttle may be nil.
func NewSessionService(repo *repository.Repository, users services.UserService, tokens TokenService, throttle *Throttle, activity services.ActivityService) SessionService {
	return &sessionService{repo: repo, users: users, tokens: tokens, throttle: throttle, activity: activity}
}

// Login checks the credentials and issues a token. Unknown users, disabled
// accounts and wrong passwords all yield ErrInvalidCredentials.
func (s *sessionService) Login(ctx context.Context, username, password, clientIP string) (*models.LoginResponse, error) {
	if s.throttle != nil && s.throttle.Blocked(username, clientIP) {
		logging.Log.Warnf("Login: throttled '%s' from %s", username, clientIP)
		metrics.LoginAttempts.WithLabelValues("throttled").Inc()
		return nil, services.ErrTooManyAttempts
	}

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil && !errors.Is(err, services.ErrNotFound) {
		return nil, err
	}
	if user == nil || !user.IsActive() || !repository.CheckPassword(user.PasswordHash, password) {
		if s.throttle != nil {
			s.throttle.Failure(username, clientIP)
		}
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		logging.Log.Infof("Login: failed attempt for '%s' from %s", username, clientIP)
		return nil, services.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	if s.throttle != nil {
		s.throttle.Reset(username, clientIP)
	}
	if err := s.repo.TouchLastLogin(ctx, user.ID); err != nil {
		logging.Log.Warnf("Login: failed to stamp last_login for '%s': %v", username, err)
	}
	metrics.LoginAttempts.WithLabelValues("success").Inc()
	s.activity.Record(ctx, user, services.ActionLogin, fmt.Sprintf("User %s logged in", user.Username))

	return &models.LoginResponse{
		Token:     token,
		Username:  user.Username,
		Role:      user.Role,
		ExpiresAt: expiresAt,
	}, nil
}

// Logout only records the event; the token stays valid until it expires.
func (s *sessionService) Logout(ctx context.Context, user *models.User) {
	if user == nil {
		return
	}
	s.activity.Record(ctx, user, services.ActionLogout, fmt.Sprintf("User %s logged out", user.Username))
}
