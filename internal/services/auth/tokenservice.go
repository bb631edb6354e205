// filepath: internal/services/auth/tokenservice.go
package auth

import (
	"context"
	"errors"
	"flexnas/internal/config"
	"flexnas/internal/models"
	"flexnas/internal/services"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer is the iss claim of every token.
const TokenIssuer = "flexnas"

// accessClaims defines the custom claims of an access token.
type accessClaims struct {
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Compile-time check to ensure tokenService implements the TokenService interface.
var _ TokenService = (*tokenService)(nil)

// tokenService issues stateless HS256 tokens. There is no revocation list:
// a token stays valid until it expires.
type tokenService struct {
	cfg     *config.Config
	userSvc services.UserService
	now     func() time.Time
}

// NewTokenService creates a new instance of the tokenService.
func NewTokenService(cfg *config.Config, userSvc services.UserService) TokenService {
	return NewTokenServiceWithClock(cfg, userSvc, time.Now)
}

// NewTokenServiceWithClock is NewTokenService with an explicit time source.
func NewTokenServiceWithClock(cfg *config.Config, userSvc services.UserService, now func() time.Time) TokenService {
	return &tokenService{cfg: cfg, userSvc: userSvc, now: now}
}

func (s *tokenService) lifetime() time.Duration {
	minutes := s.cfg.JWT.AccessDurationMin
	if minutes <= 0 {
		minutes = 60
	}
	return time.Duration(minutes) * time.Minute
}

// GenerateToken signs a token for user.
func (s *tokenService) GenerateToken(user *models.User) (string, time.Time, error) {
	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.lifetime())
	claims := &accessClaims{
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			Issuer:    TokenIssuer,
			Subject:   strconv.FormatInt(user.ID, 10), // Store user ID in 'sub' claim
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, expiresAt.UTC().Truncate(time.Second), nil
}

// ValidateToken verifies signature, issuer and expiry, then reloads the
// user so role and permission changes apply immediately. Missing or
// disabled users are rejected.
func (s *tokenService) ValidateToken(ctx context.Context, tokenString string) (*models.User, error) {
	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	},
		jwt.WithIssuer(TokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token expired", services.ErrUnauthenticated)
		}
		return nil, fmt.Errorf("%w: %v", services.ErrUnauthenticated, err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", services.ErrUnauthenticated)
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed subject", services.ErrUnauthenticated)
	}
	user, err := s.userSvc.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found for token", services.ErrUnauthenticated)
		}
		return nil, err
	}
	if !user.IsActive() {
		return nil, fmt.Errorf("%w: account disabled", services.ErrUnauthenticated)
	}
	return user, nil
}
