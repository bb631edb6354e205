// filepath: internal/services/user_service.go
package services

import (
	"context"
	"crypto/rand"
	"errors"
	"flexnas/internal/config"
	"flexnas/internal/logging"
	"flexnas/internal/models"
	"flexnas/internal/repository"
	"fmt"
)

// Bootstrap admin identity.
const (
	AdminUsername = "admin"
	AdminEmail    = "admin@nas.local"
)

// Compile-time check to ensure interface is implemented
var _ UserService = (*userService)(nil)

// userService handles business logic for user management.
type userService struct {
	Repo     *repository.Repository
	Activity ActivityService
}

// NewUserService creates a new UserService.
func NewUserService(repo *repository.Repository, activity ActivityService) *userService {
	return &userService{Repo: repo, Activity: activity}
}

// === Pass-through Repository Methods ===

// GetUserByUsername retrieves a user by their username.
func (s *userService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.Repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fromRepo(err, fmt.Sprintf("user '%s'", username))
	}
	return user, nil
}

// GetUserByID retrieves a user by their ID.
func (s *userService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.Repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err, fmt.Sprintf("user %d", id))
	}
	return user, nil
}

// GetUsers retrieves all users.
func (s *userService) GetUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.Repo.GetUsers(ctx)
	if err != nil {
		return nil, fromRepo(err, "users")
	}
	return users, nil
}

// === Business Logic Methods ===

// CreateUser validates the payload and creates a new account. Admin only.
func (s *userService) CreateUser(ctx context.Context, actor *models.User, payload models.UserCreatePayload) (*models.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := validateStruct(payload); err != nil {
		return nil, err
	}
	perms := models.DefaultPermissions()
	if payload.Permissions != nil {
		parsed, err := models.ParsePermissionSet(payload.Permissions)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		perms = parsed
	}

	logging.Log.Debugf("UserService: Attempting to create user '%s'", payload.Username)
	created, err := s.Repo.CreateUser(ctx, &repository.UserCreateArgs{
		Username:    payload.Username,
		Email:       payload.Email,
		Password:    payload.Password,
		Role:        payload.Role,
		Permissions: perms,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("username or email already exists: %w", ErrConflict)
		}
		logging.Log.Errorf("UserService: Failed to create user '%s': %v", payload.Username, err)
		return nil, fromRepo(err, "user")
	}
	s.Activity.Record(ctx, actor, ActionCreateUser, fmt.Sprintf("Created user %s", created.Username))
	return created, nil
}

// UpdateUser applies the non-nil fields of payload. Admin only.
// The last active admin cannot be demoted or disabled.
func (s *userService) UpdateUser(ctx context.Context, actor *models.User, username string, payload models.UserUpdatePayload) (*models.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := validateStruct(payload); err != nil {
		return nil, err
	}
	logging.Log.Debugf("UserService: Updating user '%s'", username)

	original, err := s.Repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fromRepo(err, fmt.Sprintf("user '%s'", username))
	}

	updated := *original
	if payload.Email != nil {
		updated.Email = *payload.Email
	}
	if payload.Role != nil {
		updated.Role = *payload.Role
	}
	if payload.Status != nil {
		updated.Status = *payload.Status
	}
	if payload.Permissions != nil {
		perms, err := models.ParsePermissionSet(*payload.Permissions)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		updated.Permissions = perms
	}

	losesAdmin := original.IsAdmin() && original.IsActive() && (!updated.IsAdmin() || !updated.IsActive())
	if losesAdmin {
		admins, err := s.Repo.CountActiveAdmins(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to check for other admins: %w", err)
		}
		if admins <= 1 {
			return nil, fmt.Errorf("cannot demote or disable the last active admin: %w", ErrConflict)
		}
	}

	if err := s.Repo.UpdateUser(ctx, &updated); err != nil {
		return nil, fromRepo(err, fmt.Sprintf("user '%s'", username))
	}
	if payload.Password != nil {
		if err := s.Repo.UpdateUserPassword(ctx, original.ID, *payload.Password); err != nil {
			return nil, fromRepo(err, fmt.Sprintf("user '%s'", username))
		}
	}
	s.Activity.Record(ctx, actor, ActionUpdateUser, fmt.Sprintf("Updated user %s", username))

	// Re-fetch the user to get the final updated state
	return s.GetUserByID(ctx, original.ID)
}

// UpdateOwnPassword changes the caller's password.
func (s *userService) UpdateOwnPassword(ctx context.Context, actor *models.User, password string) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	if err := validateStruct(models.PasswordUpdateRequest{Password: password}); err != nil {
		return err
	}
	if err := s.Repo.UpdateUserPassword(ctx, actor.ID, password); err != nil {
		return fromRepo(err, fmt.Sprintf("user '%s'", actor.Username))
	}
	s.Activity.Record(ctx, actor, ActionChangePassword, "Changed own password")
	return nil
}

// InitializeAdminUser ensures the 'admin' user exists on startup and handles password resets.
func (s *userService) InitializeAdminUser(ctx context.Context, cfg *config.Config) error {
	adminExists, err := s.Repo.UserExists(ctx, AdminUsername)
	if err != nil {
		return fmt.Errorf("failed to check for admin user: %w", err)
	}

	if !adminExists {
		return s.createAdminUser(ctx, cfg.AdminPassword)
	}

	if cfg.ResetAdminPassword {
		return s.resetAdminPassword(ctx, cfg.AdminPassword)
	}

	return nil
}

// createAdminUser creates the initial 'admin' user with every capability.
func (s *userService) createAdminUser(ctx context.Context, password string) error {
	if password == "" {
		var err error
		if password, err = generateRandomPassword(16); err != nil {
			return fmt.Errorf("failed to generate admin password: %w", err)
		}
		logging.Log.Infof("No admin password provided. Generated a random password for 'admin': %s", password)
	}

	user := &repository.UserCreateArgs{
		Username:    AdminUsername,
		Email:       AdminEmail,
		Password:    password,
		Role:        models.RoleAdmin,
		Permissions: models.NewPermissionSet(models.AllPermissions...),
	}
	if _, err := s.Repo.CreateUser(ctx, user); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	logging.Log.Info("Admin user created successfully.")
	return nil
}

// resetAdminPassword updates the admin's password based on startup flags.
func (s *userService) resetAdminPassword(ctx context.Context, password string) error {
	if password == "" {
		return fmt.Errorf("cannot reset admin password: --reset_pw is true but no --password or NAS_PASSWORD was provided")
	}
	admin, err := s.Repo.GetUserByUsername(ctx, AdminUsername)
	if err != nil {
		return fmt.Errorf("failed to load admin user: %w", err)
	}
	if err := s.Repo.UpdateUserPassword(ctx, admin.ID, password); err != nil {
		return fmt.Errorf("failed to reset admin password: %w", err)
	}
	logging.Log.Info("Admin password has been reset.")
	return nil
}

// generateRandomPassword creates a cryptographically secure random password.
func generateRandomPassword(length int) (string, error) {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = chars[int(b[i])%len(chars)]
	}
	return string(b), nil
}
