// filepath: internal/repository/user_repo.go
package repository

import (
	"context"
	"database/sql"
	"errors"
	"flexnas/internal/logging"
	"flexnas/internal/models"

	"github.com/Masterminds/squirrel"
	"golang.org/x/crypto/bcrypt"
)

// UserCreateArgs is a struct used for creating users in the database layer.
// It is separate from the models.User to include the plaintext password for creation.
type UserCreateArgs struct {
	Username    string
	Email       string
	Password    string
	Role        models.Role
	Permissions models.PermissionSet
}

var userColumns = []string{"id", "username", "email", "password_hash", "role", "status", "permissions", "last_login", "created_at"}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		user      models.User
		lastLogin sql.NullInt64
		createdAt int64
	)
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Role, &user.Status, &user.Permissions, &lastLogin, &createdAt); err != nil {
		return nil, err
	}
	user.LastLogin = nullUnixToTime(lastLogin)
	user.CreatedAt = unixToTime(createdAt)
	return &user, nil
}

func (s *Repository) getUserWhere(ctx context.Context, pred squirrel.Eq) (*models.User, error) {
	query, args, err := s.Builder.Select(userColumns...).From("users").Where(pred).ToSql()
	if err != nil {
		return nil, err
	}
	user, err := scanUser(s.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, translateError(err)
	}
	return user, nil
}

// GetUserByUsername retrieves a user by their username.
func (s *Repository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getUserWhere(ctx, squirrel.Eq{"username": username})
}

// GetUserByID retrieves a user by their ID.
func (s *Repository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.getUserWhere(ctx, squirrel.Eq{"id": id})
}

// UserExists checks if a user with the given username exists.
func (s *Repository) UserExists(ctx context.Context, username string) (bool, error) {
	_, err := s.GetUserByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetUsers retrieves all users ordered by id.
func (s *Repository) GetUsers(ctx context.Context) ([]models.User, error) {
	query, args, err := s.Builder.Select(userColumns...).From("users").OrderBy("id").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

// CountUsers returns the number of accounts.
func (s *Repository) CountUsers(ctx context.Context) (int, error) {
	var n int
	err := s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&n)
	return n, err
}

// CountActiveAdmins returns the number of enabled admin accounts.
func (s *Repository) CountActiveAdmins(ctx context.Context) (int, error) {
	query, args, err := s.Builder.Select("COUNT(*)").From("users").
		Where(squirrel.Eq{"role": models.RoleAdmin, "status": models.StatusActive}).ToSql()
	if err != nil {
		return 0, err
	}
	var n int
	err = s.DB.QueryRowContext(ctx, query, args...).Scan(&n)
	return n, err
}

// CreateUser hashes the password and inserts a new account.
// A taken username or email yields ErrDuplicate.
func (s *Repository) CreateUser(ctx context.Context, user *UserCreateArgs) (*models.User, error) {
	logging.Log.Debugf("CreateUser: Hashing password for '%s'", user.Username)
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := user.Role
	if role == "" {
		role = models.RoleUser
	}
	perms := user.Permissions
	if perms == nil {
		perms = models.DefaultPermissions()
	}
	createdAt := s.timestamp()

	query, args, err := s.Builder.Insert("users").
		Columns("username", "email", "password_hash", "role", "status", "permissions", "created_at").
		Values(user.Username, user.Email, string(hashedPassword), role, models.StatusActive, perms, createdAt).
		ToSql()
	if err != nil {
		return nil, err
	}
	result, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	logging.Log.Debugf("CreateUser: User '%s' created with ID %d", user.Username, id)

	return &models.User{
		ID:           id,
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: string(hashedPassword),
		Role:         role,
		Status:       models.StatusActive,
		Permissions:  perms,
		CreatedAt:    unixToTime(createdAt),
	}, nil
}

// UpdateUser writes the mutable profile fields (email, role, status, permissions).
func (s *Repository) UpdateUser(ctx context.Context, user *models.User) error {
	perms := user.Permissions
	if perms == nil {
		perms = models.PermissionSet{}
	}
	query, args, err := s.Builder.Update("users").
		Set("email", user.Email).
		Set("role", user.Role).
		Set("status", user.Status).
		Set("permissions", perms).
		Where(squirrel.Eq{"id": user.ID}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return translateError(err)
	}
	return checkAffected(res)
}

// UpdateUserPassword re-hashes and stores a user's password.
func (s *Repository) UpdateUserPassword(ctx context.Context, id int64, password string) error {
	logging.Log.Debugf("UpdateUserPassword: Hashing new password for user ID %d", id)
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	query, args, err := s.Builder.Update("users").
		Set("password_hash", string(hashedPassword)).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

// TouchLastLogin stamps the user's last_login with the current time.
func (s *Repository) TouchLastLogin(ctx context.Context, id int64) error {
	query, args, err := s.Builder.Update("users").
		Set("last_login", s.timestamp()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
