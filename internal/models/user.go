package models

import "time"

// Role is the coarse account class.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Account statuses.
const (
	StatusActive   = "active"
	StatusDisabled = "disabled"
)

// User represents a user account in the system.
type User struct {
	ID           int64         `json:"id"`
	Username     string        `json:"username"`
	Email        string        `json:"email"`
	PasswordHash string        `json:"-"` // Omit from JSON responses
	Role         Role          `json:"role"`
	Status       string        `json:"status"`
	Permissions  PermissionSet `json:"permissions"`
	LastLogin    *time.Time    `json:"lastLogin"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// IsAdmin reports whether the account has the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// IsActive reports whether the account may log in.
func (u *User) IsActive() bool {
	return u != nil && u.Status == StatusActive
}

// Can reports whether the user holds p. Admins hold every capability.
func (u *User) Can(p Permission) bool {
	if u == nil {
		return false
	}
	return u.IsAdmin() || u.Permissions.Has(p)
}

// UserCreatePayload is used for the POST /api/users request.
type UserCreatePayload struct {
	Username    string   `json:"username" validate:"required,min=1,max=64,printascii,excludes=/"`
	Email       string   `json:"email" validate:"required,email,max=254"`
	Password    string   `json:"password" validate:"required,min=8,max=72,bcryptlen"`
	Role        Role     `json:"role" validate:"omitempty,oneof=admin user"`
	Permissions []string `json:"permissions"`
}

// UserUpdatePayload is used for the PUT /api/users/{username} request.
// Nil fields are left unchanged.
type UserUpdatePayload struct {
	Email       *string   `json:"email" validate:"omitempty,email,max=254"`
	Password    *string   `json:"password" validate:"omitempty,min=8,max=72,bcryptlen"`
	Role        *Role     `json:"role" validate:"omitempty,oneof=admin user"`
	Status      *string   `json:"status" validate:"omitempty,oneof=active disabled"`
	Permissions *[]string `json:"permissions"`
}

// PasswordUpdateRequest is a DTO for updating a user's own password.
type PasswordUpdateRequest struct {
	Password string `json:"password" validate:"required,min=8,max=72,bcryptlen"`
}
