// filepath: internal/services/errors_map.go
package services

import (
	"errors"
	"flexnas/internal/models"
	"flexnas/internal/repository"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// fromRepo maps repository errors onto service errors. what names the
// record for the message, e.g. "share 4".
func fromRepo(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%s %w", what, ErrNotFound)
	case errors.Is(err, repository.ErrDuplicate):
		return fmt.Errorf("%s already exists: %w", what, ErrConflict)
	case errors.Is(err, repository.ErrInvalidReference):
		return fmt.Errorf("%s references a missing record: %w", what, ErrValidation)
	case errors.Is(err, bcrypt.ErrPasswordTooLong):
		return fmt.Errorf("password must be at most 72 bytes: %w", ErrValidation)
	}
	return fmt.Errorf("%s: %w", what, err)
}

// requireAdmin returns ErrForbidden unless actor is an admin.
func requireAdmin(actor *models.User) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

// requirePermission returns ErrForbidden unless actor is an admin or holds p.
func requirePermission(actor *models.User, p models.Permission) error {
	if !actor.Can(p) {
		return ErrForbidden
	}
	return nil
}
