package services

import (
	"context"
	"errors"
	"strings"

	"github.com/taskflow-dev/taskflow/internal/auth"
	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/store"
)

// RoleService manages the authorization registry that gates registration.
type RoleService struct {
	store store.Store
}

type RoleInput struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required,oneof=ADMIN TASK_TRACKER READ_ONLY"`
}

var (
	errRoleNotFound      = newError(KindNotFound, "Role not found")
	errRoleAlreadyExists = newError(KindAlreadyExists, "Authorization already exists")
)

func NewRoleService(s store.Store) *RoleService {
	return &RoleService{store: s}
}

func (s *RoleService) List(ctx context.Context, caller auth.Identity) ([]models.RoleAssignment, error) {
	if err := require(CanManageRoles(caller)); err != nil {
		return nil, err
	}

	roles, err := s.store.ListRoleAssignments(ctx)

	if err != nil {
		return nil, internalError("Failed to fetch role assignments", err)
	}

	return roles, nil
}

func (s *RoleService) Create(ctx context.Context, caller auth.Identity, in RoleInput) (*models.RoleAssignment, error) {
	if err := require(CanManageRoles(caller)); err != nil {
		return nil, err
	}

	email, role, err := parseRoleInput(in)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.FindRoleAssignment(ctx, email); err == nil {
		return nil, errRoleAlreadyExists
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, internalError("Create failed", err)
	}

	entry := &models.RoleAssignment{Email: email, Role: role}

	if err := s.store.CreateRoleAssignment(ctx, entry); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, errRoleAlreadyExists
		}
		return nil, internalError("Create failed", err)
	}

	return entry, nil
}

// Update rewrites the entry registered under email and, when one exists,
// the user registered with that email.
func (s *RoleService) Update(ctx context.Context, caller auth.Identity, email string, in RoleInput) (*models.RoleAssignment, error) {
	if err := require(CanManageRoles(caller)); err != nil {
		return nil, err
	}

	original := models.NormalizeEmail(email)

	newEmail, role, err := parseRoleInput(in)
	if err != nil {
		return nil, err
	}

	var updated *models.RoleAssignment

	err = s.store.Atomically(ctx, func(tx store.Store) error {
		entry, err := tx.UpdateRoleAssignment(ctx, original, newEmail, role)
		if err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return errRoleAlreadyExists
			}
			return err
		}

		err = tx.UpdateUserByEmail(ctx, original, newEmail, role)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			if errors.Is(err, store.ErrDuplicate) {
				return newError(KindAlreadyExists, "User already exists")
			}
			return err
		}

		updated = entry
		return nil
	})

	if err != nil {
		var svcErr *Error
		switch {
		case errors.As(err, &svcErr):
			return nil, svcErr
		case errors.Is(err, store.ErrNotFound):
			return nil, errRoleNotFound
		}
		return nil, internalError("Update failed", err)
	}

	return updated, nil
}

// Delete removes the registry entry for email together with its user. The
// user is deleted first.
func (s *RoleService) Delete(ctx context.Context, caller auth.Identity, email string) error {
	if err := require(CanManageRoles(caller)); err != nil {
		return err
	}

	email = models.NormalizeEmail(email)

	err := s.store.Atomically(ctx, func(tx store.Store) error {
		userErr := tx.DeleteUserByEmail(ctx, email)
		if userErr != nil && !errors.Is(userErr, store.ErrNotFound) {
			return userErr
		}

		_, roleErr := tx.DeleteRoleAssignment(ctx, email)
		if roleErr != nil && !errors.Is(roleErr, store.ErrNotFound) {
			return roleErr
		}

		if userErr != nil && roleErr != nil {
			return errRoleNotFound
		}
		return nil
	})

	if err != nil {
		var svcErr *Error
		if errors.As(err, &svcErr) {
			return svcErr
		}
		return internalError("Delete failed", err)
	}

	return nil
}

func parseRoleInput(in RoleInput) (string, models.Role, error) {
	in.Email = models.NormalizeEmail(in.Email)
	in.Role = strings.TrimSpace(in.Role)

	if err := Validate(in); err != nil {
		return "", "", err
	}

	email := in.Email
	role, err := models.ParseRole(in.Role)

	if err != nil {
		return "", "", validationError("Invalid role")
	}

	return email, role, nil
}
