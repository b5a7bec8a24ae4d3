package services

import (
	"github.com/taskflow-dev/taskflow/internal/auth"
	"github.com/taskflow-dev/taskflow/internal/models"
)

// CanManageResources reports whether id may list, create, update and delete
// any project or task.
func CanManageResources(id auth.Identity) bool {
	return id.Role == models.RoleAdmin || id.Role == models.RoleTaskTracker
}

func CanManageRoles(id auth.Identity) bool {
	return id.Role == models.RoleAdmin
}

func CanListUsers(id auth.Identity) bool {
	return CanManageResources(id)
}

// CanChangeStatus reports whether id may set the status of t. Every role may
// move its own tasks.
func CanChangeStatus(id auth.Identity, t *models.Task) bool {
	return CanManageResources(id) || (t != nil && t.OwnerID != "" && t.OwnerID == id.ID)
}

func require(allowed bool) error {
	if !allowed {
		return errForbidden
	}
	return nil
}
