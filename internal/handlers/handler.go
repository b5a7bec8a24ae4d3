package handlers

import (
	"github.com/taskflow-dev/taskflow/internal/services"
	"github.com/taskflow-dev/taskflow/internal/store"
)

// Handler binds the HTTP routes to the services.
type Handler struct {
	Auth     *services.AuthService
	Projects *services.ProjectService
	Tasks    *services.TaskService
	Roles    *services.RoleService
	Users    *services.UserService
}

func New(s store.Store, tokens services.TokenIssuer) *Handler {
	return &Handler{
		Auth:     services.NewAuthService(s, tokens),
		Projects: services.NewProjectService(s),
		Tasks:    services.NewTaskService(s),
		Roles:    services.NewRoleService(s),
		Users:    services.NewUserService(s),
	}
}
