// Package store defines the persistence contract shared by every backend.
package store

import (
	"context"
	"errors"

	"github.com/taskflow-dev/taskflow/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
)

// ProjectFilter narrows project listings. Zero value matches everything.
type ProjectFilter struct {
	OwnerID string
}

// TaskFilter narrows task listings. Zero value matches everything.
type TaskFilter struct {
	OwnerID string
}

type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.UserSummary, error)
	UsersByID(ctx context.Context, ids []string) (map[string]models.User, error)
	// UpdateUserByEmail rewrites email and role of the user registered under email.
	UpdateUserByEmail(ctx context.Context, email, newEmail string, role models.Role) error
	DeleteUserByEmail(ctx context.Context, email string) error
}

type RoleStore interface {
	ListRoleAssignments(ctx context.Context) ([]models.RoleAssignment, error)
	FindRoleAssignment(ctx context.Context, email string) (*models.RoleAssignment, error)
	CreateRoleAssignment(ctx context.Context, r *models.RoleAssignment) error
	UpdateRoleAssignment(ctx context.Context, email, newEmail string, role models.Role) (*models.RoleAssignment, error)
	DeleteRoleAssignment(ctx context.Context, email string) (*models.RoleAssignment, error)
	DeleteAllRoleAssignments(ctx context.Context) (int64, error)
}

type ProjectStore interface {
	CreateProject(ctx context.Context, p *models.Project) error
	GetProject(ctx context.Context, id string) (*models.Project, error)
	ListProjects(ctx context.Context, f ProjectFilter) ([]models.Project, error)
	ProjectsByID(ctx context.Context, ids []string) (map[string]models.Project, error)
	UpdateProject(ctx context.Context, id string, u models.ProjectUpdate) (*models.Project, error)
	DeleteProject(ctx context.Context, id string) (*models.Project, error)
}

type TaskStore interface {
	CreateTask(ctx context.Context, t *models.Task) error
	GetTask(ctx context.Context, id string) (*models.Task, error)
	ListTasks(ctx context.Context, f TaskFilter) ([]models.Task, error)
	UpdateTask(ctx context.Context, id string, u models.TaskUpdate) (*models.Task, error)
	DeleteTask(ctx context.Context, id string) (*models.Task, error)
	// DeleteTasksByProject is idempotent: it reports zero when nothing matched.
	DeleteTasksByProject(ctx context.Context, projectID string) (int64, error)
}

// Store is the full persistence surface used by the services.
type Store interface {
	UserStore
	RoleStore
	ProjectStore
	TaskStore

	// Atomically runs fn against a Store scoped to a single unit of work.
	// Backends with transactions commit or roll back as a whole; the others
	// run the steps in order and rely on fn being safe to re-run.
	Atomically(ctx context.Context, fn func(Store) error) error
}

// UniqueIDs drops empty and repeated ids, preserving first-seen order.
func UniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
