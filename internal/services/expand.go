package services

import (
	"context"

	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/store"
)

type referenceReader interface {
	UsersByID(ctx context.Context, ids []string) (map[string]models.User, error)
	ProjectsByID(ctx context.Context, ids []string) (map[string]models.Project, error)
}

func userRef(users map[string]models.User, id string) *models.UserRef {
	u, ok := users[id]
	if !ok {
		return nil
	}
	return &models.UserRef{ID: u.ID, Email: u.Email, Role: u.Role}
}

func projectRef(projects map[string]models.Project, id string) *models.ProjectRef {
	p, ok := projects[id]
	if !ok {
		return nil
	}
	return &models.ProjectRef{ID: p.ID, Name: p.Name}
}

func projectView(p models.Project, users map[string]models.User) models.ProjectView {
	return models.ProjectView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Owner:       userRef(users, p.OwnerID),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func taskView(t models.Task, users map[string]models.User, projects map[string]models.Project) models.TaskView {
	return models.TaskView{
		ID:          t.ID,
		Description: t.Description,
		DueDate:     t.DueDate,
		Status:      t.Status,
		Owner:       userRef(users, t.OwnerID),
		Project:     projectRef(projects, t.ProjectID),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// expandProjects resolves owner references. Dangling owners render as nil.
func expandProjects(ctx context.Context, refs referenceReader, projects []models.Project) ([]models.ProjectView, error) {
	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.OwnerID)
	}

	users, err := refs.UsersByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]models.ProjectView, 0, len(projects))
	for _, p := range projects {
		out = append(out, projectView(p, users))
	}
	return out, nil
}

func expandTasks(ctx context.Context, refs referenceReader, tasks []models.Task) ([]models.TaskView, error) {
	ownerIDs := make([]string, 0, len(tasks))
	projectIDs := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ownerIDs = append(ownerIDs, t.OwnerID)
		projectIDs = append(projectIDs, t.ProjectID)
	}

	users, err := refs.UsersByID(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}

	projects, err := refs.ProjectsByID(ctx, projectIDs)
	if err != nil {
		return nil, err
	}

	out := make([]models.TaskView, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskView(t, users, projects))
	}
	return out, nil
}

func expandProject(ctx context.Context, refs referenceReader, p *models.Project) (*models.ProjectView, error) {
	views, err := expandProjects(ctx, refs, []models.Project{*p})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func expandTask(ctx context.Context, refs referenceReader, t *models.Task) (*models.TaskView, error) {
	views, err := expandTasks(ctx, refs, []models.Task{*t})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// userExists and projectExists back reference validation on writes.
func userExists(ctx context.Context, refs referenceReader, id string) (bool, error) {
	users, err := refs.UsersByID(ctx, []string{id})
	if err != nil {
		return false, err
	}
	_, ok := users[id]
	return ok, nil
}

func projectExists(ctx context.Context, refs referenceReader, id string) (bool, error) {
	projects, err := refs.ProjectsByID(ctx, []string{id})
	if err != nil {
		return false, err
	}
	_, ok := projects[id]
	return ok, nil
}

var _ referenceReader = store.Store(nil)
