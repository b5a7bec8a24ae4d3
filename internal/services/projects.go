package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/taskflow-dev/taskflow/internal/auth"
	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/store"
)

type ProjectService struct {
	store store.Store
}

// ProjectInput is the body of a project creation request. Dates are
// accepted as ISO dates or timestamps; Owner defaults to the caller.
type ProjectInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Owner       string `json:"owner"`
}

func NewProjectService(s store.Store) *ProjectService {
	return &ProjectService{store: s}
}

func (s *ProjectService) List(ctx context.Context, caller auth.Identity) ([]models.ProjectView, error) {
	if err := require(CanManageResources(caller)); err != nil {
		return nil, err
	}
	return s.list(ctx, store.ProjectFilter{}, "Failed to fetch projects")
}

// ListOwn returns the projects owned by the caller. Every role may do this.
func (s *ProjectService) ListOwn(ctx context.Context, caller auth.Identity) ([]models.ProjectView, error) {
	return s.list(ctx, store.ProjectFilter{OwnerID: caller.ID}, "Failed to fetch owned projects")
}

func (s *ProjectService) list(ctx context.Context, f store.ProjectFilter, failure string) ([]models.ProjectView, error) {
	projects, err := s.store.ListProjects(ctx, f)

	if err != nil {
		return nil, internalError(failure, err)
	}

	views, err := expandProjects(ctx, s.store, projects)

	if err != nil {
		return nil, internalError(failure, err)
	}

	return views, nil
}

func (s *ProjectService) Create(ctx context.Context, caller auth.Identity, in ProjectInput) (*models.ProjectView, error) {
	if err := require(CanManageResources(caller)); err != nil {
		return nil, err
	}

	in.Name = strings.TrimSpace(in.Name)

	if err := Validate(in); err != nil {
		return nil, err
	}

	name := in.Name

	start, err := parseDateField("startDate", in.StartDate)
	if err != nil {
		return nil, err
	}

	end, err := parseDateField("endDate", in.EndDate)
	if err != nil {
		return nil, err
	}

	owner := strings.TrimSpace(in.Owner)
	if owner == "" {
		owner = caller.ID
	}

	if err := s.checkOwner(ctx, owner); err != nil {
		return nil, err
	}

	project := &models.Project{
		Name:        name,
		Description: in.Description,
		StartDate:   start,
		EndDate:     end,
		OwnerID:     owner,
	}

	if err := s.store.CreateProject(ctx, project); err != nil {
		return nil, internalError("Failed to create project", err)
	}

	return s.expand(ctx, project)
}

// Update applies only the fields present in patch. A present but empty date
// clears it.
func (s *ProjectService) Update(ctx context.Context, caller auth.Identity, projectID string, patch models.ProjectPatch) (*models.ProjectView, error) {
	if err := require(CanManageResources(caller)); err != nil {
		return nil, err
	}

	var u models.ProjectUpdate

	if patch.Name.Set {
		name := strings.TrimSpace(stringOrEmpty(patch.Name))
		if name == "" {
			return nil, validationError("Project name is required")
		}
		u.Name = models.Some(name)
	}

	if patch.Description.Set {
		u.Description = models.Some(stringOrEmpty(patch.Description))
	}

	var err error

	if u.StartDate, err = patchDate("startDate", patch.StartDate); err != nil {
		return nil, err
	}

	if u.EndDate, err = patchDate("endDate", patch.EndDate); err != nil {
		return nil, err
	}

	if patch.Owner.Set {
		owner := strings.TrimSpace(stringOrEmpty(patch.Owner))
		if owner == "" {
			return nil, validationError("Owner is required")
		}
		if err := s.checkOwner(ctx, owner); err != nil {
			return nil, err
		}
		u.OwnerID = models.Some(owner)
	}

	project, err := s.store.UpdateProject(ctx, projectID, u)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, newError(KindNotFound, "Project not found")
		}
		return nil, internalError("Failed to update project", err)
	}

	return s.expand(ctx, project)
}

// Delete removes a project and every task that references it. Tasks go
// first so a partially applied delete never leaves orphans behind.
func (s *ProjectService) Delete(ctx context.Context, caller auth.Identity, projectID string) (*models.ProjectView, int64, error) {
	if err := require(CanManageResources(caller)); err != nil {
		return nil, 0, err
	}

	var (
		deleted *models.Project
		tasks   int64
	)

	err := s.store.Atomically(ctx, func(tx store.Store) error {
		if _, err := tx.GetProject(ctx, projectID); err != nil {
			return err
		}

		n, err := tx.DeleteTasksByProject(ctx, projectID)
		if err != nil {
			return err
		}

		p, err := tx.DeleteProject(ctx, projectID)
		if err != nil {
			return err
		}

		deleted, tasks = p, n
		return nil
	})

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, 0, newError(KindNotFound, "Project not found")
		}
		return nil, 0, internalError("Failed to delete project", err)
	}

	view, err := s.expand(ctx, deleted)

	if err != nil {
		return nil, 0, err
	}

	return view, tasks, nil
}

func (s *ProjectService) checkOwner(ctx context.Context, owner string) error {
	ok, err := userExists(ctx, s.store, owner)

	if err != nil {
		return internalError("Failed to resolve owner", err)
	}

	if !ok {
		return validationError("Owner not found")
	}

	return nil
}

func (s *ProjectService) expand(ctx context.Context, p *models.Project) (*models.ProjectView, error) {
	view, err := expandProject(ctx, s.store, p)

	if err != nil {
		return nil, internalError("Failed to resolve project references", err)
	}

	return view, nil
}

func parseDateField(field, value string) (*time.Time, error) {
	t, err := models.ParseDate(value)
	if err != nil {
		return nil, validationError("Invalid " + field)
	}
	return t, nil
}

// patchDate converts a present date string into an update, normalizing
// null and empty to a cleared date.
func patchDate(field string, o models.Optional[string]) (models.Optional[time.Time], error) {
	if !o.Set {
		return models.Optional[time.Time]{}, nil
	}

	t, err := parseDateField(field, stringOrEmpty(o))
	if err != nil {
		return models.Optional[time.Time]{}, err
	}

	if t == nil {
		return models.Null[time.Time](), nil
	}

	return models.Some(*t), nil
}

func stringOrEmpty(o models.Optional[string]) string {
	if o.Value == nil {
		return ""
	}
	return *o.Value
}
