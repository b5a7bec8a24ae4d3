package services

import (
	"context"
	"errors"
	"strings"

	"github.com/taskflow-dev/taskflow/internal/auth"
	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/store"
)

type TaskService struct {
	store store.Store
}

// TaskInput is the body of a task creation request. Status defaults to NEW
// and Owner to the caller.
type TaskInput struct {
	Description string `json:"description" binding:"required"`
	DueDate     string `json:"dueDate"`
	Status      string `json:"status" binding:"omitempty,oneof=NEW NOT_STARTED IN_PROGRESS BLOCKED COMPLETED"`
	Project     string `json:"project" binding:"required"`
	Owner       string `json:"owner"`
}

var errTaskNotFound = newError(KindNotFound, "Task not found")

func NewTaskService(s store.Store) *TaskService {
	return &TaskService{store: s}
}

func (s *TaskService) List(ctx context.Context, caller auth.Identity) ([]models.TaskView, error) {
	if err := require(CanManageResources(caller)); err != nil {
		return nil, err
	}
	return s.list(ctx, store.TaskFilter{}, "Failed to fetch tasks")
}

// ListOwn returns the tasks assigned to the caller.
func (s *TaskService) ListOwn(ctx context.Context, caller auth.Identity) ([]models.TaskView, error) {
	return s.list(ctx, store.TaskFilter{OwnerID: caller.ID}, "Failed to fetch assigned tasks")
}

func (s *TaskService) list(ctx context.Context, f store.TaskFilter, failure string) ([]models.TaskView, error) {
	tasks, err := s.store.ListTasks(ctx, f)

	if err != nil {
		return nil, internalError(failure, err)
	}

	views, err := expandTasks(ctx, s.store, tasks)

	if err != nil {
		return nil, internalError(failure, err)
	}

	return views, nil
}

func (s *TaskService) Create(ctx context.Context, caller auth.Identity, in TaskInput) (*models.TaskView, error) {
	if err := require(CanManageResources(caller)); err != nil {
		return nil, err
	}

	in.Description = strings.TrimSpace(in.Description)
	in.Project = strings.TrimSpace(in.Project)
	in.Status = strings.TrimSpace(in.Status)

	if err := Validate(in); err != nil {
		return nil, err
	}

	description, projectID := in.Description, in.Project

	status := models.StatusNew

	if strings.TrimSpace(in.Status) != "" {
		parsed, err := models.ParseTaskStatus(in.Status)
		if err != nil {
			return nil, validationError("Invalid status")
		}
		status = parsed
	}

	due, err := parseDateField("dueDate", in.DueDate)
	if err != nil {
		return nil, err
	}

	owner := strings.TrimSpace(in.Owner)
	if owner == "" {
		owner = caller.ID
	}

	if err := s.checkReferences(ctx, owner, projectID); err != nil {
		return nil, err
	}

	task := &models.Task{
		Description: description,
		DueDate:     due,
		Status:      status,
		OwnerID:     owner,
		ProjectID:   projectID,
	}

	if err := s.store.CreateTask(ctx, task); err != nil {
		return nil, internalError("Failed to create task", err)
	}

	return s.expand(ctx, task)
}

// Update applies only the fields present in patch.
func (s *TaskService) Update(ctx context.Context, caller auth.Identity, taskID string, patch models.TaskPatch) (*models.TaskView, error) {
	if err := require(CanManageResources(caller)); err != nil {
		return nil, err
	}

	var u models.TaskUpdate

	if patch.Description.Set {
		description := strings.TrimSpace(stringOrEmpty(patch.Description))
		if description == "" {
			return nil, validationError("Description is required")
		}
		u.Description = models.Some(description)
	}

	var err error

	if u.DueDate, err = patchDate("dueDate", patch.DueDate); err != nil {
		return nil, err
	}

	if patch.Status.Set {
		status, err := models.ParseTaskStatus(stringOrEmpty(patch.Status))
		if err != nil {
			return nil, validationError("Invalid status")
		}
		u.Status = models.Some(status)
	}

	var owner, projectID string

	if patch.Owner.Set {
		if owner = strings.TrimSpace(stringOrEmpty(patch.Owner)); owner == "" {
			return nil, validationError("Owner is required")
		}
		u.OwnerID = models.Some(owner)
	}

	if patch.Project.Set {
		if projectID = strings.TrimSpace(stringOrEmpty(patch.Project)); projectID == "" {
			return nil, validationError("Project is required")
		}
		u.ProjectID = models.Some(projectID)
	}

	if err := s.checkReferences(ctx, owner, projectID); err != nil {
		return nil, err
	}

	task, err := s.store.UpdateTask(ctx, taskID, u)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errTaskNotFound
		}
		return nil, internalError("Failed to update task", err)
	}

	return s.expand(ctx, task)
}

// UpdateStatus changes only the status of a task. Unlike Update it is open
// to every role, but READ_ONLY callers may only move their own tasks.
func (s *TaskService) UpdateStatus(ctx context.Context, caller auth.Identity, taskID, status string) (*models.TaskView, error) {
	task, err := s.store.GetTask(ctx, taskID)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errTaskNotFound
		}
		return nil, internalError("Failed to update task status", err)
	}

	if err := require(CanChangeStatus(caller, task)); err != nil {
		return nil, err
	}

	parsed, err := models.ParseTaskStatus(status)

	if err != nil {
		return nil, validationError("Invalid status")
	}

	task, err = s.store.UpdateTask(ctx, taskID, models.TaskUpdate{Status: models.Some(parsed)})

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errTaskNotFound
		}
		return nil, internalError("Failed to update task status", err)
	}

	return s.expand(ctx, task)
}

func (s *TaskService) Delete(ctx context.Context, caller auth.Identity, taskID string) (*models.TaskView, error) {
	if err := require(CanManageResources(caller)); err != nil {
		return nil, err
	}

	task, err := s.store.DeleteTask(ctx, taskID)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errTaskNotFound
		}
		return nil, internalError("Failed to delete task", err)
	}

	return s.expand(ctx, task)
}

// checkReferences validates the non-empty owner and project ids.
func (s *TaskService) checkReferences(ctx context.Context, owner, projectID string) error {
	if owner != "" {
		ok, err := userExists(ctx, s.store, owner)
		if err != nil {
			return internalError("Failed to resolve owner", err)
		}
		if !ok {
			return validationError("Owner not found")
		}
	}

	if projectID != "" {
		ok, err := projectExists(ctx, s.store, projectID)
		if err != nil {
			return internalError("Failed to resolve project", err)
		}
		if !ok {
			return validationError("Project not found")
		}
	}

	return nil
}

func (s *TaskService) expand(ctx context.Context, t *models.Task) (*models.TaskView, error) {
	view, err := expandTask(ctx, s.store, t)

	if err != nil {
		return nil, internalError("Failed to resolve task references", err)
	}

	return view, nil
}
