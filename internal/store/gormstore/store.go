// Package gormstore implements store.Store on top of GORM (PostgreSQL or SQLite).
package gormstore

import (
	"context"
	"errors"

	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/store"
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

var _ store.Store = (*Store)(nil)

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Atomically(ctx context.Context, fn func(store.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return store.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return store.ErrDuplicate
	}
	return err
}

// Users

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	return translate(s.db.WithContext(ctx).Create(u).Error)
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}

	return &user, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.UserSummary, error) {
	users := []models.UserSummary{}

	err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Select("id", "name", "email", "role").
		Order("created_at, id").
		Find(&users).Error

	if err != nil {
		return nil, err
	}

	return users, nil
}

func (s *Store) UsersByID(ctx context.Context, ids []string) (map[string]models.User, error) {
	out := make(map[string]models.User)
	ids = store.UniqueIDs(ids)

	if len(ids) == 0 {
		return out, nil
	}

	var users []models.User

	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}

	for _, u := range users {
		out[u.ID] = u
	}

	return out, nil
}

func (s *Store) UpdateUserByEmail(ctx context.Context, email, newEmail string, role models.Role) error {
	res := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{"email": newEmail, "role": role})

	if res.Error != nil {
		return translate(res.Error)
	}

	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteUserByEmail(ctx context.Context, email string) error {
	res := s.db.WithContext(ctx).Where("email = ?", email).Delete(&models.User{})

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}

	return nil
}

// Authorization registry

func (s *Store) ListRoleAssignments(ctx context.Context) ([]models.RoleAssignment, error) {
	roles := []models.RoleAssignment{}

	if err := s.db.WithContext(ctx).Order("email").Find(&roles).Error; err != nil {
		return nil, err
	}

	return roles, nil
}

func (s *Store) FindRoleAssignment(ctx context.Context, email string) (*models.RoleAssignment, error) {
	var role models.RoleAssignment

	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&role).Error; err != nil {
		return nil, translate(err)
	}

	return &role, nil
}

func (s *Store) CreateRoleAssignment(ctx context.Context, r *models.RoleAssignment) error {
	return translate(s.db.WithContext(ctx).Create(r).Error)
}

func (s *Store) UpdateRoleAssignment(ctx context.Context, email, newEmail string, role models.Role) (*models.RoleAssignment, error) {
	existing, err := s.FindRoleAssignment(ctx, email)

	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).
		Model(existing).
		Updates(map[string]interface{}{"email": newEmail, "role": role}).Error

	if err != nil {
		return nil, translate(err)
	}

	existing.Email = newEmail
	existing.Role = role

	return existing, nil
}

func (s *Store) DeleteRoleAssignment(ctx context.Context, email string) (*models.RoleAssignment, error) {
	existing, err := s.FindRoleAssignment(ctx, email)

	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Delete(existing).Error; err != nil {
		return nil, err
	}

	return existing, nil
}

func (s *Store) DeleteAllRoleAssignments(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Where("1 = 1").Delete(&models.RoleAssignment{})
	return res.RowsAffected, res.Error
}

// Projects

func (s *Store) CreateProject(ctx context.Context, p *models.Project) error {
	return translate(s.db.WithContext(ctx).Create(p).Error)
}

func (s *Store) GetProject(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project

	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		return nil, translate(err)
	}

	return &project, nil
}

func (s *Store) ListProjects(ctx context.Context, f store.ProjectFilter) ([]models.Project, error) {
	projects := []models.Project{}
	q := s.db.WithContext(ctx).Order("created_at, id")

	if f.OwnerID != "" {
		q = q.Where("owner_id = ?", f.OwnerID)
	}

	if err := q.Find(&projects).Error; err != nil {
		return nil, err
	}

	return projects, nil
}

func (s *Store) ProjectsByID(ctx context.Context, ids []string) (map[string]models.Project, error) {
	out := make(map[string]models.Project)
	ids = store.UniqueIDs(ids)

	if len(ids) == 0 {
		return out, nil
	}

	var projects []models.Project

	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&projects).Error; err != nil {
		return nil, err
	}

	for _, p := range projects {
		out[p.ID] = p
	}

	return out, nil
}

func (s *Store) UpdateProject(ctx context.Context, id string, u models.ProjectUpdate) (*models.Project, error) {
	project, err := s.GetProject(ctx, id)

	if err != nil {
		return nil, err
	}

	if u.Empty() {
		return project, nil
	}

	updates := make(map[string]interface{})

	if u.Name.Set {
		updates["name"] = valueOrZero(u.Name)
	}
	if u.Description.Set {
		updates["description"] = valueOrZero(u.Description)
	}
	if u.StartDate.Set {
		updates["start_date"] = u.StartDate.Value
	}
	if u.EndDate.Set {
		updates["end_date"] = u.EndDate.Value
	}
	if u.OwnerID.Set {
		updates["owner_id"] = valueOrZero(u.OwnerID)
	}

	if err := s.db.WithContext(ctx).Model(project).Updates(updates).Error; err != nil {
		return nil, translate(err)
	}

	return s.GetProject(ctx, id)
}

func (s *Store) DeleteProject(ctx context.Context, id string) (*models.Project, error) {
	project, err := s.GetProject(ctx, id)

	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Delete(project).Error; err != nil {
		return nil, err
	}

	return project, nil
}

// Tasks

func (s *Store) CreateTask(ctx context.Context, t *models.Task) error {
	return translate(s.db.WithContext(ctx).Create(t).Error)
}

func (s *Store) GetTask(ctx context.Context, id string) (*models.Task, error) {
	var task models.Task

	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, translate(err)
	}

	return &task, nil
}

func (s *Store) ListTasks(ctx context.Context, f store.TaskFilter) ([]models.Task, error) {
	tasks := []models.Task{}
	q := s.db.WithContext(ctx).Order("created_at, id")

	if f.OwnerID != "" {
		q = q.Where("owner_id = ?", f.OwnerID)
	}

	if err := q.Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

func (s *Store) UpdateTask(ctx context.Context, id string, u models.TaskUpdate) (*models.Task, error) {
	task, err := s.GetTask(ctx, id)

	if err != nil {
		return nil, err
	}

	if u.Empty() {
		return task, nil
	}

	updates := make(map[string]interface{})

	if u.Description.Set {
		updates["description"] = valueOrZero(u.Description)
	}
	if u.DueDate.Set {
		updates["due_date"] = u.DueDate.Value
	}
	if u.Status.Set {
		updates["status"] = valueOrZero(u.Status)
	}
	if u.OwnerID.Set {
		updates["owner_id"] = valueOrZero(u.OwnerID)
	}
	if u.ProjectID.Set {
		updates["project_id"] = valueOrZero(u.ProjectID)
	}

	if err := s.db.WithContext(ctx).Model(task).Updates(updates).Error; err != nil {
		return nil, translate(err)
	}

	return s.GetTask(ctx, id)
}

func (s *Store) DeleteTask(ctx context.Context, id string) (*models.Task, error) {
	task, err := s.GetTask(ctx, id)

	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Delete(task).Error; err != nil {
		return nil, err
	}

	return task, nil
}

func (s *Store) DeleteTasksByProject(ctx context.Context, projectID string) (int64, error) {
	res := s.db.WithContext(ctx).Where("project_id = ?", projectID).Delete(&models.Task{})
	return res.RowsAffected, res.Error
}

func valueOrZero[T any](o models.Optional[T]) T {
	var zero T
	if o.Value == nil {
		return zero
	}
	return *o.Value
}
