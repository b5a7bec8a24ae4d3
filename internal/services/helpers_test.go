package services

import (
	"context"
	"testing"
	"time"

	"github.com/taskflow-dev/taskflow/internal/auth"
	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/store"
	"github.com/taskflow-dev/taskflow/internal/testutil"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	return testutil.NewStore(t)
}

func seedUser(t *testing.T, s store.Store, email string, role models.Role) auth.Identity {
	t.Helper()

	u := &models.User{Name: email, Email: email, PasswordHash: "x", Role: role}
	if err := s.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}

	return auth.Identity{ID: u.ID, Name: u.Name, Role: u.Role}
}

func seedProject(t *testing.T, s store.Store, name, owner string) *models.Project {
	t.Helper()

	p := &models.Project{Name: name, OwnerID: owner}
	if err := s.CreateProject(context.Background(), p); err != nil {
		t.Fatalf("seed project %s: %v", name, err)
	}

	return p
}

func seedTask(t *testing.T, s store.Store, description, owner, project string, due *time.Time) *models.Task {
	t.Helper()

	task := &models.Task{Description: description, OwnerID: owner, ProjectID: project, DueDate: due}
	if err := s.CreateTask(context.Background(), task); err != nil {
		t.Fatalf("seed task %s: %v", description, err)
	}

	return task
}

func expectKind(t *testing.T, err error, kind Kind) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected error of kind %d, got nil", kind)
	}
	if got := KindOf(err); got != kind {
		t.Fatalf("expected kind %d, got %d (%v)", kind, got, err)
	}
}
