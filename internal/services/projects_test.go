package services

import (
	"context"
	"testing"
	"time"

	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/store"
)

func TestCreateProjectDefaultsOwnerToCaller(t *testing.T) {
	s := newTestStore(t)
	tracker := seedUser(t, s, "tracker@x.com", models.RoleTaskTracker)
	svc := NewProjectService(s)

	view, err := svc.Create(context.Background(), tracker, ProjectInput{Name: "Apollo", StartDate: "2024-05-01"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if view.Owner == nil || view.Owner.ID != tracker.ID || view.Owner.Email != "tracker@x.com" {
		t.Fatalf("unexpected owner: %+v", view.Owner)
	}
	if view.StartDate == nil || view.StartDate.Format("2006-01-02") != "2024-05-01" {
		t.Fatalf("unexpected start date: %v", view.StartDate)
	}
}

func TestCreateProjectValidates(t *testing.T) {
	s := newTestStore(t)
	admin := seedUser(t, s, "admin@x.com", models.RoleAdmin)
	svc := NewProjectService(s)
	ctx := context.Background()

	_, err := svc.Create(ctx, admin, ProjectInput{Name: "  "})
	expectKind(t, err, KindValidation)

	_, err = svc.Create(ctx, admin, ProjectInput{Name: "Apollo", Owner: "missing"})
	expectKind(t, err, KindValidation)

	_, err = svc.Create(ctx, admin, ProjectInput{Name: "Apollo", EndDate: "next week"})
	expectKind(t, err, KindValidation)
}

func TestReadOnlyCannotWriteProjects(t *testing.T) {
	s := newTestStore(t)
	reader := seedUser(t, s, "reader@x.com", models.RoleReadOnly)
	project := seedProject(t, s, "Apollo", reader.ID)
	svc := NewProjectService(s)
	ctx := context.Background()

	_, err := svc.Create(ctx, reader, ProjectInput{Name: "Gemini"})
	expectKind(t, err, KindForbidden)

	_, err = svc.Update(ctx, reader, project.ID, models.ProjectPatch{Name: models.Some("Gemini")})
	expectKind(t, err, KindForbidden)

	_, _, err = svc.Delete(ctx, reader, project.ID)
	expectKind(t, err, KindForbidden)

	_, err = svc.List(ctx, reader)
	expectKind(t, err, KindForbidden)

	own, err := svc.ListOwn(ctx, reader)
	if err != nil {
		t.Fatalf("list own: %v", err)
	}
	if len(own) != 1 || own[0].ID != project.ID {
		t.Fatalf("unexpected own projects: %+v", own)
	}
}

func TestUpdateProjectAppliesOnlyPresentFields(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	admin := seedUser(t, s, "admin@x.com", models.RoleAdmin)
	svc := NewProjectService(s)

	created, err := svc.Create(ctx, admin, ProjectInput{
		Name:        "Apollo",
		Description: "moon",
		StartDate:   "2024-05-01",
		EndDate:     "2024-06-01",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(ctx, admin, created.ID, models.ProjectPatch{
		Name:    models.Some("Artemis"),
		EndDate: models.Some(""),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Name != "Artemis" || updated.Description != "moon" {
		t.Fatalf("unexpected fields: %+v", updated)
	}
	if updated.StartDate == nil {
		t.Fatalf("start date should be untouched")
	}
	if updated.EndDate != nil {
		t.Fatalf("empty end date should clear it, got %v", updated.EndDate)
	}

	_, err = svc.Update(ctx, admin, "missing", models.ProjectPatch{Name: models.Some("x")})
	expectKind(t, err, KindNotFound)

	_, err = svc.Update(ctx, admin, created.ID, models.ProjectPatch{Name: models.Null[string]()})
	expectKind(t, err, KindValidation)
}

func TestDeleteProjectCascadesToTasks(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	tracker := seedUser(t, s, "tracker@x.com", models.RoleTaskTracker)
	doomed := seedProject(t, s, "Apollo", tracker.ID)
	kept := seedProject(t, s, "Gemini", tracker.ID)

	due := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		seedTask(t, s, "doomed", tracker.ID, doomed.ID, &due)
	}
	survivor := seedTask(t, s, "kept", tracker.ID, kept.ID, nil)

	view, n, err := NewProjectService(s).Delete(ctx, tracker, doomed.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}

	if n != 3 {
		t.Fatalf("expected 3 deleted tasks, got %d", n)
	}
	if view.ID != doomed.ID || view.Owner == nil {
		t.Fatalf("unexpected deleted view: %+v", view)
	}

	left, err := s.ListTasks(ctx, store.TaskFilter{})
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	for _, task := range left {
		if task.ProjectID == doomed.ID {
			t.Fatalf("task %s still references the deleted project", task.ID)
		}
	}

	if _, err := s.GetProject(ctx, doomed.ID); err != store.ErrNotFound {
		t.Fatalf("expected project gone, got %v", err)
	}
	if _, err := s.GetTask(ctx, survivor.ID); err != nil {
		t.Fatalf("unrelated task was touched: %v", err)
	}

	_, _, err = NewProjectService(s).Delete(ctx, tracker, doomed.ID)
	expectKind(t, err, KindNotFound)
}

func TestProjectViewsRenderDanglingOwnerAsNil(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	admin := seedUser(t, s, "admin@x.com", models.RoleAdmin)
	seedProject(t, s, "Orphan", "gone")

	views, err := NewProjectService(s).List(ctx, admin)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(views) != 1 || views[0].Owner != nil {
		t.Fatalf("expected a single project with nil owner, got %+v", views)
	}
}
