package services

import (
	"context"
	"testing"
	"time"

	"github.com/taskflow-dev/taskflow/internal/models"
)

func TestCreateTaskDefaults(t *testing.T) {
	s := newTestStore(t)
	tracker := seedUser(t, s, "tracker@x.com", models.RoleTaskTracker)
	project := seedProject(t, s, "Apollo", tracker.ID)

	view, err := NewTaskService(s).Create(context.Background(), tracker, TaskInput{
		Description: "Write report",
		Project:     project.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if view.Status != models.StatusNew {
		t.Fatalf("expected NEW, got %q", view.Status)
	}
	if view.Owner == nil || view.Owner.ID != tracker.ID {
		t.Fatalf("expected caller as owner, got %+v", view.Owner)
	}
	if view.Project == nil || view.Project.Name != "Apollo" {
		t.Fatalf("expected expanded project, got %+v", view.Project)
	}
	if view.DueDate != nil {
		t.Fatalf("expected no due date, got %v", view.DueDate)
	}
}

func TestCreateTaskValidates(t *testing.T) {
	s := newTestStore(t)
	tracker := seedUser(t, s, "tracker@x.com", models.RoleTaskTracker)
	project := seedProject(t, s, "Apollo", tracker.ID)
	svc := NewTaskService(s)
	ctx := context.Background()

	cases := map[string]TaskInput{
		"missing description": {Project: project.ID},
		"missing project":     {Description: "x"},
		"unknown project":     {Description: "x", Project: "nope"},
		"unknown owner":       {Description: "x", Project: project.ID, Owner: "nope"},
		"unknown status":      {Description: "x", Project: project.ID, Status: "DONE"},
		"bad due date":        {Description: "x", Project: project.ID, DueDate: "tomorrow"},
	}

	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(ctx, tracker, in)
			expectKind(t, err, KindValidation)
		})
	}
}

func TestUpdateTaskStatusOnlyLeavesOtherFields(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	tracker := seedUser(t, s, "tracker@x.com", models.RoleTaskTracker)
	project := seedProject(t, s, "Apollo", tracker.ID)
	due := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	task := seedTask(t, s, "Write report", tracker.ID, project.ID, &due)

	view, err := NewTaskService(s).Update(ctx, tracker, task.ID, models.TaskPatch{Status: models.Some("BLOCKED")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if view.Status != models.StatusBlocked {
		t.Fatalf("expected BLOCKED, got %q", view.Status)
	}
	if view.Description != "Write report" {
		t.Fatalf("description changed: %q", view.Description)
	}
	if view.DueDate == nil || !view.DueDate.Equal(due) {
		t.Fatalf("due date changed: %v", view.DueDate)
	}
	if view.Project == nil || view.Project.ID != project.ID {
		t.Fatalf("project changed: %+v", view.Project)
	}
	if view.Owner == nil || view.Owner.ID != tracker.ID {
		t.Fatalf("owner changed: %+v", view.Owner)
	}
}

func TestUpdateTaskClearsEmptyDueDate(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	tracker := seedUser(t, s, "tracker@x.com", models.RoleTaskTracker)
	project := seedProject(t, s, "Apollo", tracker.ID)
	due := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	task := seedTask(t, s, "Write report", tracker.ID, project.ID, &due)
	svc := NewTaskService(s)

	view, err := svc.Update(ctx, tracker, task.ID, models.TaskPatch{DueDate: models.Some("")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if view.DueDate != nil {
		t.Fatalf("expected cleared due date, got %v", view.DueDate)
	}

	_, err = svc.Update(ctx, tracker, "missing", models.TaskPatch{Status: models.Some("NEW")})
	expectKind(t, err, KindNotFound)

	_, err = svc.Update(ctx, tracker, task.ID, models.TaskPatch{Owner: models.Some("nobody")})
	expectKind(t, err, KindValidation)
}

func TestReadOnlyTaskPermissions(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	tracker := seedUser(t, s, "tracker@x.com", models.RoleTaskTracker)
	reader := seedUser(t, s, "reader@x.com", models.RoleReadOnly)
	project := seedProject(t, s, "Apollo", tracker.ID)
	mine := seedTask(t, s, "mine", reader.ID, project.ID, nil)
	theirs := seedTask(t, s, "theirs", tracker.ID, project.ID, nil)
	svc := NewTaskService(s)

	_, err := svc.Create(ctx, reader, TaskInput{Description: "x", Project: project.ID})
	expectKind(t, err, KindForbidden)

	_, err = svc.Update(ctx, reader, mine.ID, models.TaskPatch{Description: models.Some("y")})
	expectKind(t, err, KindForbidden)

	_, err = svc.Delete(ctx, reader, mine.ID)
	expectKind(t, err, KindForbidden)

	_, err = svc.List(ctx, reader)
	expectKind(t, err, KindForbidden)

	own, err := svc.ListOwn(ctx, reader)
	if err != nil {
		t.Fatalf("list own: %v", err)
	}
	if len(own) != 1 || own[0].ID != mine.ID {
		t.Fatalf("unexpected own tasks: %+v", own)
	}

	view, err := svc.UpdateStatus(ctx, reader, mine.ID, "IN_PROGRESS")
	if err != nil {
		t.Fatalf("status of own task: %v", err)
	}
	if view.Status != models.StatusInProgress {
		t.Fatalf("expected IN_PROGRESS, got %q", view.Status)
	}

	_, err = svc.UpdateStatus(ctx, reader, theirs.ID, "COMPLETED")
	expectKind(t, err, KindForbidden)
}

func TestUpdateStatusValidatesOnlyStatus(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	tracker := seedUser(t, s, "tracker@x.com", models.RoleTaskTracker)
	// a task whose project no longer exists still accepts a status change
	task := seedTask(t, s, "orphan", tracker.ID, "gone", nil)
	svc := NewTaskService(s)

	view, err := svc.UpdateStatus(ctx, tracker, task.ID, "COMPLETED")
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if view.Status != models.StatusCompleted || view.Project != nil {
		t.Fatalf("unexpected view: %+v", view)
	}

	_, err = svc.UpdateStatus(ctx, tracker, task.ID, "done")
	expectKind(t, err, KindValidation)

	_, err = svc.UpdateStatus(ctx, tracker, "missing", "NEW")
	expectKind(t, err, KindNotFound)
}

func TestDeleteTaskReturnsExpandedTask(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	admin := seedUser(t, s, "admin@x.com", models.RoleAdmin)
	project := seedProject(t, s, "Apollo", admin.ID)
	task := seedTask(t, s, "x", admin.ID, project.ID, nil)
	svc := NewTaskService(s)

	view, err := svc.Delete(ctx, admin, task.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if view.ID != task.ID || view.Project == nil || view.Owner == nil {
		t.Fatalf("unexpected view: %+v", view)
	}

	_, err = svc.Delete(ctx, admin, task.ID)
	expectKind(t, err, KindNotFound)
}
