package services

import (
	"errors"
	"net/http"
	"testing"

	"github.com/taskflow-dev/taskflow/internal/auth"
	"github.com/taskflow-dev/taskflow/internal/models"
)

func TestPolicyTable(t *testing.T) {
	admin := auth.Identity{ID: "a", Role: models.RoleAdmin}
	tracker := auth.Identity{ID: "t", Role: models.RoleTaskTracker}
	reader := auth.Identity{ID: "r", Role: models.RoleReadOnly}

	cases := []struct {
		name    string
		got     bool
		allowed bool
	}{
		{"admin manages resources", CanManageResources(admin), true},
		{"tracker manages resources", CanManageResources(tracker), true},
		{"reader manages resources", CanManageResources(reader), false},
		{"admin manages roles", CanManageRoles(admin), true},
		{"tracker manages roles", CanManageRoles(tracker), false},
		{"reader manages roles", CanManageRoles(reader), false},
		{"tracker lists users", CanListUsers(tracker), true},
		{"reader lists users", CanListUsers(reader), false},
		{"reader moves own task", CanChangeStatus(reader, &models.Task{OwnerID: "r"}), true},
		{"reader moves other task", CanChangeStatus(reader, &models.Task{OwnerID: "t"}), false},
		{"reader moves unowned task", CanChangeStatus(auth.Identity{Role: models.RoleReadOnly}, &models.Task{}), false},
		{"tracker moves other task", CanChangeStatus(tracker, &models.Task{OwnerID: "r"}), true},
	}

	for _, tc := range cases {
		if tc.got != tc.allowed {
			t.Errorf("%s: got %v, want %v", tc.name, tc.got, tc.allowed)
		}
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{newError(KindUnauthenticated, "x"), http.StatusUnauthorized},
		{errForbidden, http.StatusForbidden},
		{newError(KindNotAuthorized, "x"), http.StatusForbidden},
		{validationError("x"), http.StatusBadRequest},
		{newError(KindAlreadyExists, "x"), http.StatusBadRequest},
		{errInvalidCredentials, http.StatusBadRequest},
		{errTaskNotFound, http.StatusNotFound},
		{internalError("x", errors.New("boom")), http.StatusInternalServerError},
		{errors.New("raw"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := HTTPStatus(tc.err); got != tc.status {
			t.Errorf("%v: got %d, want %d", tc.err, got, tc.status)
		}
	}

	if msg := PublicMessage(errors.New("connection refused")); msg != "Internal server error" {
		t.Fatalf("raw errors must not leak, got %q", msg)
	}
	if msg := PublicMessage(internalError("Failed to fetch tasks", errors.New("boom"))); msg != "Failed to fetch tasks" {
		t.Fatalf("unexpected message %q", msg)
	}
}
