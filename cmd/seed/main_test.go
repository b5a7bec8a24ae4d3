package main

import (
	"context"
	"testing"

	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/testutil"
)

func TestSeedReplacesRegistry(t *testing.T) {
	ctx := context.Background()
	st := testutil.NewStore(t)

	if err := st.CreateRoleAssignment(ctx, &models.RoleAssignment{Email: "old@x.com", Role: models.RoleAdmin}); err != nil {
		t.Fatalf("seed old entry: %v", err)
	}

	if err := seed(ctx, st, defaultAssignments, false); err != nil {
		t.Fatalf("seed: %v", err)
	}

	roles, err := st.ListRoleAssignments(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(roles) != len(defaultAssignments) {
		t.Fatalf("expected %d entries, got %+v", len(defaultAssignments), roles)
	}

	tracker, err := st.FindRoleAssignment(ctx, "tracker@test.com")
	if err != nil || tracker.Role != models.RoleTaskTracker {
		t.Fatalf("unexpected tracker entry %+v (%v)", tracker, err)
	}
}

func TestSeedKeepUpserts(t *testing.T) {
	ctx := context.Background()
	st := testutil.NewStore(t)

	for _, e := range []models.RoleAssignment{
		{Email: "old@x.com", Role: models.RoleAdmin},
		{Email: "admin@test.com", Role: models.RoleReadOnly},
	} {
		entry := e
		if err := st.CreateRoleAssignment(ctx, &entry); err != nil {
			t.Fatalf("seed entry: %v", err)
		}
	}

	if err := seed(ctx, st, defaultAssignments, true); err != nil {
		t.Fatalf("seed: %v", err)
	}

	roles, err := st.ListRoleAssignments(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(roles) != 4 {
		t.Fatalf("expected existing entry kept, got %+v", roles)
	}

	admin, err := st.FindRoleAssignment(ctx, "admin@test.com")
	if err != nil || admin.Role != models.RoleAdmin {
		t.Fatalf("default role not restored: %+v (%v)", admin, err)
	}
}
