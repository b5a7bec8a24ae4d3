package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskflow-dev/taskflow/internal/auth"
	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/store"
)

func newAuthService(t *testing.T, s store.Store) (*AuthService, *auth.Issuer) {
	t.Helper()

	issuer, err := auth.NewIssuer("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}

	svc := NewAuthService(s, issuer)
	svc.hashCost = bcrypt.MinCost
	return svc, issuer
}

func TestRegisterRequiresRegistryEntry(t *testing.T) {
	s := newTestStore(t)
	svc, _ := newAuthService(t, s)

	_, err := svc.Register(context.Background(), RegisterInput{Name: "Ann", Email: "ann@x.com", Password: "secret123"})
	expectKind(t, err, KindNotAuthorized)

	if status := HTTPStatus(err); status != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", status)
	}
}

func TestRegisterCopiesRoleFromRegistry(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc, _ := newAuthService(t, s)

	if err := s.CreateRoleAssignment(ctx, &models.RoleAssignment{Email: "ann@x.com", Role: models.RoleTaskTracker}); err != nil {
		t.Fatalf("seed role: %v", err)
	}

	user, err := svc.Register(ctx, RegisterInput{Name: "Ann", Email: "  Ann@X.com ", Password: "secret123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if user.Email != "ann@x.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.Role != models.RoleTaskTracker {
		t.Fatalf("expected role copied from registry, got %q", user.Role)
	}
	if user.PasswordHash == "secret123" || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")) != nil {
		t.Fatalf("password was not hashed")
	}
}

func TestRegisterRejectsExistingUser(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc, _ := newAuthService(t, s)

	if err := s.CreateRoleAssignment(ctx, &models.RoleAssignment{Email: "ann@x.com", Role: models.RoleReadOnly}); err != nil {
		t.Fatalf("seed role: %v", err)
	}

	in := RegisterInput{Name: "Ann", Email: "ann@x.com", Password: "secret123"}
	if _, err := svc.Register(ctx, in); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := svc.Register(ctx, in)
	expectKind(t, err, KindAlreadyExists)

	if status := HTTPStatus(err); status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
}

func TestRegisterRequiresFields(t *testing.T) {
	svc, _ := newAuthService(t, newTestStore(t))

	_, err := svc.Register(context.Background(), RegisterInput{Email: "ann@x.com"})
	expectKind(t, err, KindValidation)
}

func TestRegisterRejectsMalformedEmail(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc, _ := newAuthService(t, s)

	_, err := svc.Register(ctx, RegisterInput{Name: "Ann", Email: "not an email", Password: "a"})
	expectKind(t, err, KindValidation)
	if msg := PublicMessage(err); msg != "Invalid email" {
		t.Fatalf("unexpected message %q", msg)
	}

	if _, err := s.FindUserByEmail(ctx, "not an email"); err == nil {
		t.Fatalf("user must not be stored")
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc, _ := newAuthService(t, s)

	if err := s.CreateRoleAssignment(ctx, &models.RoleAssignment{Email: "ann@x.com", Role: models.RoleReadOnly}); err != nil {
		t.Fatalf("seed role: %v", err)
	}
	if _, err := svc.Register(ctx, RegisterInput{Name: "Ann", Email: "ann@x.com", Password: "secret123"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, wrongPassword := svc.Login(ctx, "ann@x.com", "nope")
	_, unknownEmail := svc.Login(ctx, "bob@x.com", "secret123")

	expectKind(t, wrongPassword, KindInvalidCredentials)
	expectKind(t, unknownEmail, KindInvalidCredentials)

	if PublicMessage(wrongPassword) != PublicMessage(unknownEmail) {
		t.Fatalf("messages differ: %q vs %q", PublicMessage(wrongPassword), PublicMessage(unknownEmail))
	}
	if HTTPStatus(wrongPassword) != HTTPStatus(unknownEmail) {
		t.Fatalf("statuses differ: %d vs %d", HTTPStatus(wrongPassword), HTTPStatus(unknownEmail))
	}
}

func TestLoginIssuesTokenWithRole(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	svc, issuer := newAuthService(t, s)

	if err := s.CreateRoleAssignment(ctx, &models.RoleAssignment{Email: "new@x.com", Role: models.RoleTaskTracker}); err != nil {
		t.Fatalf("seed role: %v", err)
	}

	user, err := svc.Register(ctx, RegisterInput{Name: "New", Email: "new@x.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	token, err := svc.Login(ctx, "new@x.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	id, err := issuer.VerifyJWT(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	if id.ID != user.ID || id.Name != "New" || id.Role != models.RoleTaskTracker {
		t.Fatalf("unexpected identity: %+v", id)
	}
}
