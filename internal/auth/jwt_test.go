package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/taskflow-dev/taskflow/internal/models"
)

func TestNewIssuerRequiresSecret(t *testing.T) {
	if _, err := NewIssuer("", time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}

	issuer, err := NewIssuer("s", 0)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	if issuer.ttl != DefaultTokenTTL {
		t.Fatalf("expected default ttl, got %v", issuer.ttl)
	}
}

func TestGenerateAndVerify(t *testing.T) {
	issuer, err := NewIssuer("secret", time.Hour)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}

	want := Identity{ID: "u1", Name: "Ann", Role: models.RoleTaskTracker}

	token, err := issuer.GenerateJWT(want)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	got, err := issuer.VerifyJWT(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	issuer, err := NewIssuer("secret", time.Hour)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}

	issued := time.Now().Add(-2 * time.Hour)
	issuer.now = func() time.Time { return issued }

	token, err := issuer.GenerateJWT(Identity{ID: "u1", Role: models.RoleAdmin})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	issuer.now = time.Now

	if _, err := issuer.VerifyJWT(token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsForeignTokens(t *testing.T) {
	issuer, err := NewIssuer("secret", time.Hour)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}

	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))

	unknownRole := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:           "u1",
		Role:             "ROOT",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: exp},
	})
	signed, err := unknownRole.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := issuer.VerifyJWT(signed); err != ErrInvalidToken {
		t.Fatalf("unknown role accepted: %v", err)
	}

	otherAlg := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		UserID:           "u1",
		Role:             models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: exp},
	})
	signed, err = otherAlg.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := issuer.VerifyJWT(signed); err != ErrInvalidToken {
		t.Fatalf("HS512 token accepted: %v", err)
	}

	noExpiry := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: "u1", Role: models.RoleAdmin})
	signed, err = noExpiry.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := issuer.VerifyJWT(signed); err != ErrInvalidToken {
		t.Fatalf("token without expiry accepted: %v", err)
	}
}
