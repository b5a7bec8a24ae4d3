package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskflow-dev/taskflow/internal/auth"
	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/store"
)

// TokenIssuer signs identity tokens for authenticated users.
type TokenIssuer interface {
	GenerateJWT(id auth.Identity) (string, error)
}

type AuthService struct {
	store    store.Store
	tokens   TokenIssuer
	hashCost int

	dummyOnce sync.Once
	dummyHash []byte
}

type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

var errInvalidCredentials = newError(KindInvalidCredentials, "Invalid credentials")

func NewAuthService(s store.Store, tokens TokenIssuer) *AuthService {
	return &AuthService{store: s, tokens: tokens, hashCost: bcrypt.DefaultCost}
}

// Register creates a user for an email present in the authorization
// registry. The role is copied from the registry entry.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = models.NormalizeEmail(in.Email)

	if err := Validate(in); err != nil {
		return nil, err
	}

	name, email := in.Name, in.Email

	entry, err := s.store.FindRoleAssignment(ctx, email)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, newError(KindNotAuthorized, "Email not authorized")
		}
		return nil, internalError("Registration failed", err)
	}

	if _, err := s.store.FindUserByEmail(ctx, email); err == nil {
		return nil, newError(KindAlreadyExists, "User already exists")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, internalError("Registration failed", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)

	if err != nil {
		return nil, internalError("Registration failed", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         entry.Role,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, newError(KindAlreadyExists, "User already exists")
		}
		return nil, internalError("Registration failed", err)
	}

	return user, nil
}

// Login verifies credentials and returns a signed token. Unknown emails and
// wrong passwords fail identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.store.FindUserByEmail(ctx, models.NormalizeEmail(email))

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// keep timing close to the wrong-password path
			_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
			return "", errInvalidCredentials
		}
		return "", internalError("Login failed", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", errInvalidCredentials
	}

	token, err := s.tokens.GenerateJWT(auth.Identity{ID: user.ID, Name: user.Name, Role: user.Role})

	if err != nil {
		return "", internalError("Login failed", err)
	}

	return token, nil
}

func (s *AuthService) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("taskflow-placeholder"), s.hashCost)
	})
	return s.dummyHash
}
