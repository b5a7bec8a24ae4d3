package services

import (
	"context"

	"github.com/taskflow-dev/taskflow/internal/auth"
	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/store"
)

type UserService struct {
	store store.Store
}

func NewUserService(s store.Store) *UserService {
	return &UserService{store: s}
}

func (s *UserService) List(ctx context.Context, caller auth.Identity) ([]models.UserSummary, error) {
	if err := require(CanListUsers(caller)); err != nil {
		return nil, err
	}

	users, err := s.store.ListUsers(ctx)

	if err != nil {
		return nil, internalError("Failed to fetch users", err)
	}

	return users, nil
}
