// Package cache adds a Redis read-through layer for the user directory.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/store"
)

const usersCacheKey = "taskflow:users"

// Store wraps a store.Store and serves ListUsers from Redis. Every write that
// can change the directory evicts the cached list.
type Store struct {
	store.Store
	redis *redis.Client
	ttl   time.Duration
}

// NewStore creates a caching wrapper using the provided Redis client and TTL.
func NewStore(base store.Store, client *redis.Client, ttl time.Duration) *Store {
	if base == nil {
		panic("cache.NewStore: base store is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	return &Store{Store: base, redis: client, ttl: ttl}
}

func (s *Store) ListUsers(ctx context.Context) ([]models.UserSummary, error) {
	if users, ok := s.loadUsers(ctx); ok {
		return users, nil
	}

	users, err := s.Store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	s.storeUsers(ctx, users)
	return users, nil
}

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	if err := s.Store.CreateUser(ctx, u); err != nil {
		return err
	}
	s.evict(ctx)
	return nil
}

func (s *Store) UpdateUserByEmail(ctx context.Context, email, newEmail string, role models.Role) error {
	if err := s.Store.UpdateUserByEmail(ctx, email, newEmail, role); err != nil {
		return err
	}
	s.evict(ctx)
	return nil
}

func (s *Store) DeleteUserByEmail(ctx context.Context, email string) error {
	if err := s.Store.DeleteUserByEmail(ctx, email); err != nil {
		return err
	}
	s.evict(ctx)
	return nil
}

// Atomically evicts after a successful unit of work, since writes made through
// the scoped store bypass this wrapper.
func (s *Store) Atomically(ctx context.Context, fn func(store.Store) error) error {
	if err := s.Store.Atomically(ctx, fn); err != nil {
		return err
	}
	s.evict(ctx)
	return nil
}

func (s *Store) loadUsers(ctx context.Context) ([]models.UserSummary, bool) {
	if s.redis == nil || s.ttl == 0 {
		return nil, false
	}

	data, err := s.redis.Get(ctx, usersCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.WithError(err).Warn("users cache read failed")
		}
		return nil, false
	}

	var users []models.UserSummary
	if err := sonic.Unmarshal(data, &users); err != nil {
		log.WithError(err).Warn("users cache entry is corrupt")
		s.evict(ctx)
		return nil, false
	}

	return users, true
}

func (s *Store) storeUsers(ctx context.Context, users []models.UserSummary) {
	if s.redis == nil || s.ttl == 0 {
		return
	}

	data, err := sonic.Marshal(users)
	if err != nil {
		log.WithError(err).Warn("users cache encode failed")
		return
	}

	if err := s.redis.Set(ctx, usersCacheKey, data, s.ttl).Err(); err != nil {
		log.WithError(err).Warn("users cache write failed")
	}
}

func (s *Store) evict(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, usersCacheKey).Err(); err != nil {
		log.WithError(err).Warn("users cache eviction failed")
	}
}
