package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bankcore/internal/cache"
	"bankcore/internal/model"
	"bankcore/internal/repository"
)

const (
	customerListCacheKey = "users:customers"
	customerListCacheTTL = 30 * time.Second
)

// UserService handles user listing operations.
type UserService interface {
	ListCustomers(ctx context.Context) ([]model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	cache    *cache.Client
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{
		userRepo: userRepo,
		cache:    cache,
	}
}

// ListCustomers returns all users with the customer role. The listing is
// cached briefly; signup invalidates the key.
func (s *userService) ListCustomers(ctx context.Context) ([]model.User, error) {
	if data, _ := s.cache.Get(ctx, customerListCacheKey); data != nil {
		var cached []model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	users, err := s.userRepo.ListByRole(ctx, model.RoleCustomer)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	if users == nil {
		users = []model.User{}
	}

	if payload, err := json.Marshal(users); err == nil {
		_ = s.cache.Set(ctx, customerListCacheKey, payload, customerListCacheTTL)
	}

	return users, nil
}
