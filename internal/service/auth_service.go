package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bankcore/internal/auth"
	"bankcore/internal/cache"
	"bankcore/internal/errors"
	"bankcore/internal/model"
	"bankcore/internal/repository"
)

// bcryptCost is fixed; changing it would invalidate stored hashes only on
// rehash, which this system never does.
const bcryptCost = 8

// AuthService handles signup and login.
type AuthService interface {
	Register(ctx context.Context, username, password string, role model.Role) (*model.User, error)
	Login(ctx context.Context, username, password string) (token string, user *model.User, err error)
}

type authService struct {
	userRepo repository.UserRepository
	registry auth.TokenRegistryInterface
	cache    *cache.Client
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, registry auth.TokenRegistryInterface, cache *cache.Client) AuthService {
	return &authService{
		userRepo: userRepo,
		registry: registry,
		cache:    cache,
	}
}

// Register creates a new user with a bcrypt-hashed password. The username
// must be unique; a race between the existence check and the insert is caught
// by the unique index and mapped to the same error.
func (s *authService) Register(ctx context.Context, username, password string, role model.Role) (*model.User, error) {
	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil && existing != nil {
		return nil, errors.ErrDuplicateUsername
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check username: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: string(hashed),
		Role:         role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if isDuplicateKey(err) {
			return nil, errors.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	// New customers change the /fetch listing
	_ = s.cache.Delete(ctx, customerListCacheKey)

	return user, nil
}

// Login verifies credentials and issues a bearer token. An unknown username
// and a wrong password are distinct outcomes: callers map the former to 404
// and the latter to 401.
func (s *authService) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil, errors.ErrUserNotFound
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, errors.ErrInvalidCredentials
	}

	token, err := s.registry.Issue(user)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	return token, user, nil
}

// isDuplicateKey detects unique-constraint violations across the GORM error
// translation boundary and the raw MySQL error.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if err == gorm.ErrDuplicatedKey {
		return true
	}
	return strings.Contains(err.Error(), "Duplicate entry")
}
