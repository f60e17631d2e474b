package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"

	"bankcore/internal/errors"
	"bankcore/internal/model"
)

const tokenBytes = 32 // hex-encoded to 64 characters

// Identity is the snapshot of a user bound to a bearer token at login time.
type Identity struct {
	ID       uint       `json:"id"`
	Username string     `json:"username"`
	Role     model.Role `json:"role"`
}

// TokenRegistryInterface defines the interface for bearer token operations.
type TokenRegistryInterface interface {
	Issue(user *model.User) (string, error)
	Resolve(authorizationHeader string) (*Identity, error)
}

// TokenRegistry maps opaque bearer tokens to identity snapshots in process
// memory. Tokens never expire and are never revoked; a restart invalidates
// them all. That lifetime is intentional, not an oversight.
type TokenRegistry struct {
	mu     sync.RWMutex
	tokens map[string]Identity
}

// Ensure TokenRegistry implements TokenRegistryInterface
var _ TokenRegistryInterface = (*TokenRegistry)(nil)

// NewTokenRegistry creates an empty token registry.
func NewTokenRegistry() *TokenRegistry {
	return &TokenRegistry{tokens: make(map[string]Identity)}
}

// Issue generates a cryptographically random token for the user and stores
// the mapping. Collisions are left to the randomness source.
func (r *TokenRegistry) Issue(user *model.User) (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	token := hex.EncodeToString(buf)

	r.mu.Lock()
	r.tokens[token] = Identity{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
	}
	r.mu.Unlock()

	return token, nil
}

// Resolve looks up the identity behind an "Authorization: Bearer <token>"
// header value. A missing, malformed or unknown token is unauthorized.
func (r *TokenRegistry) Resolve(authorizationHeader string) (*Identity, error) {
	token, ok := strings.CutPrefix(authorizationHeader, "Bearer ")
	if !ok || token == "" {
		return nil, errors.ErrUnauthorized
	}

	r.mu.RLock()
	identity, found := r.tokens[token]
	r.mu.RUnlock()

	if !found {
		return nil, errors.ErrUnauthorized
	}
	return &identity, nil
}
