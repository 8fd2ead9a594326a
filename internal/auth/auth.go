// Package auth gates the admin area with bearer tokens stored in Redis.
package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const tokenPrefix = "auth:session:"

// ErrInvalidCredentials is returned for a wrong admin password.
var ErrInvalidCredentials = fmt.Errorf("invalid credentials")

// Manager issues and validates admin session tokens.
type Manager struct {
	rdb      redis.Cmdable
	password string
	ttl      time.Duration
}

func NewManager(rdb redis.Cmdable, password string, ttl time.Duration) *Manager {
	return &Manager{rdb: rdb, password: password, ttl: ttl}
}

// Login checks the admin password and issues a session token.
func (m *Manager) Login(ctx context.Context, password string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(password), []byte(m.password)) != 1 {
		return "", ErrInvalidCredentials
	}

	token := uuid.NewString()
	if err := m.rdb.Set(ctx, tokenPrefix+token, "1", m.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return token, nil
}

// Validate reports whether the token names a live session.
func (m *Manager) Validate(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	n, err := m.rdb.Exists(ctx, tokenPrefix+token).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check session: %w", err)
	}
	return n == 1, nil
}

// SignOut invalidates the token. Signing out an unknown token is a no-op.
func (m *Manager) SignOut(ctx context.Context, token string) error {
	if err := m.rdb.Del(ctx, tokenPrefix+token).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
