// Package auth provides token managers for authenticating dispatched
// requests against the MDM API.
package auth

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrStaticTokenCannotRefresh = errors.New("static token cannot be refreshed")

// TokenManager supplies the bearer token attached to every dispatched
// request.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) error
	SetToken(token string, expiresAt time.Time)
}

// StaticTokenManager holds a fixed API token, as issued by the server's
// token endpoint and stored in the CLI config.
type StaticTokenManager struct {
	mu    sync.RWMutex
	token string
}

// NewStaticTokenManager creates a token manager around a fixed token.
func NewStaticTokenManager(token string) *StaticTokenManager {
	return &StaticTokenManager{token: token}
}

// GetToken returns the stored token.
func (m *StaticTokenManager) GetToken(ctx context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.token, nil
}

// RefreshToken always fails; a static token has no refresh flow.
func (m *StaticTokenManager) RefreshToken(ctx context.Context) error {
	return ErrStaticTokenCannotRefresh
}

// SetToken replaces the stored token. The expiry is ignored.
func (m *StaticTokenManager) SetToken(token string, _ time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = token
}
