// Portfolio Sync - Go Client and Sync Daemon for the Portfolio CMS
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/portfolio-sync

package client

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/portfolio-sync/internal/models"
)

// TokenStorage is the durable persistence capability the TokenStore depends
// on. It is constructor-injected so tests can swap in the in-memory
// implementation.
type TokenStorage interface {
	// Load returns the stored pair, or (nil, nil) when absent.
	Load() (*models.AuthTokens, error)
	Save(tokens *models.AuthTokens) error
	Clear() error
}

// MemoryTokenStorage keeps the pair in memory only. Used in tests and when
// no durable path is configured.
type MemoryTokenStorage struct {
	mu     sync.Mutex
	tokens *models.AuthTokens
}

// NewMemoryTokenStorage creates an empty in-memory token storage.
func NewMemoryTokenStorage() *MemoryTokenStorage {
	return &MemoryTokenStorage{}
}

// Load returns the stored pair, or nil when absent.
func (s *MemoryTokenStorage) Load() (*models.AuthTokens, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tokens == nil {
		return nil, nil
	}
	copied := *s.tokens
	return &copied, nil
}

// Save stores a copy of the pair.
func (s *MemoryTokenStorage) Save(tokens *models.AuthTokens) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *tokens
	s.tokens = &copied
	return nil
}

// Clear removes the stored pair.
func (s *MemoryTokenStorage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = nil
	return nil
}

// TokenStore is the single source of truth for the current credential pair.
// The pair is replaced wholesale on every Set and removed wholesale on Clear;
// a partial pair never survives. All access is mutex-guarded because the
// request executor and the poller run on separate goroutines.
type TokenStore struct {
	mu      sync.RWMutex
	storage TokenStorage
	access  string
	refresh string
}

// NewTokenStore creates a store hydrated from the given storage. A corrupt or
// partial stored pair is treated as absent and cleared rather than kept.
func NewTokenStore(storage TokenStorage) *TokenStore {
	s := &TokenStore{storage: storage}

	tokens, err := storage.Load()
	if err != nil || tokens == nil || tokens.Access == "" || tokens.Refresh == "" {
		if tokens != nil || err != nil {
			_ = storage.Clear()
		}
		return s
	}

	s.access = tokens.Access
	s.refresh = tokens.Refresh
	return s
}

// Set stores both tokens in memory and in durable storage, overwriting any
// prior pair entirely.
func (s *TokenStore) Set(tokens models.AuthTokens) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.access = tokens.Access
	s.refresh = tokens.Refresh

	if err := s.storage.Save(&tokens); err != nil {
		return fmt.Errorf("failed to persist tokens: %w", err)
	}
	return nil
}

// Clear removes both tokens from memory and durable storage. Idempotent:
// safe to call when no tokens exist.
func (s *TokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.access = ""
	s.refresh = ""

	if err := s.storage.Clear(); err != nil {
		return fmt.Errorf("failed to clear stored tokens: %w", err)
	}
	return nil
}

// AccessToken returns the current access token, or empty when absent.
func (s *TokenStore) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

// RefreshToken returns the current refresh token, or empty when absent.
func (s *TokenStore) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}

// HasRefreshToken reports whether a refresh token is available.
func (s *TokenStore) HasRefreshToken() bool {
	return s.RefreshToken() != ""
}

// AccessTokenExpiry returns the exp claim of the current access token.
// The token is parsed without signature verification; the value is for
// observability only, never for an authorization decision.
func (s *TokenStore) AccessTokenExpiry() (time.Time, bool) {
	token := s.AccessToken()
	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
