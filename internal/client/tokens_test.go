// Portfolio Sync - Go Client and Sync Daemon for the Portfolio CMS
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/portfolio-sync

package client

import (
	"encoding/base64"
	"fmt"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/portfolio-sync/internal/models"
)

// makeUnsignedJWT builds a syntactically valid JWT with the given exp claim.
// The signature is garbage; expiry parsing never verifies it.
func makeUnsignedJWT(t *testing.T, exp time.Time) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload, err := json.Marshal(map[string]any{"exp": exp.Unix(), "user_id": "42"})
	checkNoError(t, err)
	claims := base64.RawURLEncoding.EncodeToString(payload)
	return fmt.Sprintf("%s.%s.%s", header, claims, base64.RawURLEncoding.EncodeToString([]byte("sig")))
}

func TestTokenStoreSetAndGet(t *testing.T) {
	store := NewTokenStore(NewMemoryTokenStorage())

	checkStringEmpty(t, "AccessToken", store.AccessToken())
	checkFalse(t, "HasRefreshToken", store.HasRefreshToken())

	checkNoError(t, store.Set(models.AuthTokens{Access: "acc-1", Refresh: "ref-1"}))
	checkStringEqual(t, "AccessToken", store.AccessToken(), "acc-1")
	checkStringEqual(t, "RefreshToken", store.RefreshToken(), "ref-1")
	checkTrue(t, "HasRefreshToken", store.HasRefreshToken())

	// Set replaces the pair wholesale.
	checkNoError(t, store.Set(models.AuthTokens{Access: "acc-2", Refresh: "ref-2"}))
	checkStringEqual(t, "AccessToken", store.AccessToken(), "acc-2")
	checkStringEqual(t, "RefreshToken", store.RefreshToken(), "ref-2")
}

func TestTokenStoreClearIsIdempotent(t *testing.T) {
	store := NewTokenStore(NewMemoryTokenStorage())
	checkNoError(t, store.Set(models.AuthTokens{Access: "a", Refresh: "r"}))

	checkNoError(t, store.Clear())
	checkStringEmpty(t, "AccessToken", store.AccessToken())
	checkStringEmpty(t, "RefreshToken", store.RefreshToken())

	// Clearing an empty store succeeds.
	checkNoError(t, store.Clear())
}

func TestTokenStoreHydratesFromStorage(t *testing.T) {
	storage := NewMemoryTokenStorage()
	checkNoError(t, storage.Save(&models.AuthTokens{Access: "persisted-a", Refresh: "persisted-r"}))

	store := NewTokenStore(storage)
	checkStringEqual(t, "AccessToken", store.AccessToken(), "persisted-a")
	checkStringEqual(t, "RefreshToken", store.RefreshToken(), "persisted-r")
}

func TestTokenStorePartialPairTreatedAsAbsent(t *testing.T) {
	storage := NewMemoryTokenStorage()
	checkNoError(t, storage.Save(&models.AuthTokens{Access: "only-access"}))

	store := NewTokenStore(storage)
	checkStringEmpty(t, "AccessToken", store.AccessToken())
	checkFalse(t, "HasRefreshToken", store.HasRefreshToken())

	// The corrupt pair was cleared from storage too.
	loaded, err := storage.Load()
	checkNoError(t, err)
	if loaded != nil {
		t.Errorf("storage should be cleared, got %+v", loaded)
	}
}

func TestAccessTokenExpiry(t *testing.T) {
	store := NewTokenStore(NewMemoryTokenStorage())

	_, ok := store.AccessTokenExpiry()
	checkFalse(t, "expiry of empty store", ok)

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	checkNoError(t, store.Set(models.AuthTokens{Access: makeUnsignedJWT(t, exp), Refresh: "r"}))

	got, ok := store.AccessTokenExpiry()
	checkTrue(t, "expiry of valid token", ok)
	if !got.Equal(exp) {
		t.Errorf("expiry: expected %v, got %v", exp, got)
	}
}

func TestAccessTokenExpiryOpaqueToken(t *testing.T) {
	store := NewTokenStore(NewMemoryTokenStorage())
	checkNoError(t, store.Set(models.AuthTokens{Access: "not-a-jwt", Refresh: "r"}))

	_, ok := store.AccessTokenExpiry()
	checkFalse(t, "expiry of opaque token", ok)
}

func TestBadgerTokenStorageRoundTrip(t *testing.T) {
	storage, err := NewBadgerTokenStorage(t.TempDir())
	checkNoError(t, err)
	defer func() { checkNoError(t, storage.Close()) }()

	loaded, err := storage.Load()
	checkNoError(t, err)
	if loaded != nil {
		t.Fatalf("fresh storage should be empty, got %+v", loaded)
	}

	checkNoError(t, storage.Save(&models.AuthTokens{Access: "dA", Refresh: "dR"}))

	loaded, err = storage.Load()
	checkNoError(t, err)
	if loaded == nil {
		t.Fatal("expected a stored pair")
	}
	checkStringEqual(t, "Access", loaded.Access, "dA")
	checkStringEqual(t, "Refresh", loaded.Refresh, "dR")

	checkNoError(t, storage.Clear())
	loaded, err = storage.Load()
	checkNoError(t, err)
	if loaded != nil {
		t.Errorf("cleared storage should be empty, got %+v", loaded)
	}
}
