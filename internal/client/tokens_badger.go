// Portfolio Sync - Go Client and Sync Daemon for the Portfolio CMS
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/portfolio-sync

package client

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/portfolio-sync/internal/models"
)

// Fixed keys for the stored credential pair.
const (
	accessTokenKey  = "token:access"
	refreshTokenKey = "token:refresh"
)

// BadgerTokenStorage implements TokenStorage using BadgerDB, so the
// credential pair survives daemon restarts.
type BadgerTokenStorage struct {
	db *badger.DB
}

// NewBadgerTokenStorage opens (or creates) a BadgerDB at path and returns a
// durable token storage backed by it.
func NewBadgerTokenStorage(path string) (*BadgerTokenStorage, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open token store at %s: %w", path, err)
	}
	return &BadgerTokenStorage{db: db}, nil
}

// NewBadgerTokenStorageWithDB wraps an already opened BadgerDB.
func NewBadgerTokenStorageWithDB(db *badger.DB) *BadgerTokenStorage {
	return &BadgerTokenStorage{db: db}
}

// Load reads the stored pair. A pair with either key missing is reported as
// absent; the TokenStore clears the leftover half on hydration.
func (s *BadgerTokenStorage) Load() (*models.AuthTokens, error) {
	var access, refresh string

	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		if access, err = readString(txn, accessTokenKey); err != nil {
			return err
		}
		refresh, err = readString(txn, refreshTokenKey)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load tokens: %w", err)
	}

	if access == "" || refresh == "" {
		if access == "" && refresh == "" {
			return nil, nil
		}
		// Partial pair: surface it so the store treats it as corrupt.
		return &models.AuthTokens{Access: access, Refresh: refresh}, nil
	}
	return &models.AuthTokens{Access: access, Refresh: refresh}, nil
}

// Save writes both keys in one transaction.
func (s *BadgerTokenStorage) Save(tokens *models.AuthTokens) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(accessTokenKey), []byte(tokens.Access)); err != nil {
			return fmt.Errorf("set access token: %w", err)
		}
		if err := txn.Set([]byte(refreshTokenKey), []byte(tokens.Refresh)); err != nil {
			return fmt.Errorf("set refresh token: %w", err)
		}
		return nil
	})
}

// Clear deletes both keys. Deleting an absent key is not an error, which
// keeps TokenStore.Clear idempotent.
func (s *BadgerTokenStorage) Clear() error {
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(accessTokenKey)); err != nil {
			return fmt.Errorf("delete access token: %w", err)
		}
		if err := txn.Delete([]byte(refreshTokenKey)); err != nil {
			return fmt.Errorf("delete refresh token: %w", err)
		}
		return nil
	})
}

// Close closes the underlying BadgerDB.
func (s *BadgerTokenStorage) Close() error {
	return s.db.Close()
}

// readString reads a key's value, mapping key-not-found to empty string.
func readString(txn *badger.Txn, key string) (string, error) {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	var value string
	err = item.Value(func(val []byte) error {
		value = string(val)
		return nil
	})
	return value, err
}
