// Portfolio Sync - Go Client and Sync Daemon for the Portfolio CMS
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/portfolio-sync

package client

import (
	"context"
	"fmt"

	"github.com/tomtom215/portfolio-sync/internal/models"
)

// Login authenticates with the backend, stores the returned credential pair,
// and immediately fetches the current user profile. If the profile fetch
// fails the login fails as a whole and the stored tokens are cleared; a
// "logged in without profile" state is never surfaced.
func (c *Client) Login(ctx context.Context, creds models.LoginCredentials) (*models.LoginResult, error) {
	env, err := post[models.AuthTokens](ctx, c, "auth", "/auth/login/", creds)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	if env.Data.Access == "" || env.Data.Refresh == "" {
		return nil, fmt.Errorf("login failed: backend returned an incomplete token pair")
	}

	if err := c.tokens.Set(env.Data); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	user, err := c.CurrentUser(ctx)
	if err != nil {
		_ = c.tokens.Clear()
		return nil, fmt.Errorf("login succeeded but profile fetch failed: %w", err)
	}

	return &models.LoginResult{User: *user, Tokens: env.Data}, nil
}

// Register creates a new account. The payload is validated client-side
// before the request is issued.
func (c *Client) Register(ctx context.Context, data models.RegisterData) (*models.User, error) {
	if err := c.validate.Struct(data); err != nil {
		return nil, fmt.Errorf("invalid registration data: %w", err)
	}

	env, err := post[models.User](ctx, c, "auth", "/auth/register/", data)
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}
	return &env.Data, nil
}

// Logout invalidates the refresh token server-side on a best-effort basis
// and always clears the local pair. A failing network call never blocks the
// local logout.
func (c *Client) Logout(ctx context.Context) error {
	if refresh := c.tokens.RefreshToken(); refresh != "" {
		if _, err := post[struct{}](ctx, c, "auth", "/auth/logout/", models.LogoutRequest{Refresh: refresh}); err != nil {
			c.logger.Warn().Err(err).Msg("Server-side logout failed, clearing local tokens anyway")
		}
	}
	return c.tokens.Clear()
}

// CurrentUser fetches the authenticated user's profile.
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	env, err := get[models.User](ctx, c, "users", "/users/profile/")
	if err != nil {
		return nil, fmt.Errorf("profile fetch failed: %w", err)
	}
	return &env.Data, nil
}
