// Portfolio Sync - Go Client and Sync Daemon for the Portfolio CMS
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/portfolio-sync

package models

// User roles recognized by the backend.
const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

// User is the authenticated user's profile.
type User struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Role       string `json:"role"`
	Bio        string `json:"bio,omitempty"`
	AvatarURL  string `json:"avatar_url,omitempty"`
	IsActive   bool   `json:"is_active"`
	DateJoined string `json:"date_joined"`
}

// AuthTokens is the credential pair issued on login and rotated on refresh.
// Either both tokens are present or both are absent; no partial state
// survives a logout.
type AuthTokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// LoginCredentials is the login request body.
type LoginCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterData is the registration request body. Validated client-side
// before the request is issued.
type RegisterData struct {
	Username  string `json:"username" validate:"required,min=3"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
}

// LoginResult bundles the stored tokens with the freshly fetched profile.
type LoginResult struct {
	User   User       `json:"user"`
	Tokens AuthTokens `json:"tokens"`
}

// RefreshRequest is the token refresh request body.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// LogoutRequest is the server-side token invalidation request body.
type LogoutRequest struct {
	Refresh string `json:"refresh"`
}
