// Portfolio Sync - Go Client and Sync Daemon for the Portfolio CMS
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/portfolio-sync

// Package config defines the daemon configuration and its Koanf v2 loader.
//
// Precedence (highest wins): environment variables > YAML config file >
// built-in defaults.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config is the root configuration for the daemon and the API client.
type Config struct {
	API     APIConfig     `koanf:"api"`
	Auth    AuthConfig    `koanf:"auth"`
	Poll    PollConfig    `koanf:"poll"`
	Server  ServerConfig  `koanf:"server"`
	Logging LoggingConfig `koanf:"logging"`
}

// APIConfig configures the Portfolio CMS API client.
type APIConfig struct {
	// BaseURL is the CMS backend root, without the versioned prefix.
	BaseURL string `koanf:"base_url" validate:"required,url"`

	// Version is the API version segment appended as /api/<version>.
	Version string `koanf:"version" validate:"required"`

	// Timeout applies to every HTTP request.
	Timeout time.Duration `koanf:"timeout"`

	// RateLimit is the maximum requests per second issued to the backend.
	// Zero disables client-side rate limiting.
	RateLimit float64 `koanf:"rate_limit"`
}

// AuthConfig configures credentials and token persistence.
type AuthConfig struct {
	// Username/Password are optional; when both are set the daemon logs in
	// at startup so admin endpoints become reachable.
	Username string `koanf:"username"`
	Password string `koanf:"password"`

	// TokenStorePath is the BadgerDB directory for durable token storage.
	// Empty means tokens are held in memory only.
	TokenStorePath string `koanf:"token_store_path"`
}

// PollConfig configures the polling synchronizer.
type PollConfig struct {
	// Interval is the normal spacing between sync-status polls.
	Interval time.Duration `koanf:"interval"`

	// HealthInterval is the spacing between backend health probes.
	HealthInterval time.Duration `koanf:"health_interval"`

	// CircuitBreaker enables the gobreaker wrapper around the poll source.
	CircuitBreaker bool `koanf:"circuit_breaker"`
}

// ServerConfig configures the local status HTTP surface.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout time.Duration `koanf:"timeout"`
}

// LoggingConfig configures the zerolog pipeline.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:   "http://localhost:8000",
			Version:   "v1",
			Timeout:   30 * time.Second,
			RateLimit: 0,
		},
		Auth: AuthConfig{
			Username:       "",
			Password:       "",
			TokenStorePath: "",
		},
		Poll: PollConfig{
			Interval:       5 * time.Second,
			HealthInterval: 30 * time.Second,
			CircuitBreaker: true,
		},
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    8085,
			Timeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Validate checks the configuration for consistency. Struct tags cover the
// shape checks; cross-field rules are checked by hand.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout)
	}
	if c.API.RateLimit < 0 {
		return fmt.Errorf("api.rate_limit must not be negative, got %f", c.API.RateLimit)
	}
	if c.Poll.Interval <= 0 {
		return fmt.Errorf("poll.interval must be positive, got %s", c.Poll.Interval)
	}
	if c.Poll.HealthInterval <= 0 {
		return fmt.Errorf("poll.health_interval must be positive, got %s", c.Poll.HealthInterval)
	}
	// Credentials are all-or-nothing: a lone username can never log in and a
	// lone password loses its pairing silently.
	if (c.Auth.Username == "") != (c.Auth.Password == "") {
		return fmt.Errorf("auth.username and auth.password must be set together")
	}

	return nil
}
