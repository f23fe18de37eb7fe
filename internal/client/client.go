// Portfolio Sync - Go Client and Sync Daemon for the Portfolio CMS
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/portfolio-sync

/*
client.go - Portfolio CMS REST API client core

This file implements the request executor: URL building, bearer token
attachment, JSON serialization, the 401 refresh-and-retry-once flow, and the
error taxonomy (NetworkError / APIError).
*/

package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/portfolio-sync/internal/config"
	"github.com/tomtom215/portfolio-sync/internal/logging"
	"github.com/tomtom215/portfolio-sync/internal/metrics"
	"github.com/tomtom215/portfolio-sync/internal/models"
)

// Client provides typed access to the Portfolio CMS REST API.
type Client struct {
	baseURL    string // backend root, no trailing slash
	apiURL     string // baseURL + /api/<version>
	httpClient *http.Client
	tokens     *TokenStore
	limiter    *rate.Limiter
	logger     zerolog.Logger
	validate   *validator.Validate
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Tests use this to
// inject transports; production code normally keeps the default.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRateLimit caps outbound requests at rps per second. Zero or negative
// disables limiting.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// WithLogger replaces the component logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a CMS API client.
//
// Parameters:
//   - cfg: base URL, API version, and request timeout
//   - tokens: the credential store; may hold no tokens for anonymous access
func NewClient(cfg config.APIConfig, tokens *TokenStore, opts ...Option) *Client {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")

	c := &Client{
		baseURL: baseURL,
		apiURL:  fmt.Sprintf("%s/api/%s", baseURL, cfg.Version),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		tokens:   tokens,
		logger:   logging.With().Str("component", "api-client").Logger(),
		validate: validator.New(),
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string { return c.baseURL }

// Tokens returns the credential store the client mutates on login, refresh,
// and logout.
func (c *Client) Tokens() *TokenStore { return c.tokens }

// rawResponse carries the transport status and undecoded body of a request.
type rawResponse struct {
	status int
	isJSON bool
	body   []byte
}

// do performs one logical request: build URL, attach bearer token, execute,
// and on a 401 with a refresh token available, refresh once and retry once.
// The retry's result is final either way. resource labels the metrics only.
func (c *Client) do(ctx context.Context, resource, method, endpoint string, body any) (*rawResponse, error) {
	start := time.Now()
	defer func() {
		metrics.APIRequestDuration.WithLabelValues(resource, method).Observe(time.Since(start).Seconds())
	}()

	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	resp, err := c.execute(ctx, method, endpoint, payload, c.tokens.AccessToken())
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(resource, method, "0").Inc()
		return nil, err
	}

	if resp.status == http.StatusUnauthorized && c.tokens.HasRefreshToken() {
		if c.refreshAccessToken(ctx) {
			retry, err := c.execute(ctx, method, endpoint, payload, c.tokens.AccessToken())
			if err != nil {
				metrics.APIRequestsTotal.WithLabelValues(resource, method, "0").Inc()
				return nil, err
			}
			resp = retry
		}
		// Refresh failure cleared the tokens; the original 401 falls through.
	}

	metrics.APIRequestsTotal.WithLabelValues(resource, method, fmt.Sprintf("%d", resp.status)).Inc()

	if resp.status < 200 || resp.status >= 300 {
		return nil, apiErrorFromResponse(resp)
	}
	return resp, nil
}

// execute issues a single HTTP request with the given access token.
func (c *Client) execute(ctx context.Context, method, endpoint string, payload []byte, accessToken string) (*rawResponse, error) {
	fullURL := endpoint
	if !strings.HasPrefix(endpoint, "http") {
		fullURL = c.apiURL + endpoint
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &NetworkError{Message: "rate limiter wait canceled", Err: err}
		}
	}

	var bodyReader io.Reader = http.NoBody
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Message: err.Error(), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Message: fmt.Sprintf("failed to read response body: %v", err), Err: err}
	}

	return &rawResponse{
		status: resp.StatusCode,
		isJSON: strings.Contains(resp.Header.Get("Content-Type"), "application/json"),
		body:   raw,
	}, nil
}

// refreshAccessToken exchanges the refresh token for a new credential pair.
// The refresh endpoint lives outside the versioned prefix and is called
// without the expired access token. Never returns an error: a false result
// means the tokens were cleared and the caller's original 401 stands.
func (c *Client) refreshAccessToken(ctx context.Context) bool {
	refreshURL := c.baseURL + "/api/token/refresh/"

	payload, err := json.Marshal(models.RefreshRequest{Refresh: c.tokens.RefreshToken()})
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("failure").Inc()
		_ = c.tokens.Clear()
		return false
	}

	resp, err := c.execute(ctx, http.MethodPost, refreshURL, payload, "")
	if err != nil || resp.status != http.StatusOK {
		c.logger.Warn().Err(err).Msg("Token refresh failed")
		metrics.TokenRefreshesTotal.WithLabelValues("failure").Inc()
		_ = c.tokens.Clear()
		return false
	}

	var tokens models.AuthTokens
	if err := json.Unmarshal(resp.body, &tokens); err != nil || tokens.Access == "" {
		c.logger.Warn().Err(err).Msg("Token refresh returned an unusable pair")
		metrics.TokenRefreshesTotal.WithLabelValues("failure").Inc()
		_ = c.tokens.Clear()
		return false
	}

	// Some backends rotate only the access token on refresh.
	if tokens.Refresh == "" {
		tokens.Refresh = c.tokens.RefreshToken()
	}

	if err := c.tokens.Set(tokens); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to persist refreshed tokens")
	}
	metrics.TokenRefreshesTotal.WithLabelValues("success").Inc()
	return true
}

// apiErrorFromResponse builds an APIError from a non-2xx response, decoding
// the error/detail/code fields when the body is JSON and falling back to the
// HTTP status text otherwise.
func apiErrorFromResponse(resp *rawResponse) *APIError {
	apiErr := &APIError{
		StatusCode: resp.status,
		Message:    http.StatusText(resp.status),
	}

	if !resp.isJSON {
		return apiErr
	}

	var body struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
		Code   string `json:"code"`
	}
	if err := json.Unmarshal(resp.body, &body); err != nil {
		return apiErr
	}

	if body.Error != "" {
		apiErr.Message = body.Error
	} else if body.Detail != "" {
		apiErr.Message = body.Detail
	}
	apiErr.Detail = body.Detail
	apiErr.Code = body.Code
	return apiErr
}

// get executes a GET request and normalizes the response.
func get[T any](ctx context.Context, c *Client, resource, endpoint string) (*Envelope[T], error) {
	resp, err := c.do(ctx, resource, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	return decodeEnvelope[T](resp.status, resp.isJSON, resp.body)
}

// post executes a POST request and normalizes the response.
func post[T any](ctx context.Context, c *Client, resource, endpoint string, body any) (*Envelope[T], error) {
	resp, err := c.do(ctx, resource, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, err
	}
	return decodeEnvelope[T](resp.status, resp.isJSON, resp.body)
}

// put executes a PUT request and normalizes the response.
func put[T any](ctx context.Context, c *Client, resource, endpoint string, body any) (*Envelope[T], error) {
	resp, err := c.do(ctx, resource, http.MethodPut, endpoint, body)
	if err != nil {
		return nil, err
	}
	return decodeEnvelope[T](resp.status, resp.isJSON, resp.body)
}
