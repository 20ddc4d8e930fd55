// Package apiclient is the shared HTTP client for the marketplace backend.
//
// Every request passes through a chain of request interceptors (bearer token,
// request id) before it is sent. Every failed response passes through a
// single error handler: a 401 clears the stored credentials and navigates to
// the login path. All errors are logged and returned to the caller. Requests
// are sent once, with no retries.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"campus-market/internal/config"
	"campus-market/internal/storage"

	"github.com/rs/zerolog"
)

// RequestInterceptor inspects or modifies an outgoing request. A non-nil
// error aborts the request and is returned to the caller as is.
type RequestInterceptor func(req *http.Request) error

// Client sends JSON requests to the marketplace backend.
type Client struct {
	baseURL      string
	loginPath    string
	httpClient   *http.Client
	store        storage.Store
	navigator    Navigator
	interceptors []RequestInterceptor
	logger       zerolog.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRequestInterceptor appends an interceptor after the default ones.
func WithRequestInterceptor(i RequestInterceptor) Option {
	return func(c *Client) {
		c.interceptors = append(c.interceptors, i)
	}
}

// New creates a client for the backend at cfg.BaseURL. A blank base URL
// resolves to config.DefaultBaseURL. nav receives the login redirect after a
// 401 unless the request context carries its own navigator (see
// WithNavigator); it may be nil when every caller supplies one.
func New(cfg config.APIConfig, store storage.Store, nav Navigator, logger zerolog.Logger, opts ...Option) *Client {
	loginPath := cfg.LoginPath
	if loginPath == "" {
		loginPath = "/login"
	}

	c := &Client{
		baseURL:    config.ResolveBaseURL(cfg.BaseURL),
		loginPath:  loginPath,
		httpClient: &http.Client{},
		store:      store,
		navigator:  nav,
		interceptors: []RequestInterceptor{
			BearerToken(store),
			RequestID(),
		},
		logger: logger.With().Str("component", "api-client").Logger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.logger.Info().Str("base_url", c.baseURL).Msg("API client initialised")

	return c
}

// BaseURL returns the resolved backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get sends a GET request and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Post sends body as JSON and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

// Put sends body as JSON and decodes the response into out.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

// Delete sends a DELETE request, discarding any response body.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}

// Do sends a single request. body is JSON-encoded when non-nil; out is
// filled from the response when non-nil and the response has a body.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body for %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request for %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	for _, intercept := range c.interceptors {
		if err := intercept(req); err != nil {
			return err
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleError(ctx, &ResponseError{Method: method, Path: path, Err: err})
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.handleError(ctx, &ResponseError{
			StatusCode: resp.StatusCode,
			Method:     method,
			Path:       path,
			Err:        fmt.Errorf("failed to read response body: %w", err),
		})
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return c.handleError(ctx, &ResponseError{
			StatusCode: resp.StatusCode,
			Method:     method,
			Path:       path,
			Body:       data,
		})
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		c.logger.Error().Err(err).
			Str("method", method).
			Str("path", path).
			Msg("failed to decode API response")
		return fmt.Errorf("failed to decode response from %s %s: %w", method, path, err)
	}

	return nil
}

// handleError applies the auth-failure policy and logs the error before
// returning it unchanged.
func (c *Client) handleError(ctx context.Context, rerr *ResponseError) error {
	if rerr.StatusCode == http.StatusUnauthorized {
		// The caller's context may already be cancelled; credentials are
		// cleared regardless.
		if err := storage.ClearCredentials(context.WithoutCancel(ctx), c.store); err != nil {
			c.logger.Error().Err(err).Msg("failed to clear stored credentials")
		}
		nav := NavigatorFrom(ctx)
		if nav == nil {
			nav = c.navigator
		}
		if nav != nil {
			nav.Navigate(c.loginPath)
		}
		c.logger.Warn().
			Str("method", rerr.Method).
			Str("path", rerr.Path).
			Str("redirect", c.loginPath).
			Msg("authentication failed, credentials cleared")
	}

	event := c.logger.Error().
		Str("method", rerr.Method).
		Str("path", rerr.Path).
		Int("status", rerr.StatusCode)
	switch {
	case len(rerr.Body) > 0 && json.Valid(rerr.Body):
		event = event.RawJSON("payload", rerr.Body)
	case len(rerr.Body) > 0:
		event = event.Str("payload", string(rerr.Body))
	default:
		event = event.Err(rerr.Err)
	}
	event.Msg("API error")

	return rerr
}
