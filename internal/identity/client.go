// Package identity verifies bearer tokens against an external auth provider
// (a Supabase-compatible endpoint). The backend never mints or validates
// tokens itself: it forwards the caller's token to GET {base}/auth/v1/user
// and accepts the provider's answer.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrUnauthorized is returned when the provider rejects the token (401/403)
// or the token is blank.
var ErrUnauthorized = errors.New("identity: token rejected")

// User is the verified caller identity.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Verifier resolves a bearer token to a user. Implemented by Client; the
// HTTP layer depends on the interface so tests can substitute a fake.
type Verifier interface {
	Verify(ctx context.Context, token string) (*User, error)
}

// Client calls the auth provider over HTTP.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient substitutes the underlying HTTP client (tests, custom
// transports).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpc = h
		}
	}
}

// NewClient builds a Client for the given provider base URL (scheme + host,
// no trailing slash required) and project API key.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Verify resolves token to a user. A blank token short-circuits to
// ErrUnauthorized without a network call. Provider 401/403 map to
// ErrUnauthorized; other failures (network, 5xx, malformed body) are
// transport errors the caller may treat as "provider unavailable".
func (c *Client) Verify(ctx context.Context, token string) (*User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrUnauthorized
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		io.Copy(io.Discard, resp.Body)
		return nil, ErrUnauthorized
	default:
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("identity: provider status %d", resp.StatusCode)
	}

	var u User
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&u); err != nil {
		return nil, fmt.Errorf("identity: decode user: %w", err)
	}
	if u.ID == "" {
		return nil, errors.New("identity: provider returned user without id")
	}
	return &u, nil
}
