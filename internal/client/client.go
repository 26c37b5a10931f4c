// ABOUTME: HTTP client for the Go-Biz lookup API
// ABOUTME: Centralizes base URL resolution, bearer auth, and error decoding

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Sentinel errors callers branch on.
var (
	// ErrUnauthorized is returned for HTTP 401; the caller decides whether
	// to clear the session. The client never mutates session state itself.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInsufficientCredits is returned for HTTP 402 so the search screen
	// can show a recharge call-to-action instead of a generic failure.
	ErrInsufficientCredits = errors.New("insufficient credits")
)

// Credentials supplies the token and optional base-URL override for each
// request. The session store implements this for the user session; a second
// store instance implements it for the admin console.
type Credentials interface {
	Token() string
	BaseURL() string
}

// anonymous is used when no credential source is configured.
type anonymous struct{}

func (anonymous) Token() string   { return "" }
func (anonymous) BaseURL() string { return "" }

// Client is the API client for the Go-Biz backend
type Client struct {
	baseURL    string
	creds      Credentials
	httpClient *http.Client
}

// Option mutates the Client during New.
type Option func(*Client)

// WithHTTPClient injects a custom *http.Client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithCredentials binds a token/base-URL source to the client.
func WithCredentials(creds Credentials) Option {
	return func(c *Client) { c.creds = creds }
}

// New creates a new API client with the given default base URL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		creds:   anonymous{},
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured default host (before any session
// override).
func (c *Client) BaseURL() string { return c.baseURL }

// ErrorResponse represents an API error payload
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// resolveURL applies the session's manual base-URL override, when present,
// in place of the configured default host.
func (c *Client) resolveURL(path string) string {
	base := c.baseURL
	if override := c.creds.BaseURL(); override != "" {
		base = override
	}
	return base + path
}

// newRequest builds a request with JSON headers and bearer auth attached.
func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolveURL(path), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.creds.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// doJSON executes the request and decodes a JSON response into out.
// out may be nil when the caller only cares about success.
func (c *Client) doJSON(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(req.Context(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.handleErrorResponse(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// getJSON issues a GET and decodes the response.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return c.doJSON(req, out)
}

// postJSON issues a POST with a JSON body and decodes the response.
func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	req, err := c.newRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	return c.doJSON(req, out)
}

// deleteJSON issues a DELETE and decodes the response.
func (c *Client) deleteJSON(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	return c.doJSON(req, out)
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.resolveURL(""), err)
}

// handleErrorResponse parses API error responses. 401 and 402 map to
// sentinels wrapped around the backend message so callers can branch with
// errors.Is while still showing the server's wording.
func (c *Client) handleErrorResponse(resp *http.Response) error {
	var errResp ErrorResponse
	msg := ""
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
		msg = errResp.Error
		if msg == "" {
			msg = errResp.Message
		}
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if msg != "" {
			return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
		}
		return ErrUnauthorized
	case http.StatusPaymentRequired:
		if msg != "" {
			return fmt.Errorf("%w: %s", ErrInsufficientCredits, msg)
		}
		return ErrInsufficientCredits
	}

	if msg != "" {
		return fmt.Errorf("backend error: %s", msg)
	}
	return fmt.Errorf("backend returned status %d", resp.StatusCode)
}
