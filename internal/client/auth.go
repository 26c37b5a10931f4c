// ABOUTME: Account and profile endpoints of the Go-Biz API
// ABOUTME: Registration, login, profile fetch, API key rotation, public stats

package client

import (
	"context"
)

// User is the cached profile returned by the backend. The backend owns the
// shape; only fields the client renders are decoded.
type User struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Role        string  `json:"role"`
	Credits     float64 `json:"credits"`
	SearchCount int     `json:"search_count"`
	APIKey      string  `json:"api_key"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
}

// RegisterRequest is the payload for account creation
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the session token and an optional message
type LoginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message,omitempty"`
}

// PublicStats is the landing page counter payload
type PublicStats struct {
	TotalSearches int `json:"total_searches"`
	TotalUsers    int `json:"total_users"`
}

// Register calls POST /api/auth/register
func (c *Client) Register(ctx context.Context, req *RegisterRequest) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.postJSON(ctx, "/api/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login calls POST /api/auth/login
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var out LoginResponse
	if err := c.postJSON(ctx, "/api/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Profile calls GET /api/users/me
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var out User
	if err := c.getJSON(ctx, "/api/users/me", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateAPIKey calls POST /api/users/me/api-key and returns the new key
func (c *Client) GenerateAPIKey(ctx context.Context) (string, error) {
	var out struct {
		APIKey string `json:"api_key"`
	}
	if err := c.postJSON(ctx, "/api/users/me/api-key", nil, &out); err != nil {
		return "", err
	}
	return out.APIKey, nil
}

// RequestPasswordReset calls POST /api/auth/password-reset. Resolution is
// manual: an admin approves the request from the admin console.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	body := map[string]string{"email": email}
	var out struct {
		Message string `json:"message"`
	}
	if err := c.postJSON(ctx, "/api/auth/password-reset", body, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// Stats calls GET /api/stats. The landing page treats failures as soft and
// renders a placeholder instead of an error.
func (c *Client) Stats(ctx context.Context) (*PublicStats, error) {
	var out PublicStats
	if err := c.getJSON(ctx, "/api/stats", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
