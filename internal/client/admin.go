// ABOUTME: Admin console endpoints of the Go-Biz API
// ABOUTME: User activation, credit adjustment, deposit approval, reset handling

package client

import (
	"context"
)

// AdminUser is a user row in the admin console listings
type AdminUser struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Role        string  `json:"role"`
	Credits     float64 `json:"credits"`
	SearchCount int     `json:"search_count"`
	Status      string  `json:"status"` // "pending", "active", "disabled"
	CreatedAt   string  `json:"created_at"`
}

// PendingDeposit is a manual deposit awaiting admin review
type PendingDeposit struct {
	ID            string  `json:"id"`
	UserEmail     string  `json:"user_email"`
	Amount        float64 `json:"amount"`
	UTR           string  `json:"utr"`
	ScreenshotURL string  `json:"screenshot_url,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

// PasswordReset is a user-submitted reset request awaiting resolution
type PasswordReset struct {
	ID        string `json:"id"`
	UserEmail string `json:"user_email"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// AdminLogin calls POST /api/admin/login. The returned token belongs in the
// admin session store, never the user one.
func (c *Client) AdminLogin(ctx context.Context, email, password string) (*LoginResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var out LoginResponse
	if err := c.postJSON(ctx, "/api/admin/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUsers calls GET /api/admin/users?status={status}
func (c *Client) ListUsers(ctx context.Context, status string) ([]AdminUser, error) {
	path := "/api/admin/users"
	if status != "" {
		path += "?status=" + status
	}
	var out struct {
		Users []AdminUser `json:"users"`
	}
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

// ActivateUser calls POST /api/admin/users/{id}/activate
func (c *Client) ActivateUser(ctx context.Context, userID string) error {
	return c.postJSON(ctx, "/api/admin/users/"+userID+"/activate", nil, nil)
}

// DeactivateUser calls POST /api/admin/users/{id}/deactivate
func (c *Client) DeactivateUser(ctx context.Context, userID string) error {
	return c.postJSON(ctx, "/api/admin/users/"+userID+"/deactivate", nil, nil)
}

// AdjustCredits calls POST /api/admin/users/{id}/credits. Amount may be
// negative for deductions; a reason is always required.
func (c *Client) AdjustCredits(ctx context.Context, userID string, amount float64, reason string) (*AdminUser, error) {
	body := map[string]any{"amount": amount, "reason": reason}
	var out AdminUser
	if err := c.postJSON(ctx, "/api/admin/users/"+userID+"/credits", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListDeposits calls GET /api/admin/deposits?status={status}
func (c *Client) ListDeposits(ctx context.Context, status string) ([]PendingDeposit, error) {
	path := "/api/admin/deposits"
	if status != "" {
		path += "?status=" + status
	}
	var out struct {
		Deposits []PendingDeposit `json:"deposits"`
	}
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out.Deposits, nil
}

// ApproveDeposit calls POST /api/admin/deposits/{id}/approve
func (c *Client) ApproveDeposit(ctx context.Context, depositID string) error {
	return c.postJSON(ctx, "/api/admin/deposits/"+depositID+"/approve", nil, nil)
}

// RejectDeposit calls POST /api/admin/deposits/{id}/reject
func (c *Client) RejectDeposit(ctx context.Context, depositID string, reason string) error {
	body := map[string]string{"reason": reason}
	return c.postJSON(ctx, "/api/admin/deposits/"+depositID+"/reject", body, nil)
}

// ListPasswordResets calls GET /api/admin/password-resets
func (c *Client) ListPasswordResets(ctx context.Context) ([]PasswordReset, error) {
	var out struct {
		Resets []PasswordReset `json:"resets"`
	}
	if err := c.getJSON(ctx, "/api/admin/password-resets", &out); err != nil {
		return nil, err
	}
	return out.Resets, nil
}

// ResolvePasswordReset calls POST /api/admin/password-resets/{id}/resolve
func (c *Client) ResolvePasswordReset(ctx context.Context, resetID string) error {
	return c.postJSON(ctx, "/api/admin/password-resets/"+resetID+"/resolve", nil, nil)
}

// RejectPasswordReset calls POST /api/admin/password-resets/{id}/reject
func (c *Client) RejectPasswordReset(ctx context.Context, resetID string) error {
	return c.postJSON(ctx, "/api/admin/password-resets/"+resetID+"/reject", nil, nil)
}
