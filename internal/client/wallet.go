// ABOUTME: Wallet and payment endpoints of the Go-Biz API
// ABOUTME: Manual UTR deposits, payment history, gateway redirect flow

package client

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Payment is one wallet transaction as recorded by the backend
type Payment struct {
	ID        string  `json:"id"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method"`
	Reference string  `json:"reference,omitempty"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"created_at"`
}

// DepositRequest is a manual payment submitted for admin approval
type DepositRequest struct {
	Amount        float64 `json:"amount"`
	UTR           string  `json:"utr"`
	ScreenshotURL string  `json:"screenshot_url,omitempty"`
}

// DepositResponse acknowledges a submitted deposit
type DepositResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// GatewayOrder is the redirect handle returned by payment initiation
type GatewayOrder struct {
	OrderID     string `json:"order_id"`
	RedirectURL string `json:"redirect_url"`
}

// GatewayStatus is the verification outcome for a gateway order
type GatewayStatus struct {
	OrderID    string  `json:"order_id"`
	Status     string  `json:"status"`
	Amount     float64 `json:"amount"`
	NewBalance float64 `json:"new_balance"`
	Message    string  `json:"message,omitempty"`
}

// SubmitDeposit calls POST /api/payments/deposit. Each submission carries a
// fresh X-Request-Id so the backend can drop accidental resubmits.
func (c *Client) SubmitDeposit(ctx context.Context, dep *DepositRequest) (*DepositResponse, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/payments/deposit", dep)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	var out DepositResponse
	if err := c.doJSON(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PaymentHistory calls GET /api/payments
func (c *Client) PaymentHistory(ctx context.Context) ([]Payment, error) {
	var out struct {
		Payments []Payment `json:"payments"`
	}
	if err := c.getJSON(ctx, "/api/payments", &out); err != nil {
		return nil, err
	}
	return out.Payments, nil
}

// InitiatePayment calls POST /api/payments/gateway/initiate and returns the
// redirect handle the user opens in a browser.
func (c *Client) InitiatePayment(ctx context.Context, amount float64) (*GatewayOrder, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/payments/gateway/initiate", map[string]float64{"amount": amount})
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	var out GatewayOrder
	if err := c.doJSON(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyPayment calls GET /api/payments/gateway/{orderID}. Verification is
// performed by the backend against the gateway; the client only renders the
// returned status and balance.
func (c *Client) VerifyPayment(ctx context.Context, orderID string) (*GatewayStatus, error) {
	var out GatewayStatus
	if err := c.getJSON(ctx, "/api/payments/gateway/"+orderID, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
