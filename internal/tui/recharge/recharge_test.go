// ABOUTME: Tests for the wallet recharge screen
// ABOUTME: Covers the clear-on-success and preserve-on-failure contract

package recharge

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gobiz/gobiz-cli/internal/client"
)

func newTestRecharge(baseURL string) *Recharge {
	return New(client.New(baseURL))
}

func fillManualForm(r *Recharge) {
	r.amount.SetValue("500")
	r.utr.SetValue("UTR123456")
	r.screenshot.SetValue("https://img.example.com/receipt.png")
}

func TestManualDepositSuccessClearsForm(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body client.DepositRequest
		json.NewDecoder(r.Body).Decode(&body)
		if body.Amount != 500 || body.UTR != "UTR123456" {
			t.Errorf("unexpected deposit payload: %+v", body)
		}
		json.NewEncoder(w).Encode(client.DepositResponse{Message: "Deposit received, pending review"})
	}))
	defer server.Close()

	r := newTestRecharge(server.URL)
	fillManualForm(r)

	msg := r.submitManual()()
	model, _ := r.Update(msg)
	r = model.(*Recharge)

	amount, utr, screenshot := r.FormValues()
	if amount != "" || utr != "" || screenshot != "" {
		t.Errorf("form not cleared after success: %q %q %q", amount, utr, screenshot)
	}
	if r.success != "Deposit received, pending review" {
		t.Errorf("success message = %q, want the server's wording", r.success)
	}
	if r.errMsg != "" {
		t.Errorf("unexpected error message: %q", r.errMsg)
	}
}

func TestManualDepositFailurePreservesForm(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "duplicate UTR"})
	}))
	defer server.Close()

	r := newTestRecharge(server.URL)
	fillManualForm(r)

	msg := r.submitManual()()
	model, _ := r.Update(msg)
	r = model.(*Recharge)

	amount, utr, screenshot := r.FormValues()
	if amount != "500" || utr != "UTR123456" || screenshot == "" {
		t.Errorf("form must be preserved after failure: %q %q %q", amount, utr, screenshot)
	}
	if !strings.Contains(r.errMsg, "duplicate UTR") {
		t.Errorf("error message = %q, want the server's wording", r.errMsg)
	}
	if r.success != "" {
		t.Errorf("unexpected success message: %q", r.success)
	}
}

func TestManualDepositValidation(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		utr    string
	}{
		{"non-numeric amount", "abc", "UTR1"},
		{"below minimum", "10", "UTR1"},
		{"missing UTR", "500", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRecharge("http://127.0.0.1:1")
			r.amount.SetValue(tt.amount)
			r.utr.SetValue(tt.utr)

			if cmd := r.submitManual(); cmd != nil {
				t.Error("invalid input must not fire a request")
			}
			if r.errMsg == "" {
				t.Error("expected a validation message")
			}
		})
	}
}

func TestStaleSubmissionDropped(t *testing.T) {
	r := newTestRecharge("http://127.0.0.1:1")
	fillManualForm(r)
	r.seq = 2

	model, _ := r.Update(submittedMsg{seq: 1, resp: &client.DepositResponse{Message: "old"}})
	r = model.(*Recharge)

	amount, _, _ := r.FormValues()
	if amount != "500" {
		t.Error("stale response must not clear the form")
	}
	if r.success != "" {
		t.Error("stale response must not set a success message")
	}
}

func TestGatewayVerifyShowsStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(client.GatewayStatus{
			Status: "success", Amount: 500, NewBalance: 650,
		})
	}))
	defer server.Close()

	r := newTestRecharge(server.URL)
	r.mode = modeGateway
	r.order = &client.GatewayOrder{OrderID: "ord-1", RedirectURL: "https://pay.example.com/ord-1"}

	msg := r.verifyGateway()()
	model, _ := r.Update(msg)
	r = model.(*Recharge)

	if r.gatewayStatus == nil || r.gatewayStatus.Status != "success" {
		t.Fatalf("gateway status = %+v", r.gatewayStatus)
	}
	if !strings.Contains(r.View(), "₹650.00") {
		t.Error("view missing the new balance")
	}
}
