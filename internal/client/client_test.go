// ABOUTME: Tests for the Go-Biz API client
// ABOUTME: Uses httptest to mock backend responses

package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// staticCreds is a test Credentials source
type staticCreds struct {
	token   string
	baseURL string
}

func (s staticCreds) Token() string   { return s.token }
func (s staticCreds) BaseURL() string { return s.baseURL }

func TestLogin_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			t.Errorf("expected path /api/auth/login, got %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "john@example.com" {
			t.Errorf("expected email john@example.com, got %s", body["email"])
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(LoginResponse{Token: "abc"})
	}))
	defer server.Close()

	c := New(server.URL)
	resp, err := c.Login(context.Background(), "john@example.com", "secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Token != "abc" {
		t.Errorf("expected token abc, got %s", resp.Token)
	}
}

func TestLogin_BackendMessageSurfaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "account not activated"})
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Login(context.Background(), "john@example.com", "secret123")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if got := err.Error(); got != "backend error: account not activated" {
		t.Errorf("expected backend message verbatim, got %q", got)
	}
}

func TestProfile_BearerHeaderInjected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("expected bearer header, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(User{Name: "John", Email: "john@example.com"})
	}))
	defer server.Close()

	c := New(server.URL, WithCredentials(staticCreds{token: "tok-123"}))
	user, err := c.Profile(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Name != "John" {
		t.Errorf("expected name John, got %s", user.Name)
	}
}

func TestProfile_NoTokenNoHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("expected no auth header, got %q", got)
		}
		json.NewEncoder(w).Encode(User{})
	}))
	defer server.Close()

	c := New(server.URL)
	if _, err := c.Profile(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestProfile_UnauthorizedSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "token expired"})
	}))
	defer server.Close()

	c := New(server.URL, WithCredentials(staticCreds{token: "stale"}))
	_, err := c.Profile(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestBaseURLOverride(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(PublicStats{TotalSearches: 7})
	}))
	defer server.Close()

	// Default host is unreachable; the override must win.
	c := New("http://localhost:1", WithCredentials(staticCreds{baseURL: server.URL}))
	stats, err := c.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalSearches != 7 {
		t.Errorf("expected 7 searches, got %d", stats.TotalSearches)
	}
}

func TestSearch_FieldSubsetSentAsIs(t *testing.T) {
	var got searchRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(SearchResult{Found: true, Record: map[string]string{"name": "John"}})
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Search(context.Background(), "9876543210", []string{"name", "address"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Fields) != 2 || got.Fields[0] != "name" || got.Fields[1] != "address" {
		t.Errorf("expected exact subset [name address], got %v", got.Fields)
	}
}

func TestSearch_AllFieldsUsesSentinel(t *testing.T) {
	var got searchRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(SearchResult{Found: true})
	}))
	defer server.Close()

	c := New(server.URL)
	if _, err := c.Search(context.Background(), "9876543210", KnownFields); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Fields) != 1 || got.Fields[0] != AllFieldsSentinel {
		t.Errorf("expected [%s], got %v", AllFieldsSentinel, got.Fields)
	}
}

func TestSearch_NotFoundIsNormalOutcome(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(SearchResult{
			Found:   false,
			Billing: SearchBilling{BaseFee: 5, Charged: 5, NewBalance: 95},
		})
	}))
	defer server.Close()

	c := New(server.URL)
	result, err := c.Search(context.Background(), "9876543210", []string{"name"})
	if err != nil {
		t.Fatalf("expected no error for not-found, got %v", err)
	}
	if result.Found {
		t.Error("expected Found false")
	}
	if result.Billing.Charged != 5 {
		t.Errorf("expected baseline fee 5 charged, got %v", result.Billing.Charged)
	}
}

func TestSearch_PaymentRequiredSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "balance too low"})
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Search(context.Background(), "9876543210", []string{"name"})
	if !errors.Is(err, ErrInsufficientCredits) {
		t.Errorf("expected ErrInsufficientCredits, got %v", err)
	}
}

func TestSubmitDeposit_RequestIDAttached(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Request-Id") == "" {
			t.Error("expected X-Request-Id header")
		}
		var dep DepositRequest
		json.NewDecoder(r.Body).Decode(&dep)
		if dep.UTR != "UTR123" {
			t.Errorf("expected UTR123, got %s", dep.UTR)
		}
		json.NewEncoder(w).Encode(DepositResponse{ID: "d1", Message: "submitted for review"})
	}))
	defer server.Close()

	c := New(server.URL)
	resp, err := c.SubmitDeposit(context.Background(), &DepositRequest{Amount: 5000, UTR: "UTR123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Message != "submitted for review" {
		t.Errorf("unexpected message %q", resp.Message)
	}
}

func TestDeleteSearchEntry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		if r.URL.Path != "/api/search/history/h42" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c := New(server.URL)
	if err := c.DeleteSearchEntry(context.Background(), "h42"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAdminListUsers_StatusFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("status"); got != "pending" {
			t.Errorf("expected status=pending, got %s", got)
		}
		json.NewEncoder(w).Encode(map[string][]AdminUser{
			"users": {{ID: "u1", Email: "a@b.c", Status: "pending"}},
		})
	}))
	defer server.Close()

	c := New(server.URL, WithCredentials(staticCreds{token: "admin-tok"}))
	users, err := c.ListUsers(context.Background(), "pending")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 1 || users[0].ID != "u1" {
		t.Errorf("unexpected users %v", users)
	}
}

func TestConnectionError(t *testing.T) {
	c := New("http://localhost:1")
	_, err := c.Stats(context.Background())
	if err == nil {
		t.Error("expected connection error, got nil")
	}
}

func TestContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		json.NewEncoder(w).Encode(PublicStats{})
	}))
	defer server.Close()

	c := New(server.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	_, err := c.Stats(ctx)
	if err == nil {
		t.Error("expected error for canceled context, got nil")
	}
}

func TestContextTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		json.NewEncoder(w).Encode(PublicStats{})
	}))
	defer server.Close()

	c := New(server.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := c.Stats(ctx)
	if err == nil {
		t.Error("expected error for timed out context, got nil")
	}
}

func TestFieldsPayload(t *testing.T) {
	tests := []struct {
		name     string
		selected []string
		want     []string
	}{
		{"single field", []string{"name"}, []string{"name"}},
		{"subset", []string{"name", "circle"}, []string{"name", "circle"}},
		{"every field", KnownFields, []string{AllFieldsSentinel}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FieldsPayload(tc.selected)
			if len(got) != len(tc.want) {
				t.Fatalf("FieldsPayload() = %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("FieldsPayload() = %v, want %v", got, tc.want)
				}
			}
		})
	}
}
