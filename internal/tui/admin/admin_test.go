// ABOUTME: Tests for the admin console: queue rendering, login, stale guards
// ABOUTME: Network cases run against httptest backends

package admin

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gobiz/gobiz-cli/internal/client"
	"github.com/gobiz/gobiz-cli/internal/session"
)

func newTestAdmin(t *testing.T, baseURL string) (*Admin, *session.Store) {
	t.Helper()
	sess := session.New(t.TempDir(), "admin.json")
	api := client.New(baseURL, client.WithCredentials(sess))
	return New(api, sess), sess
}

func loggedInAdmin(t *testing.T, baseURL string) *Admin {
	t.Helper()
	a, sess := newTestAdmin(t, baseURL)
	if err := sess.SetToken("admin-tok"); err != nil {
		t.Fatal(err)
	}
	return a
}

func TestViewUsersTab(t *testing.T) {
	a := loggedInAdmin(t, "http://127.0.0.1:1")
	a.users = []client.AdminUser{
		{ID: "u1", Email: "asha@example.com", Role: "user", Credits: 120, SearchCount: 42, Status: "active"},
		{ID: "u2", Email: "ravi@example.com", Role: "user", Credits: 0, SearchCount: 0, Status: "pending"},
	}

	view := a.viewTab()
	if !strings.Contains(view, "asha@example.com") {
		t.Errorf("users tab missing email:\n%s", view)
	}
	if !strings.Contains(view, "₹120.00") {
		t.Errorf("users tab missing credits:\n%s", view)
	}
	if !strings.Contains(view, "42 searches") {
		t.Errorf("users tab missing search count:\n%s", view)
	}
}

func TestViewDepositsTab(t *testing.T) {
	a := loggedInAdmin(t, "http://127.0.0.1:1")
	a.tab = tabDeposits
	a.deposits = []client.PendingDeposit{
		{ID: "d1", UserEmail: "asha@example.com", Amount: 500, UTR: "UTR123456", CreatedAt: "2026-08-01"},
	}

	view := a.viewTab()
	if !strings.Contains(view, "asha@example.com") {
		t.Errorf("deposits tab missing user email:\n%s", view)
	}
	if !strings.Contains(view, "₹500.00") || !strings.Contains(view, "UTR123456") {
		t.Errorf("deposits tab missing amount or reference:\n%s", view)
	}
}

func TestViewResetsTab(t *testing.T) {
	a := loggedInAdmin(t, "http://127.0.0.1:1")
	a.tab = tabResets
	a.resets = []client.PasswordReset{
		{ID: "r1", UserEmail: "ravi@example.com", Status: "pending", CreatedAt: "2026-08-02"},
	}

	view := a.viewTab()
	if !strings.Contains(view, "ravi@example.com") {
		t.Errorf("resets tab missing requester email:\n%s", view)
	}
	if !strings.Contains(view, "2026-08-02") {
		t.Errorf("resets tab missing request date:\n%s", view)
	}
}

func TestViewEmptyQueues(t *testing.T) {
	a := loggedInAdmin(t, "http://127.0.0.1:1")

	if got := a.viewTab(); !strings.Contains(got, "No users") {
		t.Errorf("empty users tab = %q", got)
	}
	a.tab = tabDeposits
	if got := a.viewTab(); !strings.Contains(got, "No pending deposits") {
		t.Errorf("empty deposits tab = %q", got)
	}
	a.tab = tabResets
	if got := a.viewTab(); !strings.Contains(got, "No pending password resets") {
		t.Errorf("empty resets tab = %q", got)
	}
}

func TestLoginStoresAdminToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/admin/login" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(client.LoginResponse{Token: "admin-tok"})
	}))
	defer server.Close()

	a, sess := newTestAdmin(t, server.URL)
	a.email.SetValue("root@example.com")
	a.password.SetValue("hunter22")

	msg := a.submitLogin()()
	a.Update(msg)

	if sess.Token() != "admin-tok" {
		t.Errorf("admin token = %q, want admin-tok", sess.Token())
	}
}

func TestLoginFailureShowsMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "bad admin credentials"})
	}))
	defer server.Close()

	a, sess := newTestAdmin(t, server.URL)
	a.email.SetValue("root@example.com")
	a.password.SetValue("wrong")

	msg := a.submitLogin()()
	a.Update(msg)

	if sess.Token() != "" {
		t.Error("failed login must not store a token")
	}
	if !strings.Contains(a.errMsg, "bad admin credentials") {
		t.Errorf("errMsg = %q, want backend wording", a.errMsg)
	}
}

func TestStaleUserListDropped(t *testing.T) {
	a := loggedInAdmin(t, "http://127.0.0.1:1")
	a.seq = 3

	a.Update(usersMsg{seq: 2, users: []client.AdminUser{{ID: "u1", Email: "old@example.com"}}})

	if len(a.users) != 0 {
		t.Error("stale user listing must not be rendered")
	}
}

func TestListFailureShowsError(t *testing.T) {
	a := loggedInAdmin(t, "http://127.0.0.1:1")
	a.seq = 1
	a.loading = true

	a.Update(usersMsg{seq: 1, err: errors.New("listing unavailable")})

	if a.loading {
		t.Error("loading flag must clear on failure")
	}
	if !strings.Contains(a.errMsg, "listing unavailable") {
		t.Errorf("errMsg = %q, want the fetch error", a.errMsg)
	}
}
