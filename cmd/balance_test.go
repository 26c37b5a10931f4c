// ABOUTME: Tests for the balance threshold command
// ABOUTME: Verifies exit codes for pass, fail, and error cases

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gobiz/gobiz-cli/internal/client"
	"github.com/gobiz/gobiz-cli/internal/session"
)

// loginTestSession points the config directory at a temp dir and stores a
// token so the command under test sees a logged-in user.
func loginTestSession(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	sess := session.New(session.DefaultConfigDir(), "session.json")
	if err := sess.SetToken("test-token"); err != nil {
		t.Fatal(err)
	}
}

func balanceServer(t *testing.T, credits float64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/users/me" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(client.User{Name: "Asha", Credits: credits})
	}))
}

func TestRunBalanceAboveMinimum(t *testing.T) {
	server := balanceServer(t, 150)
	defer server.Close()

	loginTestSession(t)
	apiURL = server.URL
	minBalance = 100
	t.Cleanup(func() {
		apiURL = ""
		minBalance = 0
	})

	var buf bytes.Buffer
	if code := runBalance(context.Background(), &buf); code != 0 {
		t.Errorf("exit code = %d, want 0\noutput: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "✓") {
		t.Errorf("output missing pass marker:\n%s", buf.String())
	}
}

func TestRunBalanceBelowMinimum(t *testing.T) {
	server := balanceServer(t, 40)
	defer server.Close()

	loginTestSession(t)
	apiURL = server.URL
	minBalance = 100
	t.Cleanup(func() {
		apiURL = ""
		minBalance = 0
	})

	var buf bytes.Buffer
	if code := runBalance(context.Background(), &buf); code != 1 {
		t.Errorf("exit code = %d, want 1\noutput: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "✗") {
		t.Errorf("output missing fail marker:\n%s", buf.String())
	}
}

func TestRunBalanceNotLoggedIn(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var buf bytes.Buffer
	if code := runBalance(context.Background(), &buf); code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
	if !strings.Contains(buf.String(), "Not logged in") {
		t.Errorf("output missing login hint:\n%s", buf.String())
	}
}

func TestRunBalanceNegativeMinimum(t *testing.T) {
	minBalance = -1
	t.Cleanup(func() { minBalance = 0 })

	var buf bytes.Buffer
	if code := runBalance(context.Background(), &buf); code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
}
