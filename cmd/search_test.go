// ABOUTME: Tests for the search command
// ABOUTME: Exit codes: 0 found, 1 no record, 2 error

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
)

func searchServer(t *testing.T, result client.SearchResult) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/search" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(result)
	}))
}

func TestRunSearchFound(t *testing.T) {
	server := searchServer(t, client.SearchResult{
		Found:   true,
		Record:  map[string]string{"name": "Asha Verma", "circle": "Delhi"},
		Billing: client.SearchBilling{BaseFee: 2, FieldCharges: 3, Charged: 5, NewBalance: 95},
	})
	defer server.Close()

	loginTestSession(t)
	apiURL = server.URL
	t.Cleanup(func() { apiURL = "" })

	var buf bytes.Buffer
	if code := runSearch(context.Background(), &buf, "9876543210"); code != 0 {
		t.Fatalf("exit code = %d, want 0\noutput: %s", code, buf.String())
	}

	out := buf.String()
	if !strings.Contains(out, "Asha Verma") {
		t.Errorf("output missing record values:\n%s", out)
	}
	if !strings.Contains(out, "₹5.00") || !strings.Contains(out, "₹95.00") {
		t.Errorf("output missing billing:\n%s", out)
	}
}

func TestRunSearchNoRecord(t *testing.T) {
	server := searchServer(t, client.SearchResult{
		Found:   false,
		Billing: client.SearchBilling{BaseFee: 2, Charged: 2, NewBalance: 98},
	})
	defer server.Close()

	loginTestSession(t)
	apiURL = server.URL
	t.Cleanup(func() { apiURL = "" })

	var buf bytes.Buffer
	if code := runSearch(context.Background(), &buf, "9876543210"); code != 1 {
		t.Fatalf("exit code = %d, want 1\noutput: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "No record found") {
		t.Errorf("output missing no-record notice:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "₹2.00") {
		t.Errorf("output missing baseline charge:\n%s", buf.String())
	}
}

func TestRunSearchUnknownField(t *testing.T) {
	loginTestSession(t)
	searchFields = []string{"name", "shoe_size"}
	t.Cleanup(func() { searchFields = nil })

	var buf bytes.Buffer
	if code := runSearch(context.Background(), &buf, "9876543210"); code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
	if !strings.Contains(buf.String(), "shoe_size") {
		t.Errorf("output should name the bad field:\n%s", buf.String())
	}
}

func TestRunSearchNotLoggedIn(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var buf bytes.Buffer
	if code := runSearch(context.Background(), &buf, "9876543210"); code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
}
