// ABOUTME: Tests for the lookup screen: field toggling, stale results, billing
// ABOUTME: Network cases run against httptest backends

package search

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gobiz/gobiz-cli/internal/client"
)

type fakeSession struct {
	user *client.User
}

func (f fakeSession) Profile() *client.User { return f.user }

func newTestSearch(baseURL string) *Search {
	api := client.New(baseURL)
	return New(api, fakeSession{}, nil)
}

func TestToggleLastSelectedFieldIsNoOp(t *testing.T) {
	s := newTestSearch("http://127.0.0.1:1")

	// Deselect everything except the first field.
	for i := 1; i < len(s.selected); i++ {
		s.Toggle(i)
	}
	if got := len(s.SelectedFields()); got != 1 {
		t.Fatalf("selected fields = %d, want 1", got)
	}

	s.Toggle(0)

	if got := len(s.SelectedFields()); got != 1 {
		t.Errorf("selected fields = %d after toggling the last one, want 1", got)
	}
	if !s.selected[0] {
		t.Error("the last selected field must stay selected")
	}
}

func TestToggleRoundTrip(t *testing.T) {
	s := newTestSearch("http://127.0.0.1:1")

	s.Toggle(2)
	if s.selected[2] {
		t.Error("field 2 should be deselected")
	}
	s.Toggle(2)
	if !s.selected[2] {
		t.Error("field 2 should be selected again")
	}
}

func TestStaleResultDropped(t *testing.T) {
	s := newTestSearch("http://127.0.0.1:1")
	s.seq = 3

	result := &client.SearchResult{Found: true}
	model, cmd := s.Update(resultMsg{seq: 2, result: result})
	s = model.(*Search)

	if cmd != nil {
		t.Error("stale result must not emit CompletedMsg")
	}
	if s.result != nil {
		t.Error("stale result must not be rendered")
	}
}

func TestFreshResultEmitsCompleted(t *testing.T) {
	s := newTestSearch("http://127.0.0.1:1")
	s.seq = 1

	result := &client.SearchResult{Found: true, Record: map[string]string{"name": "Asha"}}
	model, cmd := s.Update(resultMsg{seq: 1, result: result})
	s = model.(*Search)

	if cmd == nil {
		t.Fatal("expected CompletedMsg command")
	}
	if _, ok := cmd().(CompletedMsg); !ok {
		t.Errorf("follow-up message = %T, want CompletedMsg", cmd())
	}
	if s.result == nil {
		t.Error("fresh result should be stored")
	}
}

func TestNoRecordStillShowsBaselineCharge(t *testing.T) {
	s := newTestSearch("http://127.0.0.1:1")
	s.result = &client.SearchResult{
		Found:   false,
		Billing: client.SearchBilling{Charged: 2, NewBalance: 98},
	}

	view := s.View()
	if !strings.Contains(view, "No record found") {
		t.Error("view missing the no-record notice")
	}
	if !strings.Contains(view, "₹2.00") {
		t.Error("view missing the baseline fee")
	}
	if !strings.Contains(view, "₹98.00") {
		t.Error("view missing the new balance")
	}
}

func TestSubmitValidatesNumber(t *testing.T) {
	tests := []struct {
		name   string
		number string
	}{
		{"too short", "98765"},
		{"non-digits", "98765abcde"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSearch("http://127.0.0.1:1")
			s.number.SetValue(tt.number)

			if cmd := s.submit(); cmd != nil {
				t.Error("invalid number must not fire a request")
			}
			if s.errMsg == "" {
				t.Error("expected a validation message")
			}
		})
	}
}

func TestNumberInputClampsAtTenDigits(t *testing.T) {
	// The input's character limit drops everything past the tenth digit,
	// so overlong numbers never reach validation.
	s := newTestSearch("http://127.0.0.1:1")
	s.number.SetValue("98765432100")

	if got := s.number.Value(); got != "9876543210" {
		t.Errorf("input value = %q, want clamped to 10 digits", got)
	}
	if msg := s.validate(); msg != "" {
		t.Errorf("clamped value should validate, got %q", msg)
	}
}

func TestSearchSendsSelectedFieldsOnly(t *testing.T) {
	var gotFields []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Mobile string   `json:"mobile"`
			Fields []string `json:"fields"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		gotFields = body.Fields
		json.NewEncoder(w).Encode(client.SearchResult{Found: false})
	}))
	defer server.Close()

	s := newTestSearch(server.URL)
	s.number.SetValue("9876543210")
	// Keep only the first two fields.
	for i := 2; i < len(s.selected); i++ {
		s.Toggle(i)
	}

	msg := s.submit()()
	s.Update(msg)

	want := []string{client.KnownFields[0], client.KnownFields[1]}
	if len(gotFields) != len(want) || gotFields[0] != want[0] || gotFields[1] != want[1] {
		t.Errorf("fields sent = %v, want %v", gotFields, want)
	}
}

func TestInsufficientCreditsOffersRecharge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		json.NewEncoder(w).Encode(map[string]string{"error": "insufficient credits"})
	}))
	defer server.Close()

	s := newTestSearch(server.URL)
	s.number.SetValue("9876543210")

	msg := s.submit()()
	model, _ := s.Update(msg)
	s = model.(*Search)

	if !s.insufficient {
		t.Error("402 should set the insufficient flag")
	}
	if !strings.Contains(s.View(), "recharge wallet") {
		t.Error("view should offer the recharge shortcut")
	}
}
