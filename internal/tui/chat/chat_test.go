// ABOUTME: Tests for the support chat screen
// ABOUTME: Focuses on the poll loop's generation guard

package chat

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gobiz/gobiz-cli/internal/client"
)

func TestStaleTickDoesNotReschedule(t *testing.T) {
	c := New(client.New("http://127.0.0.1:1"))
	c.gen = 2

	model, cmd := c.Update(pollTickMsg{Gen: 1})
	c = model.(*Chat)

	if cmd != nil {
		t.Error("a tick from an abandoned poll loop must not refetch or reschedule")
	}
}

func TestCurrentTickFetchesAndReschedules(t *testing.T) {
	c := New(client.New("http://127.0.0.1:1"))
	c.gen = 1

	_, cmd := c.Update(pollTickMsg{Gen: 1})

	if cmd == nil {
		t.Fatal("a live tick must refetch and schedule the next tick")
	}
}

func TestStopInvalidatesScheduledTicks(t *testing.T) {
	c := New(client.New("http://127.0.0.1:1"))
	c.gen = 1
	c.Stop()

	_, cmd := c.Update(pollTickMsg{Gen: 1})
	if cmd != nil {
		t.Error("ticks scheduled before Stop must die silently")
	}
}

func TestStaleHistoryDropped(t *testing.T) {
	c := New(client.New("http://127.0.0.1:1"))
	c.gen = 3

	model, _ := c.Update(historyMsg{gen: 2, messages: []client.ChatMessage{{Body: "old"}}})
	c = model.(*Chat)

	if len(c.messages) != 0 {
		t.Error("stale history must not replace the thread")
	}
}

func TestFetchFailureKeepsThread(t *testing.T) {
	c := New(client.New("http://127.0.0.1:1"))
	c.gen = 1
	c.messages = []client.ChatMessage{{Sender: "support", Body: "hello"}}

	model, _ := c.Update(historyMsg{gen: 1, err: errFake})
	c = model.(*Chat)

	if len(c.messages) != 1 {
		t.Error("a failed refresh must keep the last good thread")
	}
	if c.errMsg == "" {
		t.Error("the failure should be surfaced")
	}
}

var errFake = &fakeError{}

type fakeError struct{}

func (*fakeError) Error() string { return "boom" }

func TestSendClearsInputAndRefetches(t *testing.T) {
	var sent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			sent = body["body"]
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(client.ChatMessage{ID: "m1", Sender: "user", Body: sent})
			return
		}
		json.NewEncoder(w).Encode(map[string][]client.ChatMessage{"messages": {{Sender: "user", Body: sent}}})
	}))
	defer server.Close()

	c := New(client.New(server.URL))
	c.gen = 1
	c.input.SetValue("need help with a deposit")

	msg := c.send()()
	model, cmd := c.Update(msg)
	c = model.(*Chat)

	if c.input.Value() != "" {
		t.Error("input should clear after a successful send")
	}
	if cmd == nil {
		t.Error("a successful send should refetch the thread")
	}
	if sent != "need help with a deposit" {
		t.Errorf("sent body = %q", sent)
	}
}
