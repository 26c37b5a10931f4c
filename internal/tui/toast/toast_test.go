// ABOUTME: Tests for the toast notification surface
// ABOUTME: Covers generation guarding so stale expiries don't hide new toasts

package toast

import (
	"strings"
	"testing"
)

func TestShowMakesVisible(t *testing.T) {
	var tst Toast
	cmd := tst.Show("saved", LevelSuccess)
	if cmd == nil {
		t.Fatal("expected expiry command")
	}
	if !tst.Visible() {
		t.Error("expected toast visible after Show")
	}
	if !strings.Contains(tst.View(), "saved") {
		t.Error("expected message in view")
	}
}

func TestExpiryHidesToast(t *testing.T) {
	var tst Toast
	tst.Show("one", LevelInfo)

	tst.Update(ExpiredMsg{Gen: 1})
	if tst.Visible() {
		t.Error("expected toast hidden after matching expiry")
	}
}

func TestStaleExpiryIgnored(t *testing.T) {
	var tst Toast
	tst.Show("one", LevelInfo)
	tst.Show("two", LevelError)

	// The first toast's timer fires after the second Show; it must not
	// hide the newer toast.
	tst.Update(ExpiredMsg{Gen: 1})
	if !tst.Visible() {
		t.Error("expected newer toast to survive stale expiry")
	}
	tst.Update(ExpiredMsg{Gen: 2})
	if tst.Visible() {
		t.Error("expected toast hidden after its own expiry")
	}
}

func TestHiddenViewIsEmpty(t *testing.T) {
	var tst Toast
	if tst.View() != "" {
		t.Error("expected empty view before any Show")
	}
}
