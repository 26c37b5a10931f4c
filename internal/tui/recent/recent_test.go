// ABOUTME: Tests for the recent numbers store
// ABOUTME: Covers dedupe, trimming, and corrupt-file recovery

package recent

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAddDeduplicatesAndFronts(t *testing.T) {
	r := New(t.TempDir())

	for _, n := range []string{"9876543210", "9123456780", "9876543210"} {
		if err := r.Add(n); err != nil {
			t.Fatal(err)
		}
	}

	got := r.List()
	if len(got) != 2 {
		t.Fatalf("list length = %d, want 2", len(got))
	}
	if got[0] != "9876543210" {
		t.Errorf("front = %q, want the most recent number", got[0])
	}
}

func TestSaveTrimsToMax(t *testing.T) {
	r := New(t.TempDir())

	numbers := []string{"9000000001", "9000000002", "9000000003", "9000000004", "9000000005", "9000000006", "9000000007"}
	if err := r.Save(numbers); err != nil {
		t.Fatal(err)
	}

	if got := len(r.List()); got != MaxNumbers {
		t.Errorf("list length = %d, want %d", got, MaxNumbers)
	}
}

func TestLoadSurvivesRestart(t *testing.T) {
	dir := t.TempDir()

	first := New(dir)
	if err := first.Add("9876543210"); err != nil {
		t.Fatal(err)
	}

	second := New(dir)
	got, err := second.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != "9876543210" {
		t.Errorf("loaded = %v", got)
	}
}

func TestCorruptFileStartsFresh(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "recent.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	r := New(dir)
	got, err := r.Load()
	if err != nil {
		t.Fatalf("corrupt file should not error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("loaded = %v, want empty", got)
	}
}

func TestMissingFileYieldsEmptyList(t *testing.T) {
	r := New(t.TempDir())
	got, err := r.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("loaded = %v, want empty", got)
	}
}
