// ABOUTME: Tests for root command configuration
// ABOUTME: Covers API URL precedence: flag, env, default

package cmd

import (
	"testing"
)

func TestGetAPIURLDefault(t *testing.T) {
	apiURL = ""
	t.Setenv("GOBIZ_API_URL", "")

	if got := GetAPIURL(); got != defaultAPIURL {
		t.Errorf("GetAPIURL() = %q, want %q", got, defaultAPIURL)
	}
}

func TestGetAPIURLFromEnv(t *testing.T) {
	apiURL = ""
	t.Setenv("GOBIZ_API_URL", "http://env.example.com")

	if got := GetAPIURL(); got != "http://env.example.com" {
		t.Errorf("GetAPIURL() = %q, want env value", got)
	}
}

func TestGetAPIURLFlagWinsOverEnv(t *testing.T) {
	apiURL = "http://flag.example.com"
	t.Cleanup(func() { apiURL = "" })
	t.Setenv("GOBIZ_API_URL", "http://env.example.com")

	if got := GetAPIURL(); got != "http://flag.example.com" {
		t.Errorf("GetAPIURL() = %q, want flag value", got)
	}
}

func TestJSONOutputFlag(t *testing.T) {
	jsonOutput = true
	t.Cleanup(func() { jsonOutput = false })

	if !IsJSONOutput() {
		t.Error("IsJSONOutput() = false, want true")
	}
}
