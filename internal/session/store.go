// ABOUTME: Session store holding the auth token and cached profile
// ABOUTME: Persists to a JSON file in the XDG config directory

package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/gobiz/gobiz-cli/internal/client"
)

// Store is the single source of truth for whether a user is logged in and
// who they are. Mutations go through the setters only; every mutation is
// written straight back to disk. Mutex-guarded because bubbletea commands
// run in their own goroutines.
type Store struct {
	mu        sync.Mutex
	configDir string
	fileName  string
	state     state
}

// state is the persisted shape. The token lands on disk in the clear; the
// file is a convenience across restarts, not a security boundary, so it is
// written 0600.
type state struct {
	Token   string       `json:"token,omitempty"`
	Profile *client.User `json:"profile,omitempty"`
	BaseURL string       `json:"base_url,omitempty"`
}

// New creates a session store backed by fileName inside configDir.
// The user session and the admin session are two instances with
// different file names.
func New(configDir, fileName string) *Store {
	return &Store{configDir: configDir, fileName: fileName}
}

// DefaultConfigDir returns the config directory following the XDG spec
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gobiz")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gobiz")
}

func (s *Store) file() string {
	return filepath.Join(s.configDir, s.fileName)
}

// Load reads persisted session state from disk. A missing or corrupt file
// starts a fresh, empty session.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.file())
	if os.IsNotExist(err) {
		s.state = state{}
		return nil
	}
	if err != nil {
		return err
	}

	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		s.state = state{}
		return nil
	}
	// A profile without a token is never trusted.
	if st.Token == "" {
		st.Profile = nil
	}
	s.state = st
	return nil
}

// save writes the current state to disk. Callers hold the mutex.
func (s *Store) save() error {
	if s.configDir == "" {
		return nil
	}
	if err := os.MkdirAll(s.configDir, 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.file(), data, 0600)
}

// SetToken stores the token. It does not fetch a profile; callers that need
// one request it from the backend and write it back with SetProfile.
func (s *Store) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Token = token
	return s.save()
}

// SetProfile stores the cached profile verbatim, last write wins.
func (s *Store) SetProfile(profile *client.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Profile = profile
	return s.save()
}

// SetBaseURL stores a manual API base-URL override; empty clears it.
func (s *Store) SetBaseURL(url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.BaseURL = url
	return s.save()
}

// Clear resets token and profile together, never one without the other.
// The base-URL override survives a logout.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Token = ""
	s.state.Profile = nil
	return s.save()
}

// Token returns the current auth token, empty when logged out.
// Together with BaseURL this satisfies client.Credentials.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Token
}

// BaseURL returns the manual override, empty when unset.
func (s *Store) BaseURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.BaseURL
}

// Profile returns the cached profile, nil when absent.
func (s *Store) Profile() *client.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Profile
}

// LoggedIn reports whether a token is present.
func (s *Store) LoggedIn() bool {
	return s.Token() != ""
}
