// ABOUTME: Navigation store driving which screen the root shell renders
// ABOUTME: Pure page transitions with explicit back/forward history stacks

package nav

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Page identifies a screen. The set is closed; anything that fails to
// parse renders the not-found screen instead of crashing.
type Page int

const (
	PageLanding Page = iota
	PageAuth
	PageSearch
	PageHistory
	PageAccount
	PageRecharge
	PageChat
	PageAdmin
	PageTerms
	PagePrivacy
	PageRefund
	PageNotFound
)

var pageNames = map[Page]string{
	PageLanding:  "landing",
	PageAuth:     "auth",
	PageSearch:   "search",
	PageHistory:  "history",
	PageAccount:  "account",
	PageRecharge: "recharge",
	PageChat:     "chat",
	PageAdmin:    "admin",
	PageTerms:    "terms",
	PagePrivacy:  "privacy",
	PageRefund:   "refund",
	PageNotFound: "not-found",
}

// String returns the persisted name of the page
func (p Page) String() string {
	if name, ok := pageNames[p]; ok {
		return name
	}
	return "not-found"
}

// ParsePage maps a stored name back to a Page; unknown names yield
// PageNotFound so stale or foreign state stays representable.
func ParsePage(name string) Page {
	for p, n := range pageNames {
		if n == name {
			return p
		}
	}
	return PageNotFound
}

// entry is one history position: a page plus its optional parameter
// (e.g. "register" to open the auth page in register mode).
type entry struct {
	Page  Page
	Param string
}

// Store owns the current page and the back/forward stacks. Transitions are
// pure state changes; syncing to disk is a separate explicit step (Save)
// invoked by the shell, so the transitions are testable in isolation.
type Store struct {
	current entry
	back    []entry
	forward []entry
}

// New creates a store positioned at the given page. The initial position is
// the synthesized first history entry: it is current without being pushed,
// so the very first Back has a defined answer (false) instead of walking
// off the stack.
func New(initial Page) *Store {
	return &Store{current: entry{Page: initial}}
}

// Current returns the active page.
func (s *Store) Current() Page { return s.current.Page }

// Param returns the parameter attached to the active page, if any.
func (s *Store) Param() string { return s.current.Param }

// Navigate moves to page. Navigating to the current page is a no-op so
// repeated selection neither grows history nor remounts the screen (several
// screens fire requests on mount). Any real move clears the forward stack.
func (s *Store) Navigate(page Page, param string) {
	if page == s.current.Page {
		return
	}
	s.back = append(s.back, s.current)
	s.forward = nil
	s.current = entry{Page: page, Param: param}
}

// Back overwrites the current page from the back stack without creating a
// new entry. Returns false at the start of history.
func (s *Store) Back() bool {
	if len(s.back) == 0 {
		return false
	}
	s.forward = append(s.forward, s.current)
	s.current = s.back[len(s.back)-1]
	s.back = s.back[:len(s.back)-1]
	return true
}

// Forward is the inverse of Back.
func (s *Store) Forward() bool {
	if len(s.forward) == 0 {
		return false
	}
	s.back = append(s.back, s.current)
	s.current = s.forward[len(s.forward)-1]
	s.forward = s.forward[:len(s.forward)-1]
	return true
}

// Depth returns the number of back entries. Mainly for tests and the
// footer's back hint.
func (s *Store) Depth() int { return len(s.back) }

// persisted is the on-disk shape: only the current page name survives a
// restart, matching how the original remembers its last screen.
type persisted struct {
	Page string `json:"page"`
}

// Save writes the current page name to fileName inside configDir.
func (s *Store) Save(configDir, fileName string) error {
	if configDir == "" {
		return nil
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(persisted{Page: s.current.Page.String()}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(configDir, fileName), data, 0644)
}

// Load restores the current page from disk. Missing or corrupt files leave
// the store at its initial page.
func (s *Store) Load(configDir, fileName string) error {
	data, err := os.ReadFile(filepath.Join(configDir, fileName))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	var p persisted
	if err := json.Unmarshal(data, &p); err != nil {
		return nil
	}
	s.current = entry{Page: ParsePage(p.Page)}
	return nil
}
