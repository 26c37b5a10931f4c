// ABOUTME: Search history screen with per-entry delete
// ABOUTME: Fetches on mount, refetches after deletion

package history

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gobiz/gobiz-cli/internal/client"
	"github.com/gobiz/gobiz-cli/internal/tui/icons"
	"github.com/gobiz/gobiz-cli/internal/tui/styles"
	"github.com/gobiz/gobiz-cli/internal/tui/widgets"
)

// loadedMsg carries the history fetch result
type loadedMsg struct {
	seq     int
	entries []client.HistoryEntry
	err     error
}

// deletedMsg carries the delete outcome
type deletedMsg struct {
	seq int
	err error
}

// History is the past-searches screen
type History struct {
	api *client.Client

	entries []client.HistoryEntry
	cursor  int
	loading bool
	errMsg  string
	seq     int
}

// New creates the history screen
func New(api *client.Client) *History {
	return &History{api: api}
}

// Init fetches the history on mount
func (h *History) Init() tea.Cmd {
	return h.fetch()
}

func (h *History) fetch() tea.Cmd {
	h.loading = true
	h.seq++
	seq := h.seq
	return func() tea.Msg {
		entries, err := h.api.SearchHistory(context.Background())
		return loadedMsg{seq: seq, entries: entries, err: err}
	}
}

// Update implements tea.Model
func (h *History) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.seq != h.seq {
			return h, nil
		}
		h.loading = false
		if msg.err != nil {
			h.errMsg = msg.err.Error()
			return h, nil
		}
		h.errMsg = ""
		h.entries = msg.entries
		if h.cursor >= len(h.entries) {
			h.cursor = 0
		}
		return h, nil

	case deletedMsg:
		if msg.seq != h.seq {
			return h, nil
		}
		if msg.err != nil {
			h.loading = false
			h.errMsg = msg.err.Error()
			return h, nil
		}
		return h, h.fetch()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if h.cursor > 0 {
				h.cursor--
			}
		case "down", "j":
			if h.cursor < len(h.entries)-1 {
				h.cursor++
			}
		case "r":
			return h, h.fetch()
		case "d":
			return h, h.deleteSelected()
		}
	}

	return h, nil
}

func (h *History) deleteSelected() tea.Cmd {
	if h.loading || len(h.entries) == 0 {
		return nil
	}
	id := h.entries[h.cursor].ID
	h.loading = true
	h.seq++
	seq := h.seq
	return func() tea.Msg {
		err := h.api.DeleteSearchEntry(context.Background(), id)
		return deletedMsg{seq: seq, err: err}
	}
}

// View implements tea.Model
func (h *History) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.History.String() + " Search history"))
	sb.WriteString("\n")

	if h.loading {
		sb.WriteString(styles.MutedStyle.Render("Loading..."))
		return sb.String()
	}
	if h.errMsg != "" {
		sb.WriteString(styles.ErrorStyle.Render(icons.Critical.String() + " " + h.errMsg))
		return sb.String()
	}
	if len(h.entries) == 0 {
		sb.WriteString(styles.MutedStyle.Render("No searches yet."))
		sb.WriteString(styles.Help.Render("r refresh"))
		return sb.String()
	}

	for i, e := range h.entries {
		outcome := styles.StatusOK.Render(icons.CheckOK.String())
		if !e.Found {
			outcome = styles.StatusWarning.Render(icons.Info.String())
		}
		line := fmt.Sprintf("%s %s  %s  %s  %s",
			outcome, e.Mobile, widgets.Rupees(e.Charged), e.CreatedAt, foundLabel(e.Found))
		if i == h.cursor {
			line = styles.KeyStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		sb.WriteString(line + "\n")
	}

	sb.WriteString(styles.Help.Render("↑↓ navigate · d delete · r refresh"))
	return sb.String()
}

func foundLabel(found bool) string {
	if found {
		return styles.MutedStyle.Render("record")
	}
	return styles.MutedStyle.Render("no record")
}
