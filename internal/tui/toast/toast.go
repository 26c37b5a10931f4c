// ABOUTME: Transient notification surface rendered by the root shell
// ABOUTME: Self-expiring via a tea.Tick carrying a generation guard

package toast

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gobiz/gobiz-cli/internal/tui/styles"
)

// Level selects the toast styling
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

// DefaultDuration is how long a toast stays visible
const DefaultDuration = 4 * time.Second

// ExpiredMsg is sent when a toast's timer fires. Gen identifies which toast
// the timer belongs to; a newer toast ignores an older toast's expiry.
type ExpiredMsg struct {
	Gen int
}

// Toast is the notification state owned by the root shell
type Toast struct {
	message string
	level   Level
	gen     int
	visible bool
}

// Show replaces the current toast and schedules its expiry
func (t *Toast) Show(message string, level Level) tea.Cmd {
	t.message = message
	t.level = level
	t.gen++
	t.visible = true

	gen := t.gen
	return tea.Tick(DefaultDuration, func(time.Time) tea.Msg {
		return ExpiredMsg{Gen: gen}
	})
}

// Update handles expiry messages; stale generations are dropped
func (t *Toast) Update(msg ExpiredMsg) {
	if msg.Gen == t.gen {
		t.visible = false
	}
}

// Visible reports whether a toast should be rendered
func (t *Toast) Visible() bool { return t.visible }

// View renders the toast line, empty when hidden
func (t *Toast) View() string {
	if !t.visible {
		return ""
	}

	var color lipgloss.Color
	switch t.level {
	case LevelSuccess:
		color = styles.Secondary
	case LevelError:
		color = styles.Danger
	default:
		color = styles.Info
	}

	return lipgloss.NewStyle().
		Foreground(color).
		Bold(true).
		Padding(0, 1).
		Render(t.message)
}
