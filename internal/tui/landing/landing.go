// ABOUTME: Landing screen with marketing copy and public usage counters
// ABOUTME: Stats fetch failures are soft; a placeholder renders instead

package landing

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gobiz/gobiz-cli/internal/client"
	"github.com/gobiz/gobiz-cli/internal/nav"
	"github.com/gobiz/gobiz-cli/internal/tui/icons"
	"github.com/gobiz/gobiz-cli/internal/tui/route"
	"github.com/gobiz/gobiz-cli/internal/tui/styles"
	"github.com/gobiz/gobiz-cli/internal/tui/widgets"
)

// statsLoadedMsg carries the public stats fetch result
type statsLoadedMsg struct {
	stats *client.PublicStats
	err   error
}

// menuItem is one selectable entry on the landing screen
type menuItem struct {
	label string
	page  nav.Page
	param string
}

// Landing is the marketing/entry screen
type Landing struct {
	api      *client.Client
	loggedIn bool
	stats    *client.PublicStats
	items    []menuItem
	cursor   int
	width    int
}

// New creates the landing screen. Menu entries depend on whether a session
// is already present.
func New(api *client.Client, loggedIn bool) *Landing {
	items := []menuItem{}
	if loggedIn {
		items = append(items,
			menuItem{"Search a number", nav.PageSearch, ""},
			menuItem{"My account", nav.PageAccount, ""},
		)
	} else {
		items = append(items,
			menuItem{"Log in", nav.PageAuth, ""},
			menuItem{"Create an account", nav.PageAuth, "register"},
		)
	}
	items = append(items,
		menuItem{"Admin console", nav.PageAdmin, ""},
		menuItem{"Terms of service", nav.PageTerms, ""},
		menuItem{"Privacy policy", nav.PagePrivacy, ""},
		menuItem{"Refund policy", nav.PageRefund, ""},
	)

	return &Landing{api: api, loggedIn: loggedIn, items: items}
}

// Init fires the soft stats fetch
func (l *Landing) Init() tea.Cmd {
	return func() tea.Msg {
		stats, err := l.api.Stats(context.Background())
		return statsLoadedMsg{stats: stats, err: err}
	}
}

// Update implements tea.Model
func (l *Landing) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		l.width = msg.Width
		return l, nil

	case statsLoadedMsg:
		// Soft failure: keep stats nil and render the placeholder.
		if msg.err == nil {
			l.stats = msg.stats
		}
		return l, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if l.cursor > 0 {
				l.cursor--
			}
		case "down", "j":
			if l.cursor < len(l.items)-1 {
				l.cursor++
			}
		case "enter":
			item := l.items[l.cursor]
			return l, route.To(item.page, item.param)
		}
	}

	return l, nil
}

// View implements tea.Model
func (l *Landing) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Phone.String() + " Go-Biz Number Lookup"))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render("Mobile number intelligence, pay per search"))
	sb.WriteString("\n\n")

	searches := widgets.StatBlock(icons.Search, "Searches",
		l.statValue(func(s *client.PublicStats) int { return s.TotalSearches }), "served to date")
	users := widgets.StatBlock(icons.User, "Users",
		l.statValue(func(s *client.PublicStats) int { return s.TotalUsers }), "registered")
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, searches, "  ", users))
	sb.WriteString("\n\n")

	for i, item := range l.items {
		cursor := "  "
		style := styles.MutedStyle
		if i == l.cursor {
			cursor = styles.KeyStyle.Render("> ")
			style = styles.ValueStyle
		}
		sb.WriteString(cursor + style.Render(item.label) + "\n")
	}

	sb.WriteString(styles.Help.Render("↑↓ navigate · enter select"))
	return sb.String()
}

// statValue renders one counter, em-dash placeholder when stats are absent
func (l *Landing) statValue(pick func(*client.PublicStats) int) string {
	if l.stats == nil {
		return "—"
	}
	return fmt.Sprintf("%d", pick(l.stats))
}
