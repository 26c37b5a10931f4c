// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Owns the navigation store and routes messages to the active screen

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gobiz/gobiz-cli/internal/client"
	"github.com/gobiz/gobiz-cli/internal/debuglog"
	"github.com/gobiz/gobiz-cli/internal/nav"
	"github.com/gobiz/gobiz-cli/internal/session"
	"github.com/gobiz/gobiz-cli/internal/tui/account"
	"github.com/gobiz/gobiz-cli/internal/tui/admin"
	"github.com/gobiz/gobiz-cli/internal/tui/auth"
	"github.com/gobiz/gobiz-cli/internal/tui/chat"
	"github.com/gobiz/gobiz-cli/internal/tui/history"
	"github.com/gobiz/gobiz-cli/internal/tui/icons"
	"github.com/gobiz/gobiz-cli/internal/tui/landing"
	"github.com/gobiz/gobiz-cli/internal/tui/recent"
	"github.com/gobiz/gobiz-cli/internal/tui/recharge"
	"github.com/gobiz/gobiz-cli/internal/tui/route"
	"github.com/gobiz/gobiz-cli/internal/tui/search"
	"github.com/gobiz/gobiz-cli/internal/tui/static"
	"github.com/gobiz/gobiz-cli/internal/tui/styles"
	"github.com/gobiz/gobiz-cli/internal/tui/toast"
	"github.com/gobiz/gobiz-cli/internal/tui/widgets"
)

// navFileName is where the last visited page is persisted
const navFileName = "nav.json"

// Layout constants
const (
	minTerminalWidth = 80
)

// profileRefreshedMsg is sent when the mount-time or post-search profile
// refresh completes. mount marks the startup fetch, whose failure ends
// the session.
type profileRefreshedMsg struct {
	user  *client.User
	err   error
	mount bool
}

// escCapturer lets a screen consume esc for its own sub-flows instead of
// triggering shell-level back navigation
type escCapturer interface {
	CapturesEsc() bool
}

// App is the root model for the TUI
type App struct {
	api       *client.Client
	sess      *session.Store
	adminSess *session.Store
	nav       *nav.Store
	configDir string

	screen     tea.Model
	chatScreen *chat.Chat
	toast      toast.Toast

	width      int
	height     int
	lastUpdate time.Time
}

// New creates the root application positioned at the nav store's current
// page. The admin session is a separate store so the admin token never
// mixes with the regular one.
func New(api *client.Client, sess, adminSess *session.Store, navStore *nav.Store, configDir string) *App {
	a := &App{
		api:       api,
		sess:      sess,
		adminSess: adminSess,
		nav:       navStore,
		configDir: configDir,
	}
	a.screen = a.buildScreen(a.nav.Current(), a.nav.Param())
	return a
}

// Init implements tea.Model. When a token is present exactly one profile
// refresh is fired; its failure decides whether the session is still good.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.screen.Init()}
	if a.sess.Token() != "" {
		cmds = append(cmds, a.refreshProfile(true))
	}
	return tea.Batch(cmds...)
}

// refreshProfile fetches the profile with the stored token
func (a *App) refreshProfile(mount bool) tea.Cmd {
	return func() tea.Msg {
		user, err := a.api.Profile(context.Background())
		return profileRefreshedMsg{user: user, err: err, mount: mount}
	}
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a.forward(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "ctrl+t":
			styles.Apply(styles.Current().Next())
			return a, nil
		case "esc":
			if cap, ok := a.screen.(escCapturer); ok && cap.CapturesEsc() {
				return a.forward(msg)
			}
			if a.nav.Back() {
				return a, a.mount()
			}
			return a, nil
		case "alt+right":
			if a.nav.Forward() {
				return a, a.mount()
			}
			return a, nil
		}
		return a.forward(msg)

	case route.Msg:
		return a, a.navigate(msg.Page, msg.Param)

	case auth.LoggedInMsg:
		cmd := a.toast.Show("Welcome back, "+msg.User.Name, toast.LevelSuccess)
		return a, tea.Batch(cmd, a.navigate(nav.PageSearch, ""))

	case search.CompletedMsg:
		// A search was billed; only the backend knows the new balance.
		return a, a.refreshProfile(false)

	case profileRefreshedMsg:
		if msg.err != nil {
			// The mount-time refresh decides whether the restored session
			// is still good: any failure ends it. Later refreshes only end
			// it on a definite 401.
			if msg.mount || errors.Is(msg.err, client.ErrUnauthorized) {
				if err := a.sess.Clear(); err != nil {
					debuglog.Error("session clear", err)
				}
				text := "Could not verify your session, please log in again"
				if errors.Is(msg.err, client.ErrUnauthorized) {
					text = "Session expired, please log in again"
				}
				cmd := a.toast.Show(text, toast.LevelError)
				return a, tea.Batch(cmd, a.navigate(nav.PageAuth, ""))
			}
			// Transient post-search failure: keep the cached profile.
			debuglog.Error("profile refresh", msg.err)
			return a, nil
		}
		if err := a.sess.SetProfile(msg.user); err != nil {
			debuglog.Error("session write", err)
		}
		a.lastUpdate = time.Now()
		return a, nil

	case toast.ExpiredMsg:
		a.toast.Update(msg)
		return a, nil
	}

	return a.forward(msg)
}

// forward hands a message to the active screen
func (a *App) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.screen == nil {
		return a, nil
	}
	model, cmd := a.screen.Update(msg)
	a.screen = model
	return a, cmd
}

// navigate moves to page, gates login-only pages, persists the position,
// and mounts the new screen.
func (a *App) navigate(page nav.Page, param string) tea.Cmd {
	if requiresLogin(page) && !a.sess.LoggedIn() {
		page, param = nav.PageAuth, ""
	}
	a.nav.Navigate(page, param)
	return a.mount()
}

// requiresLogin lists the pages gated behind a user session
func requiresLogin(page nav.Page) bool {
	switch page {
	case nav.PageSearch, nav.PageHistory, nav.PageAccount, nav.PageRecharge, nav.PageChat:
		return true
	}
	return false
}

// mount builds and initializes the screen for the current nav position.
// Leaving the chat screen stops its poll loop so scheduled ticks die.
func (a *App) mount() tea.Cmd {
	if a.chatScreen != nil && a.nav.Current() != nav.PageChat {
		a.chatScreen.Stop()
		a.chatScreen = nil
	}
	_ = a.nav.Save(a.configDir, navFileName)
	debuglog.Log("mount %s", a.nav.Current())
	a.screen = a.buildScreen(a.nav.Current(), a.nav.Param())
	return a.screen.Init()
}

// buildScreen constructs the child model for a page
func (a *App) buildScreen(page nav.Page, param string) tea.Model {
	switch page {
	case nav.PageLanding:
		return landing.New(a.api, a.sess.LoggedIn())
	case nav.PageAuth:
		return auth.New(a.api, a.sess, param)
	case nav.PageSearch:
		return search.New(a.api, a.sess, recent.New(a.configDir))
	case nav.PageHistory:
		return history.New(a.api)
	case nav.PageAccount:
		return account.New(a.api, a.sess)
	case nav.PageRecharge:
		return recharge.New(a.api)
	case nav.PageChat:
		c := chat.New(a.api)
		a.chatScreen = c
		return c
	case nav.PageAdmin:
		adminClient := client.New(a.api.BaseURL(), client.WithCredentials(a.adminSess))
		return admin.New(adminClient, a.adminSess)
	default:
		return static.New(page)
	}
}

// View implements tea.Model
func (a *App) View() string {
	var sb strings.Builder
	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	if a.screen != nil {
		sb.WriteString(a.screen.View())
	}
	if a.toast.Visible() {
		sb.WriteString("\n")
		sb.WriteString(a.toast.View())
	}
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())
	return sb.String()
}

// renderHeader creates the header bar with branding and session context
func (a *App) renderHeader() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := fmt.Sprintf(" %s %s", icons.App.String(), titleStyle.Render("Go-Biz"))

	rightText := ""
	if user := a.sess.Profile(); user != nil {
		rightText = contextStyle.Render(user.Email+"  "+widgets.Rupees(user.Credits)) + " "
	}

	leftWidth := lipgloss.Width(leftText)
	rightWidth := lipgloss.Width(rightText)
	fillWidth := width - 4 - leftWidth - rightWidth
	if fillWidth < 0 {
		fillWidth = 0
	}

	header := "╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮"
	return borderStyle.Render(header)
}

// renderFooter creates the footer with shortcuts and the refresh stamp
func (a *App) renderFooter() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	shortcuts := []string{"esc Back", "ctrl+t Theme", "ctrl+c Quit"}
	if a.nav.Depth() == 0 {
		shortcuts = shortcuts[1:]
	}

	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		styledShortcuts = append(styledShortcuts, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
	}

	leftText := " " + strings.Join(styledShortcuts, "  ")
	leftPlainText := " " + strings.Join(shortcuts, "  ")

	rightText := ""
	rightPlainText := ""
	if !a.lastUpdate.IsZero() && a.sess.LoggedIn() {
		elapsed := formatTimeSince(a.lastUpdate)
		rightText = statusStyle.Render("Balance updated "+elapsed) + " "
		rightPlainText = "Balance updated " + elapsed + " "
	}

	leftWidth := lipgloss.Width(leftPlainText)
	rightWidth := lipgloss.Width(rightPlainText)
	fillWidth := width - 4 - leftWidth - rightWidth
	if fillWidth < 0 {
		fillWidth = 0
	}

	footer := "╰─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╯"
	return borderStyle.Render(footer)
}

// formatTimeSince formats a duration since t in human-readable form
func formatTimeSince(t time.Time) string {
	d := time.Since(t)

	if d < time.Minute {
		secs := int(d.Seconds())
		if secs < 5 {
			return "just now"
		}
		return fmt.Sprintf("%ds ago", secs)
	}

	if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	}

	hours := int(d.Hours())
	if hours == 1 {
		return "1h ago"
	}
	return fmt.Sprintf("%dh ago", hours)
}

// Run starts the TUI, restoring the last visited page from disk
func Run(api *client.Client, sess, adminSess *session.Store, configDir string) error {
	navStore := nav.New(nav.PageLanding)
	if err := navStore.Load(configDir, navFileName); err != nil {
		return err
	}
	if requiresLogin(navStore.Current()) && !sess.LoggedIn() {
		navStore = nav.New(nav.PageAuth)
	}

	app := New(api, sess, adminSess, navStore, configDir)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
