// ABOUTME: Admin console with user, deposit, and password-reset queues
// ABOUTME: Uses a separate session store so the admin token never mixes with the user one

package admin

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/gobiz/gobiz-cli/internal/client"
	"github.com/gobiz/gobiz-cli/internal/session"
	"github.com/gobiz/gobiz-cli/internal/tui/icons"
	"github.com/gobiz/gobiz-cli/internal/tui/styles"
	"github.com/gobiz/gobiz-cli/internal/tui/widgets"
)

// tab identifies the active queue
type tab int

const (
	tabUsers tab = iota
	tabDeposits
	tabResets
)

var tabNames = []string{"Users", "Deposits", "Password resets"}

// loginMsg carries the admin login outcome
type loginMsg struct {
	seq   int
	token string
	err   error
}

// usersMsg carries the user listing
type usersMsg struct {
	seq   int
	users []client.AdminUser
	err   error
}

// depositsMsg carries the pending deposit queue
type depositsMsg struct {
	seq      int
	deposits []client.PendingDeposit
	err      error
}

// resetsMsg carries the pending password-reset queue
type resetsMsg struct {
	seq    int
	resets []client.PasswordReset
	err    error
}

// actionMsg carries the outcome of a mutation; the active tab refetches
type actionMsg struct {
	seq int
	err error
}

// Admin is the console screen
type Admin struct {
	api  *client.Client
	sess *session.Store

	tab    tab
	cursor int
	seq    int

	// Login form, shown until the admin session has a token
	email    textinput.Model
	password textinput.Model
	focus    int

	users    []client.AdminUser
	deposits []client.PendingDeposit
	resets   []client.PasswordReset

	// Credit adjustment form for the selected user
	adjustForm   *huh.Form
	adjustAmount string
	adjustReason string
	adjustUserID string

	loading bool
	errMsg  string
	info    string
}

// New creates the console. The session store here is the admin one
// (admin.json), not the regular user session.
func New(api *client.Client, sess *session.Store) *Admin {
	email := textinput.New()
	email.Placeholder = "admin email"
	email.CharLimit = 128
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword

	return &Admin{api: api, sess: sess, email: email, password: password}
}

// Init refetches the active tab when already logged in
func (a *Admin) Init() tea.Cmd {
	if a.sess.LoggedIn() {
		return a.fetchTab()
	}
	return textinput.Blink
}

// CapturesEsc reports whether esc should stay inside this screen; the
// credit adjustment form uses it to close without leaving the console.
func (a *Admin) CapturesEsc() bool {
	return a.adjustForm != nil
}

// Update implements tea.Model
func (a *Admin) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !a.sess.LoggedIn() {
		return a.updateLogin(msg)
	}
	if a.adjustForm != nil {
		return a.updateAdjust(msg)
	}

	switch msg := msg.(type) {
	case usersMsg:
		if msg.seq != a.seq {
			return a, nil
		}
		a.loading = false
		if msg.err != nil {
			a.errMsg = msg.err.Error()
			return a, nil
		}
		a.errMsg = ""
		a.users = msg.users
		a.clampCursor()
		return a, nil

	case depositsMsg:
		if msg.seq != a.seq {
			return a, nil
		}
		a.loading = false
		if msg.err != nil {
			a.errMsg = msg.err.Error()
			return a, nil
		}
		a.errMsg = ""
		a.deposits = msg.deposits
		a.clampCursor()
		return a, nil

	case resetsMsg:
		if msg.seq != a.seq {
			return a, nil
		}
		a.loading = false
		if msg.err != nil {
			a.errMsg = msg.err.Error()
			return a, nil
		}
		a.errMsg = ""
		a.resets = msg.resets
		a.clampCursor()
		return a, nil

	case actionMsg:
		if msg.seq != a.seq {
			return a, nil
		}
		if msg.err != nil {
			a.loading = false
			a.errMsg = msg.err.Error()
			return a, nil
		}
		return a, a.fetchTab()

	case tea.KeyMsg:
		return a.updateKeys(msg)
	}

	return a, nil
}

// updateLogin drives the admin credential form
func (a *Admin) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginMsg:
		if msg.seq != a.seq {
			return a, nil
		}
		a.loading = false
		if msg.err != nil {
			a.errMsg = adminErrorMessage(msg.err)
			return a, nil
		}
		a.errMsg = ""
		if err := a.sess.SetToken(msg.token); err != nil {
			a.errMsg = err.Error()
			return a, nil
		}
		return a, a.fetchTab()

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down", "shift+tab", "up":
			a.focus = 1 - a.focus
			if a.focus == 0 {
				a.email.Focus()
				a.password.Blur()
			} else {
				a.email.Blur()
				a.password.Focus()
			}
			return a, nil
		case "enter":
			return a, a.submitLogin()
		}
		var cmd tea.Cmd
		if a.focus == 0 {
			a.email, cmd = a.email.Update(msg)
		} else {
			a.password, cmd = a.password.Update(msg)
		}
		return a, cmd
	}

	return a, nil
}

// updateAdjust drives the credit adjustment huh form
func (a *Admin) updateAdjust(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		a.adjustForm = nil
		return a, nil
	}

	form, cmd := a.adjustForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.adjustForm = f
	}
	if a.adjustForm.State == huh.StateCompleted {
		a.adjustForm = nil
		amt, err := strconv.ParseFloat(strings.TrimSpace(a.adjustAmount), 64)
		if err != nil {
			a.errMsg = "adjustment amount must be numeric"
			return a, nil
		}
		return a, a.mutate(func(ctx context.Context) error {
			_, err := a.api.AdjustCredits(ctx, a.adjustUserID, amt, a.adjustReason)
			return err
		})
	}
	return a, cmd
}

func (a *Admin) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		if a.tab > 0 {
			a.tab--
			a.cursor = 0
			return a, a.fetchTab()
		}
	case "right", "l":
		if a.tab < tabResets {
			a.tab++
			a.cursor = 0
			return a, a.fetchTab()
		}
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < a.tabLen()-1 {
			a.cursor++
		}
	case "r":
		return a, a.fetchTab()
	case "enter", "y":
		return a, a.approveSelected()
	case "x", "n":
		return a, a.rejectSelected()
	case "c":
		if a.tab == tabUsers && a.cursor < len(a.users) {
			a.openAdjustForm(a.users[a.cursor])
			return a, a.adjustForm.Init()
		}
	case "ctrl+l":
		a.sess.Clear()
		a.users, a.deposits, a.resets = nil, nil, nil
		a.errMsg = ""
		return a, nil
	}
	return a, nil
}

func (a *Admin) tabLen() int {
	switch a.tab {
	case tabUsers:
		return len(a.users)
	case tabDeposits:
		return len(a.deposits)
	default:
		return len(a.resets)
	}
}

func (a *Admin) clampCursor() {
	if a.cursor >= a.tabLen() {
		a.cursor = 0
	}
}

func (a *Admin) submitLogin() tea.Cmd {
	if a.loading {
		return nil
	}
	email := strings.TrimSpace(a.email.Value())
	password := a.password.Value()
	if email == "" || password == "" {
		a.errMsg = "email and password are required"
		return nil
	}

	a.loading = true
	a.errMsg = ""
	a.seq++
	seq := a.seq
	return func() tea.Msg {
		resp, err := a.api.AdminLogin(context.Background(), email, password)
		if err != nil {
			return loginMsg{seq: seq, err: err}
		}
		return loginMsg{seq: seq, token: resp.Token}
	}
}

func (a *Admin) fetchTab() tea.Cmd {
	a.loading = true
	a.seq++
	seq := a.seq
	switch a.tab {
	case tabUsers:
		return func() tea.Msg {
			users, err := a.api.ListUsers(context.Background(), "")
			return usersMsg{seq: seq, users: users, err: err}
		}
	case tabDeposits:
		return func() tea.Msg {
			deposits, err := a.api.ListDeposits(context.Background(), "pending")
			return depositsMsg{seq: seq, deposits: deposits, err: err}
		}
	default:
		return func() tea.Msg {
			resets, err := a.api.ListPasswordResets(context.Background())
			return resetsMsg{seq: seq, resets: resets, err: err}
		}
	}
}

// mutate runs a queue action and reports back for a refetch
func (a *Admin) mutate(fn func(context.Context) error) tea.Cmd {
	if a.loading {
		return nil
	}
	a.loading = true
	a.seq++
	seq := a.seq
	return func() tea.Msg {
		return actionMsg{seq: seq, err: fn(context.Background())}
	}
}

// approveSelected activates a user, approves a deposit, or resolves a reset
func (a *Admin) approveSelected() tea.Cmd {
	switch a.tab {
	case tabUsers:
		if a.cursor >= len(a.users) {
			return nil
		}
		u := a.users[a.cursor]
		if u.Status == "active" {
			return a.mutate(func(ctx context.Context) error {
				return a.api.DeactivateUser(ctx, u.ID)
			})
		}
		return a.mutate(func(ctx context.Context) error {
			return a.api.ActivateUser(ctx, u.ID)
		})
	case tabDeposits:
		if a.cursor >= len(a.deposits) {
			return nil
		}
		id := a.deposits[a.cursor].ID
		return a.mutate(func(ctx context.Context) error {
			return a.api.ApproveDeposit(ctx, id)
		})
	default:
		if a.cursor >= len(a.resets) {
			return nil
		}
		id := a.resets[a.cursor].ID
		return a.mutate(func(ctx context.Context) error {
			return a.api.ResolvePasswordReset(ctx, id)
		})
	}
}

// rejectSelected rejects the selected deposit or reset request
func (a *Admin) rejectSelected() tea.Cmd {
	switch a.tab {
	case tabDeposits:
		if a.cursor >= len(a.deposits) {
			return nil
		}
		id := a.deposits[a.cursor].ID
		return a.mutate(func(ctx context.Context) error {
			return a.api.RejectDeposit(ctx, id, "rejected by admin")
		})
	case tabResets:
		if a.cursor >= len(a.resets) {
			return nil
		}
		id := a.resets[a.cursor].ID
		return a.mutate(func(ctx context.Context) error {
			return a.api.RejectPasswordReset(ctx, id)
		})
	}
	return nil
}

func (a *Admin) openAdjustForm(u client.AdminUser) {
	a.adjustUserID = u.ID
	a.adjustAmount = ""
	a.adjustReason = ""
	a.adjustForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Adjustment for "+u.Email).
				Description("Positive credits, negative debits").
				Value(&a.adjustAmount),
			huh.NewInput().
				Title("Reason").
				Description("Recorded in the audit trail").
				Value(&a.adjustReason).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("a reason is required")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeBase())
}

// adminErrorMessage prefers the backend's wording
func adminErrorMessage(err error) string {
	msg := err.Error()
	if strings.HasPrefix(msg, "backend error: ") {
		return strings.TrimPrefix(msg, "backend error: ")
	}
	return msg
}

// View implements tea.Model
func (a *Admin) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Admin.String() + " Admin console"))
	sb.WriteString("\n")

	if !a.sess.LoggedIn() {
		return sb.String() + a.viewLogin()
	}
	if a.adjustForm != nil {
		return sb.String() + a.adjustForm.View()
	}

	for i, name := range tabNames {
		if tab(i) == a.tab {
			sb.WriteString(styles.ActiveTab.Render(name))
		} else {
			sb.WriteString(styles.InactiveTab.Render(name))
		}
		sb.WriteString(" ")
	}
	sb.WriteString("\n\n")

	switch {
	case a.loading:
		sb.WriteString(styles.MutedStyle.Render("Loading..."))
	case a.errMsg != "":
		sb.WriteString(styles.ErrorStyle.Render(icons.Critical.String() + " " + a.errMsg))
	default:
		sb.WriteString(a.viewTab())
	}

	sb.WriteString(styles.Help.Render(a.helpLine()))
	return sb.String()
}

func (a *Admin) viewLogin() string {
	var sb strings.Builder
	sb.WriteString(styles.Subtitle.Render("Administrator sign in"))
	sb.WriteString("\n")
	sb.WriteString(a.email.View() + "\n")
	sb.WriteString(a.password.View() + "\n")
	if a.loading {
		sb.WriteString("\n" + styles.MutedStyle.Render("Signing in..."))
	}
	if a.errMsg != "" {
		sb.WriteString("\n" + styles.ErrorStyle.Render(icons.Critical.String()+" "+a.errMsg))
	}
	sb.WriteString(styles.Help.Render("enter sign in · tab switch field"))
	return sb.String()
}

func (a *Admin) viewTab() string {
	var sb strings.Builder
	switch a.tab {
	case tabUsers:
		if len(a.users) == 0 {
			return styles.MutedStyle.Render("No users.")
		}
		for i, u := range a.users {
			line := fmt.Sprintf("%s  %-28s %s  %s  %d searches",
				widgets.AccountBadge(u.Status), u.Email,
				widgets.Rupees(u.Credits), u.Role, u.SearchCount)
			sb.WriteString(a.cursorLine(i, line))
		}
	case tabDeposits:
		if len(a.deposits) == 0 {
			return styles.MutedStyle.Render("No pending deposits.")
		}
		for i, d := range a.deposits {
			line := fmt.Sprintf("%s  %s  UTR %s  %s",
				d.UserEmail, widgets.Rupees(d.Amount), d.UTR, d.CreatedAt)
			sb.WriteString(a.cursorLine(i, line))
		}
	default:
		if len(a.resets) == 0 {
			return styles.MutedStyle.Render("No pending password resets.")
		}
		for i, r := range a.resets {
			line := fmt.Sprintf("%s  requested %s", r.UserEmail, r.CreatedAt)
			sb.WriteString(a.cursorLine(i, line))
		}
	}
	return sb.String()
}

func (a *Admin) cursorLine(i int, line string) string {
	if i == a.cursor {
		return styles.KeyStyle.Render("> ") + styles.ValueStyle.Render(line) + "\n"
	}
	return "  " + styles.MutedStyle.Render(line) + "\n"
}

func (a *Admin) helpLine() string {
	switch a.tab {
	case tabUsers:
		return "←→ tabs · ↑↓ select · enter toggle active · c adjust credits · r refresh · ctrl+l sign out"
	case tabDeposits:
		return "←→ tabs · ↑↓ select · y approve · x reject · r refresh"
	default:
		return "←→ tabs · ↑↓ select · y mark resolved · x reject · r refresh"
	}
}
