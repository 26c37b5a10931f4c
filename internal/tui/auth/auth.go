// ABOUTME: Login and register screen backed by the session store
// ABOUTME: Validates locally, stores the token, then fetches the profile

package auth

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gobiz/gobiz-cli/internal/client"
	"github.com/gobiz/gobiz-cli/internal/session"
	"github.com/gobiz/gobiz-cli/internal/tui/icons"
	"github.com/gobiz/gobiz-cli/internal/tui/styles"
)

// Mode selects login or register behavior
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
)

// LoggedInMsg tells the root shell a session was established; the shell
// navigates to the search screen.
type LoggedInMsg struct {
	User *client.User
}

// resultMsg carries the submit outcome back onto the event loop
type resultMsg struct {
	seq  int
	user *client.User
	err  error
}

// resetSentMsg carries the password-reset acknowledgement
type resetSentMsg struct {
	seq     int
	message string
	err     error
}

// Auth is the login/register screen
type Auth struct {
	api  *client.Client
	sess *session.Store
	mode Mode

	name     textinput.Model
	email    textinput.Model
	password textinput.Model
	focus    int

	loading bool
	errMsg  string
	info    string
	seq     int
}

// New creates the auth screen. param "register" opens in register mode.
func New(api *client.Client, sess *session.Store, param string) *Auth {
	name := textinput.New()
	name.Placeholder = "Full name"
	name.CharLimit = 64

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 128

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword

	mode := ModeLogin
	if param == "register" {
		mode = ModeRegister
	}

	a := &Auth{api: api, sess: sess, mode: mode, name: name, email: email, password: password}
	a.setFocus(a.firstField())
	return a
}

// Init implements tea.Model
func (a *Auth) Init() tea.Cmd {
	return textinput.Blink
}

func (a *Auth) firstField() int {
	if a.mode == ModeRegister {
		return 0
	}
	return 1
}

func (a *Auth) fieldCount() int { return 3 }

func (a *Auth) setFocus(i int) {
	a.focus = i
	inputs := []*textinput.Model{&a.name, &a.email, &a.password}
	for idx, in := range inputs {
		if idx == i {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

// Update implements tea.Model
func (a *Auth) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			next := a.focus + 1
			if next >= a.fieldCount() {
				next = a.firstField()
			}
			a.setFocus(next)
			return a, nil
		case "shift+tab", "up":
			prev := a.focus - 1
			if prev < a.firstField() {
				prev = a.fieldCount() - 1
			}
			a.setFocus(prev)
			return a, nil
		case "ctrl+r":
			a.toggleMode()
			return a, nil
		case "ctrl+f":
			return a, a.submitPasswordReset()
		case "enter":
			return a, a.submit()
		}

		// Feed the keystroke to the focused input.
		var cmd tea.Cmd
		switch a.focus {
		case 0:
			a.name, cmd = a.name.Update(msg)
		case 1:
			a.email, cmd = a.email.Update(msg)
		case 2:
			a.password, cmd = a.password.Update(msg)
		}
		return a, cmd

	case resultMsg:
		if msg.seq != a.seq {
			return a, nil // stale response from a reset form
		}
		a.loading = false
		if msg.err != nil {
			a.errMsg = authErrorMessage(msg.err)
			return a, nil
		}
		a.errMsg = ""
		return a, func() tea.Msg { return LoggedInMsg{User: msg.user} }

	case resetSentMsg:
		if msg.seq != a.seq {
			return a, nil
		}
		a.loading = false
		if msg.err != nil {
			a.errMsg = authErrorMessage(msg.err)
			return a, nil
		}
		a.errMsg = ""
		a.info = msg.message
		return a, nil
	}

	return a, nil
}

func (a *Auth) toggleMode() {
	if a.mode == ModeLogin {
		a.mode = ModeRegister
	} else {
		a.mode = ModeLogin
	}
	a.errMsg = ""
	a.info = ""
	a.setFocus(a.firstField())
}

// validate runs the client-side checks that block submission before any
// network call.
func (a *Auth) validate() string {
	if a.mode == ModeRegister && strings.TrimSpace(a.name.Value()) == "" {
		return "name is required"
	}
	email := strings.TrimSpace(a.email.Value())
	if email == "" {
		return "email is required"
	}
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return "enter a valid email address"
	}
	if len(a.password.Value()) < 6 {
		return "password must be at least 6 characters"
	}
	return ""
}

// submit performs login or registration followed by a profile fetch. The
// token is written to the session before the profile call so the client
// picks it up; the profile is written back afterwards.
func (a *Auth) submit() tea.Cmd {
	if a.loading {
		return nil
	}
	if msg := a.validate(); msg != "" {
		a.errMsg = msg
		return nil
	}

	a.loading = true
	a.errMsg = ""
	a.info = ""
	a.seq++
	seq := a.seq

	mode := a.mode
	name := strings.TrimSpace(a.name.Value())
	email := strings.TrimSpace(a.email.Value())
	password := a.password.Value()

	return func() tea.Msg {
		ctx := context.Background()

		var resp *client.LoginResponse
		var err error
		if mode == ModeRegister {
			resp, err = a.api.Register(ctx, &client.RegisterRequest{Name: name, Email: email, Password: password})
		} else {
			resp, err = a.api.Login(ctx, email, password)
		}
		if err != nil {
			return resultMsg{seq: seq, err: err}
		}

		if err := a.sess.SetToken(resp.Token); err != nil {
			return resultMsg{seq: seq, err: err}
		}

		user, err := a.api.Profile(ctx)
		if err != nil {
			// Leave the token in place; the shell's mount-time refresh
			// decides whether it is actually invalid.
			return resultMsg{seq: seq, err: err}
		}
		if err := a.sess.SetProfile(user); err != nil {
			return resultMsg{seq: seq, err: err}
		}
		return resultMsg{seq: seq, user: user}
	}
}

// submitPasswordReset files a manual reset request resolved by an admin
func (a *Auth) submitPasswordReset() tea.Cmd {
	email := strings.TrimSpace(a.email.Value())
	if email == "" {
		a.errMsg = "enter your email first, then press ctrl+f"
		return nil
	}

	a.loading = true
	a.seq++
	seq := a.seq

	return func() tea.Msg {
		msg, err := a.api.RequestPasswordReset(context.Background(), email)
		return resetSentMsg{seq: seq, message: msg, err: err}
	}
}

// authErrorMessage prefers the backend's wording, generic fallback otherwise
func authErrorMessage(err error) string {
	msg := err.Error()
	if strings.HasPrefix(msg, "backend error: ") {
		return strings.TrimPrefix(msg, "backend error: ")
	}
	if strings.Contains(msg, "cannot connect") {
		return msg
	}
	return "authentication failed"
}

// View implements tea.Model
func (a *Auth) View() string {
	var sb strings.Builder

	title := icons.User.String() + " Log in"
	if a.mode == ModeRegister {
		title = icons.User.String() + " Create account"
	}
	sb.WriteString(styles.Title.Render(title))
	sb.WriteString("\n")

	if a.mode == ModeRegister {
		sb.WriteString(a.renderField("Name", a.name.View(), 0))
	}
	sb.WriteString(a.renderField("Email", a.email.View(), 1))
	sb.WriteString(a.renderField("Password", a.password.View(), 2))

	if a.loading {
		sb.WriteString("\n" + styles.MutedStyle.Render("Working..."))
	}
	if a.errMsg != "" {
		sb.WriteString("\n" + styles.ErrorStyle.Render(icons.Critical.String()+" "+a.errMsg))
	}
	if a.info != "" {
		sb.WriteString("\n" + styles.SuccessStyle.Render(icons.CheckOK.String()+" "+a.info))
	}

	switchHint := "ctrl+r register instead"
	if a.mode == ModeRegister {
		switchHint = "ctrl+r log in instead"
	}
	sb.WriteString(styles.Help.Render("enter submit · tab next field · " + switchHint + " · ctrl+f forgot password"))
	return sb.String()
}

func (a *Auth) renderField(label, input string, idx int) string {
	style := styles.MutedStyle
	if a.focus == idx {
		style = styles.KeyStyle
	}
	return style.Render(label) + "\n" + input + "\n"
}
