// ABOUTME: Account screen with profile card, API key, and payment history
// ABOUTME: Fires independent fetches on mount; responses land in any order

package account

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gobiz/gobiz-cli/internal/client"
	"github.com/gobiz/gobiz-cli/internal/session"
	"github.com/gobiz/gobiz-cli/internal/tui/icons"
	"github.com/gobiz/gobiz-cli/internal/tui/styles"
	"github.com/gobiz/gobiz-cli/internal/tui/widgets"
)

// profileMsg carries the profile refresh result
type profileMsg struct {
	seq  int
	user *client.User
	err  error
}

// paymentsMsg carries the payment history result
type paymentsMsg struct {
	seq      int
	payments []client.Payment
	err      error
}

// keyMsg carries the API key rotation result
type keyMsg struct {
	seq int
	key string
	err error
}

// Account is the profile/overview screen
type Account struct {
	api  *client.Client
	sess *session.Store

	payments    []client.Payment
	paymentsErr string
	profileErr  string
	keyVisible  bool
	loading     bool
	seq         int
}

// New creates the account screen
func New(api *client.Client, sess *session.Store) *Account {
	return &Account{api: api, sess: sess}
}

// Init fires the profile and payment fetches independently; neither waits
// for the other.
func (a *Account) Init() tea.Cmd {
	a.loading = true
	a.seq++
	seq := a.seq

	profile := func() tea.Msg {
		user, err := a.api.Profile(context.Background())
		return profileMsg{seq: seq, user: user, err: err}
	}
	payments := func() tea.Msg {
		payments, err := a.api.PaymentHistory(context.Background())
		return paymentsMsg{seq: seq, payments: payments, err: err}
	}
	return tea.Batch(profile, payments)
}

// Update implements tea.Model
func (a *Account) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case profileMsg:
		if msg.seq != a.seq {
			return a, nil
		}
		a.loading = false
		if msg.err != nil {
			a.profileErr = msg.err.Error()
			return a, nil
		}
		a.profileErr = ""
		a.sess.SetProfile(msg.user)
		return a, nil

	case paymentsMsg:
		if msg.seq != a.seq {
			return a, nil
		}
		if msg.err != nil {
			a.paymentsErr = msg.err.Error()
			return a, nil
		}
		a.paymentsErr = ""
		a.payments = msg.payments
		return a, nil

	case keyMsg:
		if msg.seq != a.seq {
			return a, nil
		}
		a.loading = false
		if msg.err != nil {
			a.profileErr = msg.err.Error()
			return a, nil
		}
		if user := a.sess.Profile(); user != nil {
			updated := *user
			updated.APIKey = msg.key
			a.sess.SetProfile(&updated)
		}
		a.keyVisible = true
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return a, a.Init()
		case "g":
			return a, a.rotateKey()
		case "v":
			a.keyVisible = !a.keyVisible
			return a, nil
		}
	}

	return a, nil
}

func (a *Account) rotateKey() tea.Cmd {
	if a.loading {
		return nil
	}
	a.loading = true
	a.seq++
	seq := a.seq
	return func() tea.Msg {
		key, err := a.api.GenerateAPIKey(context.Background())
		return keyMsg{seq: seq, key: key, err: err}
	}
}

// View implements tea.Model
func (a *Account) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.User.String() + " My account"))
	sb.WriteString("\n")

	user := a.sess.Profile()
	if user == nil {
		if a.profileErr != "" {
			sb.WriteString(styles.ErrorStyle.Render(icons.Critical.String() + " " + a.profileErr))
		} else {
			sb.WriteString(styles.MutedStyle.Render("Loading profile..."))
		}
		return sb.String()
	}

	var card strings.Builder
	card.WriteString(styles.ValueStyle.Render(user.Name) + "  " + widgets.AccountBadge(user.Status) + "\n")
	card.WriteString(styles.MutedStyle.Render(user.Email) + "\n\n")
	card.WriteString(styles.MutedStyle.Render("Balance          "))
	card.WriteString(styles.ValueStyle.Render(widgets.Rupees(user.Credits)) + "\n")
	card.WriteString(styles.MutedStyle.Render("Lifetime searches "))
	card.WriteString(styles.ValueStyle.Render(fmt.Sprintf("%d", user.SearchCount)) + "\n")
	card.WriteString(styles.MutedStyle.Render("Member since     "))
	card.WriteString(styles.ValueStyle.Render(user.CreatedAt) + "\n\n")
	card.WriteString(styles.MutedStyle.Render("API key          "))
	card.WriteString(styles.ValueStyle.Render(a.renderKey(user.APIKey)))
	sb.WriteString(styles.ActivePanel.Render(card.String()))
	sb.WriteString("\n\n")

	sb.WriteString(styles.Subtitle.Render("Payments"))
	sb.WriteString("\n")
	switch {
	case a.paymentsErr != "":
		sb.WriteString(styles.ErrorStyle.Render(a.paymentsErr))
	case len(a.payments) == 0:
		sb.WriteString(styles.MutedStyle.Render("No payments yet."))
	default:
		for _, p := range a.payments {
			sb.WriteString(fmt.Sprintf("%s  %s  %s  %s\n",
				widgets.PaymentBadge(p.Status),
				styles.ValueStyle.Render(widgets.Rupees(p.Amount)),
				styles.MutedStyle.Render(p.Method),
				styles.MutedStyle.Render(p.CreatedAt)))
		}
	}

	if a.profileErr != "" {
		sb.WriteString("\n" + styles.ErrorStyle.Render(a.profileErr))
	}

	sb.WriteString(styles.Help.Render("r refresh · g rotate API key · v show/hide key"))
	return sb.String()
}

// renderKey masks the API key unless toggled visible
func (a *Account) renderKey(key string) string {
	if key == "" {
		return "none (press g to generate)"
	}
	if a.keyVisible {
		return key
	}
	if len(key) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
