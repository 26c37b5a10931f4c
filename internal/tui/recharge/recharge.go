// ABOUTME: Wallet recharge screen with manual UTR submission
// ABOUTME: Also drives the redirect-based gateway flow via a huh form

package recharge

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/gobiz/gobiz-cli/internal/client"
	"github.com/gobiz/gobiz-cli/internal/tui/icons"
	"github.com/gobiz/gobiz-cli/internal/tui/styles"
	"github.com/gobiz/gobiz-cli/internal/tui/widgets"
)

// MinDeposit is the smallest accepted manual deposit amount
const MinDeposit = 50

// submittedMsg carries the manual deposit outcome
type submittedMsg struct {
	seq  int
	resp *client.DepositResponse
	err  error
}

// initiatedMsg carries the gateway order handle
type initiatedMsg struct {
	seq   int
	order *client.GatewayOrder
	err   error
}

// verifiedMsg carries the gateway verification outcome
type verifiedMsg struct {
	seq    int
	status *client.GatewayStatus
	err    error
}

// mode selects which flow is active
type mode int

const (
	modeManual mode = iota
	modeGateway
)

// gateway amount presets offered by the huh select
var gatewayAmounts = []huh.Option[string]{
	huh.NewOption("₹100", "100"),
	huh.NewOption("₹500", "500"),
	huh.NewOption("₹1000", "1000"),
	huh.NewOption("₹5000", "5000"),
}

// Recharge is the wallet top-up screen
type Recharge struct {
	api *client.Client

	mode mode

	// Manual flow
	amount     textinput.Model
	utr        textinput.Model
	screenshot textinput.Model
	focus      int

	// Gateway flow
	form          *huh.Form
	gatewayAmount string
	order         *client.GatewayOrder
	gatewayStatus *client.GatewayStatus

	loading bool
	errMsg  string
	success string
	seq     int
}

// New creates the recharge screen in manual mode
func New(api *client.Client) *Recharge {
	amount := textinput.New()
	amount.Placeholder = "amount (min 50)"
	amount.CharLimit = 8
	amount.Focus()

	utr := textinput.New()
	utr.Placeholder = "bank UTR / transaction reference"
	utr.CharLimit = 64

	screenshot := textinput.New()
	screenshot.Placeholder = "screenshot URL (optional)"
	screenshot.CharLimit = 256

	return &Recharge{api: api, amount: amount, utr: utr, screenshot: screenshot}
}

// Init implements tea.Model
func (r *Recharge) Init() tea.Cmd {
	return textinput.Blink
}

// CapturesEsc reports whether esc should stay inside this screen; the
// gateway sub-flow uses it to fall back to the manual form.
func (r *Recharge) CapturesEsc() bool {
	return r.mode == modeGateway
}

// FormValues exposes the manual form fields for tests and the success-path
// clearing contract.
func (r *Recharge) FormValues() (amount, utr, screenshot string) {
	return r.amount.Value(), r.utr.Value(), r.screenshot.Value()
}

func (r *Recharge) inputs() []*textinput.Model {
	return []*textinput.Model{&r.amount, &r.utr, &r.screenshot}
}

func (r *Recharge) setFocus(i int) {
	r.focus = i
	for idx, in := range r.inputs() {
		if idx == i {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

// Update implements tea.Model
func (r *Recharge) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if r.mode == modeGateway {
			return r.updateGateway(msg)
		}
		switch msg.String() {
		case "tab", "down":
			r.setFocus((r.focus + 1) % 3)
			return r, nil
		case "shift+tab", "up":
			r.setFocus((r.focus + 2) % 3)
			return r, nil
		case "enter":
			return r, r.submitManual()
		case "ctrl+g":
			return r, r.startGateway()
		}

		var cmd tea.Cmd
		in := r.inputs()[r.focus]
		*in, cmd = in.Update(msg)
		return r, cmd

	case submittedMsg:
		if msg.seq != r.seq {
			return r, nil
		}
		r.loading = false
		if msg.err != nil {
			// Failure preserves the entered values.
			r.errMsg = requestErrorMessage(msg.err)
			return r, nil
		}
		// Success clears the form and shows the server's message.
		r.amount.SetValue("")
		r.utr.SetValue("")
		r.screenshot.SetValue("")
		r.setFocus(0)
		r.errMsg = ""
		r.success = msg.resp.Message
		return r, nil

	case initiatedMsg:
		if msg.seq != r.seq {
			return r, nil
		}
		r.loading = false
		if msg.err != nil {
			r.errMsg = requestErrorMessage(msg.err)
			r.mode = modeManual
			return r, nil
		}
		r.order = msg.order
		return r, nil

	case verifiedMsg:
		if msg.seq != r.seq {
			return r, nil
		}
		r.loading = false
		if msg.err != nil {
			r.errMsg = requestErrorMessage(msg.err)
			return r, nil
		}
		r.gatewayStatus = msg.status
		return r, nil
	}

	if r.mode == modeGateway && r.form != nil {
		return r.updateGateway(msg)
	}
	return r, nil
}

// updateGateway drives the huh amount form and the verify step
func (r *Recharge) updateGateway(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			r.mode = modeManual
			r.form = nil
			r.order = nil
			r.gatewayStatus = nil
			return r, nil
		case "v":
			if r.order != nil {
				return r, r.verifyGateway()
			}
		}
	}

	if r.form != nil && r.order == nil {
		form, cmd := r.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			r.form = f
		}
		if r.form.State == huh.StateCompleted {
			r.form = nil
			return r, r.initiateGateway()
		}
		return r, cmd
	}
	return r, nil
}

// validateManual runs the client-side checks for the manual form
func (r *Recharge) validateManual() string {
	amt, err := strconv.ParseFloat(strings.TrimSpace(r.amount.Value()), 64)
	if err != nil {
		return "enter a numeric amount"
	}
	if amt < MinDeposit {
		return "minimum deposit is ₹50"
	}
	if strings.TrimSpace(r.utr.Value()) == "" {
		return "transaction reference (UTR) is required"
	}
	return ""
}

// submitManual files the deposit for admin approval
func (r *Recharge) submitManual() tea.Cmd {
	if r.loading {
		return nil
	}
	if msg := r.validateManual(); msg != "" {
		r.errMsg = msg
		return nil
	}

	r.loading = true
	r.errMsg = ""
	r.success = ""
	r.seq++
	seq := r.seq

	amt, _ := strconv.ParseFloat(strings.TrimSpace(r.amount.Value()), 64)
	dep := &client.DepositRequest{
		Amount:        amt,
		UTR:           strings.TrimSpace(r.utr.Value()),
		ScreenshotURL: strings.TrimSpace(r.screenshot.Value()),
	}

	return func() tea.Msg {
		resp, err := r.api.SubmitDeposit(context.Background(), dep)
		return submittedMsg{seq: seq, resp: resp, err: err}
	}
}

// startGateway opens the amount preset form
func (r *Recharge) startGateway() tea.Cmd {
	r.mode = modeGateway
	r.order = nil
	r.gatewayStatus = nil
	r.errMsg = ""
	r.success = ""
	r.gatewayAmount = "500"
	r.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Recharge amount").
				Description("The gateway opens in your browser").
				Options(gatewayAmounts...).
				Value(&r.gatewayAmount),
		),
	).WithTheme(huh.ThemeBase())
	return r.form.Init()
}

func (r *Recharge) initiateGateway() tea.Cmd {
	r.loading = true
	r.seq++
	seq := r.seq
	amt, _ := strconv.ParseFloat(r.gatewayAmount, 64)
	return func() tea.Msg {
		order, err := r.api.InitiatePayment(context.Background(), amt)
		return initiatedMsg{seq: seq, order: order, err: err}
	}
}

func (r *Recharge) verifyGateway() tea.Cmd {
	if r.loading {
		return nil
	}
	r.loading = true
	r.seq++
	seq := r.seq
	orderID := r.order.OrderID
	return func() tea.Msg {
		status, err := r.api.VerifyPayment(context.Background(), orderID)
		return verifiedMsg{seq: seq, status: status, err: err}
	}
}

// requestErrorMessage prefers backend wording over transport noise
func requestErrorMessage(err error) string {
	msg := err.Error()
	if strings.HasPrefix(msg, "backend error: ") {
		return strings.TrimPrefix(msg, "backend error: ")
	}
	return msg
}

// View implements tea.Model
func (r *Recharge) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Wallet.String() + " Recharge wallet"))
	sb.WriteString("\n")

	if r.mode == modeGateway {
		return sb.String() + r.viewGateway()
	}

	sb.WriteString(styles.Subtitle.Render("Manual deposit (verified by an admin)"))
	sb.WriteString("\n")
	labels := []string{"Amount", "UTR reference", "Screenshot URL"}
	for i, in := range r.inputs() {
		style := styles.MutedStyle
		if r.focus == i {
			style = styles.KeyStyle
		}
		sb.WriteString(style.Render(labels[i]) + "\n" + in.View() + "\n")
	}

	if r.loading {
		sb.WriteString("\n" + styles.MutedStyle.Render("Submitting..."))
	}
	if r.errMsg != "" {
		sb.WriteString("\n" + styles.ErrorStyle.Render(icons.Critical.String()+" "+r.errMsg))
	}
	if r.success != "" {
		sb.WriteString("\n" + styles.SuccessStyle.Render(icons.CheckOK.String()+" "+r.success))
	}

	sb.WriteString(styles.Help.Render("enter submit · tab next field · ctrl+g pay via gateway"))
	return sb.String()
}

// viewGateway renders the amount form, redirect handle, or final status
func (r *Recharge) viewGateway() string {
	var sb strings.Builder

	switch {
	case r.gatewayStatus != nil:
		s := r.gatewayStatus
		sb.WriteString(widgets.PaymentBadge(s.Status))
		sb.WriteString("  " + styles.ValueStyle.Render(widgets.Rupees(s.Amount)))
		sb.WriteString("\n" + styles.MutedStyle.Render("New balance: "))
		sb.WriteString(styles.ValueStyle.Render(widgets.Rupees(s.NewBalance)))
		if s.Message != "" {
			sb.WriteString("\n" + styles.MutedStyle.Render(s.Message))
		}
		sb.WriteString(styles.Help.Render("esc back to manual deposit"))

	case r.order != nil:
		sb.WriteString(styles.Subtitle.Render("Complete the payment in your browser"))
		sb.WriteString("\n" + styles.ValueStyle.Render(r.order.RedirectURL))
		sb.WriteString("\n\n" + styles.MutedStyle.Render("Order "+r.order.OrderID))
		if r.loading {
			sb.WriteString("\n" + styles.MutedStyle.Render("Verifying..."))
		}
		if r.errMsg != "" {
			sb.WriteString("\n" + styles.ErrorStyle.Render(r.errMsg))
		}
		sb.WriteString(styles.Help.Render("v verify payment · esc cancel"))

	case r.form != nil:
		sb.WriteString(r.form.View())

	default:
		sb.WriteString(styles.MutedStyle.Render("Starting gateway..."))
	}

	return sb.String()
}
