// ABOUTME: Mobile-number search screen with per-field selection
// ABOUTME: Renders found and no-record outcomes distinctly, billing verbatim

package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gobiz/gobiz-cli/internal/client"
	"github.com/gobiz/gobiz-cli/internal/nav"
	"github.com/gobiz/gobiz-cli/internal/tui/icons"
	"github.com/gobiz/gobiz-cli/internal/tui/recent"
	"github.com/gobiz/gobiz-cli/internal/tui/route"
	"github.com/gobiz/gobiz-cli/internal/tui/styles"
	"github.com/gobiz/gobiz-cli/internal/tui/widgets"
)

// CompletedMsg tells the root shell a search finished so it can refresh
// the cached profile; the new balance comes only from the backend.
type CompletedMsg struct{}

// resultMsg carries a search outcome back onto the event loop
type resultMsg struct {
	seq    int
	result *client.SearchResult
	err    error
}

// focus area within the screen
type focusArea int

const (
	focusNumber focusArea = iota
	focusFields
)

// fieldLabels maps wire names to display labels, in KnownFields order
var fieldLabels = map[string]string{
	"name":        "Name",
	"father_name": "Father's name",
	"address":     "Address",
	"circle":      "Telecom circle",
	"operator":    "Operator",
	"alt_numbers": "Alternate numbers",
	"email":       "Email",
	"id_number":   "ID number",
}

// Search is the number lookup screen
type Search struct {
	api    *client.Client
	sess   sessionReader
	recent *recent.Numbers

	number    textinput.Model
	selected  []bool
	cursor    int
	focus     focusArea
	recentIdx int

	loading      bool
	errMsg       string
	insufficient bool
	result       *client.SearchResult
	seq          int
	width        int
}

// sessionReader is the slice of the session store the screen reads
type sessionReader interface {
	Profile() *client.User
}

// New creates the search screen with every field selected. rec may be
// nil, which disables the recent-numbers shortcut.
func New(api *client.Client, sess sessionReader, rec *recent.Numbers) *Search {
	number := textinput.New()
	number.Placeholder = "10-digit mobile number"
	number.CharLimit = 10
	number.Focus()

	selected := make([]bool, len(client.KnownFields))
	for i := range selected {
		selected[i] = true
	}

	return &Search{api: api, sess: sess, recent: rec, number: number, selected: selected}
}

// Init implements tea.Model
func (s *Search) Init() tea.Cmd {
	return textinput.Blink
}

// SelectedFields returns the wire names of currently selected fields
func (s *Search) SelectedFields() []string {
	var out []string
	for i, sel := range s.selected {
		if sel {
			out = append(out, client.KnownFields[i])
		}
	}
	return out
}

// selectedCount counts selected fields
func (s *Search) selectedCount() int {
	n := 0
	for _, sel := range s.selected {
		if sel {
			n++
		}
	}
	return n
}

// Toggle flips field i. Deselecting the last remaining field is a no-op:
// at least one field must always stay selected.
func (s *Search) Toggle(i int) {
	if i < 0 || i >= len(s.selected) {
		return
	}
	if s.selected[i] && s.selectedCount() == 1 {
		return
	}
	s.selected[i] = !s.selected[i]
}

// Update implements tea.Model
func (s *Search) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			if s.focus == focusNumber {
				s.focus = focusFields
				s.number.Blur()
			} else {
				s.focus = focusNumber
				s.number.Focus()
			}
			return s, nil
		case "enter":
			return s, s.submit()
		case "ctrl+p":
			s.cycleRecent()
			return s, nil
		case "w":
			if s.insufficient {
				return s, route.To(nav.PageRecharge, "")
			}
		}

		if s.focus == focusFields {
			switch msg.String() {
			case "up", "k":
				if s.cursor > 0 {
					s.cursor--
				}
				return s, nil
			case "down", "j":
				if s.cursor < len(s.selected)-1 {
					s.cursor++
				}
				return s, nil
			case " ":
				s.Toggle(s.cursor)
				return s, nil
			case "a":
				s.selectAll()
				return s, nil
			}
			return s, nil
		}

		var cmd tea.Cmd
		s.number, cmd = s.number.Update(msg)
		return s, cmd

	case resultMsg:
		if msg.seq != s.seq {
			return s, nil // late response for an abandoned submission
		}
		s.loading = false
		if msg.err != nil {
			s.result = nil
			if errors.Is(msg.err, client.ErrInsufficientCredits) {
				s.insufficient = true
				s.errMsg = "Insufficient credits for this search."
			} else {
				s.insufficient = false
				s.errMsg = requestErrorMessage(msg.err)
			}
			return s, nil
		}
		s.errMsg = ""
		s.insufficient = false
		s.result = msg.result
		return s, func() tea.Msg { return CompletedMsg{} }
	}

	return s, nil
}

// cycleRecent fills the number input from the recently searched list
func (s *Search) cycleRecent() {
	if s.recent == nil {
		return
	}
	numbers := s.recent.List()
	if len(numbers) == 0 {
		return
	}
	s.number.SetValue(numbers[s.recentIdx%len(numbers)])
	s.number.CursorEnd()
	s.recentIdx++
}

// selectAll marks every field selected
func (s *Search) selectAll() {
	for i := range s.selected {
		s.selected[i] = true
	}
}

// validate checks the number before any network call
func (s *Search) validate() string {
	num := strings.TrimSpace(s.number.Value())
	if len(num) != 10 {
		return "enter a 10-digit mobile number"
	}
	for _, r := range num {
		if r < '0' || r > '9' {
			return "mobile number must contain digits only"
		}
	}
	return ""
}

// submit fires the search request
func (s *Search) submit() tea.Cmd {
	if s.loading {
		return nil
	}
	if msg := s.validate(); msg != "" {
		s.errMsg = msg
		return nil
	}

	s.loading = true
	s.errMsg = ""
	s.result = nil
	s.seq++
	seq := s.seq

	number := strings.TrimSpace(s.number.Value())
	fields := s.SelectedFields()
	if s.recent != nil {
		_ = s.recent.Add(number)
	}

	return func() tea.Msg {
		result, err := s.api.Search(context.Background(), number, fields)
		return resultMsg{seq: seq, result: result, err: err}
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
func (s *Search) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Search.String() + " Number lookup"))
	sb.WriteString("\n")

	if user := s.sess.Profile(); user != nil {
		sb.WriteString(styles.MutedStyle.Render("Balance: "))
		sb.WriteString(styles.ValueStyle.Render(widgets.Rupees(user.Credits)))
		sb.WriteString("\n\n")
	}

	sb.WriteString(s.number.View())
	sb.WriteString("\n\n")

	sb.WriteString(styles.Subtitle.Render("Fields to request"))
	sb.WriteString("\n")
	for i, name := range client.KnownFields {
		check := "[ ]"
		if s.selected[i] {
			check = "[x]"
		}
		line := fmt.Sprintf("%s %s", check, fieldLabels[name])
		if s.focus == focusFields && i == s.cursor {
			line = styles.KeyStyle.Render("> ") + styles.ValueStyle.Render(line)
		} else {
			line = "  " + styles.MutedStyle.Render(line)
		}
		sb.WriteString(line + "\n")
	}

	if s.loading {
		sb.WriteString("\n" + styles.MutedStyle.Render("Searching..."))
	}
	if s.errMsg != "" {
		sb.WriteString("\n" + styles.ErrorStyle.Render(icons.Critical.String()+" "+s.errMsg))
		if s.insufficient {
			sb.WriteString("\n" + styles.KeyStyle.Render("w") + styles.MutedStyle.Render(" recharge wallet"))
		}
	}
	if s.result != nil {
		sb.WriteString("\n" + s.renderResult())
	}

	sb.WriteString(styles.Help.Render("enter search · tab switch focus · space toggle field · a all fields · ctrl+p recent"))
	return sb.String()
}

// renderResult shows the tagged outcome: a record with billing, or the
// no-record state which still carries the baseline fee.
func (s *Search) renderResult() string {
	var sb strings.Builder
	r := s.result

	if !r.Found {
		sb.WriteString(styles.StatusWarning.Render(icons.Info.String() + " No record found for this number"))
		sb.WriteString("\n")
		sb.WriteString(styles.MutedStyle.Render("Charged (baseline fee): "))
		sb.WriteString(styles.ValueStyle.Render(widgets.Rupees(r.Billing.Charged)))
		sb.WriteString("\n")
		sb.WriteString(styles.MutedStyle.Render("New balance: "))
		sb.WriteString(styles.ValueStyle.Render(widgets.Rupees(r.Billing.NewBalance)))
		return styles.Panel.Render(sb.String())
	}

	sb.WriteString(styles.StatusOK.Render(icons.CheckOK.String() + " Record found"))
	sb.WriteString("\n\n")
	for _, name := range client.KnownFields {
		value, ok := r.Record[name]
		if !ok {
			continue
		}
		sb.WriteString(styles.MutedStyle.Render(fmt.Sprintf("%-18s", fieldLabels[name])))
		sb.WriteString(styles.ValueStyle.Render(value))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(styles.MutedStyle.Render(fmt.Sprintf("Base fee %s + fields %s = ",
		widgets.Rupees(r.Billing.BaseFee), widgets.Rupees(r.Billing.FieldCharges))))
	sb.WriteString(styles.ValueStyle.Render(widgets.Rupees(r.Billing.Charged)))
	sb.WriteString(styles.MutedStyle.Render("   New balance: "))
	sb.WriteString(styles.ValueStyle.Render(widgets.Rupees(r.Billing.NewBalance)))

	return styles.ActivePanel.Render(sb.String())
}
