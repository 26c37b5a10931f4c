// ABOUTME: Support chat screen polling the thread every ten seconds
// ABOUTME: Poll ticks carry a generation stamp so stale ticks die silently

package chat

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gobiz/gobiz-cli/internal/client"
	"github.com/gobiz/gobiz-cli/internal/tui/icons"
	"github.com/gobiz/gobiz-cli/internal/tui/styles"
)

// PollInterval is how often the open thread is refreshed
const PollInterval = 10 * time.Second

// pollTickMsg fires a scheduled refresh; Gen identifies the poll loop
// that scheduled it.
type pollTickMsg struct {
	Gen int
}

// historyMsg carries a thread fetch result
type historyMsg struct {
	gen      int
	messages []client.ChatMessage
	err      error
}

// sentMsg carries the send outcome
type sentMsg struct {
	gen int
	err error
}

// Chat is the support thread screen
type Chat struct {
	api *client.Client

	messages []client.ChatMessage
	input    textinput.Model

	gen     int
	sending bool
	errMsg  string
	width   int
}

// New creates the chat screen
func New(api *client.Client) *Chat {
	input := textinput.New()
	input.Placeholder = "type a message"
	input.CharLimit = 500
	input.Focus()
	return &Chat{api: api, input: input}
}

// Init fetches the thread and starts the poll loop. Gen bumps on every
// mount so ticks scheduled by a previous visit are ignored.
func (c *Chat) Init() tea.Cmd {
	c.gen++
	return tea.Batch(textinput.Blink, c.fetch(), c.scheduleTick())
}

// Stop invalidates any in-flight poll ticks. The shell calls this when
// the user navigates away.
func (c *Chat) Stop() {
	c.gen++
}

// Generation exposes the current poll generation for tests
func (c *Chat) Generation() int {
	return c.gen
}

func (c *Chat) scheduleTick() tea.Cmd {
	gen := c.gen
	return tea.Tick(PollInterval, func(time.Time) tea.Msg {
		return pollTickMsg{Gen: gen}
	})
}

func (c *Chat) fetch() tea.Cmd {
	gen := c.gen
	return func() tea.Msg {
		messages, err := c.api.ChatHistory(context.Background())
		return historyMsg{gen: gen, messages: messages, err: err}
	}
}

// Update implements tea.Model
func (c *Chat) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.width = msg.Width
		return c, nil

	case pollTickMsg:
		if msg.Gen != c.gen {
			return c, nil // tick from an abandoned poll loop
		}
		return c, tea.Batch(c.fetch(), c.scheduleTick())

	case historyMsg:
		if msg.gen != c.gen {
			return c, nil
		}
		if msg.err != nil {
			// Keep showing the last good thread; surface the error once.
			c.errMsg = msg.err.Error()
			return c, nil
		}
		c.errMsg = ""
		c.messages = msg.messages
		return c, nil

	case sentMsg:
		if msg.gen != c.gen {
			return c, nil
		}
		c.sending = false
		if msg.err != nil {
			c.errMsg = msg.err.Error()
			return c, nil
		}
		c.errMsg = ""
		c.input.SetValue("")
		return c, c.fetch()

	case tea.KeyMsg:
		if msg.String() == "enter" {
			return c, c.send()
		}
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return c, cmd
	}

	return c, nil
}

func (c *Chat) send() tea.Cmd {
	body := strings.TrimSpace(c.input.Value())
	if body == "" || c.sending {
		return nil
	}
	c.sending = true
	gen := c.gen
	return func() tea.Msg {
		_, err := c.api.SendChatMessage(context.Background(), body)
		return sentMsg{gen: gen, err: err}
	}
}

// View implements tea.Model
func (c *Chat) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Chat.String() + " Support"))
	sb.WriteString("\n")

	if len(c.messages) == 0 {
		sb.WriteString(styles.MutedStyle.Render("No messages yet. Ask us anything."))
		sb.WriteString("\n")
	}
	for _, m := range c.messages {
		label := styles.KeyStyle.Render("you")
		if m.Sender != "user" {
			label = styles.StatusOK.Render("support")
		}
		sb.WriteString(label + " " + styles.MutedStyle.Render(m.CreatedAt) + "\n")
		sb.WriteString(styles.ValueStyle.Render(m.Body) + "\n\n")
	}

	sb.WriteString(c.input.View())
	if c.sending {
		sb.WriteString("\n" + styles.MutedStyle.Render("Sending..."))
	}
	if c.errMsg != "" {
		sb.WriteString("\n" + styles.ErrorStyle.Render(icons.Warning.String()+" "+c.errMsg))
	}

	sb.WriteString(styles.Help.Render("enter send · refreshes every 10s"))
	return sb.String()
}
