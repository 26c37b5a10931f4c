// ABOUTME: Shared navigation request message emitted by screens
// ABOUTME: Handled by the root shell, which owns the navigation store

package route

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gobiz/gobiz-cli/internal/nav"
)

// Msg asks the root shell to navigate to a page
type Msg struct {
	Page  nav.Page
	Param string
}

// To returns a command that requests navigation to page
func To(page nav.Page, param string) tea.Cmd {
	return func() tea.Msg {
		return Msg{Page: page, Param: param}
	}
}
