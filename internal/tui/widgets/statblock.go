// ABOUTME: Compact stat block widget for the landing counters
// ABOUTME: Combines icon, value, and label in a bordered panel

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gobiz/gobiz-cli/internal/tui/icons"
	"github.com/gobiz/gobiz-cli/internal/tui/styles"
)

// StatBlockWidth is the fixed width of a stat block
const StatBlockWidth = 24

// StatBlock renders a compact counter display block with the title worked
// into the top border.
func StatBlock(icon icons.Icon, title, value, subtitle string) string {
	innerWidth := StatBlockWidth - 4

	titleStr := fmt.Sprintf("%s %s", icon.String(), title)
	if len(titleStr) > innerWidth {
		titleStr = titleStr[:innerWidth]
	}

	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	valueStyle := lipgloss.NewStyle().Foreground(styles.Text).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)

	topBorder := fmt.Sprintf("┌─ %s %s┐",
		titleStyle.Render(titleStr),
		strings.Repeat("─", maxInt(0, innerWidth-len(titleStr)-1)))

	valueLine := fmt.Sprintf("│  %s%s│",
		valueStyle.Render(value),
		strings.Repeat(" ", maxInt(0, innerWidth-len(value))))

	subtitleLine := fmt.Sprintf("│  %s%s│",
		subtitleStyle.Render(subtitle),
		strings.Repeat(" ", maxInt(0, innerWidth-len(subtitle))))

	bottomBorder := fmt.Sprintf("└%s┘", strings.Repeat("─", StatBlockWidth-2))

	return strings.Join([]string{
		borderStyle.Render(topBorder),
		borderStyle.Render(valueLine),
		borderStyle.Render(subtitleLine),
		borderStyle.Render(bottomBorder),
	}, "\n")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
