// ABOUTME: Shared lipgloss styles for consistent TUI appearance
// ABOUTME: Theme-aware palette with dark, light, and follow-terminal modes

package styles

import "github.com/charmbracelet/lipgloss"

// Theme selects the active palette
type Theme int

const (
	ThemeDark Theme = iota
	ThemeLight
	ThemeAuto // follow the terminal background
)

// String returns the display name of the theme
func (t Theme) String() string {
	switch t {
	case ThemeDark:
		return "dark"
	case ThemeLight:
		return "light"
	case ThemeAuto:
		return "auto"
	default:
		return "dark"
	}
}

// Next cycles dark -> light -> auto -> dark
func (t Theme) Next() Theme {
	switch t {
	case ThemeDark:
		return ThemeLight
	case ThemeLight:
		return ThemeAuto
	default:
		return ThemeDark
	}
}

// palette is one set of colors
type palette struct {
	primary   lipgloss.Color
	secondary lipgloss.Color
	warning   lipgloss.Color
	danger    lipgloss.Color
	muted     lipgloss.Color
	text      lipgloss.Color
	accent    lipgloss.Color
	info      lipgloss.Color
}

var darkPalette = palette{
	primary:   lipgloss.Color("#06B6D4"), // Cyan
	secondary: lipgloss.Color("#10B981"), // Green
	warning:   lipgloss.Color("#F59E0B"), // Amber
	danger:    lipgloss.Color("#EF4444"), // Red
	muted:     lipgloss.Color("#6B7280"), // Gray
	text:      lipgloss.Color("#F9FAFB"), // Light
	accent:    lipgloss.Color("#22D3EE"), // Lighter cyan
	info:      lipgloss.Color("#3B82F6"), // Blue
}

var lightPalette = palette{
	primary:   lipgloss.Color("#0E7490"),
	secondary: lipgloss.Color("#047857"),
	warning:   lipgloss.Color("#B45309"),
	danger:    lipgloss.Color("#B91C1C"),
	muted:     lipgloss.Color("#9CA3AF"),
	text:      lipgloss.Color("#111827"),
	accent:    lipgloss.Color("#0891B2"),
	info:      lipgloss.Color("#1D4ED8"),
}

// Exported colors and styles, rebuilt by Apply. Declared as vars so a theme
// change takes effect on the very next render without restarting.
var (
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Warning   lipgloss.Color
	Danger    lipgloss.Color
	Muted     lipgloss.Color
	Text      lipgloss.Color
	Accent    lipgloss.Color
	Info      lipgloss.Color

	Title          lipgloss.Style
	Subtitle       lipgloss.Style
	StatusOK       lipgloss.Style
	StatusWarning  lipgloss.Style
	StatusCritical lipgloss.Style
	Panel          lipgloss.Style
	ActivePanel    lipgloss.Style
	Help           lipgloss.Style
	KeyStyle       lipgloss.Style
	ValueStyle     lipgloss.Style
	MutedStyle     lipgloss.Style
	ErrorStyle     lipgloss.Style
	SuccessStyle   lipgloss.Style
	ActiveTab      lipgloss.Style
	InactiveTab    lipgloss.Style
)

var current = ThemeDark

func init() {
	Apply(ThemeDark)
}

// Current returns the active theme
func Current() Theme { return current }

// Apply switches the palette. ThemeAuto picks dark or light from the
// terminal background.
func Apply(t Theme) {
	current = t

	p := darkPalette
	switch t {
	case ThemeLight:
		p = lightPalette
	case ThemeAuto:
		if !lipgloss.HasDarkBackground() {
			p = lightPalette
		}
	}

	Primary = p.primary
	Secondary = p.secondary
	Warning = p.warning
	Danger = p.danger
	Muted = p.muted
	Text = p.text
	Accent = p.accent
	Info = p.info

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
		Foreground(Muted).
		MarginBottom(1)

	StatusOK = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	StatusWarning = lipgloss.NewStyle().
		Foreground(Warning).
		Bold(true)

	StatusCritical = lipgloss.NewStyle().
		Foreground(Danger).
		Bold(true)

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(1, 2)

	ActivePanel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(1, 2)

	Help = lipgloss.NewStyle().
		Foreground(Muted).
		MarginTop(1)

	KeyStyle = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)

	ValueStyle = lipgloss.NewStyle().
		Foreground(Text).
		Bold(true)

	MutedStyle = lipgloss.NewStyle().
		Foreground(Muted)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(Danger)

	SuccessStyle = lipgloss.NewStyle().
		Foreground(Secondary)

	ActiveTab = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true).
		Underline(true)

	InactiveTab = lipgloss.NewStyle().
		Foreground(Muted)
}
