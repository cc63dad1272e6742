package styles

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	Primary    = lipgloss.Color("#7C3AED") // Purple
	Secondary  = lipgloss.Color("#06B6D4") // Cyan
	Warning    = lipgloss.Color("#F59E0B") // Amber
	Error      = lipgloss.Color("#EF4444") // Red
	Muted      = lipgloss.Color("#6B7280") // Gray
	Background = lipgloss.Color("#1F2937") // Dark gray
	Foreground = lipgloss.Color("#F9FAFB") // Light gray
	Border     = lipgloss.Color("#374151") // Gray border

	// Reader header
	ReaderHeader = lipgloss.NewStyle().
			Foreground(Foreground).
			Background(Primary).
			Padding(0, 1).
			Bold(true)

	ReaderProgress = lipgloss.NewStyle().
			Foreground(Secondary).
			Align(lipgloss.Right)

	// Pane around the page. The border is always drawn so that showing the
	// outline never changes the page geometry.
	ReaderPane = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Background).
			Padding(0, 1)

	// Pane while appearance is being edited
	ReaderPaneEditing = ReaderPane.
				BorderForeground(Primary)

	// Status bar at bottom
	StatusBar = lipgloss.NewStyle().
			Foreground(Muted).
			Padding(0, 1)

	// Help text
	Help = lipgloss.NewStyle().
		Foreground(Muted)

	HelpKey = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	// Muted text style
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)

	// Warning message
	WarningStyle = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true).
			Padding(0, 1)

	// Error message
	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true).
			Padding(0, 1)

	// Dialog/Modal styles
	Dialog = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(1, 2)

	DialogTitle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			MarginBottom(1)

	// Book list (library subcommands)
	BookTitle = lipgloss.NewStyle().
			Foreground(Foreground).
			Bold(true)

	BookProgress = lipgloss.NewStyle().
			Foreground(Secondary)
)

// TextColor converts a configured text colour into a terminal colour.
// CSS-style "#RRGGBBAA" and "#RGB" forms are accepted; the alpha channel is
// dropped. Anything unparseable falls back to the theme foreground.
func TextColor(s string) lipgloss.TerminalColor {
	s = strings.TrimSpace(s)
	if s == "" {
		return Foreground
	}
	if !strings.HasPrefix(s, "#") {
		// ANSI colour number
		if n, err := strconv.Atoi(s); err == nil && n >= 0 && n <= 255 {
			return lipgloss.Color(s)
		}
		return Foreground
	}

	hex := s[1:]
	if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
		return Foreground
	}
	switch len(hex) {
	case 3:
		return lipgloss.Color("#" + string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]}))
	case 6:
		return lipgloss.Color("#" + hex)
	case 8:
		return lipgloss.Color("#" + hex[:6])
	default:
		return Foreground
	}
}
