package styles

import "github.com/charmbracelet/lipgloss"

// Theme represents a color scheme for the reader chrome. The page text uses
// the configured text colour instead.
type Theme struct {
	Name        string
	Description string

	// Core colors
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color

	// Semantic colors
	Warning lipgloss.Color
	Error   lipgloss.Color
	Muted   lipgloss.Color

	Border lipgloss.Color
}

// Built-in themes
var (
	// DarkTheme is the default dark theme
	DarkTheme = Theme{
		Name:        "dark",
		Description: "Dark theme (default)",
		Primary:     lipgloss.Color("#7C3AED"),
		Secondary:   lipgloss.Color("#06B6D4"),
		Background:  lipgloss.Color("#1F2937"),
		Foreground:  lipgloss.Color("#F9FAFB"),
		Warning:     lipgloss.Color("#F59E0B"),
		Error:       lipgloss.Color("#EF4444"),
		Muted:       lipgloss.Color("#6B7280"),
		Border:      lipgloss.Color("#374151"),
	}

	// LightTheme is a light color scheme
	LightTheme = Theme{
		Name:        "light",
		Description: "Light theme",
		Primary:     lipgloss.Color("#7C3AED"),
		Secondary:   lipgloss.Color("#0891B2"),
		Background:  lipgloss.Color("#FFFFFF"),
		Foreground:  lipgloss.Color("#1F2937"),
		Warning:     lipgloss.Color("#D97706"),
		Error:       lipgloss.Color("#DC2626"),
		Muted:       lipgloss.Color("#9CA3AF"),
		Border:      lipgloss.Color("#E5E7EB"),
	}

	// SolarizedTheme is based on the Solarized color scheme
	SolarizedTheme = Theme{
		Name:        "solarized",
		Description: "Solarized dark theme",
		Primary:     lipgloss.Color("#268BD2"),
		Secondary:   lipgloss.Color("#2AA198"),
		Background:  lipgloss.Color("#002B36"),
		Foreground:  lipgloss.Color("#839496"),
		Warning:     lipgloss.Color("#B58900"),
		Error:       lipgloss.Color("#DC322F"),
		Muted:       lipgloss.Color("#586E75"),
		Border:      lipgloss.Color("#073642"),
	}

	// NordTheme is based on the Nord color palette
	NordTheme = Theme{
		Name:        "nord",
		Description: "Nord theme",
		Primary:     lipgloss.Color("#88C0D0"),
		Secondary:   lipgloss.Color("#81A1C1"),
		Background:  lipgloss.Color("#2E3440"),
		Foreground:  lipgloss.Color("#ECEFF4"),
		Warning:     lipgloss.Color("#EBCB8B"),
		Error:       lipgloss.Color("#BF616A"),
		Muted:       lipgloss.Color("#4C566A"),
		Border:      lipgloss.Color("#3B4252"),
	}

	// GruvboxTheme is based on the Gruvbox color scheme
	GruvboxTheme = Theme{
		Name:        "gruvbox",
		Description: "Gruvbox dark theme",
		Primary:     lipgloss.Color("#D79921"),
		Secondary:   lipgloss.Color("#458588"),
		Background:  lipgloss.Color("#282828"),
		Foreground:  lipgloss.Color("#EBDBB2"),
		Warning:     lipgloss.Color("#D79921"),
		Error:       lipgloss.Color("#CC241D"),
		Muted:       lipgloss.Color("#928374"),
		Border:      lipgloss.Color("#3C3836"),
	}

	// BuiltinThemes is a list of all available built-in themes
	BuiltinThemes = []Theme{
		DarkTheme,
		LightTheme,
		SolarizedTheme,
		NordTheme,
		GruvboxTheme,
	}

	// currentTheme holds the active theme
	currentTheme = DarkTheme
)

// GetTheme returns a theme by name, or the default theme if not found
func GetTheme(name string) Theme {
	for _, t := range BuiltinThemes {
		if t.Name == name {
			return t
		}
	}
	return DarkTheme
}

// GetThemeNames returns a list of all available theme names
func GetThemeNames() []string {
	names := make([]string, len(BuiltinThemes))
	for i, t := range BuiltinThemes {
		names[i] = t.Name
	}
	return names
}

// CurrentTheme returns the currently active theme
func CurrentTheme() Theme {
	return currentTheme
}

// SetCurrentTheme sets the active theme by name
func SetCurrentTheme(name string) {
	currentTheme = GetTheme(name)
	ApplyTheme(currentTheme)
}

// NextThemeName returns the name of the theme after the active one
func NextThemeName() string {
	for i, t := range BuiltinThemes {
		if t.Name == currentTheme.Name {
			return BuiltinThemes[(i+1)%len(BuiltinThemes)].Name
		}
	}
	return currentTheme.Name
}

// ApplyTheme updates all global styles to use the given theme's colors
func ApplyTheme(theme Theme) {
	// Update color variables
	Primary = theme.Primary
	Secondary = theme.Secondary
	Warning = theme.Warning
	Error = theme.Error
	Muted = theme.Muted
	Background = theme.Background
	Foreground = theme.Foreground
	Border = theme.Border

	// Update styles
	ReaderHeader = lipgloss.NewStyle().
		Foreground(theme.Foreground).
		Background(theme.Primary).
		Padding(0, 1).
		Bold(true)

	ReaderProgress = lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Align(lipgloss.Right)

	ReaderPane = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Background).
		Padding(0, 1)

	ReaderPaneEditing = ReaderPane.
		BorderForeground(theme.Primary)

	StatusBar = lipgloss.NewStyle().
		Foreground(theme.Muted).
		Padding(0, 1)

	Help = lipgloss.NewStyle().
		Foreground(theme.Muted)

	HelpKey = lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true)

	MutedText = lipgloss.NewStyle().
		Foreground(theme.Muted)

	WarningStyle = lipgloss.NewStyle().
		Foreground(theme.Warning).
		Bold(true).
		Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(theme.Error).
		Bold(true).
		Padding(0, 1)

	Dialog = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(1, 2)

	DialogTitle = lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		MarginBottom(1)

	BookTitle = lipgloss.NewStyle().
		Foreground(theme.Foreground).
		Bold(true)

	BookProgress = lipgloss.NewStyle().
		Foreground(theme.Secondary)
}

// init applies the default theme on package load
func init() {
	ApplyTheme(DarkTheme)
}
