package ui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justyntemme/sneaky-t/internal/host"
	"github.com/justyntemme/sneaky-t/internal/reader"
	"github.com/justyntemme/sneaky-t/internal/ui/styles"
	"github.com/justyntemme/sneaky-t/internal/ui/views"
	"github.com/justyntemme/sneaky-t/pkg/models"
)

// App is the main application model
type App struct {
	keys KeyMap
	help help.Model

	readerView *views.ReaderView

	// Window dimensions
	width  int
	height int

	// Error/status message
	err      error
	showHelp bool
}

// NewApp creates a new application instance
func NewApp(ctx context.Context, h reader.Host, settings views.Settings, control models.Control, logger *slog.Logger) *App {
	app := &App{
		keys:       DefaultKeyMap(control),
		help:       help.New(),
		readerView: views.NewReaderView(ctx, h, settings, logger),
		width:      80,
		height:     24,
	}
	app.readerView.SetSize(app.width, app.height-1)
	return app
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.readerView.Init(),
		tea.SetWindowTitle("sneaky-t"),
	)
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		// one line for the key help
		a.readerView.SetSize(msg.Width, msg.Height-1)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case views.ErrorMsg:
		a.err = msg.Err
		return a, nil

	case views.ClearErrorMsg:
		a.err = nil
		return a, nil
	}

	// Delegate to the reader
	_, cmd := a.readerView.Update(msg)
	return a, cmd
}

// handleKeyMsg maps key presses to reader actions
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.err = nil
	a.readerView.ClearNotice()

	if a.showHelp {
		// any key closes help; quit still quits
		a.showHelp = false
		if key.Matches(msg, a.keys.Quit) {
			return a, tea.Quit
		}
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.showHelp = true

	case key.Matches(msg, a.keys.ShowHide):
		if a.readerView.Hidden() {
			return a, views.Emit(host.ShowMsg{})
		}
		return a, views.Emit(host.HideMsg{})

	case key.Matches(msg, a.keys.NextPage):
		a.readerView.NextPage()

	case key.Matches(msg, a.keys.PrevPage):
		a.readerView.PrevPage()

	case key.Matches(msg, a.keys.Refresh):
		return a, views.Emit(host.RefreshContentMsg{})

	case key.Matches(msg, a.keys.Bigger):
		return a, a.readerView.AdjustTextSize(1)

	case key.Matches(msg, a.keys.Smaller):
		return a, a.readerView.AdjustTextSize(-1)

	case key.Matches(msg, a.keys.ResetSize):
		return a, a.readerView.ResetTextSize()

	case key.Matches(msg, a.keys.Color):
		return a, a.readerView.CycleTextColor()

	case key.Matches(msg, a.keys.Theme):
		return a, a.readerView.CycleTheme()

	case key.Matches(msg, a.keys.StyleEdit):
		if a.readerView.Editing() {
			return a, views.Emit(host.EndChangingStylesMsg{})
		}
		return a, views.Emit(host.StartChangingStylesMsg{})
	}
	return a, nil
}

// View implements tea.Model
func (a *App) View() string {
	if a.showHelp {
		return a.renderHelp()
	}

	content := a.readerView.View()

	// Add error bar if there's an error, in place of the key help
	footer := a.help.View(a.keys)
	if a.err != nil {
		footer = styles.ErrorStyle.Render("Error: " + a.err.Error())
	}
	return lipgloss.JoinVertical(lipgloss.Left, content, footer)
}

// renderHelp renders the help overlay
func (a *App) renderHelp() string {
	full := a.help
	full.ShowAll = true
	dialog := styles.Dialog.Render(
		styles.DialogTitle.Render("Keyboard Shortcuts") + "\n" +
			full.View(a.keys),
	)

	// Center the help dialog
	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Center,
		lipgloss.Center,
		dialog,
	)
}
