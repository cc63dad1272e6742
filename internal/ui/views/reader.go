package views

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justyntemme/sneaky-t/internal/config"
	"github.com/justyntemme/sneaky-t/internal/host"
	"github.com/justyntemme/sneaky-t/internal/reader"
	"github.com/justyntemme/sneaky-t/internal/ui/styles"
	"github.com/justyntemme/sneaky-t/internal/ui/terminal"
	"github.com/justyntemme/sneaky-t/pkg/models"
)

// TextColors are the colours the colour key cycles through
var TextColors = []string{
	config.DefaultTextColor,
	"#f9fafbff",
	"#9ca3afff",
	"#f59e0bff",
	"#10b981ff",
}

// ReaderView displays one page of the current book
type ReaderView struct {
	ctx      context.Context
	host     reader.Host
	settings Settings
	logger   *slog.Logger

	ctrl     *reader.Controller
	page     *terminal.Surface
	progress progress.Model

	// State
	loading bool
	hidden  bool
	editing bool
	notice  string // Transient status message, cleared on the next key

	// Dimensions
	width  int
	height int
}

// NewReaderView creates a new reader view
func NewReaderView(ctx context.Context, h reader.Host, settings Settings, logger *slog.Logger) *ReaderView {
	if logger == nil {
		logger = slog.Default()
	}
	page := terminal.NewSurface()
	v := &ReaderView{
		ctx:      ctx,
		host:     h,
		settings: settings,
		logger:   logger.With("component", "reader_view"),
		ctrl:     reader.New(h, page, terminal.NewSurface(), logger),
		page:     page,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
	v.SetSize(80, 24)
	return v
}

// Message types
type bookLoadedMsg struct {
	info       *models.ReaderBookInfo
	appearance models.Appearance
	err        error
}

type settingsSavedMsg struct {
	setting string
	err     error
}

// Init implements View
func (v *ReaderView) Init() tea.Cmd {
	v.loading = true
	return v.load()
}

func (v *ReaderView) load() tea.Cmd {
	ctx, h := v.ctx, v.host
	return func() tea.Msg {
		info, appearance, err := reader.Fetch(ctx, h)
		return bookLoadedMsg{info: info, appearance: appearance, err: err}
	}
}

// Update implements View
func (v *ReaderView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case bookLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.logger.Error("failed to load book", "error", msg.err)
			return v, SendError(fmt.Errorf("load book: %w", msg.err))
		}
		styles.SetCurrentTheme(msg.appearance.Theme)
		v.ctrl.Open(msg.info, msg.appearance)

	case settingsSavedMsg:
		if msg.err != nil {
			v.logger.Error("failed to save setting", "setting", msg.setting, "error", msg.err)
			return v, SendError(fmt.Errorf("save %s: %w", msg.setting, msg.err))
		}

	case host.BookChangedMsg:
		v.ctrl.SetBook(msg.Info)
	case host.TextSizeChangedMsg:
		v.ctrl.SetTextSize(config.ClampTextSize(msg.Size))
	case host.TextColorChangedMsg:
		v.ctrl.SetTextColor(msg.Color)
	case host.ThemeChangedMsg:
		styles.SetCurrentTheme(msg.Theme)
	case host.RefreshContentMsg:
		v.ctrl.Refresh()
	case host.ShowMsg:
		v.hidden = false
	case host.HideMsg:
		v.hidden = true
	case host.StartChangingStylesMsg:
		v.editing = true
	case host.EndChangingStylesMsg:
		v.editing = false
	}
	return v, nil
}

// NextPage turns to the following page
func (v *ReaderView) NextPage() {
	v.notice = v.navigationNotice(v.ctrl.NextPage())
}

// PrevPage turns to the preceding page
func (v *ReaderView) PrevPage() {
	v.notice = v.navigationNotice(v.ctrl.PrevPage())
}

func (v *ReaderView) navigationNotice(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, reader.ErrViewportTooSmall):
		return "Window too small to show the next page"
	case errors.Is(err, reader.ErrNotLoaded):
		return "No book open"
	default:
		return err.Error()
	}
}

// Hidden reports whether the page is blanked
func (v *ReaderView) Hidden() bool {
	return v.hidden
}

// Editing reports whether the pane is outlined for appearance changes
func (v *ReaderView) Editing() bool {
	return v.editing
}

// ClearNotice drops the transient status message
func (v *ReaderView) ClearNotice() {
	v.notice = ""
}

// AdjustTextSize changes the text size by delta steps and saves it
func (v *ReaderView) AdjustTextSize(delta int) tea.Cmd {
	size := v.ctrl.Appearance().TextSize
	if size == 0 {
		size = config.DefaultTextSize
	}
	return v.setTextSize(config.ClampTextSize(size + delta*config.TextSizeStep))
}

// ResetTextSize restores the default text size and saves it
func (v *ReaderView) ResetTextSize() tea.Cmd {
	return v.setTextSize(config.DefaultTextSize)
}

func (v *ReaderView) setTextSize(size int) tea.Cmd {
	v.ctrl.SetTextSize(size)
	v.notice = fmt.Sprintf("Text size %d", size)
	return v.save("text size", func() error { return v.settings.SetTextSize(size) })
}

// CycleTextColor switches to the next text colour and saves it
func (v *ReaderView) CycleTextColor() tea.Cmd {
	color := TextColors[0]
	cur := v.ctrl.Appearance().TextColor
	for i, c := range TextColors {
		if c == cur {
			color = TextColors[(i+1)%len(TextColors)]
			break
		}
	}
	v.ctrl.SetTextColor(color)
	return v.save("text colour", func() error { return v.settings.SetTextColor(color) })
}

// CycleTheme switches to the next theme and saves it
func (v *ReaderView) CycleTheme() tea.Cmd {
	name := styles.NextThemeName()
	styles.SetCurrentTheme(name)
	v.notice = "Theme " + name
	return v.save("theme", func() error { return v.settings.SetTheme(name) })
}

// save runs a settings write off the update loop
func (v *ReaderView) save(setting string, fn func() error) tea.Cmd {
	if v.settings == nil {
		return nil
	}
	return func() tea.Msg {
		return settingsSavedMsg{setting: setting, err: fn()}
	}
}

// SetSize implements View
func (v *ReaderView) SetSize(width, height int) {
	v.width = width
	v.height = height

	// header and status line
	paneW := width - styles.ReaderPane.GetHorizontalFrameSize()
	paneH := height - 2 - styles.ReaderPane.GetVerticalFrameSize()
	v.ctrl.Resize(max(0, paneW), max(0, paneH))

	v.progress.Width = max(10, width/4)
}

// View implements View
func (v *ReaderView) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		v.renderHeader(),
		v.renderPane(),
		v.renderStatus(),
	)
}

func (v *ReaderView) renderHeader() string {
	pct := v.ctrl.Percent()
	right := v.progress.ViewAs(pct) + styles.ReaderProgress.Render(fmt.Sprintf(" %3.0f%%", pct*100))

	title := v.ctrl.Title()
	if title == "" {
		title = "sneaky-t"
	}
	avail := v.width - lipgloss.Width(right) - styles.ReaderHeader.GetHorizontalFrameSize() - 1
	left := styles.ReaderHeader.Render(terminal.Truncate(title, avail))

	gap := max(0, v.width-lipgloss.Width(left)-lipgloss.Width(right))
	return left + lipgloss.NewStyle().Width(gap).Render("") + right
}

func (v *ReaderView) renderPane() string {
	pane := styles.ReaderPane
	if v.editing {
		pane = styles.ReaderPaneEditing
	}
	w := max(0, v.width-pane.GetHorizontalFrameSize())
	h := max(0, v.height-2-pane.GetVerticalFrameSize())

	var content string
	switch {
	case v.hidden:
		content = lipgloss.NewStyle().Width(w).Height(h).Render("")
	case v.loading:
		content = lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, styles.MutedText.Render("Loading…"))
	case !v.ctrl.Loaded():
		content = lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render("Library is empty.\nAdd a book with: sneaky-t library import <file>"))
	default:
		content = v.page.Render()
		if content == "" {
			content = lipgloss.NewStyle().Width(w).Height(h).Render("")
		}
	}
	return pane.Render(content)
}

func (v *ReaderView) renderStatus() string {
	if v.notice != "" {
		return styles.WarningStyle.Render(v.notice)
	}
	switch v.ctrl.Status() {
	case reader.StatusTooSmall:
		return styles.WarningStyle.Render("Window too small")
	case reader.StatusEmpty:
		if v.ctrl.Loaded() {
			return styles.StatusBar.Render("End of book")
		}
		return styles.StatusBar.Render("")
	}
	var page string
	if p, ok := v.ctrl.Page(); ok {
		page = fmt.Sprintf("chars %d-%d", p.Start, p.End())
	}
	return styles.StatusBar.Render(page)
}
