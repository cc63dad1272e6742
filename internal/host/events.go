package host

import (
	"context"

	"github.com/justyntemme/sneaky-t/internal/config"
	"github.com/justyntemme/sneaky-t/pkg/models"
)

// Events the host delivers to the reader. They are sent to the UI program as
// messages.

// BookChangedMsg is sent when the current book is switched
type BookChangedMsg struct {
	Info models.ReaderBookInfo
}

// TextSizeChangedMsg is sent when the configured text size changes
type TextSizeChangedMsg struct {
	Size int
}

// TextColorChangedMsg is sent when the configured text colour changes
type TextColorChangedMsg struct {
	Color string
}

// ThemeChangedMsg is sent when the configured UI theme changes
type ThemeChangedMsg struct {
	Theme string
}

// RefreshContentMsg asks the reader to paginate again at the current progress
type RefreshContentMsg struct{}

// ShowMsg reveals the reading pane
type ShowMsg struct{}

// HideMsg blanks the reading pane
type HideMsg struct{}

// StartChangingStylesMsg outlines the pane while appearance is being edited
type StartChangingStylesMsg struct{}

// EndChangingStylesMsg removes the outline
type EndChangingStylesMsg struct{}

// Sender delivers a message to the UI; tea.Program.Send satisfies it.
type Sender func(msg any)

// ConfigEvents translates config file changes into reader events
func ConfigEvents(old, cur *config.Config) []any {
	var msgs []any
	if old == nil {
		return msgs
	}
	if old.Appearance.TextSize != cur.Appearance.TextSize {
		msgs = append(msgs, TextSizeChangedMsg{Size: cur.Appearance.TextSize})
	}
	if old.Appearance.TextColor != cur.Appearance.TextColor {
		msgs = append(msgs, TextColorChangedMsg{Color: cur.Appearance.TextColor})
	}
	if old.Appearance.Theme != cur.Appearance.Theme {
		msgs = append(msgs, ThemeChangedMsg{Theme: cur.Appearance.Theme})
	}
	return msgs
}

// Watch forwards config and library changes to send until ctx is done
func (h *Local) Watch(ctx context.Context, send Sender) {
	h.config.OnChange(func(old, cur *config.Config) {
		for _, msg := range ConfigEvents(old, cur) {
			h.logger.Debug("config changed", "event", msg)
			send(msg)
		}
	})
	h.config.WatchConfig()

	go func() {
		err := h.store.Watch(ctx, func(info *models.ReaderBookInfo) {
			send(BookChangedMsg{Info: *info})
		})
		if err != nil {
			h.logger.Error("library watch stopped", "error", err)
		}
	}()
}
