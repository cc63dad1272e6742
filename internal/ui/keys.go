package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/justyntemme/sneaky-t/pkg/models"
)

// KeyMap defines all application key bindings
type KeyMap struct {
	// Paging
	NextPage key.Binding
	PrevPage key.Binding

	// Pane
	ShowHide key.Binding
	Refresh  key.Binding

	// Appearance
	Bigger    key.Binding
	Smaller   key.Binding
	ResetSize key.Binding
	Color     key.Binding
	Theme     key.Binding
	StyleEdit key.Binding

	// Actions
	Quit key.Binding
	Help key.Binding
}

// DefaultKeyMap returns the key bindings for the given control settings.
// Paging and show/hide keys come from the config; the rest are fixed.
func DefaultKeyMap(control models.Control) KeyMap {
	return KeyMap{
		NextPage: binding(control.NextPage, "next page"),
		PrevPage: binding(control.PrevPage, "prev page"),
		ShowHide: binding(control.ShowHide, "show/hide"),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Bigger: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "bigger text"),
		),
		Smaller: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "smaller text"),
		),
		ResetSize: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "default size"),
		),
		Color: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "text colour"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		StyleEdit: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "outline pane"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// binding builds a binding from configured key names. A binding with no keys
// is disabled.
func binding(keys []string, desc string) key.Binding {
	if len(keys) == 0 {
		return key.NewBinding(key.WithDisabled())
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = keyName(k)
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(names, "/"), desc),
	)
}

// keyName returns how a key is shown in help
func keyName(k string) string {
	switch k {
	case " ":
		return "space"
	case "left":
		return "←"
	case "right":
		return "→"
	case "pgup":
		return "PgUp"
	case "pgdown":
		return "PgDn"
	case "ctrl+@":
		return "^space"
	default:
		return k
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextPage, k.PrevPage, k.ShowHide, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextPage, k.PrevPage, k.ShowHide, k.Refresh},
		{k.Bigger, k.Smaller, k.ResetSize},
		{k.Color, k.Theme, k.StyleEdit},
		{k.Help, k.Quit},
	}
}
