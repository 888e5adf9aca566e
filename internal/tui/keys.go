package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines keybindings for the dialogs
type KeyMap struct {
	mode string

	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Home    key.Binding
	End     key.Binding
	Toggle  key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Help    key.Binding
}

// NewKeyMap creates a new keymap for the given mode ("vim" or "standard")
func NewKeyMap(mode string) KeyMap {
	if mode != "standard" {
		mode = "vim"
	}

	k := KeyMap{
		mode:    mode,
		Up:      key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:    key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Left:    key.NewBinding(key.WithKeys("left", "shift+tab"), key.WithHelp("←", "prev action")),
		Right:   key.NewBinding(key.WithKeys("right", "tab"), key.WithHelp("→/tab", "next action")),
		Home:    key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first")),
		End:     key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last")),
		Toggle:  key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "choose")),
		Cancel:  key.NewBinding(key.WithKeys("esc", "ctrl+c", "q"), key.WithHelp("esc/q", "cancel")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	}

	if mode == "vim" {
		k.Up = key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k/↑", "up"))
		k.Down = key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j/↓", "down"))
		k.Left = key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("h/←", "prev action"))
		k.Right = key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("l/→/tab", "next action"))
		k.Home = key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first"))
		k.End = key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last"))
	}

	return k
}

// Mode returns the current keybinding mode
func (k KeyMap) Mode() string {
	return k.mode
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Right, k.Confirm, k.Cancel, k.Help}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Home, k.End},
		{k.Left, k.Right, k.Toggle},
		{k.Confirm, k.Cancel, k.Help},
	}
}
