package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-clicker/internal/core"
)

// KeyMap defines the key bindings for the clicker screen.
type KeyMap struct {
	Click     key.Binding
	Buy       key.Binding
	Up        key.Binding
	Down      key.Binding
	BuyCursor key.Binding
	Ascend    key.Binding
	Save      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Click, k.Buy, k.BuyCursor, k.Ascend, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Click, k.Buy, k.Up, k.Down, k.BuyCursor},
		{k.Ascend, k.Save, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Click: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "click"),
		),
		Buy: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "buy row"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "cursor up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "cursor down"),
		),
		BuyCursor: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "buy selected"),
		),
		Ascend: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "ascend"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to clicker actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a new key mapper with the given bindings.
func NewKeyMapper(keys KeyMap) *KeyMapper {
	return &KeyMapper{keys: keys}
}

// Keys returns the bindings, for the help view.
func (km *KeyMapper) Keys() KeyMap {
	return km.keys
}

// MapKey translates a key message to an action.
// For ActionBuy, row is the zero-based visible row the digit selects.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, row int) {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return core.ActionQuit, 0
	case key.Matches(msg, km.keys.Click):
		return core.ActionClick, 0
	case key.Matches(msg, km.keys.Buy):
		return core.ActionBuy, int(msg.String()[0] - '1')
	case key.Matches(msg, km.keys.Up):
		return core.ActionUp, 0
	case key.Matches(msg, km.keys.Down):
		return core.ActionDown, 0
	case key.Matches(msg, km.keys.BuyCursor):
		return core.ActionBuyCursor, 0
	case key.Matches(msg, km.keys.Ascend):
		return core.ActionAscend, 0
	case key.Matches(msg, km.keys.Save):
		return core.ActionSave, 0
	case key.Matches(msg, km.keys.Help):
		return core.ActionHelp, 0
	}
	return core.ActionNone, 0
}
