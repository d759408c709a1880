package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/upball/internal/core"
	"github.com/vovakirdan/upball/internal/game"
)

// KeyMap defines the key bindings of the game screens.
type KeyMap struct {
	Left    key.Binding
	Right   key.Binding
	Up      key.Binding
	Down    key.Binding
	Confirm key.Binding
	Back    key.Binding
	Pause   key.Binding
	Restart key.Binding
	Next    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "tilt left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "tilt right"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/s", "down"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Next: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next level"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Action maps a key press to a semantic action.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Up):
		return core.ActionUp
	case key.Matches(msg, k.Down):
		return core.ActionDown
	case key.Matches(msg, k.Confirm):
		return core.ActionConfirm
	case key.Matches(msg, k.Back):
		return core.ActionBack
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	case key.Matches(msg, k.Next):
		return core.ActionNext
	}
	return core.ActionNone
}

// stateHelp implements help.KeyMap for the bindings valid in one state.
type stateHelp struct {
	keys  KeyMap
	state game.State
}

// ShortHelp returns the bindings shown in the footer.
func (h stateHelp) ShortHelp() []key.Binding {
	k := h.keys
	switch h.state {
	case game.StatePlaying:
		return []key.Binding{k.Left, k.Right, k.Pause, k.Quit}
	case game.StatePaused:
		return []key.Binding{k.Pause, k.Restart, k.Back, k.Quit}
	case game.StateGameOver:
		return []key.Binding{k.Restart, k.Back, k.Quit}
	case game.StateVictory:
		return []key.Binding{k.Next, k.Restart, k.Back, k.Quit}
	case game.StateLevelSelect:
		return []key.Binding{k.Left, k.Right, k.Confirm, k.Back, k.Quit}
	default:
		return []key.Binding{k.Up, k.Down, k.Confirm, k.Quit}
	}
}

// FullHelp returns every binding of the state.
func (h stateHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}
