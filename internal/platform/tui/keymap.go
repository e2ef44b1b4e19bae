package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/lane-runner/internal/core"
	"github.com/vovakirdan/lane-runner/internal/engine"
)

// KeyMap defines the key bindings while a game is running.
// It decodes keys into intents; the engine never sees keys.
type KeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Start      key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Back       key.Binding
	Submit     key.Binding
	Quit       key.Binding
	Screenshot key.Binding
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "start"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
	}
}

// Intent decodes a key press into an intent.
func (k KeyMap) Intent(msg tea.KeyMsg) (core.Intent, bool) {
	switch {
	case key.Matches(msg, k.Left):
		return core.NewIntent(core.ActionMoveLeft), true
	case key.Matches(msg, k.Right):
		return core.NewIntent(core.ActionMoveRight), true
	case key.Matches(msg, k.Start):
		return core.NewIntent(core.ActionStart), true
	case key.Matches(msg, k.Pause):
		return core.NewIntent(core.ActionPause), true
	case key.Matches(msg, k.Restart):
		return core.NewIntent(core.ActionRestart), true
	}
	return core.Intent{}, false
}

// HelpFor returns the bindings worth showing in the given game state.
func (k KeyMap) HelpFor(state engine.GameState) []key.Binding {
	choose := key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "choose"))
	pause := k.Pause
	switch state {
	case engine.StateModeSelection:
		return []key.Binding{choose, k.Start, k.Back, k.Quit}
	case engine.StateUsernameCreation:
		return []key.Binding{k.Submit, k.Back}
	case engine.StateStartScreen:
		return []key.Binding{k.Start, k.Back, k.Quit}
	case engine.StatePaused:
		pause.SetHelp("p", "resume")
		return []key.Binding{pause, k.Back, k.Quit}
	case engine.StateGameOver:
		return []key.Binding{k.Restart, k.Back, k.Quit}
	default:
		return []key.Binding{k.Left, k.Right, pause, k.Quit}
	}
}
