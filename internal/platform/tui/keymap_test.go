package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/lane-runner/internal/core"
	"github.com/vovakirdan/lane-runner/internal/engine"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyMapIntent(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Action
		ok       bool
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionMoveLeft, true},
		{"a", runes("a"), core.ActionMoveLeft, true},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionMoveRight, true},
		{"d", runes("d"), core.ActionMoveRight, true},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionStart, true},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionStart, true},
		{"p", runes("p"), core.ActionPause, true},
		{"r", runes("r"), core.ActionRestart, true},
		{"unbound", runes("x"), core.ActionNone, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in, ok := keys.Intent(tc.msg)
			if ok != tc.ok || in.Action != tc.expected {
				t.Errorf("Intent(%q) = %s, %v; expected %s, %v", tc.msg.String(), in.Action, ok, tc.expected, tc.ok)
			}
		})
	}
}

func TestKeyMapHelpFor(t *testing.T) {
	keys := DefaultKeyMap()

	helpText := func(state engine.GameState) string {
		var parts []string
		for _, b := range keys.HelpFor(state) {
			parts = append(parts, b.Help().Desc)
		}
		return strings.Join(parts, ",")
	}

	if got := helpText(engine.StatePaused); !strings.Contains(got, "resume") {
		t.Errorf("paused help = %q, expected resume", got)
	}
	if got := helpText(engine.StateGameplay); !strings.Contains(got, "pause") {
		t.Errorf("gameplay help = %q, expected pause", got)
	}
	if got := helpText(engine.StateGameOver); !strings.Contains(got, "restart") {
		t.Errorf("game over help = %q, expected restart", got)
	}
	// HelpFor must not leak the paused label into the shared binding.
	if keys.Pause.Help().Desc != "pause" {
		t.Errorf("Pause help changed to %q", keys.Pause.Help().Desc)
	}
}
