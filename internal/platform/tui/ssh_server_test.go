package tui

import (
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

func updateSession(m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(SessionModel), cmd
}

func TestSessionGameRoundTrip(t *testing.T) {
	isolate(t)
	m := NewSessionModel(nil, testConfig(), "alice", log.New(io.Discard))

	m, cmd := updateSession(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.game == nil {
		t.Fatal("enter did not start a game")
	}
	if cmd == nil {
		t.Error("game started without a frame command")
	}
	t.Cleanup(m.game.game.Close)

	// Mode selection: esc goes back to the menu.
	m, _ = updateSession(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.game != nil {
		t.Fatal("esc did not return to the menu")
	}
	if m.menu.Selected() != nil {
		t.Error("menu kept the previous selection")
	}
}

func TestSessionScoreboardRoundTrip(t *testing.T) {
	isolate(t)
	m := NewSessionModel(nil, testConfig(), "alice", log.New(io.Discard))

	m, _ = updateSession(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.scores == nil {
		t.Fatal("tab did not open the scoreboard")
	}
	m, _ = updateSession(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.scores != nil {
		t.Fatal("esc did not close the scoreboard")
	}
	if m.menu.WantsScoreboard() {
		t.Error("menu still wants the scoreboard")
	}
}

func TestSessionResizeReachesMenu(t *testing.T) {
	m := NewSessionModel(nil, testConfig(), "alice", log.New(io.Discard))
	m, _ = updateSession(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if cfg := m.menu.Config(); cfg.ScreenW != 120 || cfg.ScreenH != 40 {
		t.Errorf("menu config %dx%d", cfg.ScreenW, cfg.ScreenH)
	}
}

func TestSessionQuit(t *testing.T) {
	m := NewSessionModel(nil, testConfig(), "alice", log.New(io.Discard))
	m, cmd := updateSession(m, runes("q"))
	if cmd == nil || m.View() != "" {
		t.Error("q did not end the session")
	}
}
