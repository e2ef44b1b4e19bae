package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/lane-runner/internal/games/lanerunner"
	"github.com/vovakirdan/lane-runner/internal/storage"
)

func seedRuns(t *testing.T, store *storage.Store) {
	t.Helper()
	runs := []storage.Run{
		{GameID: lanerunner.ID, Mode: "leaderboard", Username: "racer", Score: 300, Tier: 3, DurationMs: 95000},
		{GameID: lanerunner.ID, Mode: "casual", Score: 200, Tier: 2, DurationMs: 61000},
		{GameID: lanerunner.ID, Mode: "casual", Score: 100, Tier: 1, DurationMs: 30000},
		{GameID: lanerunner.ClassicID, Mode: "casual", Score: 50, DurationMs: 12000},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun: %v", err)
		}
	}
}

func updateScores(m ScoreboardModel, msg tea.Msg) ScoreboardModel {
	next, _ := m.Update(msg)
	return next.(ScoreboardModel)
}

func TestScoreboardFilters(t *testing.T) {
	store := openStore(t)
	seedRuns(t, store)
	m := NewScoreboardModel(store, 100, 30)

	if len(m.runs) != 3 {
		t.Fatalf("%d runs for %s, expected 3", len(m.runs), m.gameID())
	}
	if m.runs[0].Score != 300 {
		t.Errorf("top run scored %d", m.runs[0].Score)
	}

	steps := []struct {
		key      tea.KeyMsg
		game     string
		expected int
	}{
		{tea.KeyMsg{Type: tea.KeyTab}, lanerunner.ID, 1},
		{tea.KeyMsg{Type: tea.KeyTab}, lanerunner.ID, 2},
		{tea.KeyMsg{Type: tea.KeyRight}, lanerunner.ClassicID, 1},
		{tea.KeyMsg{Type: tea.KeyTab}, lanerunner.ClassicID, 1},
		{tea.KeyMsg{Type: tea.KeyLeft}, lanerunner.ID, 3},
	}
	for i, s := range steps {
		m = updateScores(m, s.key)
		if m.gameID() != s.game || len(m.runs) != s.expected {
			t.Errorf("step %d: %s with %d runs, expected %s with %d", i, m.gameID(), len(m.runs), s.game, s.expected)
		}
	}
}

func TestScoreboardColumns(t *testing.T) {
	store := openStore(t)
	seedRuns(t, store)

	wide := NewScoreboardModel(store, 100, 30)
	if n := len(wide.table.Columns()); n != 6 {
		t.Errorf("wide table has %d columns", n)
	}
	narrow := updateScores(wide, tea.WindowSizeMsg{Width: 50, Height: 20})
	if n := len(narrow.table.Columns()); n != 4 {
		t.Errorf("narrow table has %d columns", n)
	}
	if rows := narrow.table.Rows(); len(rows) != 3 || len(rows[0]) != 4 {
		t.Errorf("narrow rows = %v", rows)
	}
}

func TestScoreboardBack(t *testing.T) {
	m := updateScores(NewScoreboardModel(nil, 80, 24), tea.KeyMsg{Type: tea.KeyEsc})
	if !m.IsGoingBack() || m.IsQuitting() {
		t.Errorf("IsGoingBack = %v, IsQuitting = %v", m.IsGoingBack(), m.IsQuitting())
	}
	if m.View() == "" {
		t.Error("embedded scoreboard cleared its view on back")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		ms       int64
		expected string
	}{
		{0, "0:00"},
		{999, "0:00"},
		{9000, "0:09"},
		{61000, "1:01"},
		{754000, "12:34"},
	}
	for _, tc := range tests {
		if got := formatDuration(tc.ms); got != tc.expected {
			t.Errorf("formatDuration(%d) = %q, expected %q", tc.ms, got, tc.expected)
		}
	}
}
