package lanerunner

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
	"github.com/vovakirdan/lane-runner/internal/engine"
	"github.com/vovakirdan/lane-runner/internal/registry"
)

// isolate keeps user and working-directory configs out of the test.
func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	SetConfigPath("")
	SetDifficultyPreset("")
}

func runtimeConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
}

func resetGame(t *testing.T, g *Game, rc core.RuntimeConfig) {
	t.Helper()
	if err := g.Reset(rc); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	t.Cleanup(g.Close)
}

var frameClock = time.Unix(1_000_000, 0)

// frame delivers one host frame 16ms after the previous one.
func frame(g *Game) {
	frameClock = frameClock.Add(16 * time.Millisecond)
	g.Frame(frameClock)
}

func TestVariantsRegistered(t *testing.T) {
	for _, id := range []string{ID, ClassicID} {
		if !registry.Exists(id) {
			t.Errorf("%s not registered", id)
		}
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%s): %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, expected %q", g.ID(), id)
		}
	}
}

func TestResetInitialState(t *testing.T) {
	isolate(t)

	tests := []struct {
		game     *Game
		expected string
	}{
		{New(), "MODE_SELECTION"},
		{NewClassic(), "START_SCREEN"},
	}
	for _, tc := range tests {
		resetGame(t, tc.game, runtimeConfig())
		if got := tc.game.Status().State; got != tc.expected {
			t.Errorf("%s starts in %s, expected %s", tc.game.ID(), got, tc.expected)
		}
	}
}

func TestLayoutCentersRoad(t *testing.T) {
	isolate(t)
	g := NewClassic()
	resetGame(t, g, runtimeConfig())

	s := g.Snapshot()
	if s.Geometry.Width != 27 || s.Geometry.Height != 23 {
		t.Errorf("road = %vx%v, expected 27x23", s.Geometry.Width, s.Geometry.Height)
	}
	if g.roadX != 26 {
		t.Errorf("roadX = %d, expected 26", g.roadX)
	}

	g.Resize(20, 12)
	s = g.Snapshot()
	if s.Geometry.Width != 18 || s.Geometry.Height != 11 {
		t.Errorf("road after resize = %vx%v, expected 18x11", s.Geometry.Width, s.Geometry.Height)
	}
	if g.roadX != 1 {
		t.Errorf("roadX after resize = %d, expected 1", g.roadX)
	}
}

func TestResetRejectsTinyScreen(t *testing.T) {
	isolate(t)
	g := NewClassic()
	err := g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 1})
	if !errors.Is(err, engine.ErrInvalidOptions) {
		t.Errorf("Reset error = %v, expected ErrInvalidOptions", err)
	}
}

func TestResetCustomConfigError(t *testing.T) {
	isolate(t)
	SetConfigPath(filepath.Join(t.TempDir(), "missing.yaml"))
	t.Cleanup(func() { SetConfigPath("") })

	if err := NewClassic().Reset(runtimeConfig()); err == nil {
		t.Error("expected an error for a missing custom config")
	}
}

func TestDifficultyPresetApplied(t *testing.T) {
	isolate(t)
	SetDifficultyPreset("hard")
	t.Cleanup(func() { SetDifficultyPreset("") })

	g := NewClassic()
	resetGame(t, g, runtimeConfig())
	if g.cfg.Gameplay.InitialLives != 2 {
		t.Errorf("InitialLives = %d, expected hard preset value 2", g.cfg.Gameplay.InitialLives)
	}
	if s := g.Snapshot(); s.Tier != 3 {
		t.Errorf("Tier = %d, expected 3", s.Tier)
	}
}

func TestModeCursor(t *testing.T) {
	isolate(t)
	g := New()
	resetGame(t, g, runtimeConfig())

	g.Apply(core.NewIntent(core.ActionMoveRight))
	frame(g)
	if got := g.Status().State; got != "MODE_SELECTION" {
		t.Fatalf("moving the cursor changed state to %s", got)
	}
	if g.cursor != core.ModeLeaderboard {
		t.Fatalf("cursor = %v, expected leaderboard", g.cursor)
	}

	g.Apply(core.NewIntent(core.ActionStart))
	frame(g)
	st := g.Status()
	if st.State != "USERNAME_CREATION" || st.Mode != core.ModeLeaderboard {
		t.Errorf("after confirm: %s / %v", st.State, st.Mode)
	}
}

func TestCasualSkipsUsername(t *testing.T) {
	isolate(t)
	g := New()
	resetGame(t, g, runtimeConfig())

	g.Apply(core.NewIntent(core.ActionStart))
	frame(g)
	if got := g.Status().State; got != "START_SCREEN" {
		t.Errorf("casual mode led to %s, expected START_SCREEN", got)
	}
}

func TestPauseToggles(t *testing.T) {
	isolate(t)
	g := NewClassic()
	resetGame(t, g, runtimeConfig())

	steps := []struct {
		action   core.Action
		expected string
	}{
		{core.ActionStart, "GAMEPLAY"},
		{core.ActionPause, "PAUSED"},
		{core.ActionPause, "GAMEPLAY"},
	}
	for _, s := range steps {
		g.Apply(core.NewIntent(s.action))
		frame(g)
		if got := g.Status().State; got != s.expected {
			t.Fatalf("after %s: state %s, expected %s", s.action, got, s.expected)
		}
	}
}

func TestSubscriptionsSurviveReset(t *testing.T) {
	isolate(t)
	g := NewClassic()
	resetGame(t, g, runtimeConfig())

	var events []engine.Event
	unsubscribe := g.Subscribe(func(ev engine.Event) { events = append(events, ev) })

	resetGame(t, g, runtimeConfig())
	g.Apply(core.NewIntent(core.ActionStart))
	frame(g)

	var started bool
	for _, ev := range events {
		if sc, ok := ev.(engine.StateChanged); ok && sc.To == engine.StateGameplay {
			started = true
		}
	}
	if !started {
		t.Errorf("no StateChanged to GAMEPLAY among %v", events)
	}

	unsubscribe()
	n := len(events)
	g.Apply(core.NewIntent(core.ActionPause))
	frame(g)
	if len(events) != n {
		t.Error("events delivered after unsubscribe")
	}
}

func TestResetKeepsHighScore(t *testing.T) {
	isolate(t)
	g := NewClassic()
	rc := runtimeConfig()
	rc.HighScore = 50
	resetGame(t, g, rc)

	rc.HighScore = 0
	resetGame(t, g, rc)
	if got := g.Status().HighScore; got != 50 {
		t.Errorf("HighScore = %d, expected 50", got)
	}
}

func TestCloseStopsFrames(t *testing.T) {
	isolate(t)
	g := NewClassic()
	resetGame(t, g, runtimeConfig())

	g.Close()
	g.Apply(core.NewIntent(core.ActionStart))
	frame(g)
	if got := g.Status().State; got != "START_SCREEN" {
		t.Errorf("closed game moved to %s", got)
	}
	g.Close()
}

func TestRenderScreens(t *testing.T) {
	isolate(t)

	t.Run("mode selection", func(t *testing.T) {
		g := New()
		resetGame(t, g, runtimeConfig())
		scr := core.NewScreen(80, 24)
		g.Render(scr)
		out := scr.String()
		if !strings.Contains(out, "> Casual <") || !strings.Contains(out, "Leaderboard") {
			t.Errorf("mode selection screen:\n%s", out)
		}
	})

	t.Run("start screen and HUD", func(t *testing.T) {
		g := NewClassic()
		resetGame(t, g, runtimeConfig())
		scr := core.NewScreen(80, 24)
		g.Render(scr)
		if !strings.Contains(scr.String(), "Press Enter to start") {
			t.Errorf("start screen:\n%s", scr.String())
		}
		if !strings.Contains(scr.Row(0), "Score 0") {
			t.Errorf("HUD row = %q", scr.Row(0))
		}
		if got := strings.Count(scr.Row(0), string(LifeChar)); got != 3 {
			t.Errorf("HUD shows %d lives, expected 3", got)
		}
	})

	t.Run("player on the road", func(t *testing.T) {
		g := NewClassic()
		resetGame(t, g, runtimeConfig())
		g.Apply(core.NewIntent(core.ActionStart))
		frame(g)

		scr := core.NewScreen(80, 24)
		g.Render(scr)
		player := g.Snapshot().Player
		p := player.Box().ToCells()
		x, y := g.roadX+p.X+1, p.Y+hudRows
		if r := scr.Get(x, y); r != '▲' {
			t.Errorf("cell (%d,%d) = %q, expected the player's nose", x, y, r)
		}
		if r := scr.Get(g.roadX-1, 5); r != EdgeChar {
			t.Errorf("left road edge = %q", r)
		}
	})
}

func TestDrawBoxClipsAboveRoad(t *testing.T) {
	g := &Game{roadX: 2}
	scr := core.NewScreen(10, 6)
	g.drawBox(scr, core.NewRectF(0, -2, 1, 3), nil, BodyChar, core.ColorRed)

	if r := scr.Get(2, 0); r != ' ' {
		t.Errorf("entity above the road drawn over the HUD: %q", r)
	}
	if r := scr.Get(2, 1); r != BodyChar {
		t.Errorf("visible row not drawn: %q", r)
	}
}

func TestParseSprite(t *testing.T) {
	tests := []struct {
		name string
		in   string
		w, h int
		err  error
	}{
		{"block", "###\n###\n", 3, 2, nil},
		{"ragged", " ^\n/█\\\n\n\n", 3, 2, nil},
		{"crlf", "ab\r\ncd\r\n", 2, 2, nil},
		{"empty", "", 0, 0, ErrEmptySprite},
		{"blank lines", "\n\n", 0, 0, ErrEmptySprite},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := ParseSprite(strings.NewReader(tc.in))
			if !errors.Is(err, tc.err) {
				t.Fatalf("err = %v, expected %v", err, tc.err)
			}
			if s.W != tc.w || s.H != tc.h {
				t.Errorf("size = %dx%d, expected %dx%d", s.W, s.H, tc.w, tc.h)
			}
		})
	}
}

func TestLoadSprite(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/car.txt" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, "▄▄\n██\n")
	}))
	defer srv.Close()

	s, err := LoadSprite(t.Context(), srv.URL+"/car.txt")
	if err != nil || s.W != 2 || s.H != 2 {
		t.Errorf("http sprite = %+v, %v", s, err)
	}
	if _, err := LoadSprite(t.Context(), srv.URL+"/missing.txt"); err == nil {
		t.Error("expected an error for a 404")
	}

	path := filepath.Join(t.TempDir(), "player.txt")
	if err := os.WriteFile(path, []byte("A\nA\nA\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	s, err = LoadSprite(t.Context(), "file://"+path)
	if err != nil || s.W != 1 || s.H != 3 {
		t.Errorf("file sprite = %+v, %v", s, err)
	}
}

func TestLoadArtwork(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "player.txt")
	if err := os.WriteFile(good, []byte("/^\\\n|█|\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Run("none configured", func(t *testing.T) {
		_, info := loadArtwork(t.Context(), config.DefaultRunnerConfig())
		if info != nil {
			t.Errorf("info = %+v, expected nil", info)
		}
	})

	t.Run("loaded", func(t *testing.T) {
		cfg := config.DefaultRunnerConfig()
		cfg.Assets.PlayerURL = good
		art, info := loadArtwork(t.Context(), cfg)
		if info == nil || !info.Available {
			t.Fatalf("info = %+v", info)
		}
		if info.Sizes.Player != (config.Size{W: 3, H: 2}) {
			t.Errorf("player size = %+v", info.Sizes.Player)
		}
		if info.Sizes.Traffic != cfg.Traffic.Size {
			t.Errorf("traffic size should stay the placeholder: %+v", info.Sizes.Traffic)
		}
		if art.player == nil {
			t.Error("player sprite not kept")
		}
	})

	t.Run("broken", func(t *testing.T) {
		cfg := config.DefaultRunnerConfig()
		cfg.Assets.PlayerURL = good
		cfg.Assets.TrafficURL = filepath.Join(dir, "missing.txt")
		art, info := loadArtwork(t.Context(), cfg)
		if info == nil || info.Available {
			t.Fatalf("info = %+v, expected unavailable", info)
		}
		if art.player != nil || art.traffic != nil {
			t.Error("sprites kept for broken artwork")
		}
	})
}
