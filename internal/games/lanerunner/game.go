// Package lanerunner is the arcade cabinet for the lane runner engine.
// It loads the runner config, feeds host frames and intents to an
// engine.Engine and renders engine snapshots into the cell screen.
package lanerunner

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
	"github.com/vovakirdan/lane-runner/internal/engine"
	"github.com/vovakirdan/lane-runner/internal/registry"
)

// Registered variants.
const (
	ID        = "lanerunner"
	ClassicID = "lanerunner_classic"
)

const (
	hudRows   = 1 // Score line above the road
	laneCells = 9 // Preferred lane width in cells
)

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	logger           = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names mean
// "use the config as is".
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// SetLogger sets the logger handed to new engines.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// hostSource is a tick source driven by the host's own frame messages.
type hostSource struct {
	frame func(now time.Time)
}

func (s *hostSource) Start(frame func(now time.Time)) func() {
	s.frame = frame
	return func() { s.frame = nil }
}

func (s *hostSource) push(now time.Time) {
	if s.frame != nil {
		s.frame(now)
	}
}

// Game adapts an engine to the registry.Game interface.
type Game struct {
	id      string
	title   string
	variant engine.Variant

	eng     *engine.Engine
	src     *hostSource
	cfg     config.RunnerConfig
	art     artwork
	runtime core.RuntimeConfig
	roadX   int       // Screen column of the road's left edge
	cursor  core.Mode // Highlighted entry on the mode selection screen

	observers []observer
	nextObs   int
}

type observer struct {
	id int
	fn engine.Observer
}

// New creates the full variant: mode selection, usernames and leaderboard.
func New() *Game {
	return &Game{id: ID, title: "Lane Runner", variant: engine.VariantModes}
}

// NewClassic creates the variant that opens on the start screen.
func NewClassic() *Game {
	return &Game{id: ClassicID, title: "Lane Runner (Classic)", variant: engine.VariantClassic}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Reset loads the config and builds a fresh engine sized to the screen.
// The best score seen so far survives the reset.
func (g *Game) Reset(runtime core.RuntimeConfig) error {
	cfg, err := config.LoadRunner(configPath)
	if err != nil {
		return fmt.Errorf("lanerunner: %w", err)
	}
	if difficultyPreset != "" {
		config.ApplyRunnerPreset(&cfg, difficultyPreset)
	}

	highScore := runtime.HighScore
	if g.eng != nil {
		highScore = max(highScore, g.eng.HighScore())
		g.eng.Cleanup()
		g.eng = nil
	}

	art, assets := loadArtwork(context.Background(), cfg)
	roadW, roadH := g.layout(runtime.ScreenW, runtime.ScreenH, cfg.Lanes.Count)

	eng, err := engine.New(engine.Options{
		Width:     float64(roadW),
		Height:    float64(roadH),
		Config:    &cfg,
		Variant:   g.variant,
		Seed:      runtime.Seed,
		HighScore: highScore,
		Assets:    assets,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("lanerunner: %w", err)
	}

	g.cfg = cfg
	g.art = art
	g.runtime = runtime
	g.eng = eng
	g.cursor = core.ModeCasual
	g.src = &hostSource{}
	eng.Subscribe(g.forward)
	eng.Attach(g.src)
	return nil
}

// layout centers a road of laneCells per lane, shrinking it to the screen.
func (g *Game) layout(screenW, screenH, lanes int) (roadW, roadH int) {
	roadW = min(lanes*laneCells, screenW-2)
	roadW = max(roadW, lanes)
	g.roadX = max((screenW-roadW)/2, 0)
	return roadW, screenH - hudRows
}

// Apply routes an intent to the engine. Mode selection is driven by a
// cursor: left/right move it and start confirms it.
func (g *Game) Apply(in core.Intent) {
	if g.eng == nil {
		return
	}
	switch g.eng.State() {
	case engine.StateModeSelection:
		switch in.Action {
		case core.ActionMoveLeft, core.ActionMoveRight:
			if g.cursor == core.ModeCasual {
				g.cursor = core.ModeLeaderboard
			} else {
				g.cursor = core.ModeCasual
			}
			return
		case core.ActionStart:
			g.eng.SelectMode(g.cursor)
			return
		}
	case engine.StatePaused:
		if in.Action == core.ActionPause {
			g.eng.ResumeGame()
			return
		}
	}
	g.eng.Enqueue(in)
}

// Frame advances the engine to the host's frame time.
func (g *Game) Frame(now time.Time) {
	if g.src != nil {
		g.src.push(now)
	}
}

// Resize keeps the run going on a new screen size.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW = width
	g.runtime.ScreenH = height
	if g.eng == nil {
		return
	}
	roadW, roadH := g.layout(width, height, g.cfg.Lanes.Count)
	g.eng.Resize(float64(roadW), float64(roadH))
}

// Status returns the engine's state summary.
func (g *Game) Status() core.Status {
	if g.eng == nil {
		return core.Status{}
	}
	return g.eng.Status()
}

// Snapshot returns the engine's full state for hosts that draw their own HUD.
func (g *Game) Snapshot() engine.Snapshot {
	if g.eng == nil {
		return engine.Snapshot{}
	}
	return g.eng.Snapshot()
}

// Subscribe registers fn for engine events. Subscriptions survive Reset.
func (g *Game) Subscribe(fn engine.Observer) (unsubscribe func()) {
	g.nextObs++
	id := g.nextObs
	g.observers = append(g.observers, observer{id: id, fn: fn})
	return func() {
		for i, o := range g.observers {
			if o.id == id {
				g.observers = append(g.observers[:i:i], g.observers[i+1:]...)
				return
			}
		}
	}
}

func (g *Game) forward(ev engine.Event) {
	for _, o := range g.observers {
		o.fn(ev)
	}
}

// Close stops the engine.
func (g *Game) Close() {
	if g.eng != nil {
		g.eng.Cleanup()
	}
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
	registry.Register(ClassicID, func() registry.Game {
		return NewClassic()
	})
}
