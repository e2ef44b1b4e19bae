// Package sim runs the engine headless on synthetic time, optionally with
// an autopilot steering the player. It backs the simulate command and is
// handy for checking tuning changes without a terminal.
package sim

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
	"github.com/vovakirdan/lane-runner/internal/engine"
)

const (
	DefaultFrames        = 3600
	DefaultFrameDuration = 16 * time.Millisecond
	DefaultWidth         = 27
	DefaultHeight        = 23
)

// Options configures a simulated run.
type Options struct {
	Config        *config.RunnerConfig // nil = config.DefaultRunnerConfig()
	Seed          int64
	Frames        int
	FrameDuration time.Duration
	Width, Height float64
	Autopilot     bool
	Logger        *log.Logger
}

func (o *Options) applyDefaults() {
	if o.Frames <= 0 {
		o.Frames = DefaultFrames
	}
	if o.FrameDuration <= 0 {
		o.FrameDuration = DefaultFrameDuration
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}

// Result summarizes a simulated run.
type Result struct {
	Seed         int64          `yaml:"seed"`
	Frames       int            `yaml:"frames"`
	State        string         `yaml:"state"`
	GameOver     bool           `yaml:"game_over"`
	Score        int            `yaml:"score"`
	HighScore    int            `yaml:"high_score"`
	NewHighScore bool           `yaml:"new_high_score"`
	Tier         int            `yaml:"tier"`
	Lives        int            `yaml:"lives"`
	SurvivedMs   float64        `yaml:"survived_ms"`
	LaneChanges  int            `yaml:"lane_changes"`
	Events       map[string]int `yaml:"events"`
}

// YAML renders the result as a YAML document.
func (r Result) YAML() ([]byte, error) {
	out, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("sim: marshal result: %w", err)
	}
	return out, nil
}

// Run plays one classic run for at most opts.Frames frames, stopping early
// on game over. The context is checked between frames.
func Run(ctx context.Context, opts Options) (Result, error) {
	opts.applyDefaults()

	eng, err := engine.New(engine.Options{
		Width:   opts.Width,
		Height:  opts.Height,
		Config:  opts.Config,
		Variant: engine.VariantClassic,
		Seed:    opts.Seed,
		Logger:  opts.Logger,
	})
	if err != nil {
		return Result{}, fmt.Errorf("sim: %w", err)
	}
	defer eng.Cleanup()

	res := Result{Seed: opts.Seed, Events: make(map[string]int)}
	eng.Subscribe(func(ev engine.Event) {
		res.Events[eventName(ev)]++
		if over, ok := ev.(engine.GameOver); ok {
			res.NewHighScore = over.NewHighScore
		}
	})

	src := engine.NewManualSource(time.Unix(0, 0))
	eng.Attach(src)
	eng.StartGame()

	var pilot Autopilot
	for res.Frames < opts.Frames {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		src.Advance(opts.FrameDuration)
		res.Frames++

		snap := eng.Snapshot()
		if snap.State == engine.StateGameOver {
			break
		}
		if !opts.Autopilot {
			continue
		}
		if action, ok := pilot.Decide(snap); ok {
			eng.Enqueue(core.NewIntent(action))
			res.LaneChanges++
		}
	}

	snap := eng.Snapshot()
	res.State = snap.State.String()
	res.GameOver = snap.State == engine.StateGameOver
	res.Score = snap.Score
	res.HighScore = snap.HighScore
	res.Tier = snap.Tier
	res.Lives = snap.Lives
	res.SurvivedMs = snap.ElapsedMs

	opts.Logger.Info("simulation finished",
		"seed", res.Seed,
		"frames", res.Frames,
		"score", res.Score,
		"tier", res.Tier,
		"game_over", res.GameOver)
	return res, nil
}

// eventName returns the bare type name of an event, e.g. "Collision".
func eventName(ev engine.Event) string {
	name := fmt.Sprintf("%T", ev)
	return name[strings.LastIndexByte(name, '.')+1:]
}
