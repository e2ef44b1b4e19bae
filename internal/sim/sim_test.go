package sim

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
	"github.com/vovakirdan/lane-runner/internal/engine"
)

func snapshot(playerLane int, entities ...engine.Entity) engine.Snapshot {
	return engine.Snapshot{
		State:    engine.StateGameplay,
		Geometry: engine.Geometry{Width: 27, Height: 23, Lanes: 3},
		Player:   engine.Entity{Kind: engine.KindPlayer, Lane: playerLane, Y: 19, W: 3, H: 3},
		Entities: entities,
	}
}

func traffic(lane int, y float64) engine.Entity {
	return engine.Entity{Kind: engine.KindTraffic, Lane: lane, Y: y, W: 3, H: 3}
}

func TestAutopilotDecide(t *testing.T) {
	tests := []struct {
		name     string
		snap     engine.Snapshot
		expected core.Action
		move     bool
	}{
		{
			name:     "empty road",
			snap:     snapshot(1),
			expected: core.ActionNone,
		},
		{
			name:     "far traffic",
			snap:     snapshot(1, traffic(1, 0)),
			expected: core.ActionNone,
		},
		{
			name:     "dodge left",
			snap:     snapshot(1, traffic(1, 14), traffic(2, 12)),
			expected: core.ActionMoveLeft,
			move:     true,
		},
		{
			name:     "dodge right",
			snap:     snapshot(1, traffic(1, 14), traffic(0, 13)),
			expected: core.ActionMoveRight,
			move:     true,
		},
		{
			name:     "edge lane",
			snap:     snapshot(0, traffic(0, 14)),
			expected: core.ActionMoveRight,
			move:     true,
		},
		{
			name:     "passed traffic ignored",
			snap:     snapshot(1, traffic(1, 22.5)),
			expected: core.ActionNone,
		},
		{
			name:     "chase pickup",
			snap:     snapshot(1, engine.Entity{Kind: engine.KindPickup, Lane: 2, Y: 12, W: 1, H: 1}),
			expected: core.ActionMoveRight,
			move:     true,
		},
		{
			name: "pickup behind traffic",
			snap: snapshot(1,
				engine.Entity{Kind: engine.KindPickup, Lane: 2, Y: 12, W: 1, H: 1},
				traffic(2, 10)),
			expected: core.ActionNone,
		},
		{
			name: "not playing",
			snap: func() engine.Snapshot {
				s := snapshot(1, traffic(1, 14))
				s.State = engine.StatePaused
				return s
			}(),
			expected: core.ActionNone,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var pilot Autopilot
			action, ok := pilot.Decide(tc.snap)
			if ok != tc.move || action != tc.expected {
				t.Errorf("Decide = %s, %v; expected %s, %v", action, ok, tc.expected, tc.move)
			}
		})
	}
}

func TestRunDeterministic(t *testing.T) {
	opts := Options{Seed: 42, Frames: 600, Autopilot: true}

	first, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	second, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("same seed gave different runs:\n%+v\n%+v", first, second)
	}
	if first.Frames == 0 || first.Frames > opts.Frames {
		t.Errorf("Frames = %d", first.Frames)
	}
	if first.Events["StateChanged"] == 0 {
		t.Error("start of the run was not observed")
	}
	if !first.GameOver && first.SurvivedMs <= 0 {
		t.Errorf("run still going but SurvivedMs = %v", first.SurvivedMs)
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Lanes.Count = 0

	_, err := Run(context.Background(), Options{Config: &cfg})
	if !errors.Is(err, engine.ErrInvalidOptions) {
		t.Errorf("Run error = %v, expected ErrInvalidOptions", err)
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Run(ctx, Options{Seed: 1})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run error = %v, expected context.Canceled", err)
	}
	if res.Frames != 0 {
		t.Errorf("canceled run played %d frames", res.Frames)
	}
}

func TestResultYAML(t *testing.T) {
	res := Result{Seed: 7, Frames: 10, State: "GAMEPLAY", Score: 30, Events: map[string]int{"ScoreChanged": 3}}
	out, err := res.YAML()
	if err != nil {
		t.Fatalf("YAML: %v", err)
	}
	for _, want := range []string{"seed: 7", "score: 30", "ScoreChanged: 3", "state: GAMEPLAY"} {
		if !strings.Contains(string(out), want) {
			t.Errorf("YAML output missing %q:\n%s", want, out)
		}
	}
}
