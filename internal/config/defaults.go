package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the default lane runner configuration.
// It mirrors defaults/runner.yaml and is used when the embedded file fails to parse.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Lanes: LanesConfig{Count: 3},
		Player: PlayerConfig{
			Size:         Size{W: 3, H: 3},
			BottomMargin: 1,
			StartLane:    -1,
		},
		Traffic: TrafficConfig{
			Size:            Size{W: 3, H: 3},
			BaseSpeed:       0.012,
			SpawnIntervalMs: 900,
			MinGap:          4,
			LaneRetries:     3,
		},
		Pickups: PickupConfig{
			Size:            Size{W: 1, H: 1},
			BaseSpeed:       0.012,
			SpawnIntervalMs: 1600,
			Points:          10,
		},
		PowerUps: PowerUpConfig{
			Size:             Size{W: 1, H: 1},
			BaseSpeed:        0.012,
			SpawnIntervalMs:  7000,
			SlowDurationMs:   5000,
			ShieldDurationMs: 3000,
			SlowMultiplier:   0.5,
			Weights: PowerUpWeights{
				SlowSpeed: 4,
				Shield:    4,
				ExtraLife: 2,
			},
		},
		Gameplay: GameplayConfig{
			InitialLives: 3,
			MaxLives:     3,
			MaxDeltaMs:   100,
		},
		Difficulty: DifficultyConfig{
			Enabled:     true,
			InitialTier: 0,
			Progression: ProgressionConfig{
				Type:           ProgressionTime,
				TierEveryMs:    15000,
				TierEveryScore: 100,
			},
			Scaling: ScalingConfig{
				MaxTier:          10,
				SpeedStep:        1.1,
				MaxSpeedFactor:   2.5,
				DensityStep:      0.92,
				MinDensityFactor: 0.4,
			},
		},
		Assets: AssetsConfig{
			UseDefaultsIfBroken: true,
		},
	}
}
