// Package config provides YAML-based configuration loading and difficulty
// tier management for the lane runner.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// RunnerConfig contains all tunables of the lane runner.
// Distances are world units (terminal cells in the TUI), speeds are units per
// millisecond and intervals/durations are milliseconds.
type RunnerConfig struct {
	Lanes      LanesConfig      `yaml:"lanes"`
	Player     PlayerConfig     `yaml:"player"`
	Traffic    TrafficConfig    `yaml:"traffic"`
	Pickups    PickupConfig     `yaml:"pickups"`
	PowerUps   PowerUpConfig    `yaml:"powerups"`
	Gameplay   GameplayConfig   `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Assets     AssetsConfig     `yaml:"assets"`
}

// Size is a bounding box size.
type Size struct {
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// Valid reports whether both dimensions are positive.
func (s Size) Valid() bool {
	return s.W > 0 && s.H > 0
}

// Sizes holds the placeholder bounding box of every entity kind.
type Sizes struct {
	Player  Size
	Traffic Size
	Pickup  Size
	PowerUp Size
}

// Sizes returns the configured bounding boxes.
func (c RunnerConfig) Sizes() Sizes {
	return Sizes{
		Player:  c.Player.Size,
		Traffic: c.Traffic.Size,
		Pickup:  c.Pickups.Size,
		PowerUp: c.PowerUps.Size,
	}
}

// LanesConfig defines the road layout.
type LanesConfig struct {
	Count int `yaml:"count"`
}

// PlayerConfig defines the player's vehicle.
type PlayerConfig struct {
	Size         Size    `yaml:"size"`
	BottomMargin float64 `yaml:"bottom_margin"` // Gap between the vehicle and the bottom edge
	StartLane    int     `yaml:"start_lane"`    // -1 = middle lane
}

// TrafficConfig defines oncoming traffic.
type TrafficConfig struct {
	Size            Size    `yaml:"size"`
	BaseSpeed       float64 `yaml:"base_speed"`
	SpawnIntervalMs float64 `yaml:"spawn_interval_ms"`
	MinGap          float64 `yaml:"min_gap"`      // Minimum trailing gap near the spawn edge
	LaneRetries     int     `yaml:"lane_retries"` // Lane picks attempted before skipping a spawn
}

// PickupConfig defines collectible seeds.
type PickupConfig struct {
	Size            Size    `yaml:"size"`
	BaseSpeed       float64 `yaml:"base_speed"`
	SpawnIntervalMs float64 `yaml:"spawn_interval_ms"`
	Points          int     `yaml:"points"`
}

// PowerUpConfig defines power-up tokens and their effects.
type PowerUpConfig struct {
	Size              Size           `yaml:"size"`
	BaseSpeed         float64        `yaml:"base_speed"`
	SpawnIntervalMs   float64        `yaml:"spawn_interval_ms"`
	SlowDurationMs    float64        `yaml:"slow_duration_ms"`
	ShieldDurationMs  float64        `yaml:"shield_duration_ms"`
	SlowMultiplier    float64        `yaml:"slow_multiplier"`      // Global speed multiplier while slow mode is active
	ShieldBreaksOnHit bool           `yaml:"shield_breaks_on_hit"` // false = absorbs every hit until it expires
	Weights           PowerUpWeights `yaml:"weights"`
}

// PowerUpWeights are relative spawn weights (higher = more common).
type PowerUpWeights struct {
	SlowSpeed int `yaml:"slow_speed"`
	Shield    int `yaml:"shield"`
	ExtraLife int `yaml:"extra_life"`
}

// Total returns the sum of all weights.
func (w PowerUpWeights) Total() int {
	return w.SlowSpeed + w.Shield + w.ExtraLife
}

// GameplayConfig defines lives and loop limits.
type GameplayConfig struct {
	InitialLives int     `yaml:"initial_lives"`
	MaxLives     int     `yaml:"max_lives"`    // Extra lives never push past this
	MaxDeltaMs   float64 `yaml:"max_delta_ms"` // Per-tick clamp after stalls
}

// DifficultyConfig defines the difficulty tier ladder.
type DifficultyConfig struct {
	Enabled     bool              `yaml:"enabled"`
	InitialTier int               `yaml:"initial_tier"`
	Progression ProgressionConfig `yaml:"progression"`
	Scaling     ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines what advances the tier.
type ProgressionConfig struct {
	Type           string  `yaml:"type"`             // "time", "score", "both" or "none"
	TierEveryMs    float64 `yaml:"tier_every_ms"`    // Survival time per tier
	TierEveryScore int     `yaml:"tier_every_score"` // Score per tier
}

// ScalingConfig defines what each tier does.
type ScalingConfig struct {
	MaxTier          int     `yaml:"max_tier"`
	SpeedStep        float64 `yaml:"speed_step"`         // Speed factor multiplied per tier
	MaxSpeedFactor   float64 `yaml:"max_speed_factor"`   // Cap on the speed factor
	DensityStep      float64 `yaml:"density_step"`       // Spawn interval factor multiplied per tier
	MinDensityFactor float64 `yaml:"min_density_factor"` // Floor on the spawn interval factor
}

// AssetsConfig names custom artwork. The engine only cares whether the host
// could resolve it; sizes fall back to the placeholders above when it cannot.
type AssetsConfig struct {
	PlayerURL           string `yaml:"player_url"`
	TrafficURL          string `yaml:"traffic_url"`
	UseDefaultsIfBroken bool   `yaml:"use_defaults_if_broken"`
}

// Progression types.
const (
	ProgressionTime  = "time"
	ProgressionScore = "score"
	ProgressionBoth  = "both"
	ProgressionNone  = "none"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value to a preset. Empty means "use config".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "":
		return "", nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// ApplyRunnerPreset modifies the config based on a difficulty preset.
func ApplyRunnerPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}

	cfg.Difficulty.Enabled = true
	switch preset {
	case DifficultyEasy:
		cfg.Difficulty.InitialTier = 0
		cfg.Gameplay.InitialLives = 5
		cfg.Gameplay.MaxLives = 5
	case DifficultyNormal:
		cfg.Difficulty.InitialTier = 1
	case DifficultyHard:
		cfg.Difficulty.InitialTier = 3
		cfg.Gameplay.InitialLives = 2
		cfg.Gameplay.MaxLives = 2
	}
}

// Validate reports the first invalid field.
func (c RunnerConfig) Validate() error {
	switch {
	case c.Lanes.Count < 1:
		return fmt.Errorf("%w: lanes.count must be >= 1, got %d", ErrInvalid, c.Lanes.Count)
	case !c.Player.Size.Valid():
		return fmt.Errorf("%w: player.size must be positive", ErrInvalid)
	case !c.Traffic.Size.Valid() || !c.Pickups.Size.Valid() || !c.PowerUps.Size.Valid():
		return fmt.Errorf("%w: entity sizes must be positive", ErrInvalid)
	case c.Traffic.BaseSpeed <= 0 || c.Pickups.BaseSpeed <= 0 || c.PowerUps.BaseSpeed <= 0:
		return fmt.Errorf("%w: base speeds must be positive", ErrInvalid)
	case c.Traffic.SpawnIntervalMs <= 0 || c.Pickups.SpawnIntervalMs <= 0 || c.PowerUps.SpawnIntervalMs <= 0:
		return fmt.Errorf("%w: spawn intervals must be positive", ErrInvalid)
	case c.Traffic.MinGap < 0:
		return fmt.Errorf("%w: traffic.min_gap must not be negative", ErrInvalid)
	case c.Traffic.LaneRetries < 1:
		return fmt.Errorf("%w: traffic.lane_retries must be >= 1", ErrInvalid)
	case c.Pickups.Points < 0:
		return fmt.Errorf("%w: pickups.points must not be negative", ErrInvalid)
	case c.PowerUps.SlowDurationMs <= 0 || c.PowerUps.ShieldDurationMs <= 0:
		return fmt.Errorf("%w: power-up durations must be positive", ErrInvalid)
	case c.PowerUps.SlowMultiplier <= 0 || c.PowerUps.SlowMultiplier > 1:
		return fmt.Errorf("%w: powerups.slow_multiplier must be in (0, 1], got %g", ErrInvalid, c.PowerUps.SlowMultiplier)
	case c.PowerUps.Weights.SlowSpeed < 0 || c.PowerUps.Weights.Shield < 0 || c.PowerUps.Weights.ExtraLife < 0:
		return fmt.Errorf("%w: power-up weights must not be negative", ErrInvalid)
	case c.Gameplay.InitialLives < 1:
		return fmt.Errorf("%w: gameplay.initial_lives must be >= 1", ErrInvalid)
	case c.Gameplay.MaxLives < c.Gameplay.InitialLives:
		return fmt.Errorf("%w: gameplay.max_lives must be >= initial_lives", ErrInvalid)
	case c.Gameplay.MaxDeltaMs <= 0:
		return fmt.Errorf("%w: gameplay.max_delta_ms must be positive", ErrInvalid)
	}
	return c.Difficulty.validate()
}

func (d DifficultyConfig) validate() error {
	switch d.Progression.Type {
	case ProgressionTime, ProgressionScore, ProgressionBoth, ProgressionNone:
	default:
		return fmt.Errorf("%w: difficulty.progression.type %q", ErrInvalid, d.Progression.Type)
	}
	switch {
	case d.InitialTier < 0 || d.InitialTier > d.Scaling.MaxTier:
		return fmt.Errorf("%w: difficulty.initial_tier must be in [0, max_tier]", ErrInvalid)
	case d.Scaling.SpeedStep < 1:
		return fmt.Errorf("%w: difficulty.scaling.speed_step must be >= 1", ErrInvalid)
	case d.Scaling.MaxSpeedFactor < 1:
		return fmt.Errorf("%w: difficulty.scaling.max_speed_factor must be >= 1", ErrInvalid)
	case d.Scaling.DensityStep <= 0 || d.Scaling.DensityStep > 1:
		return fmt.Errorf("%w: difficulty.scaling.density_step must be in (0, 1]", ErrInvalid)
	case d.Scaling.MinDensityFactor <= 0 || d.Scaling.MinDensityFactor > 1:
		return fmt.Errorf("%w: difficulty.scaling.min_density_factor must be in (0, 1]", ErrInvalid)
	}
	return nil
}
