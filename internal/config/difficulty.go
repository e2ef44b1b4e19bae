package config

import "math"

// TierLadder maps survival time and score to a discrete difficulty tier and
// the speed and spawn density factors of each tier.
type TierLadder struct {
	cfg         DifficultyConfig
	initialTier int
}

// NewTierLadder creates a tier ladder.
func NewTierLadder(cfg DifficultyConfig) *TierLadder {
	l := &TierLadder{cfg: cfg}
	l.SetInitialTier(cfg.InitialTier)
	return l
}

// SetInitialTier overrides the starting tier, clamped to [0, max_tier].
func (l *TierLadder) SetInitialTier(tier int) {
	l.initialTier = clampTier(tier, l.cfg.Scaling.MaxTier)
}

// InitialTier returns the tier every run starts at.
func (l *TierLadder) InitialTier() int {
	return l.initialTier
}

// IsEnabled returns whether tier progression is active.
func (l *TierLadder) IsEnabled() bool {
	return l.cfg.Enabled && l.cfg.Progression.Type != ProgressionNone
}

// Tier returns the tier for the given survival time and score.
// The result never decreases as either argument grows.
func (l *TierLadder) Tier(elapsedMs float64, score int) int {
	if !l.IsEnabled() {
		return l.initialTier
	}

	byTime := 0
	if every := l.cfg.Progression.TierEveryMs; every > 0 && elapsedMs > 0 {
		byTime = int(math.Floor(elapsedMs / every))
	}
	byScore := 0
	if every := l.cfg.Progression.TierEveryScore; every > 0 && score > 0 {
		byScore = score / every
	}

	var steps int
	switch l.cfg.Progression.Type {
	case ProgressionTime:
		steps = byTime
	case ProgressionScore:
		steps = byScore
	case ProgressionBoth:
		steps = max(byTime, byScore)
	}
	return clampTier(l.initialTier+steps, l.cfg.Scaling.MaxTier)
}

// SpeedFactor returns the base speed multiplier of a tier, capped at max_speed_factor.
func (l *TierLadder) SpeedFactor(tier int) float64 {
	f := math.Pow(l.cfg.Scaling.SpeedStep, float64(max(tier, 0)))
	if limit := l.cfg.Scaling.MaxSpeedFactor; limit > 0 && f > limit {
		return limit
	}
	return f
}

// IntervalFactor returns the spawn interval multiplier of a tier, floored at
// min_density_factor. Smaller means denser spawns.
func (l *TierLadder) IntervalFactor(tier int) float64 {
	f := math.Pow(l.cfg.Scaling.DensityStep, float64(max(tier, 0)))
	if floor := l.cfg.Scaling.MinDensityFactor; floor > 0 && f < floor {
		return floor
	}
	return f
}

func clampTier(tier, maxTier int) int {
	if tier < 0 {
		return 0
	}
	if maxTier >= 0 && tier > maxTier {
		return maxTier
	}
	return tier
}
