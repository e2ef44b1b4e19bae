package engine

import "github.com/vovakirdan/lane-runner/internal/config"

// PowerUpStatus is the state of one durable power-up.
type PowerUpStatus struct {
	Active      bool
	RemainingMs float64
	DurationMs  float64
}

// PowerUps tracks the durable power-ups. At most one instance of each type is
// active; collecting the same type again refreshes it to the full duration.
type PowerUps struct {
	cfg    config.PowerUpConfig
	slow   PowerUpStatus
	shield PowerUpStatus
}

// NewPowerUps creates an inactive power-up tracker.
func NewPowerUps(cfg config.PowerUpConfig) *PowerUps {
	p := &PowerUps{cfg: cfg}
	p.slow.DurationMs = cfg.SlowDurationMs
	p.shield.DurationMs = cfg.ShieldDurationMs
	return p
}

func (p *PowerUps) slot(t PowerUpType) *PowerUpStatus {
	switch t {
	case PowerUpSlowSpeed:
		return &p.slow
	case PowerUpShield:
		return &p.shield
	default:
		return nil
	}
}

// Activate starts or refreshes a durable power-up and returns its duration.
// Instant types return 0 and change nothing.
func (p *PowerUps) Activate(t PowerUpType) float64 {
	s := p.slot(t)
	if s == nil {
		return 0
	}
	s.Active = true
	s.RemainingMs = s.DurationMs
	return s.DurationMs
}

// Deactivate ends a durable power-up early. Reports whether it was active.
func (p *PowerUps) Deactivate(t PowerUpType) bool {
	s := p.slot(t)
	if s == nil || !s.Active {
		return false
	}
	s.Active = false
	s.RemainingMs = 0
	return true
}

// Tick counts active power-ups down and returns those that ended, slow first.
func (p *PowerUps) Tick(deltaMs float64) []PowerUpType {
	var ended []PowerUpType
	for _, t := range []PowerUpType{PowerUpSlowSpeed, PowerUpShield} {
		s := p.slot(t)
		if !s.Active {
			continue
		}
		s.RemainingMs -= deltaMs
		if s.RemainingMs <= 0 {
			s.Active = false
			s.RemainingMs = 0
			ended = append(ended, t)
		}
	}
	return ended
}

// Reset deactivates everything and returns the types that were active.
func (p *PowerUps) Reset() []PowerUpType {
	var ended []PowerUpType
	for _, t := range []PowerUpType{PowerUpSlowSpeed, PowerUpShield} {
		if p.Deactivate(t) {
			ended = append(ended, t)
		}
	}
	return ended
}

// Active reports whether a durable power-up is active.
func (p *PowerUps) Active(t PowerUpType) bool {
	s := p.slot(t)
	return s != nil && s.Active
}

// Status returns the state of a durable power-up.
func (p *PowerUps) Status(t PowerUpType) PowerUpStatus {
	if s := p.slot(t); s != nil {
		return *s
	}
	return PowerUpStatus{}
}

// SpeedMultiplier returns the global speed multiplier.
func (p *PowerUps) SpeedMultiplier() float64 {
	if p.slow.Active {
		return p.cfg.SlowMultiplier
	}
	return 1.0
}

// ShieldBreaksOnHit reports whether the shield ends after absorbing one hit.
func (p *PowerUps) ShieldBreaksOnHit() bool {
	return p.cfg.ShieldBreaksOnHit
}
