package engine

import "github.com/vovakirdan/lane-runner/internal/core"

// Snapshot is a copy of everything a renderer or HUD needs.
type Snapshot struct {
	State    GameState
	Mode     core.Mode
	Username string

	Score        int
	Lives        int
	InitialLives int
	HighScore    int

	Tier            int
	SpeedFactor     float64 // Tier speed factor applied to new spawns
	SpeedMultiplier float64 // 1.0, or the slow multiplier while slow mode is active
	ElapsedMs       float64 // Survival time of the current run

	Geometry Geometry
	Player   Entity
	Entities []Entity // Non-player entities in creation order

	Slow   PowerUpStatus
	Shield PowerUpStatus
}

// Snapshot returns a copy of the current simulation state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := Snapshot{
		State:           e.state,
		Mode:            e.mode,
		Username:        e.username,
		Score:           e.ledger.Score(),
		Lives:           e.ledger.Lives(),
		InitialLives:    e.ledger.InitialLives(),
		HighScore:       e.highScore,
		Tier:            e.tier,
		SpeedFactor:     e.ladder.SpeedFactor(e.tier),
		SpeedMultiplier: e.powerUps.SpeedMultiplier(),
		ElapsedMs:       e.elapsedMs,
		Geometry:        e.geo,
		Player:          *e.player,
		Entities:        make([]Entity, 0, e.store.Len()),
		Slow:            e.powerUps.Status(PowerUpSlowSpeed),
		Shield:          e.powerUps.Status(PowerUpShield),
	}
	e.store.Each(func(en *Entity) {
		if en.Kind != KindPlayer {
			s.Entities = append(s.Entities, *en)
		}
	})
	return s
}

// Status returns the compact summary used by the game cabinet.
func (e *Engine) Status() core.Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return core.Status{
		Score:     e.ledger.Score(),
		Lives:     e.ledger.Lives(),
		HighScore: e.highScore,
		State:     e.state.String(),
		GameOver:  e.state == StateGameOver,
		Paused:    e.state == StatePaused,
		Mode:      e.mode,
		Username:  e.username,
	}
}
