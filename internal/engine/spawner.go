package engine

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lane-runner/internal/config"
)

// spawnKinds lists the spawned kinds in the order they are processed each tick.
var spawnKinds = [...]Kind{KindTraffic, KindPickup, KindPowerUp}

// Spawner introduces traffic, pickups and power-up tokens on per-kind timers.
type Spawner struct {
	cfg   *config.RunnerConfig
	sizes config.Sizes
	rng   *rng
	log   *log.Logger
	acc   [4]float64 // Indexed by Kind
}

// newSpawner creates a spawner drawing lanes from the given RNG.
func newSpawner(cfg *config.RunnerConfig, sizes config.Sizes, r *rng, logger *log.Logger) *Spawner {
	return &Spawner{cfg: cfg, sizes: sizes, rng: r, log: logger}
}

// Reset zeroes every accumulator.
func (sp *Spawner) Reset() {
	sp.acc = [4]float64{}
}

// Accumulated returns the time banked toward the next spawn of a kind.
func (sp *Spawner) Accumulated(k Kind) float64 {
	if k <= KindPlayer || int(k) >= len(sp.acc) {
		return 0
	}
	return sp.acc[k]
}

func (sp *Spawner) baseInterval(k Kind) float64 {
	switch k {
	case KindTraffic:
		return sp.cfg.Traffic.SpawnIntervalMs
	case KindPickup:
		return sp.cfg.Pickups.SpawnIntervalMs
	case KindPowerUp:
		return sp.cfg.PowerUps.SpawnIntervalMs
	}
	return 0
}

// Update advances every accumulator by deltaMs and spawns at most one entity
// of each kind whose interval has elapsed. A skipped traffic spawn still
// consumes its interval.
func (sp *Spawner) Update(deltaMs, intervalFactor, speedFactor float64, store *Store, geo Geometry) {
	for _, k := range spawnKinds {
		interval := sp.baseInterval(k) * intervalFactor
		if interval <= 0 {
			continue
		}
		sp.acc[k] += deltaMs
		if sp.acc[k] < interval {
			continue
		}
		// Keep the overshoot, but never bank more than one pending spawn.
		sp.acc[k] = min(sp.acc[k]-interval, interval)

		switch k {
		case KindTraffic:
			sp.spawnTraffic(speedFactor, store, geo)
		case KindPickup:
			sp.spawnPickup(speedFactor, store, geo)
		case KindPowerUp:
			sp.spawnPowerUp(speedFactor, store, geo)
		}
	}
}

func (sp *Spawner) spawnTraffic(speedFactor float64, store *Store, geo Geometry) {
	lane, ok := sp.pickTrafficLane(store, geo)
	if !ok {
		sp.log.Debug("traffic spawn skipped", "reason", "lanes blocked near spawn edge")
		return
	}
	size := sp.sizes.Traffic
	store.Add(&Entity{
		ID:    store.NextID(),
		Kind:  KindTraffic,
		Lane:  lane,
		X:     geo.LaneX(lane, size.W),
		Y:     -size.H,
		W:     size.W,
		H:     size.H,
		Speed: sp.cfg.Traffic.BaseSpeed * speedFactor,
	})
}

// pickTrafficLane tries a bounded number of random lanes. A lane is rejected
// when traffic in it is still within min_gap of the spawn edge, or when taking
// it would leave every lane blocked there at once.
func (sp *Spawner) pickTrafficLane(store *Store, geo Geometry) (int, bool) {
	blocked := make([]bool, geo.Lanes)
	nBlocked := 0
	store.Each(func(e *Entity) {
		if e.Kind != KindTraffic || e.Y >= sp.cfg.Traffic.MinGap {
			return
		}
		if e.Lane >= 0 && e.Lane < geo.Lanes && !blocked[e.Lane] {
			blocked[e.Lane] = true
			nBlocked++
		}
	})

	for range sp.cfg.Traffic.LaneRetries {
		lane := sp.rng.intn(geo.Lanes)
		if blocked[lane] {
			continue
		}
		if geo.Lanes > 1 && nBlocked+1 == geo.Lanes {
			continue
		}
		return lane, true
	}
	return 0, false
}

func (sp *Spawner) spawnPickup(speedFactor float64, store *Store, geo Geometry) {
	lane := sp.rng.intn(geo.Lanes)
	size := sp.sizes.Pickup
	store.Add(&Entity{
		ID:     store.NextID(),
		Kind:   KindPickup,
		Lane:   lane,
		X:      geo.LaneX(lane, size.W),
		Y:      -size.H,
		W:      size.W,
		H:      size.H,
		Speed:  sp.cfg.Pickups.BaseSpeed * speedFactor,
		Points: sp.cfg.Pickups.Points,
	})
}

func (sp *Spawner) spawnPowerUp(speedFactor float64, store *Store, geo Geometry) {
	t, ok := sp.rollPowerUp()
	if !ok {
		return
	}
	lane := sp.rng.intn(geo.Lanes)
	size := sp.sizes.PowerUp
	store.Add(&Entity{
		ID:      store.NextID(),
		Kind:    KindPowerUp,
		Lane:    lane,
		X:       geo.LaneX(lane, size.W),
		Y:       -size.H,
		W:       size.W,
		H:       size.H,
		Speed:   sp.cfg.PowerUps.BaseSpeed * speedFactor,
		PowerUp: t,
	})
}

// rollPowerUp selects a power-up type based on weights.
func (sp *Spawner) rollPowerUp() (PowerUpType, bool) {
	w := sp.cfg.PowerUps.Weights
	total := w.Total()
	if total <= 0 {
		return 0, false
	}

	roll := sp.rng.intn(total)
	cumulative := 0
	weights := []struct {
		Type   PowerUpType
		Weight int
	}{
		{PowerUpSlowSpeed, w.SlowSpeed},
		{PowerUpShield, w.Shield},
		{PowerUpExtraLife, w.ExtraLife},
	}
	for _, e := range weights {
		cumulative += e.Weight
		if roll < cumulative {
			return e.Type, true
		}
	}
	return PowerUpSlowSpeed, true
}
