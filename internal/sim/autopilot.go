package sim

import (
	"math"

	"github.com/vovakirdan/lane-runner/internal/core"
	"github.com/vovakirdan/lane-runner/internal/engine"
)

// lookAhead is how many player heights of road the autopilot watches.
const lookAhead = 3

// Autopilot steers away from oncoming traffic and toward tokens.
// The zero value is ready to use.
type Autopilot struct{}

// Decide returns the lane change to make for the given snapshot, if any.
func (Autopilot) Decide(s engine.Snapshot) (core.Action, bool) {
	if s.State != engine.StateGameplay || s.Geometry.Lanes < 2 {
		return core.ActionNone, false
	}

	p := s.Player
	horizon := p.H * lookAhead
	gaps := make([]float64, s.Geometry.Lanes)
	bonus := make([]bool, s.Geometry.Lanes)
	for i := range gaps {
		gaps[i] = math.Inf(1)
	}
	for _, en := range s.Entities {
		if en.Lane < 0 || en.Lane >= len(gaps) || en.Y > p.Y+p.H {
			continue // Off the road or already behind the player
		}
		gap := p.Y - (en.Y + en.H)
		switch en.Kind {
		case engine.KindTraffic:
			gaps[en.Lane] = min(gaps[en.Lane], gap)
		case engine.KindPickup, engine.KindPowerUp:
			if gap < horizon {
				bonus[en.Lane] = true
			}
		}
	}

	cur := p.Lane
	safe := func(lane int) bool { return gaps[lane] >= horizon }

	if safe(cur) {
		if bonus[cur] {
			return core.ActionNone, false
		}
		for _, lane := range []int{cur - 1, cur + 1} {
			if lane >= 0 && lane < len(gaps) && bonus[lane] && safe(lane) {
				return toward(cur, lane), true
			}
		}
		return core.ActionNone, false
	}

	best := cur
	for _, lane := range []int{cur - 1, cur + 1} {
		if lane >= 0 && lane < len(gaps) && gaps[lane] > gaps[best] {
			best = lane
		}
	}
	if best == cur {
		return core.ActionNone, false
	}
	return toward(cur, best), true
}

func toward(from, to int) core.Action {
	if to < from {
		return core.ActionMoveLeft
	}
	return core.ActionMoveRight
}
