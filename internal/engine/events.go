package engine

import "github.com/vovakirdan/lane-runner/internal/core"

// Event is one notification emitted by the engine. The set of variants is closed.
type Event interface {
	engineEvent()
}

// Observer receives engine events. Observers run after the engine has
// released its lock, so they may call any engine method. Events from a Tick
// made inside an observer are delivered after the observer returns.
type Observer func(Event)

// ScoreChanged is emitted whenever the score changes, including resets.
type ScoreChanged struct {
	Score int
}

func (ScoreChanged) engineEvent() {}

// LivesChanged is emitted whenever the remaining lives change.
type LivesChanged struct {
	Lives int
}

func (LivesChanged) engineEvent() {}

// StateChanged is emitted on every game state transition.
type StateChanged struct {
	From GameState
	To   GameState
}

func (StateChanged) engineEvent() {}

// PowerUpStarted is emitted when a power-up token is collected.
// DurationMs is 0 for instant power-ups.
type PowerUpStarted struct {
	Type       PowerUpType
	DurationMs float64
}

func (PowerUpStarted) engineEvent() {}

// PowerUpEnded is emitted when a durable power-up stops being active.
type PowerUpEnded struct {
	Type PowerUpType
}

func (PowerUpEnded) engineEvent() {}

// Collision is emitted when unshielded traffic hits the player.
type Collision struct {
	Lane  int
	Lives int // Lives left after the hit
}

func (Collision) engineEvent() {}

// PickupCollected is emitted when the player collects a pickup.
type PickupCollected struct {
	Points int
	Score  int // Score after collection
}

func (PickupCollected) engineEvent() {}

// ShieldAbsorbed is emitted when the shield takes a traffic hit.
type ShieldAbsorbed struct {
	Lane int
}

func (ShieldAbsorbed) engineEvent() {}

// TierChanged is emitted when the difficulty tier changes.
type TierChanged struct {
	Tier        int
	SpeedFactor float64
}

func (TierChanged) engineEvent() {}

// GameOver is emitted once per run when the last life is lost.
type GameOver struct {
	FinalScore   int
	HighScore    int // High score after this run
	NewHighScore bool
	Mode         core.Mode
	Username     string
	Tier         int
	SurvivedMs   float64
}

func (GameOver) engineEvent() {}

// UsernameRejected is emitted when a submitted username fails validation.
type UsernameRejected struct {
	Username string
	Reason   string
}

func (UsernameRejected) engineEvent() {}
