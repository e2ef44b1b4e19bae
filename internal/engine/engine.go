// Package engine implements the lane runner simulation: spawning, movement,
// difficulty tiers, collisions, power-ups, score and lives, and the game
// state machine. It has no I/O of its own; hosts feed it intents and frame
// times and observe it through events and snapshots.
package engine

import (
	"math"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
)

// command is one queued input, applied at the start of the next tick.
type command struct {
	intent   core.Intent
	setState bool
	target   GameState
}

type observerEntry struct {
	id int
	fn Observer
}

// Engine is one independent simulation. All methods are safe for concurrent
// use; commands are queued and take effect at the start of the next tick.
// Observers receive events in tick order even when ticks race: whichever
// Tick call is already delivering events also delivers later ticks' events,
// so a Tick may return before its own events have been observed.
type Engine struct {
	mu sync.Mutex

	cfg   config.RunnerConfig
	sizes config.Sizes
	geo   Geometry
	log   *log.Logger

	store    *Store
	player   *Entity
	spawner  *Spawner
	ladder   *config.TierLadder
	powerUps *PowerUps
	ledger   Ledger

	state     GameState
	mode      core.Mode
	username  string
	highScore int
	tier      int
	elapsedMs float64

	queue       []command
	pending     []Event // Emitted, not yet delivered, in tick order
	dispatching bool    // A Tick call is draining pending

	loop       *Loop
	stopSource func()
	closed     bool

	obsMu     sync.Mutex
	observers []observerEntry
	nextObs   int
}

// New creates an engine. It is the only engine call that can fail.
func New(opts Options) (*Engine, error) {
	cfg, err := opts.validate()
	if err != nil {
		return nil, err
	}

	logger := opts.logger()
	e := &Engine{
		cfg:       cfg,
		log:       logger,
		geo:       Geometry{Width: opts.Width, Height: opts.Height, Lanes: cfg.Lanes.Count},
		store:     NewStore(),
		ladder:    config.NewTierLadder(cfg.Difficulty),
		powerUps:  NewPowerUps(cfg.PowerUps),
		ledger:    NewLedger(cfg.Gameplay.InitialLives, cfg.Gameplay.MaxLives),
		state:     opts.Variant.InitialState(),
		highScore: max(opts.HighScore, 0),
	}

	e.sizes, err = resolveSizes(&e.cfg, opts.Assets, logger)
	if err != nil {
		return nil, err
	}
	e.spawner = newSpawner(&e.cfg, e.sizes, newRNG(opts.Seed), logger)
	e.tier = e.ladder.InitialTier()
	e.placePlayer()

	logger.Debug("engine created",
		"state", e.state,
		"lanes", e.geo.Lanes,
		"width", e.geo.Width,
		"height", e.geo.Height,
		"seed", opts.Seed)
	return e, nil
}

// placePlayer creates a fresh player vehicle in the start lane.
func (e *Engine) placePlayer() {
	lane := e.cfg.Player.StartLane
	if lane < 0 {
		lane = e.geo.Lanes / 2
	}
	lane = e.geo.ClampLane(lane)
	size := e.sizes.Player
	e.player = &Entity{
		ID:   e.store.NextID(),
		Kind: KindPlayer,
		Lane: lane,
		X:    e.geo.LaneX(lane, size.W),
		Y:    e.geo.PlayerY(size.H, e.cfg.Player.BottomMargin),
		W:    size.W,
		H:    size.H,
	}
	e.store.Add(e.player)
}

// --- Commands ---

// Enqueue queues a decoded input intent for the next tick.
func (e *Engine) Enqueue(in core.Intent) {
	e.push(command{intent: in})
}

func (e *Engine) push(c command) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.queue = append(e.queue, c)
}

// StartGame starts a run from the start screen or the game over screen.
func (e *Engine) StartGame() { e.Enqueue(core.NewIntent(core.ActionStart)) }

// PauseGame pauses gameplay.
func (e *Engine) PauseGame() { e.Enqueue(core.NewIntent(core.ActionPause)) }

// ResumeGame resumes paused gameplay.
func (e *Engine) ResumeGame() { e.Enqueue(core.NewIntent(core.ActionResume)) }

// RestartGame starts a new run after game over.
func (e *Engine) RestartGame() { e.Enqueue(core.NewIntent(core.ActionRestart)) }

// SelectMode chooses a play mode on the mode selection screen.
func (e *Engine) SelectMode(m core.Mode) { e.Enqueue(core.SelectMode(m)) }

// SubmitUsername submits a username on the username screen.
func (e *Engine) SubmitUsername(name string) { e.Enqueue(core.SubmitUsername(name)) }

// Back leaves the username screen for mode selection.
func (e *Engine) Back() { e.Enqueue(core.NewIntent(core.ActionBack)) }

// HandleLaneChange moves the player one lane left (dir < 0) or right (dir > 0).
func (e *Engine) HandleLaneChange(dir int) {
	switch {
	case dir < 0:
		e.Enqueue(core.NewIntent(core.ActionMoveLeft))
	case dir > 0:
		e.Enqueue(core.NewIntent(core.ActionMoveRight))
	}
}

// SetGameState requests a transition. Only edges of the state machine are
// taken, with the same side effects as the matching command; anything else
// is ignored.
func (e *Engine) SetGameState(s GameState) {
	e.push(command{setState: true, target: s})
}

// Resize recomputes lane geometry for a new viewport. Lane indices, entity
// travel positions, timers and accumulators are left alone.
func (e *Engine) Resize(width, height float64) {
	if !validViewport(width, height) {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	e.geo.Width = width
	e.geo.Height = height
	e.store.Each(func(en *Entity) {
		en.X = e.geo.LaneX(en.Lane, en.W)
	})
	e.player.Y = e.geo.PlayerY(e.player.H, e.cfg.Player.BottomMargin)
}

// HighScore returns the best final score seen by this engine.
func (e *Engine) HighScore() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.highScore
}

// State returns the current game state.
func (e *Engine) State() GameState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// --- Observers ---

// Subscribe registers an observer and returns a function that removes it.
func (e *Engine) Subscribe(fn Observer) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	e.obsMu.Lock()
	id := e.nextObs
	e.nextObs++
	e.observers = append(e.observers, observerEntry{id: id, fn: fn})
	e.obsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.obsMu.Lock()
			defer e.obsMu.Unlock()
			for i, o := range e.observers {
				if o.id == id {
					e.observers = append(e.observers[:i], e.observers[i+1:]...)
					return
				}
			}
		})
	}
}

func (e *Engine) emit(ev Event) {
	e.pending = append(e.pending, ev)
}

func (e *Engine) dispatch(events []Event) {
	if len(events) == 0 {
		return
	}
	e.obsMu.Lock()
	observers := make([]observerEntry, len(e.observers))
	copy(observers, e.observers)
	e.obsMu.Unlock()

	for _, ev := range events {
		for _, o := range observers {
			o.fn(ev)
		}
	}
}

// --- Loop driver ---

// Attach registers the engine with a tick source, replacing any previous one.
func (e *Engine) Attach(src TickSource) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	prev := e.stopSource
	e.stopSource = nil
	if e.loop == nil {
		e.loop = NewLoop(e.Tick)
	}
	// A new source keeps its own clock; never diff against the old one.
	e.loop.Reset()
	loop := e.loop
	e.mu.Unlock()

	if prev != nil {
		prev()
	}
	stop := src.Start(loop.Frame)

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		stop()
		return
	}
	e.stopSource = stop
	e.mu.Unlock()
}

// Cleanup stops the tick source, drops queued commands and observers.
// It is idempotent; later ticks and commands are ignored.
func (e *Engine) Cleanup() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	stop := e.stopSource
	e.stopSource = nil
	e.queue = nil
	e.pending = nil
	e.mu.Unlock()

	if stop != nil {
		stop()
	}
	e.obsMu.Lock()
	e.observers = nil
	e.obsMu.Unlock()
	e.log.Debug("engine cleaned up")
}

// Tick advances the simulation by deltaMs. NaN and negative deltas count as
// zero; deltas above max_delta_ms are clamped. Queued commands are applied
// first. Simulation time only advances in GAMEPLAY, and the tick that leaves
// another state is charged nothing.
func (e *Engine) Tick(deltaMs float64) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.step(deltaMs)
	if e.dispatching {
		e.mu.Unlock()
		return
	}
	e.dispatching = true
	e.mu.Unlock()

	e.drain()
}

// drain delivers pending events until none are left, including events
// emitted by ticks that ran meanwhile on other goroutines or from observers.
func (e *Engine) drain() {
	for {
		e.mu.Lock()
		events := e.pending
		e.pending = nil
		if len(events) == 0 {
			e.dispatching = false
			e.mu.Unlock()
			return
		}
		e.mu.Unlock()

		e.dispatch(events)
	}
}

func (e *Engine) step(deltaMs float64) {
	wasPlaying := e.state == StateGameplay
	e.applyCommands()
	if e.state != StateGameplay {
		return
	}

	delta := e.clampDelta(deltaMs)
	if !wasPlaying {
		delta = 0
	}

	e.elapsedMs += delta
	e.updateTier()

	e.spawner.Update(delta, e.ladder.IntervalFactor(e.tier), e.ladder.SpeedFactor(e.tier), e.store, e.geo)
	advance(e.store, delta, e.powerUps.SpeedMultiplier())
	for _, t := range e.powerUps.Tick(delta) {
		e.emit(PowerUpEnded{Type: t})
	}
	e.resolve(detectCollisions(e.player, e.store))
	prune(e.store, e.geo.Height)
	e.store.Compact()

	if e.ledger.Dead() {
		e.endRun()
	}
}

func (e *Engine) clampDelta(deltaMs float64) float64 {
	if math.IsNaN(deltaMs) || deltaMs < 0 {
		return 0
	}
	if limit := e.cfg.Gameplay.MaxDeltaMs; deltaMs > limit {
		e.log.Warn("frame delta clamped", "delta_ms", deltaMs, "max_ms", limit)
		return limit
	}
	return deltaMs
}

func (e *Engine) updateTier() {
	tier := e.ladder.Tier(e.elapsedMs, e.ledger.Score())
	if tier == e.tier {
		return
	}
	e.tier = tier
	factor := e.ladder.SpeedFactor(tier)
	e.log.Debug("difficulty tier changed", "tier", tier, "speed_factor", factor)
	e.emit(TierChanged{Tier: tier, SpeedFactor: factor})
}

// --- Commands and transitions ---

func (e *Engine) applyCommands() {
	cmds := e.queue
	e.queue = nil
	for _, c := range cmds {
		if c.setState {
			e.setGameState(c.target)
			continue
		}
		e.apply(c.intent)
	}
}

// apply handles one intent. Intents irrelevant to the current state are ignored.
func (e *Engine) apply(in core.Intent) {
	switch in.Action {
	case core.ActionMoveLeft, core.ActionMoveRight:
		if e.state != StateGameplay {
			return
		}
		dir := 1
		if in.Action == core.ActionMoveLeft {
			dir = -1
		}
		e.player.Lane = e.geo.ClampLane(e.player.Lane + dir)
		e.player.X = e.geo.LaneX(e.player.Lane, e.player.W)

	case core.ActionStart:
		if e.state == StateStartScreen || e.state == StateGameOver {
			e.startRun()
		}

	case core.ActionRestart:
		if e.state == StateGameOver {
			e.startRun()
		}

	case core.ActionPause:
		if e.state == StateGameplay {
			e.setState(StatePaused)
		}

	case core.ActionResume:
		if e.state == StatePaused {
			e.setState(StateGameplay)
		}

	case core.ActionSelectMode:
		if e.state != StateModeSelection {
			return
		}
		if in.Mode != core.ModeCasual && in.Mode != core.ModeLeaderboard {
			return
		}
		e.mode = in.Mode
		e.setState(StateUsernameCreation)
		if in.Mode == core.ModeCasual {
			// Casual runs are anonymous: pass straight through username creation.
			e.username = ""
			e.setState(StateStartScreen)
		}

	case core.ActionSubmitUsername:
		if e.state != StateUsernameCreation {
			return
		}
		name, err := NormalizeUsername(in.Text)
		if err != nil {
			e.emit(UsernameRejected{Username: in.Text, Reason: err.Error()})
			return
		}
		e.username = name
		e.setState(StateStartScreen)

	case core.ActionBack:
		if e.state == StateUsernameCreation {
			e.setState(StateModeSelection)
		}
	}
}

func (e *Engine) setGameState(target GameState) {
	if !CanTransition(e.state, target) {
		e.log.Debug("state change ignored", "from", e.state, "to", target)
		return
	}
	switch {
	case target == StateGameplay && e.state != StatePaused:
		e.startRun()
	case target == StateGameOver:
		e.endRun()
	default:
		e.setState(target)
	}
}

func (e *Engine) setState(to GameState) {
	from := e.state
	if from == to {
		return
	}
	e.state = to
	e.log.Debug("state changed", "from", from, "to", to)
	e.emit(StateChanged{From: from, To: to})
}

// startRun resets everything a run owns and enters GAMEPLAY.
func (e *Engine) startRun() {
	e.store.Clear()
	e.placePlayer()
	e.spawner.Reset()
	for _, t := range e.powerUps.Reset() {
		e.emit(PowerUpEnded{Type: t})
	}
	e.ledger.Reset()
	e.elapsedMs = 0

	prevTier := e.tier
	e.tier = e.ladder.InitialTier()

	e.setState(StateGameplay)
	e.emit(ScoreChanged{Score: 0})
	e.emit(LivesChanged{Lives: e.ledger.Lives()})
	if e.tier != prevTier {
		e.emit(TierChanged{Tier: e.tier, SpeedFactor: e.ladder.SpeedFactor(e.tier)})
	}
}

// endRun enters GAME_OVER and settles the high score. It runs once per run
// since GAME_OVER is only reachable from GAMEPLAY.
func (e *Engine) endRun() {
	final := e.ledger.Score()
	newHigh := final > e.highScore
	if newHigh {
		e.highScore = final
	}
	e.setState(StateGameOver)
	e.log.Debug("game over", "score", final, "high_score", e.highScore, "tier", e.tier)
	e.emit(GameOver{
		FinalScore:   final,
		HighScore:    e.highScore,
		NewHighScore: newHigh,
		Mode:         e.mode,
		Username:     e.username,
		Tier:         e.tier,
		SurvivedMs:   e.elapsedMs,
	})
}

// --- Collision resolution ---

// resolve applies collision outcomes in creation order and stops once the
// last life is gone.
func (e *Engine) resolve(hits []*Entity) {
	for _, h := range hits {
		if e.ledger.Dead() {
			return
		}
		e.store.Remove(h.ID)
		switch h.Kind {
		case KindTraffic:
			e.hitTraffic(h)
		case KindPickup:
			if e.ledger.AddPoints(h.Points) {
				e.emit(ScoreChanged{Score: e.ledger.Score()})
			}
			e.emit(PickupCollected{Points: h.Points, Score: e.ledger.Score()})
		case KindPowerUp:
			e.collectPowerUp(h.PowerUp)
		}
	}
}

func (e *Engine) hitTraffic(h *Entity) {
	if e.powerUps.Active(PowerUpShield) {
		e.emit(ShieldAbsorbed{Lane: h.Lane})
		if e.powerUps.ShieldBreaksOnHit() && e.powerUps.Deactivate(PowerUpShield) {
			e.emit(PowerUpEnded{Type: PowerUpShield})
		}
		return
	}
	if e.ledger.LoseLife() {
		e.emit(LivesChanged{Lives: e.ledger.Lives()})
		e.emit(Collision{Lane: h.Lane, Lives: e.ledger.Lives()})
	}
}

func (e *Engine) collectPowerUp(t PowerUpType) {
	if t == PowerUpExtraLife {
		// At the cap the token is consumed without effect.
		if e.ledger.GainLife() {
			e.emit(LivesChanged{Lives: e.ledger.Lives()})
			e.emit(PowerUpStarted{Type: t})
		}
		return
	}
	d := e.powerUps.Activate(t)
	e.emit(PowerUpStarted{Type: t, DurationMs: d})
}
