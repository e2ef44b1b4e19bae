package engine

import "github.com/vovakirdan/lane-runner/internal/core"

// Kind is the type of a simulated entity.
type Kind int

const (
	KindPlayer Kind = iota
	KindTraffic
	KindPickup
	KindPowerUp
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindTraffic:
		return "traffic"
	case KindPickup:
		return "pickup"
	case KindPowerUp:
		return "powerup"
	default:
		return "unknown"
	}
}

// PowerUpType identifies what a power-up token does when collected.
type PowerUpType int

const (
	PowerUpSlowSpeed PowerUpType = iota // Durable: global speed multiplier
	PowerUpShield                       // Durable: traffic hits cost no lives
	PowerUpExtraLife                    // Instant: +1 life
)

func (p PowerUpType) String() string {
	switch p {
	case PowerUpSlowSpeed:
		return "SLOW_SPEED"
	case PowerUpShield:
		return "SHIELD"
	case PowerUpExtraLife:
		return "EXTRA_LIFE"
	default:
		return "UNKNOWN"
	}
}

// EntityID uniquely identifies an entity for the lifetime of an engine.
type EntityID uint64

// Entity is a plain record of one object on the road.
// Non-player entities travel toward increasing Y.
type Entity struct {
	ID    EntityID
	Kind  Kind
	Lane  int
	X, Y  float64 // Top-left corner
	W, H  float64
	Speed float64 // Units per millisecond before the global multiplier

	PowerUp PowerUpType // KindPowerUp only
	Points  int         // KindPickup only

	prevY float64 // Y before the last advance
}

// Box returns the entity's bounding box.
func (e *Entity) Box() core.RectF {
	return core.NewRectF(e.X, e.Y, e.W, e.H)
}

// sweptBox covers every position the entity held during its last advance.
func (e *Entity) sweptBox() core.RectF {
	top := min(e.prevY, e.Y)
	return core.NewRectF(e.X, top, e.W, max(e.prevY, e.Y)+e.H-top)
}

// Store owns all live entities and keeps them in creation order.
// Removal only marks an entity; Compact drops marked entries, so removing
// while iterating with Each is safe.
type Store struct {
	entities []*Entity
	byID     map[EntityID]*Entity
	removed  map[EntityID]bool
	nextID   EntityID
}

// NewStore creates an empty entity store.
func NewStore() *Store {
	return &Store{
		byID:    make(map[EntityID]*Entity),
		removed: make(map[EntityID]bool),
	}
}

// NextID returns a fresh id. Ids are never reused by one store.
func (s *Store) NextID() EntityID {
	s.nextID++
	return s.nextID
}

// Add inserts an entity. An entity whose id is already present is ignored
// and Add reports false.
func (s *Store) Add(e *Entity) bool {
	if e == nil {
		return false
	}
	if _, dup := s.byID[e.ID]; dup || s.removed[e.ID] {
		return false
	}
	if e.ID > s.nextID {
		s.nextID = e.ID
	}
	s.entities = append(s.entities, e)
	s.byID[e.ID] = e
	return true
}

// Remove removes an entity by id. Unknown ids are a no-op.
func (s *Store) Remove(id EntityID) {
	if _, ok := s.byID[id]; !ok {
		return
	}
	delete(s.byID, id)
	s.removed[id] = true
}

// Get returns a live entity by id.
func (s *Store) Get(id EntityID) (*Entity, bool) {
	e, ok := s.byID[id]
	return e, ok
}

// Each calls fn for every live entity in creation order.
func (s *Store) Each(fn func(*Entity)) {
	for _, e := range s.entities {
		if s.removed[e.ID] {
			continue
		}
		fn(e)
	}
}

// Len returns the number of live entities.
func (s *Store) Len() int {
	return len(s.byID)
}

// Compact drops removed entities from the ordered list.
func (s *Store) Compact() {
	if len(s.removed) == 0 {
		return
	}
	live := s.entities[:0]
	for _, e := range s.entities {
		if !s.removed[e.ID] {
			live = append(live, e)
		}
	}
	clear(s.entities[len(live):])
	s.entities = live
	clear(s.removed)
}

// Clear removes every entity. Ids keep increasing across clears.
func (s *Store) Clear() {
	clear(s.entities)
	s.entities = s.entities[:0]
	clear(s.byID)
	clear(s.removed)
}
