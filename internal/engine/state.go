package engine

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// GameState is the top-level mode of the engine.
type GameState int

const (
	StateModeSelection GameState = iota
	StateUsernameCreation
	StateStartScreen
	StateGameplay
	StatePaused
	StateGameOver
)

func (s GameState) String() string {
	switch s {
	case StateModeSelection:
		return "MODE_SELECTION"
	case StateUsernameCreation:
		return "USERNAME_CREATION"
	case StateStartScreen:
		return "START_SCREEN"
	case StateGameplay:
		return "GAMEPLAY"
	case StatePaused:
		return "PAUSED"
	case StateGameOver:
		return "GAME_OVER"
	default:
		return "UNKNOWN"
	}
}

// ParseGameState converts a state name as printed by String.
func ParseGameState(s string) (GameState, bool) {
	for st := StateModeSelection; st <= StateGameOver; st++ {
		if strings.EqualFold(strings.TrimSpace(s), st.String()) {
			return st, true
		}
	}
	return 0, false
}

// transitions lists every edge of the state machine.
var transitions = map[GameState][]GameState{
	StateModeSelection:    {StateUsernameCreation},
	StateUsernameCreation: {StateStartScreen, StateModeSelection},
	StateStartScreen:      {StateGameplay},
	StateGameplay:         {StatePaused, StateGameOver},
	StatePaused:           {StateGameplay},
	StateGameOver:         {StateGameplay},
}

// CanTransition reports whether from -> to is an edge of the state machine.
func CanTransition(from, to GameState) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Variant selects which screen a fresh engine starts on.
type Variant int

const (
	VariantModes   Variant = iota // Mode selection and username first
	VariantClassic                // Straight to the start screen
)

// InitialState returns the state a fresh engine of this variant starts in.
func (v Variant) InitialState() GameState {
	if v == VariantClassic {
		return StateStartScreen
	}
	return StateModeSelection
}

// Username limits.
const (
	MinUsernameLen = 3
	MaxUsernameLen = 16
)

// ErrInvalidUsername is wrapped by every username validation failure.
var ErrInvalidUsername = errors.New("invalid username")

// NormalizeUsername trims a raw username and validates it: 3 to 16 letters,
// digits or underscores, starting with a letter.
func NormalizeUsername(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	n := len([]rune(name))
	if n < MinUsernameLen || n > MaxUsernameLen {
		return "", fmt.Errorf("%w: must be %d-%d characters", ErrInvalidUsername, MinUsernameLen, MaxUsernameLen)
	}
	for i, r := range []rune(name) {
		if i == 0 && !unicode.IsLetter(r) {
			return "", fmt.Errorf("%w: must start with a letter", ErrInvalidUsername)
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return "", fmt.Errorf("%w: only letters, digits and underscores are allowed", ErrInvalidUsername)
		}
	}
	return name, nil
}
