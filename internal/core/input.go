package core

import "strings"

// Action represents a semantic game intent, abstracted from physical key presses
// and touch events. Hosts decode raw input into actions; the engine never sees keys.
type Action int

const (
	ActionNone           Action = iota
	ActionMoveLeft              // Shift one lane left
	ActionMoveRight             // Shift one lane right
	ActionStart                 // Start a run from the start screen (or try again)
	ActionPause                 // Pause gameplay
	ActionResume                // Resume paused gameplay
	ActionRestart               // Restart after game over
	ActionSelectMode            // Choose a mode on the mode selection screen (payload: Mode)
	ActionSubmitUsername        // Submit a username (payload: Text)
	ActionBack                  // Leave username creation for mode selection
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionMoveLeft:
		return "MoveLeft"
	case ActionMoveRight:
		return "MoveRight"
	case ActionStart:
		return "Start"
	case ActionPause:
		return "Pause"
	case ActionResume:
		return "Resume"
	case ActionRestart:
		return "Restart"
	case ActionSelectMode:
		return "SelectMode"
	case ActionSubmitUsername:
		return "SubmitUsername"
	case ActionBack:
		return "Back"
	default:
		return "Unknown"
	}
}

// Mode is the play mode chosen on the mode selection screen.
type Mode int

const (
	ModeCasual      Mode = iota // Scores stay local and anonymous
	ModeLeaderboard             // Scores are submitted under the player's username
)

// String returns the mode's identifier as stored with saved runs.
func (m Mode) String() string {
	switch m {
	case ModeCasual:
		return "casual"
	case ModeLeaderboard:
		return "leaderboard"
	default:
		return "unknown"
	}
}

// ParseMode converts a stored or user-supplied mode name.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "casual":
		return ModeCasual, true
	case "leaderboard", "ranked":
		return ModeLeaderboard, true
	default:
		return ModeCasual, false
	}
}

// Intent is one decoded input event with its optional payload.
type Intent struct {
	Action Action
	Mode   Mode   // ActionSelectMode only
	Text   string // ActionSubmitUsername only
}

// NewIntent creates a payload-free intent.
func NewIntent(a Action) Intent {
	return Intent{Action: a}
}

// SelectMode creates a mode selection intent.
func SelectMode(m Mode) Intent {
	return Intent{Action: ActionSelectMode, Mode: m}
}

// SubmitUsername creates a username submission intent.
func SubmitUsername(name string) Intent {
	return Intent{Action: ActionSubmitUsername, Text: name}
}
