package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for reproducible spawning.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Host frames per second (default 60)
	Seed     int64 // RNG seed for spawning

	HighScore int    // Persisted high score read by the host at startup
	Username  string // Prefilled username (SSH user, previous session)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Status is a compact summary of a running game for the host.
type Status struct {
	Score     int
	Lives     int
	HighScore int
	State     string // Name of the current game state
	GameOver  bool
	Paused    bool
	Mode      Mode
	Username  string
}
