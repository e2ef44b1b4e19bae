package engine

// Ledger keeps score and lives for one run.
type Ledger struct {
	score        int
	lives        int
	initialLives int
	maxLives     int
}

// NewLedger creates a ledger. maxLives below initialLives is raised to it.
func NewLedger(initialLives, maxLives int) Ledger {
	initialLives = max(initialLives, 1)
	return Ledger{
		lives:        initialLives,
		initialLives: initialLives,
		maxLives:     max(maxLives, initialLives),
	}
}

// Reset restores the start-of-run values.
func (l *Ledger) Reset() {
	l.score = 0
	l.lives = l.initialLives
}

// Score returns the current score.
func (l *Ledger) Score() int { return l.score }

// Lives returns the remaining lives.
func (l *Ledger) Lives() int { return l.lives }

// InitialLives returns the lives every run starts with.
func (l *Ledger) InitialLives() int { return l.initialLives }

// AddPoints adds non-negative points. Reports whether the score changed.
func (l *Ledger) AddPoints(points int) bool {
	if points <= 0 {
		return false
	}
	l.score += points
	return true
}

// LoseLife takes exactly one life, never going below zero.
// Reports whether a life was taken.
func (l *Ledger) LoseLife() bool {
	if l.lives == 0 {
		return false
	}
	l.lives--
	return true
}

// GainLife adds one life up to the cap. Reports whether a life was added.
func (l *Ledger) GainLife() bool {
	if l.lives >= l.maxLives {
		return false
	}
	l.lives++
	return true
}

// Dead reports whether no lives remain.
func (l *Ledger) Dead() bool {
	return l.lives == 0
}
