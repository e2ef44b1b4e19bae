package engine

// rng is a deterministic pseudo-random number generator (64-bit LCG).
// Every engine owns one so independent instances never share state.
type rng struct {
	state uint64
}

func newRNG(seed int64) *rng {
	s := uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
	if s == 0 {
		s = 1
	}
	return &rng{state: s}
}

func (r *rng) next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// intn returns a value in [0, n).
func (r *rng) intn(n int) int {
	if n <= 0 {
		return 0
	}
	// High bits of an LCG are far better distributed than the low ones.
	return int((r.next() >> 33) % uint64(n)) //#nosec G115 -- n is always positive
}
