package engine

import (
	"sync"
	"time"
)

// TickSource drives a frame callback at the host's refresh rate.
// Start begins delivering frames and returns a function that stops them;
// stop must be safe to call more than once.
type TickSource interface {
	Start(frame func(now time.Time)) (stop func())
}

// Loop turns frame timestamps into tick deltas. The first frame yields a
// zero delta. Every frame records its timestamp, including frames the engine
// ignores while paused, so paused time is never charged on resume.
type Loop struct {
	mu      sync.Mutex
	last    time.Time
	started bool
	tick    func(deltaMs float64)
}

// NewLoop creates a loop that feeds tick.
func NewLoop(tick func(deltaMs float64)) *Loop {
	return &Loop{tick: tick}
}

// Frame handles one frame at time now.
func (l *Loop) Frame(now time.Time) {
	l.mu.Lock()
	delta := 0.0
	if l.started {
		delta = float64(now.Sub(l.last)) / float64(time.Millisecond)
		if delta < 0 {
			delta = 0
		}
	}
	l.last = now
	l.started = true
	l.mu.Unlock()

	l.tick(delta)
}

// Reset forgets the previous frame; the next frame yields a zero delta.
func (l *Loop) Reset() {
	l.mu.Lock()
	l.started = false
	l.mu.Unlock()
}

// TickerSource delivers frames from a wall-clock ticker goroutine.
// Stopping does not wait for a frame already in flight, so stop may be
// called from inside a frame.
type TickerSource struct {
	Interval time.Duration
}

// NewTickerSource creates a ticker source running at fps frames per second.
func NewTickerSource(fps int) *TickerSource {
	if fps <= 0 {
		fps = 60
	}
	return &TickerSource{Interval: time.Second / time.Duration(fps)}
}

// Start implements TickSource.
func (s *TickerSource) Start(frame func(now time.Time)) func() {
	ticker := time.NewTicker(s.Interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-done:
				return
			case now := <-ticker.C:
				frame(now)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}

// ManualSource delivers frames only when told to. Tests and headless
// simulations use it to drive the engine with synthetic time.
type ManualSource struct {
	mu    sync.Mutex
	now   time.Time
	frame func(time.Time)
}

// NewManualSource creates a manual source whose clock starts at start.
func NewManualSource(start time.Time) *ManualSource {
	return &ManualSource{now: start}
}

// Start implements TickSource.
func (s *ManualSource) Start(frame func(now time.Time)) func() {
	s.mu.Lock()
	s.frame = frame
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		s.frame = nil
		s.mu.Unlock()
	}
}

// Now returns the synthetic clock.
func (s *ManualSource) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Advance moves the clock forward by d and delivers one frame.
// It reports false when no frame callback is registered.
func (s *ManualSource) Advance(d time.Duration) bool {
	s.mu.Lock()
	s.now = s.now.Add(d)
	now, frame := s.now, s.frame
	s.mu.Unlock()

	if frame == nil {
		return false
	}
	frame(now)
	return true
}

// Run delivers n frames spaced d apart.
func (s *ManualSource) Run(n int, d time.Duration) {
	for range n {
		if !s.Advance(d) {
			return
		}
	}
}
