package tui

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/lane-runner/internal/engine"
)

const (
	toastDuration = 2 * time.Second
	hintDuration  = 5 * time.Second
)

type toastKind int

const (
	toastInfo toastKind = iota
	toastGood
	toastBad
	toastCelebrate
)

var toastStyles = map[toastKind]lipgloss.Style{
	toastInfo:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	toastGood:      lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
	toastBad:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	toastCelebrate: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Bold(true).Padding(0, 1),
}

type toast struct {
	text  string
	kind  toastKind
	until time.Time
}

// hud keeps the short messages shown in the footer.
type hud struct {
	toasts []toast
	hinted bool
}

func (h *hud) push(now time.Time, text string, kind toastKind, d time.Duration) {
	h.toasts = append(h.toasts, toast{text: text, kind: kind, until: now.Add(d)})
}

// expire drops toasts that ran out.
func (h *hud) expire(now time.Time) {
	kept := h.toasts[:0]
	for _, t := range h.toasts {
		if now.Before(t.until) {
			kept = append(kept, t)
		}
	}
	h.toasts = kept
}

// current returns the newest live toast.
func (h *hud) current() (toast, bool) {
	if len(h.toasts) == 0 {
		return toast{}, false
	}
	return h.toasts[len(h.toasts)-1], true
}

// hint shows the controls once, on the first run of the session.
func (h *hud) hint(now time.Time) {
	if h.hinted {
		return
	}
	h.hinted = true
	h.push(now, "←/→ or A/D to change lanes · P to pause", toastInfo, hintDuration)
}

// toastFor turns an engine event into a footer message.
func toastFor(ev engine.Event) (string, toastKind, bool) {
	switch ev := ev.(type) {
	case engine.PowerUpStarted:
		switch ev.Type {
		case engine.PowerUpSlowSpeed:
			return "Slow mode activated!", toastGood, true
		case engine.PowerUpShield:
			return "Shield activated!", toastGood, true
		case engine.PowerUpExtraLife:
			return "Extra life!", toastGood, true
		}
	case engine.PowerUpEnded:
		switch ev.Type {
		case engine.PowerUpSlowSpeed:
			return "Slow mode ended", toastInfo, true
		case engine.PowerUpShield:
			return "Shield faded", toastInfo, true
		}
	case engine.ShieldAbsorbed:
		return "Shield absorbed the crash!", toastGood, true
	case engine.Collision:
		if ev.Lives == 1 {
			return "Crash! Last life!", toastBad, true
		}
		if ev.Lives > 1 {
			return fmt.Sprintf("Crash! %d lives left", ev.Lives), toastBad, true
		}
	case engine.TierChanged:
		if ev.Tier > 0 {
			return fmt.Sprintf("Speed up! Tier %d", ev.Tier), toastInfo, true
		}
	case engine.UsernameRejected:
		return "Invalid username: " + ev.Reason, toastBad, true
	case engine.GameOver:
		if ev.NewHighScore {
			return "New High Score!", toastCelebrate, true
		}
	}
	return "", toastInfo, false
}

// inbox collects engine events delivered during a frame.
type inbox struct {
	mu     sync.Mutex
	events []engine.Event
}

func (b *inbox) add(ev engine.Event) {
	b.mu.Lock()
	b.events = append(b.events, ev)
	b.mu.Unlock()
}

func (b *inbox) drain() []engine.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	evs := b.events
	b.events = nil
	return evs
}
