package tui

import (
	"testing"
	"time"

	"github.com/vovakirdan/lane-runner/internal/engine"
)

func TestToastFor(t *testing.T) {
	tests := []struct {
		name     string
		ev       engine.Event
		expected string
		kind     toastKind
	}{
		{"slow", engine.PowerUpStarted{Type: engine.PowerUpSlowSpeed, DurationMs: 5000}, "Slow mode activated!", toastGood},
		{"shield", engine.PowerUpStarted{Type: engine.PowerUpShield, DurationMs: 3000}, "Shield activated!", toastGood},
		{"life", engine.PowerUpStarted{Type: engine.PowerUpExtraLife}, "Extra life!", toastGood},
		{"slow ended", engine.PowerUpEnded{Type: engine.PowerUpSlowSpeed}, "Slow mode ended", toastInfo},
		{"absorbed", engine.ShieldAbsorbed{Lane: 1}, "Shield absorbed the crash!", toastGood},
		{"crash", engine.Collision{Lane: 0, Lives: 2}, "Crash! 2 lives left", toastBad},
		{"last life", engine.Collision{Lane: 0, Lives: 1}, "Crash! Last life!", toastBad},
		{"tier", engine.TierChanged{Tier: 2, SpeedFactor: 1.21}, "Speed up! Tier 2", toastInfo},
		{"rejected", engine.UsernameRejected{Username: "x", Reason: "too short"}, "Invalid username: too short", toastBad},
		{"record", engine.GameOver{FinalScore: 90, HighScore: 90, NewHighScore: true}, "New High Score!", toastCelebrate},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			text, kind, ok := toastFor(tc.ev)
			if !ok || text != tc.expected || kind != tc.kind {
				t.Errorf("toastFor = %q, %v, %v; expected %q, %v", text, kind, ok, tc.expected, tc.kind)
			}
		})
	}

	silent := []engine.Event{
		engine.ScoreChanged{Score: 10},
		engine.LivesChanged{Lives: 3},
		engine.Collision{Lives: 0},
		engine.TierChanged{Tier: 0},
		engine.GameOver{FinalScore: 5, HighScore: 90},
		engine.StateChanged{From: engine.StateGameplay, To: engine.StatePaused},
	}
	for _, ev := range silent {
		if text, _, ok := toastFor(ev); ok {
			t.Errorf("%T produced toast %q", ev, text)
		}
	}
}

func TestHUDExpiry(t *testing.T) {
	var h hud
	now := time.Unix(100, 0)

	if _, ok := h.current(); ok {
		t.Fatal("empty hud has a toast")
	}

	h.push(now, "first", toastInfo, time.Second)
	h.push(now, "second", toastGood, 3*time.Second)
	if cur, _ := h.current(); cur.text != "second" {
		t.Errorf("current = %q, expected the newest toast", cur.text)
	}

	h.expire(now.Add(2 * time.Second))
	if len(h.toasts) != 1 {
		t.Fatalf("%d toasts left, expected 1", len(h.toasts))
	}
	h.expire(now.Add(3 * time.Second))
	if _, ok := h.current(); ok {
		t.Error("toast outlived its duration")
	}
}

func TestHUDHintOnce(t *testing.T) {
	var h hud
	now := time.Unix(100, 0)
	h.hint(now)
	h.hint(now)
	if len(h.toasts) != 1 {
		t.Errorf("hint pushed %d times, expected once", len(h.toasts))
	}
}

func TestInboxDrain(t *testing.T) {
	var b inbox
	b.add(engine.ScoreChanged{Score: 1})
	b.add(engine.LivesChanged{Lives: 2})

	evs := b.drain()
	if len(evs) != 2 {
		t.Fatalf("drained %d events, expected 2", len(evs))
	}
	if len(b.drain()) != 0 {
		t.Error("drain did not empty the inbox")
	}
}
