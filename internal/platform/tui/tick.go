// Package tui provides the Bubble Tea host for the lane runner: frame
// timing, key bindings, username input, HUD toasts, the scoreboard and
// the SSH server.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg asks the running game to advance to At.
// Gen ties the message to one game model so stale frame chains die out.
type FrameMsg struct {
	At  time.Time
	Gen uint64
}

var frameGen atomic.Uint64

func nextFrameGen() uint64 {
	return frameGen.Add(1)
}

// frameCmd returns a Bubble Tea command that sends one frame message at the given rate.
func frameCmd(fps int, gen uint64) tea.Cmd {
	if fps <= 0 {
		fps = 60
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg{At: t, Gen: gen}
	})
}
