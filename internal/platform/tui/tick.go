package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent on every frame of one game.
type TickMsg struct {
	At   time.Time
	Game uint64 // Frames of a game that is no longer shown are dropped
}

// minFrame bounds the frame rate for very short tick durations.
const minFrame = 16 * time.Millisecond

var gameSeq atomic.Uint64

// nextGameID returns a process-wide unique id for a game model.
func nextGameID() uint64 {
	return gameSeq.Add(1)
}

// frameInterval returns how often frames are requested for a tick duration.
// Frames run twice per tick; the session clock decides how many ticks a
// frame applies.
func frameInterval(tick time.Duration) time.Duration {
	return max(tick/2, minFrame)
}

// tickCmd returns a command that sends a TickMsg after the interval.
func tickCmd(interval time.Duration, game uint64) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{At: t, Game: game}
	})
}
