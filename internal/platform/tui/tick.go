// Package tui runs a registered game inside Bubble Tea. It owns the terminal:
// key messages become logical keys, ticks drive the game clock, and the
// game's screen buffer is colored with lipgloss.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg carries the wall-clock time of a simulation tick.
type TickMsg time.Time

// tickInterval converts a tick rate to the time between ticks.
func tickInterval(fps float64) time.Duration {
	if fps <= 0 {
		return time.Second
	}
	return time.Duration(float64(time.Second) / fps)
}

// tickCmd schedules the next tick.
func tickCmd(fps float64) tea.Cmd {
	return tea.Tick(tickInterval(fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
