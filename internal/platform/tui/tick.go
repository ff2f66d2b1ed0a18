// Package tui provides the Bubble Tea front end: team select, the match
// screen, match history and SSH serving.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to poll the round runner and redraw. It carries the wall
// clock, the runner converts it to whole simulation steps.
type TickMsg time.Time

// frameInterval is the redraw period. The screen may refresh slower than
// the simulation steps; each poll catches up on the missed steps.
func frameInterval(frameRate, tickRate int) time.Duration {
	if frameRate <= 0 {
		frameRate = tickRate
	}
	if frameRate <= 0 {
		frameRate = 60
	}
	return time.Second / time.Duration(frameRate)
}

// tickCmd schedules the next poll.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
