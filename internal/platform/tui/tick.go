// Package tui provides the Bubble Tea integration for the arcade platform.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg triggers one simulation tick. ID ties the message to the tick
// loop that scheduled it so a finished game's loop cannot drive a new one.
type TickMsg struct {
	Time time.Time
	ID   uint64
}

var lastTickID atomic.Uint64

func nextTickID() uint64 {
	return lastTickID.Add(1)
}

// tickCmd schedules the next tick for loop id at tickRate per second.
func tickCmd(tickRate int, id uint64) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, ID: id}
	})
}
