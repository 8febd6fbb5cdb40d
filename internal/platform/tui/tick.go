// Package tui provides the Bubble Tea integration for lifeguide.
// It runs the frame loop, maps keys to board actions and draws composed
// frames in the terminal.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent once per display frame to the board that scheduled it.
type TickMsg struct {
	Board uint64
	At    time.Time
}

var boardSeq atomic.Uint64

// nextBoardID identifies a board model so ticks left over from a board the
// player already closed are dropped.
func nextBoardID() uint64 {
	return boardSeq.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(frameRate int, board uint64) tea.Cmd {
	if frameRate <= 0 {
		frameRate = 30
	}
	interval := time.Second / time.Duration(frameRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Board: board, At: t}
	})
}
