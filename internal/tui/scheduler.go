package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/arcanaland/tango/internal/anim"
)

// fireMsg carries a scheduled continuation back onto the event loop.
type fireMsg struct {
	fn func()
}

// frameMsg asks for a repaint while an animation is running.
type frameMsg time.Time

// Scheduler implements anim.Scheduler on top of Bubble Tea commands.
// Timers are collected as tea.Tick commands and handed to the program by
// Drain; their callbacks run inside Update, so they never race the model.
type Scheduler struct {
	pending []tea.Cmd
}

// NewScheduler returns an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

func (s *Scheduler) Now() time.Time { return time.Now() }

func (s *Scheduler) After(d time.Duration, fn func()) {
	s.pending = append(s.pending, tea.Tick(d, func(time.Time) tea.Msg {
		return fireMsg{fn: fn}
	}))
}

func (s *Scheduler) NextFrame(fn func()) {
	s.After(anim.FrameInterval, fn)
}

// Drain returns the timers scheduled since the last call as one command.
func (s *Scheduler) Drain() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

func frameTick() tea.Cmd {
	return tea.Tick(anim.FrameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}
