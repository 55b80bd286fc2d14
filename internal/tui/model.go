// Package tui is the interactive terminal front end of the card viewer.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/arcanaland/tango/internal/anim"
	"github.com/arcanaland/tango/internal/viewer"
)

// DefaultSwipeThreshold is the minimum horizontal drag, in cells, that
// counts as a swipe.
const DefaultSwipeThreshold = 6

// Model is the Bubble Tea model wrapping a viewer.Machine.
type Model struct {
	machine *viewer.Machine
	sched   *Scheduler
	logger  *log.Logger
	title   string

	keys  keyMap
	help  help.Model
	theme theme

	width  int
	height int

	swipeThreshold int
	gesture        *gesture

	ticking  bool
	quitting bool
}

// gesture is a pointer press waiting for its release.
type gesture struct {
	x, y int
}

// Option configures a Model.
type Option func(*Model)

// WithScheduler connects the model to the scheduler driving the machine's
// sequencer. Without it the caller is responsible for running timers.
func WithScheduler(s *Scheduler) Option {
	return func(m *Model) { m.sched = s }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// WithSwipeThreshold sets the swipe distance in cells.
func WithSwipeThreshold(cells int) Option {
	return func(m *Model) {
		if cells > 0 {
			m.swipeThreshold = cells
		}
	}
}

// WithTitle sets the deck title shown above the card.
func WithTitle(title string) Option {
	return func(m *Model) { m.title = title }
}

// New returns a model over machine.
func New(machine *viewer.Machine, opts ...Option) *Model {
	m := &Model{
		machine:        machine,
		logger:         log.Default(),
		keys:           defaultKeyMap(),
		help:           help.New(),
		swipeThreshold: DefaultSwipeThreshold,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.theme = defaultTheme(m.cardWidth())
	return m
}

// Run starts an interactive program for m and blocks until it exits.
func Run(ctx context.Context, m *Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	m.machine.Start()
	return m.after()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.theme = defaultTheme(m.cardWidth())

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case fireMsg:
		msg.fn()

	case frameMsg:
		m.ticking = false
	}
	return m, m.after()
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Prev):
		m.machine.Navigate(anim.Prev)
	case key.Matches(msg, m.keys.Next):
		m.machine.Navigate(anim.Next)
	case key.Matches(msg, m.keys.Flip):
		m.machine.Flip()
	case key.Matches(msg, m.keys.Shuffle):
		m.machine.Reshuffle()
	case key.Matches(msg, m.keys.Reverse):
		m.machine.Reverse()
	case key.Matches(msg, m.keys.GenreNext):
		m.machine.CycleGenre(1)
	case key.Matches(msg, m.keys.GenrePrev):
		m.machine.CycleGenre(-1)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
}

// handleMouse turns a press/release pair into a swipe when the pointer
// travelled far enough horizontally, and into a click otherwise.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		m.gesture = &gesture{x: msg.X, y: msg.Y}

	case tea.MouseActionRelease:
		g := m.gesture
		m.gesture = nil
		if g == nil {
			return
		}

		dx, dy := msg.X-g.x, msg.Y-g.y
		if abs(dx) >= m.swipeThreshold && abs(dx) > abs(dy) {
			dir := anim.Next
			if dx > 0 {
				dir = anim.Prev
			}
			m.logger.Debug("swipe", "dx", dx, "dir", dir)
			m.machine.Navigate(dir)
			return
		}
		m.click(g.x, g.y)
	}
}

func (m *Model) click(x, y int) {
	l := m.layout()
	if l.card.contains(x, y) {
		m.machine.Flip()
		return
	}
	for _, c := range l.controls {
		if !c.rect.contains(x, y) {
			continue
		}
		m.logger.Debug("control", "action", c.action)
		switch c.action {
		case actionPrev:
			m.machine.Navigate(anim.Prev)
		case actionNext:
			m.machine.Navigate(anim.Next)
		case actionShuffle:
			m.machine.Reshuffle()
		case actionReverse:
			m.machine.Reverse()
		case actionGenre:
			m.machine.CycleGenre(1)
		}
		return
	}
}

// after collects the timers the machine scheduled during this update and
// keeps a repaint tick running while anything is moving.
func (m *Model) after() tea.Cmd {
	var cmds []tea.Cmd
	if m.sched != nil {
		cmds = append(cmds, m.sched.Drain())
	}
	if !m.ticking && m.machine.Sequencer().Active() {
		m.ticking = true
		cmds = append(cmds, frameTick())
	}
	return tea.Batch(cmds...)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
