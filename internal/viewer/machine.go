// Package viewer holds the card navigation and presentation state machine.
//
// The machine owns the active deck, the cursor and the flip/reverse flags.
// Navigation is locked while the sequencer plays a directional slide;
// content shown on screen is a Frame snapshot that only changes at the
// sequencer's swap points.
package viewer

import (
	"math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/arcanaland/tango/internal/anim"
	"github.com/arcanaland/tango/internal/deck"
)

// State is a snapshot of the live presentation state.
type State struct {
	Index     int
	Len       int
	Genre     string
	Flipped   bool
	Reversed  bool
	Animating bool
	Phase     anim.Phase
}

// Machine is the presentation state machine. It is not safe for concurrent
// use; every method and every scheduler callback must run on one event
// loop.
type Machine struct {
	all    deck.Deck
	genres []string

	deck     deck.Deck
	cursor   int
	genre    string
	flipped  bool
	reversed bool

	seq    *anim.Sequencer
	rng    *rand.Rand
	logger *log.Logger

	shown Frame
}

// Option configures a Machine.
type Option func(*Machine)

// WithRand sets the random source used by Reshuffle.
func WithRand(r *rand.Rand) Option {
	return func(m *Machine) { m.rng = r }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(m *Machine) { m.logger = l }
}

// WithReversed starts the machine in reverse mode.
func WithReversed(reversed bool) Option {
	return func(m *Machine) { m.reversed = reversed }
}

// WithGenre selects the initial genre filter. An empty or unknown genre
// falls back to every card.
func WithGenre(genre string) Option {
	return func(m *Machine) {
		if genre != "" {
			m.genre = genre
		}
	}
}

// New returns a machine over the cards of store. Call Start to play the
// initial reveal.
func New(store *deck.Store, seq *anim.Sequencer, opts ...Option) *Machine {
	m := &Machine{
		all:    store.Cards(),
		genres: store.Genres(),
		genre:  deck.AllGenres,
		seq:    seq,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if m.genre != deck.AllGenres && !slices.Contains(m.genres, m.genre) {
		m.logger.Warn("unknown genre, showing every card", "genre", m.genre)
		m.genre = deck.AllGenres
	}

	m.deck = deck.FilterByGenre(m.all, m.genre)
	m.swap()
	return m
}

// Start plays the initial content refresh.
func (m *Machine) Start() {
	m.redisplay()
}

// Navigate moves the cursor one card in dir and plays the slide. It is a
// no-op returning false while a slide is in flight, on an empty deck, or
// when the move would leave the deck.
func (m *Machine) Navigate(dir anim.Direction) bool {
	if m.seq.Busy() || len(m.deck) == 0 {
		return false
	}
	next := m.cursor + int(dir)
	if next < 0 || next >= len(m.deck) {
		return false
	}

	m.flipped = false
	m.cursor = next
	m.seq.Slide(dir, m.swap, nil)
	m.logger.Debug("navigate", "dir", dir, "index", m.cursor)
	return true
}

// Flip toggles the visible side of the card. It is never locked.
func (m *Machine) Flip() {
	m.flipped = !m.flipped
	m.seq.Flip()
}

// Reverse swaps which side of every card is the question and redisplays
// the current card in place.
func (m *Machine) Reverse() {
	m.reversed = !m.reversed
	m.redisplay()
}

// Reshuffle replaces the deck with a random permutation of itself.
func (m *Machine) Reshuffle() {
	m.replace(deck.Shuffle(m.deck, m.rng))
}

// Filter replaces the deck with the cards of genre. deck.AllGenres selects
// every card.
func (m *Machine) Filter(genre string) {
	m.genre = genre
	m.replace(deck.FilterByGenre(m.all, genre))
}

// CycleGenre moves the filter step positions through "all" followed by
// every genre, wrapping around.
func (m *Machine) CycleGenre(step int) {
	options := m.GenreOptions()
	idx := slices.Index(options, m.genre)
	if idx < 0 {
		idx = 0
	}
	n := len(options)
	m.Filter(options[((idx+step)%n+n)%n])
}

// GenreOptions returns the filter values in display order.
func (m *Machine) GenreOptions() []string {
	return append([]string{deck.AllGenres}, m.genres...)
}

func (m *Machine) replace(d deck.Deck) {
	m.deck = d
	m.cursor = 0
	m.seq.Reset()
	m.redisplay()
}

// redisplay turns the card back to its question side and refreshes the
// displayed content without a slide.
func (m *Machine) redisplay() {
	wasFlipped := m.flipped
	m.flipped = false
	if len(m.deck) == 0 {
		m.seq.Show(m.swap)
		return
	}
	m.seq.Refresh(wasFlipped, m.swap)
}

func (m *Machine) swap() {
	m.shown = Render(m.deck, m.cursor, m.reversed, len(m.all) == 0)
}

// Frame returns the content currently on display.
func (m *Machine) Frame() Frame {
	return m.shown
}

// Face returns the visual state of the card surface.
func (m *Machine) Face() anim.Face {
	return m.seq.Face()
}

// Sequencer returns the animation sequencer driving the machine.
func (m *Machine) Sequencer() *anim.Sequencer {
	return m.seq
}

// Deck returns the active deck.
func (m *Machine) Deck() deck.Deck {
	return m.deck
}

// State returns the live presentation state.
func (m *Machine) State() State {
	return State{
		Index:     m.cursor,
		Len:       len(m.deck),
		Genre:     m.genre,
		Flipped:   m.flipped,
		Reversed:  m.reversed,
		Animating: m.seq.Busy(),
		Phase:     m.seq.Phase(),
	}
}
