package viewer

import (
	"io"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/arcanaland/tango/internal/anim"
	"github.com/arcanaland/tango/internal/card"
	"github.com/arcanaland/tango/internal/deck"
)

var epoch = time.Date(2025, time.November, 1, 9, 0, 0, 0, time.UTC)

func newTestMachine(t *testing.T, cards []*card.Card, opts ...Option) (*Machine, *anim.Manual) {
	t.Helper()
	clock := anim.NewManual(epoch)
	seq := anim.NewSequencer(clock, anim.DefaultTiming())
	opts = append([]Option{
		WithRand(rand.New(rand.NewPCG(1, 1))),
		WithLogger(log.New(io.Discard)),
	}, opts...)
	m := New(deck.NewStore(cards), seq, opts...)
	m.Start()
	clock.Flush()
	return m, clock
}

func animals() []*card.Card {
	return []*card.Card{
		{Word: "犬", Meaning: "dog", Genre: "animals"},
		{Word: "猫", Meaning: "cat", Genre: "animals"},
	}
}

func mixed() []*card.Card {
	return []*card.Card{
		{Word: "犬", Meaning: "dog", Genre: "animals"},
		{Word: "桜", Meaning: "cherry blossom", Reading: "さくら", Genre: "plants"},
		{Word: "猫", Meaning: "cat", Genre: "animals"},
		{Word: "薔薇", Meaning: "rose", Genre: "plants"},
		{Word: "鳥", Meaning: "bird", Genre: "animals"},
	}
}

func TestNavigateNextThenBoundary(t *testing.T) {
	m, clock := newTestMachine(t, animals())

	if !m.Navigate(anim.Next) {
		t.Fatalf("expected next to be accepted")
	}
	clock.Flush()

	if got := m.State().Index; got != 1 {
		t.Fatalf("expected cursor 1, got %d", got)
	}
	f := m.Frame()
	if f.Question.String() != "猫" {
		t.Fatalf("expected question 猫, got %q", f.Question)
	}
	if !f.NextDisabled || f.PrevDisabled {
		t.Fatalf("expected next disabled and prev enabled, got %+v", f)
	}

	if m.Navigate(anim.Next) {
		t.Fatalf("next at the last card must be rejected")
	}
	if clock.Pending() != 0 {
		t.Fatalf("rejected navigation scheduled work")
	}
	if got := m.State().Index; got != 1 {
		t.Fatalf("cursor moved on rejected next: %d", got)
	}
	if !m.Frame().NextDisabled {
		t.Fatalf("next must stay disabled")
	}
}

func TestNavigatePrevAtStartIsNoop(t *testing.T) {
	m, _ := newTestMachine(t, animals())

	if m.Navigate(anim.Prev) {
		t.Fatalf("prev at index 0 must be rejected")
	}
	if m.State().Index != 0 || m.State().Animating {
		t.Fatalf("unexpected state after rejected prev: %+v", m.State())
	}
}

func TestNavigateRejectedWhileAnimating(t *testing.T) {
	m, clock := newTestMachine(t, mixed())

	m.Navigate(anim.Next)
	clock.Advance(100 * time.Millisecond)
	if !m.State().Animating {
		t.Fatalf("expected the lock to be held mid-slide")
	}

	before := m.Deck()
	if m.Navigate(anim.Next) || m.Navigate(anim.Prev) {
		t.Fatalf("navigation accepted while animating")
	}
	if m.State().Index != 1 {
		t.Fatalf("cursor changed while animating: %d", m.State().Index)
	}
	after := m.Deck()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("deck changed while animating")
		}
	}

	clock.Flush()
	if m.State().Animating {
		t.Fatalf("lock not released after settle")
	}
	if !m.Navigate(anim.Next) {
		t.Fatalf("navigation rejected after the lock cleared")
	}
}

func TestCursorStaysInBounds(t *testing.T) {
	m, clock := newTestMachine(t, mixed())
	rng := rand.New(rand.NewPCG(9, 9))

	for i := 0; i < 200; i++ {
		dir := anim.Next
		if rng.IntN(2) == 0 {
			dir = anim.Prev
		}
		m.Navigate(dir)
		clock.Advance(time.Duration(rng.IntN(700)) * time.Millisecond)

		s := m.State()
		if s.Index < 0 || s.Index >= s.Len {
			t.Fatalf("cursor %d out of [0,%d)", s.Index, s.Len)
		}
	}
}

func TestContentSwapsMidSlide(t *testing.T) {
	m, clock := newTestMachine(t, animals())

	m.Navigate(anim.Next)
	if m.Frame().Question.String() != "犬" {
		t.Fatalf("content changed before the face left the screen")
	}
	clock.Advance(300 * time.Millisecond)
	if m.Frame().Question.String() != "猫" {
		t.Fatalf("expected content swapped once off-screen")
	}
}

func TestNavigateUnflips(t *testing.T) {
	m, clock := newTestMachine(t, animals())

	m.Flip()
	if !m.State().Flipped {
		t.Fatalf("expected flipped")
	}
	m.Navigate(anim.Next)
	if m.State().Flipped {
		t.Fatalf("navigation must unflip as part of the transition")
	}
	clock.Flush()
}

func TestFlipAllowedWhileAnimating(t *testing.T) {
	m, clock := newTestMachine(t, animals())

	m.Navigate(anim.Next)
	clock.Advance(50 * time.Millisecond)

	m.Flip()
	if !m.State().Flipped {
		t.Fatalf("flip must not be gated by the animation lock")
	}
	if !m.State().Animating {
		t.Fatalf("flip must not touch the animation lock")
	}
	m.Flip()
	if m.State().Flipped {
		t.Fatalf("second flip must toggle back")
	}
}

func TestReverseSwapsFaces(t *testing.T) {
	m, clock := newTestMachine(t, []*card.Card{{Word: "犬", Meaning: "dog", Genre: "animals"}})

	f := m.Frame()
	if f.Question.String() != "犬" || f.Answer.String() != "dog" {
		t.Fatalf("forward faces = %q/%q", f.Question, f.Answer)
	}

	m.Reverse()
	clock.Flush()
	f = m.Frame()
	if f.Question.String() != "dog" || f.Answer.String() != "犬" {
		t.Fatalf("reversed faces = %q/%q", f.Question, f.Answer)
	}
	if f.Genre != "animals" {
		t.Fatalf("genre must be shown in both modes, got %q", f.Genre)
	}

	m.Reverse()
	clock.Flush()
	f = m.Frame()
	if f.Question.String() != "犬" || f.Answer.String() != "dog" {
		t.Fatalf("double reverse faces = %q/%q", f.Question, f.Answer)
	}
}

func TestReverseKeepsReadingGloss(t *testing.T) {
	m, clock := newTestMachine(t, mixed(), WithGenre("plants"))

	if _, ok := m.Frame().Question.(card.Annotated); !ok {
		t.Fatalf("expected annotated question, got %T", m.Frame().Question)
	}
	m.Reverse()
	clock.Flush()
	if _, ok := m.Frame().Answer.(card.Annotated); !ok {
		t.Fatalf("expected annotated answer in reverse mode, got %T", m.Frame().Answer)
	}
}

func TestReverseFromFlippedWaitsForUnflip(t *testing.T) {
	m, clock := newTestMachine(t, animals())

	m.Flip()
	clock.Flush()
	m.Reverse()
	if m.State().Flipped {
		t.Fatalf("reverse must unflip")
	}
	clock.Advance(150 * time.Millisecond)
	if m.Frame().Question.String() != "犬" {
		t.Fatalf("content swapped before the unflip finished")
	}
	clock.Advance(150 * time.Millisecond)
	if m.Frame().Question.String() != "dog" {
		t.Fatalf("expected reversed content after 300ms, got %q", m.Frame().Question)
	}
}

func TestFilterResetsCursorAndKeepsReverse(t *testing.T) {
	m, clock := newTestMachine(t, mixed())

	m.Navigate(anim.Next)
	clock.Flush()
	m.Reverse()
	m.Flip()
	clock.Flush()

	m.Filter("plants")
	clock.Flush()

	s := m.State()
	if s.Index != 0 || s.Len != 2 || s.Flipped || !s.Reversed {
		t.Fatalf("unexpected state after filter: %+v", s)
	}
	if got := m.Frame().Question.String(); got != "cherry blossom" {
		t.Fatalf("expected reversed first plant, got %q", got)
	}
}

func TestFilterCancelsSlide(t *testing.T) {
	m, clock := newTestMachine(t, mixed())

	m.Navigate(anim.Next)
	clock.Advance(100 * time.Millisecond)
	m.Filter("animals")

	if m.State().Animating {
		t.Fatalf("deck replacement must clear the lock")
	}
	clock.Flush()
	if m.State().Index != 0 || m.Frame().Question.String() != "犬" {
		t.Fatalf("stale slide changed the new deck: %+v", m.State())
	}
}

func TestReshuffleKeepsCards(t *testing.T) {
	m, clock := newTestMachine(t, mixed())

	m.Navigate(anim.Next)
	clock.Flush()
	m.Reshuffle()
	clock.Flush()

	if m.State().Index != 0 {
		t.Fatalf("reshuffle must reset the cursor")
	}
	seen := make(map[string]bool)
	for _, c := range m.Deck() {
		seen[c.Word] = true
	}
	if len(seen) != 5 {
		t.Fatalf("reshuffle lost cards: %v", seen)
	}
}

func TestEmptyDeckAfterFilter(t *testing.T) {
	m, clock := newTestMachine(t, mixed())

	m.Filter("verbs")
	clock.Flush()

	f := m.Frame()
	if !f.Empty || f.NoData || f.Question.String() != PlaceholderNoCards {
		t.Fatalf("expected placeholder frame, got %+v", f)
	}
	if f.Counter() != "" || f.Progress() != 0 {
		t.Fatalf("counter/progress must not render for an empty deck")
	}
	if !f.PrevDisabled || !f.NextDisabled {
		t.Fatalf("prev and next must both be disabled")
	}
	if m.Navigate(anim.Next) {
		t.Fatalf("navigation on an empty deck must be rejected")
	}

	m.Filter(deck.AllGenres)
	clock.Flush()
	if m.Frame().Empty {
		t.Fatalf("choosing another filter must recover")
	}
}

func TestNoDataPlaceholder(t *testing.T) {
	m, _ := newTestMachine(t, nil)

	f := m.Frame()
	if !f.Empty || !f.NoData || f.Question.String() != PlaceholderNoData {
		t.Fatalf("expected no-data placeholder, got %+v", f)
	}
}

func TestCycleGenreWraps(t *testing.T) {
	m, clock := newTestMachine(t, mixed())

	m.CycleGenre(1)
	clock.Flush()
	if m.State().Genre != "animals" {
		t.Fatalf("expected animals, got %s", m.State().Genre)
	}
	m.CycleGenre(-2)
	clock.Flush()
	if m.State().Genre != "plants" {
		t.Fatalf("expected wrap to plants, got %s", m.State().Genre)
	}
}

func TestUnknownInitialGenreFallsBack(t *testing.T) {
	m, _ := newTestMachine(t, mixed(), WithGenre("verbs"))

	if s := m.State(); s.Genre != deck.AllGenres || s.Len != 5 {
		t.Fatalf("expected every card, got %+v", s)
	}
}

// assertNoNextCardOnOutgoingFace steps the clock until everything settles,
// failing if the card at position pos shows while the face slides out.
func assertNoNextCardOnOutgoingFace(t *testing.T, m *Machine, clock *anim.Manual, pos int) {
	t.Helper()
	for i := 0; i < 100 && m.Sequencer().Active(); i++ {
		face := m.Face()
		if face.Target() == anim.OffLeft && !face.Hidden && m.Frame().Position == pos {
			t.Fatalf("card %d visible on the outgoing face at %v", pos, clock.Now().Sub(epoch))
		}
		clock.Advance(10 * time.Millisecond)
	}
	clock.Flush()
}

func TestFilterThenNavigateKeepsContentOffOutgoingFace(t *testing.T) {
	m, clock := newTestMachine(t, mixed())

	m.Filter("animals")
	clock.Advance(20 * time.Millisecond)
	if !m.Navigate(anim.Next) {
		t.Fatalf("navigation must be accepted during a fade")
	}
	assertNoNextCardOnOutgoingFace(t, m, clock, 2)

	f := m.Frame()
	if f.Question.String() != "猫" || f.Counter() != "2/3" || m.Face().Hidden {
		t.Fatalf("unexpected settled frame %q %s hidden=%v", f.Question, f.Counter(), m.Face().Hidden)
	}
}

func TestReverseDuringSlideKeepsContentOffOutgoingFace(t *testing.T) {
	m, clock := newTestMachine(t, animals())

	m.Navigate(anim.Next)
	clock.Advance(50 * time.Millisecond)
	m.Reverse()
	assertNoNextCardOnOutgoingFace(t, m, clock, 2)

	f := m.Frame()
	if f.Question.String() != "cat" || m.Face().Hidden {
		t.Fatalf("expected reversed second card, got %q hidden=%v", f.Question, m.Face().Hidden)
	}
}
