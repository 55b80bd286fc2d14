// Package anim sequences the timed card transitions: the directional slide
// used for next/prev and the fade refresh used for every other content
// change.
package anim

import "time"

// Phase is the step of the directional slide pipeline.
type Phase int

const (
	Idle Phase = iota
	SlidingOut
	ContentSwapped
	SlidingIn
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case SlidingOut:
		return "sliding-out"
	case ContentSwapped:
		return "content-swapped"
	case SlidingIn:
		return "sliding-in"
	default:
		return "unknown"
	}
}

// Direction is a navigation direction.
type Direction int

const (
	Prev Direction = -1
	Next Direction = 1
)

func (d Direction) String() string {
	if d == Prev {
		return "prev"
	}
	return "next"
}

// Timing holds the pipeline delays.
type Timing struct {
	Slide       time.Duration // each half of the directional slide
	Fade        time.Duration // hide before a refresh swap
	FadeFlipped time.Duration // hide before a refresh swap when unflipping
	Reveal      time.Duration // swap to fade-in
	Flip        time.Duration // flip visual
}

// DefaultTiming returns the stock delays.
func DefaultTiming() Timing {
	return Timing{
		Slide:       300 * time.Millisecond,
		Fade:        150 * time.Millisecond,
		FadeFlipped: 300 * time.Millisecond,
		Reveal:      10 * time.Millisecond,
		Flip:        300 * time.Millisecond,
	}
}

// Sequencer runs the animation pipelines against a Scheduler. Each track
// carries a generation counter; continuations belonging to an older
// generation do nothing when they fire.
type Sequencer struct {
	sched  Scheduler
	timing Timing

	face  Face
	phase Phase

	slideGen   int
	refreshGen int
	flipGen    int

	// deferred is the swap of a refresh that fell due while a slide was in
	// flight. It runs once the slide settles.
	deferred func()
}

// NewSequencer returns an idle sequencer with a centred face.
func NewSequencer(s Scheduler, t Timing) *Sequencer {
	return &Sequencer{sched: s, timing: t}
}

// Phase returns the current slide phase.
func (s *Sequencer) Phase() Phase { return s.phase }

// Busy reports whether a directional slide is in flight.
func (s *Sequencer) Busy() bool { return s.phase != Idle }

// Face returns a copy of the face state.
func (s *Sequencer) Face() Face { return s.face }

// Now returns the scheduler clock.
func (s *Sequencer) Now() time.Time { return s.sched.Now() }

// Timing returns the configured delays.
func (s *Sequencer) Timing() Timing { return s.timing }

// Active reports whether anything on screen is still changing, so the
// front end knows to keep drawing frames.
func (s *Sequencer) Active() bool {
	return s.Busy() || s.face.Hidden || s.face.Turning || !s.face.Settled(s.sched.Now())
}

// Slide plays the directional pipeline: slide out, jump to the opposite
// side and swap content while off-screen, slide back in on the next frame,
// then settle. It returns false without doing anything while another slide
// is in flight.
func (s *Sequencer) Slide(dir Direction, swap func(), settled func()) bool {
	if s.Busy() {
		return false
	}
	s.slideGen++
	gen := s.slideGen

	out := Offset(-int(dir))
	in := Offset(int(dir))

	s.phase = SlidingOut
	s.face.animate(out, s.sched.Now(), s.timing.Slide)

	s.sched.After(s.timing.Slide, func() {
		if gen != s.slideGen {
			return
		}
		s.face.jump(in)
		swap()
		s.phase = ContentSwapped

		// The slide swap renders the latest state, so any refresh started
		// before it is complete.
		s.refreshGen++
		s.deferred = nil
		s.face.Hidden = false

		s.sched.NextFrame(func() {
			if gen != s.slideGen {
				return
			}
			s.phase = SlidingIn
			s.face.animate(Center, s.sched.Now(), s.timing.Slide)

			s.sched.After(s.timing.Slide, func() {
				if gen != s.slideGen {
					return
				}
				s.phase = Idle
				s.runDeferred()
				if settled != nil {
					settled()
				}
			})
		})
	})
	return true
}

// Refresh plays the non-directional pipeline: hide text, swap content after
// the fade delay (longer when the face is turning back from its answer
// side), then reveal. A newer refresh supersedes an older one still
// pending. While a slide is in flight the text stays hidden and the swap
// waits for the slide to settle.
func (s *Sequencer) Refresh(fromFlipped bool, swap func()) {
	s.refreshGen++
	s.deferred = nil
	gen := s.refreshGen

	delay := s.timing.Fade
	if fromFlipped {
		delay = s.timing.FadeFlipped
	}
	s.face.Hidden = true

	s.sched.After(delay, func() {
		if gen != s.refreshGen {
			return
		}
		if s.Busy() {
			s.deferred = swap
			return
		}
		s.reveal(gen, swap)
	})
}

// reveal swaps content while the text is hidden, then shows it.
func (s *Sequencer) reveal(gen int, swap func()) {
	swap()
	s.sched.After(s.timing.Reveal, func() {
		if gen != s.refreshGen {
			return
		}
		s.face.Hidden = false
	})
}

func (s *Sequencer) runDeferred() {
	if swap := s.deferred; swap != nil {
		s.deferred = nil
		s.reveal(s.refreshGen, swap)
	}
}

// Show swaps content immediately with text visible, superseding any
// pending refresh.
func (s *Sequencer) Show(swap func()) {
	s.refreshGen++
	s.deferred = nil
	s.face.Hidden = false
	swap()
}

// Flip starts the flip visual. It runs on its own track and ignores the
// slide lock.
func (s *Sequencer) Flip() {
	s.flipGen++
	gen := s.flipGen
	s.face.Turning = true
	s.sched.After(s.timing.Flip, func() {
		if gen != s.flipGen {
			return
		}
		s.face.Turning = false
	})
}

// Reset abandons any in-flight slide and re-centres the face. Pending
// slide continuations become no-ops; a refresh waiting on the slide
// completes now.
func (s *Sequencer) Reset() {
	s.slideGen++
	s.phase = Idle
	s.face.jump(Center)
	s.runDeferred()
}
