package anim

import "time"

// FrameInterval is the delay used for "next paint frame" continuations.
const FrameInterval = time.Second / 60

// Scheduler runs continuations on the caller's event loop. Implementations
// must never run a callback concurrently with another one or with the code
// that scheduled it.
type Scheduler interface {
	Now() time.Time
	After(d time.Duration, fn func())
	NextFrame(fn func())
}

// Manual is a Scheduler driven by an explicit clock. Callbacks run only
// from Advance or Flush.
type Manual struct {
	now     time.Time
	seq     int
	pending []timer
}

type timer struct {
	due time.Time
	seq int
	fn  func()
}

// NewManual returns a Manual scheduler whose clock starts at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time { return m.now }

func (m *Manual) After(d time.Duration, fn func()) {
	m.seq++
	m.pending = append(m.pending, timer{due: m.now.Add(d), seq: m.seq, fn: fn})
}

func (m *Manual) NextFrame(fn func()) {
	m.After(FrameInterval, fn)
}

// Pending returns the number of callbacks waiting to run.
func (m *Manual) Pending() int {
	return len(m.pending)
}

// Advance moves the clock forward by d, running every callback that falls
// due in order of due time, then scheduling order. Callbacks scheduled while
// advancing run too when they fall inside the window.
func (m *Manual) Advance(d time.Duration) {
	end := m.now.Add(d)
	for {
		i := m.next()
		if i < 0 || m.pending[i].due.After(end) {
			break
		}
		t := m.pending[i]
		m.pending = append(m.pending[:i], m.pending[i+1:]...)
		if t.due.After(m.now) {
			m.now = t.due
		}
		t.fn()
	}
	m.now = end
}

// Flush runs callbacks until none are pending.
func (m *Manual) Flush() {
	for {
		i := m.next()
		if i < 0 {
			return
		}
		m.Advance(m.pending[i].due.Sub(m.now))
	}
}

func (m *Manual) next() int {
	best := -1
	for i, t := range m.pending {
		if best < 0 || t.due.Before(m.pending[best].due) ||
			(t.due.Equal(m.pending[best].due) && t.seq < m.pending[best].seq) {
			best = i
		}
	}
	return best
}
