package anim

import "time"

// Offset is a horizontal resting position of the card face, in card
// widths.
type Offset int

const (
	OffLeft  Offset = -1
	Center   Offset = 0
	OffRight Offset = 1
)

// Face is the visual state of the card surface. Position is interpolated
// between two offsets while a transition is running.
type Face struct {
	from     float64
	to       Offset
	start    time.Time
	duration time.Duration

	// Hidden marks text as faded out.
	Hidden bool
	// Turning is set while the flip visual plays.
	Turning bool
}

// Target returns the offset the face rests at, or is moving towards.
func (f Face) Target() Offset {
	return f.to
}

// Position returns the horizontal position at now: 0 is centred, -1 and 1
// are fully off-screen.
func (f Face) Position(now time.Time) float64 {
	to := float64(f.to)
	if f.duration <= 0 {
		return to
	}
	t := float64(now.Sub(f.start)) / float64(f.duration)
	if t <= 0 {
		return f.from
	}
	if t >= 1 {
		return to
	}
	eased := t * t * (3 - 2*t)
	return f.from + (to-f.from)*eased
}

// Settled reports whether the face has reached its target.
func (f Face) Settled(now time.Time) bool {
	return f.duration <= 0 || !now.Before(f.start.Add(f.duration))
}

// OffScreen reports whether the face is entirely out of view.
func (f Face) OffScreen(now time.Time) bool {
	p := f.Position(now)
	return p <= -1 || p >= 1
}

// animate moves the face to target over d, starting from wherever it is
// at now.
func (f *Face) animate(target Offset, now time.Time, d time.Duration) {
	f.from = f.Position(now)
	f.to = target
	f.start = now
	f.duration = d
}

// jump places the face at target with transitions disabled.
func (f *Face) jump(target Offset) {
	f.from = float64(target)
	f.to = target
	f.duration = 0
}
