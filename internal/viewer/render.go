package viewer

import (
	"fmt"

	"github.com/arcanaland/tango/internal/card"
	"github.com/arcanaland/tango/internal/deck"
)

// Placeholder texts for an empty deck.
const (
	PlaceholderNoCards = "No cards"
	PlaceholderNoData  = "Could not load any cards"
)

// Frame is the content displayed for one card position.
type Frame struct {
	Question card.Content
	Answer   card.Content
	Genre    string

	Position int // 1-based
	Total    int

	PrevDisabled bool
	NextDisabled bool

	// Empty is set when the deck has no cards; only Question is filled.
	Empty bool
	// NoData is set when nothing could be loaded at all.
	NoData bool
}

// Counter returns "{position}/{total}", or "" for an empty deck.
func (f Frame) Counter() string {
	if f.Empty {
		return ""
	}
	return fmt.Sprintf("%d/%d", f.Position, f.Total)
}

// Progress returns the fraction of the deck reached, in (0, 1].
func (f Frame) Progress() float64 {
	if f.Empty || f.Total == 0 {
		return 0
	}
	return float64(f.Position) / float64(f.Total)
}

// Render builds the frame for the card at cursor. noData selects the
// placeholder shown when nothing could be loaded at all.
func Render(d deck.Deck, cursor int, reversed, noData bool) Frame {
	if len(d) == 0 {
		text := PlaceholderNoCards
		if noData {
			text = PlaceholderNoData
		}
		return Frame{
			Question:     card.Plain{Text: text},
			Answer:       card.Plain{},
			PrevDisabled: true,
			NextDisabled: true,
			Empty:        true,
			NoData:       noData,
		}
	}

	if cursor < 0 {
		cursor = 0
	}
	if cursor >= len(d) {
		cursor = len(d) - 1
	}

	c := d[cursor]
	question, answer := c.Faces(reversed)
	return Frame{
		Question:     question,
		Answer:       answer,
		Genre:        c.Genre,
		Position:     cursor + 1,
		Total:        len(d),
		PrevDisabled: cursor == 0,
		NextDisabled: cursor == len(d)-1,
	}
}
