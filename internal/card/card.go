package card

// Card represents a vocabulary flashcard
type Card struct {
	Word    string `json:"word"`              // Headword (e.g., 犬, 一期一会)
	Meaning string `json:"meaning"`           // Definition shown on the answer side
	Reading string `json:"reading,omitempty"` // Optional pronunciation gloss (furigana)
	Genre   string `json:"genre,omitempty"`   // Category label, filled from the source name when absent
}

// Content is what one face of a card displays. It is either Plain or
// Annotated.
type Content interface {
	// String returns the content flattened to a single line.
	String() string
	isContent()
}

// Plain is unannotated text.
type Plain struct {
	Text string
}

// Annotated is a base text with a reading gloss rendered above it.
type Annotated struct {
	Base  string
	Gloss string
}

func (p Plain) String() string { return p.Text }

func (a Annotated) String() string { return a.Base + " (" + a.Gloss + ")" }

func (Plain) isContent()     {}
func (Annotated) isContent() {}

// WordContent returns the headword, annotated with its reading when one is
// present.
func (c *Card) WordContent() Content {
	if c.Reading == "" {
		return Plain{Text: c.Word}
	}
	return Annotated{Base: c.Word, Gloss: c.Reading}
}

// MeaningContent returns the meaning as plain text.
func (c *Card) MeaningContent() Content {
	return Plain{Text: c.Meaning}
}

// Faces returns the question and answer content for the card. Reversed
// swaps the two sides.
func (c *Card) Faces(reversed bool) (question, answer Content) {
	if reversed {
		return c.MeaningContent(), c.WordContent()
	}
	return c.WordContent(), c.MeaningContent()
}
