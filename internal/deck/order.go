package deck

import (
	"math/rand/v2"

	"github.com/arcanaland/tango/internal/card"
)

// AllGenres is the filter value that selects every card.
const AllGenres = "all"

// Deck is an ordered view over cards owned by a Store. Decks are replaced,
// never edited in place.
type Deck []*card.Card

// FilterByGenre returns the cards whose genre equals genre, in their
// original relative order. AllGenres returns a copy of every card.
func FilterByGenre(all Deck, genre string) Deck {
	out := make(Deck, 0, len(all))
	for _, c := range all {
		if genre == AllGenres || c.Genre == genre {
			out = append(out, c)
		}
	}
	return out
}

// Shuffle returns a uniformly random permutation of d using Fisher-Yates.
// d itself is left untouched.
func Shuffle(d Deck, rng *rand.Rand) Deck {
	out := make(Deck, len(d))
	copy(out, d)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Genres returns the distinct non-empty genres of d in first-seen order.
func Genres(d Deck) []string {
	seen := make(map[string]bool)
	var genres []string
	for _, c := range d {
		if c.Genre == "" || seen[c.Genre] {
			continue
		}
		seen[c.Genre] = true
		genres = append(genres, c.Genre)
	}
	return genres
}

// CountByGenre returns the number of cards per genre.
func CountByGenre(d Deck) map[string]int {
	counts := make(map[string]int)
	for _, c := range d {
		counts[c.Genre]++
	}
	return counts
}
