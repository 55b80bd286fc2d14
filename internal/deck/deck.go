package deck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/arcanaland/tango/internal/card"
	"github.com/arcanaland/tango/internal/source"
)

// ErrNoDataLoaded is returned by Load when no source produced a card
var ErrNoDataLoaded = errors.New("no cards loaded")

// ErrManifestUnavailable is reported when neither manifest.json nor
// deck.toml could be read
var ErrManifestUnavailable = errors.New("deck manifest unavailable")

// SourceError reports a card source that could not be fetched or parsed.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// Store holds every card loaded from a deck. It is frozen once Load
// returns.
type Store struct {
	ID          string
	Name        string
	Version     string
	Author      string
	Description string
	Location    string

	cards    []*card.Card
	failures []error
}

// Cards returns the full card set in load order.
func (s *Store) Cards() Deck {
	return s.cards
}

// Len returns the number of loaded cards.
func (s *Store) Len() int {
	return len(s.cards)
}

// Failures returns the diagnostics collected while loading.
func (s *Store) Failures() []error {
	return s.failures
}

// Genres returns the distinct genres of the store in first-seen order.
func (s *Store) Genres() []string {
	return Genres(s.cards)
}

// NewStore returns a store over an already loaded card set.
func NewStore(cards []*card.Card) *Store {
	return &Store{cards: cards}
}

// Option configures Load.
type Option func(*loader)

// WithLogger sets the logger used for load diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(ld *loader) { ld.logger = l }
}

type loader struct {
	fetcher source.Fetcher
	logger  *log.Logger
	store   *Store
}

// Load reads the deck manifest from f and aggregates the cards of every
// listed genre, followed by the legacy combined data file. Unreadable
// sources are skipped. When nothing could be loaded the returned store is
// empty and the error wraps ErrNoDataLoaded together with every failure.
func Load(ctx context.Context, f source.Fetcher, opts ...Option) (*Store, error) {
	ld := &loader{
		fetcher: f,
		logger:  log.Default(),
		store:   &Store{Location: f.Location()},
	}
	for _, opt := range opts {
		opt(ld)
	}

	manifest, err := ReadManifest(ctx, f)
	if err != nil {
		ld.fail(err)
	} else {
		ld.store.ID = manifest.ID
		ld.store.Name = manifest.Name
		ld.store.Version = manifest.Version
		ld.store.Author = manifest.Author
		ld.store.Description = manifest.Description

		for _, genre := range manifest.Genres {
			ld.loadGenre(ctx, genre)
		}
	}

	ld.loadLegacy(ctx)

	if len(ld.store.cards) == 0 {
		if len(ld.store.failures) == 0 {
			return ld.store, fmt.Errorf("%w from %s", ErrNoDataLoaded, f.Location())
		}
		return ld.store, fmt.Errorf("%w from %s: %w", ErrNoDataLoaded, f.Location(), errors.Join(ld.store.failures...))
	}

	ld.logger.Debug("deck loaded", "location", f.Location(), "cards", len(ld.store.cards))
	return ld.store, nil
}

func (ld *loader) fail(err error) {
	ld.logger.Warn("skipping deck source", "err", err)
	ld.store.failures = append(ld.store.failures, err)
}

func (ld *loader) loadGenre(ctx context.Context, genre string) {
	data, err := ld.fetcher.Fetch(ctx, source.GenreFile(genre))
	if err != nil {
		ld.fail(&SourceError{Source: genre, Err: err})
		return
	}

	cards, err := ld.parse(genre, data)
	if err != nil {
		ld.fail(&SourceError{Source: genre, Err: err})
		return
	}

	for _, c := range cards {
		if c.Genre == "" {
			c.Genre = genre
		}
	}
	ld.store.cards = append(ld.store.cards, cards...)
}

func (ld *loader) loadLegacy(ctx context.Context) {
	data, err := ld.fetcher.Fetch(ctx, source.LegacyData)
	if errors.Is(err, source.ErrNotFound) {
		ld.logger.Debug("no legacy data file", "location", ld.fetcher.Location())
		return
	}
	if err != nil {
		ld.fail(&SourceError{Source: source.LegacyData, Err: err})
		return
	}

	cards, err := ld.parse(source.LegacyData, data)
	if err != nil {
		ld.fail(&SourceError{Source: source.LegacyData, Err: err})
		return
	}
	ld.store.cards = append(ld.store.cards, cards...)
}

// parse decodes a card record array, dropping records without a word or a
// meaning.
func (ld *loader) parse(name string, data []byte) ([]*card.Card, error) {
	cards, err := ParseCards(data)
	if err != nil {
		return nil, err
	}

	kept := cards[:0]
	for i, c := range cards {
		if c.Word == "" || c.Meaning == "" {
			ld.logger.Warn("skipping incomplete card", "source", name, "index", i)
			continue
		}
		kept = append(kept, c)
	}
	return kept, nil
}

// ParseCards decodes a JSON array of card records.
func ParseCards(data []byte) ([]*card.Card, error) {
	var cards []*card.Card
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, fmt.Errorf("error parsing cards: %w", err)
	}
	for i, c := range cards {
		if c == nil {
			return nil, fmt.Errorf("error parsing cards: record %d is null", i)
		}
	}
	return cards, nil
}

// Manifest lists the genre sources of a deck together with its metadata.
type Manifest struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name,omitempty"`
	Version     string   `json:"version,omitempty"`
	Author      string   `json:"author,omitempty"`
	Description string   `json:"description,omitempty"`
	Genres      []string `json:"genres"`
}

// DeckConfig is the layout of deck.toml
type DeckConfig struct {
	Deck DeckSection `toml:"deck"`
}

type DeckSection struct {
	ID          string   `toml:"id"`
	Name        string   `toml:"name"`
	Version     string   `toml:"version"`
	Author      string   `toml:"author"`
	Description string   `toml:"description"`
	Genres      []string `toml:"genres"`
}

// ReadManifest reads manifest.json, falling back to deck.toml. The error
// wraps ErrManifestUnavailable when neither can be used.
func ReadManifest(ctx context.Context, f source.Fetcher) (*Manifest, error) {
	data, err := f.Fetch(ctx, source.ManifestJSON)
	if err == nil {
		var m Manifest
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("%w: error parsing %s: %v", ErrManifestUnavailable, source.ManifestJSON, err)
		}
		return &m, nil
	}
	if !errors.Is(err, source.ErrNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrManifestUnavailable, err)
	}

	data, err = f.Fetch(ctx, source.ManifestTOML)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifestUnavailable, err)
	}
	var config DeckConfig
	if _, err := toml.Decode(string(data), &config); err != nil {
		return nil, fmt.Errorf("%w: error parsing %s: %v", ErrManifestUnavailable, source.ManifestTOML, err)
	}
	return &Manifest{
		ID:          config.Deck.ID,
		Name:        config.Deck.Name,
		Version:     config.Deck.Version,
		Author:      config.Deck.Author,
		Description: config.Deck.Description,
		Genres:      config.Deck.Genres,
	}, nil
}
