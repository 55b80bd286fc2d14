package deck

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/arcanaland/tango/internal/source"
)

// mapFetcher serves deck files from memory. Names mapped to an error fail
// with that error.
type mapFetcher struct {
	files  map[string]string
	broken map[string]error
}

func (m *mapFetcher) Location() string { return "memory" }

func (m *mapFetcher) Fetch(_ context.Context, name string) ([]byte, error) {
	if err, ok := m.broken[name]; ok {
		return nil, err
	}
	body, ok := m.files[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", source.ErrNotFound, name)
	}
	return []byte(body), nil
}

func quietLogger() Option {
	return WithLogger(log.New(io.Discard))
}

func TestLoadTagsGenreFromSource(t *testing.T) {
	f := &mapFetcher{files: map[string]string{
		"manifest.json":       `{"name":"Kotoba","genres":["animals","四字熟語"]}`,
		"data/animals.json":   `[{"word":"犬","meaning":"dog"},{"word":"猫","meaning":"cat","genre":"pets"}]`,
		"data/四字熟語.json":      `[{"word":"一期一会","meaning":"once in a lifetime","reading":"いちごいちえ"}]`,
		"data.json":           `[{"word":"桜","meaning":"cherry blossom","genre":"plants"}]`,
		"data/unlisted.json":  `[{"word":"x","meaning":"y"}]`,
	}}

	store, err := Load(context.Background(), f, quietLogger())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if store.Name != "Kotoba" {
		t.Errorf("Name = %q", store.Name)
	}

	cards := store.Cards()
	want := []struct{ word, genre string }{
		{"犬", "animals"},
		{"猫", "pets"},
		{"一期一会", "四字熟語"},
		{"桜", "plants"},
	}
	if len(cards) != len(want) {
		t.Fatalf("expected %d cards, got %d", len(want), len(cards))
	}
	for i, w := range want {
		if cards[i].Word != w.word || cards[i].Genre != w.genre {
			t.Errorf("card %d = %s/%s, want %s/%s", i, cards[i].Word, cards[i].Genre, w.word, w.genre)
		}
	}
	if cards[2].Reading != "いちごいちえ" {
		t.Errorf("reading not loaded: %q", cards[2].Reading)
	}
}

func TestLoadSkipsBrokenSource(t *testing.T) {
	f := &mapFetcher{
		files: map[string]string{
			"manifest.json":     `{"genres":["animals","plants","verbs"]}`,
			"data/animals.json": `[{"word":"犬","meaning":"dog"}]`,
			"data/verbs.json":   `{not json`,
		},
		broken: map[string]error{
			"data/plants.json": errors.New("connection reset"),
		},
	}

	store, err := Load(context.Background(), f, quietLogger())
	if err != nil {
		t.Fatalf("partial failure must not be fatal: %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 card, got %d", store.Len())
	}

	failures := store.Failures()
	if len(failures) != 2 {
		t.Fatalf("expected 2 failures, got %v", failures)
	}
	var se *SourceError
	if !errors.As(failures[0], &se) || se.Source != "plants" {
		t.Errorf("first failure = %v", failures[0])
	}
	if !errors.As(failures[1], &se) || se.Source != "verbs" {
		t.Errorf("second failure = %v", failures[1])
	}
}

func TestLoadWithoutManifest(t *testing.T) {
	f := &mapFetcher{files: map[string]string{}}

	store, err := Load(context.Background(), f, quietLogger())
	if !errors.Is(err, ErrNoDataLoaded) {
		t.Fatalf("expected ErrNoDataLoaded, got %v", err)
	}
	if !errors.Is(err, ErrManifestUnavailable) {
		t.Errorf("expected the manifest failure to be reported, got %v", err)
	}
	if store == nil || store.Len() != 0 {
		t.Fatalf("expected an empty store")
	}
}

func TestLoadLegacyOnly(t *testing.T) {
	f := &mapFetcher{files: map[string]string{
		"data.json": `[{"word":"犬","meaning":"dog","genre":"animals"},{"word":"","meaning":"blank"}]`,
	}}

	store, err := Load(context.Background(), f, quietLogger())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("expected incomplete record to be skipped, got %d cards", store.Len())
	}
}

func TestReadManifestFromDeckToml(t *testing.T) {
	f := &mapFetcher{files: map[string]string{
		"deck.toml": `
[deck]
id = "kotoba"
name = "Kotoba"
version = "1.0"
genres = ["animals", "plants"]
`,
	}}

	m, err := ReadManifest(context.Background(), f)
	if err != nil {
		t.Fatalf("ReadManifest failed: %v", err)
	}
	if m.ID != "kotoba" || len(m.Genres) != 2 || m.Genres[1] != "plants" {
		t.Fatalf("unexpected manifest: %+v", m)
	}
}
