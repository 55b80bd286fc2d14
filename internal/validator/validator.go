package validator

import (
	"context"
	"errors"
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/arcanaland/tango/internal/deck"
	"github.com/arcanaland/tango/internal/source"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

// OK reports whether no errors were found.
func (r ValidationResults) OK() bool {
	return len(r.Errors) == 0
}

type Validator struct {
	Fetcher source.Fetcher
	Results ValidationResults
}

func NewValidator(f source.Fetcher) *Validator {
	return &Validator{
		Fetcher: f,
		Results: ValidationResults{},
	}
}

// Validate checks the manifest, every genre file it lists and the legacy
// data file. A missing or unreadable manifest is returned as an error;
// problems inside the deck are collected in the results.
func (v *Validator) Validate(ctx context.Context) (ValidationResults, error) {
	manifest, err := deck.ReadManifest(ctx, v.Fetcher)
	if err != nil {
		return v.Results, err
	}

	v.validateManifest(manifest)

	cards := 0
	for _, genre := range manifest.Genres {
		cards += v.validateCardFile(ctx, source.GenreFile(genre), genre)
	}
	cards += v.validateLegacy(ctx)

	if cards == 0 {
		v.addError("deck contains no usable cards")
	}

	v.validateUnlistedFiles(ctx, manifest.Genres)

	return v.Results, nil
}

func (v *Validator) validateManifest(m *deck.Manifest) {
	if m.ID == "" {
		v.addWarning("manifest id is not set")
	}
	if m.Name == "" {
		v.addWarning("manifest name is not set")
	}

	seen := make(map[string]bool)
	for _, genre := range m.Genres {
		switch {
		case genre == "":
			v.addError("manifest lists an empty genre")
		case genre == deck.AllGenres:
			v.addError(fmt.Sprintf("genre name %q is reserved", deck.AllGenres))
		case strings.ContainsAny(genre, `/\`):
			v.addError(fmt.Sprintf("genre name %q must not contain a path separator", genre))
		case seen[genre]:
			v.addWarning(fmt.Sprintf("genre %q is listed more than once", genre))
		}
		seen[genre] = true
	}
}

// validateCardFile checks one card array and returns the number of usable
// records. genre is empty for the legacy file.
func (v *Validator) validateCardFile(ctx context.Context, name, genre string) int {
	data, err := v.Fetcher.Fetch(ctx, name)
	if errors.Is(err, source.ErrNotFound) {
		v.addError(fmt.Sprintf("%s not found", name))
		return 0
	}
	if err != nil {
		v.addError(fmt.Sprintf("%s: %v", name, err))
		return 0
	}

	cards, err := deck.ParseCards(data)
	if err != nil {
		v.addError(fmt.Sprintf("%s: %v", name, err))
		return 0
	}
	if len(cards) == 0 {
		v.addWarning(fmt.Sprintf("%s contains no cards", name))
	}

	usable := 0
	words := make(map[string]int)
	for i, c := range cards {
		if c.Word == "" {
			v.addError(fmt.Sprintf("%s: card %d is missing a word", name, i))
			continue
		}
		if c.Meaning == "" {
			v.addError(fmt.Sprintf("%s: card %d (%s) is missing a meaning", name, i, c.Word))
			continue
		}
		usable++

		if first, ok := words[c.Word]; ok {
			v.addWarning(fmt.Sprintf("%s: card %d duplicates card %d (%s)", name, i, first, c.Word))
		} else {
			words[c.Word] = i
		}

		switch {
		case genre == "" && c.Genre == "":
			v.addWarning(fmt.Sprintf("%s: card %d (%s) has no genre", name, i, c.Word))
		case genre != "" && c.Genre != "" && c.Genre != genre:
			v.addWarning(fmt.Sprintf("%s: card %d (%s) is tagged %q", name, i, c.Word, c.Genre))
		}
	}
	return usable
}

func (v *Validator) validateLegacy(ctx context.Context) int {
	if _, err := v.Fetcher.Fetch(ctx, source.LegacyData); errors.Is(err, source.ErrNotFound) {
		return 0
	}
	return v.validateCardFile(ctx, source.LegacyData, "")
}

// validateUnlistedFiles warns about card files the manifest does not
// reference. Fetchers that cannot list their files are skipped.
func (v *Validator) validateUnlistedFiles(ctx context.Context, genres []string) {
	lister, ok := v.Fetcher.(source.Lister)
	if !ok {
		return
	}
	files, err := lister.List(ctx)
	if err != nil {
		v.addWarning(fmt.Sprintf("could not list deck files: %v", err))
		return
	}

	for _, name := range files {
		if path.Dir(name) != source.DataDir || path.Ext(name) != ".json" {
			continue
		}
		genre := strings.TrimSuffix(path.Base(name), ".json")
		if !slices.Contains(genres, genre) {
			v.addWarning(fmt.Sprintf("%s is not listed in the manifest", name))
		}
	}
}

func (v *Validator) addError(msg string) {
	v.Results.Errors = append(v.Results.Errors, msg)
}

func (v *Validator) addWarning(msg string) {
	v.Results.Warnings = append(v.Results.Warnings, msg)
}
