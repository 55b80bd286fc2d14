// Package source reads the files that make up a flashcard deck from a
// directory, a compressed archive (ZIP, 7z) or an HTTP base URL.
package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mitchellh/go-homedir"
)

// Well-known file names inside a deck.
const (
	ManifestJSON = "manifest.json"
	ManifestTOML = "deck.toml"
	LegacyData   = "data.json"
	DataDir      = "data"
)

// GenreFile returns the name of the card file for a genre.
func GenreFile(genre string) string {
	return path.Join(DataDir, genre+".json")
}

// Magic bytes for format detection
var (
	magicZIP    = []byte{0x50, 0x4B, 0x03, 0x04}
	magicZIPEnd = []byte{0x50, 0x4B, 0x05, 0x06} // empty zip
	magic7z     = []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}
)

// Maximum size of a single deck file (4MB safety limit)
const maxFileSize = 4 * 1024 * 1024

// ErrNotFound is returned when a deck does not contain the requested file
var ErrNotFound = errors.New("file not found in deck")

// ErrUnsupportedLocation is returned for locations that are neither a
// directory, a supported archive nor an HTTP URL
var ErrUnsupportedLocation = errors.New("unsupported deck location")

// ErrFileTooLarge is returned when a deck file exceeds the size limit
var ErrFileTooLarge = errors.New("file exceeds maximum size limit")

// Fetcher reads named files from a deck. Names are slash separated and
// relative to the deck root.
type Fetcher interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
	Location() string
}

// Lister is implemented by fetchers that can enumerate their files.
type Lister interface {
	List(ctx context.Context) ([]string, error)
}

type options struct {
	cacheDir string
	logger   *log.Logger
	client   HTTPDoer
}

// Option configures Open.
type Option func(*options)

// WithCacheDir sets the directory used to cache HTTP responses. An empty
// directory disables caching.
func WithCacheDir(dir string) Option {
	return func(o *options) { o.cacheDir = dir }
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithHTTPClient replaces the client used for HTTP locations.
func WithHTTPClient(c HTTPDoer) Option {
	return func(o *options) { o.client = c }
}

// Open returns a Fetcher for location. HTTP(S) URLs are fetched remotely,
// directories are read in place and archives are detected by magic bytes,
// falling back to the file extension.
func Open(location string, opts ...Option) (Fetcher, error) {
	o := options{logger: log.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	if IsURL(location) {
		return NewHTTP(location, o.client, o.cacheDir, o.logger)
	}

	expanded, err := homedir.Expand(location)
	if err != nil {
		return nil, fmt.Errorf("failed to expand %s: %w", location, err)
	}

	info, err := os.Stat(expanded)
	if err != nil {
		return nil, fmt.Errorf("deck location %s: %w", location, err)
	}
	if info.IsDir() {
		return NewDir(expanded), nil
	}

	header, err := readHeader(expanded)
	if err != nil {
		return nil, err
	}

	switch detectFormat(header, expanded) {
	case formatZIP:
		return openZIP(expanded)
	case format7z:
		return open7z(expanded)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLocation, location)
	}
}

// IsURL reports whether location is an HTTP or HTTPS URL.
func IsURL(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

type formatType int

const (
	formatUnknown formatType = iota
	formatZIP
	format7z
)

func readHeader(p string) ([]byte, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	header := make([]byte, 8)
	n, err := f.Read(header)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read file header: %w", err)
	}
	return header[:n], nil
}

// detectFormat determines the archive format based on magic bytes and
// extension.
func detectFormat(header []byte, p string) formatType {
	if len(header) >= 4 {
		if bytes.HasPrefix(header, magicZIP) || bytes.HasPrefix(header, magicZIPEnd) {
			return formatZIP
		}
	}
	if len(header) >= 6 && bytes.HasPrefix(header, magic7z) {
		return format7z
	}

	switch strings.ToLower(filepath.Ext(p)) {
	case ".zip":
		return formatZIP
	case ".7z":
		return format7z
	}
	return formatUnknown
}

// limitedRead reads from r up to maxFileSize bytes, returning an error if
// exceeded.
func limitedRead(r io.Reader) ([]byte, error) {
	lr := io.LimitReader(r, maxFileSize+1)
	data, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if len(data) > maxFileSize {
		return nil, ErrFileTooLarge
	}
	return data, nil
}

// cleanName normalizes a deck file name and rejects names escaping the
// deck root.
func cleanName(name string) (string, error) {
	cleaned := path.Clean("/" + filepath.ToSlash(name))[1:]
	if cleaned == "" || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("invalid deck file name: %q", name)
	}
	return cleaned, nil
}
