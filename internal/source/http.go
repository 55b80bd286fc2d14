package source

import (
	"context"
	"crypto/md5"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/peterbourgon/diskv/v3"
)

// HTTPDoer is the part of *http.Client used by the HTTP fetcher.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTP fetches deck files relative to a base URL. Successful responses are
// kept in an on-disk cache that is served when the network fails.
type HTTP struct {
	base   *url.URL
	client HTTPDoer
	cache  *diskv.Diskv
	logger *log.Logger
}

// NewHTTP returns a Fetcher for the deck published at base. cacheDir may be
// empty to disable caching.
func NewHTTP(base string, client HTTPDoer, cacheDir string, logger *log.Logger) (*HTTP, error) {
	u, err := url.Parse(strings.TrimSuffix(base, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid deck URL %s: %w", base, err)
	}
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = log.Default()
	}

	h := &HTTP{base: u, client: client, logger: logger}
	if cacheDir != "" {
		h.cache = diskv.New(diskv.Options{
			BasePath:     cacheDir,
			Transform:    func(key string) []string { return []string{key[:2]} },
			CacheSizeMax: 1024 * 1024, // 1MB
		})
	}
	return h, nil
}

func (h *HTTP) Location() string { return h.base.String() }

// URL returns the absolute URL of a deck file. Each path segment is
// escaped so genre names outside ASCII survive.
func (h *HTTP) URL(name string) (string, error) {
	cleaned, err := cleanName(name)
	if err != nil {
		return "", err
	}
	segments := strings.Split(cleaned, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return h.base.String() + "/" + strings.Join(segments, "/"), nil
}

func (h *HTTP) Fetch(ctx context.Context, name string) ([]byte, error) {
	target, err := h.URL(name)
	if err != nil {
		return nil, err
	}

	data, err := h.get(ctx, target)
	if err == nil {
		h.store(target, data)
		return data, nil
	}
	if errors.Is(err, ErrNotFound) {
		return nil, err
	}

	if cached, ok := h.cached(target); ok {
		h.logger.Warn("serving cached copy", "url", target, "err", err)
		return cached, nil
	}
	return nil, err
}

type statusError struct {
	url    string
	status int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("GET %s: %s", e.url, http.StatusText(e.status))
}

func (e *statusError) Unwrap() error {
	if e.status == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

func (h *HTTP) get(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{url: target, status: resp.StatusCode}
	}
	data, err := limitedRead(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", target, err)
	}
	return data, nil
}

func cacheKey(target string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(target)))
}

func (h *HTTP) store(target string, data []byte) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Write(cacheKey(target), data); err != nil {
		h.logger.Debug("failed to cache response", "url", target, "err", err)
	}
}

func (h *HTTP) cached(target string) ([]byte, bool) {
	if h.cache == nil {
		return nil, false
	}
	data, err := h.cache.Read(cacheKey(target))
	if err != nil {
		return nil, false
	}
	return data, true
}
