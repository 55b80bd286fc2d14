package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Dir reads deck files from a directory on disk.
type Dir struct {
	root string
}

// NewDir returns a Fetcher rooted at dir.
func NewDir(dir string) *Dir {
	return &Dir{root: dir}
}

func (d *Dir) Location() string { return d.root }

func (d *Dir) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cleaned, err := cleanName(name)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(d.root, filepath.FromSlash(cleaned)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, cleaned)
		}
		return nil, err
	}
	defer f.Close()

	data, err := limitedRead(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", cleaned, err)
	}
	return data, nil
}

// List returns every regular file in the deck, slash separated and sorted.
func (d *Dir) List(ctx context.Context) ([]string, error) {
	var names []string
	err := filepath.WalkDir(d.root, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(d.root, p)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error reading deck directory: %w", err)
	}
	sort.Strings(names)
	return names, nil
}
