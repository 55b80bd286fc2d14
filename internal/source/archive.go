package source

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/bodgit/sevenzip"
)

// Archive serves deck files extracted from a ZIP or 7z archive. The whole
// archive is read when opened.
type Archive struct {
	location string
	files    map[string][]byte
}

func (a *Archive) Location() string { return a.location }

func (a *Archive) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cleaned, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	data, ok := a.files[cleaned]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, cleaned)
	}
	return data, nil
}

func (a *Archive) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(a.files))
	for name := range a.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// archiveEntry is the part of zip.File and sevenzip.File that extraction
// needs.
type archiveEntry struct {
	name  string
	isDir bool
	open  func() (io.ReadCloser, error)
}

func openZIP(p string) (*Archive, error) {
	r, err := zip.OpenReader(p)
	if err != nil {
		return nil, fmt.Errorf("failed to open zip: %w", err)
	}
	defer r.Close()

	entries := make([]archiveEntry, 0, len(r.File))
	for _, f := range r.File {
		entries = append(entries, archiveEntry{name: f.Name, isDir: f.FileInfo().IsDir(), open: f.Open})
	}
	return extract(p, entries)
}

func open7z(p string) (*Archive, error) {
	r, err := sevenzip.OpenReader(p)
	if err != nil {
		return nil, fmt.Errorf("failed to open 7z: %w", err)
	}
	defer r.Close()

	entries := make([]archiveEntry, 0, len(r.File))
	for _, f := range r.File {
		entries = append(entries, archiveEntry{name: f.Name, isDir: f.FileInfo().IsDir(), open: f.Open})
	}
	return extract(p, entries)
}

func extract(location string, entries []archiveEntry) (*Archive, error) {
	raw := make(map[string][]byte)
	for _, e := range entries {
		if e.isDir {
			continue
		}
		name, err := cleanName(e.name)
		if err != nil {
			continue
		}

		rc, err := e.open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s in archive: %w", e.name, err)
		}
		data, err := limitedRead(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", e.name, err)
		}
		raw[name] = data
	}

	root := archiveRoot(raw)
	files := make(map[string][]byte, len(raw))
	for name, data := range raw {
		if root != "" {
			if !strings.HasPrefix(name, root+"/") {
				continue
			}
			name = strings.TrimPrefix(name, root+"/")
		}
		files[name] = data
	}

	return &Archive{location: location, files: files}, nil
}

// archiveRoot returns the directory holding the shallowest manifest, so
// archives that wrap the deck in a top-level folder still resolve.
func archiveRoot(files map[string][]byte) string {
	root, depth := "", -1
	for name := range files {
		base := path.Base(name)
		if base != ManifestJSON && base != ManifestTOML && base != LegacyData {
			continue
		}
		dir := path.Dir(name)
		if dir == "." {
			return ""
		}
		d := strings.Count(dir, "/")
		if depth < 0 || d < depth || (d == depth && dir < root) {
			root, depth = dir, d
		}
	}
	return root
}
