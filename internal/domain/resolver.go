package domain

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"codepub.dev/pkg/codepub/internal/adapter"
	m "codepub.dev/pkg/codepub/internal/model"
)

// Resolver reads the per-directory marker files. Nothing is cached: every
// call re-reads the directory.
type Resolver interface {
	// Skips returns the global skip names plus the directory's skip file lines.
	Skips(ctx context.Context, dir m.Path) (m.SkipSet, error)
	// Manifest returns the directory's explicit publish list, if it has one.
	Manifest(ctx context.Context, dir m.Path) (m.Manifest, error)
}

type resolver struct {
	fs           adapter.SourceFSAdapter
	globalSkip   []string
	skipFile     string
	manifestFile string
}

// NewResolver constructs a Resolver for the marker file names in profile.
func NewResolver(fs adapter.SourceFSAdapter, profile m.Profile) Resolver {
	p := profile.Clone()

	return &resolver{
		fs:           fs,
		globalSkip:   p.Skip,
		skipFile:     p.SkipFile,
		manifestFile: p.ManifestFile,
	}
}

func (r *resolver) Skips(ctx context.Context, dir m.Path) (m.SkipSet, error) {
	skips := m.NewSkipSet(r.globalSkip...)

	lines, ok, err := r.readMarker(ctx, dir, r.skipFile)
	if err != nil || !ok {
		return skips, err
	}

	for _, line := range lines {
		skips.Add(line)
	}

	slog.Debug("Loaded skip file", "dir", dir, "entries", len(lines))

	return skips, nil
}

func (r *resolver) Manifest(ctx context.Context, dir m.Path) (m.Manifest, error) {
	lines, ok, err := r.readMarker(ctx, dir, r.manifestFile)
	if err != nil || !ok {
		return m.Manifest{}, err
	}

	manifest := m.Manifest{Active: true, Entries: []m.Path{}}

	for _, line := range lines {
		entry := r.fs.JoinPath(ctx, string(dir), line)

		exists, err := r.fs.Exists(ctx, entry)
		if err != nil {
			return m.Manifest{}, fmt.Errorf("check manifest entry %s: %w", entry, err)
		}

		if !exists {
			slog.Debug("Dropping missing manifest entry", "dir", dir, "entry", line)
			continue
		}

		manifest.Entries = append(manifest.Entries, entry)
	}

	return manifest, nil
}

// readMarker returns the trimmed, non-empty lines of dir/name. ok is false
// when the marker does not exist.
func (r *resolver) readMarker(ctx context.Context, dir m.Path, name string) ([]string, bool, error) {
	if name == "" {
		return nil, false, nil
	}

	path := r.fs.JoinPath(ctx, string(dir), name)

	exists, err := r.fs.Exists(ctx, path)
	if err != nil {
		return nil, false, fmt.Errorf("check %s: %w", path, err)
	}

	if !exists {
		return nil, false, nil
	}

	raw, err := r.fs.ReadLines(ctx, path)
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", path, err)
	}

	lines := make([]string, 0, len(raw))

	for _, line := range raw {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	return lines, true, nil
}
