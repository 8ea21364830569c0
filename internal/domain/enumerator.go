package domain

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"
	"strings"

	"codepub.dev/pkg/codepub/internal/adapter"
	m "codepub.dev/pkg/codepub/internal/model"
)

// Enumerator resolves the ordered list of paths to publish for one directory.
type Enumerator interface {
	FolderItems(ctx context.Context, dir m.Path, level m.Level) ([]m.Path, error)
}

type enumerator struct {
	fs         adapter.SourceFSAdapter
	resolver   Resolver
	classifier Classifier
}

// NewEnumerator wires an Enumerator from its collaborators.
func NewEnumerator(fs adapter.SourceFSAdapter, resolver Resolver, classifier Classifier) Enumerator {
	return &enumerator{
		fs:         fs,
		resolver:   resolver,
		classifier: classifier,
	}
}

// FolderItems returns the manifest entries verbatim when dir has a manifest.
// Otherwise it discovers the files whose kind is discoverable at level and the
// subdirectories, drops skipped names, and sorts everything by full path.
func (e *enumerator) FolderItems(ctx context.Context, dir m.Path, level m.Level) ([]m.Path, error) {
	manifest, err := e.resolver.Manifest(ctx, dir)
	if err != nil {
		return nil, err
	}

	if manifest.Active {
		slog.Debug("Using manifest", "dir", dir, "entries", len(manifest.Entries))
		return manifest.Entries, nil
	}

	return e.discover(ctx, dir, level)
}

func (e *enumerator) discover(ctx context.Context, dir m.Path, level m.Level) ([]m.Path, error) {
	skips, err := e.resolver.Skips(ctx, dir)
	if err != nil {
		return nil, err
	}

	entries, err := e.fs.ReadDir(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	kinds := e.classifier.Discoverable(level)
	items := make([]m.Path, 0, len(entries))

	for _, entry := range entries {
		name := entry.Name()
		if skips.Contains(name) {
			continue
		}

		path := e.fs.JoinPath(ctx, string(dir), name)

		isDir, err := e.isDir(ctx, path, entry)
		if err != nil {
			return nil, err
		}

		if isDir {
			// Hidden directories are not matched by a single-level glob.
			if !strings.HasPrefix(name, ".") {
				items = append(items, path)
			}

			continue
		}

		if slices.Contains(kinds, e.classifier.Classify(name, false)) {
			items = append(items, path)
		}
	}

	slices.Sort(items)

	return items, nil
}

// isDir follows symlinks so linked folders are treated like real ones.
func (e *enumerator) isDir(ctx context.Context, path m.Path, entry fs.DirEntry) (bool, error) {
	if entry.Type()&fs.ModeSymlink == 0 {
		return entry.IsDir(), nil
	}

	info, err := e.fs.FileInfo(ctx, path)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}

	return info.IsDir(), nil
}
