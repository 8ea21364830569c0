// Package adapter contains infrastructure adapters for the codepub CLI.
package adapter

import (
	"bufio"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	m "codepub.dev/pkg/codepub/internal/model"
)

// SourceFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when walking an assignment tree. It hides direct `os` access so the
// traversal logic can be tested against fixtures.
//
//nolint:interfacebloat // A richer interface keeps traversal logic decoupled from os/fs.
type SourceFSAdapter interface {
	// ReadDir lists the direct children of dir.
	ReadDir(ctx context.Context, dir m.Path) ([]fs.DirEntry, error)

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(ctx context.Context, path m.Path) ([]byte, error)

	// ReadLines returns the lines of a text file without line terminators.
	ReadLines(ctx context.Context, path m.Path) ([]string, error)

	// Exists reports whether path exists. A missing path is not an error.
	Exists(ctx context.Context, path m.Path) (bool, error)

	// FileInfo returns metadata for a path so the domain can distinguish
	// between files and directories.
	FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error)

	// AbsPath returns an absolute representation of path.
	AbsPath(ctx context.Context, path m.Path) (m.Path, error)

	// MkdirAll creates a directory and any missing parents.
	MkdirAll(ctx context.Context, path m.Path) error

	// CreateFile truncates or creates a file for writing.
	CreateFile(ctx context.Context, path m.Path) (io.WriteCloser, error)

	// JoinPath joins path elements into a single path.
	JoinPath(ctx context.Context, elem ...string) m.Path
}

// LocalSourceFSAdapter is the os-backed SourceFSAdapter.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// ReadDir lists the direct children of dir sorted by file name.
func (a *LocalSourceFSAdapter) ReadDir(ctx context.Context, dir m.Path) ([]fs.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.ReadDir(string(dir))
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(ctx context.Context, path m.Path) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// #nosec G304 - path comes from the assignment tree being published
	return os.ReadFile(string(path))
}

// ReadLines returns every line of the file at path.
func (a *LocalSourceFSAdapter) ReadLines(ctx context.Context, path m.Path) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// #nosec G304 - path is a marker file inside the assignment tree
	f, err := os.Open(string(path))
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = f.Close()
	}()

	var lines []string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

// Exists reports whether path exists on disk.
func (a *LocalSourceFSAdapter) Exists(ctx context.Context, path m.Path) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	_, err := os.Stat(string(path))
	if err == nil {
		return true, nil
	}

	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	return false, err
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.Stat(string(path))
}

// AbsPath returns the absolute form of path.
func (a *LocalSourceFSAdapter) AbsPath(ctx context.Context, path m.Path) (m.Path, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	abs, err := filepath.Abs(string(path))
	if err != nil {
		return "", err
	}

	return m.Path(abs), nil
}

// MkdirAll creates path and any missing parents.
func (a *LocalSourceFSAdapter) MkdirAll(ctx context.Context, path m.Path) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return os.MkdirAll(string(path), 0o750)
}

// CreateFile creates or truncates the file at path.
func (a *LocalSourceFSAdapter) CreateFile(ctx context.Context, path m.Path) (io.WriteCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// #nosec G304 - path is inside the publish directory
	return os.Create(string(path))
}

// JoinPath joins path elements into a single path.
func (a *LocalSourceFSAdapter) JoinPath(_ context.Context, elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
