package domain

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"codepub.dev/pkg/codepub/internal/adapter"
	m "codepub.dev/pkg/codepub/internal/model"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func mkdir(t *testing.T, path string) {
	t.Helper()

	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
}

func paths(root string, names ...string) []m.Path {
	out := make([]m.Path, 0, len(names))
	for _, name := range names {
		out = append(out, m.Path(filepath.Join(root, name)))
	}

	return out
}

// fakeHighlighter tags content instead of colouring it.
type fakeHighlighter struct{}

func (fakeHighlighter) Highlight(filename, content string) (string, error) {
	return "<hl " + filepath.Base(filename) + ">" + content + "</hl>", nil
}

func (fakeHighlighter) StyleDefs() string {
	return "\n%styles\n"
}

// fakeDiagrams records rendered sources and returns a fixed body or error.
type fakeDiagrams struct {
	sources []string
	body    string
	err     error
}

func (f *fakeDiagrams) Render(_ context.Context, source string) (string, error) {
	f.sources = append(f.sources, source)
	if f.err != nil {
		return "", f.err
	}

	return f.body, nil
}

// fakeCompiler pretends to produce a PDF next to the TeX file.
type fakeCompiler struct {
	calls []string
	err   error
}

func (f *fakeCompiler) Compile(_ context.Context, dir m.Path, texFile string) (m.Path, error) {
	f.calls = append(f.calls, filepath.Join(string(dir), texFile))
	if f.err != nil {
		return "", f.err
	}

	return m.Path(filepath.Join(string(dir), "out.pdf")), nil
}

func newTestEnumerator(profile m.Profile) Enumerator {
	fs := adapter.NewLocalSourceFSAdapter()
	classifier := NewClassifier(profile)

	return NewEnumerator(fs, NewResolver(fs, profile), classifier)
}

func newTestDispatcher(diagrams adapter.DiagramAdapter, options ...DispatcherOption) Dispatcher {
	profile := m.DefaultProfile()
	fs := adapter.NewLocalSourceFSAdapter()
	classifier := NewClassifier(profile)
	enumerator := NewEnumerator(fs, NewResolver(fs, profile), classifier)

	return NewDispatcher(fs, enumerator, classifier, NewRenderer(profile), fakeHighlighter{}, diagrams, options...)
}

func collect(t *testing.T, fragments Fragments) ([]m.Fragment, error) {
	t.Helper()

	var out []m.Fragment

	for fragment, err := range fragments {
		if err != nil {
			return out, err
		}

		out = append(out, fragment)
	}

	return out, nil
}
