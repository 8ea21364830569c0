package domain

import (
	"context"
	"fmt"
	"iter"
	"log/slog"

	"codepub.dev/pkg/codepub/internal/adapter"
	"codepub.dev/pkg/codepub/internal/highlight"
	m "codepub.dev/pkg/codepub/internal/model"
)

// folderTrailer closes the content of every folder.
const folderTrailer m.Fragment = "\n"

// Fragments is a lazy stream of rendered fragments. Ranging over it again
// re-reads the tree. The stream stops after the first error.
type Fragments = iter.Seq2[m.Fragment, error]

// ItemObserver is notified before each classified item is rendered.
type ItemObserver func(ctx context.Context, item m.Item)

// Dispatcher renders directories and single items into fragments.
type Dispatcher interface {
	// Folder yields the fragments of every item of dir followed by a newline.
	Folder(ctx context.Context, dir m.Path, level m.Level) Fragments
	// Item yields the fragments of a single path found at level.
	Item(ctx context.Context, path m.Path, level m.Level) Fragments
}

type dispatcher struct {
	fs          adapter.SourceFSAdapter
	enumerator  Enumerator
	classifier  Classifier
	renderer    Renderer
	highlighter highlight.Highlighter
	diagrams    adapter.DiagramAdapter
	observer    ItemObserver
}

// DispatcherOption customises a Dispatcher.
type DispatcherOption func(*dispatcher)

// WithItemObserver registers a callback run for every classified item.
func WithItemObserver(observer ItemObserver) DispatcherOption {
	return func(d *dispatcher) {
		d.observer = observer
	}
}

// NewDispatcher wires a Dispatcher from its collaborators.
func NewDispatcher(
	fs adapter.SourceFSAdapter,
	enumerator Enumerator,
	classifier Classifier,
	renderer Renderer,
	highlighter highlight.Highlighter,
	diagrams adapter.DiagramAdapter,
	options ...DispatcherOption,
) Dispatcher {
	d := &dispatcher{
		fs:          fs,
		enumerator:  enumerator,
		classifier:  classifier,
		renderer:    renderer,
		highlighter: highlighter,
		diagrams:    diagrams,
	}

	for _, option := range options {
		option(d)
	}

	return d
}

func (d *dispatcher) Folder(ctx context.Context, dir m.Path, level m.Level) Fragments {
	return func(yield func(m.Fragment, error) bool) {
		items, err := d.enumerator.FolderItems(ctx, dir, level)
		if err != nil {
			yield("", err)
			return
		}

		for _, path := range items {
			for fragment, err := range d.Item(ctx, path, level) {
				if !yield(fragment, err) || err != nil {
					return
				}
			}
		}

		yield(folderTrailer, nil)
	}
}

func (d *dispatcher) Item(ctx context.Context, path m.Path, level m.Level) Fragments {
	return func(yield func(m.Fragment, error) bool) {
		if err := ctx.Err(); err != nil {
			yield("", err)
			return
		}

		item, err := d.classify(ctx, path, level)
		if err != nil {
			yield("", err)
			return
		}

		slog.Debug("Processing item", "path", item.Path, "kind", item.Kind, "level", item.Level)

		if d.observer != nil {
			d.observer(ctx, item)
		}

		if item.Kind == m.KindDirectory {
			d.subfolder(ctx, path, level+1, yield)
			return
		}

		fragment, err := d.render(ctx, item)
		yield(fragment, err)
	}
}

// subfolder emits the heading of dir and then its content one level deeper.
func (d *dispatcher) subfolder(ctx context.Context, dir m.Path, level m.Level, yield func(m.Fragment, error) bool) {
	if !yield(d.renderer.Heading(level, StripNumber(string(dir))), nil) {
		return
	}

	for fragment, err := range d.Folder(ctx, dir, level) {
		if !yield(fragment, err) || err != nil {
			return
		}
	}
}

func (d *dispatcher) classify(ctx context.Context, path m.Path, level m.Level) (m.Item, error) {
	info, err := d.fs.FileInfo(ctx, path)
	if err != nil {
		return m.Item{}, fmt.Errorf("stat %s: %w", path, err)
	}

	return m.Item{
		Path:  path,
		Kind:  d.classifier.Classify(string(path), info.IsDir()),
		Level: level,
	}, nil
}

func (d *dispatcher) render(ctx context.Context, item m.Item) (m.Fragment, error) {
	switch item.Kind {
	case m.KindImport:
		return d.importDocument(ctx, item.Path)
	case m.KindCode:
		return d.code(ctx, item.Path)
	case m.KindOutput:
		return d.output(ctx, item.Path)
	case m.KindDiagram:
		return d.diagram(ctx, item.Path)
	case m.KindFigure:
		return d.figure(ctx, item.Path)
	case m.KindDirectory, m.KindIgnored:
	}

	return "", nil
}

// read returns the file content with a leading newline, the way every
// fragment body starts on its own line.
func (d *dispatcher) read(ctx context.Context, path m.Path) (string, error) {
	content, err := d.fs.ReadFile(ctx, path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	return "\n" + string(content), nil
}

func (d *dispatcher) importDocument(ctx context.Context, path m.Path) (m.Fragment, error) {
	content, err := d.read(ctx, path)
	if err != nil {
		return "", err
	}

	return m.Fragment(content), nil
}

func (d *dispatcher) code(ctx context.Context, path m.Path) (m.Fragment, error) {
	body, err := d.highlighted(ctx, path)
	if err != nil {
		return "", err
	}

	return d.renderer.CodeBox(StripNumber(string(path)), body), nil
}

func (d *dispatcher) output(ctx context.Context, path m.Path) (m.Fragment, error) {
	body, err := d.highlighted(ctx, path)
	if err != nil {
		return "", err
	}

	return d.renderer.OutputBox(StripNumberAndExtension(string(path)), body), nil
}

func (d *dispatcher) highlighted(ctx context.Context, path m.Path) (string, error) {
	content, err := d.read(ctx, path)
	if err != nil {
		return "", err
	}

	body, err := d.highlighter.Highlight(string(path), content)
	if err != nil {
		return "", fmt.Errorf("highlight %s: %w", path, err)
	}

	return body, nil
}

func (d *dispatcher) diagram(ctx context.Context, path m.Path) (m.Fragment, error) {
	content, err := d.read(ctx, path)
	if err != nil {
		return "", err
	}

	body, err := d.diagrams.Render(ctx, content)
	if err != nil {
		return "", fmt.Errorf("diagram %s: %w", path, err)
	}

	return d.renderer.Figure(StripNumberAndExtension(string(path)), body), nil
}

func (d *dispatcher) figure(ctx context.Context, path m.Path) (m.Fragment, error) {
	abs, err := d.fs.AbsPath(ctx, path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}

	return d.renderer.FigureInput(StripNumberAndExtension(string(path)), abs), nil
}
