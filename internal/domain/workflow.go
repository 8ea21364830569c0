package domain

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"

	"codepub.dev/pkg/codepub/internal/adapter"
	"codepub.dev/pkg/codepub/internal/controller"
	"codepub.dev/pkg/codepub/internal/highlight"
	m "codepub.dev/pkg/codepub/internal/model"
)

// fragmentBuffer bounds how far traversal may run ahead of the writer.
const fragmentBuffer = 16

// PublishArgs contains the arguments for publishing an assignment.
type PublishArgs struct {
	Root      m.Path
	Document  m.Document
	OutputDir string
	PDF       bool
}

// ListArgs contains the arguments for listing what would be published.
type ListArgs struct {
	Root      m.Path
	OutputDir string
	Format    controller.ListFormat
}

// Workflow runs the commands of the CLI.
type Workflow interface {
	Publish(ctx context.Context, args PublishArgs) (m.PublishResult, error)
	List(ctx context.Context, args ListArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	controller.UI
	Classifier
	Renderer

	profile     m.Profile
	highlighter highlight.Highlighter
	diagrams    adapter.DiagramAdapter
	compiler    adapter.CompilerAdapter
}

// NewWorkflow creates a Workflow for profile with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	ui controller.UI,
	profile m.Profile,
	highlighter highlight.Highlighter,
	diagrams adapter.DiagramAdapter,
	compiler adapter.CompilerAdapter,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		UI:              ui,
		Classifier:      NewClassifier(profile),
		Renderer:        NewRenderer(profile),
		profile:         profile.Clone(),
		highlighter:     highlighter,
		diagrams:        diagrams,
		compiler:        compiler,
	}
}

// Publish writes the LaTeX document for args.Root and, when requested,
// compiles it to PDF.
func (w *workflow) Publish(ctx context.Context, args PublishArgs) (m.PublishResult, error) {
	if err := w.Start(ctx, controller.WithPublishMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return m.PublishResult{}, err
	}

	defer w.Close(ctx)

	result, err := w.publish(ctx, args)
	if err != nil {
		slog.Error("Publish failed", "root", args.Root, "error", err)
		w.DisplayError(ctx, err)
		w.Wait(ctx)

		return result, err
	}

	w.DisplayPublished(ctx, result)
	w.Wait(ctx)

	return result, nil
}

func (w *workflow) publish(ctx context.Context, args PublishArgs) (m.PublishResult, error) {
	if err := w.checkRoot(ctx, args.Root); err != nil {
		return m.PublishResult{}, err
	}

	result := m.PublishResult{OutputDir: w.JoinPath(ctx, string(args.Root), outputDirName(args.OutputDir))}
	if err := w.MkdirAll(ctx, result.OutputDir); err != nil {
		return result, fmt.Errorf("create output dir: %w", err)
	}

	texName := TeXFileName(args.Document.Title)
	result.TeX = w.JoinPath(ctx, string(result.OutputDir), texName)

	items, err := w.writeDocument(ctx, result.TeX, args)
	result.Items = items

	if err != nil {
		return result, err
	}

	slog.Info("Wrote document", "path", result.TeX, "items", items)

	if !args.PDF {
		return result, nil
	}

	pdf, err := w.compiler.Compile(ctx, result.OutputDir, texName)
	if err != nil {
		return result, err
	}

	result.PDF = pdf
	slog.Info("Compiled document", "path", pdf)

	return result, nil
}

func (w *workflow) checkRoot(ctx context.Context, root m.Path) error {
	info, err := w.FileInfo(ctx, root)
	if err != nil {
		return fmt.Errorf("root path error: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("root path error: %s is not a directory", root)
	}

	return nil
}

// writeDocument streams the folder fragments of the root into path. Traversal
// and writing run as a two-stage pipeline; traversal itself stays sequential.
func (w *workflow) writeDocument(ctx context.Context, path m.Path, args PublishArgs) (items int, err error) {
	file, err := w.CreateFile(ctx, path)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", path, err)
	}

	defer func() {
		err = errors.Join(err, file.Close())
	}()

	dispatcher := NewDispatcher(
		w.SourceFSAdapter,
		w.enumerator(args.OutputDir),
		w.Classifier,
		w.Renderer,
		w.highlighter,
		w.diagrams,
		WithItemObserver(func(ctx context.Context, item m.Item) {
			items++
			w.DisplayProcessing(ctx, item)
		}),
	)

	fragments := make(chan m.Fragment, fragmentBuffer)
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		defer close(fragments)

		for fragment, err := range dispatcher.Folder(groupCtx, args.Root, m.RootLevel) {
			if err != nil {
				return err
			}

			select {
			case <-groupCtx.Done():
				return groupCtx.Err()
			case fragments <- fragment:
			}
		}

		return nil
	})

	group.Go(func() error {
		return w.writeFragments(file, args.Document, fragments)
	})

	if err := group.Wait(); err != nil {
		return items, err
	}

	return items, nil
}

func (w *workflow) writeFragments(out io.Writer, doc m.Document, fragments <-chan m.Fragment) error {
	buf := bufio.NewWriter(out)

	if _, err := buf.WriteString(w.Preamble(doc, w.highlighter.StyleDefs())); err != nil {
		return fmt.Errorf("write preamble: %w", err)
	}

	for fragment := range fragments {
		if _, err := buf.WriteString(string(fragment)); err != nil {
			return fmt.Errorf("write fragment: %w", err)
		}
	}

	if _, err := buf.WriteString(w.End()); err != nil {
		return fmt.Errorf("write document end: %w", err)
	}

	return buf.Flush()
}

// List shows every item a publish run would process, without rendering.
func (w *workflow) List(ctx context.Context, args ListArgs) error {
	if err := w.Start(ctx, controller.WithListMode()); err != nil {
		return err
	}

	defer w.Close(ctx)

	if err := w.checkRoot(ctx, args.Root); err != nil {
		return err
	}

	items, err := w.plan(ctx, w.enumerator(args.OutputDir), args.Root, m.RootLevel)
	if err != nil {
		return fmt.Errorf("list %s: %w", args.Root, err)
	}

	if err := w.DisplayListing(ctx, items, args.Format); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	w.Wait(ctx)

	return nil
}

// plan mirrors the dispatcher's traversal order without reading file content.
func (w *workflow) plan(ctx context.Context, enumerator Enumerator, dir m.Path, level m.Level) ([]m.Item, error) {
	paths, err := enumerator.FolderItems(ctx, dir, level)
	if err != nil {
		return nil, err
	}

	var items []m.Item

	for _, path := range paths {
		info, err := w.FileInfo(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}

		item := m.Item{Path: path, Kind: w.Classify(string(path), info.IsDir()), Level: level}
		items = append(items, item)

		if item.Kind != m.KindDirectory {
			continue
		}

		children, err := w.plan(ctx, enumerator, path, level+1)
		if err != nil {
			return nil, err
		}

		items = append(items, children...)
	}

	return items, nil
}

// enumerator builds an Enumerator whose skip list also hides the output
// directory, so a publish run never reads its own artifacts.
func (w *workflow) enumerator(outputDir string) Enumerator {
	profile := w.profile.Clone()

	if name := outputDirName(outputDir); !slices.Contains(profile.Skip, name) {
		profile.Skip = append(profile.Skip, name)
	}

	return NewEnumerator(w.SourceFSAdapter, NewResolver(w.SourceFSAdapter, profile), w.Classifier)
}

func outputDirName(outputDir string) string {
	if outputDir == "" {
		return m.DefaultOutputDir
	}

	return outputDir
}
