package controller

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	m "codepub.dev/pkg/codepub/internal/model"
)

// SimpleUI implements UI using cobra Command's output streams.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	return ctx.Err()
}

// Close finalizes the UI.
func (s *SimpleUI) Close(_ context.Context) {}

// Wait is a no-op: SimpleUI prints and continues.
func (s *SimpleUI) Wait(_ context.Context) {}

// DisplayProcessing prints the item about to be rendered.
func (s *SimpleUI) DisplayProcessing(ctx context.Context, item m.Item) {
	if ctx.Err() != nil {
		return
	}

	s.printf("processing %q (%s)\n", item.Path, item.Kind)
}

// DisplayPublished prints where the artifacts were written.
func (s *SimpleUI) DisplayPublished(ctx context.Context, result m.PublishResult) {
	if ctx.Err() != nil {
		return
	}

	s.printf("Published %d item(s)\n", result.Items)
	s.printf("TeX: %s\n", result.TeX)

	if result.PDF != "" {
		s.printf("PDF: %s\n", result.PDF)
	}
}

// DisplayError prints a failure to the error stream.
func (s *SimpleUI) DisplayError(_ context.Context, err error) {
	_, _ = fmt.Fprintf(s.cmd.ErrOrStderr(), "publish error: %v\n", err)
}

// DisplayListing prints the planned items as a table or YAML document.
func (s *SimpleUI) DisplayListing(ctx context.Context, items []m.Item, format ListFormat) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	out, err := renderListing(items, format)
	if err != nil {
		return err
	}

	if format == FormatYAML {
		s.printf("%s", out)
		return nil
	}

	s.printf("\n%s", out)

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
