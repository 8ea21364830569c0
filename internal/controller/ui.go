// Package controller provides output adapters for displaying publish progress and listings.
package controller

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "codepub.dev/pkg/codepub/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModePublish StartMode = iota
	ModeList
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithPublishMode sets the UI to publish progress mode.
func WithPublishMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModePublish
	}
}

// WithListMode sets the UI to listing mode.
func WithListMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeList
	}
}

func newStartConfig(options ...StartOption) StartConfig {
	cfg := StartConfig{mode: ModePublish}
	for _, option := range options {
		option(&cfg)
	}

	return cfg
}

// ListFormat selects how a listing is printed.
type ListFormat string

// Supported listing formats.
const (
	FormatTable ListFormat = "table"
	FormatYAML  ListFormat = "yaml"
)

// ParseListFormat validates a user supplied format name.
func ParseListFormat(value string) (ListFormat, error) {
	switch ListFormat(value) {
	case "", FormatTable:
		return FormatTable, nil
	case FormatYAML:
		return FormatYAML, nil
	}

	return "", fmt.Errorf("unknown list format %q (want %q or %q)", value, FormatTable, FormatYAML)
}

// UI defines the interface for reporting what the publisher does.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // Wait for UI to finish
	DisplayProcessing(ctx context.Context, item m.Item)
	DisplayPublished(ctx context.Context, result m.PublishResult)
	DisplayError(ctx context.Context, err error)
	DisplayListing(ctx context.Context, items []m.Item, format ListFormat) error
}

// NewUI picks the TUI for terminals and the SimpleUI otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether w is an interactive terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
