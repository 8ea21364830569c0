package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	m "codepub.dev/pkg/codepub/internal/model"
)

// DefaultCompilerCommand compiles a .tex file into a PDF.
var DefaultCompilerCommand = []string{"lualatex", "-interaction=nonstopmode"}

// CompilerAdapter converts an assembled LaTeX file into the final artifact.
type CompilerAdapter interface {
	// Compile builds texFile inside dir and returns the path of the produced PDF.
	Compile(ctx context.Context, dir m.Path, texFile string) (m.Path, error)
}

// ToolCompilerAdapter compiles documents with an external LaTeX engine.
type ToolCompilerAdapter struct {
	runner  ToolRunnerAdapter
	command []string
}

// NewToolCompilerAdapter builds a compiler adapter running command. An empty
// command falls back to DefaultCompilerCommand.
func NewToolCompilerAdapter(runner ToolRunnerAdapter, command []string) *ToolCompilerAdapter {
	if len(command) == 0 {
		command = DefaultCompilerCommand
	}

	return &ToolCompilerAdapter{
		runner:  runner,
		command: append([]string(nil), command...),
	}
}

// Compile runs the engine with dir as working directory.
func (a *ToolCompilerAdapter) Compile(ctx context.Context, dir m.Path, texFile string) (m.Path, error) {
	args := append(append([]string(nil), a.command[1:]...), texFile)
	cmd := ToolCommand{
		Name: a.command[0],
		Args: args,
		Dir:  string(dir),
	}

	slog.Debug("Compiling document", "command", cmd.String(), "dir", dir)

	if _, err := a.runner.Run(ctx, cmd); err != nil {
		slog.Error("Compiler failed", "command", cmd.String(), "error", err)
		return "", fmt.Errorf("compile %s: %w", texFile, err)
	}

	pdf := strings.TrimSuffix(texFile, filepath.Ext(texFile)) + ".pdf"

	return m.Path(filepath.Join(string(dir), pdf)), nil
}
