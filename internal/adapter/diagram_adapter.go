package adapter

import (
	"context"
	"fmt"
	"log/slog"
)

// DefaultDiagramCommand renders PlantUML source from stdin to LaTeX on stdout.
var DefaultDiagramCommand = []string{"plantuml", "--pipe", "-tlatex:nopreamble"}

// DiagramAdapter turns raw diagram source into LaTeX markup.
type DiagramAdapter interface {
	Render(ctx context.Context, source string) (string, error)
}

// ToolDiagramAdapter renders diagrams by piping them through an external tool.
type ToolDiagramAdapter struct {
	runner  ToolRunnerAdapter
	command []string
}

// NewToolDiagramAdapter builds a diagram adapter running command. An empty
// command falls back to DefaultDiagramCommand.
func NewToolDiagramAdapter(runner ToolRunnerAdapter, command []string) *ToolDiagramAdapter {
	if len(command) == 0 {
		command = DefaultDiagramCommand
	}

	return &ToolDiagramAdapter{
		runner:  runner,
		command: append([]string(nil), command...),
	}
}

// Render pipes source through the diagram tool.
func (a *ToolDiagramAdapter) Render(ctx context.Context, source string) (string, error) {
	cmd := ToolCommand{
		Name:  a.command[0],
		Args:  a.command[1:],
		Stdin: source,
	}

	out, err := a.runner.Run(ctx, cmd)
	if err != nil {
		slog.Error("Diagram renderer failed", "command", cmd.String(), "error", err)
		return "", fmt.Errorf("render diagram: %w", err)
	}

	return out, nil
}
