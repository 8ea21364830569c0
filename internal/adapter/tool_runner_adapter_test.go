package adapter

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// These tests run small POSIX tools instead of the real diagram renderer and
// LaTeX compiler so they work on any unix machine.

func TestLocalToolRunnerAdapter_Run_Stdin(t *testing.T) {
	adapter := NewLocalToolRunnerAdapter(10 * time.Second)

	out, err := adapter.Run(context.Background(), ToolCommand{
		Name:  "cat",
		Stdin: "@startuml\nA -> B\n@enduml\n",
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if out != "@startuml\nA -> B\n@enduml\n" {
		t.Fatalf("Run() = %q, want stdin echoed back", out)
	}
}

func TestLocalToolRunnerAdapter_Run_Dir(t *testing.T) {
	adapter := NewLocalToolRunnerAdapter(10 * time.Second)
	dir := t.TempDir()

	out, err := adapter.Run(context.Background(), ToolCommand{Name: "pwd", Dir: dir})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !strings.HasSuffix(strings.TrimSpace(out), strings.TrimPrefix(dir, "/private")) {
		t.Fatalf("Run() = %q, want working directory %q", out, dir)
	}
}

func TestLocalToolRunnerAdapter_Run_Failure(t *testing.T) {
	adapter := NewLocalToolRunnerAdapter(10 * time.Second)

	_, err := adapter.Run(context.Background(), ToolCommand{
		Name: "sh",
		Args: []string{"-c", "echo broken diagram >&2; exit 3"},
	})
	if err == nil {
		t.Fatalf("Run() expected error for non-zero exit")
	}

	var toolErr *ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("Run() error = %T, want *ToolError", err)
	}

	if !strings.Contains(toolErr.Stderr, "broken diagram") {
		t.Fatalf("ToolError.Stderr = %q, want captured stderr", toolErr.Stderr)
	}

	if !strings.Contains(err.Error(), "sh") || !strings.Contains(err.Error(), "broken diagram") {
		t.Fatalf("Error() = %q, want tool name and stderr", err.Error())
	}
}

func TestLocalToolRunnerAdapter_Run_MissingTool(t *testing.T) {
	adapter := NewLocalToolRunnerAdapter(0)

	_, err := adapter.Run(context.Background(), ToolCommand{Name: "codepub-no-such-tool"})
	if err == nil {
		t.Fatalf("Run() expected error for missing executable")
	}
}

func TestToolCommand_String(t *testing.T) {
	cmd := ToolCommand{Name: "plantuml", Args: []string{"--pipe", "-tlatex:nopreamble"}}
	if got := cmd.String(); got != "plantuml --pipe -tlatex:nopreamble" {
		t.Fatalf("String() = %q", got)
	}
}
