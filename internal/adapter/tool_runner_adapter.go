package adapter

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultToolTimeout bounds a single external tool invocation.
const DefaultToolTimeout = 5 * time.Minute

// ToolCommand describes one external process invocation.
type ToolCommand struct {
	Name  string
	Args  []string
	Dir   string
	Stdin string
}

func (c ToolCommand) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// ToolError reports a failed external process together with its diagnostics.
type ToolError struct {
	Command ToolCommand
	Stderr  string
	Err     error
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Command.Name, e.Err)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}

	return msg
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// ToolRunnerAdapter abstracts running the external toolchain (diagram
// renderer, LaTeX compiler).
type ToolRunnerAdapter interface {
	// Run executes the command and returns its standard output. A non-zero
	// exit status is reported as a *ToolError.
	Run(ctx context.Context, command ToolCommand) (stdout string, err error)
}

// LocalToolRunnerAdapter provides a concrete implementation using os/exec.
type LocalToolRunnerAdapter struct {
	timeout time.Duration
}

// NewLocalToolRunnerAdapter constructs a LocalToolRunnerAdapter. A
// non-positive timeout falls back to DefaultToolTimeout.
func NewLocalToolRunnerAdapter(timeout time.Duration) *LocalToolRunnerAdapter {
	if timeout <= 0 {
		timeout = DefaultToolTimeout
	}

	return &LocalToolRunnerAdapter{
		timeout: timeout,
	}
}

// Run executes command, feeding Stdin and capturing stdout and stderr.
func (a *LocalToolRunnerAdapter) Run(ctx context.Context, command ToolCommand) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	// #nosec G204 - tool names come from the user's own configuration
	cmd := exec.CommandContext(ctx, command.Name, command.Args...)
	cmd.Dir = command.Dir

	if command.Stdin != "" {
		cmd.Stdin = strings.NewReader(command.Stdin)
	}

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return stdout.String(), &ToolError{
			Command: command,
			Stderr:  stderr.String(),
			Err:     err,
		}
	}

	return stdout.String(), nil
}
