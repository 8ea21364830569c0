package controller

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "codepub.dev/pkg/codepub/internal/model"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

const tuiHeader = "codepub - assignment publisher"

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output io.Writer

	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start launches the progress program in publish mode. Listing mode renders
// statically and needs no program.
func (t *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if newStartConfig(options...).mode != ModePublish {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.program = tea.NewProgram(
		newPublishModel(),
		tea.WithOutput(t.output),
		tea.WithInput(nil),
		tea.WithContext(ctx),
	)
	t.done = make(chan struct{})

	go func(program *tea.Program, done chan struct{}) {
		defer close(done)

		if _, err := program.Run(); err != nil {
			slog.Debug("TUI program stopped", "error", err)
		}
	}(t.program, t.done)

	return nil
}

// Close stops the program if it is still running.
func (t *TUI) Close(_ context.Context) {
	program, done := t.running()
	if program == nil {
		return
	}

	program.Quit()
	<-done

	t.mu.Lock()
	t.program = nil
	t.done = nil
	t.mu.Unlock()
}

// Wait blocks until the program has rendered its final frame.
func (t *TUI) Wait(ctx context.Context) {
	_, done := t.running()
	if done == nil {
		return
	}

	select {
	case <-ctx.Done():
	case <-done:
	}
}

// DisplayProcessing updates the current item.
func (t *TUI) DisplayProcessing(_ context.Context, item m.Item) {
	t.send(processingMsg{item: item})
}

// DisplayPublished shows the artifacts and ends the program.
func (t *TUI) DisplayPublished(_ context.Context, result m.PublishResult) {
	t.send(publishedMsg{result: result})
}

// DisplayError shows err and ends the program.
func (t *TUI) DisplayError(_ context.Context, err error) {
	t.send(failedMsg{err: err})
}

// DisplayListing prints a styled listing.
func (t *TUI) DisplayListing(ctx context.Context, items []m.Item, format ListFormat) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	out, err := renderListing(items, format)
	if err != nil {
		return err
	}

	if format == FormatYAML {
		_, err = fmt.Fprint(t.output, out)
		return err
	}

	_, err = fmt.Fprintf(t.output, "%s\n\n%s", titleStyle.Render(tuiHeader), out)

	return err
}

func (t *TUI) running() (*tea.Program, chan struct{}) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.program, t.done
}

func (t *TUI) send(msg tea.Msg) {
	program, _ := t.running()
	if program != nil {
		program.Send(msg)
	}
}

type processingMsg struct {
	item m.Item
}

type publishedMsg struct {
	result m.PublishResult
}

type failedMsg struct {
	err error
}

// publishModel is the Bubble Tea model showing publish progress.
type publishModel struct {
	spinner   spinner.Model
	current   *m.Item
	processed int
	kinds     map[m.Kind]int
	result    *m.PublishResult
	err       error
	quitting  bool
}

func newPublishModel() publishModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = titleStyle

	return publishModel{
		spinner: s,
		kinds:   map[m.Kind]int{},
	}
}

func (pm publishModel) Init() tea.Cmd {
	return pm.spinner.Tick
}

func (pm publishModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case processingMsg:
		item := msg.item
		pm.current = &item
		pm.processed++
		pm.kinds[item.Kind]++

		return pm, nil

	case publishedMsg:
		result := msg.result
		pm.result = &result

		return pm, tea.Quit

	case failedMsg:
		pm.err = msg.err

		return pm, tea.Quit

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			pm.quitting = true
			return pm, tea.Quit
		}

		return pm, nil

	case spinner.TickMsg:
		var cmd tea.Cmd

		pm.spinner, cmd = pm.spinner.Update(msg)

		return pm, cmd
	}

	return pm, nil
}

func (pm publishModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(tuiHeader))
	b.WriteString("\n\n")

	switch {
	case pm.err != nil:
		fmt.Fprintf(&b, "%s %v\n", errorStyle.Render("✗ publish failed:"), pm.err)
	case pm.result != nil:
		fmt.Fprintf(&b, "%s %d item(s)\n", successStyle.Render("✓ published"), pm.result.Items)
		fmt.Fprintf(&b, "  TeX %s\n", pathStyle.Render(string(pm.result.TeX)))

		if pm.result.PDF != "" {
			fmt.Fprintf(&b, "  PDF %s\n", pathStyle.Render(string(pm.result.PDF)))
		}
	case pm.current != nil:
		fmt.Fprintf(&b, "%s %s %s\n", pm.spinner.View(), pathStyle.Render(string(pm.current.Path)),
			faintStyle.Render("("+pm.current.Kind.String()+")"))
	default:
		fmt.Fprintf(&b, "%s scanning\n", pm.spinner.View())
	}

	if pm.processed > 0 {
		b.WriteString(faintStyle.Render(pm.summary()))
		b.WriteString("\n")
	}

	return b.String()
}

func (pm publishModel) summary() string {
	parts := make([]string, 0, len(m.FileKinds)+1)

	for _, kind := range append(append([]m.Kind{}, m.FileKinds...), m.KindDirectory) {
		if n := pm.kinds[kind]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", kind, n))
		}
	}

	return fmt.Sprintf("  %d processed: %s", pm.processed, strings.Join(parts, ", "))
}
