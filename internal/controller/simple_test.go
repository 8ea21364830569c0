package controller

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "codepub.dev/pkg/codepub/internal/model"
)

func newTestCommand() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	cmd := &cobra.Command{}
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	return cmd, out, errOut
}

func TestSimpleUI_DisplayProcessing(t *testing.T) {
	cmd, out, _ := newTestCommand()
	ui := NewSimpleUI(cmd)

	ui.DisplayProcessing(context.Background(), m.Item{Path: "a/[01]program.cpp", Kind: m.KindCode})

	assert.Equal(t, "processing \"a/[01]program.cpp\" (code)\n", out.String())
}

func TestSimpleUI_DisplayPublished(t *testing.T) {
	cmd, out, _ := newTestCommand()
	ui := NewSimpleUI(cmd)

	ui.DisplayPublished(context.Background(), m.PublishResult{
		TeX:   "root/publish/Test.tex",
		PDF:   "root/publish/Test.pdf",
		Items: 4,
	})

	assert.Contains(t, out.String(), "Published 4 item(s)")
	assert.Contains(t, out.String(), "TeX: root/publish/Test.tex")
	assert.Contains(t, out.String(), "PDF: root/publish/Test.pdf")
}

func TestSimpleUI_DisplayPublishedWithoutPDF(t *testing.T) {
	cmd, out, _ := newTestCommand()
	ui := NewSimpleUI(cmd)

	ui.DisplayPublished(context.Background(), m.PublishResult{TeX: "Test.tex"})

	assert.NotContains(t, out.String(), "PDF:")
}

func TestSimpleUI_DisplayError(t *testing.T) {
	cmd, out, errOut := newTestCommand()
	ui := NewSimpleUI(cmd)

	ui.DisplayError(context.Background(), errors.New("plantuml: exit status 1"))

	assert.Empty(t, out.String())
	assert.Equal(t, "publish error: plantuml: exit status 1\n", errOut.String())
}

func TestSimpleUI_DisplayListing(t *testing.T) {
	items := []m.Item{
		{Path: "root/Question 1", Kind: m.KindDirectory, Level: m.RootLevel},
		{Path: "root/Question 1/a.cpp", Kind: m.KindCode, Level: 0},
		{Path: "root/Question 1/notes.md", Kind: m.KindIgnored, Level: 0},
	}

	t.Run("table", func(t *testing.T) {
		cmd, out, _ := newTestCommand()
		ui := NewSimpleUI(cmd)

		require.NoError(t, ui.DisplayListing(context.Background(), items, FormatTable))

		assert.Contains(t, out.String(), "root/Question 1/a.cpp")
		assert.Contains(t, out.String(), "FILES 1")
		assert.Contains(t, out.String(), "FOLDERS 1")
		assert.Contains(t, out.String(), "IGNORED 1")
	})

	t.Run("yaml", func(t *testing.T) {
		cmd, out, _ := newTestCommand()
		ui := NewSimpleUI(cmd)

		require.NoError(t, ui.DisplayListing(context.Background(), items, FormatYAML))

		assert.Contains(t, out.String(), "items:")
		assert.Contains(t, out.String(), "path: root/Question 1/a.cpp")
		assert.Contains(t, out.String(), "kind: code")
		assert.Contains(t, out.String(), "level: -1")
	})
}

func TestSimpleUI_CancelledContext(t *testing.T) {
	cmd, out, _ := newTestCommand()
	ui := NewSimpleUI(cmd)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, ui.Start(ctx))
	ui.DisplayProcessing(ctx, m.Item{Path: "a.cpp"})
	assert.Error(t, ui.DisplayListing(ctx, nil, FormatTable))
	assert.Empty(t, out.String())
}

func TestParseListFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    ListFormat
		wantErr bool
	}{
		{"", FormatTable, false},
		{"table", FormatTable, false},
		{"yaml", FormatYAML, false},
		{"json", "", true},
	}

	for _, tt := range tests {
		got, err := ParseListFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}

		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestNewUI(t *testing.T) {
	cmd, _, _ := newTestCommand()

	assert.IsType(t, &SimpleUI{}, NewUI(cmd, false))
	assert.IsType(t, &TUI{}, NewUI(cmd, true))
	assert.False(t, IsTTY(&bytes.Buffer{}))
}
