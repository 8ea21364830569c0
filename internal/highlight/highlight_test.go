package highlight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{`a\b`, `a\CPZbs{}b`},
		{"{x}", `\CPZob{}x\CPZcb{}`},
		{`\{}`, `\CPZbs{}\CPZob{}\CPZcb{}`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Escape(tt.in), "input %q", tt.in)
	}
}

func TestHighlight_WrapsInVerbatim(t *testing.T) {
	h := NewHighlighter("")

	out, err := h.Highlight("main.cpp", "int main() { return 0; }\n")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "\\begin{Verbatim}[commandchars=\\\\\\{\\}]\n"))
	assert.True(t, strings.HasSuffix(out, "\\end{Verbatim}\n"))
	assert.Contains(t, out, "main")
	assert.Contains(t, out, "\\CPZob{}")
	assert.Contains(t, out, "\\CPZcb{}")
	assert.NotContains(t, out, "{ return")
}

func TestHighlight_ColoursKeywords(t *testing.T) {
	h := NewHighlighter("pygments")

	out, err := h.Highlight("prog.py", "def f():\n    return 1\n")
	require.NoError(t, err)

	assert.Contains(t, out, "\\textcolor[rgb]{")
	assert.Contains(t, out, "def")
}

func TestHighlight_PlainTextFallback(t *testing.T) {
	h := NewHighlighter("no-such-style")

	out, err := h.Highlight("run.log", "line one\nline two\n")
	require.NoError(t, err)

	assert.Contains(t, out, "line one\nline two\n")
}

func TestHighlight_NoCommandSpansLines(t *testing.T) {
	h := NewHighlighter("")

	out, err := h.Highlight("a.cpp", "/* first\n   second */\nint x;\n")
	require.NoError(t, err)

	for _, line := range strings.Split(out, "\n") {
		assert.Equal(t, strings.Count(line, "{"), strings.Count(line, "}"), "unbalanced line %q", line)
	}
}

func TestHighlight_Deterministic(t *testing.T) {
	h := NewHighlighter("")
	src := "#include <vector>\nint main() {}\n"

	first, err := h.Highlight("a.cpp", src)
	require.NoError(t, err)

	second, err := h.Highlight("a.cpp", src)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestStyleDefs(t *testing.T) {
	defs := NewHighlighter("").StyleDefs()

	assert.Contains(t, defs, "\\def\\CPZbs{\\char`\\\\}")
	assert.Contains(t, defs, "\\def\\CPZob{\\char`\\{}")
	assert.Contains(t, defs, "\\def\\CPZcb{\\char`\\}}")
}
