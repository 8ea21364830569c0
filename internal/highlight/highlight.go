// Package highlight renders source code as coloured fancyvrb Verbatim blocks.
package highlight

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "pygments"

// Highlighter turns file content into LaTeX markup.
type Highlighter interface {
	// Highlight picks a lexer from filename and returns a Verbatim environment.
	Highlight(filename, content string) (string, error)
	// StyleDefs returns the preamble definitions the generated markup relies on.
	StyleDefs() string
}

type chromaHighlighter struct {
	style *chroma.Style
}

// NewHighlighter returns a Highlighter using the named chroma style. Unknown
// names fall back to chroma's default style.
func NewHighlighter(style string) Highlighter {
	if strings.TrimSpace(style) == "" {
		style = DefaultStyle
	}

	return &chromaHighlighter{style: styles.Get(style)}
}

// Escape macros for the three characters fancyvrb reserves as command chars.
const styleDefs = "\n" +
	"\\def\\CPZbs{\\char`\\\\}\n" +
	"\\def\\CPZob{\\char`\\{}\n" +
	"\\def\\CPZcb{\\char`\\}}\n"

func (h *chromaHighlighter) StyleDefs() string {
	return styleDefs
}

func (h *chromaHighlighter) Highlight(filename, content string) (string, error) {
	lexer := lexers.Match(filename)
	if lexer == nil {
		lexer = lexers.Fallback
	}

	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, content)
	if err != nil {
		return "", fmt.Errorf("tokenise %s: %w", filename, err)
	}

	var b strings.Builder

	b.WriteString("\\begin{Verbatim}[commandchars=\\\\\\{\\}]\n")

	for token := iterator(); token != chroma.EOF; token = iterator() {
		h.writeToken(&b, token)
	}

	if !strings.HasSuffix(b.String(), "\n") {
		b.WriteString("\n")
	}

	b.WriteString("\\end{Verbatim}\n")

	return b.String(), nil
}

// writeToken emits one token. Commands may not span lines inside Verbatim, so
// multi-line tokens are wrapped line by line.
func (h *chromaHighlighter) writeToken(b *strings.Builder, token chroma.Token) {
	entry := h.style.Get(token.Type)

	lines := strings.Split(token.Value, "\n")
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}

		if line == "" {
			continue
		}

		b.WriteString(decorate(entry, Escape(line)))
	}
}

func decorate(entry chroma.StyleEntry, text string) string {
	if entry.Bold == chroma.Yes {
		text = "\\textbf{" + text + "}"
	}

	if entry.Italic == chroma.Yes {
		text = "\\textit{" + text + "}"
	}

	if entry.Colour.IsSet() {
		text = fmt.Sprintf("\\textcolor[rgb]{%s}{%s}", rgb(entry.Colour), text)
	}

	return text
}

func rgb(c chroma.Colour) string {
	return fmt.Sprintf("%.2f,%.2f,%.2f",
		float64(c.Red())/255,
		float64(c.Green())/255,
		float64(c.Blue())/255,
	)
}

var escaper = strings.NewReplacer(
	"\\", "\\CPZbs{}",
	"{", "\\CPZob{}",
	"}", "\\CPZcb{}",
)

// Escape protects the Verbatim command characters in text.
func Escape(text string) string {
	return escaper.Replace(text)
}
