package domain

import (
	"fmt"
	"regexp"
	"strings"

	m "codepub.dev/pkg/codepub/internal/model"
)

// Renderer formats fragments and the document frame. Every method is a pure
// function of its arguments.
type Renderer interface {
	Heading(level m.Level, title string) m.Fragment
	CodeBox(title, body string) m.Fragment
	OutputBox(title, body string) m.Fragment
	Figure(title, body string) m.Fragment
	FigureInput(title string, path m.Path) m.Fragment
	Preamble(doc m.Document, styles string) string
	End() string
}

// DocumentClass is the LaTeX class of generated documents.
const DocumentClass = "{report}"

// DocumentPackages lists the \usepackage arguments of generated documents.
var DocumentPackages = []string{
	"{fancyvrb}",
	"{color}",
	"[utf8]{inputenc}",
	"[breakable]{tcolorbox}",
	"[a4paper, portrait, margin=2cm]{geometry}",
	"{pgf}",
	"{float}",
}

type renderer struct {
	profile m.Profile
}

// NewRenderer returns the LaTeX renderer for profile's heading table.
func NewRenderer(profile m.Profile) Renderer {
	return &renderer{profile: profile.Clone()}
}

func (r *renderer) Heading(level m.Level, title string) m.Fragment {
	return m.Fragment(fmt.Sprintf("\\%s*{%s}\n", r.profile.Heading(level), EscapeTitle(title)))
}

func (r *renderer) CodeBox(title, body string) m.Fragment {
	return box(title, body)
}

func (r *renderer) OutputBox(title, body string) m.Fragment {
	return box(title, body)
}

func box(title, body string) m.Fragment {
	return m.Fragment(fmt.Sprintf(
		"\\begin{tcolorbox}[title={%s},width=\\textwidth,left*=10mm,breakable]\n%s\n\\end{tcolorbox}",
		EscapeTitle(title), body,
	))
}

func (r *renderer) Figure(title, body string) m.Fragment {
	return m.Fragment(fmt.Sprintf(
		"\\begin{figure}[H]\n\\centering\n%s\n\\caption{%s}\n\\end{figure}",
		body, EscapeTitle(title),
	))
}

func (r *renderer) FigureInput(title string, path m.Path) m.Fragment {
	return r.Figure(title, fmt.Sprintf("\\input{%s}", path))
}

func (r *renderer) Preamble(doc m.Document, styles string) string {
	var b strings.Builder

	b.WriteString("\\documentclass" + DocumentClass)

	for _, pkg := range DocumentPackages {
		b.WriteString("\n\\usepackage" + pkg)
	}

	b.WriteString(styles)
	fmt.Fprintf(&b, "\\title{%%\n%s \\\\\n\\large %s \\\\}\n\\author{%s}\n\\date{\\today}\n",
		doc.Title, doc.Subtitle, doc.Author)
	b.WriteString("\\begin{document}\n\\maketitle\n")

	return b.String()
}

func (r *renderer) End() string {
	return "\\end{document}"
}

var whitespace = regexp.MustCompile(`\s`)

// TeXFileName derives the output file name from the document title.
func TeXFileName(title string) string {
	name := whitespace.ReplaceAllString(title, "")
	if name == "" {
		name = "document"
	}

	return name + ".tex"
}
