package model

import "slices"

// Default marker file names.
const (
	DefaultSkipFile     = "skip.txt"
	DefaultManifestFile = "publish.txt"
	DefaultOutputDir    = "publish"
)

// Profile holds the static classification tables used during a run. It is
// built once at startup and handed to the domain by value; nothing mutates it
// afterwards.
type Profile struct {
	Extensions   map[Kind][]string
	Skip         []string
	SkipFile     string
	ManifestFile string
	Headings     []string
}

// DefaultProfile returns the built-in extension tables, skip list and heading ranks.
func DefaultProfile() Profile {
	return Profile{
		Extensions: map[Kind][]string{
			KindImport:  {".tex", ".latex"},
			KindCode:    {".h", ".hpp", ".cpp", ".py"},
			KindOutput:  {".txt", ".log"},
			KindDiagram: {".puml", ".plantuml"},
			KindFigure:  {".pgf"},
		},
		Skip: []string{
			".vs",
			"out",
			"__pycache__",
			DefaultOutputDir,
			"CMakeLists.txt",
			DefaultSkipFile,
			DefaultManifestFile,
		},
		SkipFile:     DefaultSkipFile,
		ManifestFile: DefaultManifestFile,
		Headings: []string{
			"chapter",
			"section",
			"subsection",
			"subsubsection",
			"paragraph",
			"subparagraph",
		},
	}
}

// Clone returns a deep copy so callers can keep the profile immutable.
func (p Profile) Clone() Profile {
	clone := p
	clone.Extensions = make(map[Kind][]string, len(p.Extensions))

	for kind, exts := range p.Extensions {
		clone.Extensions[kind] = slices.Clone(exts)
	}

	clone.Skip = slices.Clone(p.Skip)
	clone.Headings = slices.Clone(p.Headings)

	return clone
}

// Heading returns the sectioning command for level. Levels outside the table
// fall back to its last (deepest) entry.
func (p Profile) Heading(level Level) string {
	if len(p.Headings) == 0 {
		return ""
	}

	if level < 0 || int(level) >= len(p.Headings) {
		return p.Headings[len(p.Headings)-1]
	}

	return p.Headings[level]
}
