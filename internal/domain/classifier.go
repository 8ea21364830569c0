package domain

import (
	"path/filepath"
	"slices"

	m "codepub.dev/pkg/codepub/internal/model"
)

// Classifier maps file names to content kinds using the static extension
// tables of a profile.
type Classifier interface {
	// Classify returns the kind for name. Extension tables are consulted in
	// m.FileKinds order and the first match wins; otherwise directories are
	// m.KindDirectory and everything else is m.KindIgnored.
	Classify(name string, isDir bool) m.Kind
	// Discoverable reports the kinds automatic discovery picks up at level.
	Discoverable(level m.Level) []m.Kind
}

type classifier struct {
	extensions map[m.Kind][]string
}

// NewClassifier builds a Classifier over a private copy of the profile tables.
func NewClassifier(profile m.Profile) Classifier {
	return &classifier{extensions: profile.Clone().Extensions}
}

func (c *classifier) Classify(name string, isDir bool) m.Kind {
	ext := filepath.Ext(filepath.Base(name))

	if ext != "" {
		for _, kind := range m.FileKinds {
			if slices.Contains(c.extensions[kind], ext) {
				return kind
			}
		}
	}

	if isDir {
		return m.KindDirectory
	}

	return m.KindIgnored
}

// Discoverable returns import and diagram kinds everywhere, and adds code and
// output below the document root. Figures are only published via a manifest.
func (c *classifier) Discoverable(level m.Level) []m.Kind {
	kinds := []m.Kind{m.KindImport, m.KindDiagram}
	if level.Nested() {
		kinds = append(kinds, m.KindCode, m.KindOutput)
	}

	return kinds
}
