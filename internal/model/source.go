// Package model defines the data structures shared by the publishing pipeline.
package model

// Path represents a file system path.
type Path string

// Level is the nesting depth of a directory inside the assignment tree.
// It selects the heading rank and which content kinds are discovered
// automatically.
type Level int

// RootLevel is the level of the assignment root itself. The root has no
// heading of its own; its subdirectories become level 0 (chapters).
const RootLevel Level = -1

// Nested reports whether the level sits below the document root.
func (l Level) Nested() bool {
	return l >= 0
}

// Fragment is a rendered piece of LaTeX.
type Fragment string

// Item is a path paired with the content kind it was classified as.
type Item struct {
	Path  Path  `yaml:"path"`
	Kind  Kind  `yaml:"kind"`
	Level Level `yaml:"level"`
}

// Manifest is the explicit, ordered list of entries read from a directory's
// manifest file. Active is true whenever the file exists, even if every entry
// was dropped.
type Manifest struct {
	Active  bool
	Entries []Path
}

// SkipSet is a case-sensitive set of file and directory names to leave out of
// automatic discovery.
type SkipSet map[string]struct{}

// NewSkipSet builds a SkipSet containing names.
func NewSkipSet(names ...string) SkipSet {
	set := make(SkipSet, len(names))
	set.Add(names...)

	return set
}

// Add unions names into the set.
func (s SkipSet) Add(names ...string) {
	for _, name := range names {
		s[name] = struct{}{}
	}
}

// Contains reports whether name is skipped.
func (s SkipSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}
