package domain

import (
	"path/filepath"
	"regexp"
	"strings"
)

// numberPrefix matches the optional "[123]" ordering hint at the start of a name.
var numberPrefix = regexp.MustCompile(`^\[[0-9]*\]`)

// StripNumber returns the base name of path without its "[n]" prefix.
func StripNumber(path string) string {
	name := filepath.Base(path)
	stripped := numberPrefix.ReplaceAllString(name, "")

	// A bare prefix keeps the name so a title is never empty.
	if stripped == "" {
		return name
	}

	return stripped
}

// StripNumberAndExtension returns StripNumber(path) without its last extension.
func StripNumberAndExtension(path string) string {
	name := StripNumber(path)

	ext := filepath.Ext(name)
	if ext == "" || ext == name {
		return name
	}

	return strings.TrimSuffix(name, ext)
}

var titleEscaper = strings.NewReplacer(
	`_`, `\_`,
	`&`, `\&`,
	`%`, `\%`,
	`#`, `\#`,
	`$`, `\$`,
)

// EscapeTitle protects the LaTeX special characters common in file names.
func EscapeTitle(title string) string {
	return titleEscaper.Replace(title)
}
