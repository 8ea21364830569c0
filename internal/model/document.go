package model

// Document describes the title page of the generated LaTeX file.
type Document struct {
	Title    string
	Subtitle string
	Author   string
}

// PublishResult locates the artifacts written by a publish run.
type PublishResult struct {
	OutputDir Path
	TeX       Path
	PDF       Path
	Items     int
}
