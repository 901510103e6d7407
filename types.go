package docshell

import "time"

// Page is one pre-rendered documentation page loaded from the content
// directory. Body is trusted HTML produced by the content pipeline.
type Page struct {
	Route        string // "/", "/guide/", "/guide/intro/"
	Title        string
	Description  string
	Weight       int
	SourcePath   string // slash path relative to ContentDir, e.g. "guide/intro.html"
	Body         string
	LastModified time.Time
}

// BuildReport summarises a static export.
type BuildReport struct {
	OutputDir string
	Pages     int
	Files     []string // written files, relative to OutputDir
	Duration  time.Duration
}
