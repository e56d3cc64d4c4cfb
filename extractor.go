package greeenboii

// ExtractResult holds the readable content of a clipped web page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// Optional metadata, empty when the page does not declare it.
	Author      string
	Sitename    string
	Description string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	// Returns EPARSE when no main content can be found.
	Extract(html string) (*ExtractResult, error)
}
