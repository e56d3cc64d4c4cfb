package greeenboii

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// Relative links are resolved against baseURL when it is non-empty.
	Convert(html, baseURL string) (string, error)
}
