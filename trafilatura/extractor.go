// Package trafilatura extracts the readable part of clipped web pages.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/greeenboii/greeenboii"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements greeenboii.Extractor at compile time.
var _ greeenboii.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback:  true,
			ExcludeComments: true,
		},
	}
}

// Extract processes raw HTML and returns the main content with the page
// metadata a gist needs.
func (e *Extractor) Extract(rawHTML string) (*greeenboii.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, greeenboii.Errorf(greeenboii.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, greeenboii.Errorf(greeenboii.EPARSE, "extract content: %v", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &greeenboii.ExtractResult{
		Title:       strings.TrimSpace(result.Metadata.Title),
		Author:      result.Metadata.Author,
		Sitename:    result.Metadata.Sitename,
		Description: result.Metadata.Description,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
