package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/greeenboii/greeenboii"
)

var _ greeenboii.LinkExtractor = (*Extractor)(nil)

// Extractor extracts result links from search pages using the card and
// anchor selectors registered for each engine.
type Extractor struct {
	rules map[greeenboii.EngineID]rule

	// MaxLinks caps links per page. Defaults to greeenboii.MaxLinks.
	MaxLinks int
}

type rule struct {
	card   string
	anchor string
}

// NewExtractor creates an Extractor with the selectors of engines registered.
func NewExtractor(engines []*greeenboii.Engine) *Extractor {
	e := &Extractor{
		rules:    make(map[greeenboii.EngineID]rule, len(engines)),
		MaxLinks: greeenboii.MaxLinks,
	}
	for _, engine := range engines {
		e.Register(engine.ID, engine.CardSelector, engine.AnchorSelector)
	}
	return e
}

// Register adds selectors for an engine.
// If selectors are already registered for the engine, they are replaced.
func (e *Extractor) Register(id greeenboii.EngineID, cardSelector, anchorSelector string) {
	e.rules[id] = rule{card: cardSelector, anchor: anchorSelector}
}

// Engines returns the number of registered engines.
func (e *Extractor) Engines() int {
	return len(e.rules)
}

// ExtractLinks implements greeenboii.LinkExtractor.
//
// A transport failure produces an empty result carrying the outcome's error.
// Non-200 pages are parsed like any other; anti-bot and error pages simply
// have no matching cards.
func (e *Extractor) ExtractLinks(id greeenboii.EngineID, outcome *greeenboii.FetchOutcome) (*greeenboii.SourceResult, error) {
	r, ok := e.rules[id]
	if !ok {
		return nil, greeenboii.Errorf(greeenboii.ECONFIG, "no selectors registered for engine %q", id)
	}

	result := &greeenboii.SourceResult{Engine: id, Links: []string{}}
	if outcome == nil {
		return result, nil
	}
	result.Status = outcome.Status
	if outcome.Err != nil {
		result.Err = outcome.Err
		return result, nil
	}
	if outcome.Body == "" {
		return result, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(outcome.Body))
	if err != nil {
		return nil, greeenboii.Errorf(greeenboii.EPARSE, "failed to parse %s results: %v", id, err)
	}

	result.Title = documentTitle(doc)
	if links := cardLinks(doc, r.card, r.anchor, e.MaxLinks); links != nil {
		result.Links = links
	}
	return result, nil
}
