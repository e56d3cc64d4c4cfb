package greeenboii

import "strings"

// EngineID identifies a search engine.
type EngineID string

// Supported search engines.
const (
	EngineGoogle     EngineID = "Google"
	EngineBing       EngineID = "Bing"
	EngineDuckDuckGo EngineID = "DuckDuckGo"
)

// Engine describes how to query one search engine and where its results live
// in the returned HTML.
type Engine struct {
	ID EngineID

	// BaseURL is the search endpoint up to and including the query parameter
	// name, e.g. "https://www.bing.com/search?q=".
	BaseURL string

	// Suffix returns the trailing query parameters appended after the encoded
	// query. It may draw request-scoped tokens from tokens.
	Suffix func(query string, tokens TokenGenerator) string

	// CardSelector matches the repeated result elements.
	CardSelector string

	// AnchorSelector matches the link inside a single result card.
	AnchorSelector string
}

// Validate returns an error if the engine contains invalid fields.
func (e *Engine) Validate() error {
	if e.ID == "" {
		return Errorf(ECONFIG, "engine id required")
	}
	if e.BaseURL == "" {
		return Errorf(ECONFIG, "engine %s: base URL required", e.ID)
	}
	if e.CardSelector == "" || e.AnchorSelector == "" {
		return Errorf(ECONFIG, "engine %s: card and anchor selectors required", e.ID)
	}
	return nil
}

// DefaultEngines returns the built-in engine table in declaration order.
// The order is the order of entries in every SearchReport.
func DefaultEngines() []*Engine {
	return []*Engine{
		{
			ID:      EngineGoogle,
			BaseURL: "https://www.google.com/search?client=opera-gx&q=",
			Suffix: func(string, TokenGenerator) string {
				return "&sourceid=opera&ie=UTF-8&oe=UTF-8"
			},
			CardSelector:   "div.g",
			AnchorSelector: ".yuRUbf > a",
		},
		{
			ID:      EngineBing,
			BaseURL: "https://www.bing.com/search?q=",
			Suffix: func(_ string, tokens TokenGenerator) string {
				// cvid mimics a browser session id and must be fresh per request.
				return "&sp=-1&pq=test&sc=6-4&qs=n&sk=&cvid=" + tokens.NextToken()
			},
			CardSelector:   "#b_results li.b_algo",
			AnchorSelector: "h2 a",
		},
		{
			ID:      EngineDuckDuckGo,
			BaseURL: "https://duckduckgo.com/?q=",
			Suffix: func(string, TokenGenerator) string {
				return "&t=h_&ia=web"
			},
			CardSelector:   ".result__body",
			AnchorSelector: ".result__title a",
		},
	}
}

// SelectEngines returns the engines whose IDs appear in ids, preserving the
// declaration order of engines. IDs are matched case-insensitively.
// An empty ids returns engines unchanged. Unknown IDs return ECONFIG.
func SelectEngines(engines []*Engine, ids []string) ([]*Engine, error) {
	if len(ids) == 0 {
		return engines, nil
	}

	known := make(map[string]bool, len(engines))
	for _, e := range engines {
		known[strings.ToLower(string(e.ID))] = true
	}

	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		key := strings.ToLower(id)
		if !known[key] {
			return nil, Errorf(ECONFIG, "unknown engine %q", id)
		}
		wanted[key] = true
	}

	var selected []*Engine
	for _, e := range engines {
		if wanted[strings.ToLower(string(e.ID))] {
			selected = append(selected, e)
		}
	}
	return selected, nil
}
