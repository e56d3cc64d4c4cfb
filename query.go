package greeenboii

import (
	"net/url"
	"strings"
)

// URLBuilder builds fully qualified search URLs for a fixed engine table.
type URLBuilder struct {
	engines map[EngineID]*Engine
	tokens  TokenGenerator
}

// NewURLBuilder creates a URLBuilder over engines. If tokens is nil,
// RandomTokens is used.
func NewURLBuilder(engines []*Engine, tokens TokenGenerator) *URLBuilder {
	if tokens == nil {
		tokens = RandomTokens{}
	}
	m := make(map[EngineID]*Engine, len(engines))
	for _, e := range engines {
		m[e.ID] = e
	}
	return &URLBuilder{engines: m, tokens: tokens}
}

// Build returns the search URL for query on the engine identified by id.
// Returns ECONFIG if the engine is not part of the table.
func (b *URLBuilder) Build(id EngineID, query string) (string, error) {
	engine, ok := b.engines[id]
	if !ok {
		return "", Errorf(ECONFIG, "unknown engine %q", id)
	}

	var sb strings.Builder
	sb.WriteString(engine.BaseURL)
	sb.WriteString(url.QueryEscape(query))
	if engine.Suffix != nil {
		sb.WriteString(engine.Suffix(query, b.tokens))
	}
	return sb.String(), nil
}

// ValidateQuery returns EINVALID if query is empty or only whitespace.
func ValidateQuery(query string) error {
	if strings.TrimSpace(query) == "" {
		return Errorf(EINVALID, "search query required")
	}
	return nil
}
