package mock

import (
	"context"

	"github.com/greeenboii/greeenboii"
)

var (
	_ greeenboii.LinkExtractor = (*LinkExtractor)(nil)
	_ greeenboii.Searcher      = (*Searcher)(nil)
	_ greeenboii.DomainLimiter = (*DomainLimiter)(nil)
)

// LinkExtractor is a mock implementation of greeenboii.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(id greeenboii.EngineID, outcome *greeenboii.FetchOutcome) (*greeenboii.SourceResult, error)
}

func (e *LinkExtractor) ExtractLinks(id greeenboii.EngineID, outcome *greeenboii.FetchOutcome) (*greeenboii.SourceResult, error) {
	return e.ExtractLinksFn(id, outcome)
}

// Searcher is a mock implementation of greeenboii.Searcher.
type Searcher struct {
	SearchFn func(ctx context.Context, query string, progress greeenboii.ProgressFunc) (*greeenboii.SearchReport, error)
}

func (s *Searcher) Search(ctx context.Context, query string, progress greeenboii.ProgressFunc) (*greeenboii.SearchReport, error) {
	return s.SearchFn(ctx, query, progress)
}

// DomainLimiter is a mock implementation of greeenboii.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
