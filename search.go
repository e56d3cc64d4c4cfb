package greeenboii

import (
	"context"
	"fmt"
	"time"
)

// MaxLinks is the maximum number of links kept per engine.
const MaxLinks = 8

// SourceResult holds the links extracted for one engine.
type SourceResult struct {
	Engine EngineID

	// Links holds absolute URLs in document order. It never exceeds
	// MaxLinks entries and every entry starts with "http".
	Links []string

	// Diagnostics. Err is set when the pipeline failed and Links is empty.
	Title    string // <title> of the results page
	Status   int
	Err      error
	Duration time.Duration
}

// Failed reports whether the pipeline for this engine failed.
func (r *SourceResult) Failed() bool {
	return r.Err != nil
}

// FailureReason returns a short human readable explanation for a result
// without links, or an empty string if the result has links.
func (r *SourceResult) FailureReason() string {
	switch {
	case len(r.Links) > 0:
		return ""
	case r.Err != nil:
		return ErrorMessage(r.Err)
	case r.Status != 0 && r.Status != 200:
		return fmt.Sprintf("HTTP %d", r.Status)
	default:
		return "no matching results"
	}
}

// SearchReport holds one SourceResult per engine in declaration order,
// regardless of the order in which the engines completed.
type SearchReport struct {
	Query    string
	Results  []*SourceResult
	Duration time.Duration
}

// TotalLinks returns the number of links across all engines.
func (r *SearchReport) TotalLinks() int {
	n := 0
	for _, res := range r.Results {
		n += len(res.Links)
	}
	return n
}

// Failed returns the engines whose pipeline failed.
func (r *SearchReport) Failed() []EngineID {
	var ids []EngineID
	for _, res := range r.Results {
		if res.Failed() {
			ids = append(ids, res.Engine)
		}
	}
	return ids
}

// SourceStatus is the state of one engine pipeline.
// Transitions only move forward: Pending, Fetching, Extracting, Done.
type SourceStatus int

const (
	StatusPending SourceStatus = iota
	StatusFetching
	StatusExtracting
	StatusDone
)

// String returns a human readable status.
func (s SourceStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusFetching:
		return "fetching"
	case StatusExtracting:
		return "extracting"
	case StatusDone:
		return "done"
	default:
		return "unknown"
	}
}

// ProgressEvent reports a status transition of one engine pipeline.
// Events are advisory and have no effect on the final report.
type ProgressEvent struct {
	Engine EngineID
	Status SourceStatus
	Links  int
	Err    error
}

// ProgressFunc is called as engine pipelines change state.
// It may be called concurrently from several goroutines.
type ProgressFunc func(ProgressEvent)

// LinkExtractor extracts result links from a fetched search page.
type LinkExtractor interface {
	// ExtractLinks parses the outcome body with the markup rules of the
	// given engine. A transport failure or a page without matching results
	// yields an empty SourceResult, not an error. Returns ECONFIG for an
	// unknown engine and EPARSE if the document cannot be read at all.
	ExtractLinks(id EngineID, outcome *FetchOutcome) (*SourceResult, error)
}

// Searcher runs a query against every configured engine.
type Searcher interface {
	// Search returns a report with exactly one entry per engine.
	// Only a blank query returns an error (EINVALID); per-engine failures
	// are contained in the corresponding SourceResult.
	Search(ctx context.Context, query string, progress ProgressFunc) (*SearchReport, error)
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
