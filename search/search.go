// Package search provides the concurrent multi-engine search orchestration.
// It runs one fetch-and-extract pipeline per engine and joins the results
// into a single report in engine declaration order.
package search

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/greeenboii/greeenboii"
	"golang.org/x/sync/errgroup"
)

var _ greeenboii.Searcher = (*Coordinator)(nil)

// Coordinator fans a query out to every engine concurrently.
type Coordinator struct {
	Engines   []*greeenboii.Engine
	URLs      *greeenboii.URLBuilder
	Fetcher   greeenboii.Fetcher
	Extractor greeenboii.LinkExtractor

	// RateLimiter, if set, spaces out requests to the same engine host.
	RateLimiter greeenboii.DomainLimiter

	// Timeout bounds each pipeline. Zero means no per-pipeline timeout.
	Timeout time.Duration

	// Delay is slept at the start of each pipeline, before fetching.
	Delay time.Duration
}

// Search runs one pipeline per engine and waits for all of them.
//
// A blank query returns EINVALID before any request is made. Otherwise the
// report always holds exactly one result per engine; a pipeline that fails
// for any reason contributes an empty result carrying the cause in Err and
// never affects the other pipelines.
//
// progress, if non-nil, is called from the pipeline goroutines as they
// change state and must be safe for concurrent use.
func (c *Coordinator) Search(ctx context.Context, query string, progress greeenboii.ProgressFunc) (*greeenboii.SearchReport, error) {
	if err := greeenboii.ValidateQuery(query); err != nil {
		return nil, err
	}

	start := time.Now()
	notify := func(ev greeenboii.ProgressEvent) {
		if progress != nil {
			progress(ev)
		}
	}

	for _, engine := range c.Engines {
		notify(greeenboii.ProgressEvent{Engine: engine.ID, Status: greeenboii.StatusPending})
	}

	// Each pipeline owns exactly one slot.
	results := make([]*greeenboii.SourceResult, len(c.Engines))

	var g errgroup.Group
	for i, engine := range c.Engines {
		g.Go(func() error {
			results[i] = c.pipeline(ctx, engine, query, notify)
			return nil
		})
	}
	_ = g.Wait()

	return &greeenboii.SearchReport{
		Query:    query,
		Results:  results,
		Duration: time.Since(start),
	}, nil
}

// pipeline runs fetch and extract for a single engine. It never panics and
// never returns nil.
func (c *Coordinator) pipeline(ctx context.Context, engine *greeenboii.Engine, query string, notify greeenboii.ProgressFunc) (result *greeenboii.SourceResult) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			result = &greeenboii.SourceResult{
				Engine: engine.ID,
				Links:  []string{},
				Err:    greeenboii.Errorf(greeenboii.EINTERNAL, "%s pipeline panicked: %v", engine.ID, r),
			}
		}
		result.Duration = time.Since(start)
		notify(greeenboii.ProgressEvent{
			Engine: engine.ID,
			Status: greeenboii.StatusDone,
			Links:  len(result.Links),
			Err:    result.Err,
		})
	}()

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	if c.Delay > 0 {
		select {
		case <-ctx.Done():
			return failed(engine.ID, greeenboii.Errorf(greeenboii.ETRANSPORT, "%s: %v", engine.ID, ctx.Err()))
		case <-time.After(c.Delay):
		}
	}

	rawURL, err := c.URLs.Build(engine.ID, query)
	if err != nil {
		return failed(engine.ID, err)
	}

	if c.RateLimiter != nil {
		if err := c.RateLimiter.Wait(ctx, host(rawURL)); err != nil {
			return failed(engine.ID, greeenboii.Errorf(greeenboii.ETRANSPORT, "%s rate limit: %v", engine.ID, err))
		}
	}

	notify(greeenboii.ProgressEvent{Engine: engine.ID, Status: greeenboii.StatusFetching})
	outcome := c.Fetcher.Fetch(ctx, rawURL)
	if outcome == nil {
		return failed(engine.ID, greeenboii.Errorf(greeenboii.ETRANSPORT, "%s: no response", engine.ID))
	}

	notify(greeenboii.ProgressEvent{Engine: engine.ID, Status: greeenboii.StatusExtracting})
	res, err := c.Extractor.ExtractLinks(engine.ID, outcome)
	if err != nil {
		return failed(engine.ID, err)
	}
	if res == nil {
		return failed(engine.ID, greeenboii.Errorf(greeenboii.EINTERNAL, "%s: no extraction result", engine.ID))
	}

	return normalize(engine.ID, outcome, res)
}

// normalize enforces the result invariants regardless of the extractor:
// the engine id matches the slot, links are absolute and capped, and a
// failed result has no links.
func normalize(id greeenboii.EngineID, outcome *greeenboii.FetchOutcome, res *greeenboii.SourceResult) *greeenboii.SourceResult {
	res.Engine = id
	if res.Status == 0 {
		res.Status = outcome.Status
	}
	if res.Err == nil {
		res.Err = outcome.Err
	}
	if res.Err != nil {
		res.Links = []string{}
		return res
	}

	links := make([]string, 0, min(len(res.Links), greeenboii.MaxLinks))
	for _, link := range res.Links {
		if len(links) == greeenboii.MaxLinks {
			break
		}
		if strings.HasPrefix(link, "http") {
			links = append(links, link)
		}
	}
	res.Links = links
	return res
}

func failed(id greeenboii.EngineID, err error) *greeenboii.SourceResult {
	return &greeenboii.SourceResult{Engine: id, Links: []string{}, Err: err}
}

func host(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Host
}
