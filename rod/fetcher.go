// Package rod provides a headless Chrome implementation of greeenboii.Fetcher
// for engines that serve script-rendered or bot-filtered result pages.
package rod

import (
	"context"
	"errors"

	"github.com/go-rod/rod/lib/proto"
	"github.com/greeenboii/greeenboii"
)

// Ensure Fetcher implements greeenboii.Fetcher at compile time.
var _ greeenboii.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using Chrome browser automation.
// Each fetch opens its own tab, so Fetcher is safe for concurrent use.
type Fetcher struct {
	pool *browserPool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithMaxPages sets the number of pages served before the browser is
// replaced. Zero disables recycling.
func WithMaxPages(n int) Option {
	return func(f *Fetcher) {
		f.pool.maxPages = n
	}
}

// NewFetcher launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{pool: &browserPool{maxPages: DefaultMaxPages}}
	for _, opt := range opts {
		opt(f)
	}

	browser, l, err := launch()
	if err != nil {
		return nil, err
	}
	f.pool.browser, f.pool.launcher = browser, l

	return f, nil
}

// Fetch navigates a new tab to url with the browser header pair and returns
// the rendered HTML together with the status of the main document.
// Failures are reported in the outcome's Err with code ETRANSPORT.
func (f *Fetcher) Fetch(ctx context.Context, url string) *greeenboii.FetchOutcome {
	out := &greeenboii.FetchOutcome{URL: url}

	if err := ctx.Err(); err != nil {
		out.Err = transportError(url, err)
		return out
	}

	browser, err := f.pool.acquire()
	if err != nil {
		out.Err = transportError(url, err)
		return out
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		out.Err = transportError(url, err)
		return out
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent:      greeenboii.UserAgent,
		AcceptLanguage: greeenboii.AcceptLanguage,
	}); err != nil {
		out.Err = transportError(url, err)
		return out
	}

	wait := page.EachEvent(func(e *proto.NetworkResponseReceived) bool {
		if e.Type != proto.NetworkResourceTypeDocument {
			return false
		}
		out.Status = e.Response.Status
		return true
	})

	if err := page.Navigate(url); err != nil {
		out.Err = transportError(url, err)
		return out
	}
	wait()

	if err := page.WaitLoad(); err != nil {
		out.Err = transportError(url, err)
		return out
	}

	html, err := page.HTML()
	if err != nil {
		out.Err = transportError(url, err)
		return out
	}
	out.Body = html

	return out
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.pool.close()
}

func transportError(url string, err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return greeenboii.Errorf(greeenboii.ETRANSPORT, "timeout fetching %s", url)
	case errors.Is(err, context.Canceled):
		return greeenboii.Errorf(greeenboii.ETRANSPORT, "canceled fetching %s", url)
	default:
		return greeenboii.Errorf(greeenboii.ETRANSPORT, "browser fetch %s: %v", url, err)
	}
}
