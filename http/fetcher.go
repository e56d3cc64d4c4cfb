// Package http provides an HTTP-based implementation of greeenboii.Fetcher
// for search pages that don't require JavaScript rendering.
package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/greeenboii/greeenboii"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 15 * time.Second

// MaxBodySize caps the number of decoded bytes read from a response.
const MaxBodySize = 10 << 20

// Ensure Fetcher implements greeenboii.Fetcher at compile time.
var _ greeenboii.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP requests.
// Unlike rod.Fetcher, this does not execute JavaScript.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (15s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithClient sets the underlying HTTP client. The fetcher uses a copy with
// the fetcher timeout applied, so c itself is never modified.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	client := &http.Client{}
	if f.client != nil {
		*client = *f.client
	}
	client.Timeout = f.timeout
	f.client = client

	return f
}

// Fetch performs a single GET request with the browser header pair.
// There is no retry. Non-200 responses still return their body; network
// failures, timeouts and cancellation are reported in the outcome's Err
// with code ETRANSPORT.
func (f *Fetcher) Fetch(ctx context.Context, url string) *greeenboii.FetchOutcome {
	out := &greeenboii.FetchOutcome{URL: url}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		out.Err = greeenboii.Errorf(greeenboii.ETRANSPORT, "invalid request for %s: %v", url, err)
		return out
	}
	req.Header.Set("User-Agent", greeenboii.UserAgent)
	req.Header.Set("Accept-Language", greeenboii.AcceptLanguage)

	resp, err := f.client.Do(req)
	if err != nil {
		out.Err = transportError(url, err)
		return out
	}
	defer resp.Body.Close()

	out.Status = resp.StatusCode

	reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		// Unknown charset: fall back to the raw bytes.
		reader = resp.Body
	}

	body, err := io.ReadAll(io.LimitReader(reader, MaxBodySize))
	if err != nil {
		out.Err = transportError(url, err)
		return out
	}
	out.Body = string(body)

	return out
}

// Close releases resources. For HTTP fetcher this only drops idle
// connections since http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}

func transportError(url string, err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return greeenboii.Errorf(greeenboii.ETRANSPORT, "timeout fetching %s", url)
	case errors.Is(err, context.Canceled):
		return greeenboii.Errorf(greeenboii.ETRANSPORT, "canceled fetching %s", url)
	default:
		return greeenboii.Errorf(greeenboii.ETRANSPORT, "fetch %s: %v", url, err)
	}
}
