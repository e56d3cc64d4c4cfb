package greeenboii

import "context"

// FetchOutcome is the result of a single outbound GET.
// A transport failure is recorded in Err rather than returned, so a failed
// fetch still flows through extraction as an empty document.
type FetchOutcome struct {
	URL    string
	Status int    // HTTP status; 0 when the request never completed
	Body   string // decoded response body, possibly empty
	Err    error  // ETRANSPORT on network failure
}

// OK reports whether the fetch completed with HTTP 200.
func (o *FetchOutcome) OK() bool {
	return o != nil && o.Err == nil && o.Status == 200
}

// Fetcher retrieves HTML documents with a fixed browser-like header set.
type Fetcher interface {
	// Fetch issues one GET request without retry. It never returns nil.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) *FetchOutcome

	// Close releases resources held by the fetcher.
	Close() error
}

// Request headers sent with every search request. Search engines serve
// reduced or blocked markup to clients that do not look like a browser.
const (
	UserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/101.0.4951.54 Safari/537.36"
	AcceptLanguage = "en-US,en;q=0.5"
)
