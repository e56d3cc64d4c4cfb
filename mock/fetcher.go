package mock

import (
	"context"

	"github.com/greeenboii/greeenboii"
)

var _ greeenboii.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of greeenboii.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) *greeenboii.FetchOutcome
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) *greeenboii.FetchOutcome {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}
