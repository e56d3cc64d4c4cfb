// Package slog provides logging decorators for greeenboii services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/greeenboii/greeenboii"
)

// Ensure LoggingFetcher implements greeenboii.Fetcher.
var _ greeenboii.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   greeenboii.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next greeenboii.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (out *greeenboii.FetchOutcome) {
	defer func(begin time.Time) {
		var (
			status, size int
			err          error
		)
		if out != nil {
			status, size, err = out.Status, len(out.Body), out.Err
		}
		f.logger.Debug("fetch",
			"url", url,
			"status", status,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
