package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/greeenboii/greeenboii"
)

// Ensure LoggingSearcher implements greeenboii.Searcher.
var _ greeenboii.Searcher = (*LoggingSearcher)(nil)

// LoggingSearcher wraps a Searcher with logging. Searches that produced no
// links at all are logged at warn level.
type LoggingSearcher struct {
	next   greeenboii.Searcher
	logger *slog.Logger
}

// NewLoggingSearcher creates a new LoggingSearcher.
func NewLoggingSearcher(next greeenboii.Searcher, logger *slog.Logger) *LoggingSearcher {
	return &LoggingSearcher{next: next, logger: logger}
}

// Search delegates to the wrapped searcher and logs a summary.
func (s *LoggingSearcher) Search(ctx context.Context, query string, progress greeenboii.ProgressFunc) (report *greeenboii.SearchReport, err error) {
	defer func(begin time.Time) {
		var (
			engines, links int
			failed         []greeenboii.EngineID
		)
		if report != nil {
			engines, links, failed = len(report.Results), report.TotalLinks(), report.Failed()
		}
		level := slog.LevelInfo
		if err == nil && links == 0 {
			level = slog.LevelWarn
		}
		s.logger.Log(ctx, level, "search",
			"query", query,
			"engines", engines,
			"links", links,
			"failed", failed,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query, progress)
}
