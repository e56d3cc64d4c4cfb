package slog

import (
	"log/slog"
	"time"

	"github.com/greeenboii/greeenboii"
)

// Ensure LoggingLinkExtractor implements greeenboii.LinkExtractor.
var _ greeenboii.LinkExtractor = (*LoggingLinkExtractor)(nil)

// LoggingLinkExtractor wraps a LinkExtractor with debug logging. The page
// title is logged so that captcha and consent pages are easy to spot.
type LoggingLinkExtractor struct {
	next   greeenboii.LinkExtractor
	logger *slog.Logger
}

// NewLoggingLinkExtractor creates a new LoggingLinkExtractor.
func NewLoggingLinkExtractor(next greeenboii.LinkExtractor, logger *slog.Logger) *LoggingLinkExtractor {
	return &LoggingLinkExtractor{next: next, logger: logger}
}

// ExtractLinks delegates to the wrapped extractor and logs the result.
func (e *LoggingLinkExtractor) ExtractLinks(id greeenboii.EngineID, outcome *greeenboii.FetchOutcome) (res *greeenboii.SourceResult, err error) {
	defer func(begin time.Time) {
		title, links := "", 0
		if res != nil {
			title, links = res.Title, len(res.Links)
		}
		if title == "" {
			title = "(none)"
		}
		e.logger.Debug("extract links",
			"engine", id,
			"title", title,
			"links", links,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractLinks(id, outcome)
}
