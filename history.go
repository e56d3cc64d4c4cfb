package greeenboii

import (
	"context"
	"time"
)

// HistoryEntry records one completed search.
type HistoryEntry struct {
	ID     string `json:"id"`
	Query  string `json:"query"`
	Links  int    `json:"links"`
	Failed int    `json:"failed"`

	// Fingerprint identifies the exact engine/link sequence of the report,
	// so identical result sets can be recognized across searches.
	Fingerprint string `json:"fingerprint"`

	SearchedAt time.Time `json:"searchedAt"`
}

// Validate returns an error if the entry contains invalid fields.
func (e *HistoryEntry) Validate() error {
	if e.Query == "" {
		return Errorf(EINVALID, "history query required")
	}
	return nil
}

// HistoryService represents a service for managing search history.
type HistoryService interface {
	// CreateEntry records a search.
	CreateEntry(ctx context.Context, entry *HistoryEntry) error

	// FindEntries retrieves entries matching the filter, newest first.
	FindEntries(ctx context.Context, filter HistoryFilter) ([]*HistoryEntry, error)

	// ClearHistory removes every entry.
	ClearHistory(ctx context.Context) error
}

// HistoryFilter represents a filter for FindEntries.
type HistoryFilter struct {
	Query *string `json:"query"`

	Limit int `json:"limit"`
}
