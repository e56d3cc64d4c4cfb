package mock

import (
	"context"

	"github.com/greeenboii/greeenboii"
)

var _ greeenboii.HistoryService = (*HistoryService)(nil)

// HistoryService is a mock implementation of greeenboii.HistoryService.
type HistoryService struct {
	CreateEntryFn  func(ctx context.Context, entry *greeenboii.HistoryEntry) error
	FindEntriesFn  func(ctx context.Context, filter greeenboii.HistoryFilter) ([]*greeenboii.HistoryEntry, error)
	ClearHistoryFn func(ctx context.Context) error
}

func (s *HistoryService) CreateEntry(ctx context.Context, entry *greeenboii.HistoryEntry) error {
	return s.CreateEntryFn(ctx, entry)
}

func (s *HistoryService) FindEntries(ctx context.Context, filter greeenboii.HistoryFilter) ([]*greeenboii.HistoryEntry, error) {
	return s.FindEntriesFn(ctx, filter)
}

func (s *HistoryService) ClearHistory(ctx context.Context) error {
	return s.ClearHistoryFn(ctx)
}
