package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/greeenboii/greeenboii"
)

// Compile-time interface verification.
var _ greeenboii.HistoryService = (*HistoryService)(nil)

// HistoryService implements greeenboii.HistoryService using SQLite.
type HistoryService struct {
	db *DB
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(db *DB) *HistoryService {
	return &HistoryService{db: db}
}

// CreateEntry records a search.
func (s *HistoryService) CreateEntry(ctx context.Context, entry *greeenboii.HistoryEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	entry.ID = uuid.New().String()
	if entry.SearchedAt.IsZero() {
		entry.SearchedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO history (id, query, links, failed, fingerprint, searched_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.Query, entry.Links, entry.Failed, entry.Fingerprint, formatTime(entry.SearchedAt))

	return err
}

// FindEntries retrieves entries matching the filter, newest first.
func (s *HistoryService) FindEntries(ctx context.Context, filter greeenboii.HistoryFilter) ([]*greeenboii.HistoryEntry, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, query, links, failed, fingerprint, searched_at FROM history WHERE 1=1")

	if filter.Query != nil {
		query.WriteString(" AND query = ?")
		args = append(args, *filter.Query)
	}

	query.WriteString(" ORDER BY searched_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, 0)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*greeenboii.HistoryEntry
	for rows.Next() {
		var entry greeenboii.HistoryEntry
		var searchedAt string

		if err := rows.Scan(&entry.ID, &entry.Query, &entry.Links, &entry.Failed, &entry.Fingerprint, &searchedAt); err != nil {
			return nil, err
		}

		var err error
		if entry.SearchedAt, err = parseTime(searchedAt, "searched_at"); err != nil {
			return nil, err
		}

		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

// ClearHistory removes every entry.
func (s *HistoryService) ClearHistory(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM history")
	return err
}
