package libsql

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/greeenboii/greeenboii"
)

// Compile-time interface verification.
var _ greeenboii.GistService = (*GistService)(nil)

const gistSchema = `
	CREATE TABLE IF NOT EXISTS gists (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		source_url TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_gists_created_at ON gists(created_at)
`

const gistColumns = "id, title, content, source_url, created_at, updated_at"

// GistService implements greeenboii.GistService on a remote libSQL database.
// The schema is created on first use.
type GistService struct {
	client *Client

	mu     sync.Mutex
	schema bool
}

// NewGistService creates a new GistService.
func NewGistService(client *Client) *GistService {
	return &GistService{client: client}
}

// ensureSchema creates the gists table once per service. A failed attempt is
// retried on the next call.
func (s *GistService) ensureSchema(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schema {
		return nil
	}
	if err := s.client.ExecuteBatch(ctx, gistSchema); err != nil {
		return fmt.Errorf("create gist schema: %w", err)
	}
	s.schema = true
	return nil
}

// CreateGist creates a new gist.
func (s *GistService) CreateGist(ctx context.Context, gist *greeenboii.Gist) error {
	if err := gist.Validate(); err != nil {
		return err
	}
	if err := s.ensureSchema(ctx); err != nil {
		return err
	}

	gist.ID = uuid.New().String()
	now := time.Now().UTC()
	gist.CreatedAt = now
	gist.UpdatedAt = now

	_, err := s.client.Execute(ctx, `
		INSERT INTO gists (id, title, content, source_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, gist.ID, gist.Title, gist.Content, gist.SourceURL, gist.CreatedAt, gist.UpdatedAt)

	return err
}

// FindGistByID retrieves a gist by ID.
func (s *GistService) FindGistByID(ctx context.Context, id string) (*greeenboii.Gist, error) {
	gists, err := s.FindGists(ctx, greeenboii.GistFilter{ID: &id, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(gists) == 0 {
		return nil, greeenboii.Errorf(greeenboii.ENOTFOUND, "gist not found")
	}
	return gists[0], nil
}

// FindGists retrieves gists matching the filter, newest first.
func (s *GistService) FindGists(ctx context.Context, filter greeenboii.GistFilter) ([]*greeenboii.Gist, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}

	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + gistColumns + " FROM gists WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	} else if filter.Offset > 0 {
		query.WriteString(" LIMIT -1")
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	res, err := s.client.Execute(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}

	gists := make([]*greeenboii.Gist, 0, len(res.Rows))
	for _, row := range res.Rows {
		gist, err := scanGist(row)
		if err != nil {
			return nil, err
		}
		gists = append(gists, gist)
	}
	return gists, nil
}

// DeleteGist permanently removes a gist.
func (s *GistService) DeleteGist(ctx context.Context, id string) error {
	if err := s.ensureSchema(ctx); err != nil {
		return err
	}

	res, err := s.client.Execute(ctx, "DELETE FROM gists WHERE id = ?", id)
	if err != nil {
		return err
	}
	if res.AffectedRowCount == 0 {
		return greeenboii.Errorf(greeenboii.ENOTFOUND, "gist not found")
	}
	return nil
}

func scanGist(row []any) (*greeenboii.Gist, error) {
	if len(row) != 6 {
		return nil, greeenboii.Errorf(greeenboii.EINTERNAL, "unexpected gist row width %d", len(row))
	}

	text := func(i int) string {
		s, _ := row[i].(string)
		return s
	}

	gist := &greeenboii.Gist{
		ID:        text(0),
		Title:     text(1),
		Content:   text(2),
		SourceURL: text(3),
	}

	var err error
	if gist.CreatedAt, err = time.Parse(timeLayout, text(4)); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if gist.UpdatedAt, err = time.Parse(timeLayout, text(5)); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return gist, nil
}
