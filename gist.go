package greeenboii

import (
	"context"
	"time"
)

// Gist represents a note stored in the remote database.
type Gist struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	SourceURL string    `json:"sourceUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate returns an error if the gist contains invalid fields.
func (g *Gist) Validate() error {
	if g.Title == "" {
		return Errorf(EINVALID, "gist title required")
	}
	if g.Content == "" {
		return Errorf(EINVALID, "gist content required")
	}
	return nil
}

// GistService represents a service for managing gists.
type GistService interface {
	// CreateGist creates a new gist.
	CreateGist(ctx context.Context, gist *Gist) error

	// FindGistByID retrieves a gist by ID.
	// Returns ENOTFOUND if gist does not exist.
	FindGistByID(ctx context.Context, id string) (*Gist, error)

	// FindGists retrieves gists matching the filter, newest first.
	FindGists(ctx context.Context, filter GistFilter) ([]*Gist, error)

	// DeleteGist permanently removes a gist.
	// Returns ENOTFOUND if gist does not exist.
	DeleteGist(ctx context.Context, id string) error
}

// GistFilter represents a filter for FindGists.
type GistFilter struct {
	ID *string `json:"id"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
