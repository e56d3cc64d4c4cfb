package mock

import (
	"context"

	"github.com/greeenboii/greeenboii"
)

var _ greeenboii.GistService = (*GistService)(nil)

// GistService is a mock implementation of greeenboii.GistService.
type GistService struct {
	CreateGistFn   func(ctx context.Context, gist *greeenboii.Gist) error
	FindGistByIDFn func(ctx context.Context, id string) (*greeenboii.Gist, error)
	FindGistsFn    func(ctx context.Context, filter greeenboii.GistFilter) ([]*greeenboii.Gist, error)
	DeleteGistFn   func(ctx context.Context, id string) error
}

func (s *GistService) CreateGist(ctx context.Context, gist *greeenboii.Gist) error {
	return s.CreateGistFn(ctx, gist)
}

func (s *GistService) FindGistByID(ctx context.Context, id string) (*greeenboii.Gist, error) {
	return s.FindGistByIDFn(ctx, id)
}

func (s *GistService) FindGists(ctx context.Context, filter greeenboii.GistFilter) ([]*greeenboii.Gist, error) {
	return s.FindGistsFn(ctx, filter)
}

func (s *GistService) DeleteGist(ctx context.Context, id string) error {
	return s.DeleteGistFn(ctx, id)
}
