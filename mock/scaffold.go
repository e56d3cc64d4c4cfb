package mock

import (
	"context"

	"github.com/greeenboii/greeenboii"
)

var _ greeenboii.Scaffolder = (*Scaffolder)(nil)

// Scaffolder is a mock implementation of greeenboii.Scaffolder.
type Scaffolder struct {
	ScaffoldFn func(ctx context.Context, tmpl *greeenboii.Template, dir string) error
}

func (s *Scaffolder) Scaffold(ctx context.Context, tmpl *greeenboii.Template, dir string) error {
	return s.ScaffoldFn(ctx, tmpl, dir)
}
