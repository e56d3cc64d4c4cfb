package greeenboii

import (
	"context"
	"strings"
)

// DefaultInstaller is the package installer run after cloning a template.
var DefaultInstaller = []string{"npm", "install"}

// Template describes a project template hosted in a git repository.
type Template struct {
	Name    string
	RepoURL string

	// Installer is the command run inside the new project.
	// Nil uses DefaultInstaller; an empty non-nil slice skips installation.
	Installer []string
}

// Validate returns an error if the template contains invalid fields.
func (t *Template) Validate() error {
	if strings.TrimSpace(t.RepoURL) == "" {
		return Errorf(EINVALID, "template repository URL required")
	}
	return nil
}

// Scaffolder creates new projects from templates.
type Scaffolder interface {
	// Scaffold clones tmpl into dir and runs its installer there.
	// Returns ECONFLICT if dir exists and is not empty.
	Scaffold(ctx context.Context, tmpl *Template, dir string) error
}
