package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/greeenboii/greeenboii"
)

// Run executes the new command.
func (c *NewCmd) Run(deps *Dependencies) error {
	tmpl := &greeenboii.Template{
		Name:      filepath.Base(c.Dir),
		RepoURL:   c.Repo,
		Installer: strings.Fields(c.Installer),
	}
	if c.SkipInstall {
		tmpl.Installer = []string{}
	}

	if err := deps.Scaffolder.Scaffold(deps.Ctx, tmpl, c.Dir); err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Created %s from %s\n", c.Dir, c.Repo)
	return nil
}
