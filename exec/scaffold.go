// Package exec implements greeenboii.Scaffolder by running git and the
// template's package installer as child processes.
package exec

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/greeenboii/greeenboii"
)

// Ensure Scaffolder implements greeenboii.Scaffolder at compile time.
var _ greeenboii.Scaffolder = (*Scaffolder)(nil)

// Runner runs a command in dir, streaming its output.
type Runner interface {
	Run(ctx context.Context, dir string, name string, args ...string) error
}

// CommandRunner runs commands with os/exec. Stdout and Stderr receive the
// child's output; nil discards it.
type CommandRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Run starts the command and waits for it. A failed command reports its
// trailing stderr output in the error.
func (r *CommandRunner) Run(ctx context.Context, dir string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = r.Stdout

	var stderr bytes.Buffer
	if r.Stderr != nil {
		cmd.Stderr = io.MultiWriter(r.Stderr, &stderr)
	} else {
		cmd.Stderr = &stderr
	}

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return greeenboii.Errorf(greeenboii.ECONFIG, "%s not found in PATH", name)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return greeenboii.Errorf(greeenboii.EINTERNAL, "%s %s: %s", name, strings.Join(args, " "), msg)
	}
	return nil
}

// Scaffolder clones template repositories with git.
type Scaffolder struct {
	runner Runner
}

// NewScaffolder creates a Scaffolder that runs commands through runner.
func NewScaffolder(runner Runner) *Scaffolder {
	return &Scaffolder{runner: runner}
}

// Scaffold clones tmpl into dir, drops the template's git history and runs
// the installer inside dir. If a step after the clone fails, dir is left in
// place so the user can inspect it.
func (s *Scaffolder) Scaffold(ctx context.Context, tmpl *greeenboii.Template, dir string) error {
	if err := tmpl.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(dir) == "" {
		return greeenboii.Errorf(greeenboii.EINVALID, "target directory required")
	}

	empty, err := isEmptyDir(dir)
	if err != nil {
		return greeenboii.Errorf(greeenboii.EINTERNAL, "checking %s: %v", dir, err)
	}
	if !empty {
		return greeenboii.Errorf(greeenboii.ECONFLICT, "directory %s already exists and is not empty", dir)
	}

	parent := filepath.Dir(dir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return greeenboii.Errorf(greeenboii.EINTERNAL, "creating %s: %v", parent, err)
	}
	if err := s.runner.Run(ctx, parent, "git", "clone", "--depth", "1", tmpl.RepoURL, filepath.Base(dir)); err != nil {
		return err
	}

	if err := os.RemoveAll(filepath.Join(dir, ".git")); err != nil {
		return greeenboii.Errorf(greeenboii.EINTERNAL, "removing template history: %v", err)
	}

	installer := tmpl.Installer
	if installer == nil {
		installer = greeenboii.DefaultInstaller
	}
	if len(installer) == 0 {
		return nil
	}
	return s.runner.Run(ctx, dir, installer[0], installer[1:]...)
}

// isEmptyDir reports whether dir is missing or has no entries.
func isEmptyDir(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return len(entries) == 0, nil
}
