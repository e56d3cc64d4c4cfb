// Package fs exports gists to markdown files on disk.
package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/greeenboii/greeenboii"
	"gopkg.in/yaml.v3"
)

// Exporter writes gists as markdown files with atomic update semantics.
// Files are saved to a temporary directory and moved into place on Commit,
// so an interrupted export never leaves a half-written directory behind.
type Exporter struct {
	baseDir string
	name    string
}

// NewExporter creates a new Exporter.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewExporter(baseDir, name string) *Exporter {
	return &Exporter{
		baseDir: baseDir,
		name:    name,
	}
}

func (e *Exporter) tempDir() string {
	return filepath.Join(e.baseDir, e.name+".tmp")
}

func (e *Exporter) finalDir() string {
	return filepath.Join(e.baseDir, e.name)
}

// Save writes one gist to the temporary directory.
func (e *Exporter) Save(ctx context.Context, gist *greeenboii.Gist) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := gist.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(e.tempDir(), 0755); err != nil {
		return err
	}

	data, err := FormatGist(gist)
	if err != nil {
		return err
	}
	path := filepath.Join(e.tempDir(), FileName(gist))
	return os.WriteFile(path, []byte(data), 0644)
}

// Commit replaces the output directory with the saved files.
func (e *Exporter) Commit() error {
	// An export with no gists still produces an empty directory.
	if err := os.MkdirAll(e.tempDir(), 0755); err != nil {
		return err
	}
	if err := os.RemoveAll(e.finalDir()); err != nil {
		return err
	}
	return os.Rename(e.tempDir(), e.finalDir())
}

// Abort discards the saved files.
func (e *Exporter) Abort() error {
	return os.RemoveAll(e.tempDir())
}

// FileName returns the file name for a gist: a slug of its title followed
// by the first eight characters of its ID.
// Example: "Go Concurrency Patterns" → go-concurrency-patterns-1a2b3c4d.md
func FileName(gist *greeenboii.Gist) string {
	slug := Slugify(gist.Title)
	id := gist.ID
	if len(id) > 8 {
		id = id[:8]
	}
	if id == "" {
		return slug + ".md"
	}
	return slug + "-" + id + ".md"
}

// Slugify lowercases s and collapses every run of characters other than
// letters and digits into a single hyphen. An empty result becomes "gist".
func Slugify(s string) string {
	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			hyphen = false
			continue
		}
		if !hyphen && b.Len() > 0 {
			b.WriteByte('-')
			hyphen = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "gist"
	}
	return slug
}

// frontmatter is the YAML header written above each exported gist.
type frontmatter struct {
	ID      string `yaml:"id"`
	Title   string `yaml:"title"`
	Source  string `yaml:"source,omitempty"`
	Created string `yaml:"created,omitempty"`
}

// FormatGist formats a gist with YAML frontmatter. Header values are
// encoded by the YAML marshaler, so titles containing colons, newlines or
// a leading '#' stay inside their own key.
func FormatGist(gist *greeenboii.Gist) (string, error) {
	fm := frontmatter{
		ID:     gist.ID,
		Title:  gist.Title,
		Source: gist.SourceURL,
	}
	if !gist.CreatedAt.IsZero() {
		fm.Created = gist.CreatedAt.Format("2006-01-02")
	}
	header, err := yaml.Marshal(fm)
	if err != nil {
		return "", greeenboii.Errorf(greeenboii.EINTERNAL, "encoding frontmatter for %s: %v", gist.ID, err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(gist.Content)
	if !strings.HasSuffix(gist.Content, "\n") {
		b.WriteByte('\n')
	}
	return b.String(), nil
}
