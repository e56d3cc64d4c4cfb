package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/greeenboii/greeenboii"
	"github.com/greeenboii/greeenboii/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleGist() *greeenboii.Gist {
	return &greeenboii.Gist{
		ID:        "1a2b3c4d-0000-4000-8000-000000000000",
		Title:     "Go Concurrency Patterns",
		Content:   "# Pipelines\n\nFan out, fan in.",
		SourceURL: "https://go.dev/blog/pipelines",
		CreatedAt: time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC),
	}
}

func TestExporter_SaveWritesToTempDirectory(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	exp := fs.NewExporter(base, "gists")

	err := exp.Save(context.Background(), sampleGist())

	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(base, "gists.tmp", "go-concurrency-patterns-1a2b3c4d.md"))
	_, err = os.Stat(filepath.Join(base, "gists"))
	assert.True(t, os.IsNotExist(err), "final directory should not exist until commit")
}

func TestExporter_CommitMovesFromTempToFinal(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "gists"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "gists", "stale.md"), []byte("old"), 0644))
	exp := fs.NewExporter(base, "gists")
	require.NoError(t, exp.Save(context.Background(), sampleGist()))

	err := exp.Commit()

	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(base, "gists", "go-concurrency-patterns-1a2b3c4d.md"))
	assert.NoFileExists(t, filepath.Join(base, "gists", "stale.md"))
	_, err = os.Stat(filepath.Join(base, "gists.tmp"))
	assert.True(t, os.IsNotExist(err), "temp directory should be removed after commit")
}

func TestExporter_CommitWithoutGistsCreatesEmptyDirectory(t *testing.T) {
	t.Parallel()

	base := t.TempDir()

	err := fs.NewExporter(base, "gists").Commit()

	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(base, "gists"))
}

func TestExporter_AbortCleansUpTempDirectory(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	exp := fs.NewExporter(base, "gists")
	require.NoError(t, exp.Save(context.Background(), sampleGist()))

	err := exp.Abort()

	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(base, "gists.tmp"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(base, "gists"))
	assert.True(t, os.IsNotExist(err))
}

func TestExporter_SaveRejectsInvalidGist(t *testing.T) {
	t.Parallel()

	err := fs.NewExporter(t.TempDir(), "gists").Save(context.Background(), &greeenboii.Gist{Title: "empty"})

	assert.Equal(t, greeenboii.EINVALID, greeenboii.ErrorCode(err))
}

func TestExporter_SaveHonorsCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := fs.NewExporter(t.TempDir(), "gists").Save(ctx, sampleGist())

	assert.ErrorIs(t, err, context.Canceled)
}

// parseGist splits a formatted gist into its decoded frontmatter and body.
func parseGist(t *testing.T, doc string) (map[string]string, string) {
	t.Helper()

	require.True(t, strings.HasPrefix(doc, "---\n"), "missing opening delimiter")
	header, body, ok := strings.Cut(strings.TrimPrefix(doc, "---\n"), "\n---\n\n")
	require.True(t, ok, "missing closing delimiter")

	fm := map[string]string{}
	require.NoError(t, yaml.Unmarshal([]byte(header), &fm))
	return fm, body
}

func TestFormatGist(t *testing.T) {
	t.Parallel()

	t.Run("includes frontmatter", func(t *testing.T) {
		t.Parallel()

		doc, err := fs.FormatGist(sampleGist())
		require.NoError(t, err)

		fm, body := parseGist(t, doc)
		assert.Equal(t, map[string]string{
			"id":      "1a2b3c4d-0000-4000-8000-000000000000",
			"title":   "Go Concurrency Patterns",
			"source":  "https://go.dev/blog/pipelines",
			"created": "2024-03-09",
		}, fm)
		assert.Equal(t, "# Pipelines\n\nFan out, fan in.\n", body)
	})

	t.Run("omits empty source", func(t *testing.T) {
		t.Parallel()

		g := sampleGist()
		g.SourceURL = ""

		doc, err := fs.FormatGist(g)
		require.NoError(t, err)

		fm, _ := parseGist(t, doc)
		assert.NotContains(t, fm, "source")
	})

	t.Run("titles keep YAML syntax inside the title", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name  string
			title string
		}{
			{name: "colon", title: "Go: The Complete Guide"},
			{name: "newline with key", title: "a\nsource: https://evil"},
			{name: "leading hash", title: "# heading"},
			{name: "leading dash", title: "- item"},
			{name: "quotes", title: `say "hi" 'there'`},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				g := sampleGist()
				g.Title = tt.title

				doc, err := fs.FormatGist(g)
				require.NoError(t, err)

				fm, _ := parseGist(t, doc)
				assert.Equal(t, tt.title, fm["title"])
				assert.Equal(t, "https://go.dev/blog/pipelines", fm["source"])
				assert.Len(t, fm, 4)
			})
		}
	})

	t.Run("injected source key is not added when source is empty", func(t *testing.T) {
		t.Parallel()

		g := sampleGist()
		g.Title = "a\nsource: https://evil"
		g.SourceURL = ""

		doc, err := fs.FormatGist(g)
		require.NoError(t, err)

		fm, _ := parseGist(t, doc)
		assert.NotContains(t, fm, "source")
		assert.Equal(t, g.Title, fm["title"])
	})
}

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "spaces", in: "Go Concurrency Patterns", want: "go-concurrency-patterns"},
		{name: "punctuation runs", in: "Hello, World!!", want: "hello-world"},
		{name: "leading separators", in: "  --intro", want: "intro"},
		{name: "path separators", in: "../../etc/passwd", want: "etc-passwd"},
		{name: "unicode letters", in: "Café Notes", want: "café-notes"},
		{name: "nothing usable", in: "!!!", want: "gist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, fs.Slugify(tt.in))
		})
	}
}

func TestFileName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "go-concurrency-patterns-1a2b3c4d.md", fs.FileName(sampleGist()))
	assert.Equal(t, "notes-abc.md", fs.FileName(&greeenboii.Gist{ID: "abc", Title: "Notes"}))
	assert.Equal(t, "notes.md", fs.FileName(&greeenboii.Gist{Title: "Notes"}))
}
