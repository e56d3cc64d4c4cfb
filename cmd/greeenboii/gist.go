package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/greeenboii/greeenboii"
	"github.com/greeenboii/greeenboii/fs"
	"github.com/greeenboii/greeenboii/goquery"
)

// Run executes the gist add command.
func (c *GistAddCmd) Run(deps *Dependencies) error {
	gist := &greeenboii.Gist{Title: c.Title, Content: c.Content}
	if err := deps.Gists.CreateGist(deps.Ctx, gist); err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Saved gist %s: %s\n", shortID(gist.ID), gist.Title)
	return nil
}

// Run executes the gist list command.
func (c *GistListCmd) Run(deps *Dependencies) error {
	gists, err := deps.Gists.FindGists(deps.Ctx, greeenboii.GistFilter{Limit: c.Limit})
	if err != nil {
		return fail(deps, err)
	}

	if len(gists) == 0 {
		fmt.Fprintln(deps.Stdout, "No gists found. Use 'greeenboii gist add' to create one.")
		return nil
	}

	for _, g := range gists {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", shortID(g.ID), g.CreatedAt.Local().Format("2006-01-02"), g.Title)
	}
	return nil
}

// Run executes the gist show command.
func (c *GistShowCmd) Run(deps *Dependencies) error {
	gist, err := resolveGist(deps, c.ID)
	if err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "# %s\n", gist.Title)
	if gist.SourceURL != "" {
		fmt.Fprintf(deps.Stdout, "Source: %s\n", gist.SourceURL)
	}
	fmt.Fprintf(deps.Stdout, "\n%s\n", strings.TrimRight(gist.Content, "\n"))
	return nil
}

// Run executes the gist delete command.
func (c *GistDeleteCmd) Run(deps *Dependencies) error {
	gist, err := resolveGist(deps, c.ID)
	if err != nil {
		return fail(deps, err)
	}

	if err := deps.Gists.DeleteGist(deps.Ctx, gist.ID); err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Deleted gist %q\n", gist.Title)
	return nil
}

// Run executes the gist clip command.
func (c *GistClipCmd) Run(deps *Dependencies) error {
	ctx := deps.Ctx
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	out := deps.Fetcher.Fetch(ctx, c.URL)
	if out.Err != nil {
		return fail(deps, out.Err)
	}
	if !out.OK() {
		return fail(deps, greeenboii.Errorf(greeenboii.ETRANSPORT, "fetching %s: HTTP %d", c.URL, out.Status))
	}

	page, err := deps.Extractor.Extract(out.Body)
	if err != nil {
		return fail(deps, err)
	}

	content, err := deps.Converter.Convert(page.ContentHTML, c.URL)
	if err != nil {
		return fail(deps, err)
	}

	title := firstNonEmpty(c.Title, page.Title, goquery.PageTitle(out.Body), c.URL)
	gist := &greeenboii.Gist{Title: title, Content: content, SourceURL: c.URL}
	if err := deps.Gists.CreateGist(deps.Ctx, gist); err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Clipped %q as gist %s (%d bytes)\n", gist.Title, shortID(gist.ID), len(content))
	return nil
}

// Run executes the gist export command.
func (c *GistExportCmd) Run(deps *Dependencies) error {
	gists, err := deps.Gists.FindGists(deps.Ctx, greeenboii.GistFilter{})
	if err != nil {
		return fail(deps, err)
	}

	dir := filepath.Clean(c.Dir)
	exporter := fs.NewExporter(filepath.Dir(dir), filepath.Base(dir))
	for _, g := range gists {
		if err := exporter.Save(deps.Ctx, g); err != nil {
			_ = exporter.Abort()
			return fail(deps, err)
		}
	}
	if err := exporter.Commit(); err != nil {
		_ = exporter.Abort()
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Exported %d gists to %s\n", len(gists), dir)
	return nil
}

// resolveGist finds a gist by full ID or by a prefix matching exactly one gist.
func resolveGist(deps *Dependencies, ref string) (*greeenboii.Gist, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, greeenboii.Errorf(greeenboii.EINVALID, "gist id required")
	}

	gist, err := deps.Gists.FindGistByID(deps.Ctx, ref)
	if err == nil {
		return gist, nil
	} else if greeenboii.ErrorCode(err) != greeenboii.ENOTFOUND {
		return nil, err
	}

	gists, err := deps.Gists.FindGists(deps.Ctx, greeenboii.GistFilter{})
	if err != nil {
		return nil, err
	}

	var matches []*greeenboii.Gist
	for _, g := range gists {
		if strings.HasPrefix(g.ID, ref) {
			matches = append(matches, g)
		}
	}
	switch len(matches) {
	case 0:
		return nil, greeenboii.Errorf(greeenboii.ENOTFOUND, "gist %q not found. Use 'greeenboii gist list' to see gists.", ref)
	case 1:
		return matches[0], nil
	default:
		return nil, greeenboii.Errorf(greeenboii.EINVALID, "gist id %q is ambiguous (%d matches)", ref, len(matches))
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
