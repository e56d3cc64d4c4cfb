package main_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/greeenboii/greeenboii"
	main "github.com/greeenboii/greeenboii/cmd/greeenboii"
	"github.com/greeenboii/greeenboii/color"
	"github.com/greeenboii/greeenboii/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedReport(query string) *greeenboii.SearchReport {
	return &greeenboii.SearchReport{
		Query: query,
		Results: []*greeenboii.SourceResult{
			{Engine: greeenboii.EngineGoogle, Links: []string{"https://go.dev"}},
			{Engine: greeenboii.EngineBing, Links: []string{}},
			{Engine: greeenboii.EngineDuckDuckGo, Links: []string{"https://go.dev/doc"}},
		},
	}
}

func reportingSearcher(t *testing.T, wantQuery string) *mock.Searcher {
	return &mock.Searcher{
		SearchFn: func(_ context.Context, query string, _ greeenboii.ProgressFunc) (*greeenboii.SearchReport, error) {
			assert.Equal(t, wantQuery, query)
			return fixedReport(query), nil
		},
	}
}

func memoryHistory(entries ...*greeenboii.HistoryEntry) (*mock.HistoryService, *[]*greeenboii.HistoryEntry) {
	created := &[]*greeenboii.HistoryEntry{}
	return &mock.HistoryService{
		FindEntriesFn: func(_ context.Context, filter greeenboii.HistoryFilter) ([]*greeenboii.HistoryEntry, error) {
			var out []*greeenboii.HistoryEntry
			for _, e := range entries {
				if filter.Query == nil || *filter.Query == e.Query {
					out = append(out, e)
				}
			}
			return out, nil
		},
		CreateEntryFn: func(_ context.Context, entry *greeenboii.HistoryEntry) error {
			*created = append(*created, entry)
			return nil
		},
	}, created
}

func TestSearchCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("joins query words and prints plain report", func(t *testing.T) {
		t.Parallel()

		history, created := memoryHistory()
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Searcher: reportingSearcher(t, "golang generics"),
			History:  history,
		}

		cmd := &main.SearchCmd{Query: []string{"golang", "generics"}, SearchFlags: main.SearchFlags{Plain: true}}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, greeenboii.FormatReport(fixedReport("golang generics")), stdout.String())
		require.Len(t, *created, 1)
		assert.Equal(t, "golang generics", (*created)[0].Query)
		assert.Equal(t, 2, (*created)[0].Links)
	})

	t.Run("prompts when query is missing", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdin:    strings.NewReader("  rust async \n"),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Searcher: reportingSearcher(t, "rust async"),
		}

		err := (&main.SearchCmd{SearchFlags: main.SearchFlags{Plain: true}}).Run(deps)

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(stdout.String(), "Enter your search query: Google\n"))
	})

	t.Run("empty answer returns without searching", func(t *testing.T) {
		t.Parallel()

		searcher := &mock.Searcher{
			SearchFn: func(context.Context, string, greeenboii.ProgressFunc) (*greeenboii.SearchReport, error) {
				t.Fatal("search should not run")
				return nil, nil
			},
		}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdin:    strings.NewReader("   \n"),
			Stdout:   &bytes.Buffer{},
			Stderr:   &bytes.Buffer{},
			Searcher: searcher,
		}

		err := (&main.SearchCmd{}).Run(deps)

		require.NoError(t, err)
	})

	t.Run("reporter output notes unchanged results", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		reporter := color.NewReporter(stdout)
		reporter.DisableColor()

		// Record a first search to learn the fingerprint of the fixed report.
		first, created := memoryHistory()
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   &bytes.Buffer{},
			Searcher: reportingSearcher(t, "golang"),
			History:  first,
		}
		require.NoError(t, (&main.SearchCmd{Query: []string{"golang"}, SearchFlags: main.SearchFlags{Plain: true}}).Run(deps))
		require.Len(t, *created, 1)
		previous := (*created)[0]
		previous.SearchedAt = time.Date(2024, 1, 2, 3, 4, 0, 0, time.Local)

		history, _ := memoryHistory(previous)
		deps = &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Searcher: reportingSearcher(t, "golang"),
			History:  history,
			Reporter: reporter,
		}

		err := (&main.SearchCmd{Query: []string{"golang"}}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "  * #1: https://go.dev\n")
		assert.Contains(t, stdout.String(), "results unchanged since 2024-01-02 03:04")
	})

	t.Run("history failure does not fail the search", func(t *testing.T) {
		t.Parallel()

		history := &mock.HistoryService{
			FindEntriesFn: func(context.Context, greeenboii.HistoryFilter) ([]*greeenboii.HistoryEntry, error) {
				return nil, errors.New("disk full")
			},
			CreateEntryFn: func(context.Context, *greeenboii.HistoryEntry) error {
				return errors.New("disk full")
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Searcher: reportingSearcher(t, "golang"),
			History:  history,
		}

		err := (&main.SearchCmd{Query: []string{"golang"}, SearchFlags: main.SearchFlags{Plain: true}}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "https://go.dev")
	})

	t.Run("search error is reported", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Searcher: &mock.Searcher{
				SearchFn: func(context.Context, string, greeenboii.ProgressFunc) (*greeenboii.SearchReport, error) {
					return nil, greeenboii.Errorf(greeenboii.EINVALID, "query must not be empty")
				},
			},
		}

		err := (&main.SearchCmd{Query: []string{"x"}}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, "error: query must not be empty\n", stderr.String())
	})
}
