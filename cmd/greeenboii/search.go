package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"strings"

	"github.com/greeenboii/greeenboii"
	"github.com/greeenboii/greeenboii/search"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	query := strings.TrimSpace(strings.Join(c.Query, " "))
	if query == "" {
		query = prompt(deps, "Enter your search query: ")
	}
	if query == "" {
		return nil
	}

	var progress greeenboii.ProgressFunc
	if deps.Reporter != nil && !c.Plain {
		progress = deps.Reporter.Progress
	}

	report, err := deps.Searcher.Search(deps.Ctx, query, progress)
	if err != nil {
		return fail(deps, err)
	}

	if c.Plain || deps.Reporter == nil {
		fmt.Fprint(deps.Stdout, greeenboii.FormatReport(report))
	} else {
		deps.Reporter.Report(report)
	}

	c.record(deps, report)
	return nil
}

// record saves the search to history and notes whether the results differ
// from the previous search for the same query. History failures are logged
// and never fail the search.
func (c *SearchCmd) record(deps *Dependencies, report *greeenboii.SearchReport) {
	if deps.History == nil {
		return
	}
	logger := loggerOf(deps)

	previous, err := deps.History.FindEntries(deps.Ctx, greeenboii.HistoryFilter{Query: &report.Query, Limit: 1})
	if err != nil {
		logger.Warn("reading search history", "err", err)
	}

	entry := search.NewHistoryEntry(report)
	if err := deps.History.CreateEntry(deps.Ctx, entry); err != nil {
		logger.Warn("recording search history", "err", err)
		return
	}

	if len(previous) > 0 && deps.Reporter != nil && !c.Plain {
		deps.Reporter.Changed(previous[0].Fingerprint, entry.Fingerprint, previous[0].SearchedAt)
	}
}

// prompt writes label and reads one trimmed line from stdin.
func prompt(deps *Dependencies, label string) string {
	fmt.Fprint(deps.Stdout, label)
	if deps.Stdin == nil {
		fmt.Fprintln(deps.Stdout)
		return ""
	}

	scanner := bufio.NewScanner(deps.Stdin)
	if !scanner.Scan() {
		fmt.Fprintln(deps.Stdout)
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

func loggerOf(deps *Dependencies) *slog.Logger {
	if deps.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return deps.Logger
}
