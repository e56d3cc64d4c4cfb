package main

import (
	"fmt"

	"github.com/greeenboii/greeenboii"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	if c.Clear {
		if err := deps.History.ClearHistory(deps.Ctx); err != nil {
			return fail(deps, err)
		}
		fmt.Fprintln(deps.Stdout, "Search history cleared")
		return nil
	}

	filter := greeenboii.HistoryFilter{Limit: c.Limit}
	if c.Query != "" {
		filter.Query = &c.Query
	}

	entries, err := deps.History.FindEntries(deps.Ctx, filter)
	if err != nil {
		return fail(deps, err)
	}

	if len(entries) == 0 {
		fmt.Fprintln(deps.Stdout, "No searches yet. Use 'greeenboii search' to run one.")
		return nil
	}

	for _, e := range entries {
		line := fmt.Sprintf("%s  %-3d links  %s", e.SearchedAt.Local().Format("2006-01-02 15:04"), e.Links, e.Query)
		if e.Failed > 0 {
			line += fmt.Sprintf("  (%d failed)", e.Failed)
		}
		fmt.Fprintln(deps.Stdout, line)
	}
	return nil
}
