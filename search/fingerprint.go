package search

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/greeenboii/greeenboii"
)

// Fingerprint hashes the engine/link sequence of a report with xxhash.
// Two reports share a fingerprint exactly when every engine returned the
// same links in the same order.
func Fingerprint(report *greeenboii.SearchReport) string {
	d := xxhash.New()
	for _, res := range report.Results {
		_, _ = d.WriteString(string(res.Engine))
		_, _ = d.WriteString("\x00")
		for _, link := range res.Links {
			_, _ = d.WriteString(link)
			_, _ = d.WriteString("\n")
		}
		_, _ = d.WriteString("\x00")
	}
	return fmt.Sprintf("%016x", d.Sum64())
}

// NewHistoryEntry summarizes a report for the search history.
func NewHistoryEntry(report *greeenboii.SearchReport) *greeenboii.HistoryEntry {
	return &greeenboii.HistoryEntry{
		Query:       report.Query,
		Links:       report.TotalLinks(),
		Failed:      len(report.Failed()),
		Fingerprint: Fingerprint(report),
	}
}
