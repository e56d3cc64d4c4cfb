package greeenboii

import (
	"fmt"
	"strings"
)

// FormatReport renders a report as plain text: each engine id on its own
// line followed by its links numbered from 1. Engines appear in report order.
// Engines without links print only their id.
func FormatReport(report *SearchReport) string {
	if report == nil || len(report.Results) == 0 {
		return ""
	}

	var b strings.Builder
	for _, res := range report.Results {
		b.WriteString(string(res.Engine))
		b.WriteByte('\n')
		for i, link := range res.Links {
			fmt.Fprintf(&b, "  * #%d: %s\n", i+1, link)
		}
	}
	return b.String()
}
