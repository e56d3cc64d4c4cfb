// Package color renders search reports and progress for a terminal using
// github.com/fatih/color.
package color

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/greeenboii/greeenboii"
)

// Reporter writes search output. Its Progress method may be passed to
// greeenboii.Searcher.Search and is safe for concurrent use.
type Reporter struct {
	mu sync.Mutex
	w  io.Writer

	// Verbose adds failure reasons, progress lines and a summary.
	Verbose bool

	engine *color.Color
	link   *color.Color
	index  *color.Color
	dim    *color.Color
	warn   *color.Color
}

// NewReporter returns a Reporter writing to w. Colors follow the global
// fatih/color setting, which is off when stdout is not a terminal.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{
		w:      w,
		engine: color.New(color.FgCyan, color.Bold),
		link:   color.New(color.FgGreen),
		index:  color.New(color.FgYellow),
		dim:    color.New(color.Faint),
		warn:   color.New(color.FgRed),
	}
}

// DisableColor turns off escape sequences for this reporter only.
func (r *Reporter) DisableColor() {
	for _, c := range []*color.Color{r.engine, r.link, r.index, r.dim, r.warn} {
		c.DisableColor()
	}
}

// Report prints every engine in report order followed by its numbered links.
func (r *Reporter) Report(report *greeenboii.SearchReport) {
	if report == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, res := range report.Results {
		fmt.Fprintln(r.w, r.engine.Sprint(res.Engine))
		for i, link := range res.Links {
			fmt.Fprintf(r.w, "  * %s: %s\n", r.index.Sprintf("#%d", i+1), r.link.Sprint(link))
		}
		if !r.Verbose {
			continue
		}
		if reason := res.FailureReason(); reason != "" {
			fmt.Fprintln(r.w, r.dim.Sprintf("  (no results: %s)", reason))
		}
	}

	if r.Verbose {
		fmt.Fprintln(r.w, r.dim.Sprintf("%d links from %d engines in %s",
			report.TotalLinks(), len(report.Results), report.Duration.Round(time.Millisecond)))
	}
}

// Progress prints pipeline state changes when Verbose is set.
func (r *Reporter) Progress(ev greeenboii.ProgressEvent) {
	if !r.Verbose {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	switch {
	case ev.Status == greeenboii.StatusDone && ev.Err != nil:
		fmt.Fprintf(r.w, "%s %s\n", r.dim.Sprintf("[%s]", ev.Engine), r.warn.Sprintf("failed: %s", greeenboii.ErrorMessage(ev.Err)))
	case ev.Status == greeenboii.StatusDone:
		fmt.Fprintln(r.w, r.dim.Sprintf("[%s] done, %d links", ev.Engine, ev.Links))
	default:
		fmt.Fprintln(r.w, r.dim.Sprintf("[%s] %s", ev.Engine, ev.Status))
	}
}

// Changed prints a note comparing a fingerprint with the one recorded for
// the previous identical query. An empty previous fingerprint prints nothing.
func (r *Reporter) Changed(previous, current string, at time.Time) {
	if previous == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	when := at.Local().Format("2006-01-02 15:04")
	if previous == current {
		fmt.Fprintln(r.w, r.dim.Sprintf("results unchanged since %s", when))
		return
	}
	fmt.Fprintln(r.w, r.warn.Sprintf("results changed since %s", when))
}
