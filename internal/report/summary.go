// Package report formats pipeline run results for the log.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// DomainSummary is one domain's outcome within a run.
type DomainSummary struct {
	Name        string
	Extracted   int
	Transformed int
	Loaded      int
	Status      string
	ErrMsg      string
}

// RunSummary aggregates one pipeline run.
type RunSummary struct {
	RunID     string
	StartedAt time.Time
	Duration  time.Duration
	Domains   []DomainSummary
}

// TotalLoaded sums loaded rows across domains.
func (s *RunSummary) TotalLoaded() int {
	total := 0
	for _, d := range s.Domains {
		total += d.Loaded
	}
	return total
}

// FormatRunSummary renders the post-run report.
func FormatRunSummary(s *RunSummary) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("pipeline run %s | %s\n", s.RunID, s.StartedAt.Format("2006-01-02 15:04:05")))
	b.WriteString(fmt.Sprintf("duration: %.2fs\n\n", s.Duration.Seconds()))

	for _, d := range s.Domains {
		line := fmt.Sprintf("  %-10s extracted=%s transformed=%s loaded=%s [%s]",
			d.Name,
			humanize.Comma(int64(d.Extracted)),
			humanize.Comma(int64(d.Transformed)),
			humanize.Comma(int64(d.Loaded)),
			d.Status)
		if d.ErrMsg != "" {
			line += " " + d.ErrMsg
		}
		b.WriteString(line + "\n")
	}

	b.WriteString(fmt.Sprintf("\ntotal rows loaded: %s\n", humanize.Comma(int64(s.TotalLoaded()))))
	return b.String()
}
