// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/skill-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintMatchResult outputs a human-readable summary of one job's match.
func (p *Printer) PrintMatchResult(job *types.JobRecord, result *types.JobMatchResult) {
	if result == nil {
		return
	}

	var sb strings.Builder

	title := result.JobID
	if job != nil && job.Title != "" {
		title = job.Title
	}
	sb.WriteString(fmt.Sprintf("Job:        %s\n", title))
	sb.WriteString(fmt.Sprintf("Overall:    %.1f%%\n", result.OverallMatch*100))
	sb.WriteString(fmt.Sprintf("Confidence: %s (%.2f)\n", result.OverallConfidence.Level, result.OverallConfidence.Score))
	if !result.SkillsExtracted {
		sb.WriteString("Note:       no skills extracted from this job\n")
	}
	sb.WriteString("\n")

	for _, b := range types.AllBuckets() {
		br, ok := result.BucketResults[b]
		if !ok {
			continue
		}
		line := fmt.Sprintf("  %-17s %5.1f%%  w=%.2f", b, br.MatchPercentage*100, br.Weight)
		switch br.Outcome {
		case types.OutcomeNoSkills:
			line += "  (no skills)"
		case types.OutcomeServiceFailed:
			line += "  (service failed)"
		}
		sb.WriteString(line + "\n")
	}

	p.printBox("MATCH RESULT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBatchSummary outputs the best-scoring jobs of a batch run, plus counts
// of skipped jobs and degraded comparisons.
func (p *Printer) PrintBatchSummary(results []*types.JobMatchResult) {
	if len(results) == 0 {
		return
	}

	ranked := make([]*types.JobMatchResult, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].OverallMatch > ranked[j].OverallMatch
	})

	skipped := 0
	failed := 0
	for _, r := range results {
		if r.Skipped {
			skipped++
		}
		for _, br := range r.BucketResults {
			if br.Outcome == types.OutcomeServiceFailed {
				failed++
				break
			}
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Jobs matched: %d (%d skipped)\n", len(results)-skipped, skipped))
	if failed > 0 {
		sb.WriteString(fmt.Sprintf("Jobs with degraded buckets: %d\n", failed))
	}
	sb.WriteString("\n")

	count := min(len(ranked), maxItemsToShow)
	for i := 0; i < count; i++ {
		r := ranked[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, r.JobID))
		sb.WriteString(fmt.Sprintf("    Match: %.1f%%  Confidence: %s", r.OverallMatch*100, r.OverallConfidence.Level))
		if r.Skipped {
			sb.WriteString("  (skipped)")
		}
		sb.WriteString("\n")
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(ranked) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more jobs", len(ranked)-maxItemsToShow))
	}

	p.printBox("BATCH SUMMARY", sb.String())
}

// PrintCacheStats outputs comparison cache effectiveness for the run.
func (p *Printer) PrintCacheStats(hits, misses int64, entries int) {
	var sb strings.Builder
	total := hits + misses
	sb.WriteString(fmt.Sprintf("Entries:  %d\n", entries))
	sb.WriteString(fmt.Sprintf("Hits:     %d\n", hits))
	sb.WriteString(fmt.Sprintf("Misses:   %d\n", misses))
	if total > 0 {
		sb.WriteString(fmt.Sprintf("Hit rate: %.1f%%", float64(hits)/float64(total)*100))
	} else {
		sb.WriteString("Hit rate: n/a")
	}

	p.printBox("COMPARISON CACHE", sb.String())
}

// PrintSkillBuckets outputs the extracted skill set grouped by bucket.
func (p *Printer) PrintSkillBuckets(title string, skills types.SkillSet) {
	if skills.Total() == 0 {
		p.printBox(title, "(no skills extracted)")
		return
	}

	var sb strings.Builder
	for _, b := range skills.Buckets() {
		list := skills[b]
		sb.WriteString(fmt.Sprintf("%s (%d):\n", b, len(list)))
		count := min(len(list), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", list[i]))
		}
		if len(list) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(list)-maxItemsToShow))
		}
	}

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}
