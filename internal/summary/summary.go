// internal/summary/summary.go

// Package summary computes aggregate statistics over rehydrated datasets.
package summary

import (
	"fmt"
	"io"
	"sort"

	"repo-miner/internal/model"
)

// topN is the size of the top-committers ranking.
const topN = 5

// CommitterCount is one entry in the top-committers ranking. A nil Author is
// the bucket for commits with no linked account; it counts like any other
// author.
type CommitterCount struct {
	Author  *string `json:"author"`
	Commits int     `json:"commits"`
}

// Report holds the three aggregate figures plus the counts they derive from.
type Report struct {
	TotalCommits  int              `json:"total_commits"`
	TopCommitters []CommitterCount `json:"top_committers"`
	TotalIssues   int              `json:"total_issues"`
	ClosedIssues  int              `json:"closed_issues"`
	CloseRatePct  float64          `json:"close_rate_pct"`
	AvgOpenDays   *float64         `json:"avg_open_days"`
}

// Summarize computes the report from already-rehydrated datasets. It does not
// mutate its inputs and performs no I/O.
func Summarize(commits []model.CommitRecord, issues []model.IssueRecord) Report {
	report := Report{
		TotalCommits:  len(commits),
		TopCommitters: topCommitters(commits),
		TotalIssues:   len(issues),
	}

	var durationSum, durationCount int
	for _, issue := range issues {
		if issue.State != "closed" {
			continue
		}
		report.ClosedIssues++
		if issue.OpenDurationDays != nil {
			durationSum += *issue.OpenDurationDays
			durationCount++
		}
	}

	// Close rate is defined as 0 over an empty issue set.
	if report.TotalIssues > 0 {
		report.CloseRatePct = 100 * float64(report.ClosedIssues) / float64(report.TotalIssues)
	}

	if durationCount > 0 {
		avg := float64(durationSum) / float64(durationCount)
		report.AvgOpenDays = &avg
	}

	return report
}

// topCommitters groups commits by author, counts, and returns at most topN
// entries sorted descending by count. Ties keep first-encountered order.
func topCommitters(commits []model.CommitRecord) []CommitterCount {
	index := make(map[string]int)
	var counts []CommitterCount

	for _, c := range commits {
		key := authorKey(c.Author)
		i, ok := index[key]
		if !ok {
			i = len(counts)
			index[key] = i
			counts = append(counts, CommitterCount{Author: c.Author})
		}
		counts[i].Commits++
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Commits > counts[j].Commits
	})

	if len(counts) > topN {
		counts = counts[:topN]
	}
	return counts
}

// authorKey distinguishes the nil-author bucket from any real author name,
// including the empty string.
func authorKey(author *string) string {
	if author == nil {
		return "\x00"
	}
	return "a:" + *author
}

// Render writes the report in the human-readable CLI form.
func (r Report) Render(w io.Writer) {
	fmt.Fprintf(w, "Commits analyzed: %d\n", r.TotalCommits)
	fmt.Fprintln(w, "Top committers:")
	if len(r.TopCommitters) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for i, c := range r.TopCommitters {
		name := "(unknown)"
		if c.Author != nil {
			name = *c.Author
		}
		fmt.Fprintf(w, "  %d. %s: %d commits\n", i+1, name, c.Commits)
	}

	fmt.Fprintf(w, "Issue close rate: %.1f%% (%d of %d closed)\n", r.CloseRatePct, r.ClosedIssues, r.TotalIssues)

	if r.AvgOpenDays != nil {
		fmt.Fprintf(w, "Average days to close: %.1f\n", *r.AvgOpenDays)
	} else {
		fmt.Fprintln(w, "Average days to close: no data")
	}
}
