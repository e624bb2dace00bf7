// internal/normalize/commits.go

// Package normalize turns raw GitHub API items into fixed-schema records.
// The functions here are pure transformations: no I/O, no mutation of their
// inputs, order preserved.
package normalize

import (
	"github.com/google/go-github/v62/github"

	"repo-miner/internal/model"
)

// Commits maps raw repository commits onto CommitRecords, preserving input
// order and truncating (not sampling) at max when max is positive. Author and
// Email stay nil together when the commit has no linked account; the date is
// the recorded authorship timestamp, not the upload time; the message is
// stored verbatim.
func Commits(items []*github.RepositoryCommit, max int) []model.CommitRecord {
	records := make([]model.CommitRecord, 0, len(items))
	for _, item := range items {
		if max > 0 && len(records) >= max {
			break
		}

		rec := model.CommitRecord{
			SHA:     item.GetSHA(),
			Message: item.GetCommit().GetMessage(),
		}
		if author := item.Author; author != nil {
			rec.Author = author.Name
			rec.Email = author.Email
		}
		if commitAuthor := item.GetCommit().GetAuthor(); commitAuthor != nil && commitAuthor.Date != nil {
			date := commitAuthor.Date.Time
			rec.Date = &date
		}
		records = append(records, rec)
	}
	return records
}
