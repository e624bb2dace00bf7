// internal/normalize/issues.go
package normalize

import (
	"time"

	"github.com/google/go-github/v62/github"

	"repo-miner/internal/model"
)

// Issues maps raw issue-or-pull-request items onto IssueRecords. Pull request
// items are excluded first, then the cap is applied to the issue-only
// sequence, so max genuine issues always come through when enough exist.
// State filtering happens upstream in the listing call.
func Issues(items []*github.Issue, max int) []model.IssueRecord {
	records := make([]model.IssueRecord, 0, len(items))
	for _, item := range items {
		if max > 0 && len(records) >= max {
			break
		}
		if item.IsPullRequest() {
			continue
		}

		rec := model.IssueRecord{
			ID:       item.GetID(),
			Number:   item.GetNumber(),
			Title:    item.GetTitle(),
			State:    item.GetState(),
			Comments: item.GetComments(),
		}
		if user := item.User; user != nil {
			rec.User = user.Login
		}
		if item.CreatedAt != nil {
			rec.CreatedAt = item.CreatedAt.Time
		}
		if item.ClosedAt != nil {
			closed := item.ClosedAt.Time
			rec.ClosedAt = &closed
		}
		rec.OpenDurationDays = openDurationDays(rec.CreatedAt, rec.ClosedAt)
		records = append(records, rec)
	}
	return records
}

// openDurationDays is the whole-day floor of closed minus created, with the
// fractional remainder discarded. Same-day close yields 0. A re-opened then
// re-closed issue uses only the current closed timestamp; no history is
// modeled. Missing endpoints or a closed timestamp before the created one
// yield nil.
func openDurationDays(created time.Time, closed *time.Time) *int {
	if created.IsZero() || closed == nil || closed.Before(created) {
		return nil
	}
	days := int(closed.Sub(created) / (24 * time.Hour))
	return &days
}
