// internal/model/models.go
package model

import "time"

// CommitRecord is one normalized commit row. Author and Email are both nil
// when the upstream commit has no linked account; Date is the author-committed
// time, not the push time.
type CommitRecord struct {
	SHA     string     `json:"sha"`
	Author  *string    `json:"author"`
	Email   *string    `json:"email"`
	Date    *time.Time `json:"date"`
	Message string     `json:"message"`
}

// IssueRecord is one normalized issue row. Pull requests are never
// materialized as IssueRecords even though they share the upstream id/number
// space. OpenDurationDays is set only when both endpoint timestamps are known.
type IssueRecord struct {
	ID               int64      `json:"id"`
	Number           int        `json:"number"`
	Title            string     `json:"title"`
	User             *string    `json:"user"`
	State            string     `json:"state"`
	CreatedAt        time.Time  `json:"created_at"`
	ClosedAt         *time.Time `json:"closed_at"`
	OpenDurationDays *int       `json:"open_duration_days"`
	Comments         int        `json:"comments"`
}
