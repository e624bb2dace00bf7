// internal/dataset/dataset.go

// Package dataset persists normalized records to flat CSV files and
// rehydrates them. Nullable fields serialize as empty cells; timestamps use
// RFC3339 so they sort textually and round-trip losslessly.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"repo-miner/internal/model"
)

const timeLayout = time.RFC3339

// CommitColumns is the fixed header of a commit dataset.
var CommitColumns = []string{"sha", "author", "email", "date", "message"}

// IssueColumns is the fixed header of an issue dataset.
var IssueColumns = []string{"id", "number", "title", "user", "state", "created_at", "closed_at", "open_duration_days", "comments"}

// WriteCommits writes a commit dataset to path. The header row is written
// even for a zero-row dataset, keeping the schema intact.
func WriteCommits(path string, records []model.CommitRecord) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.SHA,
			stringCell(r.Author),
			stringCell(r.Email),
			timeCell(r.Date),
			r.Message,
		})
	}
	return writeFile(path, CommitColumns, rows)
}

// ReadCommits rehydrates a commit dataset written by WriteCommits.
func ReadCommits(path string) ([]model.CommitRecord, error) {
	rows, err := readFile(path, CommitColumns)
	if err != nil {
		return nil, err
	}

	records := make([]model.CommitRecord, 0, len(rows))
	for _, row := range rows {
		date, err := timeValue(row[3])
		if err != nil {
			return nil, fmt.Errorf("%s: bad date %q: %w", path, row[3], err)
		}
		records = append(records, model.CommitRecord{
			SHA:     row[0],
			Author:  stringValue(row[1]),
			Email:   stringValue(row[2]),
			Date:    date,
			Message: row[4],
		})
	}
	return records, nil
}

// WriteIssues writes an issue dataset to path, header included even when
// there are no rows.
func WriteIssues(path string, records []model.IssueRecord) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10),
			strconv.Itoa(r.Number),
			r.Title,
			stringCell(r.User),
			r.State,
			r.CreatedAt.Format(timeLayout),
			timeCell(r.ClosedAt),
			intCell(r.OpenDurationDays),
			strconv.Itoa(r.Comments),
		})
	}
	return writeFile(path, IssueColumns, rows)
}

// ReadIssues rehydrates an issue dataset written by WriteIssues.
func ReadIssues(path string) ([]model.IssueRecord, error) {
	rows, err := readFile(path, IssueColumns)
	if err != nil {
		return nil, err
	}

	records := make([]model.IssueRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := issueFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func issueFromRow(row []string) (model.IssueRecord, error) {
	id, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return model.IssueRecord{}, fmt.Errorf("bad id %q: %w", row[0], err)
	}
	number, err := strconv.Atoi(row[1])
	if err != nil {
		return model.IssueRecord{}, fmt.Errorf("bad number %q: %w", row[1], err)
	}
	createdAt, err := time.Parse(timeLayout, row[5])
	if err != nil {
		return model.IssueRecord{}, fmt.Errorf("bad created_at %q: %w", row[5], err)
	}
	closedAt, err := timeValue(row[6])
	if err != nil {
		return model.IssueRecord{}, fmt.Errorf("bad closed_at %q: %w", row[6], err)
	}
	duration, err := intValue(row[7])
	if err != nil {
		return model.IssueRecord{}, fmt.Errorf("bad open_duration_days %q: %w", row[7], err)
	}
	comments, err := strconv.Atoi(row[8])
	if err != nil {
		return model.IssueRecord{}, fmt.Errorf("bad comments %q: %w", row[8], err)
	}

	return model.IssueRecord{
		ID:               id,
		Number:           number,
		Title:            row[2],
		User:             stringValue(row[3]),
		State:            row[4],
		CreatedAt:        createdAt,
		ClosedAt:         closedAt,
		OpenDurationDays: duration,
		Comments:         comments,
	}, nil
}

func writeFile(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// readFile reads all data rows, validating that the header matches the
// expected column set exactly. A header-only file is a valid zero-row
// dataset, not an error.
func readFile(path string, header []string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	got, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: missing header row", path)
	}
	if err != nil {
		return nil, err
	}
	if len(got) != len(header) {
		return nil, fmt.Errorf("%s: expected %d columns, got %d", path, len(header), len(got))
	}
	for i, col := range header {
		if got[i] != col {
			return nil, fmt.Errorf("%s: expected column %q at position %d, got %q", path, col, i, got[i])
		}
	}

	return r.ReadAll()
}

func stringCell(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func stringValue(cell string) *string {
	if cell == "" {
		return nil
	}
	return &cell
}

func timeCell(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(timeLayout)
}

func timeValue(cell string) (*time.Time, error) {
	if cell == "" {
		return nil, nil
	}
	t, err := time.Parse(timeLayout, cell)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func intCell(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func intValue(cell string) (*int, error) {
	if cell == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(cell)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
