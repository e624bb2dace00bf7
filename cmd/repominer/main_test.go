// cmd/repominer/main_test.go
package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repo-miner/internal/dataset"
	custom_errors "repo-miner/internal/errors"
	"repo-miner/internal/model"
)

func TestRun_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no command", args: nil},
		{name: "unknown command", args: []string{"frobnicate"}},
		{name: "fetch-commits without flags", args: []string{"fetch-commits"}},
		{name: "fetch-commits without out", args: []string{"fetch-commits", "--repo", "o/r"}},
		{name: "fetch-issues without repo", args: []string{"fetch-issues", "--out", "x.csv"}},
		{name: "fetch-issues with bad state", args: []string{"fetch-issues", "--repo", "o/r", "--state", "merged", "--out", "x.csv"}},
		{name: "summarize without paths", args: []string{"summarize"}},
		{name: "serve without paths", args: []string{"serve"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			err := run(tc.args, &out)

			var usageErr *usageError
			assert.ErrorAs(t, err, &usageErr)
		})
	}
}

func TestRun_Summarize(t *testing.T) {
	dir := t.TempDir()
	commitsPath := filepath.Join(dir, "commits.csv")
	issuesPath := filepath.Join(dir, "issues.csv")

	alice := "Alice"
	created := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	closed := created
	zero := 0

	require.NoError(t, dataset.WriteCommits(commitsPath, []model.CommitRecord{
		{SHA: "sha1", Author: &alice, Message: "feat"},
		{SHA: "sha2", Author: &alice, Message: "fix"},
	}))
	require.NoError(t, dataset.WriteIssues(issuesPath, []model.IssueRecord{
		{ID: 1, Number: 1, Title: "bug", State: "closed", CreatedAt: created, ClosedAt: &closed, OpenDurationDays: &zero, Comments: 0},
	}))

	var out bytes.Buffer
	err := run([]string{"summarize", "--commits", commitsPath, "--issues", issuesPath}, &out)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "1. Alice: 2 commits")
	assert.Contains(t, out.String(), "Issue close rate: 100.0% (1 of 1 closed)")
	assert.Contains(t, out.String(), "Average days to close: 0.0")
}

func TestRun_FetchCommits(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/test-owner/test-repo", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"id": 123, "owner": {"login": "test-owner"}, "name": "test-repo"}`)
	})
	mux.HandleFunc("/repos/test-owner/test-repo/commits", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `[
			{"sha": "abc", "author": {"name": "tester", "email": "t@t.com"}, "commit": {"author": {"date": "2024-01-01T12:00:00Z"}, "message": "feat: new feature"}}
		]`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	t.Setenv("GITHUB_TOKEN", "fake-token")
	t.Setenv("GITHUB_API_URL", server.URL)

	outPath := filepath.Join(t.TempDir(), "commits.csv")
	var out bytes.Buffer
	err := run([]string{"fetch-commits", "--repo", "test-owner/test-repo", "--out", outPath}, &out)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Saved 1 commits to "+outPath)

	records, err := dataset.ReadCommits(outPath)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "abc", records[0].SHA)
	require.NotNil(t, records[0].Author)
	assert.Equal(t, "tester", *records[0].Author)
}

func TestRun_FetchIssues_EmptyResult(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/test-owner/test-repo", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"id": 123, "owner": {"login": "test-owner"}, "name": "test-repo"}`)
	})
	mux.HandleFunc("/repos/test-owner/test-repo/issues", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `[]`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	t.Setenv("GITHUB_TOKEN", "fake-token")
	t.Setenv("GITHUB_API_URL", server.URL)

	outPath := filepath.Join(t.TempDir(), "issues.csv")
	var out bytes.Buffer
	err := run([]string{"fetch-issues", "--repo", "test-owner/test-repo", "--out", outPath}, &out)

	var emptyErr *custom_errors.EmptyResultError
	require.ErrorAs(t, err, &emptyErr)

	_, statErr := os.Stat(outPath)
	assert.True(t, os.IsNotExist(statErr), "no file is written on an empty fetch")
}

func TestRun_FetchCommits_NoToken(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("DOTENV_PATH", filepath.Join(t.TempDir(), "absent.env"))

	var out bytes.Buffer
	err := run([]string{"fetch-commits", "--repo", "o/r", "--out", filepath.Join(t.TempDir(), "c.csv")}, &out)

	var authErr *custom_errors.AuthenticationError
	assert.ErrorAs(t, err, &authErr)
}
