// internal/github/client.go
package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	custom_errors "repo-miner/internal/errors"
)

const perPage = 100 // Max per page

// Client is a wrapper around the go-github client.
type Client struct {
	gh     *github.Client
	logger *slog.Logger
}

// NewClient creates and configures a new Client instance. The provided token
// is used to create an authenticated http.Client. A non-empty baseURL points
// the client at an alternative API endpoint (GitHub Enterprise, test servers).
func NewClient(token, baseURL string, logger *slog.Logger) (*Client, error) {
	ctx := context.Background()
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)

	gh := github.NewClient(tc)
	if baseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API base URL %q: %w", baseURL, err)
		}
		gh.BaseURL = u
	}

	return &Client{
		gh:     gh,
		logger: logger,
	}, nil
}

// GetRepository fetches repository details, primarily as an access check
// before listing. Not-found and not-permitted responses are translated into a
// RepositoryAccessError carrying the attempted identifier.
func (c *Client) GetRepository(ctx context.Context, owner, name string) (*github.Repository, error) {
	repo, _, err := c.gh.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, translateAccessErr(owner, name, err)
	}
	return repo, nil
}

// ListCommits fetches commits for a repository in upstream pagination order
// (newest first). It handles API pagination transparently and stops fetching
// further pages once max raw items have been collected (max <= 0 means all).
func (c *Client) ListCommits(ctx context.Context, owner, name string, max int) ([]*github.RepositoryCommit, error) {
	var all []*github.RepositoryCommit

	opts := &github.CommitsListOptions{
		ListOptions: github.ListOptions{PerPage: pageSize(max)},
	}

	for {
		c.logger.Debug("Fetching commits page", "owner", owner, "repo", name, "page", opts.Page)

		commits, resp, err := c.gh.Repositories.ListCommits(ctx, owner, name, opts)
		if err != nil {
			return nil, translateAccessErr(owner, name, err)
		}

		all = append(all, commits...)

		if resp.NextPage == 0 || (max > 0 && len(all) >= max) {
			break
		}
		opts.Page = resp.NextPage
	}

	return all, nil
}

// ListIssues fetches issues for a repository, filtered by state upstream.
// Pull requests come back interleaved with issues from this endpoint; they are
// returned as-is and excluded later by the normalizer, so the early pagination
// stop counts genuine issues only (skipped pull requests never consume the
// cap budget).
func (c *Client) ListIssues(ctx context.Context, owner, name, state string, max int) ([]*github.Issue, error) {
	var all []*github.Issue
	issueCount := 0

	opts := &github.IssueListByRepoOptions{
		State:       state,
		ListOptions: github.ListOptions{PerPage: pageSize(max)},
	}

	for {
		c.logger.Debug("Fetching issues page", "owner", owner, "repo", name, "state", state, "page", opts.Page)

		issues, resp, err := c.gh.Issues.ListByRepo(ctx, owner, name, opts)
		if err != nil {
			return nil, translateAccessErr(owner, name, err)
		}

		for _, issue := range issues {
			all = append(all, issue)
			if !issue.IsPullRequest() {
				issueCount++
			}
		}

		if resp.NextPage == 0 || (max > 0 && issueCount >= max) {
			break
		}
		opts.Page = resp.NextPage
	}

	return all, nil
}

// translateAccessErr maps upstream not-found/not-permitted responses onto the
// repository access taxonomy; everything else passes through unchanged.
func translateAccessErr(owner, name string, err error) error {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		switch ghErr.Response.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
			return &custom_errors.RepositoryAccessError{
				Repo: owner + "/" + name,
				Err:  err,
			}
		}
	}
	return err
}

func pageSize(max int) int {
	if max > 0 && max < perPage {
		return max
	}
	return perPage
}
