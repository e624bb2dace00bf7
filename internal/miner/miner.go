// internal/miner/miner.go
package miner

import (
	"context"
	"log/slog"
	"strings"

	custom_errors "repo-miner/internal/errors"
	"repo-miner/internal/github"
	"repo-miner/internal/model"
	"repo-miner/internal/normalize"
)

// RepoIdentifier holds the owner and name of a repository.
type RepoIdentifier struct {
	Owner string
	Name  string
}

// Miner orchestrates one fetch invocation: access check, paginated listing,
// normalization. Each invocation produces an independent dataset; nothing is
// cached across calls.
type Miner struct {
	ghClient *github.Client
	logger   *slog.Logger
}

// NewMiner creates a new Miner instance.
func NewMiner(ghClient *github.Client, logger *slog.Logger) *Miner {
	return &Miner{
		ghClient: ghClient,
		logger:   logger,
	}
}

// FetchCommits fetches and normalizes up to max commits for the repository
// given as 'owner/name'. A genuinely empty upstream listing is reported as an
// EmptyResultError, never as a silent empty dataset.
func (m *Miner) FetchCommits(ctx context.Context, repo string, max int) ([]model.CommitRecord, error) {
	id, err := ParseRepoIdentifier(repo)
	if err != nil {
		return nil, err
	}
	logger := m.logger.With("owner", id.Owner, "repo", id.Name)

	if err := m.checkAccess(ctx, logger, id); err != nil {
		return nil, err
	}

	items, err := m.ghClient.ListCommits(ctx, id.Owner, id.Name, max)
	if err != nil {
		return nil, err
	}

	records := normalize.Commits(items, max)
	if len(records) == 0 {
		return nil, &custom_errors.EmptyResultError{Kind: "commits"}
	}

	logger.Info("Fetched commits", "count", len(records))
	return records, nil
}

// FetchIssues fetches and normalizes up to max issues for the repository,
// filtered by state ('all', 'open' or 'closed') in the upstream listing call.
// Pull requests are excluded before the cap is applied.
func (m *Miner) FetchIssues(ctx context.Context, repo, state string, max int) ([]model.IssueRecord, error) {
	id, err := ParseRepoIdentifier(repo)
	if err != nil {
		return nil, err
	}
	logger := m.logger.With("owner", id.Owner, "repo", id.Name)

	if err := m.checkAccess(ctx, logger, id); err != nil {
		return nil, err
	}

	items, err := m.ghClient.ListIssues(ctx, id.Owner, id.Name, state, max)
	if err != nil {
		return nil, err
	}

	records := normalize.Issues(items, max)
	if len(records) == 0 {
		return nil, &custom_errors.EmptyResultError{Kind: "issues"}
	}

	logger.Info("Fetched issues", "state", state, "count", len(records))
	return records, nil
}

// checkAccess resolves the repository before listing so access failures carry
// the attempted identifier instead of surfacing mid-pagination.
func (m *Miner) checkAccess(ctx context.Context, logger *slog.Logger, id RepoIdentifier) error {
	ghRepo, err := m.ghClient.GetRepository(ctx, id.Owner, id.Name)
	if err != nil {
		return err
	}
	logger.Debug("Repository resolved",
		"stars", ghRepo.GetStargazersCount(),
		"forks", ghRepo.GetForksCount(),
		"language", ghRepo.GetLanguage(),
		"open_issues", ghRepo.GetOpenIssuesCount(),
	)
	return nil
}

// ParseRepoIdentifier splits an 'owner/name' argument.
func ParseRepoIdentifier(repo string) (RepoIdentifier, error) {
	parts := strings.Split(repo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return RepoIdentifier{}, &custom_errors.ErrInvalidRepoFormat{Repo: repo}
	}
	return RepoIdentifier{Owner: parts[0], Name: parts[1]}, nil
}
