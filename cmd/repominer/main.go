// cmd/repominer/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"repo-miner/internal/api"
	"repo-miner/internal/auth"
	"repo-miner/internal/config"
	"repo-miner/internal/dataset"
	custom_errors "repo-miner/internal/errors"
	"repo-miner/internal/github"
	"repo-miner/internal/miner"
	"repo-miner/internal/summary"
)

const usage = `Usage: repominer <command> [flags]

Commands:
  fetch-commits  --repo OWNER/NAME [--max N] --out PATH
  fetch-issues   --repo OWNER/NAME [--state all|open|closed] [--max N] --out PATH
  summarize      --commits PATH --issues PATH
  serve          --commits PATH --issues PATH [--addr HOST:PORT]`

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err == nil {
		return
	}

	var emptyErr *custom_errors.EmptyResultError
	var usageErr *usageError
	switch {
	case errors.As(err, &emptyErr):
		// Empty-but-successful fetch: explicit notice, nonzero exit so
		// automation can detect it, no output file written.
		fmt.Fprintf(os.Stderr, "No data found: %v\n", err)
		os.Exit(1)
	case errors.As(err, &usageErr):
		fmt.Fprintf(os.Stderr, "%v\n\n%s\n", err, usage)
		os.Exit(2)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

func run(args []string, stdout io.Writer) error {
	// 1. Initialize structured logger
	logLevel := new(slog.LevelVar)
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	// 2. Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	setLogLevel(cfg.LogLevel, logLevel)

	// 3. Setup context for interruption
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// 4. Dispatch to the selected subcommand
	if len(args) == 0 {
		return &usageError{msg: "a command is required"}
	}
	switch args[0] {
	case "fetch-commits":
		return runFetchCommits(ctx, args[1:], cfg, logger, stdout)
	case "fetch-issues":
		return runFetchIssues(ctx, args[1:], cfg, logger, stdout)
	case "summarize":
		return runSummarize(args[1:], stdout)
	case "serve":
		return runServe(ctx, args[1:], cfg, logger, stdout)
	default:
		return &usageError{msg: fmt.Sprintf("unknown command %q", args[0])}
	}
}

func runFetchCommits(ctx context.Context, args []string, cfg *config.Config, logger *slog.Logger, stdout io.Writer) error {
	fs := pflag.NewFlagSet("fetch-commits", pflag.ContinueOnError)
	repo := fs.String("repo", "", "Repository in owner/name format")
	max := fs.Int("max", 0, "Max number of commits to fetch")
	out := fs.String("out", "", "Path to output commits CSV")
	if err := fs.Parse(args); err != nil {
		return &usageError{msg: err.Error()}
	}
	if *repo == "" || *out == "" {
		return &usageError{msg: "fetch-commits requires --repo and --out"}
	}

	m, err := newMiner(cfg, logger)
	if err != nil {
		return err
	}

	records, err := m.FetchCommits(ctx, *repo, *max)
	if err != nil {
		return err
	}

	if err := dataset.WriteCommits(*out, records); err != nil {
		return fmt.Errorf("failed to write commits CSV: %w", err)
	}
	fmt.Fprintf(stdout, "Saved %d commits to %s\n", len(records), *out)
	return nil
}

func runFetchIssues(ctx context.Context, args []string, cfg *config.Config, logger *slog.Logger, stdout io.Writer) error {
	fs := pflag.NewFlagSet("fetch-issues", pflag.ContinueOnError)
	repo := fs.String("repo", "", "Repository in owner/name format")
	state := fs.String("state", "all", "Filter issues by state (all, open or closed)")
	max := fs.Int("max", 0, "Max number of issues to fetch")
	out := fs.String("out", "", "Path to output issues CSV")
	if err := fs.Parse(args); err != nil {
		return &usageError{msg: err.Error()}
	}
	if *repo == "" || *out == "" {
		return &usageError{msg: "fetch-issues requires --repo and --out"}
	}
	if *state != "all" && *state != "open" && *state != "closed" {
		return &usageError{msg: fmt.Sprintf("invalid --state %q, expected all, open or closed", *state)}
	}

	m, err := newMiner(cfg, logger)
	if err != nil {
		return err
	}

	records, err := m.FetchIssues(ctx, *repo, *state, *max)
	if err != nil {
		return err
	}

	if err := dataset.WriteIssues(*out, records); err != nil {
		return fmt.Errorf("failed to write issues CSV: %w", err)
	}
	fmt.Fprintf(stdout, "Saved %d issues to %s\n", len(records), *out)
	return nil
}

func runSummarize(args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet("summarize", pflag.ContinueOnError)
	commitsPath := fs.String("commits", "", "Path to commits CSV")
	issuesPath := fs.String("issues", "", "Path to issues CSV")
	if err := fs.Parse(args); err != nil {
		return &usageError{msg: err.Error()}
	}
	if *commitsPath == "" || *issuesPath == "" {
		return &usageError{msg: "summarize requires --commits and --issues"}
	}

	commits, err := dataset.ReadCommits(*commitsPath)
	if err != nil {
		return fmt.Errorf("failed to read commits CSV: %w", err)
	}
	issues, err := dataset.ReadIssues(*issuesPath)
	if err != nil {
		return fmt.Errorf("failed to read issues CSV: %w", err)
	}

	summary.Summarize(commits, issues).Render(stdout)
	return nil
}

func runServe(ctx context.Context, args []string, cfg *config.Config, logger *slog.Logger, stdout io.Writer) error {
	fs := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	commitsPath := fs.String("commits", "", "Path to commits CSV")
	issuesPath := fs.String("issues", "", "Path to issues CSV")
	addr := fs.String("addr", cfg.HTTPAddr, "Listen address")
	if err := fs.Parse(args); err != nil {
		return &usageError{msg: err.Error()}
	}
	if *commitsPath == "" || *issuesPath == "" {
		return &usageError{msg: "serve requires --commits and --issues"}
	}

	commits, err := dataset.ReadCommits(*commitsPath)
	if err != nil {
		return fmt.Errorf("failed to read commits CSV: %w", err)
	}
	issues, err := dataset.ReadIssues(*issuesPath)
	if err != nil {
		return fmt.Errorf("failed to read issues CSV: %w", err)
	}

	srv := &http.Server{
		Addr:    *addr,
		Handler: api.NewRouter(commits, issues, logger),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Serving datasets", "addr", *addr, "commits", len(commits), "issues", len(issues))
		errCh <- srv.ListenAndServe()
	}()
	fmt.Fprintf(stdout, "Serving on %s\n", *addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newMiner resolves a token through the configured credential chain and wires
// up the GitHub client. Token resolution happens per invocation; exhaustion
// of the chain is a hard failure.
func newMiner(cfg *config.Config, logger *slog.Logger) (*miner.Miner, error) {
	token, err := auth.Resolve(cfg.CredentialChain()...)
	if err != nil {
		return nil, err
	}

	ghClient, err := github.NewClient(token, cfg.GithubAPIURL, logger)
	if err != nil {
		return nil, err
	}
	return miner.NewMiner(ghClient, logger), nil
}

func setLogLevel(level string, v *slog.LevelVar) {
	switch level {
	case "debug":
		v.Set(slog.LevelDebug)
	case "warn":
		v.Set(slog.LevelWarn)
	case "error":
		v.Set(slog.LevelError)
	default:
		v.Set(slog.LevelInfo)
	}
}
