// internal/api/handler.go
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"repo-miner/internal/model"
	"repo-miner/internal/summary"
)

// Handler serves previously fetched datasets and their summary. The datasets
// are rehydrated once at startup; nothing is re-fetched per request.
type Handler struct {
	commits []model.CommitRecord
	issues  []model.IssueRecord
	report  summary.Report
	logger  *slog.Logger
}

// NewRouter creates and configures a new chi router with all API routes.
func NewRouter(commits []model.CommitRecord, issues []model.IssueRecord, logger *slog.Logger) http.Handler {
	h := &Handler{
		commits: commits,
		issues:  issues,
		report:  summary.Summarize(commits, issues),
		logger:  logger,
	}

	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// API Routes
	r.Get("/health", h.healthCheck)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/commits", h.getCommits)
		r.Get("/issues", h.getIssues)
		r.Get("/summary", h.getSummary)
	})

	return r
}

// healthCheck is a simple health endpoint.
func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// getCommits returns the loaded commit dataset.
// GET /v1/commits
func (h *Handler) getCommits(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.commits)
}

// getIssues returns the loaded issue dataset.
// GET /v1/issues
func (h *Handler) getIssues(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.issues)
}

// getSummary returns the aggregate report over both datasets.
// GET /v1/summary
func (h *Handler) getSummary(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.report)
}

func respondWithJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
