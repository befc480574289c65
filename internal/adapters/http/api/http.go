// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gitscout/gitscout/internal/adapters/github"
	"github.com/gitscout/gitscout/internal/adapters/repository"
	"github.com/gitscout/gitscout/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ProfileDependencies
	ComparisonDependencies
}

// ProfileDependencies covers standard profile CRUD.
type ProfileDependencies interface {
	CreateProfile(ctx context.Context, profile model.StandardProfile) (model.StandardProfile, error)
	GetProfile(ctx context.Context, id string) (model.StandardProfile, error)
	ListProfiles(ctx context.Context, ownerID string) ([]model.StandardProfile, error)
	UpdateProfile(ctx context.Context, profile model.StandardProfile) (model.StandardProfile, error)
	DeleteProfile(ctx context.Context, id string) error
}

// ComparisonDependencies covers candidate comparison operations.
type ComparisonDependencies interface {
	CreateComparison(ctx context.Context, username, profileID, ownerID string) (model.ComparisonRecord, error)
	GetComparison(ctx context.Context, id string) (model.ComparisonView, error)
	ListComparisons(ctx context.Context, ownerID string) ([]model.ComparisonRecord, error)
	DeleteComparison(ctx context.Context, id string) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	profilesHandler    *ProfilesHandler
	comparisonsHandler *ComparisonsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		profilesHandler:    NewProfilesHandler(deps),
		comparisonsHandler: NewComparisonsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/profiles", MetricsMiddleware(s.profilesHandler.HandleProfiles, "profiles"))
	mux.HandleFunc("/profiles/", MetricsMiddleware(s.profilesHandler.HandleProfileByID, "profile"))
	mux.HandleFunc("/comparisons", MetricsMiddleware(s.comparisonsHandler.HandleComparisons, "comparisons"))
	mux.HandleFunc("/comparisons/", MetricsMiddleware(s.comparisonsHandler.HandleComparisonByID, "comparison"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates domain and upstream error kinds to HTTP.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrValidation):
		writeError(w, http.StatusBadRequest, "validation_failed", err)
	case errors.Is(err, github.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "github_user_not_found", err)
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, github.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "rate_limited", err)
	case errors.Is(err, github.ErrUpstream):
		writeError(w, http.StatusBadGateway, "upstream_error", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
