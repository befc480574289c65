// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gitscout/gitscout/internal/domain/model"
)

// comparisonRequest mirrors the JSON schema for POST /comparisons.
type comparisonRequest struct {
	CandidateUsername string `json:"candidate_username"`
	ProfileID         string `json:"standard_profile_id"`
	OwnerID           string `json:"owner_id"`
}

func (c comparisonRequest) validate() error {
	switch {
	case strings.TrimSpace(c.CandidateUsername) == "":
		return errors.New("missing candidate_username")
	case strings.TrimSpace(c.ProfileID) == "":
		return errors.New("missing standard_profile_id")
	case strings.TrimSpace(c.OwnerID) == "":
		return errors.New("missing owner_id")
	}
	return nil
}

// ComparisonsHandler handles candidate comparison requests.
type ComparisonsHandler struct {
	deps ComparisonDependencies
}

// NewComparisonsHandler creates a new comparisons handler.
func NewComparisonsHandler(deps ComparisonDependencies) *ComparisonsHandler {
	return &ComparisonsHandler{deps: deps}
}

// HandleComparisons handles POST /comparisons and GET /comparisons?owner_id=X.
func (h *ComparisonsHandler) HandleComparisons(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.create(w, r)
	case http.MethodGet:
		h.list(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *ComparisonsHandler) create(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_comparison"

	var req comparisonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	record, err := h.deps.CreateComparison(r.Context(), req.CandidateUsername, req.ProfileID, req.OwnerID)
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (h *ComparisonsHandler) list(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_comparisons"

	ownerID := r.URL.Query().Get("owner_id")
	if ownerID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	records, err := h.deps.ListComparisons(r.Context(), ownerID)
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	if records == nil {
		records = []model.ComparisonRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

// HandleComparisonByID handles GET and DELETE on /comparisons/{id}.
func (h *ComparisonsHandler) HandleComparisonByID(w http.ResponseWriter, r *http.Request) {
	const op = "api.comparison_by_id"

	id := strings.TrimPrefix(r.URL.Path, "/comparisons/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	switch r.Method {
	case http.MethodGet:
		view, err := h.deps.GetComparison(r.Context(), id)
		if err != nil {
			writeDomainError(w, Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusOK, view)

	case http.MethodDelete:
		if err := h.deps.DeleteComparison(r.Context(), id); err != nil {
			writeDomainError(w, Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})

	default:
		http.NotFound(w, r)
	}
}
