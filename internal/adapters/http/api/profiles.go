// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gitscout/gitscout/internal/domain/model"
)

// profileRequest mirrors the JSON schema for profile create and update.
type profileRequest struct {
	OwnerID     string               `json:"owner_id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Metrics     model.RequirementSet `json:"metrics"`
	Weights     map[string]float64   `json:"weights"`
}

func (p profileRequest) toModel() model.StandardProfile {
	return model.StandardProfile{
		OwnerID:     p.OwnerID,
		Name:        p.Name,
		Description: p.Description,
		Metrics:     p.Metrics,
		Weights:     p.Weights,
	}
}

// ProfilesHandler handles standard profile requests.
type ProfilesHandler struct {
	deps ProfileDependencies
}

// NewProfilesHandler creates a new profiles handler.
func NewProfilesHandler(deps ProfileDependencies) *ProfilesHandler {
	return &ProfilesHandler{deps: deps}
}

// HandleProfiles handles POST /profiles and GET /profiles?owner_id=X.
func (h *ProfilesHandler) HandleProfiles(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.create(w, r)
	case http.MethodGet:
		h.list(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *ProfilesHandler) create(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_profile"

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	created, err := h.deps.CreateProfile(r.Context(), req.toModel())
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ProfilesHandler) list(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_profiles"

	ownerID := r.URL.Query().Get("owner_id")
	if ownerID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	profiles, err := h.deps.ListProfiles(r.Context(), ownerID)
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	if profiles == nil {
		profiles = []model.StandardProfile{}
	}
	writeJSON(w, http.StatusOK, profiles)
}

// HandleProfileByID handles GET, PUT and DELETE on /profiles/{id}.
func (h *ProfilesHandler) HandleProfileByID(w http.ResponseWriter, r *http.Request) {
	const op = "api.profile_by_id"

	id := strings.TrimPrefix(r.URL.Path, "/profiles/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	switch r.Method {
	case http.MethodGet:
		profile, err := h.deps.GetProfile(r.Context(), id)
		if err != nil {
			writeDomainError(w, Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusOK, profile)

	case http.MethodPut:
		var req profileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		profile := req.toModel()
		profile.ID = id

		updated, err := h.deps.UpdateProfile(r.Context(), profile)
		if err != nil {
			writeDomainError(w, Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusOK, updated)

	case http.MethodDelete:
		if err := h.deps.DeleteProfile(r.Context(), id); err != nil {
			writeDomainError(w, Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})

	default:
		http.NotFound(w, r)
	}
}
