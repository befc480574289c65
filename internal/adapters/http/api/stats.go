package api

import "net/http"

// StatsProvider exposes the service's runtime counters (lifecycle state,
// database path, profile cache occupancy) for operational inspection.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// StatsHandler serves the scoring service's runtime stats.
type StatsHandler struct {
	statsProvider StatsProvider
}

// NewStatsHandler creates a stats handler backed by the given provider.
func NewStatsHandler(statsProvider StatsProvider) *StatsHandler {
	return &StatsHandler{statsProvider: statsProvider}
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.statsProvider.GetStats())
}
