// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// InsightsHandler handles strategic bundle requests.
type InsightsHandler struct {
	deps Dependencies
}

// NewInsightsHandler creates a new insights handler.
func NewInsightsHandler(deps Dependencies) *InsightsHandler {
	return &InsightsHandler{deps: deps}
}

// HandleGetInsights handles GET /insights requests.
func (h *InsightsHandler) HandleGetInsights(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_insights"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	insights, err := h.deps.Insights(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	writeJSON(w, http.StatusOK, insights)
}
