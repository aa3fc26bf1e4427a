// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// EvolutionHandler handles temporal landscape requests.
type EvolutionHandler struct {
	deps Dependencies
}

// NewEvolutionHandler creates a new evolution handler.
func NewEvolutionHandler(deps Dependencies) *EvolutionHandler {
	return &EvolutionHandler{deps: deps}
}

// HandleGetEvolution handles GET /evolution requests.
func (h *EvolutionHandler) HandleGetEvolution(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_evolution"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	evolution, err := h.deps.Evolution(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	writeJSON(w, http.StatusOK, evolution)
}
