// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// NetworkHandler handles relationship-graph requests.
type NetworkHandler struct {
	deps Dependencies
}

// NewNetworkHandler creates a new network handler.
func NewNetworkHandler(deps Dependencies) *NetworkHandler {
	return &NetworkHandler{deps: deps}
}

// HandleGetNetwork handles GET /network requests.
func (h *NetworkHandler) HandleGetNetwork(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_network"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	network, err := h.deps.Network(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	writeJSON(w, http.StatusOK, network)
}
