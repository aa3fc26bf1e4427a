// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"

	"github.com/42Prague/skillgenome/internal/domain/cluster"
)

// GenomeHandler handles clustered skill map requests.
type GenomeHandler struct {
	deps Dependencies
}

// NewGenomeHandler creates a new genome handler.
func NewGenomeHandler(deps Dependencies) *GenomeHandler {
	return &GenomeHandler{deps: deps}
}

// HandleGetGenome handles GET /genome?method=density|hierarchical requests.
// An omitted method selects the density strategy.
func (h *GenomeHandler) HandleGetGenome(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_genome"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	genome, err := h.deps.Genome(r.Context(), r.URL.Query().Get("method"))
	switch {
	case err == nil:
	case errors.Is(err, cluster.ErrUnknownMethod):
		writeError(w, http.StatusBadRequest, "unknown_method", WrapKind(op, ErrBadRequest, err))
		return
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	writeJSON(w, http.StatusOK, genome)
}
