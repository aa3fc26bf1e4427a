// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	service "github.com/42Prague/skillgenome/internal/app"
)

// SkillHandler handles per-skill drill-down requests.
type SkillHandler struct {
	deps Dependencies
}

// NewSkillHandler creates a new skill handler.
func NewSkillHandler(deps Dependencies) *SkillHandler {
	return &SkillHandler{deps: deps}
}

// HandleGetSkill handles GET /skill/{name} requests. The name segment is
// URL-decoded and canonicalized before lookup, so "/skill/Amazon%20EKS"
// resolves the skill "amazon eks".
func (h *SkillHandler) HandleGetSkill(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_skill"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	raw := strings.TrimPrefix(r.URL.Path, "/skill/")
	name, err := url.PathUnescape(raw)
	if err != nil || strings.TrimSpace(name) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	detail, err := h.deps.Skill(r.Context(), name)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrSkillNotFound):
		writeError(w, http.StatusNotFound, "unknown_skill", Wrap(op, err))
		return
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	writeJSON(w, http.StatusOK, detail)
}
