// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/42Prague/skillgenome/internal/domain/insight"
)

// roiRequest mirrors the OpenAPI schema for POST /simulate-roi.
type roiRequest struct {
	FromSkill     string `json:"from_skill"`
	ToSkill       string `json:"to_skill"`
	EmployeeCount int    `json:"employee_count"`
}

func (r roiRequest) validate() error {
	switch {
	case strings.TrimSpace(r.FromSkill) == "":
		return errors.New("missing from_skill")
	case strings.TrimSpace(r.ToSkill) == "":
		return errors.New("missing to_skill")
	case r.EmployeeCount <= 0:
		return errors.New("employee_count must be positive")
	}
	return nil
}

// ROIHandler handles reskilling what-if requests.
type ROIHandler struct {
	deps Dependencies
}

// NewROIHandler creates a new ROI handler.
func NewROIHandler(deps Dependencies) *ROIHandler {
	return &ROIHandler{deps: deps}
}

// HandleSimulateROI handles POST /simulate-roi requests.
func (h *ROIHandler) HandleSimulateROI(w http.ResponseWriter, r *http.Request) {
	const op = "api.simulate_roi"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req roiRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	simulation, err := h.deps.SimulateROI(r.Context(), req.FromSkill, req.ToSkill, req.EmployeeCount)
	switch {
	case err == nil:
	case errors.Is(err, insight.ErrUnknownSkill):
		writeError(w, http.StatusNotFound, "unknown_skill", Wrap(op, err))
		return
	case errors.Is(err, insight.ErrInvalidParameter):
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	writeJSON(w, http.StatusOK, simulation)
}
