// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	service "github.com/42Prague/skillgenome/internal/app"
	"github.com/42Prague/skillgenome/internal/domain/model"
)

// eventRequest mirrors the OpenAPI schema for reload batch items.
type eventRequest struct {
	EventID   string `json:"event_id"`
	PersonID  string `json:"person_id"`
	SkillName string `json:"skill_name"`
	Category  string `json:"category"`
	EventDate string `json:"event_date"`
	EventType string `json:"event_type"`
}

type reloadRequest struct {
	Events []eventRequest `json:"events"`
}

type reloadResponse struct {
	Status      string `json:"status"`
	Ingested    int    `json:"ingested"`
	Duplicates  int    `json:"duplicates"`
	TotalEvents int    `json:"total_events"`
	Skills      int    `json:"skills"`
	Employees   int    `json:"employees"`
}

func (e eventRequest) validate() error {
	switch {
	case strings.TrimSpace(e.EventID) == "":
		return errors.New("missing event_id")
	case strings.TrimSpace(e.PersonID) == "":
		return errors.New("missing person_id")
	case strings.TrimSpace(e.SkillName) == "":
		return errors.New("missing skill_name")
	case strings.TrimSpace(e.EventDate) == "":
		return errors.New("missing event_date")
	}
	if _, err := parseEventDate(e.EventDate); err != nil {
		return errors.New("invalid event_date; must be RFC3339 or YYYY-MM-DD")
	}
	if !model.EventType(e.EventType).Valid() {
		return errors.New("invalid event_type; must be acquired, certified, used, or expired")
	}
	return nil
}

// parseEventDate accepts full RFC3339 timestamps and bare dates.
func parseEventDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func (e eventRequest) toModel() model.SkillEvent {
	date, _ := parseEventDate(e.EventDate)
	return model.SkillEvent{
		EventID:   strings.TrimSpace(e.EventID),
		PersonID:  strings.TrimSpace(e.PersonID),
		SkillName: e.SkillName,
		Category:  strings.TrimSpace(e.Category),
		Date:      date,
		Type:      model.EventType(e.EventType),
	}
}

// ReloadHandler handles reload requests.
type ReloadHandler struct {
	deps Dependencies
}

// NewReloadHandler creates a new reload handler.
func NewReloadHandler(deps Dependencies) *ReloadHandler {
	return &ReloadHandler{deps: deps}
}

// HandleReload handles POST /reload requests. The batch is validated as a
// whole; a single malformed event rejects the request and leaves the
// previous snapshot published.
func (h *ReloadHandler) HandleReload(w http.ResponseWriter, r *http.Request) {
	const op = "api.reload"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req reloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	events := make([]model.SkillEvent, 0, len(req.Events))
	for _, e := range req.Events {
		if err := e.validate(); err != nil {
			writeError(w, http.StatusBadRequest, "rebuild_failed", WrapKind(op, ErrBadRequest, err))
			return
		}
		events = append(events, e.toModel())
	}

	stats, err := h.deps.Reload(r.Context(), events)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrBusy):
		writeError(w, http.StatusConflict, "busy", Wrap(op, err))
		return
	case errors.Is(err, service.ErrInvalidEvent), errors.Is(err, service.ErrBatchTooLarge):
		writeError(w, http.StatusBadRequest, "rebuild_failed", Wrap(op, err))
		return
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	writeJSON(w, http.StatusOK, reloadResponse{
		Status:      "ok",
		Ingested:    stats.Accepted,
		Duplicates:  stats.Duplicates,
		TotalEvents: stats.Total,
		Skills:      stats.Skills,
		Employees:   stats.Employees,
	})
}
