// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	service "github.com/42Prague/skillgenome/internal/app"
	"github.com/42Prague/skillgenome/internal/domain/model"
	"github.com/42Prague/skillgenome/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Reload ingests a batch of events and rebuilds the analytics snapshot.
	Reload(ctx context.Context, events []model.SkillEvent) (service.ReloadStats, error)

	// Read operations expose the published snapshot.
	Genome(ctx context.Context, method string) (types.Genome, error)
	Evolution(ctx context.Context) (types.Evolution, error)
	Insights(ctx context.Context) (types.Insights, error)
	Network(ctx context.Context) (types.Network, error)
	Skill(ctx context.Context, name string) (types.SkillDetail, error)
	SimulateROI(ctx context.Context, fromSkill, toSkill string, employeeCount int) (types.ROISimulation, error)
}

// Server wires HTTP routes for the analytics API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	reloadHandler    *ReloadHandler
	genomeHandler    *GenomeHandler
	evolutionHandler *EvolutionHandler
	insightsHandler  *InsightsHandler
	skillHandler     *SkillHandler
	networkHandler   *NetworkHandler
	roiHandler       *ROIHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		reloadHandler:    NewReloadHandler(deps),
		genomeHandler:    NewGenomeHandler(deps),
		evolutionHandler: NewEvolutionHandler(deps),
		insightsHandler:  NewInsightsHandler(deps),
		skillHandler:     NewSkillHandler(deps),
		networkHandler:   NewNetworkHandler(deps),
		roiHandler:       NewROIHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/reload", MetricsMiddleware(s.reloadHandler.HandleReload, "reload"))
	mux.HandleFunc("/genome", MetricsMiddleware(s.genomeHandler.HandleGetGenome, "genome"))
	mux.HandleFunc("/evolution", MetricsMiddleware(s.evolutionHandler.HandleGetEvolution, "evolution"))
	mux.HandleFunc("/insights", MetricsMiddleware(s.insightsHandler.HandleGetInsights, "insights"))
	mux.HandleFunc("/skill/", MetricsMiddleware(s.skillHandler.HandleGetSkill, "skill"))
	mux.HandleFunc("/network", MetricsMiddleware(s.networkHandler.HandleGetNetwork, "network"))
	mux.HandleFunc("/simulate-roi", MetricsMiddleware(s.roiHandler.HandleSimulateROI, "simulate_roi"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
