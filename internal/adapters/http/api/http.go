// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	service "github.com/okian/fitcheck/internal/app"
	"github.com/okian/fitcheck/internal/domain/history"
	"github.com/okian/fitcheck/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	StatsProvider

	// Units returns the labels and placeholders for a unit system.
	Units(unit model.MeasurementUnit) model.UnitLabels

	// Submit validates, computes and records a BMI.
	Submit(ctx context.Context, unit model.MeasurementUnit, weight, height string) (service.Outcome, error)

	// Read and clear operations over the persisted history.
	History(ctx context.Context) []model.HistoryEntry
	Rows(ctx context.Context) []history.Row
	Clear(ctx context.Context, confirmed bool) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	unitsHandler   *UnitsHandler
	bmiHandler     *BMIHandler
	historyHandler *HistoryHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(deps),
		unitsHandler:   NewUnitsHandler(deps),
		bmiHandler:     NewBMIHandler(deps),
		historyHandler: NewHistoryHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /api/units/{unit}", MetricsMiddleware(s.unitsHandler.HandleGetUnits, "units"))
	mux.HandleFunc("POST /api/bmi", MetricsMiddleware(s.bmiHandler.HandlePostBMI, "bmi"))
	mux.HandleFunc("GET /api/history", MetricsMiddleware(s.historyHandler.HandleGetHistory, "history"))
	mux.HandleFunc("DELETE /api/history", MetricsMiddleware(s.historyHandler.HandleDeleteHistory, "history"))
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
