// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/carelens/predictd/internal/domain/prediction"
)

// Service identity reported by the info and health endpoints.
const (
	ServiceName    = "healthcare-prediction-api"
	ServiceVersion = "1.0.0"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Predict generates a mock prediction for the given subject.
	Predict(ctx context.Context, patientID, riskFactor string) (prediction.Result, error)

	// Uptime reports elapsed time since the service started.
	Uptime() time.Duration

	// Ready reports whether the service accepts traffic.
	Ready() bool
}

// Server wires HTTP routes for the prediction API.
type Server struct {
	infoHandler    *InfoHandler
	healthHandler  *HealthHandler
	predictHandler *PredictHandler
	metricsHandler *MetricsHandler
	statsHandler   *StatsHandler

	corsOrigins []string
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, corsOrigins []string) *Server {
	return &Server{
		infoHandler:    NewInfoHandler(deps),
		healthHandler:  NewHealthHandler(deps),
		predictHandler: NewPredictHandler(deps),
		metricsHandler: NewMetricsHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		corsOrigins:    corsOrigins,
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first; "/" doubles as the catch-all for unknown routes.
	mux.HandleFunc("/health", s.Wrap(s.healthHandler.HandleHealth, "health"))
	mux.HandleFunc("/predict", s.Wrap(s.predictHandler.HandlePredict, "predict"))
	mux.HandleFunc("/metrics", s.Wrap(s.metricsHandler.HandleMetrics, "metrics"))
	mux.HandleFunc("/stats", s.Wrap(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/", s.Wrap(s.infoHandler.HandleInfo, "root"))
}

// Wrap applies the standard middleware chain to a handler. It is exported
// so routes registered outside this package share the same chain.
func (s *Server) Wrap(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return MetricsMiddleware(RequestIDMiddleware(CORSMiddleware(next, s.corsOrigins)), endpoint)
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

// requireGet rejects any method other than GET with a JSON 405.
func requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return false
	}
	return true
}

// epochSeconds renders t as fractional Unix seconds, matching the wire
// format of the original service.
func epochSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
