// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"math"
	"net/http"
	"time"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	deps Dependencies
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(deps Dependencies) *HealthHandler {
	return &HealthHandler{deps: deps}
}

// healthResponse is the GET /health payload.
type healthResponse struct {
	Status        string  `json:"status"`
	Timestamp     float64 `json:"timestamp"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Service       string  `json:"service"`
	Version       string  `json:"version"`
}

// HandleHealth handles GET /health requests. It always reports healthy:
// if the process can run this handler, it is serving.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	uptime := h.deps.Uptime().Seconds()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:        "healthy",
		Timestamp:     epochSeconds(time.Now()),
		UptimeSeconds: math.Round(uptime*100) / 100,
		Service:       ServiceName,
		Version:       ServiceVersion,
	})
}
