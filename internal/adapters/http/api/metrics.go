// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/carelens/predictd/pkg/metrics"
)

// MetricsHandler serves the Prometheus exposition endpoint.
type MetricsHandler struct {
	exposition http.Handler
}

// NewMetricsHandler creates a new metrics handler backed by the service's
// own registry, keeping the output free of default Go collector noise.
func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{
		exposition: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
	}
}

// HandleMetrics handles GET /metrics requests.
func (h *MetricsHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	h.exposition.ServeHTTP(w, r)
}
