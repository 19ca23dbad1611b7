// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"time"
)

// InfoHandler handles service metadata requests on the root path.
type InfoHandler struct {
	deps Dependencies
}

// NewInfoHandler creates a new info handler.
func NewInfoHandler(deps Dependencies) *InfoHandler {
	return &InfoHandler{deps: deps}
}

// infoResponse is the GET / payload.
type infoResponse struct {
	Name      string            `json:"name"`
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Ready     bool              `json:"ready"`
	Timestamp string            `json:"timestamp"`
	Endpoints map[string]string `json:"endpoints"`
}

// HandleInfo handles GET / requests. Since "/" is the mux catch-all,
// any other path falls through to a JSON 404 here.
func (h *InfoHandler) HandleInfo(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	if !requireGet(w, r) {
		return
	}

	writeJSON(w, http.StatusOK, infoResponse{
		Name:      ServiceName,
		Message:   "Healthcare Prediction API",
		Version:   ServiceVersion,
		Ready:     h.deps.Ready(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Endpoints: map[string]string{
			"health":  "/health",
			"predict": "/predict",
			"metrics": "/metrics",
			"stats":   "/stats",
			"docs":    "/docs",
		},
	})
}
