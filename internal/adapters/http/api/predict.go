// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// PredictHandler handles mock prediction requests.
type PredictHandler struct {
	deps Dependencies
}

// NewPredictHandler creates a new predict handler.
func NewPredictHandler(deps Dependencies) *PredictHandler {
	return &PredictHandler{deps: deps}
}

// predictResponse is the GET /predict payload.
type predictResponse struct {
	PatientID    string  `json:"patient_id"`
	Score        float64 `json:"score"`
	Confidence   float64 `json:"confidence"`
	ModelVersion string  `json:"model_version"`
	Timestamp    float64 `json:"timestamp"`
}

// HandlePredict handles GET /predict requests. Both query parameters are
// optional: patient_id is echoed back (a UUID is generated when absent)
// and risk_factor selects a score weight, falling back to the default.
func (h *PredictHandler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	patientID := r.URL.Query().Get("patient_id")
	riskFactor := r.URL.Query().Get("risk_factor")

	res, err := h.deps.Predict(r.Context(), patientID, riskFactor)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			writeError(w, http.StatusServiceUnavailable, "prediction_cancelled", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "prediction_failed", ErrPrediction)
		return
	}

	writeJSON(w, http.StatusOK, predictResponse{
		PatientID:    res.PatientID,
		Score:        res.Score,
		Confidence:   res.Confidence,
		ModelVersion: res.ModelVersion,
		Timestamp:    epochSeconds(time.Now()),
	})
}
