// Package service provides the core application service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/carelens/predictd/internal/domain/prediction"
	"github.com/carelens/predictd/pkg/logger"
	"github.com/carelens/predictd/pkg/metrics"
)

// Service wires the mock prediction engine behind the HTTP API.
type Service struct {
	mu sync.RWMutex

	predictor prediction.Predictor

	// Configuration
	modelVersion  string
	scoreMin      float64
	scoreMax      float64
	confidenceMin float64
	confidenceMax float64
	riskWeights   map[string]float64
	defaultWeight float64
	minLatency    time.Duration
	maxLatency    time.Duration

	// State
	started     bool
	startTime   time.Time
	predictions atomic.Int64

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithModelVersion sets the model version reported with predictions.
func WithModelVersion(version string) Option {
	return func(s *Service) {
		if version != "" {
			s.modelVersion = version
		}
	}
}

// WithScoreBounds sets the prediction score bounds.
func WithScoreBounds(minScore, maxScore float64) Option {
	return func(s *Service) {
		if maxScore > minScore {
			s.scoreMin = minScore
			s.scoreMax = maxScore
		}
	}
}

// WithConfidenceBounds sets the prediction confidence bounds.
func WithConfidenceBounds(minConf, maxConf float64) Option {
	return func(s *Service) {
		if maxConf > minConf {
			s.confidenceMin = minConf
			s.confidenceMax = maxConf
		}
	}
}

// WithRiskWeights sets per-risk-factor score weights.
func WithRiskWeights(weights map[string]float64) Option {
	return func(s *Service) {
		s.riskWeights = weights
	}
}

// WithDefaultRiskWeight sets the weight used for unknown risk factors.
func WithDefaultRiskWeight(weight float64) Option {
	return func(s *Service) {
		if weight > 0 {
			s.defaultWeight = weight
		}
	}
}

// WithLatencyRange sets the simulated model inference latency range.
func WithLatencyRange(minLatency, maxLatency time.Duration) Option {
	return func(s *Service) {
		if minLatency >= 0 && maxLatency >= minLatency {
			s.minLatency = minLatency
			s.maxLatency = maxLatency
		}
	}
}

// WithPredictor injects a predictor, bypassing the built-in mock. Used in tests.
func WithPredictor(p prediction.Predictor) Option {
	return func(s *Service) {
		if p != nil {
			s.predictor = p
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		modelVersion:  "v1.2.0",
		scoreMin:      0.10,
		scoreMax:      0.95,
		confidenceMin: 0.80,
		confidenceMax: 0.99,
		defaultWeight: 1.0,
		riskWeights:   map[string]float64{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the prediction engine and marks the service ready.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return fmt.Errorf("service already started")
	}

	if s.predictor == nil {
		s.predictor = prediction.NewMockPredictor(
			prediction.WithScoreBounds(s.scoreMin, s.scoreMax),
			prediction.WithConfidenceBounds(s.confidenceMin, s.confidenceMax),
			prediction.WithRiskWeights(s.riskWeights, s.defaultWeight),
			prediction.WithLatencyRange(s.minLatency, s.maxLatency),
			prediction.WithModelVersion(s.modelVersion),
			prediction.WithSeed(time.Now().UnixNano()),
		)
	}

	s.startTime = time.Now()
	s.started = true

	if s.logger != nil {
		s.logger.Info(ctx, "prediction service started",
			logger.String("modelVersion", s.modelVersion),
			logger.Float64("scoreMin", s.scoreMin),
			logger.Float64("scoreMax", s.scoreMax),
			logger.Int("riskFactors", len(s.riskWeights)),
		)
	}
	return nil
}

// Stop marks the service as no longer ready.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = false
}

// Ready reports whether the service accepts traffic.
func (s *Service) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

// Uptime returns the elapsed time since Start.
func (s *Service) Uptime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return 0
	}
	return time.Since(s.startTime)
}

// Predict generates a mock prediction. An empty patientID is replaced with
// a generated UUID so every response carries a stable subject identifier.
func (s *Service) Predict(ctx context.Context, patientID, riskFactor string) (prediction.Result, error) {
	s.mu.RLock()
	p := s.predictor
	s.mu.RUnlock()

	if p == nil {
		return prediction.Result{}, fmt.Errorf("service not started")
	}

	if patientID == "" {
		patientID = uuid.New().String()
	}

	start := time.Now()
	res, err := p.Predict(ctx, prediction.Input{PatientID: patientID, RiskFactor: riskFactor})
	if err != nil {
		metrics.RecordPredictionError()
		return prediction.Result{}, err
	}

	s.predictions.Add(1)
	metrics.RecordPrediction(res.Score)
	metrics.RecordPredictionLatency(float64(time.Since(start).Milliseconds()))

	if s.logger != nil {
		s.logger.Debug(ctx, "prediction generated",
			logger.String("patientID", res.PatientID),
			logger.Float64("score", res.Score),
			logger.Float64("confidence", res.Confidence),
		)
	}
	return res, nil
}

// GetStats returns service statistics for the /stats endpoint.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":       s.started,
		"model_version": s.modelVersion,
		"risk_factors":  len(s.riskWeights),
		"predictions":   s.predictions.Load(),
	}
	if s.started {
		stats["uptime_seconds"] = time.Since(s.startTime).Seconds()
	}
	return stats
}
