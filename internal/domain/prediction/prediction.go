// Package prediction defines the contract for generating mock prediction scores.
package prediction

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"
)

// Default prediction configuration constants.
const (
	defaultScoreMin      = 0.10
	defaultScoreMax      = 0.95
	defaultConfidenceMin = 0.80
	defaultConfidenceMax = 0.99
	defaultRiskWeight    = 1.0
	defaultModelVersion  = "v1.2.0"
	defaultRandomSeed    = 42
)

// Option applies a configuration option to the MockPredictor.
type Option func(*MockPredictor)

// WithScoreBounds sets the inclusive bounds for generated scores.
func WithScoreBounds(minScore, maxScore float64) Option {
	return func(p *MockPredictor) {
		if minScore >= 0 && maxScore > minScore {
			p.scoreMin = minScore
			p.scoreMax = maxScore
		}
	}
}

// WithConfidenceBounds sets the inclusive bounds for generated confidence values.
func WithConfidenceBounds(minConf, maxConf float64) Option {
	return func(p *MockPredictor) {
		if minConf >= 0 && maxConf > minConf {
			p.confidenceMin = minConf
			p.confidenceMax = maxConf
		}
	}
}

// WithRiskWeights sets per-risk-factor weights and the fallback weight.
func WithRiskWeights(weights map[string]float64, defaultWeight float64) Option {
	return func(p *MockPredictor) {
		p.riskWeights = make(map[string]float64, len(weights))
		for factor, weight := range weights {
			if weight > 0 {
				p.riskWeights[factor] = weight
			}
		}
		if defaultWeight > 0 {
			p.defaultWeight = defaultWeight
		}
	}
}

// WithLatencyRange sets the simulated model inference latency range.
// A zero range disables the wait.
func WithLatencyRange(minLatency, maxLatency time.Duration) Option {
	return func(p *MockPredictor) {
		if minLatency >= 0 && maxLatency >= minLatency {
			p.minLatency = minLatency
			p.maxLatency = maxLatency
		}
	}
}

// WithModelVersion sets the version string reported with every result.
func WithModelVersion(version string) Option {
	return func(p *MockPredictor) {
		if version != "" {
			p.modelVersion = version
		}
	}
}

// WithSeed sets the random source seed for reproducible output.
func WithSeed(seed int64) Option {
	return func(p *MockPredictor) {
		p.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // mock scores, not crypto
	}
}

// Input abstracts the request fields the predictor consumes.
type Input struct {
	PatientID  string
	RiskFactor string
}

// Result contains a generated prediction.
type Result struct {
	PatientID    string
	Score        float64
	Confidence   float64
	ModelVersion string
}

// Predictor generates a prediction from an input. Implementations may
// simulate latency to model an external inference service.
type Predictor interface {
	// Predict generates a prediction, honoring ctx for cancellation.
	Predict(ctx context.Context, in Input) (Result, error)
}

// MockPredictor implements Predictor with bounded pseudo-random output.
type MockPredictor struct {
	scoreMin      float64
	scoreMax      float64
	confidenceMin float64
	confidenceMax float64
	riskWeights   map[string]float64
	defaultWeight float64
	minLatency    time.Duration
	maxLatency    time.Duration
	modelVersion  string

	mu  sync.Mutex // guards rng; handlers call Predict concurrently
	rng *rand.Rand
}

// NewMockPredictor creates a mock predictor with configuration options.
func NewMockPredictor(opts ...Option) *MockPredictor {
	p := &MockPredictor{
		scoreMin:      defaultScoreMin,
		scoreMax:      defaultScoreMax,
		confidenceMin: defaultConfidenceMin,
		confidenceMax: defaultConfidenceMax,
		riskWeights:   make(map[string]float64),
		defaultWeight: defaultRiskWeight,
		modelVersion:  defaultModelVersion,
		rng:           rand.New(rand.NewSource(defaultRandomSeed)), //nolint:gosec // deterministic for reproducible testing
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Predict generates a bounded pseudo-random prediction for the given input.
func (p *MockPredictor) Predict(ctx context.Context, in Input) (Result, error) {
	if err := p.wait(ctx); err != nil {
		return Result{}, err
	}

	weight, ok := p.riskWeights[in.RiskFactor]
	if !ok {
		weight = p.defaultWeight
	}

	score, confidence := p.draw(weight)

	return Result{
		PatientID:    in.PatientID,
		Score:        score,
		Confidence:   confidence,
		ModelVersion: p.modelVersion,
	}, nil
}

// wait simulates model inference latency, honoring ctx cancellation.
func (p *MockPredictor) wait(ctx context.Context) error {
	if p.maxLatency <= 0 {
		return nil
	}
	latency := p.minLatency
	if p.maxLatency > p.minLatency {
		p.mu.Lock()
		jitter := time.Duration(p.rng.Int63n(int64(p.maxLatency - p.minLatency)))
		p.mu.Unlock()
		latency += jitter
	}
	select {
	case <-ctx.Done():
		return fmt.Errorf("prediction cancelled: %w", ctx.Err())
	case <-time.After(latency):
		return nil
	}
}

// draw produces a weighted score and a confidence value, both rounded to
// two decimals and clamped to their configured bounds.
func (p *MockPredictor) draw(weight float64) (score, confidence float64) {
	p.mu.Lock()
	scoreRoll := p.rng.Float64()
	confRoll := p.rng.Float64()
	p.mu.Unlock()

	span := p.scoreMax - p.scoreMin
	score = clampRound(p.scoreMin+span*scoreRoll*weight, p.scoreMin, p.scoreMax)

	confidence = clampRound(p.confidenceMin+(p.confidenceMax-p.confidenceMin)*confRoll, p.confidenceMin, p.confidenceMax)
	return score, confidence
}

// clampRound rounds v to two decimals, then clamps to [lo, hi]. Clamping
// last keeps the result inside bounds that are not themselves two-decimal.
func clampRound(v, lo, hi float64) float64 {
	v = math.Round(v*100) / 100
	return math.Max(lo, math.Min(hi, v))
}
