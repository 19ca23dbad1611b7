package smoketest

import (
	"fmt"
	"time"
)

// Documented response bounds for the mock prediction endpoint. Used as
// defaults when the caller does not supply bounds of its own.
const (
	DefaultScoreMin      = 0.10
	DefaultScoreMax      = 0.95
	DefaultConfidenceMin = 0.80
	DefaultConfidenceMax = 0.99
)

// Config holds configuration for the smoke test run.
type Config struct {
	BaseURL     string        // Base URL of the service
	Requests    int           // Number of /predict calls to issue
	Concurrency int           // Number of concurrent workers
	Timeout     time.Duration // HTTP request timeout
	Verbose     bool          // Enable verbose logging

	// Expected prediction bounds. Must match the bounds the target
	// service is configured with; zero values fall back to the defaults.
	ScoreMin      float64
	ScoreMax      float64
	ConfidenceMin float64
	ConfidenceMax float64
}

// validate normalizes zero-valued bounds to the documented defaults and
// rejects configurations that cannot produce a meaningful run.
func (c *Config) validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%w: base URL is required", ErrBadConfig)
	}
	if c.Requests <= 0 {
		return fmt.Errorf("%w: requests must be positive, got %d", ErrBadConfig, c.Requests)
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("%w: concurrency must be positive, got %d", ErrBadConfig, c.Concurrency)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %s", ErrBadConfig, c.Timeout)
	}

	if c.ScoreMin == 0 && c.ScoreMax == 0 {
		c.ScoreMin, c.ScoreMax = DefaultScoreMin, DefaultScoreMax
	}
	if c.ConfidenceMin == 0 && c.ConfidenceMax == 0 {
		c.ConfidenceMin, c.ConfidenceMax = DefaultConfidenceMin, DefaultConfidenceMax
	}
	if c.ScoreMin >= c.ScoreMax {
		return fmt.Errorf("%w: score bounds [%.2f, %.2f] are inverted", ErrBadConfig, c.ScoreMin, c.ScoreMax)
	}
	if c.ConfidenceMin >= c.ConfidenceMax {
		return fmt.Errorf("%w: confidence bounds [%.2f, %.2f] are inverted", ErrBadConfig, c.ConfidenceMin, c.ConfidenceMax)
	}
	return nil
}

// healthResponse mirrors the GET /health payload.
type healthResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Service       string  `json:"service"`
	Version       string  `json:"version"`
}

// predictResponse mirrors the GET /predict payload.
type predictResponse struct {
	PatientID    string  `json:"patient_id"`
	Score        float64 `json:"score"`
	Confidence   float64 `json:"confidence"`
	ModelVersion string  `json:"model_version"`
}

// Stats aggregates the outcome of a smoke test run.
type Stats struct {
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	Requested  int
	Succeeded  int
	Failed     int
	MinLatency time.Duration
	MaxLatency time.Duration
	AvgLatency time.Duration
}
