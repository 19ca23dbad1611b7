// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load layers file and env on top.
// - External errors are wrapped via this package's sentinel kinds.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`

	// ModelVersion is reported with every prediction.
	ModelVersion string `koanf:"model_version"`

	// ScoreMin and ScoreMax bound generated prediction scores.
	ScoreMin float64 `koanf:"score_min"`
	ScoreMax float64 `koanf:"score_max"`

	// ConfidenceMin and ConfidenceMax bound generated confidence values.
	ConfidenceMin float64 `koanf:"confidence_min"`
	ConfidenceMax float64 `koanf:"confidence_max"`

	// LatencyMinMS and LatencyMaxMS simulate model inference latency.
	// Both zero disables the simulated wait.
	LatencyMinMS int `koanf:"latency_min_ms"`
	LatencyMaxMS int `koanf:"latency_max_ms"`

	// RiskWeights maps risk factor names to score weights.
	RiskWeights map[string]float64 `koanf:"risk_weights"`

	// DefaultRiskWeight is used for unknown risk factors.
	DefaultRiskWeight float64 `koanf:"default_risk_weight"`

	// CORSOrigins lists allowed cross-origin request origins.
	CORSOrigins []string `koanf:"cors_origins"`

	// ShutdownSeconds bounds graceful shutdown on SIGINT/SIGTERM.
	ShutdownSeconds int `koanf:"shutdown_seconds"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		Addr:          ":8000",
		ModelVersion:  "v1.2.0",
		ScoreMin:      0.10,
		ScoreMax:      0.95,
		ConfidenceMin: 0.80,
		ConfidenceMax: 0.99,
		LatencyMinMS:  0,
		LatencyMaxMS:  0,
		RiskWeights: map[string]float64{
			"cardiac":     1.4,
			"respiratory": 1.2,
			"metabolic":   1.0,
		},
		DefaultRiskWeight: 1.0,
		CORSOrigins:       []string{"*"},
		ShutdownSeconds:   30,
	}
}
