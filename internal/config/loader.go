package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if PREDICTD_CONFIG is set
//  3. env (prefix PREDICTD_)
//  4. PORT, kept for parity with common container conventions
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("PREDICTD_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: PREDICTD_ADDR, PREDICTD_SCORE_MIN, ...
	// Keys keep their underscores to match the koanf tags on the struct.
	envProvider := env.Provider("PREDICTD_", ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), "predictd_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// A bare PORT always wins; container platforms inject it.
	if p := os.Getenv("PORT"); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid PORT %q", ErrInvalidConfig, p)
		}
		cfg.Addr = fmt.Sprintf(":%d", port)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.ScoreMin >= c.ScoreMax:
		return fmt.Errorf("%w: score_min must be below score_max", ErrInvalidConfig)
	case c.ConfidenceMin >= c.ConfidenceMax:
		return fmt.Errorf("%w: confidence_min must be below confidence_max", ErrInvalidConfig)
	case c.LatencyMinMS < 0 || c.LatencyMaxMS < c.LatencyMinMS:
		return fmt.Errorf("%w: latency bounds must satisfy 0 <= min <= max", ErrInvalidConfig)
	case c.DefaultRiskWeight <= 0:
		return fmt.Errorf("%w: default_risk_weight must be positive", ErrInvalidConfig)
	case c.ShutdownSeconds <= 0:
		return fmt.Errorf("%w: shutdown_seconds must be positive", ErrInvalidConfig)
	}
	return nil
}
