package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/carelens/predictd/internal/smoketest"
	"github.com/carelens/predictd/pkg/logger"
)

// Default configuration constants.
const (
	defaultRequests         = 100
	defaultWorkerMultiplier = 2
	defaultTimeout          = 10 * time.Second
	defaultRunTimeout       = 5 * time.Minute
)

func main() {
	var (
		baseURL       = flag.String("url", "http://localhost:8000", "Base URL of the service")
		requests      = flag.Int("requests", defaultRequests, "Number of /predict calls to issue")
		concurrency   = flag.Int("concurrency", runtime.NumCPU()*defaultWorkerMultiplier, "Number of concurrent workers")
		timeout       = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose       = flag.Bool("verbose", false, "Enable verbose logging")
		scoreMin      = flag.Float64("score-min", smoketest.DefaultScoreMin, "Expected lower score bound")
		scoreMax      = flag.Float64("score-max", smoketest.DefaultScoreMax, "Expected upper score bound")
		confidenceMin = flag.Float64("confidence-min", smoketest.DefaultConfidenceMin, "Expected lower confidence bound")
		confidenceMax = flag.Float64("confidence-max", smoketest.DefaultConfidenceMax, "Expected upper confidence bound")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, defaultRunTimeout)
	defer cancel()

	cfg := &smoketest.Config{
		BaseURL:       *baseURL,
		Requests:      *requests,
		Concurrency:   *concurrency,
		Timeout:       *timeout,
		Verbose:       *verbose,
		ScoreMin:      *scoreMin,
		ScoreMax:      *scoreMax,
		ConfidenceMin: *confidenceMin,
		ConfidenceMax: *confidenceMax,
	}

	if err := smoketest.Run(ctx, cfg); err != nil {
		logger.Get().Error(ctx, "smoke test failed", logger.Error(err))
		os.Exit(1)
	}
}
