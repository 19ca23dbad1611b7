package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/carelens/predictd/internal/adapters/http/api"
	"github.com/carelens/predictd/internal/adapters/http/docs"
	app "github.com/carelens/predictd/internal/app"
	"github.com/carelens/predictd/internal/config"
	"github.com/carelens/predictd/pkg/logger"
	"github.com/carelens/predictd/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	writeTimeout          = 10 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	processGaugesInterval = 10 * time.Second
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			os.Stderr.WriteString("failed to sync logger: " + err.Error() + "\n")
		}
	}()

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Create and start the service with configuration options
	svc := app.New(
		app.WithLogger(log),
		app.WithModelVersion(cfg.ModelVersion),
		app.WithScoreBounds(cfg.ScoreMin, cfg.ScoreMax),
		app.WithConfidenceBounds(cfg.ConfidenceMin, cfg.ConfidenceMax),
		app.WithRiskWeights(cfg.RiskWeights),
		app.WithDefaultRiskWeight(cfg.DefaultRiskWeight),
		app.WithLatencyRange(time.Duration(cfg.LatencyMinMS)*time.Millisecond, time.Duration(cfg.LatencyMaxMS)*time.Millisecond),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// Refresh process gauges in the background
	go startProcessGaugesUpdater(ctx, svc)

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// Register business API routes with the service dependency.
	apiServer := api.NewServer(svc, svc, cfg.CORSOrigins)
	apiServer.Register(ctx, mux)

	// Docs share the API middleware chain so they show up in request metrics.
	docs.Register(ctx, mux, apiServer.Wrap)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			stop()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownSeconds)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// startProcessGaugesUpdater refreshes uptime and runtime gauges on a ticker.
func startProcessGaugesUpdater(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(processGaugesInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateProcessGauges(svc)
		}
	}
}

func updateProcessGauges(svc *app.Service) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateMemoryUsage(m.Alloc)
	metrics.UpdateGoroutineCount(runtime.NumGoroutine())
	metrics.UpdateUptime(svc.Uptime().Seconds())
}
