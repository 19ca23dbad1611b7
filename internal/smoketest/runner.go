// Package smoketest drives the running service through its HTTP surface
// and verifies the documented response contracts.
package smoketest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/carelens/predictd/pkg/logger"
)

// Run executes the complete smoke test.
func Run(ctx context.Context, config *Config) error {
	if err := config.validate(); err != nil {
		return err
	}

	stats := &Stats{
		StartTime: time.Now(),
		Requested: config.Requests,
	}

	log := logger.Get()
	log.Info(ctx, "starting smoke test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("requests", config.Requests),
		logger.Int("concurrency", config.Concurrency),
		logger.Duration("timeout", config.Timeout),
	)

	client := newHTTPClient(config.Timeout)

	// Step 1: the service must report healthy before anything else.
	if err := client.checkHealth(ctx, config.BaseURL); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	// Step 2: fire predictions concurrently and verify every response.
	if err := runPredictions(ctx, config, client, stats); err != nil {
		return fmt.Errorf("prediction run failed: %w", err)
	}

	// Step 3: the exposition endpoint must parse and carry request counters.
	if err := client.checkMetrics(ctx, config.BaseURL); err != nil {
		return fmt.Errorf("metrics check failed: %w", err)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	log.Info(ctx, "smoke test passed",
		logger.Int("succeeded", stats.Succeeded),
		logger.Int("failed", stats.Failed),
		logger.Duration("duration", stats.Duration),
		logger.Duration("minLatency", stats.MinLatency),
		logger.Duration("maxLatency", stats.MaxLatency),
		logger.Duration("avgLatency", stats.AvgLatency),
	)
	return nil
}

// runPredictions issues config.Requests calls across config.Concurrency
// workers, verifying bounds and collecting latency statistics.
func runPredictions(ctx context.Context, config *Config, client *httpClient, stats *Stats) error {
	type outcome struct {
		latency time.Duration
		err     error
	}

	jobs := make(chan string)
	results := make(chan outcome, config.Requests)

	var wg sync.WaitGroup
	for i := 0; i < config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for patientID := range jobs {
				start := time.Now()
				pred, err := client.getPrediction(ctx, config.BaseURL, patientID)
				latency := time.Since(start)
				if err == nil {
					err = verifyPrediction(pred, config)
				}
				if err == nil && patientID != "" && pred.PatientID != patientID {
					err = fmt.Errorf("%w: patient_id %q not echoed", ErrOutOfBounds, patientID)
				}
				if err != nil && config.Verbose {
					logger.Get().Warn(ctx, "prediction request failed", logger.Error(err))
				}
				results <- outcome{latency: latency, err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := 0; i < config.Requests; i++ {
			// Alternate between generated and server-assigned patient ids.
			id := ""
			if i%2 == 0 {
				id = uuid.New().String()
			}
			select {
			case <-ctx.Done():
				return
			case jobs <- id:
			}
		}
	}()

	wg.Wait()
	close(results)

	var firstErr error
	var total time.Duration
	for res := range results {
		if res.err != nil {
			stats.Failed++
			if firstErr == nil {
				firstErr = res.err
			}
			continue
		}
		stats.Succeeded++
		total += res.latency
		if stats.MinLatency == 0 || res.latency < stats.MinLatency {
			stats.MinLatency = res.latency
		}
		if res.latency > stats.MaxLatency {
			stats.MaxLatency = res.latency
		}
	}
	if stats.Succeeded > 0 {
		stats.AvgLatency = total / time.Duration(stats.Succeeded)
	}

	if firstErr != nil {
		return fmt.Errorf("%d of %d requests failed: %w", stats.Failed, config.Requests, firstErr)
	}
	// A cancelled context can stop the producer before every job is issued;
	// a run that did not complete all requests must not pass.
	if stats.Succeeded < config.Requests {
		return fmt.Errorf("%w: only %d of %d requests completed", ErrIncomplete, stats.Succeeded, config.Requests)
	}
	return nil
}
