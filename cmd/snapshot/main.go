// Command snapshot asks a running API to record today's net worth snapshots.
// It is meant to be run once a day by a scheduler.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"time"

	"wealthtracker/internal/config"
	"wealthtracker/internal/logger"
	"wealthtracker/internal/pipelineclient"
)

func main() {
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Snapshot run failed: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(cfg.Env, cfg.LogLevel); err != nil {
		return err
	}

	var (
		apiURL  = flag.String("url", cfg.APIURL, "base URL of the API")
		at      = flag.String("at", "", "snapshot date (YYYY-MM-DD); defaults to today on the server")
		timeout = flag.Duration("timeout", 30*time.Second, "request timeout")
	)
	flag.Parse()

	if cfg.PipelineAPIKey == "" {
		return fmt.Errorf("PIPELINE_API_KEY is required")
	}

	var recordedAt time.Time
	if *at != "" {
		recordedAt, err = time.Parse("2006-01-02", *at)
		if err != nil {
			return fmt.Errorf("invalid -at date: %w", err)
		}
	}

	client := pipelineclient.New(*apiURL, cfg.PipelineAPIKey, &http.Client{Timeout: *timeout})

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	start := time.Now()
	result, err := client.RecordSnapshots(ctx, recordedAt)
	if err != nil {
		return err
	}

	logger.Get().Infow("net worth snapshots recorded",
		"count", result.Recorded,
		"recorded_at", result.RecordedAt,
		"duration", time.Since(start).String(),
	)
	return nil
}
