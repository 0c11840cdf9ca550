// Command tracker runs one snapshot of the configured community search and
// regenerates the report outputs, then exits.
package main

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/jjf3/heated-rivalry-tracker/internal/config"
	"github.com/jjf3/heated-rivalry-tracker/internal/history"
	"github.com/jjf3/heated-rivalry-tracker/internal/reddit"
	"github.com/jjf3/heated-rivalry-tracker/internal/report"
	"github.com/jjf3/heated-rivalry-tracker/internal/service"
	"github.com/jjf3/heated-rivalry-tracker/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		os.Stderr.WriteString("failed to init logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()

	store, closeStore, err := history.OpenStore(ctx, cfg)
	if err != nil {
		logger.L().Error("failed to open history store", zap.Error(err))
		os.Exit(1)
	}
	defer closeStore()

	client := reddit.NewClient(reddit.Options{
		BaseURL:     cfg.HTTP.BaseURL,
		Community:   cfg.Search.Community,
		UserAgent:   cfg.HTTP.UserAgent,
		Timeout:     cfg.HTTP.Timeout,
		MaxAttempts: cfg.HTTP.MaxAttempts,
	})

	tracker := service.NewTracker(cfg, client, store, report.NewWriter(cfg.Output.Dir))

	if err := tracker.Run(ctx); err != nil {
		logger.Sync()
		os.Exit(1)
	}
}
