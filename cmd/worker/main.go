// Command worker processes scheduled snapshot tasks. It runs the asynq
// server together with a scheduler that enqueues a snapshot on the
// configured cron spec.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/jjf3/heated-rivalry-tracker/internal/config"
	"github.com/jjf3/heated-rivalry-tracker/internal/history"
	"github.com/jjf3/heated-rivalry-tracker/internal/metrics"
	"github.com/jjf3/heated-rivalry-tracker/internal/queue"
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

	metrics.Init("rivalry-tracker-worker", "1.0.0", "production")

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

	srv, err := queue.NewServer(cfg.Queue.RedisURL, 1, queue.NewSnapshotHandler(tracker))
	if err != nil {
		logger.L().Error("failed to create queue server", zap.Error(err))
		os.Exit(1)
	}

	scheduler, err := newScheduler(cfg)
	if err != nil {
		logger.L().Error("failed to create scheduler", zap.Error(err))
		os.Exit(1)
	}

	if err := srv.Start(); err != nil {
		logger.L().Error("failed to start queue server", zap.Error(err))
		os.Exit(1)
	}

	go func() {
		if err := scheduler.Run(); err != nil {
			logger.L().Error("scheduler stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.L().Info("shutting down worker")
	scheduler.Shutdown()
	srv.Stop()
}

func newScheduler(cfg *config.Config) (*asynq.Scheduler, error) {
	redisOpt, err := queue.ParseRedisURL(cfg.Queue.RedisURL)
	if err != nil {
		return nil, err
	}

	scheduler := asynq.NewScheduler(redisOpt, nil)

	task, opts, err := queue.SnapshotTask(cfg.Search.Community, cfg.Search.Query)
	if err != nil {
		return nil, err
	}

	entryID, err := scheduler.Register(cfg.Queue.CronSpec, task, opts...)
	if err != nil {
		return nil, err
	}

	logger.L().Info("registered snapshot schedule",
		zap.String("entry_id", entryID),
		zap.String("cron", cfg.Queue.CronSpec),
	)
	return scheduler, nil
}
