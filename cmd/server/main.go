// Command server exposes the generated dashboard, the series API, a manual
// snapshot trigger and the health and metrics endpoints.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/jjf3/heated-rivalry-tracker/internal/config"
	"github.com/jjf3/heated-rivalry-tracker/internal/handler"
	"github.com/jjf3/heated-rivalry-tracker/internal/history"
	"github.com/jjf3/heated-rivalry-tracker/internal/metrics"
	"github.com/jjf3/heated-rivalry-tracker/internal/middleware"
	"github.com/jjf3/heated-rivalry-tracker/internal/queue"
	"github.com/jjf3/heated-rivalry-tracker/internal/report"
	"github.com/jjf3/heated-rivalry-tracker/pkg/logger"
)

const serviceName = "rivalry-tracker"

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return err
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		os.Stderr.WriteString("failed to init logger: " + err.Error() + "\n")
		return err
	}
	defer logger.Sync()

	metrics.Init(serviceName, "1.0.0", "production")

	ctx := context.Background()

	store, closeStore, err := history.OpenStore(ctx, cfg)
	if err != nil {
		logger.L().Error("failed to open history store", zap.Error(err))
		return err
	}
	defer closeStore()

	// The manual snapshot trigger goes through the queue so it shares the
	// uniqueness window with scheduled runs. Without Redis the endpoint
	// reports unavailable.
	var enqueuer handler.Enqueuer
	if cfg.Queue.RedisURL != "" {
		queueClient, err := queue.NewClient(cfg.Queue.RedisURL)
		if err != nil {
			logger.L().Warn("failed to initialize queue client, manual snapshot trigger disabled",
				zap.Error(err),
			)
		} else {
			defer queueClient.Close()
			enqueuer = queueClient
		}
	}

	router := newRouter(cfg, store, enqueuer)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.L().Info("starting dashboard server",
			zap.Int("port", cfg.Server.Port),
			zap.String("output_dir", cfg.Output.Dir),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.L().Error("server error", zap.Error(err))
		return err
	case sig := <-quit:
		logger.L().Info("shutting down server", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.L().Error("forced shutdown", zap.Error(err))
		return err
	}
	return nil
}

func newRouter(cfg *config.Config, store history.Store, enqueuer handler.Enqueuer) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.PrometheusMiddleware(serviceName))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": serviceName})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	seriesHandler := handler.NewSeriesHandler(store)
	snapshotHandler := handler.NewSnapshotHandler(enqueuer, cfg.Search.Community, cfg.Search.Query)

	api := router.Group("/api/v1")
	{
		api.GET("/series/episodes", seriesHandler.Episodes)
		api.GET("/series/others", seriesHandler.Others)
		api.POST("/snapshots", snapshotHandler.Trigger)
	}

	// The report directory is served as-is; the dashboard page links the
	// chart files relative to itself.
	router.Static("/reports", cfg.Output.Dir)
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/reports/"+report.DashboardFile)
	})

	return router
}
