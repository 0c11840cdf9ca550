package queue

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/jjf3/heated-rivalry-tracker/internal/service"
	"github.com/jjf3/heated-rivalry-tracker/pkg/logger"
)

// SnapshotHandler runs the tracker pipeline for snapshot tasks.
type SnapshotHandler struct {
	tracker *service.Tracker
}

// NewSnapshotHandler creates a snapshot task handler.
func NewSnapshotHandler(tracker *service.Tracker) *SnapshotHandler {
	return &SnapshotHandler{tracker: tracker}
}

// ProcessTask implements asynq.HandlerFunc.
func (h *SnapshotHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	payload, err := UnmarshalSnapshotPayload(task.Payload())
	if err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	logger.L().Info("processing snapshot task",
		zap.String("community", payload.Community),
		zap.String("query", payload.Query),
	)

	if err := h.tracker.Run(ctx); err != nil {
		return fmt.Errorf("snapshot run: %w", err)
	}
	return nil
}

// Server wraps asynq server for processing tasks.
type Server struct {
	asynqServer *asynq.Server
	mux         *asynq.ServeMux
}

// NewServer creates a new task processing server.
func NewServer(redisURL string, concurrency int, handler *SnapshotHandler) (*Server, error) {
	redisOpt, err := ParseRedisURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				"default": 10,
			},
			StrictPriority: false,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.L().Error("task failed",
					zap.String("type", task.Type()),
					zap.Error(err),
				)
			}),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeSnapshot, handler.ProcessTask)

	return &Server{
		asynqServer: srv,
		mux:         mux,
	}, nil
}

// Start starts the server.
func (s *Server) Start() error {
	logger.L().Info("starting task processing server")
	return s.asynqServer.Start(s.mux)
}

// Stop gracefully stops the server.
func (s *Server) Stop() {
	logger.L().Info("shutting down task processing server")
	s.asynqServer.Shutdown()
}
