package queue

import (
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/jjf3/heated-rivalry-tracker/pkg/logger"
)

// Snapshot tasks carry a uniqueness window slightly longer than the task
// timeout so a second enqueue while a run is in flight is rejected instead
// of racing the first writer on the history log.
const (
	snapshotTimeout    = 10 * time.Minute
	snapshotUniqueness = 11 * time.Minute
)

// Client wraps asynq client for enqueueing tasks.
type Client struct {
	asynqClient *asynq.Client
}

// NewClient creates a new queue client.
func NewClient(redisURL string) (*Client, error) {
	redisOpt, err := ParseRedisURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	return &Client{
		asynqClient: asynq.NewClient(redisOpt),
	}, nil
}

// Close closes the client connection.
func (c *Client) Close() error {
	return c.asynqClient.Close()
}

// SnapshotTask builds the snapshot asynq task and its enqueue options.
// The uniqueness window keeps a single writer on the history log even if
// a run is enqueued while the previous one is still in flight.
func SnapshotTask(community, query string) (*asynq.Task, []asynq.Option, error) {
	payload, err := NewSnapshotTask(community, query)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create task payload: %w", err)
	}

	payloadBytes, err := payload.Marshal()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	opts := []asynq.Option{
		asynq.MaxRetry(2),
		asynq.Timeout(snapshotTimeout),
		asynq.Queue("default"),
		asynq.Unique(snapshotUniqueness),
	}
	return asynq.NewTask(TypeSnapshot, payloadBytes), opts, nil
}

// EnqueueSnapshot enqueues one snapshot run. At most one snapshot task can
// be pending or running at a time; duplicates inside the uniqueness window
// return asynq.ErrDuplicateTask.
func (c *Client) EnqueueSnapshot(community, query string) error {
	task, opts, err := SnapshotTask(community, query)
	if err != nil {
		return err
	}

	info, err := c.asynqClient.Enqueue(task, opts...)
	if err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	logger.L().Info("enqueued snapshot task",
		zap.String("task_id", info.ID),
		zap.String("community", community),
		zap.String("query", query),
	)
	return nil
}
