package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/jjf3/heated-rivalry-tracker/pkg/logger"
)

// Enqueuer enqueues snapshot runs. Satisfied by queue.Client.
type Enqueuer interface {
	EnqueueSnapshot(community, query string) error
}

// SnapshotHandler triggers an out-of-schedule snapshot run through the
// task queue, so manual runs go through the same uniqueness window as
// scheduled ones.
type SnapshotHandler struct {
	enqueuer  Enqueuer
	community string
	query     string
}

// NewSnapshotHandler creates a snapshot trigger handler. A nil enqueuer
// means no queue is configured; triggering then reports unavailable.
func NewSnapshotHandler(enqueuer Enqueuer, community, query string) *SnapshotHandler {
	return &SnapshotHandler{
		enqueuer:  enqueuer,
		community: community,
		query:     query,
	}
}

// Trigger handles POST /api/v1/snapshots.
func (h *SnapshotHandler) Trigger(c *gin.Context) {
	if h.enqueuer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "task queue is not configured"})
		return
	}

	err := h.enqueuer.EnqueueSnapshot(h.community, h.query)
	switch {
	case err == nil:
		c.JSON(http.StatusAccepted, gin.H{"status": "enqueued"})

	case errors.Is(err, asynq.ErrDuplicateTask):
		c.JSON(http.StatusConflict, gin.H{"error": "a snapshot run is already pending or in flight"})

	default:
		logger.L().Error("failed to enqueue snapshot", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to enqueue snapshot"})
	}
}
