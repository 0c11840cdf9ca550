// Package handler contains the HTTP handlers for the dashboard server.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jjf3/heated-rivalry-tracker/internal/history"
	"github.com/jjf3/heated-rivalry-tracker/internal/series"
	"github.com/jjf3/heated-rivalry-tracker/pkg/logger"
)

// SeriesHandler serves the aggregated comment history as JSON.
type SeriesHandler struct {
	store history.Store
}

// NewSeriesHandler creates a series handler over the given history store.
func NewSeriesHandler(store history.Store) *SeriesHandler {
	return &SeriesHandler{store: store}
}

type seriesPoint struct {
	At          time.Time `json:"at"`
	NumComments int       `json:"num_comments"`
}

type seriesGroup struct {
	PostName    string        `json:"post_name"`
	EpisodeCode string        `json:"episode_code,omitempty"`
	Title       string        `json:"title"`
	Points      []seriesPoint `json:"points"`
}

// Episodes handles GET /api/v1/series/episodes.
func (h *SeriesHandler) Episodes(c *gin.Context) {
	episodes, _, err := h.load(c.Request.Context())
	if err != nil {
		logger.L().Error("failed to load history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"series": toJSON(episodes)})
}

// Others handles GET /api/v1/series/others.
func (h *SeriesHandler) Others(c *gin.Context) {
	_, others, err := h.load(c.Request.Context())
	if err != nil {
		logger.L().Error("failed to load history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"series": toJSON(others)})
}

func (h *SeriesHandler) load(ctx context.Context) (episodes, others []*series.Group, err error) {
	rows, err := h.store.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	episodes, others = series.Partition(series.Build(rows))
	return episodes, others, nil
}

func toJSON(groups []*series.Group) []seriesGroup {
	out := make([]seriesGroup, 0, len(groups))
	for _, g := range groups {
		points := make([]seriesPoint, 0, len(g.Points))
		for _, p := range g.Points {
			points = append(points, seriesPoint{At: p.At, NumComments: p.NumComments})
		}
		out = append(out, seriesGroup{
			PostName:    g.PostName,
			EpisodeCode: g.EpisodeCode,
			Title:       g.Title,
			Points:      points,
		})
	}
	return out
}
