// Package service runs the snapshot pipeline end to end: fetch, classify,
// select, append to history, aggregate and render.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jjf3/heated-rivalry-tracker/internal/config"
	"github.com/jjf3/heated-rivalry-tracker/internal/history"
	"github.com/jjf3/heated-rivalry-tracker/internal/metrics"
	"github.com/jjf3/heated-rivalry-tracker/internal/models"
	"github.com/jjf3/heated-rivalry-tracker/internal/reddit"
	"github.com/jjf3/heated-rivalry-tracker/internal/report"
	"github.com/jjf3/heated-rivalry-tracker/internal/selection"
	"github.com/jjf3/heated-rivalry-tracker/internal/series"
	"github.com/jjf3/heated-rivalry-tracker/pkg/logger"
)

// Fetcher is the slice of the reddit client the pipeline needs.
type Fetcher interface {
	SearchPosts(ctx context.Context, q reddit.Query, topic string) ([]models.Post, error)
}

// Tracker wires one snapshot run together.
type Tracker struct {
	cfg     *config.Config
	fetcher Fetcher
	store   history.Store
	writer  *report.Writer
}

// NewTracker creates a pipeline over the given fetcher, history store and
// report writer.
func NewTracker(cfg *config.Config, fetcher Fetcher, store history.Store, writer *report.Writer) *Tracker {
	return &Tracker{
		cfg:     cfg,
		fetcher: fetcher,
		store:   store,
		writer:  writer,
	}
}

// Run executes one snapshot: a single search, report tables, a history
// append and regenerated charts. The snapshot time is taken once at the
// start so every row of the run shares it. A fetch failure aborts the run
// before anything is appended.
func (t *Tracker) Run(ctx context.Context) error {
	runID := uuid.New().String()
	start := time.Now()
	snapshot := start.UTC()

	log := logger.L().With(zap.String("run_id", runID))
	log.Info("starting tracker run",
		zap.String("community", t.cfg.Search.Community),
		zap.String("query", t.cfg.Search.Query),
		zap.Time("snapshot_utc", snapshot),
	)

	err := t.run(ctx, log, snapshot)

	metrics.TrackerRunDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.TrackerRunsTotal.WithLabelValues("error").Inc()
		log.Error("tracker run failed", zap.Error(err))
		return err
	}

	metrics.TrackerRunsTotal.WithLabelValues("success").Inc()
	log.Info("tracker run complete", zap.Duration("took", time.Since(start)))
	return nil
}

func (t *Tracker) run(ctx context.Context, log *zap.Logger, snapshot time.Time) error {
	q := reddit.Query{
		Text:       t.cfg.Search.Query,
		Sort:       t.cfg.Search.Sort,
		TimeFilter: t.cfg.Search.TimeFilter,
		Limit:      t.cfg.Search.Limit,
	}

	posts, err := t.fetcher.SearchPosts(ctx, q, t.cfg.Search.Query)
	if err != nil {
		metrics.RedditFetchesTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("fetch posts: %w", err)
	}
	metrics.RedditFetchesTotal.WithLabelValues("success").Inc()
	metrics.PostsFetched.Add(float64(len(posts)))

	if err := t.writer.WriteAllPosts(posts); err != nil {
		return err
	}

	episodes := selection.EpisodePosts(posts)
	trailer, hasTrailer := selection.PickTrailer(posts)
	others := selection.PickOthers(posts, t.cfg.Select.OtherPosts)

	log.Info("classified snapshot",
		zap.Int("posts", len(posts)),
		zap.Int("episodes", len(episodes)),
		zap.Bool("trailer", hasTrailer),
		zap.Int("others", len(others)),
	)

	if err := t.writer.WriteEpisodePosts(episodes); err != nil {
		return err
	}

	var trailerPtr *models.Post
	if hasTrailer {
		trailerPtr = &trailer
	}
	if err := t.writer.WriteSelectedPosts(trailerPtr, others); err != nil {
		return err
	}

	if err := t.store.Append(ctx, snapshot, posts); err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	metrics.HistoryRowsAppended.WithLabelValues(t.cfg.Storage.Backend).Add(float64(len(posts)))

	rows, err := t.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	epGroups, otherGroups := series.Partition(series.Build(rows))

	if err := t.writer.WriteEpisodeChart(epGroups); err != nil {
		return err
	}
	if err := t.writer.WriteOtherChart(otherGroups); err != nil {
		return err
	}

	return t.writer.WriteDashboard(report.DashboardData{
		Community:   t.cfg.Search.Community,
		Query:       t.cfg.Search.Query,
		GeneratedAt: snapshot,
		Trailer:     trailerPtr,
		Episodes:    episodes,
		Others:      others,
	})
}
