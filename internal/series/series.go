// Package series turns the flat history log into per-post time series.
//
// Everything here is a read-only view: building is side-effect-free and
// idempotent, so two passes over the same log produce identical output.
package series

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/jjf3/heated-rivalry-tracker/internal/history"
	"github.com/jjf3/heated-rivalry-tracker/pkg/logger"
)

// Point is one comment-count observation.
type Point struct {
	At          time.Time
	NumComments int
}

// Group is the time series for one post. The episode flag and labels come
// from the group's first valid row in log order; they are deliberately not
// re-evaluated per row, so a post's classification cannot flicker across
// its own series.
type Group struct {
	PostName    string
	IsEpisode   bool
	EpisodeCode string
	Title       string
	Points      []Point // ascending by time after Build
}

// Build groups history rows by post name and sorts each group's points by
// snapshot time. Rows whose snapshot time does not parse are dropped with a
// warning; a post with no valid rows gets no group at all.
func Build(rows []history.Row) map[string]*Group {
	groups := make(map[string]*Group)

	for _, r := range rows {
		at, err := time.Parse(time.RFC3339, r.SnapshotUTC)
		if err != nil {
			logger.L().Warn("dropping history row with bad snapshot time",
				zap.String("snapshot_utc", r.SnapshotUTC),
				zap.String("post_name", r.PostName),
			)
			continue
		}

		g, ok := groups[r.PostName]
		if !ok {
			g = &Group{
				PostName:    r.PostName,
				IsEpisode:   r.IsEpisode,
				EpisodeCode: r.EpisodeCode,
				Title:       r.Title,
			}
			groups[r.PostName] = g
		}

		g.Points = append(g.Points, Point{At: at, NumComments: r.NumComments})
	}

	for _, g := range groups {
		sort.SliceStable(g.Points, func(i, j int) bool {
			return g.Points[i].At.Before(g.Points[j].At)
		})
	}

	return groups
}

// Partition splits groups into episode and non-episode series, each sorted
// by post name so output order is deterministic.
func Partition(groups map[string]*Group) (episodes, others []*Group) {
	for _, g := range groups {
		if g.IsEpisode {
			episodes = append(episodes, g)
		} else {
			others = append(others, g)
		}
	}

	byName := func(s []*Group) {
		sort.Slice(s, func(i, j int) bool { return s[i].PostName < s[j].PostName })
	}
	byName(episodes)
	byName(others)

	return episodes, others
}
