// Package history implements the append-only snapshot log.
//
// One row is written per post per run. Rows are never updated or deleted;
// row order in the log is run order, and readers must sort by time
// themselves. A single concurrent writer is assumed — overlapping runs are
// prevented at the scheduling layer, not here.
package history

import (
	"context"
	"time"

	"github.com/jjf3/heated-rivalry-tracker/internal/models"
)

// Columns, in on-disk order. This is the log's contract; version bumps get
// a new header.
var Columns = []string{
	"snapshot_utc",
	"post_id",
	"post_name",
	"episode_code",
	"is_episode",
	"is_trailer",
	"title",
	"permalink",
	"num_comments",
}

// Row is one snapshot observation of one post.
type Row struct {
	SnapshotUTC string // RFC 3339 with offset; consumers parse and may drop
	PostID      string
	PostName    string
	EpisodeCode string // empty when absent
	IsEpisode   bool   // derived once at write time, never re-derived
	IsTrailer   bool
	Title       string
	Permalink   string
	NumComments int
}

// Store is the durable append-only log. Append is the only mutation.
type Store interface {
	// Append writes one row per post, in input order, stamped with the
	// run's snapshot time.
	Append(ctx context.Context, snapshot time.Time, posts []models.Post) error

	// Load returns every row ever appended, in log order.
	Load(ctx context.Context) ([]Row, error)
}

// rowFromPost projects the narrow persisted slice of a Post.
func rowFromPost(snapshot time.Time, p models.Post) Row {
	return Row{
		SnapshotUTC: snapshot.Format(time.RFC3339),
		PostID:      p.ID,
		PostName:    p.Name,
		EpisodeCode: p.EpisodeCode,
		IsEpisode:   p.IsEpisode(),
		IsTrailer:   p.IsTrailer,
		Title:       p.Title,
		Permalink:   p.Permalink,
		NumComments: p.NumComments,
	}
}
