package history

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jjf3/heated-rivalry-tracker/internal/db"
	"github.com/jjf3/heated-rivalry-tracker/internal/models"
)

// PostgresStore appends snapshot rows to the snapshots table.
// The table is insert-only; nothing in this store updates or deletes.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Postgres-backed history store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Append implements Store. All rows of one run are written in a single
// transaction so a failed run never leaves a partial snapshot behind.
func (s *PostgresStore) Append(ctx context.Context, snapshot time.Time, posts []models.Post) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return db.WrapError(err, "begin snapshot append")
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO snapshots (snapshot_utc, post_id, post_name, episode_code, is_episode, is_trailer, title, permalink, num_comments)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	for _, p := range posts {
		row := rowFromPost(snapshot, p)
		if _, err := tx.Exec(ctx, query,
			snapshot,
			row.PostID,
			row.PostName,
			row.EpisodeCode,
			row.IsEpisode,
			row.IsTrailer,
			row.Title,
			row.Permalink,
			row.NumComments,
		); err != nil {
			return db.WrapError(err, "append snapshot row")
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return db.WrapError(err, "commit snapshot append")
	}
	return nil
}

// Load implements Store. Rows come back in insert (log) order.
func (s *PostgresStore) Load(ctx context.Context) ([]Row, error) {
	query := `
		SELECT snapshot_utc, post_id, post_name, episode_code, is_episode, is_trailer, title, permalink, num_comments
		FROM snapshots
		ORDER BY id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, db.WrapError(err, "load history")
	}
	defer rows.Close()

	return scanRows(rows)
}

func scanRows(rows pgx.Rows) ([]Row, error) {
	var out []Row

	for rows.Next() {
		var (
			r    Row
			when time.Time
		)
		if err := rows.Scan(
			&when,
			&r.PostID,
			&r.PostName,
			&r.EpisodeCode,
			&r.IsEpisode,
			&r.IsTrailer,
			&r.Title,
			&r.Permalink,
			&r.NumComments,
		); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		r.SnapshotUTC = when.UTC().Format(time.RFC3339)
		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history rows: %w", err)
	}
	return out, nil
}
