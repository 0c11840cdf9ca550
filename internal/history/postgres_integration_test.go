//go:build integration
// +build integration

package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jjf3/heated-rivalry-tracker/internal/db"
	"github.com/jjf3/heated-rivalry-tracker/internal/db/testutil"
	"github.com/jjf3/heated-rivalry-tracker/internal/models"
)

func TestPostgresStore_AppendAndLoad(t *testing.T) {
	td := testutil.SetupTestDatabase(t)
	defer td.Cleanup(t)

	store := NewPostgresStore(td.Pool)
	ctx := context.Background()

	t.Run("appends one row per post in input order", func(t *testing.T) {
		td.TruncateTables(t)

		snap := time.Date(2026, 8, 1, 6, 0, 0, 0, time.UTC)
		posts := []models.Post{
			{ID: "abc", Name: "t3_abc", Title: "Heated Rivalry 1x01", EpisodeCode: "1x01", NumComments: 12},
			{ID: "def", Name: "t3_def", Title: "Official Trailer", IsTrailer: true, NumComments: 3},
		}

		require.NoError(t, store.Append(ctx, snap, posts))

		rows, err := store.Load(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 2)

		assert.Equal(t, "t3_abc", rows[0].PostName)
		assert.True(t, rows[0].IsEpisode)
		assert.Equal(t, "2026-08-01T06:00:00Z", rows[0].SnapshotUTC)
		assert.Equal(t, "t3_def", rows[1].PostName)
		assert.True(t, rows[1].IsTrailer)
	})

	t.Run("repeated appends accumulate in log order", func(t *testing.T) {
		td.TruncateTables(t)

		p := []models.Post{{ID: "abc", Name: "t3_abc", Title: "x", NumComments: 1}}
		require.NoError(t, store.Append(ctx, time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC), p))

		p[0].NumComments = 7
		require.NoError(t, store.Append(ctx, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), p))

		rows, err := store.Load(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 2)

		// Log order is append order, not time order.
		assert.Equal(t, 1, rows[0].NumComments)
		assert.Equal(t, 7, rows[1].NumComments)
	})

	t.Run("rows are immutable", func(t *testing.T) {
		td.TruncateTables(t)

		p := []models.Post{{ID: "abc", Name: "t3_abc", Title: "x", NumComments: 1}}
		require.NoError(t, store.Append(ctx, time.Now().UTC(), p))

		_, err := td.Pool.Exec(ctx, "UPDATE snapshots SET num_comments = 99")
		require.Error(t, err)
		assert.ErrorIs(t, db.WrapError(err, "update snapshot"), db.ErrImmutableRecord)
	})
}
