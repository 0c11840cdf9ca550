package history

import (
	"context"
	"fmt"

	"github.com/jjf3/heated-rivalry-tracker/internal/config"
	"github.com/jjf3/heated-rivalry-tracker/internal/db"
)

// OpenStore builds the configured history backend. The returned close
// function releases any underlying resources and is safe to call once.
func OpenStore(ctx context.Context, cfg *config.Config) (Store, func(), error) {
	switch cfg.Storage.Backend {
	case "csv":
		return NewCSVStore(cfg.Storage.HistoryFile), func() {}, nil

	case "postgres":
		pool, err := db.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("connect database: %w", err)
		}
		return NewPostgresStore(pool), pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown history backend %q", cfg.Storage.Backend)
	}
}
