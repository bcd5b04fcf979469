package factory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hearthside/planner/internal/config"
	"github.com/hearthside/planner/internal/store"
	"github.com/hearthside/planner/internal/store/postgres"
	"github.com/hearthside/planner/internal/store/sqlite"
)

// NewStore selects the storage adapter based on cfg.DBDriver.
func NewStore(cfg *config.Config) (store.Store, error) {
	switch cfg.DBDriver {
	case "sqlite":
		s, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return s, nil
	case "postgres":
		db, err := postgres.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := postgres.Bootstrap(ctx, cfg.PostgresDSN); err != nil {
				log.Warn().Err(err).Msg("postgres bootstrap check failed")
			}
		}()
		return postgres.NewWithDB(db), nil
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
}
