package cli

import (
	"context"
	"fmt"

	"github.com/Pesokrava/ratingfy/internal/config"
	"github.com/Pesokrava/ratingfy/internal/pkg/cache"
	"github.com/Pesokrava/ratingfy/internal/pkg/database"
	"github.com/Pesokrava/ratingfy/internal/pkg/logger"
	cacheRepo "github.com/Pesokrava/ratingfy/internal/repository/cache"
	"github.com/Pesokrava/ratingfy/internal/repository/postgres"
	"github.com/Pesokrava/ratingfy/internal/usecase/account"
)

// Open connects to PostgreSQL and, when reachable, Redis using the same
// environment as the services. Without Redis, cached storefront payloads
// expire on their TTL instead of being invalidated.
func Open(ctx context.Context) (*Runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.NewWithLevel(cfg.Env, cfg.LogLevel).Component("ratingctl")

	db, err := database.NewPostgresDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	closers := []func(){func() { db.Close() }}

	var invalidator account.CacheInvalidator
	if client, err := cache.NewRedisClient(ctx, cfg); err != nil {
		log.Warnf("Redis unavailable, visibility cache will not be invalidated: %v", err)
	} else {
		invalidator = cacheRepo.NewVisibilityCache(client, cfg.Cache.VisibilityTTL)
		closers = append(closers, func() { client.Close() })
	}

	accounts := account.NewService(
		postgres.NewAccountRepository(db),
		postgres.NewSettingsRepository(db),
		invalidator,
		log,
	)

	return &Runtime{
		Accounts: accounts,
		Migrate: func(ctx context.Context) ([]string, error) {
			return database.RunMigrations(ctx, db)
		},
		Close: func() {
			for _, c := range closers {
				c()
			}
		},
	}, nil
}
