package bootstrap

import (
	"context"
	"log/slog"

	"station-booking/internal/infra/cache"
	"station-booking/internal/pkg/config"
	"station-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewResourceCache,
	),
)

// NewResourceCache falls back to a no-op cache when REDIS_ADDR is empty.
func NewResourceCache(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) shared.ResourceCache {
	if cfg.Redis.Addr == "" {
		return cache.NewNop()
	}

	client := cache.NewRedisClient(cfg.Redis)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// unreachable Redis only degrades to cache misses
			if err := client.Ping(ctx).Err(); err != nil {
				logger.Warn("Redisに接続できません", "addr", cfg.Redis.Addr, "error", err.Error())
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return cache.NewRedisCache(client, cfg.Redis.TTL, logger)
}
