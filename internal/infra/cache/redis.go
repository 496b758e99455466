package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"station-booking/internal/pkg/config"

	"github.com/redis/go-redis/v9"
)

const resourcesPrefix = "cache:resources:"

// RedisCache is a read-through cache for catalog listings. Every failure is
// logged and reported as a miss.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
}

func NewRedisCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, logger: logger}
}

func (c *RedisCache) Get(ctx context.Context, key string, dest any) bool {
	data, err := c.client.Get(ctx, resourcesPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("cache get failed", "key", key, "error", err.Error())
		}
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Warn("cache entry undecodable", "key", key, "error", err.Error())
		return false
	}
	return true
}

func (c *RedisCache) Set(ctx context.Context, key string, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("cache encode failed", "key", key, "error", err.Error())
		return
	}
	if err := c.client.Set(ctx, resourcesPrefix+key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("cache set failed", "key", key, "error", err.Error())
	}
}

// Invalidate drops every cached catalog listing.
func (c *RedisCache) Invalidate(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, resourcesPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("cache scan failed", "error", err.Error())
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("cache invalidate failed", "keys", len(keys), "error", err.Error())
	}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
