package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/shoplane-labs/catalog-discovery/internal/api/middleware"
	"github.com/shoplane-labs/catalog-discovery/internal/cache"
)

// Cache failures are never fatal; a miss is served from the database.

func cacheFetch(ctx context.Context, c cache.Cache, key string, value any) bool {
	if c == nil {
		return false
	}

	found, err := c.Get(ctx, key, value)
	if err != nil {
		middleware.LoggerFromContext(ctx).Warn("cache read failed",
			slog.String("key", key), slog.Any("error", err))

		return false
	}

	return found
}

func cacheStore(ctx context.Context, c cache.Cache, key string, value any, ttl time.Duration) {
	if c == nil {
		return
	}

	if err := c.Set(ctx, key, value, ttl); err != nil {
		middleware.LoggerFromContext(ctx).Warn("cache write failed",
			slog.String("key", key), slog.Any("error", err))
	}
}
