package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shoplane-labs/catalog-discovery/internal/config"
	"github.com/redis/go-redis/v9"
)

func NewRedisClient(cfg *config.Config) (*redis.Client, error) {

	redisURL := cfg.RedisConnect.GetDSN()

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		slog.Error("Failed to parse Redis URL", slog.Any("error", err))
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opt.DB = cfg.RedisConnect.DB

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Test the connection
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Error("Failed to connect to Redis", slog.Any("error", err))
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("Connected to Redis", slog.String("host", cfg.RedisConnect.Host))

	return client, nil
}
