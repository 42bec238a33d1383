package service

import (
	"context"
	"log/slog"

	"github.com/shoplane-labs/catalog-discovery/internal/api/middleware"
)

// The discovery and listing features are supplementary: a degraded empty
// result beats a failed page render. listOrEmpty and countOrZero are the
// single fail-soft boundary; repository errors never escape a service.

func listOrEmpty[T any](ctx context.Context, component string, fn func() ([]T, error)) []T {
	items, err := fn()
	if err != nil {
		middleware.LoggerFromContext(ctx).Error("query failed, returning empty result",
			slog.String("component", component),
			slog.Any("error", err),
		)

		return []T{}
	}

	if items == nil {
		return []T{}
	}

	return items
}

func countOrZero(ctx context.Context, component string, fn func() (int64, error)) int64 {
	total, err := fn()
	if err != nil {
		middleware.LoggerFromContext(ctx).Error("count query failed, returning zero",
			slog.String("component", component),
			slog.Any("error", err),
		)

		return 0
	}

	return total
}
