package service

import (
	"context"
	"sort"

	"github.com/shoplane-labs/catalog-discovery/internal/config"
	"github.com/shoplane-labs/catalog-discovery/internal/models"
	repository "github.com/shoplane-labs/catalog-discovery/internal/repositories"
)

// CatalogService serves the parametrized product listing entry points.
//
// TrendingProducts and ListProducts with Trending=true implement the same
// concept two ways: the former fetches every eligible product and sorts in
// memory, the latter sorts in SQL. They are kept as distinct operations on
// purpose; the in-memory variant is only correct while the catalog stays
// small.
type CatalogService interface {
	ListProducts(ctx context.Context, opts models.ListOptions) []*models.Product
	TrendingProducts(ctx context.Context, limit int) []*models.Product
	LatestProducts(ctx context.Context, limit int) []*models.Product
	CountProducts(ctx context.Context, opts models.ListOptions) int64
}

type catalogService struct {
	repo repository.CatalogRepository
	cfg  *config.Config
}

func NewCatalogService(repo repository.CatalogRepository, cfg *config.Config) CatalogService {
	return &catalogService{repo: repo, cfg: cfg}
}

func (s *catalogService) ListProducts(ctx context.Context, opts models.ListOptions) []*models.Product {
	return listOrEmpty(ctx, "catalog.ListProducts", func() ([]*models.Product, error) {
		if opts.Limit <= 0 {
			opts.Limit = s.cfg.Discovery.ListLimit
		}

		return s.repo.ListProducts(ctx, opts)
	})
}

func (s *catalogService) TrendingProducts(ctx context.Context, limit int) []*models.Product {
	return listOrEmpty(ctx, "catalog.TrendingProducts", func() ([]*models.Product, error) {
		if limit <= 0 {
			limit = s.cfg.Discovery.TrendingLimit
		}

		products, err := s.repo.ListEligibleWithOrderCounts(ctx)
		if err != nil {
			return nil, err
		}

		sort.SliceStable(products, func(i, j int) bool {
			return products[i].OrderItemCount > products[j].OrderItemCount
		})

		if len(products) > limit {
			products = products[:limit]
		}

		return products, nil
	})
}

func (s *catalogService) LatestProducts(ctx context.Context, limit int) []*models.Product {
	return listOrEmpty(ctx, "catalog.LatestProducts", func() ([]*models.Product, error) {
		if limit <= 0 {
			limit = s.cfg.Discovery.ListLimit
		}

		return s.repo.ListProducts(ctx, models.ListOptions{Limit: limit})
	})
}

func (s *catalogService) CountProducts(ctx context.Context, opts models.ListOptions) int64 {
	return countOrZero(ctx, "catalog.CountProducts", func() (int64, error) {
		return s.repo.CountProducts(ctx, opts)
	})
}
