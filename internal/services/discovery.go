package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shoplane-labs/catalog-discovery/internal/api/middleware"
	"github.com/shoplane-labs/catalog-discovery/internal/cache"
	"github.com/shoplane-labs/catalog-discovery/internal/config"
	appErrors "github.com/shoplane-labs/catalog-discovery/internal/errors"
	"github.com/shoplane-labs/catalog-discovery/internal/metrics"
	"github.com/shoplane-labs/catalog-discovery/internal/models"
	repository "github.com/shoplane-labs/catalog-discovery/internal/repositories"
	"github.com/google/uuid"
)

// DiscoveryService produces "similar products" recommendations through an
// ordered fallback pipeline: shared categories, then name tokens, then a
// price band. Only one tier's results are ever returned.
type DiscoveryService interface {
	FindSimilar(ctx context.Context, productID uuid.UUID) []*models.Product
}

type discoveryService struct {
	repo  repository.CatalogRepository
	cache cache.Cache
	cfg   *config.Config
}

func NewDiscoveryService(repo repository.CatalogRepository, c cache.Cache, cfg *config.Config) DiscoveryService {
	return &discoveryService{repo: repo, cache: c, cfg: cfg}
}

// similarityTier is one fallback strategy. The orchestrator runs tiers in
// order and stops at the first tier yielding at least one product; the last
// tier's result is returned unconditionally, empty or not.
type similarityTier struct {
	name string
	run  func(ctx context.Context) ([]*models.Product, error)
}

func (s *discoveryService) FindSimilar(ctx context.Context, productID uuid.UUID) []*models.Product {
	return listOrEmpty(ctx, "discovery.FindSimilar", func() ([]*models.Product, error) {

		cacheKey := cache.Key(cache.SimilarKeyPrefix, productID.String())

		var cached []*models.Product
		if cacheFetch(ctx, s.cache, cacheKey, &cached) {
			return cached, nil
		}

		ref, err := s.repo.FindProductByID(ctx, productID)
		if err != nil {
			// A missing reference product is an empty result, not a failure.
			if appErrors.IsNotFound(err) {
				return []*models.Product{}, nil
			}

			return nil, err
		}

		tiers := s.tiers(ref)

		var result []*models.Product

		for i, tier := range tiers {
			products, err := tier.run(ctx)
			if err != nil {
				return nil, err
			}

			result = products

			if len(products) > 0 || i == len(tiers)-1 {
				metrics.ObserveSimilarityTier(tier.name)
				middleware.LoggerFromContext(ctx).Debug("similar products resolved",
					slog.String("product_id", productID.String()),
					slog.String("tier", tier.name),
					slog.Int("count", len(products)),
				)

				break
			}
		}

		cacheStore(ctx, s.cache, cacheKey, result, s.cfg.Cache.SimilarTTL)

		return result, nil
	})
}

// tiers assembles the applicable strategies for a reference product. The
// category and name-token tiers are skipped entirely when the product has no
// categories or no usable tokens; the price band always runs last.
func (s *discoveryService) tiers(ref *models.Product) []similarityTier {
	limit := s.cfg.Discovery.SimilarLimit

	var tiers []similarityTier

	if ids := categoryIDs(ref); len(ids) > 0 {
		tiers = append(tiers, similarityTier{
			name: "category",
			run: func(ctx context.Context) ([]*models.Product, error) {
				return s.repo.FindSimilarByCategories(ctx, ref.ID, ids, limit)
			},
		})
	}

	if tokens := nameTokens(ref.Name, s.cfg.Discovery.MinTokenLength); len(tokens) > 0 {
		tiers = append(tiers, similarityTier{
			name: "name-token",
			run: func(ctx context.Context) ([]*models.Product, error) {
				return s.repo.FindSimilarByNameTokens(ctx, ref.ID, tokens, limit)
			},
		})
	}

	tiers = append(tiers, similarityTier{
		name: "price-band",
		run: func(ctx context.Context) ([]*models.Product, error) {
			minPrice := ref.Price * s.cfg.Discovery.PriceBandLow
			maxPrice := ref.Price * s.cfg.Discovery.PriceBandHigh

			return s.repo.FindSimilarByPriceBand(ctx, ref.ID, minPrice, maxPrice, limit)
		},
	})

	return tiers
}

func categoryIDs(p *models.Product) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p.Categories))
	for _, c := range p.Categories {
		ids = append(ids, c.ID)
	}

	return ids
}

// nameTokens splits a product name on whitespace and keeps tokens longer
// than minLength characters.
func nameTokens(name string, minLength int) []string {
	var tokens []string

	for _, token := range strings.Fields(name) {
		if len(token) > minLength {
			tokens = append(tokens, token)
		}
	}

	return tokens
}
