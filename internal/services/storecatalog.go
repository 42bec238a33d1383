package service

import (
	"context"
	"sort"

	"github.com/shoplane-labs/catalog-discovery/internal/cache"
	"github.com/shoplane-labs/catalog-discovery/internal/config"
	"github.com/shoplane-labs/catalog-discovery/internal/models"
	repository "github.com/shoplane-labs/catalog-discovery/internal/repositories"
	"github.com/google/uuid"
)

// StoreCatalogService summarizes which categories a store's active catalog
// spans, annotated with per-category product counts.
type StoreCatalogService interface {
	SummarizeCategories(ctx context.Context, storeID uuid.UUID) []models.CategoryWithCount
}

type storeCatalogService struct {
	catalogRepo  repository.CatalogRepository
	categoryRepo repository.CategoryRepository
	cache        cache.Cache
	cfg          *config.Config
}

func NewStoreCatalogService(catalogRepo repository.CatalogRepository, categoryRepo repository.CategoryRepository, c cache.Cache, cfg *config.Config) StoreCatalogService {
	return &storeCatalogService{
		catalogRepo:  catalogRepo,
		categoryRepo: categoryRepo,
		cache:        c,
		cfg:          cfg,
	}
}

func (s *storeCatalogService) SummarizeCategories(ctx context.Context, storeID uuid.UUID) []models.CategoryWithCount {
	return listOrEmpty(ctx, "storecatalog.SummarizeCategories", func() ([]models.CategoryWithCount, error) {

		cacheKey := cache.Key(cache.StoreCategoriesKeyPrefix, storeID.String())

		var cached []models.CategoryWithCount
		if cacheFetch(ctx, s.cache, cacheKey, &cached) {
			return cached, nil
		}

		products, err := s.catalogRepo.FindStoreProducts(ctx, storeID)
		if err != nil {
			return nil, err
		}

		// A product contributes to every category it references, so the
		// counts may sum to more than the product total.
		counts := make(map[uuid.UUID]int)

		for _, product := range products {
			for _, category := range product.Categories {
				counts[category.ID]++
			}
		}

		if len(counts) == 0 {
			return []models.CategoryWithCount{}, nil
		}

		ids := make([]uuid.UUID, 0, len(counts))
		for id := range counts {
			ids = append(ids, id)
		}

		categories, err := s.categoryRepo.FindCategoriesByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}

		summary := make([]models.CategoryWithCount, 0, len(categories))

		for _, category := range categories {
			summary = append(summary, models.CategoryWithCount{
				Category:     category,
				ProductCount: counts[category.ID],
			})
		}

		sort.SliceStable(summary, func(i, j int) bool {
			if summary[i].ProductCount != summary[j].ProductCount {
				return summary[i].ProductCount > summary[j].ProductCount
			}

			return summary[i].MainCategory < summary[j].MainCategory
		})

		cacheStore(ctx, s.cache, cacheKey, summary, s.cfg.Cache.CategoriesTTL)

		return summary, nil
	})
}
