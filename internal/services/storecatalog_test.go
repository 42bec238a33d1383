package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shoplane-labs/catalog-discovery/internal/models"
	"github.com/shoplane-labs/catalog-discovery/internal/repositories/mocks"
	service "github.com/shoplane-labs/catalog-discovery/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func storeProduct(categoryIDs ...uuid.UUID) *models.Product {
	p := &models.Product{ID: uuid.New(), Active: true}
	for _, id := range categoryIDs {
		p.Categories = append(p.Categories, models.Category{ID: id})
	}

	return p
}

func TestSummarizeCategories(t *testing.T) {
	ctx := context.Background()
	storeID := uuid.New()

	t.Run("Counts per category and sorts count desc, name asc", func(t *testing.T) {
		// Arrange: A referenced 3 times, B 5 times, C 3 times. Ties break on
		// the main category name, so the expected order is B, A, C.
		mockCatalog := new(mocks.CatalogRepository)
		mockCategory := new(mocks.CategoryRepository)
		stores := service.NewStoreCatalogService(mockCatalog, mockCategory, nil, testConfig())

		catA, catB, catC := uuid.New(), uuid.New(), uuid.New()

		products := []*models.Product{
			storeProduct(catA, catB),
			storeProduct(catA, catB),
			storeProduct(catA, catC),
			storeProduct(catB, catC),
			storeProduct(catB, catC),
			storeProduct(catB),
		}

		mockCatalog.On("FindStoreProducts", mock.Anything, storeID).Return(products, nil).Once()
		mockCategory.On("FindCategoriesByIDs", mock.Anything, mock.MatchedBy(func(ids []uuid.UUID) bool {
			return len(ids) == 3
		})).Return([]models.Category{
			{ID: catC, MainCategory: "C"},
			{ID: catA, MainCategory: "A"},
			{ID: catB, MainCategory: "B"},
		}, nil).Once()

		// Act
		summary := stores.SummarizeCategories(ctx, storeID)

		// Assert
		assert.Len(t, summary, 3)
		assert.Equal(t, "B", summary[0].MainCategory)
		assert.Equal(t, 5, summary[0].ProductCount)
		assert.Equal(t, "A", summary[1].MainCategory)
		assert.Equal(t, 3, summary[1].ProductCount)
		assert.Equal(t, "C", summary[2].MainCategory)
		assert.Equal(t, 3, summary[2].ProductCount)
		mockCatalog.AssertExpectations(t)
		mockCategory.AssertExpectations(t)
	})

	t.Run("Counts can sum past the product total", func(t *testing.T) {
		// Arrange: two products, both in both categories.
		mockCatalog := new(mocks.CatalogRepository)
		mockCategory := new(mocks.CategoryRepository)
		stores := service.NewStoreCatalogService(mockCatalog, mockCategory, nil, testConfig())

		catA, catB := uuid.New(), uuid.New()

		mockCatalog.On("FindStoreProducts", mock.Anything, storeID).
			Return([]*models.Product{storeProduct(catA, catB), storeProduct(catA, catB)}, nil).Once()
		mockCategory.On("FindCategoriesByIDs", mock.Anything, mock.Anything).
			Return([]models.Category{
				{ID: catA, MainCategory: "A"},
				{ID: catB, MainCategory: "B"},
			}, nil).Once()

		// Act
		summary := stores.SummarizeCategories(ctx, storeID)

		// Assert
		total := 0
		for _, entry := range summary {
			total += entry.ProductCount
		}

		assert.Equal(t, 4, total)
		mockCatalog.AssertExpectations(t)
	})

	t.Run("Store with no active products returns empty list", func(t *testing.T) {
		// Arrange
		mockCatalog := new(mocks.CatalogRepository)
		mockCategory := new(mocks.CategoryRepository)
		stores := service.NewStoreCatalogService(mockCatalog, mockCategory, nil, testConfig())

		mockCatalog.On("FindStoreProducts", mock.Anything, storeID).
			Return([]*models.Product{}, nil).Once()

		// Act
		summary := stores.SummarizeCategories(ctx, storeID)

		// Assert
		assert.Empty(t, summary)
		assert.NotNil(t, summary)
		mockCategory.AssertNotCalled(t, "FindCategoriesByIDs", mock.Anything, mock.Anything)
		mockCatalog.AssertExpectations(t)
	})

	t.Run("Uncategorized products yield empty summary", func(t *testing.T) {
		// Arrange
		mockCatalog := new(mocks.CatalogRepository)
		mockCategory := new(mocks.CategoryRepository)
		stores := service.NewStoreCatalogService(mockCatalog, mockCategory, nil, testConfig())

		mockCatalog.On("FindStoreProducts", mock.Anything, storeID).
			Return([]*models.Product{storeProduct(), storeProduct()}, nil).Once()

		// Act
		summary := stores.SummarizeCategories(ctx, storeID)

		// Assert
		assert.Empty(t, summary)
		mockCategory.AssertNotCalled(t, "FindCategoriesByIDs", mock.Anything, mock.Anything)
		mockCatalog.AssertExpectations(t)
	})

	t.Run("Repository failure yields empty list", func(t *testing.T) {
		// Arrange
		mockCatalog := new(mocks.CatalogRepository)
		mockCategory := new(mocks.CategoryRepository)
		stores := service.NewStoreCatalogService(mockCatalog, mockCategory, nil, testConfig())

		mockCatalog.On("FindStoreProducts", mock.Anything, storeID).
			Return(nil, errors.New("connection refused")).Once()

		// Act
		summary := stores.SummarizeCategories(ctx, storeID)

		// Assert
		assert.Empty(t, summary)
		mockCatalog.AssertExpectations(t)
	})
}
