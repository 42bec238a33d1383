package repository_test

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	appErrors "github.com/shoplane-labs/catalog-discovery/internal/errors"
	"github.com/shoplane-labs/catalog-discovery/internal/models"
	repository "github.com/shoplane-labs/catalog-discovery/internal/repositories"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseProductColumns() []string {
	return []string{"id", "store_id", "name", "description", "price", "active", "in_stock", "stock", "created_at", "updated_at"}
}

func productRow(cols []string, p *models.Product, rawPrice string) *sqlmock.Rows {
	return sqlmock.NewRows(cols).
		AddRow(p.ID, p.StoreID, p.Name, p.Description, rawPrice, p.Active, p.InStock, p.Stock, p.CreatedAt, p.UpdatedAt)
}

func TestNewCatalogRepo(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewCatalogRepo(db)
	assert.NotNil(t, repo, "NewCatalogRepo should return a non-nil repository")
}

func TestCatalogRepository(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewCatalogRepo(db)
	ctx := t.Context()

	now := time.Now()

	t.Run("FindProductByID", func(t *testing.T) {
		productID := uuid.New()
		storeID := uuid.New()
		categoryID := uuid.New()

		t.Run("Success with decimal coercion", func(t *testing.T) {
			// Arrange: the NUMERIC price arrives as text and must come back
			// as a plain float64.
			expected := &models.Product{
				ID:        productID,
				StoreID:   storeID,
				Name:      "Rattan Armchair",
				Active:    true,
				InStock:   true,
				Stock:     7,
				CreatedAt: now,
				UpdatedAt: now,
			}

			mock.ExpectQuery(regexp.QuoteMeta(`WHERE p.id = $1`)).
				WithArgs(productID).
				WillReturnRows(productRow(baseProductColumns(), expected, "149.99"))

			mock.ExpectQuery(regexp.QuoteMeta(`FROM product_categories pc`)).
				WithArgs(pq.Array([]uuid.UUID{productID})).
				WillReturnRows(sqlmock.NewRows([]string{"product_id", "id", "main_category", "sub_category", "final_category", "created_at"}).
					AddRow(productID, categoryID, "Furniture", "Chairs", nil, now))

			mock.ExpectQuery(regexp.QuoteMeta(`FROM product_images pi`)).
				WithArgs(pq.Array([]uuid.UUID{productID})).
				WillReturnRows(sqlmock.NewRows([]string{"product_id", "url"}).
					AddRow(productID, "https://cdn.example.com/armchair.jpg"))

			// Act
			product, err := repo.FindProductByID(ctx, productID)

			// Assert
			require.NoError(t, err)
			assert.InDelta(t, 149.99, product.Price, 1e-9)
			require.Len(t, product.Categories, 1)
			assert.Equal(t, "Furniture", product.Categories[0].MainCategory)
			assert.Equal(t, "Chairs", product.Categories[0].SubCategory)
			assert.Empty(t, product.Categories[0].FinalCategory)
			assert.Equal(t, []string{"https://cdn.example.com/armchair.jpg"}, product.Images)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Not found maps to typed error", func(t *testing.T) {
			// Arrange
			mock.ExpectQuery(regexp.QuoteMeta(`WHERE p.id = $1`)).
				WithArgs(productID).
				WillReturnRows(sqlmock.NewRows(baseProductColumns()))

			// Act
			product, err := repo.FindProductByID(ctx, productID)

			// Assert
			require.Error(t, err)
			assert.Nil(t, product)
			assert.True(t, appErrors.IsNotFound(err))
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("FindSimilarByCategories", func(t *testing.T) {
		excludeID := uuid.New()
		categoryID := uuid.New()

		t.Run("Excludes the reference product and limits", func(t *testing.T) {
			// Arrange
			sibling := &models.Product{ID: uuid.New(), StoreID: uuid.New(), Name: "Oak Table", Active: true, InStock: true, CreatedAt: now, UpdatedAt: now}

			mock.ExpectQuery(regexp.QuoteMeta(`JOIN product_categories pc ON pc.product_id = p.id`)).
				WithArgs(pq.Array([]uuid.UUID{categoryID}), excludeID, 4).
				WillReturnRows(productRow(baseProductColumns(), sibling, "89.00"))

			mock.ExpectQuery(regexp.QuoteMeta(`FROM product_images pi`)).
				WillReturnRows(sqlmock.NewRows([]string{"product_id", "url"}))

			// Act
			products, err := repo.FindSimilarByCategories(ctx, excludeID, []uuid.UUID{categoryID}, 4)

			// Assert
			require.NoError(t, err)
			require.Len(t, products, 1)
			assert.Equal(t, sibling.ID, products[0].ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("FindSimilarByNameTokens", func(t *testing.T) {
		excludeID := uuid.New()

		t.Run("Builds one ILIKE pair per token", func(t *testing.T) {
			// Arrange
			mock.ExpectQuery(regexp.QuoteMeta(`(p.name ILIKE $2 OR p.description ILIKE $2) OR (p.name ILIKE $3 OR p.description ILIKE $3)`)).
				WithArgs(excludeID, "%Walnut%", "%Table%", 4).
				WillReturnRows(sqlmock.NewRows(baseProductColumns()))

			// Act
			products, err := repo.FindSimilarByNameTokens(ctx, excludeID, []string{"Walnut", "Table"}, 4)

			// Assert
			require.NoError(t, err)
			assert.Empty(t, products)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("FindSimilarByPriceBand", func(t *testing.T) {
		excludeID := uuid.New()

		t.Run("Passes inclusive bounds", func(t *testing.T) {
			// Arrange
			candidate := &models.Product{ID: uuid.New(), StoreID: uuid.New(), Name: "Budget Lamp", Active: true, InStock: true, CreatedAt: now, UpdatedAt: now}

			mock.ExpectQuery(regexp.QuoteMeta(`AND p.price >= $2`)).
				WithArgs(excludeID, 70.0, 130.0, 4).
				WillReturnRows(productRow(baseProductColumns(), candidate, "70.00"))

			mock.ExpectQuery(regexp.QuoteMeta(`FROM product_images pi`)).
				WillReturnRows(sqlmock.NewRows([]string{"product_id", "url"}))

			// Act
			products, err := repo.FindSimilarByPriceBand(ctx, excludeID, 70.0, 130.0, 4)

			// Assert
			require.NoError(t, err)
			require.Len(t, products, 1)
			assert.InDelta(t, 70.0, products[0].Price, 1e-9)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Query error propagates", func(t *testing.T) {
			// Arrange
			dbErr := errors.New("relation does not exist")

			mock.ExpectQuery(regexp.QuoteMeta(`AND p.price >= $2`)).
				WillReturnError(dbErr)

			// Act
			products, err := repo.FindSimilarByPriceBand(ctx, excludeID, 10, 20, 4)

			// Assert
			require.Error(t, err)
			assert.ErrorIs(t, err, dbErr)
			assert.Nil(t, products)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("ListProducts", func(t *testing.T) {
		t.Run("Trending carries order-item counts", func(t *testing.T) {
			// Arrange
			cols := append(baseProductColumns(), "order_item_count")
			p := &models.Product{ID: uuid.New(), StoreID: uuid.New(), Name: "Hot Item", Active: true, InStock: true, CreatedAt: now, UpdatedAt: now}

			rows := sqlmock.NewRows(cols).
				AddRow(p.ID, p.StoreID, p.Name, p.Description, "19.50", p.Active, p.InStock, p.Stock, p.CreatedAt, p.UpdatedAt, int64(12))

			mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY order_item_count DESC`)).
				WithArgs(2).
				WillReturnRows(rows)

			mock.ExpectQuery(regexp.QuoteMeta(`FROM product_images pi`)).
				WillReturnRows(sqlmock.NewRows([]string{"product_id", "url"}))

			// Act
			products, err := repo.ListProducts(ctx, models.ListOptions{Limit: 2, Trending: true})

			// Assert
			require.NoError(t, err)
			require.Len(t, products, 1)
			assert.Equal(t, int64(12), products[0].OrderItemCount)
			assert.InDelta(t, 19.50, products[0].Price, 1e-9)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Search and store filters are AND-combined", func(t *testing.T) {
			// Arrange
			storeID := uuid.New()

			mock.ExpectQuery(regexp.QuoteMeta(`p.store_id = $1 AND (p.name ILIKE $2 OR p.description ILIKE $2)`)).
				WithArgs(storeID, "%lamp%", 8).
				WillReturnRows(sqlmock.NewRows(baseProductColumns()))

			// Act
			products, err := repo.ListProducts(ctx, models.ListOptions{StoreID: &storeID, SearchQuery: "lamp", Limit: 8})

			// Assert
			require.NoError(t, err)
			assert.Empty(t, products)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("CountProducts", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			// Arrange
			mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*)`)).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(17))

			// Act
			total, err := repo.CountProducts(ctx, models.ListOptions{})

			// Assert
			require.NoError(t, err)
			assert.Equal(t, int64(17), total)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Error", func(t *testing.T) {
			// Arrange
			mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*)`)).
				WillReturnError(errors.New("count failed"))

			// Act
			total, err := repo.CountProducts(ctx, models.ListOptions{})

			// Assert
			require.Error(t, err)
			assert.Zero(t, total)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("FindStoreProducts", func(t *testing.T) {
		storeID := uuid.New()

		t.Run("Attaches categories", func(t *testing.T) {
			// Arrange
			p := &models.Product{ID: uuid.New(), StoreID: storeID, Name: "Candles", Active: true, InStock: true, CreatedAt: now, UpdatedAt: now}
			categoryID := uuid.New()

			mock.ExpectQuery(regexp.QuoteMeta(`WHERE p.store_id = $1`)).
				WithArgs(storeID).
				WillReturnRows(productRow(baseProductColumns(), p, "9.99"))

			mock.ExpectQuery(regexp.QuoteMeta(`FROM product_categories pc`)).
				WillReturnRows(sqlmock.NewRows([]string{"product_id", "id", "main_category", "sub_category", "final_category", "created_at"}).
					AddRow(p.ID, categoryID, "Decor", nil, nil, now))

			// Act
			products, err := repo.FindStoreProducts(ctx, storeID)

			// Assert
			require.NoError(t, err)
			require.Len(t, products, 1)
			require.Len(t, products[0].Categories, 1)
			assert.Equal(t, categoryID, products[0].Categories[0].ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})
}
