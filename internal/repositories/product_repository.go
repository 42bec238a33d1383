package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	appErrors "github.com/shoplane-labs/catalog-discovery/internal/errors"
	"github.com/shoplane-labs/catalog-discovery/internal/models"
	"github.com/shoplane-labs/catalog-discovery/internal/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// CatalogRepository is the read-only data access surface the discovery and
// listing services are built on. Every query applies product eligibility
// (active product, active store) at the SQL level; the similarity queries
// additionally require the product to be in stock.
type CatalogRepository interface {
	FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindSimilarByCategories(ctx context.Context, excludeID uuid.UUID, categoryIDs []uuid.UUID, limit int) ([]*models.Product, error)
	FindSimilarByNameTokens(ctx context.Context, excludeID uuid.UUID, tokens []string, limit int) ([]*models.Product, error)
	FindSimilarByPriceBand(ctx context.Context, excludeID uuid.UUID, minPrice, maxPrice float64, limit int) ([]*models.Product, error)
	ListProducts(ctx context.Context, opts models.ListOptions) ([]*models.Product, error)
	ListEligibleWithOrderCounts(ctx context.Context) ([]*models.Product, error)
	CountProducts(ctx context.Context, opts models.ListOptions) (int64, error)
	FindStoreProducts(ctx context.Context, storeID uuid.UUID) ([]*models.Product, error)
}

type catalogRepository struct {
	DB *sql.DB
}

func NewCatalogRepo(db *sql.DB) CatalogRepository {
	return &catalogRepository{DB: db}
}

const productColumns = `p.id, p.store_id, p.name, p.description, p.price, p.active, p.in_stock, p.stock, p.created_at, p.updated_at`

// scanPrice converts the NUMERIC price column, which arrives as its textual
// representation, into a plain float64. This is the single place decimal
// coercion happens; services only ever see native numbers.
func scanPrice(raw string) (float64, error) {
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price value %q: %w", raw, err)
	}

	return price, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	product := &models.Product{}

	var (
		description sql.NullString
		rawPrice    string
	)

	err := row.Scan(
		&product.ID,
		&product.StoreID,
		&product.Name,
		&description,
		&rawPrice,
		&product.Active,
		&product.InStock,
		&product.Stock,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	product.Description = description.String

	product.Price, err = scanPrice(rawPrice)
	if err != nil {
		return nil, err
	}

	return product, nil
}

func (r *catalogRepository) collectProducts(rows *sql.Rows, withOrderCount bool) ([]*models.Product, error) {
	defer rows.Close()

	var products []*models.Product

	for rows.Next() {
		product := &models.Product{}

		var (
			description sql.NullString
			rawPrice    string
		)

		dest := []any{
			&product.ID,
			&product.StoreID,
			&product.Name,
			&description,
			&rawPrice,
			&product.Active,
			&product.InStock,
			&product.Stock,
			&product.CreatedAt,
			&product.UpdatedAt,
		}
		if withOrderCount {
			dest = append(dest, &product.OrderItemCount)
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}

		product.Description = description.String

		price, err := scanPrice(rawPrice)
		if err != nil {
			return nil, err
		}

		product.Price = price

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

func (r *catalogRepository) FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + productColumns + `
		FROM products p
		WHERE p.id = $1`

	product, err := scanProduct(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, fmt.Errorf("failed to find product by id: %w", err)
	}

	if err := r.attachCategories(dbCtx, []*models.Product{product}); err != nil {
		return nil, err
	}

	if err := r.attachImages(dbCtx, []*models.Product{product}); err != nil {
		return nil, err
	}

	return product, nil
}

func (r *catalogRepository) FindSimilarByCategories(ctx context.Context, excludeID uuid.UUID, categoryIDs []uuid.UUID, limit int) ([]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	// DISTINCT collapses products matched through more than one category.
	query := `
		SELECT DISTINCT ` + productColumns + `
		FROM products p
		JOIN stores s ON s.id = p.store_id
		JOIN product_categories pc ON pc.product_id = p.id
		WHERE pc.category_id = ANY($1)
		  AND p.id <> $2
		  AND p.active = TRUE
		  AND p.in_stock = TRUE
		  AND s.active = TRUE
		ORDER BY p.created_at DESC
		LIMIT $3`

	rows, err := r.DB.QueryContext(dbCtx, query, pq.Array(categoryIDs), excludeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query similar products by category: %w", err)
	}

	products, err := r.collectProducts(rows, false)
	if err != nil {
		return nil, err
	}

	if err := r.attachImages(dbCtx, products); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *catalogRepository) FindSimilarByNameTokens(ctx context.Context, excludeID uuid.UUID, tokens []string, limit int) ([]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	args := []any{excludeID}
	conditions := make([]string, 0, len(tokens))

	for i, token := range tokens {
		args = append(args, "%"+token+"%")
		conditions = append(conditions, fmt.Sprintf("(p.name ILIKE $%d OR p.description ILIKE $%d)", i+2, i+2))
	}

	query := fmt.Sprintf(`
		SELECT `+productColumns+`
		FROM products p
		JOIN stores s ON s.id = p.store_id
		WHERE p.id <> $1
		  AND p.active = TRUE
		  AND p.in_stock = TRUE
		  AND s.active = TRUE
		  AND (%s)
		ORDER BY p.created_at DESC
		LIMIT $%d`, strings.Join(conditions, " OR "), len(args)+1)

	args = append(args, limit)

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query similar products by name tokens: %w", err)
	}

	products, err := r.collectProducts(rows, false)
	if err != nil {
		return nil, err
	}

	if err := r.attachImages(dbCtx, products); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *catalogRepository) FindSimilarByPriceBand(ctx context.Context, excludeID uuid.UUID, minPrice, maxPrice float64, limit int) ([]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	// Band boundaries are inclusive on both ends.
	query := `
		SELECT ` + productColumns + `
		FROM products p
		JOIN stores s ON s.id = p.store_id
		WHERE p.id <> $1
		  AND p.active = TRUE
		  AND p.in_stock = TRUE
		  AND s.active = TRUE
		  AND p.price >= $2
		  AND p.price <= $3
		ORDER BY p.created_at DESC
		LIMIT $4`

	rows, err := r.DB.QueryContext(dbCtx, query, excludeID, minPrice, maxPrice, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query similar products by price band: %w", err)
	}

	products, err := r.collectProducts(rows, false)
	if err != nil {
		return nil, err
	}

	if err := r.attachImages(dbCtx, products); err != nil {
		return nil, err
	}

	return products, nil
}

// buildListFilter composes the WHERE clause shared by ListProducts and
// CountProducts. Returned args line up with $1..$n in the clause.
func buildListFilter(opts models.ListOptions) (string, []any) {
	clauses := []string{"p.active = TRUE", "s.active = TRUE"}
	args := []any{}

	if opts.CategoryID != nil {
		args = append(args, *opts.CategoryID)
		clauses = append(clauses, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM product_categories pc WHERE pc.product_id = p.id AND pc.category_id = $%d)", len(args)))
	}

	if opts.StoreID != nil {
		args = append(args, *opts.StoreID)
		clauses = append(clauses, fmt.Sprintf("p.store_id = $%d", len(args)))
	}

	if opts.SearchQuery != "" {
		args = append(args, "%"+opts.SearchQuery+"%")
		clauses = append(clauses, fmt.Sprintf("(p.name ILIKE $%d OR p.description ILIKE $%d)", len(args), len(args)))
	}

	return strings.Join(clauses, " AND "), args
}

func (r *catalogRepository) ListProducts(ctx context.Context, opts models.ListOptions) ([]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	where, args := buildListFilter(opts)

	limit := opts.Limit
	if limit <= 0 {
		limit = models.DefaultListLimit
	}

	orderBy := "p.created_at DESC"
	columns := productColumns

	if opts.Trending {
		columns += `, (SELECT COUNT(*) FROM order_items oi WHERE oi.product_id = p.id) AS order_item_count`
		orderBy = "order_item_count DESC"
	}

	args = append(args, limit)

	query := fmt.Sprintf(`
		SELECT %s
		FROM products p
		JOIN stores s ON s.id = p.store_id
		WHERE %s
		ORDER BY %s
		LIMIT $%d`, columns, where, orderBy, len(args))

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	products, err := r.collectProducts(rows, opts.Trending)
	if err != nil {
		return nil, err
	}

	if err := r.attachImages(dbCtx, products); err != nil {
		return nil, err
	}

	return products, nil
}

// ListEligibleWithOrderCounts returns every eligible product with its
// order-item count, ordered by creation time only. The popularity sort is the
// caller's responsibility; this exists for the in-memory trending helper,
// which assumes a small catalog.
func (r *catalogRepository) ListEligibleWithOrderCounts(ctx context.Context) ([]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + productColumns + `, (SELECT COUNT(*) FROM order_items oi WHERE oi.product_id = p.id) AS order_item_count
		FROM products p
		JOIN stores s ON s.id = p.store_id
		WHERE p.active = TRUE
		  AND s.active = TRUE
		ORDER BY p.created_at DESC`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products with order counts: %w", err)
	}

	return r.collectProducts(rows, true)
}

func (r *catalogRepository) CountProducts(ctx context.Context, opts models.ListOptions) (int64, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	where, args := buildListFilter(opts)

	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM products p
		JOIN stores s ON s.id = p.store_id
		WHERE %s`, where)

	var total int64

	if err := r.DB.QueryRowContext(dbCtx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	return total, nil
}

// FindStoreProducts returns a store's active products with their categories
// attached, for the category summary computation.
func (r *catalogRepository) FindStoreProducts(ctx context.Context, storeID uuid.UUID) ([]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + productColumns + `
		FROM products p
		WHERE p.store_id = $1
		  AND p.active = TRUE`

	rows, err := r.DB.QueryContext(dbCtx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch store products: %w", err)
	}

	products, err := r.collectProducts(rows, false)
	if err != nil {
		return nil, err
	}

	if err := r.attachCategories(dbCtx, products); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *catalogRepository) attachCategories(ctx context.Context, products []*models.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(products))
	byID := make(map[uuid.UUID]*models.Product, len(products))

	for _, p := range products {
		ids = append(ids, p.ID)
		byID[p.ID] = p
	}

	query := `
		SELECT pc.product_id, c.id, c.main_category, c.sub_category, c.final_category, c.created_at
		FROM product_categories pc
		JOIN categories c ON c.id = pc.category_id
		WHERE pc.product_id = ANY($1)`

	rows, err := r.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to fetch product categories: %w", err)
	}

	defer rows.Close()

	for rows.Next() {
		var (
			productID     uuid.UUID
			category      models.Category
			subCategory   sql.NullString
			finalCategory sql.NullString
		)

		err := rows.Scan(&productID, &category.ID, &category.MainCategory, &subCategory, &finalCategory, &category.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to scan product category: %w", err)
		}

		category.SubCategory = subCategory.String
		category.FinalCategory = finalCategory.String

		if product, ok := byID[productID]; ok {
			product.Categories = append(product.Categories, category)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating product categories: %w", err)
	}

	return nil
}

func (r *catalogRepository) attachImages(ctx context.Context, products []*models.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(products))
	byID := make(map[uuid.UUID]*models.Product, len(products))

	for _, p := range products {
		ids = append(ids, p.ID)
		byID[p.ID] = p
	}

	query := `
		SELECT pi.product_id, pi.url
		FROM product_images pi
		WHERE pi.product_id = ANY($1)
		ORDER BY pi.position ASC`

	rows, err := r.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to fetch product images: %w", err)
	}

	defer rows.Close()

	for rows.Next() {
		var (
			productID uuid.UUID
			url       string
		)

		if err := rows.Scan(&productID, &url); err != nil {
			return fmt.Errorf("failed to scan product image: %w", err)
		}

		if product, ok := byID[productID]; ok {
			product.Images = append(product.Images, url)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating product images: %w", err)
	}

	return nil
}
