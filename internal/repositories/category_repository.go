package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shoplane-labs/catalog-discovery/internal/models"
	"github.com/shoplane-labs/catalog-discovery/internal/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CategoryRepository interface {
	FindCategoriesByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Category, error)
}

type categoryRepository struct {
	DB *sql.DB
}

func NewCategoryRepo(db *sql.DB) CategoryRepository {
	return &categoryRepository{DB: db}
}

func (r *categoryRepository) FindCategoriesByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Category, error) {
	if len(ids) == 0 {
		return []models.Category{}, nil
	}

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT c.id, c.main_category, c.sub_category, c.final_category, c.created_at
		FROM categories c
		WHERE c.id = ANY($1)`

	rows, err := r.DB.QueryContext(dbCtx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	defer rows.Close()

	var categories []models.Category

	for rows.Next() {
		var (
			category      models.Category
			subCategory   sql.NullString
			finalCategory sql.NullString
		)

		err := rows.Scan(&category.ID, &category.MainCategory, &subCategory, &finalCategory, &category.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}

		category.SubCategory = subCategory.String
		category.FinalCategory = finalCategory.String

		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}
