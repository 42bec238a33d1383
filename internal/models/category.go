package models

import (
	"time"

	"github.com/google/uuid"
)

// Category identity is the (MainCategory, SubCategory, FinalCategory) tuple,
// enforced at creation time by the catalog write path.
type Category struct {
	ID            uuid.UUID `json:"id"`
	MainCategory  string    `json:"main_category"`
	SubCategory   string    `json:"sub_category,omitempty"`
	FinalCategory string    `json:"final_category,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// CategoryWithCount annotates a category with the number of a store's active
// products referencing it. ProductCount is derived per request, never stored.
type CategoryWithCount struct {
	Category
	ProductCount int `json:"product_count"`
}
