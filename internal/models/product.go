package models

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          uuid.UUID  `json:"id"`
	StoreID     uuid.UUID  `json:"store_id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Price       float64    `json:"price"`
	Active      bool       `json:"active"`
	InStock     bool       `json:"in_stock"`
	Stock       int        `json:"stock"`
	Categories  []Category `json:"categories,omitempty"`
	Images      []string   `json:"images,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// OrderItemCount is only populated by the trending listing paths.
	OrderItemCount int64 `json:"order_item_count,omitempty"`
}

// ListOptions are the filters accepted by the product listing entry points.
// All filters are AND-combined when present; eligibility (active product,
// active store) is always applied on top.
type ListOptions struct {
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	StoreID     *uuid.UUID `json:"store_id,omitempty"`
	SearchQuery string     `json:"q,omitempty" validate:"omitempty,max=200"`
	Limit       int        `json:"limit" validate:"omitempty,gte=1,lte=100"`
	Trending    bool       `json:"trending"`
}

const DefaultListLimit = 8
