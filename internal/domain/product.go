package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxCost is the highest accepted unit price in cents.
const MaxCost int64 = 100_000_000

// Product holds a seller's product. Cost is the unit price in cents.
type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Cost        int64     `json:"cost"`
	Quantity    int32     `json:"quantity"`
	Description string    `json:"description"`
	SellerID    uuid.UUID `json:"seller_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateProductParams is the input data to create a product.
type CreateProductParams struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Cost        int64     `json:"cost"`
	Quantity    int32     `json:"quantity"`
	Description string    `json:"description"`
	SellerID    uuid.UUID `json:"seller_id"`
}

// UpdateProductParams holds the fields to overwrite. Nil fields are kept.
type UpdateProductParams struct {
	Name        *string `json:"name,omitempty"`
	Cost        *int64  `json:"cost,omitempty"`
	Quantity    *int32  `json:"quantity,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ListProductsParams is the input data to list products.
type ListProductsParams struct {
	Limit  int32 `json:"limit"`
	Offset int32 `json:"offset"`
}
