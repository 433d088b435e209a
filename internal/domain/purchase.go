package domain

import (
	"github.com/go-petr/pet-vending/pkg/coinpkg"
	"github.com/google/uuid"
)

// PurchaseLine is a single product request of a purchase.
type PurchaseLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int32     `json:"amount"`
}

// BoughtProduct is a fulfilled purchase line.
//
// Product is the snapshot taken right after the line's stock was decremented.
type BoughtProduct struct {
	Product  Product `json:"product"`
	Quantity int32   `json:"amount"`
	Cost     int64   `json:"cost"`
}

// PurchaseResult is the outcome of a purchase.
type PurchaseResult struct {
	BoughtProducts []BoughtProduct  `json:"bought_products"`
	TotalSpent     int64            `json:"total_spent"`
	Balance        int64            `json:"balance"`
	Changes        []coinpkg.Change `json:"changes"`
}
