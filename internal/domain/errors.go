// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is wrapped by every error reporting an absent entity.
var ErrNotFound = errors.New("not found")

var (
	// ErrUserNotFound indicates that the user is not found.
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)
	// ErrProductNotFound indicates that the product is not found.
	ErrProductNotFound = fmt.Errorf("product %w", ErrNotFound)
	// ErrSessionNotFound indicates that the session is not found.
	ErrSessionNotFound = fmt.Errorf("session %w", ErrNotFound)
)

var (
	// ErrInsufficientFunds indicates that the buyer deposit does not cover the purchase.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInsufficientStock indicates that the product quantity does not cover the purchase.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrInvalidCoin indicates a coin outside of the accepted denominations.
	ErrInvalidCoin = errors.New("invalid coin")
	// ErrInvalidQuantity indicates a non positive purchase quantity or a negative stock.
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrInvalidCost indicates a product cost outside of [0, MaxCost].
	ErrInvalidCost = errors.New("invalid cost")
	// ErrEmptyPurchase indicates a purchase without lines.
	ErrEmptyPurchase = errors.New("empty purchase")
)

var (
	// ErrAccessDenied indicates that the requester does not own the resource.
	ErrAccessDenied = errors.New("access denied")
	// ErrForbiddenRole indicates that the requester role may not use the endpoint.
	ErrForbiddenRole = errors.New("forbidden role")
	// ErrInvalidRole indicates an unknown role.
	ErrInvalidRole = errors.New("invalid role")
)
