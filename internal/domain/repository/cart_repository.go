package repository

import (
	"context"
	"errors"

	"foodflex/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCartNotFound is a domain-specific error returned when a cart is not found.
var ErrCartNotFound = errors.New("cart not found")

// ErrCartItemNotFound is a domain-specific error returned when a cart item is not found.
var ErrCartItemNotFound = errors.New("cart item not found")

// CartRepository defines the standard operations for cart persistence.
type CartRepository interface {
	// FindByUserID retrieves a buyer's cart with items and their live products.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)

	// GetOrCreate retrieves a buyer's cart, creating an empty one if missing.
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)

	// FindItemByID retrieves a single cart item, scoped to the owning buyer.
	FindItemByID(ctx context.Context, itemID, userID uuid.UUID) (*entity.CartItem, error)

	// UpsertItem inserts a new cart line or updates the quantity of an
	// existing line for the same product.
	UpsertItem(ctx context.Context, item *entity.CartItem) error

	// RemoveItem deletes a single cart line.
	RemoveItem(ctx context.Context, itemID uuid.UUID) error

	// Clear deletes every line in the cart.
	Clear(ctx context.Context, cartID uuid.UUID) error
}
