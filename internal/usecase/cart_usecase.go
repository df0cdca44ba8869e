// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"foodflex/internal/domain/entity"

	"github.com/google/uuid"
)

// CartUsecase defines the interface for cart staging operations. Cart
// mutations never touch product stock; reservation happens at checkout.
type CartUsecase interface {
	// GetCart retrieves the caller's cart, creating an empty one if missing.
	GetCart(ctx context.Context, principal *entity.Principal) (*entity.Cart, error)

	// AddItem adds a product line to the cart, merging quantities when the
	// product is already present. Stock availability is checked advisorily.
	AddItem(ctx context.Context, principal *entity.Principal, input *AddCartItemInput) (*entity.Cart, error)

	// UpdateItem replaces the quantity of an existing cart line.
	UpdateItem(ctx context.Context, principal *entity.Principal, itemID uuid.UUID, input *UpdateCartItemInput) (*entity.Cart, error)

	// RemoveItem deletes a single cart line.
	RemoveItem(ctx context.Context, principal *entity.Principal, itemID uuid.UUID) (*entity.Cart, error)

	// Clear deletes every line in the caller's cart.
	Clear(ctx context.Context, principal *entity.Principal) error
}

// --- Input DTOs ---

// AddCartItemInput defines the data required to add a product to the cart.
type AddCartItemInput struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// UpdateCartItemInput defines the data required to change a cart line quantity.
type UpdateCartItemInput struct {
	Quantity int `json:"quantity"`
}
