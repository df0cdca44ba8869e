package repository

import (
	"context"
	"errors"

	"foodflex/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProductNotFound is a domain-specific error returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the catalog operations this service needs: stock
// reservation and restoration. Catalog CRUD lives outside this service.
type ProductRepository interface {
	// FindByID retrieves a single product.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindByIDsForUpdate retrieves products with row-level write locks,
	// ordered by ID so concurrent checkouts acquire locks in the same
	// sequence. Must be called inside a transaction.
	FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]*entity.Product, error)

	// UpdateStock persists the mutated stock quantity and sales counter.
	UpdateStock(ctx context.Context, product *entity.Product) error
}
