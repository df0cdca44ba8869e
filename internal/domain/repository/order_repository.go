package repository

import (
	"context"
	"errors"

	"foodflex/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is a domain-specific error returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// ErrDuplicateOrderRef is returned when a generated order number or QR token
// collides with an existing row. Callers regenerate and retry instead of
// failing the whole checkout.
var ErrDuplicateOrderRef = errors.New("duplicate order number or qr token")

// OrderRepository defines the standard operations for order persistence.
type OrderRepository interface {
	// Create persists a new order together with its item snapshots.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves an order with its items.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// FindByIDForUpdate retrieves an order with a row-level write lock.
	// Must be called inside a transaction; serializes concurrent confirm,
	// complete and cancel attempts on the same order.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// FindPendingByQRToken retrieves the PENDING order matching the QR token
	// and assigned to the given seller.
	FindPendingByQRToken(ctx context.Context, qrToken string, sellerID uuid.UUID) (*entity.Order, error)

	// Update persists status, notes and transition timestamps.
	Update(ctx context.Context, order *entity.Order) error

	// ListByBuyer retrieves a buyer's orders, newest first, optionally filtered by status.
	ListByBuyer(ctx context.Context, buyerID uuid.UUID, status *entity.OrderStatus) ([]*entity.Order, error)

	// ListBySeller retrieves a seller's orders, newest first, optionally filtered by status.
	ListBySeller(ctx context.Context, sellerID uuid.UUID, status *entity.OrderStatus) ([]*entity.Order, error)

	// ListAll retrieves every order, newest first, optionally filtered by status.
	ListAll(ctx context.Context, status *entity.OrderStatus) ([]*entity.Order, error)
}
