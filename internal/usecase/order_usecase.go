// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"foodflex/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderUsecase defines the interface for order lifecycle operations after checkout.
type OrderUsecase interface {
	// VerifyQRToken resolves a scanned QR token to the caller's matching
	// PENDING order. Seller-only.
	VerifyQRToken(ctx context.Context, principal *entity.Principal, qrToken string) (*entity.Order, error)

	// ConfirmOrder transitions a PENDING order to CONFIRMED. Only the
	// assigned seller may confirm.
	ConfirmOrder(ctx context.Context, principal *entity.Principal, orderID uuid.UUID) (*entity.Order, error)

	// CompleteOrder transitions a CONFIRMED order to COMPLETED and pays the
	// seller. The sole point at which earnings transfer.
	CompleteOrder(ctx context.Context, principal *entity.Principal, orderID uuid.UUID) (*entity.Order, error)

	// CancelOrder cancels a PENDING or CONFIRMED order, restores reserved
	// stock and refunds the buyer's credit in full. Allowed for the buyer,
	// the assigned seller, or an admin.
	CancelOrder(ctx context.Context, principal *entity.Principal, orderID uuid.UUID, reason string) (*entity.Order, error)

	// ListOrders retrieves the orders visible to the caller, newest first:
	// buyers see their own, sellers see orders assigned to them, admins see all.
	ListOrders(ctx context.Context, principal *entity.Principal, status *entity.OrderStatus) ([]*entity.Order, error)

	// GetOrder retrieves a single order, subject to the same visibility rules.
	GetOrder(ctx context.Context, principal *entity.Principal, orderID uuid.UUID) (*entity.Order, error)
}
