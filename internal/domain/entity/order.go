// Package entity contains the core business objects of the project.
package entity

import (
	"fmt"
	"time"

	domainerrors "foodflex/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of an order.
//
// Transitions are monotonic: PENDING -> CONFIRMED -> COMPLETED, and
// PENDING or CONFIRMED -> CANCELLED. COMPLETED and CANCELLED are terminal.
type OrderStatus string

const (
	// OrderStatusPending is the initial state after checkout; stock is already reserved.
	OrderStatusPending OrderStatus = "PENDING"
	// OrderStatusConfirmed means the assigned seller verified the buyer's QR code.
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	// OrderStatusCompleted means the handoff finished and the seller was paid.
	OrderStatusCompleted OrderStatus = "COMPLETED"
	// OrderStatusCancelled means the order was cancelled and its effects reversed.
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// String returns the string representation of the OrderStatus.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the OrderStatus is a valid value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusCompleted, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions are allowed.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// OrderItem is a line-item snapshot captured at order creation. Name, price
// and subtotal are never recomputed from the live product; ProductID becomes
// nil if the catalog entry is later deleted.
type OrderItem struct {
	ID          uuid.UUID       // The unique identifier for the order item.
	OrderID     uuid.UUID       // The order this item belongs to.
	ProductID   *uuid.UUID      // Reference to the live product; nil once the product is deleted.
	ProductName string          // Product name at order time.
	UnitPrice   decimal.Decimal // Unit price at order time.
	Quantity    int             // Quantity purchased.
	Subtotal    decimal.Decimal // UnitPrice * Quantity, fixed at order time.
}

// Order is the durable record of a checkout. It references buyer and seller
// but is owned by neither; it survives user deactivation as a ledger record.
// One order is bound to a single seller.
type Order struct {
	ID          uuid.UUID       // The unique identifier for the order.
	OrderNumber string          // Human-facing unique number, e.g. "FF3K9Q2M7P1XAB".
	QRToken     string          // Opaque 64-char secret bound to this order for pickup confirmation.
	BuyerID     uuid.UUID       // The buyer who placed the order.
	SellerID    uuid.UUID       // The single seller fulfilling the order.
	TotalAmount decimal.Decimal // Snapshot sum of item subtotals.
	Status      OrderStatus     // Current lifecycle state.
	Notes       string          // Free-form notes, e.g. cancellation reason.
	Items       []OrderItem     // Line-item snapshots, owned by this order.
	CreatedAt   time.Time       // Timestamp of order creation.
	ConfirmedAt *time.Time      // Set when the seller confirms the order.
	CompletedAt *time.Time      // Set when the order completes.
}

// Confirm transitions the order from PENDING to CONFIRMED. Only the assigned
// seller may confirm. Stock is untouched here; it was reserved at checkout.
func (o *Order) Confirm(sellerID uuid.UUID, now time.Time) error {
	if o.Status != OrderStatusPending {
		return domainerrors.NewInvalidTransitionError(o.Status.String(), "confirm")
	}
	if sellerID != o.SellerID {
		return domainerrors.ErrPermissionDenied.WrapMessage("only the assigned seller can confirm this order")
	}

	o.Status = OrderStatusConfirmed
	o.ConfirmedAt = &now

	return nil
}

// Complete transitions the order from CONFIRMED to COMPLETED. The caller pays
// the seller afterwards; this is the only point at which earnings transfer.
func (o *Order) Complete(now time.Time) error {
	if o.Status != OrderStatusConfirmed {
		return domainerrors.NewInvalidTransitionError(o.Status.String(), "complete")
	}

	o.Status = OrderStatusCompleted
	o.CompletedAt = &now

	return nil
}

// Cancel transitions a PENDING or CONFIRMED order to CANCELLED. The caller
// must restore reserved stock and refund the buyer's credit in the same
// transaction; this method only validates and records the transition.
func (o *Order) Cancel(reason string) error {
	if o.Status.IsTerminal() {
		return domainerrors.NewInvalidTransitionError(o.Status.String(), "cancel")
	}

	o.Status = OrderStatusCancelled
	if reason != "" {
		o.Notes = fmt.Sprintf("Cancelled: %s", reason)
	}

	return nil
}
