// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the slice of the catalog this service reads and writes. Listing,
// search and media belong to the catalog boundary; checkout only touches
// stock and sales counters.
type Product struct {
	ID            uuid.UUID       // The unique identifier for the product.
	SellerID      uuid.UUID       // The seller who owns this product.
	Name          string          // Display name, snapshotted into order items.
	Price         decimal.Decimal // Current unit price.
	StockQuantity int             // Units currently available for reservation.
	SalesCount    int             // Cumulative units sold, for seller statistics.
	IsActive      bool            // Inactive products cannot be added to carts.
	CreatedAt     time.Time       // Timestamp of product creation.
	UpdatedAt     time.Time       // Timestamp of the last modification.
}

// IsInStock reports whether any units are available.
func (p *Product) IsInStock() bool {
	return p.StockQuantity > 0
}

// ReduceStock reserves quantity units at checkout time. Returns false without
// mutating when the requested quantity exceeds available stock. Reserving at
// checkout rather than at fulfilment closes the window where two buyers both
// see the last unit as available.
func (p *Product) ReduceStock(quantity int) bool {
	if quantity > p.StockQuantity {
		return false
	}

	p.StockQuantity -= quantity
	p.SalesCount += quantity

	return true
}

// RestoreStock returns quantity units on cancellation. Unconditional: the
// reservation made at checkout is simply handed back.
func (p *Product) RestoreStock(quantity int) {
	p.StockQuantity += quantity
}
