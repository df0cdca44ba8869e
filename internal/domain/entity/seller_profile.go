// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SellerProfile holds the earnings wallet and fulfilment statistics for a
// seller. Earnings transfer exactly once per order, at completion.
type SellerProfile struct {
	UserID               uuid.UUID       // The seller this profile belongs to (1:1).
	WalletBalance        decimal.Decimal // Earnings available to the seller.
	TotalEarnings        decimal.Decimal // Cumulative earnings, monotonic non-decreasing.
	TotalOrdersFulfilled int             // Number of completed orders.
	CreatedAt            time.Time       // Timestamp of profile creation.
	UpdatedAt            time.Time       // Timestamp of the last modification.
}

// AddEarnings credits the wallet with a completed order's total.
func (p *SellerProfile) AddEarnings(amount decimal.Decimal) {
	p.WalletBalance = p.WalletBalance.Add(amount)
	p.TotalEarnings = p.TotalEarnings.Add(amount)
}

// IncrementOrderCount bumps the fulfilled-order counter.
func (p *SellerProfile) IncrementOrderCount() {
	p.TotalOrdersFulfilled++
}
