// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"foodflex/internal/domain/entity"
)

// CheckoutUsecase defines the interface for the atomic cart-to-order conversion.
type CheckoutUsecase interface {
	// Checkout converts the buyer's cart into a PENDING order: stock is
	// reserved, credit is deducted, the purchase is logged and the cart is
	// cleared, all in one transaction.
	Checkout(ctx context.Context, principal *entity.Principal) (*CheckoutOutput, error)
}

// --- Output DTOs ---

// CheckoutOutput carries the created order and its pickup QR code.
type CheckoutOutput struct {
	Order        *entity.Order `json:"order"`
	QRPayload    string        `json:"qr_payload"`
	QRCodeBase64 string        `json:"qr_code_base64"`
}
