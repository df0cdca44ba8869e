// Package service defines interfaces for domain services implemented in infra.
package service

// OrderQRPayload is the decoded content of an order QR code.
type OrderQRPayload struct {
	OrderNumber string
	QRToken     string
}

// QRCodeService defines the interface for order QR code generation and parsing.
// Pixel rendering is peripheral; the token binding and payload format are the
// part the order lifecycle depends on.
type QRCodeService interface {
	// BuildOrderPayload encodes the order number and QR token into the opaque
	// payload string embedded in the QR image.
	BuildOrderPayload(orderNumber, qrToken string) string

	// GenerateOrderQR renders the payload for an order as a PNG image.
	GenerateOrderQR(orderNumber, qrToken string) ([]byte, error)

	// ParseOrderPayload decodes a scanned payload back into its parts.
	ParseOrderPayload(payload string) (*OrderQRPayload, error)
}
