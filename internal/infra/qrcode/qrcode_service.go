package qrcode

import (
	"fmt"
	"strings"

	"foodflex/internal/domain/service"

	"github.com/skip2/go-qrcode"
)

// payloadPrefix namespaces order QR codes so scanners can reject foreign codes.
const payloadPrefix = "FOODFLEX_ORDER"

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel string) service.QRCodeService {
	// Set error correction level
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// BuildOrderPayload encodes the order number and QR token into the payload string.
func (s *qrcodeService) BuildOrderPayload(orderNumber, qrToken string) string {
	return fmt.Sprintf("%s:%s:%s", payloadPrefix, orderNumber, qrToken)
}

// GenerateOrderQR renders the payload for an order as a PNG image.
func (s *qrcodeService) GenerateOrderQR(orderNumber, qrToken string) ([]byte, error) {
	payload := s.BuildOrderPayload(orderNumber, qrToken)

	qrCode, err := qrcode.New(payload, s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}

// ParseOrderPayload decodes a scanned payload back into its parts.
func (s *qrcodeService) ParseOrderPayload(payload string) (*service.OrderQRPayload, error) {
	parts := strings.Split(payload, ":")
	if len(parts) != 3 || parts[0] != payloadPrefix {
		return nil, fmt.Errorf("invalid QR payload format")
	}
	if parts[1] == "" || parts[2] == "" {
		return nil, fmt.Errorf("invalid QR payload format")
	}

	return &service.OrderQRPayload{
		OrderNumber: parts[1],
		QRToken:     parts[2],
	}, nil
}
