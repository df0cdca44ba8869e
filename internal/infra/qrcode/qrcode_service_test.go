package qrcode

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQRCodeService_BuildOrderPayload(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	payload := svc.BuildOrderPayload("FF3K9Q2M7P1XAB", "token123")

	assert.Equal(t, "FOODFLEX_ORDER:FF3K9Q2M7P1XAB:token123", payload)
}

func TestQRCodeService_PayloadRoundTrip(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	payload := svc.BuildOrderPayload("FF3K9Q2M7P1XAB", "abc123XYZ")
	parsed, err := svc.ParseOrderPayload(payload)
	require.NoError(t, err)

	assert.Equal(t, "FF3K9Q2M7P1XAB", parsed.OrderNumber)
	assert.Equal(t, "abc123XYZ", parsed.QRToken)
}

func TestQRCodeService_ParseOrderPayload_Invalid(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	cases := []string{
		"",
		"FF3K9Q2M7P1XAB:token123",
		"OTHER_SYSTEM:FF3K9Q2M7P1XAB:token123",
		"FOODFLEX_ORDER::token123",
		"FOODFLEX_ORDER:FF3K9Q2M7P1XAB:",
	}
	for _, payload := range cases {
		_, err := svc.ParseOrderPayload(payload)
		assert.Error(t, err, "payload %q should be rejected", payload)
	}
}

func TestQRCodeService_GenerateOrderQR(t *testing.T) {
	svc := NewQRCodeService(128, "H")

	png, err := svc.GenerateOrderQR("FF3K9Q2M7P1XAB", "token123")
	require.NoError(t, err)

	assert.NotEmpty(t, png)
	// PNG magic number
	assert.True(t, bytes.HasPrefix(png, []byte{0x89, 'P', 'N', 'G'}))
}

func TestQRCodeService_UnknownCorrectionLevelFallsBack(t *testing.T) {
	svc := NewQRCodeService(128, "X")

	png, err := svc.GenerateOrderQR("FF3K9Q2M7P1XAB", "token123")
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}
