package mocks

import (
	"foodflex/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// QRCodeService is a mock implementation of service.QRCodeService.
type QRCodeService struct {
	mock.Mock
}

// BuildOrderPayload provides a mock function.
func (m *QRCodeService) BuildOrderPayload(orderNumber, qrToken string) string {
	ret := m.Called(orderNumber, qrToken)

	return ret.String(0)
}

// GenerateOrderQR provides a mock function.
func (m *QRCodeService) GenerateOrderQR(orderNumber, qrToken string) ([]byte, error) {
	ret := m.Called(orderNumber, qrToken)

	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}

	return r0, ret.Error(1)
}

// ParseOrderPayload provides a mock function.
func (m *QRCodeService) ParseOrderPayload(payload string) (*service.OrderQRPayload, error) {
	ret := m.Called(payload)

	var r0 *service.OrderQRPayload
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*service.OrderQRPayload)
	}

	return r0, ret.Error(1)
}
