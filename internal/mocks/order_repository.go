package mocks

import (
	"context"

	"foodflex/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// OrderRepository is a mock implementation of repository.OrderRepository.
type OrderRepository struct {
	mock.Mock
}

// Create provides a mock function.
func (m *OrderRepository) Create(ctx context.Context, order *entity.Order) error {
	ret := m.Called(ctx, order)

	return ret.Error(0)
}

// FindByID provides a mock function.
func (m *OrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	ret := m.Called(ctx, id)

	var r0 *entity.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.Order)
	}

	return r0, ret.Error(1)
}

// FindByIDForUpdate provides a mock function.
func (m *OrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	ret := m.Called(ctx, id)

	var r0 *entity.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.Order)
	}

	return r0, ret.Error(1)
}

// FindPendingByQRToken provides a mock function.
func (m *OrderRepository) FindPendingByQRToken(ctx context.Context, qrToken string, sellerID uuid.UUID) (*entity.Order, error) {
	ret := m.Called(ctx, qrToken, sellerID)

	var r0 *entity.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.Order)
	}

	return r0, ret.Error(1)
}

// Update provides a mock function.
func (m *OrderRepository) Update(ctx context.Context, order *entity.Order) error {
	ret := m.Called(ctx, order)

	return ret.Error(0)
}

// ListByBuyer provides a mock function.
func (m *OrderRepository) ListByBuyer(ctx context.Context, buyerID uuid.UUID, status *entity.OrderStatus) ([]*entity.Order, error) {
	ret := m.Called(ctx, buyerID, status)

	var r0 []*entity.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*entity.Order)
	}

	return r0, ret.Error(1)
}

// ListBySeller provides a mock function.
func (m *OrderRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID, status *entity.OrderStatus) ([]*entity.Order, error) {
	ret := m.Called(ctx, sellerID, status)

	var r0 []*entity.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*entity.Order)
	}

	return r0, ret.Error(1)
}

// ListAll provides a mock function.
func (m *OrderRepository) ListAll(ctx context.Context, status *entity.OrderStatus) ([]*entity.Order, error) {
	ret := m.Called(ctx, status)

	var r0 []*entity.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*entity.Order)
	}

	return r0, ret.Error(1)
}
