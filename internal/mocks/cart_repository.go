package mocks

import (
	"context"

	"foodflex/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// CartRepository is a mock implementation of repository.CartRepository.
type CartRepository struct {
	mock.Mock
}

// FindByUserID provides a mock function.
func (m *CartRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	ret := m.Called(ctx, userID)

	var r0 *entity.Cart
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.Cart)
	}

	return r0, ret.Error(1)
}

// GetOrCreate provides a mock function.
func (m *CartRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	ret := m.Called(ctx, userID)

	var r0 *entity.Cart
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.Cart)
	}

	return r0, ret.Error(1)
}

// FindItemByID provides a mock function.
func (m *CartRepository) FindItemByID(ctx context.Context, itemID, userID uuid.UUID) (*entity.CartItem, error) {
	ret := m.Called(ctx, itemID, userID)

	var r0 *entity.CartItem
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.CartItem)
	}

	return r0, ret.Error(1)
}

// UpsertItem provides a mock function.
func (m *CartRepository) UpsertItem(ctx context.Context, item *entity.CartItem) error {
	ret := m.Called(ctx, item)

	return ret.Error(0)
}

// RemoveItem provides a mock function.
func (m *CartRepository) RemoveItem(ctx context.Context, itemID uuid.UUID) error {
	ret := m.Called(ctx, itemID)

	return ret.Error(0)
}

// Clear provides a mock function.
func (m *CartRepository) Clear(ctx context.Context, cartID uuid.UUID) error {
	ret := m.Called(ctx, cartID)

	return ret.Error(0)
}
