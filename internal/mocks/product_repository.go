package mocks

import (
	"context"

	"foodflex/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// ProductRepository is a mock implementation of repository.ProductRepository.
type ProductRepository struct {
	mock.Mock
}

// FindByID provides a mock function.
func (m *ProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	ret := m.Called(ctx, id)

	var r0 *entity.Product
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.Product)
	}

	return r0, ret.Error(1)
}

// FindByIDsForUpdate provides a mock function.
func (m *ProductRepository) FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]*entity.Product, error) {
	ret := m.Called(ctx, ids)

	var r0 []*entity.Product
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*entity.Product)
	}

	return r0, ret.Error(1)
}

// UpdateStock provides a mock function.
func (m *ProductRepository) UpdateStock(ctx context.Context, product *entity.Product) error {
	ret := m.Called(ctx, product)

	return ret.Error(0)
}
