package mocks

import (
	"context"

	"foodflex/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// SellerProfileRepository is a mock implementation of repository.SellerProfileRepository.
type SellerProfileRepository struct {
	mock.Mock
}

// FindByUserID provides a mock function.
func (m *SellerProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.SellerProfile, error) {
	ret := m.Called(ctx, userID)

	var r0 *entity.SellerProfile
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.SellerProfile)
	}

	return r0, ret.Error(1)
}

// FindByUserIDForUpdate provides a mock function.
func (m *SellerProfileRepository) FindByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*entity.SellerProfile, error) {
	ret := m.Called(ctx, userID)

	var r0 *entity.SellerProfile
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.SellerProfile)
	}

	return r0, ret.Error(1)
}

// Update provides a mock function.
func (m *SellerProfileRepository) Update(ctx context.Context, profile *entity.SellerProfile) error {
	ret := m.Called(ctx, profile)

	return ret.Error(0)
}
