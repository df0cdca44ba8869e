package mocks

import (
	"context"

	"foodflex/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// CreditAccountRepository is a mock implementation of repository.CreditAccountRepository.
type CreditAccountRepository struct {
	mock.Mock
}

// Create provides a mock function.
func (m *CreditAccountRepository) Create(ctx context.Context, account *entity.CreditAccount) error {
	ret := m.Called(ctx, account)

	return ret.Error(0)
}

// FindByUserID provides a mock function.
func (m *CreditAccountRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.CreditAccount, error) {
	ret := m.Called(ctx, userID)

	var r0 *entity.CreditAccount
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.CreditAccount)
	}

	return r0, ret.Error(1)
}

// FindByUserIDForUpdate provides a mock function.
func (m *CreditAccountRepository) FindByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*entity.CreditAccount, error) {
	ret := m.Called(ctx, userID)

	var r0 *entity.CreditAccount
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.CreditAccount)
	}

	return r0, ret.Error(1)
}

// Update provides a mock function.
func (m *CreditAccountRepository) Update(ctx context.Context, account *entity.CreditAccount) error {
	ret := m.Called(ctx, account)

	return ret.Error(0)
}

// List provides a mock function.
func (m *CreditAccountRepository) List(ctx context.Context, status *entity.LoanStatus) ([]*entity.CreditAccount, error) {
	ret := m.Called(ctx, status)

	var r0 []*entity.CreditAccount
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*entity.CreditAccount)
	}

	return r0, ret.Error(1)
}
