package mocks

import (
	"context"

	"foodflex/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// CreditHistoryRepository is a mock implementation of repository.CreditHistoryRepository.
type CreditHistoryRepository struct {
	mock.Mock
}

// AppendTransaction provides a mock function.
func (m *CreditHistoryRepository) AppendTransaction(ctx context.Context, txn *entity.CreditTransaction) error {
	ret := m.Called(ctx, txn)

	return ret.Error(0)
}

// AppendRepayment provides a mock function.
func (m *CreditHistoryRepository) AppendRepayment(ctx context.Context, record *entity.RepaymentRecord) error {
	ret := m.Called(ctx, record)

	return ret.Error(0)
}

// AppendLimitChange provides a mock function.
func (m *CreditHistoryRepository) AppendLimitChange(ctx context.Context, change *entity.CreditLimitChange) error {
	ret := m.Called(ctx, change)

	return ret.Error(0)
}

// ListTransactionsByAccount provides a mock function.
func (m *CreditHistoryRepository) ListTransactionsByAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.CreditTransaction, error) {
	ret := m.Called(ctx, accountID)

	var r0 []*entity.CreditTransaction
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*entity.CreditTransaction)
	}

	return r0, ret.Error(1)
}

// ListRepaymentsByAccount provides a mock function.
func (m *CreditHistoryRepository) ListRepaymentsByAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.RepaymentRecord, error) {
	ret := m.Called(ctx, accountID)

	var r0 []*entity.RepaymentRecord
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*entity.RepaymentRecord)
	}

	return r0, ret.Error(1)
}

// ListLimitChangesByAccount provides a mock function.
func (m *CreditHistoryRepository) ListLimitChangesByAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.CreditLimitChange, error) {
	ret := m.Called(ctx, accountID)

	var r0 []*entity.CreditLimitChange
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*entity.CreditLimitChange)
	}

	return r0, ret.Error(1)
}
