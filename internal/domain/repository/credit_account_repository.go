// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"foodflex/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCreditAccountNotFound is a domain-specific error returned when a credit account is not found.
var ErrCreditAccountNotFound = errors.New("credit account not found")

// CreditAccountRepository defines the standard operations for credit account persistence.
type CreditAccountRepository interface {
	// Create persists a newly provisioned credit account.
	Create(ctx context.Context, account *entity.CreditAccount) error

	// FindByUserID retrieves the account owned by the given buyer.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.CreditAccount, error)

	// FindByUserIDForUpdate retrieves the account with a row-level write lock.
	// Must be called inside a transaction; serializes concurrent checkouts,
	// refunds and repayments touching the same account.
	FindByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*entity.CreditAccount, error)

	// Update persists the mutated balance, usage, status and repayment fields.
	Update(ctx context.Context, account *entity.CreditAccount) error

	// List retrieves all accounts, optionally filtered by loan status.
	List(ctx context.Context, status *entity.LoanStatus) ([]*entity.CreditAccount, error)
}
