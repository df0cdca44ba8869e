// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"foodflex/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreditUsecase defines the interface for credit account operations.
type CreditUsecase interface {
	// GetMyAccount retrieves the caller's credit account. Buyer-only.
	GetMyAccount(ctx context.Context, principal *entity.Principal) (*entity.CreditAccount, error)

	// ProvisionAccount creates a credit account with the default limit for a
	// newly registered buyer. Idempotent: an existing account is returned as is.
	ProvisionAccount(ctx context.Context, userID uuid.UUID) (*entity.CreditAccount, error)

	// ProcessRepayment records an offline loan repayment against a buyer's
	// account. Admin-only; the amount must not exceed the outstanding balance.
	ProcessRepayment(ctx context.Context, principal *entity.Principal, input *ProcessRepaymentInput) (*entity.CreditAccount, error)

	// IncreaseCreditLimit raises a buyer's credit limit. Admin-only; the new
	// limit must be strictly greater than the current one.
	IncreaseCreditLimit(ctx context.Context, principal *entity.Principal, input *IncreaseCreditLimitInput) (*entity.CreditAccount, error)

	// ListTransactions retrieves the caller's credit transaction log, newest first.
	ListTransactions(ctx context.Context, principal *entity.Principal) ([]*entity.CreditTransaction, error)

	// ListRepayments retrieves the caller's repayment history, newest first.
	ListRepayments(ctx context.Context, principal *entity.Principal) ([]*entity.RepaymentRecord, error)

	// ListAccounts retrieves all credit accounts, optionally filtered by loan
	// status. Admin-only.
	ListAccounts(ctx context.Context, principal *entity.Principal, status *entity.LoanStatus) ([]*entity.CreditAccount, error)

	// GetAccount retrieves a specific buyer's credit account. Admin-only.
	GetAccount(ctx context.Context, principal *entity.Principal, userID uuid.UUID) (*entity.CreditAccount, error)
}

// --- Input DTOs ---

// ProcessRepaymentInput defines the data required to record a repayment.
type ProcessRepaymentInput struct {
	UserID uuid.UUID       `json:"user_id"`
	Amount decimal.Decimal `json:"amount"`
	Notes  string          `json:"notes,omitempty"`
}

// IncreaseCreditLimitInput defines the data required to raise a credit limit.
type IncreaseCreditLimitInput struct {
	UserID   uuid.UUID       `json:"user_id"`
	NewLimit decimal.Decimal `json:"new_limit"`
	Reason   string          `json:"reason,omitempty"`
}
