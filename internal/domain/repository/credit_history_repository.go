package repository

import (
	"context"

	"foodflex/internal/domain/entity"

	"github.com/google/uuid"
)

// CreditHistoryRepository persists the append-only audit trail of a credit
// account: transaction log entries, repayments and limit changes. Entries are
// never updated or deleted.
type CreditHistoryRepository interface {
	// AppendTransaction appends one credit transaction log entry.
	AppendTransaction(ctx context.Context, txn *entity.CreditTransaction) error

	// AppendRepayment appends one repayment record.
	AppendRepayment(ctx context.Context, record *entity.RepaymentRecord) error

	// AppendLimitChange appends one credit limit change record.
	AppendLimitChange(ctx context.Context, change *entity.CreditLimitChange) error

	// ListTransactionsByAccount retrieves log entries for an account, newest first.
	ListTransactionsByAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.CreditTransaction, error)

	// ListRepaymentsByAccount retrieves repayment records for an account, newest first.
	ListRepaymentsByAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.RepaymentRecord, error)

	// ListLimitChangesByAccount retrieves limit change records for an account, newest first.
	ListLimitChangesByAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.CreditLimitChange, error)
}
