package postgres

import (
	"context"

	"foodflex/internal/domain/entity"
	domainerrors "foodflex/internal/domain/errors"
	"foodflex/internal/domain/repository"
	"foodflex/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// creditHistoryRepository implements the repository.CreditHistoryRepository interface.
// All writes are inserts; history rows are never updated or deleted.
type creditHistoryRepository struct {
	db *gorm.DB
}

// NewCreditHistoryRepository is the constructor for creditHistoryRepository.
func NewCreditHistoryRepository(db *gorm.DB) repository.CreditHistoryRepository {
	return &creditHistoryRepository{
		db: db,
	}
}

// AppendTransaction appends one credit transaction log entry.
func (repo *creditHistoryRepository) AppendTransaction(ctx context.Context, txn *entity.CreditTransaction) error {
	txnM := fromCreditTransactionDomain(txn)

	if err := repo.db.WithContext(ctx).Create(txnM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to append credit transaction")
	}

	txn.ID = txnM.ID
	txn.CreatedAt = txnM.CreatedAt

	return nil
}

// AppendRepayment appends one repayment record.
func (repo *creditHistoryRepository) AppendRepayment(ctx context.Context, record *entity.RepaymentRecord) error {
	recordM := &model.RepaymentRecordModel{
		ID:              record.ID,
		CreditAccountID: record.CreditAccountID,
		Amount:          record.Amount,
		RepaidBy:        record.RepaidBy,
		Notes:           record.Notes,
		CreatedAt:       record.CreatedAt,
	}

	if err := repo.db.WithContext(ctx).Create(recordM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to append repayment record")
	}

	record.ID = recordM.ID
	record.CreatedAt = recordM.CreatedAt

	return nil
}

// AppendLimitChange appends one credit limit change record.
func (repo *creditHistoryRepository) AppendLimitChange(ctx context.Context, change *entity.CreditLimitChange) error {
	changeM := &model.CreditLimitChangeModel{
		ID:              change.ID,
		CreditAccountID: change.CreditAccountID,
		OldLimit:        change.OldLimit,
		NewLimit:        change.NewLimit,
		IncreasedBy:     change.IncreasedBy,
		Reason:          change.Reason,
		CreatedAt:       change.CreatedAt,
	}

	if err := repo.db.WithContext(ctx).Create(changeM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to append credit limit change")
	}

	change.ID = changeM.ID
	change.CreatedAt = changeM.CreatedAt

	return nil
}

// ListTransactionsByAccount retrieves log entries for an account, newest first.
func (repo *creditHistoryRepository) ListTransactionsByAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.CreditTransaction, error) {
	var txnModels []*model.CreditTransactionModel

	if err := repo.db.WithContext(ctx).
		Where("credit_account_id = ?", accountID).
		Order("created_at DESC").
		Find(&txnModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list credit transactions")
	}

	txns := make([]*entity.CreditTransaction, 0, len(txnModels))
	for _, txnM := range txnModels {
		txns = append(txns, toCreditTransactionDomain(txnM))
	}

	return txns, nil
}

// ListRepaymentsByAccount retrieves repayment records for an account, newest first.
func (repo *creditHistoryRepository) ListRepaymentsByAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.RepaymentRecord, error) {
	var recordModels []*model.RepaymentRecordModel

	if err := repo.db.WithContext(ctx).
		Where("credit_account_id = ?", accountID).
		Order("created_at DESC").
		Find(&recordModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list repayment records")
	}

	records := make([]*entity.RepaymentRecord, 0, len(recordModels))
	for _, recordM := range recordModels {
		records = append(records, &entity.RepaymentRecord{
			ID:              recordM.ID,
			CreditAccountID: recordM.CreditAccountID,
			Amount:          recordM.Amount,
			RepaidBy:        recordM.RepaidBy,
			Notes:           recordM.Notes,
			CreatedAt:       recordM.CreatedAt,
		})
	}

	return records, nil
}

// ListLimitChangesByAccount retrieves limit change records for an account, newest first.
func (repo *creditHistoryRepository) ListLimitChangesByAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.CreditLimitChange, error) {
	var changeModels []*model.CreditLimitChangeModel

	if err := repo.db.WithContext(ctx).
		Where("credit_account_id = ?", accountID).
		Order("created_at DESC").
		Find(&changeModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list credit limit changes")
	}

	changes := make([]*entity.CreditLimitChange, 0, len(changeModels))
	for _, changeM := range changeModels {
		changes = append(changes, &entity.CreditLimitChange{
			ID:              changeM.ID,
			CreditAccountID: changeM.CreditAccountID,
			OldLimit:        changeM.OldLimit,
			NewLimit:        changeM.NewLimit,
			IncreasedBy:     changeM.IncreasedBy,
			Reason:          changeM.Reason,
			CreatedAt:       changeM.CreatedAt,
		})
	}

	return changes, nil
}

// fromCreditTransactionDomain converts a domain entity to a persistence model.
func fromCreditTransactionDomain(txn *entity.CreditTransaction) *model.CreditTransactionModel {
	return &model.CreditTransactionModel{
		ID:              txn.ID,
		CreditAccountID: txn.CreditAccountID,
		TransactionType: txn.Type.String(),
		Amount:          txn.Amount,
		BalanceBefore:   txn.BalanceBefore,
		BalanceAfter:    txn.BalanceAfter,
		Description:     txn.Description,
		Reference:       txn.Reference,
		CreatedAt:       txn.CreatedAt,
	}
}

// toCreditTransactionDomain converts a persistence model to a domain entity.
func toCreditTransactionDomain(txnM *model.CreditTransactionModel) *entity.CreditTransaction {
	return &entity.CreditTransaction{
		ID:              txnM.ID,
		CreditAccountID: txnM.CreditAccountID,
		Type:            entity.TransactionType(txnM.TransactionType),
		Amount:          txnM.Amount,
		BalanceBefore:   txnM.BalanceBefore,
		BalanceAfter:    txnM.BalanceAfter,
		Description:     txnM.Description,
		Reference:       txnM.Reference,
		CreatedAt:       txnM.CreatedAt,
	}
}
