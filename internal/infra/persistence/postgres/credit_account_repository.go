// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
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
	"gorm.io/gorm/clause"
)

// creditAccountRepository implements the repository.CreditAccountRepository interface.
type creditAccountRepository struct {
	db *gorm.DB
}

// NewCreditAccountRepository is the constructor for creditAccountRepository.
func NewCreditAccountRepository(db *gorm.DB) repository.CreditAccountRepository {
	return &creditAccountRepository{
		db: db,
	}
}

// Create persists a newly provisioned credit account.
func (repo *creditAccountRepository) Create(ctx context.Context, account *entity.CreditAccount) error {
	accountM := fromCreditAccountDomain(account)

	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("credit account already exists for this user")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create credit account")
	}

	// Update the entity with generated values
	account.ID = accountM.ID
	account.CreatedAt = accountM.CreatedAt
	account.UpdatedAt = accountM.UpdatedAt

	return nil
}

// FindByUserID retrieves the account owned by the given buyer.
func (repo *creditAccountRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.CreditAccount, error) {
	var accountM model.CreditAccountModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&accountM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCreditAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find credit account by user ID")
	}

	return toCreditAccountDomain(&accountM), nil
}

// FindByUserIDForUpdate retrieves the account with a SELECT ... FOR UPDATE
// row lock. Concurrent checkouts, refunds and repayments against the same
// account queue behind the lock until the surrounding transaction ends.
func (repo *creditAccountRepository) FindByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*entity.CreditAccount, error) {
	var accountM model.CreditAccountModel

	if err := repo.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&accountM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCreditAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to lock credit account by user ID")
	}

	return toCreditAccountDomain(&accountM), nil
}

// Update persists the mutated balance, usage, status and repayment fields.
func (repo *creditAccountRepository) Update(ctx context.Context, account *entity.CreditAccount) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CreditAccountModel{}).
		Where("id = ?", account.ID).
		Updates(map[string]any{
			"credit_limit":        account.CreditLimit,
			"credit_balance":      account.CreditBalance,
			"total_credit_used":   account.TotalCreditUsed,
			"loan_status":         account.LoanStatus.String(),
			"total_repaid":        account.TotalRepaid,
			"last_repayment_date": account.LastRepaymentDate,
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update credit account")
	}

	if result.RowsAffected == 0 {
		return repository.ErrCreditAccountNotFound
	}

	return nil
}

// List retrieves all accounts, optionally filtered by loan status.
func (repo *creditAccountRepository) List(ctx context.Context, status *entity.LoanStatus) ([]*entity.CreditAccount, error) {
	var accountModels []*model.CreditAccountModel

	query := repo.db.WithContext(ctx).Order("created_at DESC")
	if status != nil {
		query = query.Where("loan_status = ?", status.String())
	}

	if err := query.Find(&accountModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list credit accounts")
	}

	accounts := make([]*entity.CreditAccount, 0, len(accountModels))
	for _, accountM := range accountModels {
		accounts = append(accounts, toCreditAccountDomain(accountM))
	}

	return accounts, nil
}

// fromCreditAccountDomain converts a domain entity to a persistence model.
func fromCreditAccountDomain(account *entity.CreditAccount) *model.CreditAccountModel {
	return &model.CreditAccountModel{
		ID:                account.ID,
		UserID:            account.UserID,
		CreditLimit:       account.CreditLimit,
		CreditBalance:     account.CreditBalance,
		TotalCreditUsed:   account.TotalCreditUsed,
		LoanStatus:        account.LoanStatus.String(),
		TotalRepaid:       account.TotalRepaid,
		LastRepaymentDate: account.LastRepaymentDate,
		CreatedAt:         account.CreatedAt,
		UpdatedAt:         account.UpdatedAt,
	}
}

// toCreditAccountDomain converts a persistence model to a domain entity.
func toCreditAccountDomain(accountM *model.CreditAccountModel) *entity.CreditAccount {
	return &entity.CreditAccount{
		ID:                accountM.ID,
		UserID:            accountM.UserID,
		CreditLimit:       accountM.CreditLimit,
		CreditBalance:     accountM.CreditBalance,
		TotalCreditUsed:   accountM.TotalCreditUsed,
		LoanStatus:        entity.LoanStatus(accountM.LoanStatus),
		TotalRepaid:       accountM.TotalRepaid,
		LastRepaymentDate: accountM.LastRepaymentDate,
		CreatedAt:         accountM.CreatedAt,
		UpdatedAt:         accountM.UpdatedAt,
	}
}
