// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"foodflex/config"
	"foodflex/internal/domain/entity"
	domainerrors "foodflex/internal/domain/errors"
	"foodflex/internal/domain/repository"
	"foodflex/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// creditService implements the CreditUsecase interface.
type creditService struct {
	txManager    repository.TransactionManager
	defaultLimit decimal.Decimal
	logger       *slog.Logger
}

// NewCreditService is the constructor for creditService.
func NewCreditService(
	txManager repository.TransactionManager,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.CreditUsecase {
	defaultLimit := entity.DefaultCreditLimit
	if cfg != nil && cfg.Credit != nil && cfg.Credit.DefaultLimit > 0 {
		defaultLimit = decimal.NewFromInt(cfg.Credit.DefaultLimit)
	}

	return &creditService{
		txManager:    txManager,
		defaultLimit: defaultLimit,
		logger:       logger,
	}
}

// GetMyAccount retrieves the caller's credit account.
func (srv *creditService) GetMyAccount(ctx context.Context, principal *entity.Principal) (*entity.CreditAccount, error) {
	if principal == nil || !principal.CanPurchase() {
		return nil, domainerrors.ErrPermissionDenied.WrapMessage("only buyers have credit accounts")
	}

	return srv.findAccountByUserID(ctx, principal.ID)
}

// ProvisionAccount creates a credit account with the default limit for a
// newly registered buyer. Idempotent: a second call returns the existing
// account untouched.
func (srv *creditService) ProvisionAccount(ctx context.Context, userID uuid.UUID) (*entity.CreditAccount, error) {
	srv.logger.Info("Provisioning credit account", "userID", userID)

	var account *entity.CreditAccount

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		creditRepo := repoFactory.NewCreditAccountRepository()

		existing, err := creditRepo.FindByUserID(ctx, userID)
		if err == nil {
			account = existing

			return nil
		}
		if !errors.Is(err, repository.ErrCreditAccountNotFound) {
			return errors.Wrap(err, "failed to find credit account")
		}

		fresh := entity.NewCreditAccount(userID)
		fresh.CreditLimit = srv.defaultLimit
		fresh.CreditBalance = srv.defaultLimit
		if err := creditRepo.Create(ctx, fresh); err != nil {
			return errors.Wrap(err, "failed to create credit account")
		}
		account = fresh

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to provision credit account")
	}

	return account, nil
}

// ProcessRepayment records an offline loan repayment against a buyer's
// account. The amount must be positive and must not exceed the outstanding
// balance; overpaying store credit has no meaning.
func (srv *creditService) ProcessRepayment(ctx context.Context, principal *entity.Principal, input *usecase.ProcessRepaymentInput) (*entity.CreditAccount, error) {
	if principal == nil || !principal.IsAdmin() {
		return nil, domainerrors.ErrPermissionDenied.WrapMessage("only admins can process repayments")
	}
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domainerrors.ErrInvalidAmount
	}

	srv.logger.Info("Processing repayment",
		"userID", input.UserID,
		"amount", input.Amount.StringFixed(2),
		"adminID", principal.ID,
	)

	var account *entity.CreditAccount

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		creditRepo := repoFactory.NewCreditAccountRepository()
		historyRepo := repoFactory.NewCreditHistoryRepository()

		locked, err := creditRepo.FindByUserIDForUpdate(ctx, input.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrCreditAccountNotFound) {
				return domainerrors.ErrCreditAccountNotFound
			}

			return errors.Wrap(err, "failed to lock credit account")
		}

		outstanding := locked.OutstandingBalance()
		if input.Amount.GreaterThan(outstanding) {
			return domainerrors.ErrRepaymentExceedsOutstanding.WithDetails(
				fmt.Sprintf("outstanding: %s, attempted: %s", outstanding.StringFixed(2), input.Amount.StringFixed(2)),
			)
		}

		now := time.Now()
		balanceBefore := locked.CreditBalance
		if err := locked.Repay(input.Amount, now); err != nil {
			return err
		}
		if err := creditRepo.Update(ctx, locked); err != nil {
			return errors.Wrap(err, "failed to update credit account")
		}

		if err := historyRepo.AppendRepayment(ctx, &entity.RepaymentRecord{
			CreditAccountID: locked.ID,
			Amount:          input.Amount,
			RepaidBy:        principal.ID,
			Notes:           input.Notes,
		}); err != nil {
			return errors.Wrap(err, "failed to append repayment record")
		}

		if err := historyRepo.AppendTransaction(ctx, &entity.CreditTransaction{
			CreditAccountID: locked.ID,
			Type:            entity.TransactionTypeRepayment,
			Amount:          input.Amount,
			BalanceBefore:   balanceBefore,
			BalanceAfter:    locked.CreditBalance,
			Description:     "Loan repayment",
			Reference:       fmt.Sprintf("REPAY_%s_%d", input.UserID, now.Unix()),
		}); err != nil {
			return errors.Wrap(err, "failed to log repayment transaction")
		}
		account = locked

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to process repayment")
	}

	return account, nil
}

// IncreaseCreditLimit raises a buyer's credit limit; the freed headroom is
// added to the available balance immediately.
func (srv *creditService) IncreaseCreditLimit(ctx context.Context, principal *entity.Principal, input *usecase.IncreaseCreditLimitInput) (*entity.CreditAccount, error) {
	if principal == nil || !principal.IsAdmin() {
		return nil, domainerrors.ErrPermissionDenied.WrapMessage("only admins can change credit limits")
	}

	srv.logger.Info("Increasing credit limit",
		"userID", input.UserID,
		"newLimit", input.NewLimit.StringFixed(2),
		"adminID", principal.ID,
	)

	var account *entity.CreditAccount

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		creditRepo := repoFactory.NewCreditAccountRepository()
		historyRepo := repoFactory.NewCreditHistoryRepository()

		locked, err := creditRepo.FindByUserIDForUpdate(ctx, input.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrCreditAccountNotFound) {
				return domainerrors.ErrCreditAccountNotFound
			}

			return errors.Wrap(err, "failed to lock credit account")
		}

		oldLimit := locked.CreditLimit
		balanceBefore := locked.CreditBalance
		if err := locked.IncreaseLimit(input.NewLimit); err != nil {
			return err
		}
		if err := creditRepo.Update(ctx, locked); err != nil {
			return errors.Wrap(err, "failed to update credit account")
		}

		if err := historyRepo.AppendLimitChange(ctx, &entity.CreditLimitChange{
			CreditAccountID: locked.ID,
			OldLimit:        oldLimit,
			NewLimit:        input.NewLimit,
			IncreasedBy:     principal.ID,
			Reason:          input.Reason,
		}); err != nil {
			return errors.Wrap(err, "failed to append limit change record")
		}

		if err := historyRepo.AppendTransaction(ctx, &entity.CreditTransaction{
			CreditAccountID: locked.ID,
			Type:            entity.TransactionTypeLimitIncrease,
			Amount:          input.NewLimit.Sub(oldLimit),
			BalanceBefore:   balanceBefore,
			BalanceAfter:    locked.CreditBalance,
			Description:     fmt.Sprintf("Credit limit increased from %s to %s", oldLimit.StringFixed(2), input.NewLimit.StringFixed(2)),
			Reference:       fmt.Sprintf("LIMIT_%s_%d", input.UserID, time.Now().Unix()),
		}); err != nil {
			return errors.Wrap(err, "failed to log limit increase transaction")
		}
		account = locked

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to increase credit limit")
	}

	return account, nil
}

// ListTransactions retrieves the caller's credit transaction log, newest first.
func (srv *creditService) ListTransactions(ctx context.Context, principal *entity.Principal) ([]*entity.CreditTransaction, error) {
	if principal == nil || !principal.CanPurchase() {
		return nil, domainerrors.ErrPermissionDenied.WrapMessage("only buyers have credit history")
	}

	var txns []*entity.CreditTransaction

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		account, err := srv.lookupAccount(ctx, repoFactory, principal.ID)
		if err != nil {
			return err
		}

		txns, err = repoFactory.NewCreditHistoryRepository().ListTransactionsByAccount(ctx, account.ID)

		return errors.Wrap(err, "failed to list credit transactions")
	})
	if err != nil {
		return nil, err
	}

	return txns, nil
}

// ListRepayments retrieves the caller's repayment history, newest first.
func (srv *creditService) ListRepayments(ctx context.Context, principal *entity.Principal) ([]*entity.RepaymentRecord, error) {
	if principal == nil || !principal.CanPurchase() {
		return nil, domainerrors.ErrPermissionDenied.WrapMessage("only buyers have credit history")
	}

	var records []*entity.RepaymentRecord

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		account, err := srv.lookupAccount(ctx, repoFactory, principal.ID)
		if err != nil {
			return err
		}

		records, err = repoFactory.NewCreditHistoryRepository().ListRepaymentsByAccount(ctx, account.ID)

		return errors.Wrap(err, "failed to list repayment records")
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// ListAccounts retrieves all credit accounts, optionally filtered by loan status.
func (srv *creditService) ListAccounts(ctx context.Context, principal *entity.Principal, status *entity.LoanStatus) ([]*entity.CreditAccount, error) {
	if principal == nil || !principal.IsAdmin() {
		return nil, domainerrors.ErrPermissionDenied.WrapMessage("only admins can list credit accounts")
	}

	var accounts []*entity.CreditAccount

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		accounts, err = repoFactory.NewCreditAccountRepository().List(ctx, status)

		return errors.Wrap(err, "failed to list credit accounts")
	})
	if err != nil {
		return nil, err
	}

	return accounts, nil
}

// GetAccount retrieves a specific buyer's credit account.
func (srv *creditService) GetAccount(ctx context.Context, principal *entity.Principal, userID uuid.UUID) (*entity.CreditAccount, error) {
	if principal == nil || !principal.IsAdmin() {
		return nil, domainerrors.ErrPermissionDenied.WrapMessage("only admins can inspect other accounts")
	}

	return srv.findAccountByUserID(ctx, userID)
}

func (srv *creditService) findAccountByUserID(ctx context.Context, userID uuid.UUID) (*entity.CreditAccount, error) {
	var account *entity.CreditAccount

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		account, err = srv.lookupAccount(ctx, repoFactory, userID)

		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get credit account")
	}

	return account, nil
}

func (srv *creditService) lookupAccount(ctx context.Context, repoFactory repository.RepositoryFactory, userID uuid.UUID) (*entity.CreditAccount, error) {
	account, err := repoFactory.NewCreditAccountRepository().FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCreditAccountNotFound) {
			return nil, domainerrors.ErrCreditAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find credit account")
	}

	return account, nil
}
