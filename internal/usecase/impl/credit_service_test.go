package impl

import (
	"context"
	"testing"

	"foodflex/config"
	"foodflex/internal/domain/entity"
	domainerrors "foodflex/internal/domain/errors"
	"foodflex/internal/domain/repository"
	"foodflex/internal/mocks"
	"foodflex/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type creditFixture struct {
	service usecase.CreditUsecase
	credits *mocks.CreditAccountRepository
	history *mocks.CreditHistoryRepository
}

func newCreditFixture(cfg *config.Config) *creditFixture {
	credits := new(mocks.CreditAccountRepository)
	history := new(mocks.CreditHistoryRepository)

	txManager := &mocks.TransactionManager{Factory: &mocks.RepositoryFactory{
		CreditAccounts: credits,
		CreditHistory:  history,
	}}

	return &creditFixture{
		service: NewCreditService(txManager, cfg, testLogger()),
		credits: credits,
		history: history,
	}
}

func adminPrincipal() *entity.Principal {
	return &entity.Principal{ID: uuid.New(), Role: entity.RoleAdmin}
}

func TestCreditService_ProvisionAccount(t *testing.T) {
	fix := newCreditFixture(nil)
	userID := uuid.New()

	fix.credits.On("FindByUserID", mock.Anything, userID).Return(nil, repository.ErrCreditAccountNotFound)
	fix.credits.On("Create", mock.Anything, mock.AnythingOfType("*entity.CreditAccount")).Return(nil)

	account, err := fix.service.ProvisionAccount(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, userID, account.UserID)
	assert.True(t, account.CreditLimit.Equal(entity.DefaultCreditLimit))
	assert.True(t, account.CreditBalance.Equal(entity.DefaultCreditLimit))
	assert.Equal(t, entity.LoanStatusActive, account.LoanStatus)
}

func TestCreditService_ProvisionAccount_ConfiguredLimit(t *testing.T) {
	cfg := &config.Config{Credit: &config.CreditConfig{DefaultLimit: 20000}}
	fix := newCreditFixture(cfg)
	userID := uuid.New()

	fix.credits.On("FindByUserID", mock.Anything, userID).Return(nil, repository.ErrCreditAccountNotFound)
	fix.credits.On("Create", mock.Anything, mock.Anything).Return(nil)

	account, err := fix.service.ProvisionAccount(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, account.CreditLimit.Equal(decimal.NewFromInt(20000)))
}

func TestCreditService_ProvisionAccount_Idempotent(t *testing.T) {
	fix := newCreditFixture(nil)
	existing := entity.NewCreditAccount(uuid.New())
	existing.CreditBalance = decimal.NewFromInt(12000)

	fix.credits.On("FindByUserID", mock.Anything, existing.UserID).Return(existing, nil)

	account, err := fix.service.ProvisionAccount(context.Background(), existing.UserID)
	require.NoError(t, err)

	// The existing account comes back untouched.
	assert.Equal(t, existing.ID, account.ID)
	assert.True(t, account.CreditBalance.Equal(decimal.NewFromInt(12000)))
	fix.credits.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreditService_ProcessRepayment(t *testing.T) {
	fix := newCreditFixture(nil)
	admin := adminPrincipal()

	account := entity.NewCreditAccount(uuid.New())
	require.NoError(t, account.Deduct(decimal.NewFromInt(30000)))

	fix.credits.On("FindByUserIDForUpdate", mock.Anything, account.UserID).Return(account, nil)
	fix.credits.On("Update", mock.Anything, account).Return(nil)
	fix.history.On("AppendRepayment", mock.Anything, mock.AnythingOfType("*entity.RepaymentRecord")).Return(nil)
	fix.history.On("AppendTransaction", mock.Anything, mock.AnythingOfType("*entity.CreditTransaction")).Return(nil)

	got, err := fix.service.ProcessRepayment(context.Background(), admin, &usecase.ProcessRepaymentInput{
		UserID: account.UserID,
		Amount: decimal.NewFromInt(10000),
		Notes:  "bank transfer",
	})
	require.NoError(t, err)

	assert.True(t, got.CreditBalance.Equal(decimal.NewFromInt(30000)))
	assert.True(t, got.TotalRepaid.Equal(decimal.NewFromInt(10000)))
	require.NotNil(t, got.LastRepaymentDate)

	record := fix.history.Calls[0].Arguments.Get(1).(*entity.RepaymentRecord)
	assert.Equal(t, admin.ID, record.RepaidBy)
	assert.Equal(t, "bank transfer", record.Notes)

	txn := fix.history.Calls[1].Arguments.Get(1).(*entity.CreditTransaction)
	assert.Equal(t, entity.TransactionTypeRepayment, txn.Type)
	assert.True(t, txn.BalanceBefore.Equal(decimal.NewFromInt(20000)))
	assert.True(t, txn.BalanceAfter.Equal(decimal.NewFromInt(30000)))
}

func TestCreditService_ProcessRepayment_FullRepaymentResetsUsage(t *testing.T) {
	fix := newCreditFixture(nil)

	account := entity.NewCreditAccount(uuid.New())
	require.NoError(t, account.Deduct(decimal.NewFromInt(50000)))
	require.Equal(t, entity.LoanStatusExhausted, account.LoanStatus)

	fix.credits.On("FindByUserIDForUpdate", mock.Anything, account.UserID).Return(account, nil)
	fix.credits.On("Update", mock.Anything, account).Return(nil)
	fix.history.On("AppendRepayment", mock.Anything, mock.Anything).Return(nil)
	fix.history.On("AppendTransaction", mock.Anything, mock.Anything).Return(nil)

	got, err := fix.service.ProcessRepayment(context.Background(), adminPrincipal(), &usecase.ProcessRepaymentInput{
		UserID: account.UserID,
		Amount: decimal.NewFromInt(50000),
	})
	require.NoError(t, err)

	assert.True(t, got.CreditBalance.Equal(got.CreditLimit))
	assert.True(t, got.TotalCreditUsed.IsZero())
	assert.Equal(t, entity.LoanStatusActive, got.LoanStatus)
}

func TestCreditService_ProcessRepayment_ExceedsOutstanding(t *testing.T) {
	fix := newCreditFixture(nil)

	account := entity.NewCreditAccount(uuid.New())
	require.NoError(t, account.Deduct(decimal.NewFromInt(5000)))

	fix.credits.On("FindByUserIDForUpdate", mock.Anything, account.UserID).Return(account, nil)

	_, err := fix.service.ProcessRepayment(context.Background(), adminPrincipal(), &usecase.ProcessRepaymentInput{
		UserID: account.UserID,
		Amount: decimal.NewFromInt(5001),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrRepaymentExceedsOutstanding)
	fix.credits.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCreditService_ProcessRepayment_NonPositiveAmount(t *testing.T) {
	fix := newCreditFixture(nil)

	_, err := fix.service.ProcessRepayment(context.Background(), adminPrincipal(), &usecase.ProcessRepaymentInput{
		UserID: uuid.New(),
		Amount: decimal.Zero,
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidAmount)
}

func TestCreditService_ProcessRepayment_RequiresAdmin(t *testing.T) {
	fix := newCreditFixture(nil)

	_, err := fix.service.ProcessRepayment(context.Background(), buyerPrincipal(), &usecase.ProcessRepaymentInput{
		UserID: uuid.New(),
		Amount: decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, domainerrors.ErrPermissionDenied)
}

func TestCreditService_IncreaseCreditLimit(t *testing.T) {
	fix := newCreditFixture(nil)
	admin := adminPrincipal()

	account := entity.NewCreditAccount(uuid.New())
	require.NoError(t, account.Deduct(decimal.NewFromInt(10000)))

	fix.credits.On("FindByUserIDForUpdate", mock.Anything, account.UserID).Return(account, nil)
	fix.credits.On("Update", mock.Anything, account).Return(nil)
	fix.history.On("AppendLimitChange", mock.Anything, mock.AnythingOfType("*entity.CreditLimitChange")).Return(nil)
	fix.history.On("AppendTransaction", mock.Anything, mock.AnythingOfType("*entity.CreditTransaction")).Return(nil)

	got, err := fix.service.IncreaseCreditLimit(context.Background(), admin, &usecase.IncreaseCreditLimitInput{
		UserID:   account.UserID,
		NewLimit: decimal.NewFromInt(80000),
		Reason:   "good repayment history",
	})
	require.NoError(t, err)

	// The freed headroom lands on the balance immediately.
	assert.True(t, got.CreditLimit.Equal(decimal.NewFromInt(80000)))
	assert.True(t, got.CreditBalance.Equal(decimal.NewFromInt(70000)))

	change := fix.history.Calls[0].Arguments.Get(1).(*entity.CreditLimitChange)
	assert.True(t, change.OldLimit.Equal(decimal.NewFromInt(50000)))
	assert.True(t, change.NewLimit.Equal(decimal.NewFromInt(80000)))
	assert.Equal(t, admin.ID, change.IncreasedBy)

	txn := fix.history.Calls[1].Arguments.Get(1).(*entity.CreditTransaction)
	assert.Equal(t, entity.TransactionTypeLimitIncrease, txn.Type)
	assert.True(t, txn.Amount.Equal(decimal.NewFromInt(30000)))
}

func TestCreditService_IncreaseCreditLimit_MustExceedCurrent(t *testing.T) {
	fix := newCreditFixture(nil)
	account := entity.NewCreditAccount(uuid.New())

	fix.credits.On("FindByUserIDForUpdate", mock.Anything, account.UserID).Return(account, nil)

	_, err := fix.service.IncreaseCreditLimit(context.Background(), adminPrincipal(), &usecase.IncreaseCreditLimitInput{
		UserID:   account.UserID,
		NewLimit: entity.DefaultCreditLimit,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidLimit)
	fix.credits.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCreditService_GetMyAccount(t *testing.T) {
	fix := newCreditFixture(nil)
	buyer := buyerPrincipal()
	account := entity.NewCreditAccount(buyer.ID)

	fix.credits.On("FindByUserID", mock.Anything, buyer.ID).Return(account, nil)

	got, err := fix.service.GetMyAccount(context.Background(), buyer)
	require.NoError(t, err)
	assert.Equal(t, account.ID, got.ID)
}

func TestCreditService_GetMyAccount_RequiresBuyer(t *testing.T) {
	fix := newCreditFixture(nil)

	_, err := fix.service.GetMyAccount(context.Background(), sellerPrincipal())
	assert.ErrorIs(t, err, domainerrors.ErrPermissionDenied)
}

func TestCreditService_GetMyAccount_NotFound(t *testing.T) {
	fix := newCreditFixture(nil)
	buyer := buyerPrincipal()

	fix.credits.On("FindByUserID", mock.Anything, buyer.ID).Return(nil, repository.ErrCreditAccountNotFound)

	_, err := fix.service.GetMyAccount(context.Background(), buyer)
	assert.ErrorIs(t, err, domainerrors.ErrCreditAccountNotFound)
}

func TestCreditService_ListTransactions(t *testing.T) {
	fix := newCreditFixture(nil)
	buyer := buyerPrincipal()
	account := entity.NewCreditAccount(buyer.ID)

	fix.credits.On("FindByUserID", mock.Anything, buyer.ID).Return(account, nil)
	fix.history.On("ListTransactionsByAccount", mock.Anything, account.ID).
		Return([]*entity.CreditTransaction{{Type: entity.TransactionTypePurchase}}, nil)

	txns, err := fix.service.ListTransactions(context.Background(), buyer)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, entity.TransactionTypePurchase, txns[0].Type)
}

func TestCreditService_ListAccounts_RequiresAdmin(t *testing.T) {
	fix := newCreditFixture(nil)

	_, err := fix.service.ListAccounts(context.Background(), buyerPrincipal(), nil)
	assert.ErrorIs(t, err, domainerrors.ErrPermissionDenied)
}

func TestCreditService_ListAccounts_StatusFilter(t *testing.T) {
	fix := newCreditFixture(nil)
	status := entity.LoanStatusExhausted

	fix.credits.On("List", mock.Anything, &status).Return([]*entity.CreditAccount{}, nil)

	_, err := fix.service.ListAccounts(context.Background(), adminPrincipal(), &status)
	require.NoError(t, err)
	fix.credits.AssertExpectations(t)
}

func TestCreditService_GetAccount_RequiresAdmin(t *testing.T) {
	fix := newCreditFixture(nil)

	_, err := fix.service.GetAccount(context.Background(), buyerPrincipal(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrPermissionDenied)
}
