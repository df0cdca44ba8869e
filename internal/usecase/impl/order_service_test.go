package impl

import (
	"context"
	"testing"
	"time"

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

type orderFixture struct {
	service  usecase.OrderUsecase
	orders   *mocks.OrderRepository
	products *mocks.ProductRepository
	credits  *mocks.CreditAccountRepository
	history  *mocks.CreditHistoryRepository
	sellers  *mocks.SellerProfileRepository
}

func newOrderFixture() *orderFixture {
	orders := new(mocks.OrderRepository)
	products := new(mocks.ProductRepository)
	credits := new(mocks.CreditAccountRepository)
	history := new(mocks.CreditHistoryRepository)
	sellers := new(mocks.SellerProfileRepository)

	txManager := &mocks.TransactionManager{Factory: &mocks.RepositoryFactory{
		Orders:         orders,
		Products:       products,
		CreditAccounts: credits,
		CreditHistory:  history,
		SellerProfiles: sellers,
	}}

	return &orderFixture{
		service:  NewOrderService(txManager, testLogger()),
		orders:   orders,
		products: products,
		credits:  credits,
		history:  history,
		sellers:  sellers,
	}
}

func sellerPrincipal() *entity.Principal {
	return &entity.Principal{ID: uuid.New(), Role: entity.RoleSeller}
}

func pendingOrderFor(buyerID, sellerID uuid.UUID) *entity.Order {
	productID := uuid.New()

	return &entity.Order{
		ID:          uuid.New(),
		OrderNumber: "FF3K9Q2M7P1XAB",
		QRToken:     "token-abcdef",
		BuyerID:     buyerID,
		SellerID:    sellerID,
		TotalAmount: decimal.NewFromInt(2500),
		Status:      entity.OrderStatusPending,
		Items: []entity.OrderItem{
			{
				ID:          uuid.New(),
				ProductID:   &productID,
				ProductName: "Egusi Soup",
				UnitPrice:   decimal.NewFromInt(1250),
				Quantity:    2,
				Subtotal:    decimal.NewFromInt(2500),
			},
		},
		CreatedAt: time.Now(),
	}
}

func TestOrderService_VerifyQRToken(t *testing.T) {
	fix := newOrderFixture()
	seller := sellerPrincipal()
	order := pendingOrderFor(uuid.New(), seller.ID)

	fix.orders.On("FindPendingByQRToken", mock.Anything, order.QRToken, seller.ID).Return(order, nil)

	got, err := fix.service.VerifyQRToken(context.Background(), seller, order.QRToken)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
	assert.Equal(t, entity.OrderStatusPending, got.Status)
}

func TestOrderService_VerifyQRToken_UnknownToken(t *testing.T) {
	fix := newOrderFixture()
	seller := sellerPrincipal()

	fix.orders.On("FindPendingByQRToken", mock.Anything, "bogus", seller.ID).
		Return(nil, repository.ErrOrderNotFound)

	_, err := fix.service.VerifyQRToken(context.Background(), seller, "bogus")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidQRToken)
}

func TestOrderService_VerifyQRToken_EmptyToken(t *testing.T) {
	fix := newOrderFixture()

	_, err := fix.service.VerifyQRToken(context.Background(), sellerPrincipal(), "")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidQRToken)
}

func TestOrderService_VerifyQRToken_RequiresSeller(t *testing.T) {
	fix := newOrderFixture()

	_, err := fix.service.VerifyQRToken(context.Background(), buyerPrincipal(), "token")
	assert.ErrorIs(t, err, domainerrors.ErrPermissionDenied)
}

func TestOrderService_ConfirmOrder(t *testing.T) {
	fix := newOrderFixture()
	seller := sellerPrincipal()
	order := pendingOrderFor(uuid.New(), seller.ID)

	fix.orders.On("FindByIDForUpdate", mock.Anything, order.ID).Return(order, nil)
	fix.orders.On("Update", mock.Anything, order).Return(nil)

	got, err := fix.service.ConfirmOrder(context.Background(), seller, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusConfirmed, got.Status)
	require.NotNil(t, got.ConfirmedAt)
}

func TestOrderService_ConfirmOrder_WrongSeller(t *testing.T) {
	fix := newOrderFixture()
	order := pendingOrderFor(uuid.New(), uuid.New())

	fix.orders.On("FindByIDForUpdate", mock.Anything, order.ID).Return(order, nil)

	_, err := fix.service.ConfirmOrder(context.Background(), sellerPrincipal(), order.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrPermissionDenied)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	fix.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestOrderService_ConfirmOrder_AlreadyConfirmed(t *testing.T) {
	fix := newOrderFixture()
	seller := sellerPrincipal()
	order := pendingOrderFor(uuid.New(), seller.ID)
	order.Status = entity.OrderStatusConfirmed

	fix.orders.On("FindByIDForUpdate", mock.Anything, order.ID).Return(order, nil)

	_, err := fix.service.ConfirmOrder(context.Background(), seller, order.ID)
	require.Error(t, err)

	var transitionErr *domainerrors.InvalidTransitionError
	assert.ErrorAs(t, err, &transitionErr)
}

func TestOrderService_CompleteOrder_PaysSeller(t *testing.T) {
	fix := newOrderFixture()
	seller := sellerPrincipal()
	order := pendingOrderFor(uuid.New(), seller.ID)
	order.Status = entity.OrderStatusConfirmed

	profile := &entity.SellerProfile{
		UserID:               seller.ID,
		WalletBalance:        decimal.NewFromInt(1000),
		TotalEarnings:        decimal.NewFromInt(9000),
		TotalOrdersFulfilled: 3,
	}

	fix.orders.On("FindByIDForUpdate", mock.Anything, order.ID).Return(order, nil)
	fix.orders.On("Update", mock.Anything, order).Return(nil)
	fix.sellers.On("FindByUserIDForUpdate", mock.Anything, seller.ID).Return(profile, nil)
	fix.sellers.On("Update", mock.Anything, profile).Return(nil)

	got, err := fix.service.CompleteOrder(context.Background(), seller, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCompleted, got.Status)
	require.NotNil(t, got.CompletedAt)

	assert.True(t, profile.WalletBalance.Equal(decimal.NewFromInt(3500)))
	assert.True(t, profile.TotalEarnings.Equal(decimal.NewFromInt(11500)))
	assert.Equal(t, 4, profile.TotalOrdersFulfilled)
}

func TestOrderService_CompleteOrder_RequiresConfirmed(t *testing.T) {
	fix := newOrderFixture()
	seller := sellerPrincipal()
	order := pendingOrderFor(uuid.New(), seller.ID)

	fix.orders.On("FindByIDForUpdate", mock.Anything, order.ID).Return(order, nil)

	_, err := fix.service.CompleteOrder(context.Background(), seller, order.ID)
	require.Error(t, err)

	var transitionErr *domainerrors.InvalidTransitionError
	assert.ErrorAs(t, err, &transitionErr)
	fix.sellers.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestOrderService_CompleteOrder_WrongSeller(t *testing.T) {
	fix := newOrderFixture()
	order := pendingOrderFor(uuid.New(), uuid.New())
	order.Status = entity.OrderStatusConfirmed

	fix.orders.On("FindByIDForUpdate", mock.Anything, order.ID).Return(order, nil)

	_, err := fix.service.CompleteOrder(context.Background(), sellerPrincipal(), order.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrPermissionDenied)
}

func TestOrderService_CancelOrder_RestoresStockAndRefunds(t *testing.T) {
	fix := newOrderFixture()
	buyer := buyerPrincipal()
	order := pendingOrderFor(buyer.ID, uuid.New())
	productID := *order.Items[0].ProductID

	product := &entity.Product{ID: productID, StockQuantity: 3, SalesCount: 10}
	account := entity.NewCreditAccount(buyer.ID)
	require.NoError(t, account.Deduct(order.TotalAmount))

	fix.orders.On("FindByIDForUpdate", mock.Anything, order.ID).Return(order, nil)
	fix.products.On("FindByIDsForUpdate", mock.Anything, []uuid.UUID{productID}).
		Return([]*entity.Product{product}, nil)
	fix.products.On("UpdateStock", mock.Anything, product).Return(nil)
	fix.credits.On("FindByUserIDForUpdate", mock.Anything, buyer.ID).Return(account, nil)
	fix.credits.On("Update", mock.Anything, account).Return(nil)
	fix.history.On("AppendTransaction", mock.Anything, mock.AnythingOfType("*entity.CreditTransaction")).Return(nil)
	fix.orders.On("Update", mock.Anything, order).Return(nil)

	got, err := fix.service.CancelOrder(context.Background(), buyer, order.ID, "changed my mind")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, got.Status)
	assert.Equal(t, "Cancelled: changed my mind", got.Notes)

	// Stock went back, the full amount was refunded.
	assert.Equal(t, 5, product.StockQuantity)
	assert.True(t, account.CreditBalance.Equal(account.CreditLimit))

	txn := fix.history.Calls[0].Arguments.Get(1).(*entity.CreditTransaction)
	assert.Equal(t, entity.TransactionTypeAdjustment, txn.Type)
	assert.True(t, txn.Amount.Equal(order.TotalAmount))
	assert.Equal(t, order.OrderNumber, txn.Reference)
}

func TestOrderService_CancelOrder_SkipsDeletedProducts(t *testing.T) {
	fix := newOrderFixture()
	buyer := buyerPrincipal()
	order := pendingOrderFor(buyer.ID, uuid.New())
	order.Items[0].ProductID = nil

	account := entity.NewCreditAccount(buyer.ID)
	require.NoError(t, account.Deduct(order.TotalAmount))

	fix.orders.On("FindByIDForUpdate", mock.Anything, order.ID).Return(order, nil)
	fix.credits.On("FindByUserIDForUpdate", mock.Anything, buyer.ID).Return(account, nil)
	fix.credits.On("Update", mock.Anything, account).Return(nil)
	fix.history.On("AppendTransaction", mock.Anything, mock.Anything).Return(nil)
	fix.orders.On("Update", mock.Anything, order).Return(nil)

	_, err := fix.service.CancelOrder(context.Background(), buyer, order.ID, "")
	require.NoError(t, err)

	// No live product rows to lock or restore.
	fix.products.AssertNotCalled(t, "FindByIDsForUpdate", mock.Anything, mock.Anything)
}

func TestOrderService_CancelOrder_TerminalState(t *testing.T) {
	fix := newOrderFixture()
	buyer := buyerPrincipal()
	order := pendingOrderFor(buyer.ID, uuid.New())
	order.Status = entity.OrderStatusCompleted

	fix.orders.On("FindByIDForUpdate", mock.Anything, order.ID).Return(order, nil)

	_, err := fix.service.CancelOrder(context.Background(), buyer, order.ID, "too late")
	require.Error(t, err)

	var transitionErr *domainerrors.InvalidTransitionError
	assert.ErrorAs(t, err, &transitionErr)
	fix.credits.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestOrderService_CancelOrder_StrangerDenied(t *testing.T) {
	fix := newOrderFixture()
	order := pendingOrderFor(uuid.New(), uuid.New())

	fix.orders.On("FindByIDForUpdate", mock.Anything, order.ID).Return(order, nil)

	_, err := fix.service.CancelOrder(context.Background(), buyerPrincipal(), order.ID, "not mine")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrPermissionDenied)
}

func TestOrderService_ListOrders_ByRole(t *testing.T) {
	ctx := context.Background()

	t.Run("buyer sees own purchases", func(t *testing.T) {
		fix := newOrderFixture()
		buyer := buyerPrincipal()
		fix.orders.On("ListByBuyer", mock.Anything, buyer.ID, (*entity.OrderStatus)(nil)).
			Return([]*entity.Order{}, nil)

		_, err := fix.service.ListOrders(ctx, buyer, nil)
		require.NoError(t, err)
		fix.orders.AssertExpectations(t)
	})

	t.Run("seller sees assigned orders", func(t *testing.T) {
		fix := newOrderFixture()
		seller := sellerPrincipal()
		fix.orders.On("ListBySeller", mock.Anything, seller.ID, (*entity.OrderStatus)(nil)).
			Return([]*entity.Order{}, nil)

		_, err := fix.service.ListOrders(ctx, seller, nil)
		require.NoError(t, err)
		fix.orders.AssertExpectations(t)
	})

	t.Run("admin sees everything", func(t *testing.T) {
		fix := newOrderFixture()
		admin := &entity.Principal{ID: uuid.New(), Role: entity.RoleAdmin}
		status := entity.OrderStatusPending
		fix.orders.On("ListAll", mock.Anything, &status).Return([]*entity.Order{}, nil)

		_, err := fix.service.ListOrders(ctx, admin, &status)
		require.NoError(t, err)
		fix.orders.AssertExpectations(t)
	})
}

func TestOrderService_GetOrder_HidesInvisibleOrders(t *testing.T) {
	fix := newOrderFixture()
	order := pendingOrderFor(uuid.New(), uuid.New())

	fix.orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	_, err := fix.service.GetOrder(context.Background(), buyerPrincipal(), order.ID)
	require.Error(t, err)
	// A foreign order reads as missing, not forbidden.
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

func TestOrderService_GetOrder_BuyerSeesOwn(t *testing.T) {
	fix := newOrderFixture()
	buyer := buyerPrincipal()
	order := pendingOrderFor(buyer.ID, uuid.New())

	fix.orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	got, err := fix.service.GetOrder(context.Background(), buyer, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.OrderNumber, got.OrderNumber)
}
