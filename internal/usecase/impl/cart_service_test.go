package impl

import (
	"context"
	"testing"

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

type cartFixture struct {
	service  usecase.CartUsecase
	carts    *mocks.CartRepository
	products *mocks.ProductRepository
}

func newCartFixture() *cartFixture {
	carts := new(mocks.CartRepository)
	products := new(mocks.ProductRepository)

	txManager := &mocks.TransactionManager{Factory: &mocks.RepositoryFactory{
		Carts:    carts,
		Products: products,
	}}

	return &cartFixture{
		service:  NewCartService(txManager, testLogger()),
		carts:    carts,
		products: products,
	}
}

func activeProduct(stock int) *entity.Product {
	return &entity.Product{
		ID:            uuid.New(),
		SellerID:      uuid.New(),
		Name:          "Pounded Yam",
		Price:         decimal.NewFromInt(1200),
		StockQuantity: stock,
		IsActive:      true,
	}
}

func TestCartService_GetCart_CreatesWhenMissing(t *testing.T) {
	fix := newCartFixture()
	buyer := buyerPrincipal()
	cart := &entity.Cart{ID: uuid.New(), UserID: buyer.ID}

	fix.carts.On("GetOrCreate", mock.Anything, buyer.ID).Return(cart, nil)

	got, err := fix.service.GetCart(context.Background(), buyer)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, got.ID)
	assert.True(t, got.IsEmpty())
}

func TestCartService_GetCart_RequiresBuyer(t *testing.T) {
	fix := newCartFixture()

	_, err := fix.service.GetCart(context.Background(), sellerPrincipal())
	assert.ErrorIs(t, err, domainerrors.ErrPermissionDenied)
}

func TestCartService_AddItem(t *testing.T) {
	fix := newCartFixture()
	buyer := buyerPrincipal()
	product := activeProduct(10)
	cart := &entity.Cart{ID: uuid.New(), UserID: buyer.ID}

	fix.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	fix.carts.On("GetOrCreate", mock.Anything, buyer.ID).Return(cart, nil)
	fix.carts.On("UpsertItem", mock.Anything, mock.AnythingOfType("*entity.CartItem")).Return(nil)
	fix.carts.On("FindByUserID", mock.Anything, buyer.ID).Return(cart, nil)

	_, err := fix.service.AddItem(context.Background(), buyer, &usecase.AddCartItemInput{
		ProductID: product.ID,
		Quantity:  2,
	})
	require.NoError(t, err)

	upserted := fix.carts.Calls[1].Arguments.Get(1).(*entity.CartItem)
	assert.Equal(t, cart.ID, upserted.CartID)
	assert.Equal(t, product.ID, upserted.ProductID)
	assert.Equal(t, 2, upserted.Quantity)
}

func TestCartService_AddItem_MergesExistingLine(t *testing.T) {
	fix := newCartFixture()
	buyer := buyerPrincipal()
	product := activeProduct(10)
	cart := &entity.Cart{
		ID:     uuid.New(),
		UserID: buyer.ID,
		Items: []entity.CartItem{
			{ID: uuid.New(), ProductID: product.ID, Product: product, Quantity: 3},
		},
	}

	fix.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	fix.carts.On("GetOrCreate", mock.Anything, buyer.ID).Return(cart, nil)
	fix.carts.On("UpsertItem", mock.Anything, mock.AnythingOfType("*entity.CartItem")).Return(nil)
	fix.carts.On("FindByUserID", mock.Anything, buyer.ID).Return(cart, nil)

	_, err := fix.service.AddItem(context.Background(), buyer, &usecase.AddCartItemInput{
		ProductID: product.ID,
		Quantity:  2,
	})
	require.NoError(t, err)

	upserted := fix.carts.Calls[1].Arguments.Get(1).(*entity.CartItem)
	assert.Equal(t, 5, upserted.Quantity)
}

func TestCartService_AddItem_MergedQuantityExceedsStock(t *testing.T) {
	fix := newCartFixture()
	buyer := buyerPrincipal()
	product := activeProduct(4)
	cart := &entity.Cart{
		ID:     uuid.New(),
		UserID: buyer.ID,
		Items: []entity.CartItem{
			{ID: uuid.New(), ProductID: product.ID, Product: product, Quantity: 3},
		},
	}

	fix.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	fix.carts.On("GetOrCreate", mock.Anything, buyer.ID).Return(cart, nil)

	_, err := fix.service.AddItem(context.Background(), buyer, &usecase.AddCartItemInput{
		ProductID: product.ID,
		Quantity:  2,
	})
	require.Error(t, err)

	var stockErr *domainerrors.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 4, stockErr.Available)
	assert.Equal(t, 5, stockErr.Requested)
	fix.carts.AssertNotCalled(t, "UpsertItem", mock.Anything, mock.Anything)
}

func TestCartService_AddItem_InactiveProduct(t *testing.T) {
	fix := newCartFixture()
	buyer := buyerPrincipal()
	product := activeProduct(10)
	product.IsActive = false

	fix.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)

	_, err := fix.service.AddItem(context.Background(), buyer, &usecase.AddCartItemInput{
		ProductID: product.ID,
		Quantity:  1,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestCartService_AddItem_UnknownProduct(t *testing.T) {
	fix := newCartFixture()
	buyer := buyerPrincipal()
	productID := uuid.New()

	fix.products.On("FindByID", mock.Anything, productID).Return(nil, repository.ErrProductNotFound)

	_, err := fix.service.AddItem(context.Background(), buyer, &usecase.AddCartItemInput{
		ProductID: productID,
		Quantity:  1,
	})
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestCartService_AddItem_ProductDeletedDuringUpsert(t *testing.T) {
	fix := newCartFixture()
	buyer := buyerPrincipal()
	product := activeProduct(10)
	cart := &entity.Cart{ID: uuid.New(), UserID: buyer.ID}

	fix.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	fix.carts.On("GetOrCreate", mock.Anything, buyer.ID).Return(cart, nil)
	// The product disappears between the availability check and the insert.
	fix.carts.On("UpsertItem", mock.Anything, mock.Anything).Return(repository.ErrProductNotFound)

	_, err := fix.service.AddItem(context.Background(), buyer, &usecase.AddCartItemInput{
		ProductID: product.ID,
		Quantity:  1,
	})
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestCartService_AddItem_RejectsZeroQuantity(t *testing.T) {
	fix := newCartFixture()

	_, err := fix.service.AddItem(context.Background(), buyerPrincipal(), &usecase.AddCartItemInput{
		ProductID: uuid.New(),
		Quantity:  0,
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestCartService_UpdateItem(t *testing.T) {
	fix := newCartFixture()
	buyer := buyerPrincipal()
	product := activeProduct(10)
	item := &entity.CartItem{ID: uuid.New(), CartID: uuid.New(), ProductID: product.ID, Product: product, Quantity: 1}
	cart := &entity.Cart{ID: item.CartID, UserID: buyer.ID, Items: []entity.CartItem{*item}}

	fix.carts.On("FindItemByID", mock.Anything, item.ID, buyer.ID).Return(item, nil)
	fix.carts.On("UpsertItem", mock.Anything, item).Return(nil)
	fix.carts.On("FindByUserID", mock.Anything, buyer.ID).Return(cart, nil)

	_, err := fix.service.UpdateItem(context.Background(), buyer, item.ID, &usecase.UpdateCartItemInput{Quantity: 7})
	require.NoError(t, err)
	assert.Equal(t, 7, item.Quantity)
}

func TestCartService_UpdateItem_ExceedsStock(t *testing.T) {
	fix := newCartFixture()
	buyer := buyerPrincipal()
	product := activeProduct(3)
	item := &entity.CartItem{ID: uuid.New(), ProductID: product.ID, Product: product, Quantity: 1}

	fix.carts.On("FindItemByID", mock.Anything, item.ID, buyer.ID).Return(item, nil)

	_, err := fix.service.UpdateItem(context.Background(), buyer, item.ID, &usecase.UpdateCartItemInput{Quantity: 4})
	require.Error(t, err)

	var stockErr *domainerrors.InsufficientStockError
	assert.ErrorAs(t, err, &stockErr)
	fix.carts.AssertNotCalled(t, "UpsertItem", mock.Anything, mock.Anything)
}

func TestCartService_UpdateItem_NotFound(t *testing.T) {
	fix := newCartFixture()
	buyer := buyerPrincipal()
	itemID := uuid.New()

	fix.carts.On("FindItemByID", mock.Anything, itemID, buyer.ID).Return(nil, repository.ErrCartItemNotFound)

	_, err := fix.service.UpdateItem(context.Background(), buyer, itemID, &usecase.UpdateCartItemInput{Quantity: 2})
	assert.ErrorIs(t, err, domainerrors.ErrCartItemNotFound)
}

func TestCartService_RemoveItem(t *testing.T) {
	fix := newCartFixture()
	buyer := buyerPrincipal()
	item := &entity.CartItem{ID: uuid.New(), CartID: uuid.New(), ProductID: uuid.New(), Quantity: 1}
	cart := &entity.Cart{ID: item.CartID, UserID: buyer.ID}

	fix.carts.On("FindItemByID", mock.Anything, item.ID, buyer.ID).Return(item, nil)
	fix.carts.On("RemoveItem", mock.Anything, item.ID).Return(nil)
	fix.carts.On("FindByUserID", mock.Anything, buyer.ID).Return(cart, nil)

	got, err := fix.service.RemoveItem(context.Background(), buyer, item.ID)
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
	fix.carts.AssertExpectations(t)
}

func TestCartService_Clear(t *testing.T) {
	fix := newCartFixture()
	buyer := buyerPrincipal()
	cart := &entity.Cart{ID: uuid.New(), UserID: buyer.ID}

	fix.carts.On("FindByUserID", mock.Anything, buyer.ID).Return(cart, nil)
	fix.carts.On("Clear", mock.Anything, cart.ID).Return(nil)

	err := fix.service.Clear(context.Background(), buyer)
	require.NoError(t, err)
	fix.carts.AssertExpectations(t)
}

func TestCartService_Clear_AbsentCartIsNoOp(t *testing.T) {
	fix := newCartFixture()
	buyer := buyerPrincipal()

	fix.carts.On("FindByUserID", mock.Anything, buyer.ID).Return(nil, repository.ErrCartNotFound)

	err := fix.service.Clear(context.Background(), buyer)
	require.NoError(t, err)
	fix.carts.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
}
