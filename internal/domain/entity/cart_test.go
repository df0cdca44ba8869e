package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartWithItems(items ...CartItem) *Cart {
	return &Cart{ID: uuid.New(), UserID: uuid.New(), Items: items}
}

func lineFor(sellerID uuid.UUID, price float64, quantity int) CartItem {
	product := &Product{
		ID:       uuid.New(),
		SellerID: sellerID,
		Price:    decimal.NewFromFloat(price),
	}

	return CartItem{ID: uuid.New(), ProductID: product.ID, Product: product, Quantity: quantity}
}

func TestCart_Subtotal(t *testing.T) {
	sellerID := uuid.New()
	cart := cartWithItems(
		lineFor(sellerID, 150.50, 2),
		lineFor(sellerID, 99.99, 1),
	)

	assert.True(t, cart.Subtotal().Equal(decimal.NewFromFloat(400.99)))
	assert.Equal(t, 3, cart.TotalItems())
	assert.False(t, cart.IsEmpty())
}

func TestCart_SingleSellerID(t *testing.T) {
	sellerID := uuid.New()
	cart := cartWithItems(lineFor(sellerID, 10, 1), lineFor(sellerID, 20, 2))

	got, ok := cart.SingleSellerID()
	require.True(t, ok)
	assert.Equal(t, sellerID, got)
}

func TestCart_SingleSellerID_MixedSellers(t *testing.T) {
	cart := cartWithItems(lineFor(uuid.New(), 10, 1), lineFor(uuid.New(), 20, 1))

	_, ok := cart.SingleSellerID()
	assert.False(t, ok)
}

func TestCart_SingleSellerID_EmptyCart(t *testing.T) {
	cart := cartWithItems()

	_, ok := cart.SingleSellerID()
	assert.False(t, ok)
}

func TestCart_SingleSellerID_MissingProduct(t *testing.T) {
	line := lineFor(uuid.New(), 10, 1)
	line.Product = nil
	cart := cartWithItems(line)

	_, ok := cart.SingleSellerID()
	assert.False(t, ok)
}

func TestCartItem_TotalPrice_WithoutProduct(t *testing.T) {
	item := CartItem{Quantity: 3}

	assert.True(t, item.TotalPrice().IsZero())
}
