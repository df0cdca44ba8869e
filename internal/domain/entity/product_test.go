package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProduct_ReduceStock(t *testing.T) {
	product := &Product{StockQuantity: 5}

	assert.True(t, product.ReduceStock(3))
	assert.Equal(t, 2, product.StockQuantity)
	assert.Equal(t, 3, product.SalesCount)
}

func TestProduct_ReduceStock_ExactlyAvailable(t *testing.T) {
	product := &Product{StockQuantity: 5}

	assert.True(t, product.ReduceStock(5))
	assert.Equal(t, 0, product.StockQuantity)
	assert.False(t, product.IsInStock())
}

func TestProduct_ReduceStock_Insufficient(t *testing.T) {
	product := &Product{StockQuantity: 2, SalesCount: 7}

	assert.False(t, product.ReduceStock(3))
	// A rejected reservation leaves the product untouched.
	assert.Equal(t, 2, product.StockQuantity)
	assert.Equal(t, 7, product.SalesCount)
}

func TestProduct_RestoreStock(t *testing.T) {
	product := &Product{StockQuantity: 1, SalesCount: 4}

	product.RestoreStock(3)

	assert.Equal(t, 4, product.StockQuantity)
	// Restores hand the reservation back without rewriting sales history.
	assert.Equal(t, 4, product.SalesCount)
}
