package impl

import (
	"context"
	"os"
	"sync"
	"testing"

	"foodflex/internal/domain/entity"
	domainerrors "foodflex/internal/domain/errors"
	"foodflex/internal/infra/persistence/model"
	"foodflex/internal/infra/persistence/postgres"
	"foodflex/internal/infra/qrcode"
	"foodflex/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB connects to the database named by TEST_POSTGRES_DSN and migrates
// the schema. Requires the pg_uuidv7 extension for UUID defaults.
func openTestDB(t *testing.T) *gorm.DB {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set, skipping integration test")
	}

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS pg_uuidv7").Error; err != nil {
		t.Skipf("pg_uuidv7 extension unavailable, skipping integration test: %v", err)
	}

	require.NoError(t, db.AutoMigrate(
		&model.ProductModel{},
		&model.SellerProfileModel{},
		&model.CartModel{},
		&model.CartItemModel{},
		&model.OrderModel{},
		&model.OrderItemModel{},
		&model.CreditAccountModel{},
		&model.CreditTransactionModel{},
		&model.RepaymentRecordModel{},
		&model.CreditLimitChangeModel{},
	))

	return db
}

func seedBuyerWithCart(t *testing.T, db *gorm.DB, productID uuid.UUID) uuid.UUID {
	buyerID := uuid.New()

	require.NoError(t, db.Create(&model.CreditAccountModel{
		ID:            uuid.New(),
		UserID:        buyerID,
		CreditLimit:   entity.DefaultCreditLimit,
		CreditBalance: entity.DefaultCreditLimit,
		LoanStatus:    entity.LoanStatusActive.String(),
	}).Error)

	cartID := uuid.New()
	require.NoError(t, db.Create(&model.CartModel{ID: cartID, UserID: buyerID}).Error)
	require.NoError(t, db.Create(&model.CartItemModel{
		ID:        uuid.New(),
		CartID:    cartID,
		ProductID: productID,
		Quantity:  1,
	}).Error)

	t.Cleanup(func() {
		db.Where("cart_id = ?", cartID).Delete(&model.CartItemModel{})
		db.Where("id = ?", cartID).Delete(&model.CartModel{})
		db.Exec("DELETE FROM credit_transactions WHERE credit_account_id IN (SELECT id FROM credit_accounts WHERE user_id = ?)", buyerID)
		db.Where("user_id = ?", buyerID).Delete(&model.CreditAccountModel{})
		db.Exec("DELETE FROM order_items WHERE order_id IN (SELECT id FROM orders WHERE buyer_id = ?)", buyerID)
		db.Where("buyer_id = ?", buyerID).Delete(&model.OrderModel{})
	})

	return buyerID
}

// Two buyers race for the last unit in stock: the product row lock serializes
// the checkouts, exactly one succeeds and the loser sees the drained stock.
func TestCheckoutService_Checkout_ConcurrentLastUnit(t *testing.T) {
	db := openTestDB(t)

	product := &model.ProductModel{
		ID:            uuid.New(),
		SellerID:      uuid.New(),
		Name:          "Last Portion Jollof",
		Price:         decimal.NewFromInt(1000),
		StockQuantity: 1,
		IsActive:      true,
	}
	require.NoError(t, db.Create(product).Error)
	t.Cleanup(func() {
		db.Where("id = ?", product.ID).Delete(&model.ProductModel{})
	})

	firstBuyer := seedBuyerWithCart(t, db, product.ID)
	secondBuyer := seedBuyerWithCart(t, db, product.ID)

	service := NewCheckoutService(
		postgres.NewTransactionManager(db),
		qrcode.NewQRCodeService(128, "M"),
		nil,
		testLogger(),
	)

	ctx := context.Background()
	results := make(map[uuid.UUID]error, 2)
	outputs := make(map[uuid.UUID]*usecase.CheckoutOutput, 2)

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, buyerID := range []uuid.UUID{firstBuyer, secondBuyer} {
		wg.Add(1)
		go func(buyerID uuid.UUID) {
			defer wg.Done()

			output, err := service.Checkout(ctx, &entity.Principal{ID: buyerID, Role: entity.RoleBuyer})

			mu.Lock()
			results[buyerID] = err
			outputs[buyerID] = output
			mu.Unlock()
		}(buyerID)
	}
	wg.Wait()

	var winners, losers int
	for buyerID, err := range results {
		if err == nil {
			winners++

			require.NotNil(t, outputs[buyerID])
			assert.Equal(t, entity.OrderStatusPending, outputs[buyerID].Order.Status)

			continue
		}

		losers++
		var stockErr *domainerrors.InsufficientStockError
		require.ErrorAs(t, err, &stockErr, "loser must fail on stock, got: %v", err)
		assert.Equal(t, 0, stockErr.Available)
	}
	assert.Equal(t, 1, winners)
	assert.Equal(t, 1, losers)

	var reloaded model.ProductModel
	require.NoError(t, db.Where("id = ?", product.ID).First(&reloaded).Error)
	assert.Equal(t, 0, reloaded.StockQuantity)
	assert.Equal(t, 1, reloaded.SalesCount)
}
