package postgres

import (
	"context"
	"os"
	"testing"

	"foodflex/internal/domain/entity"
	"foodflex/internal/domain/repository"
	"foodflex/internal/infra/persistence/model"
	"foodflex/internal/util"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openOrderTestDB(t *testing.T) *gorm.DB {
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

	require.NoError(t, db.AutoMigrate(&model.OrderModel{}, &model.OrderItemModel{}))

	return db
}

func testOrderWithRefs(buyerID uuid.UUID, orderNumber, qrToken string) *entity.Order {
	return &entity.Order{
		OrderNumber: orderNumber,
		QRToken:     qrToken,
		BuyerID:     buyerID,
		SellerID:    uuid.New(),
		TotalAmount: decimal.NewFromInt(500),
		Status:      entity.OrderStatusPending,
		Items: []entity.OrderItem{
			{ProductName: "Fried Rice", UnitPrice: decimal.NewFromInt(500), Quantity: 1, Subtotal: decimal.NewFromInt(500)},
		},
	}
}

func randomOrderRefs(t *testing.T) (string, string) {
	number, err := util.RandomString(12, util.OrderNumberCharset)
	require.NoError(t, err)
	token, err := util.RandomString(64, util.TokenCharset)
	require.NoError(t, err)

	return "FF" + number, token
}

// A unique violation on the order number must not poison the surrounding
// transaction: the savepoint rollback keeps it usable so the caller can retry
// with fresh references inside the same transaction.
func TestOrderRepository_Create_DuplicateRefKeepsTransactionUsable(t *testing.T) {
	db := openOrderTestDB(t)
	ctx := context.Background()
	buyerID := uuid.New()

	t.Cleanup(func() {
		db.Exec("DELETE FROM order_items WHERE order_id IN (SELECT id FROM orders WHERE buyer_id = ?)", buyerID)
		db.Where("buyer_id = ?", buyerID).Delete(&model.OrderModel{})
	})

	firstNumber, firstToken := randomOrderRefs(t)
	retryNumber, retryToken := randomOrderRefs(t)

	txManager := NewTransactionManager(db)
	err := txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.NewOrderRepository()

		require.NoError(t, orderRepo.Create(ctx, testOrderWithRefs(buyerID, firstNumber, firstToken)))

		// Same order number: the unique index rejects the insert.
		colliding := testOrderWithRefs(buyerID, firstNumber, firstToken)
		err := orderRepo.Create(ctx, colliding)
		require.ErrorIs(t, err, repository.ErrDuplicateOrderRef)

		// The transaction survived the violation; a retry with fresh
		// references succeeds without SQLSTATE 25P02.
		colliding.OrderNumber = retryNumber
		colliding.QRToken = retryToken

		return orderRepo.Create(ctx, colliding)
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&model.OrderModel{}).Where("buyer_id = ?", buyerID).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}
