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

// orderRepository implements the repository.OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{
		db: db,
	}
}

// savepointOrderCreate guards the order insert inside the checkout transaction.
const savepointOrderCreate = "sp_order_create"

// Create persists a new order together with its item snapshots. Called inside
// the checkout transaction; the insert runs under a savepoint so a unique
// violation on the order number or QR token does not abort the surrounding
// transaction (Postgres refuses every statement after a constraint error with
// SQLSTATE 25P02 otherwise) and the caller can retry with fresh references.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	tx := repo.db.WithContext(ctx)
	if err := tx.SavePoint(savepointOrderCreate).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create order savepoint")
	}

	if err := tx.Create(orderM).Error; err != nil {
		// The order number and QR token both carry unique indexes; a collision
		// means the generator produced a value already in use.
		if isUniqueConstraintViolation(err) {
			if rbErr := tx.RollbackTo(savepointOrderCreate).Error; rbErr != nil {
				return domainerrors.NewDatabaseExecuteError(rbErr, "failed to roll back to order savepoint")
			}

			return repository.ErrDuplicateOrderRef
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	// Update the entity with generated values
	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	for i := range orderM.Items {
		order.Items[i].ID = orderM.Items[i].ID
		order.Items[i].OrderID = orderM.ID
	}

	return nil
}

// FindByID retrieves an order with its items.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by ID")
	}

	return toOrderDomain(&orderM), nil
}

// FindByIDForUpdate retrieves an order with a SELECT ... FOR UPDATE row lock.
// Items are loaded in a second query after the lock is held; FOR UPDATE
// cannot be combined with the LEFT JOIN a preload would emit.
func (repo *orderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to lock order by ID")
	}

	if err := repo.db.WithContext(ctx).
		Where("order_id = ?", orderM.ID).
		Find(&orderM.Items).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load order items")
	}

	return toOrderDomain(&orderM), nil
}

// FindPendingByQRToken retrieves the PENDING order matching the QR token and
// assigned to the given seller. A wrong seller and an unknown token are
// indistinguishable to the caller, which keeps tokens unguessable.
func (repo *orderRepository) FindPendingByQRToken(ctx context.Context, qrToken string, sellerID uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Where("qr_token = ? AND seller_id = ? AND status = ?", qrToken, sellerID, entity.OrderStatusPending.String()).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find pending order by QR token")
	}

	return toOrderDomain(&orderM), nil
}

// Update persists status, notes and transition timestamps. Item snapshots are
// immutable and never written here.
func (repo *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", order.ID).
		Updates(map[string]any{
			"status":       order.Status.String(),
			"notes":        order.Notes,
			"confirmed_at": order.ConfirmedAt,
			"completed_at": order.CompletedAt,
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update order")
	}

	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// ListByBuyer retrieves a buyer's orders, newest first, optionally filtered by status.
func (repo *orderRepository) ListByBuyer(ctx context.Context, buyerID uuid.UUID, status *entity.OrderStatus) ([]*entity.Order, error) {
	return repo.list(ctx, status, "buyer_id = ?", buyerID)
}

// ListBySeller retrieves a seller's orders, newest first, optionally filtered by status.
func (repo *orderRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID, status *entity.OrderStatus) ([]*entity.Order, error) {
	return repo.list(ctx, status, "seller_id = ?", sellerID)
}

// ListAll retrieves every order, newest first, optionally filtered by status.
func (repo *orderRepository) ListAll(ctx context.Context, status *entity.OrderStatus) ([]*entity.Order, error) {
	return repo.list(ctx, status, "")
}

func (repo *orderRepository) list(ctx context.Context, status *entity.OrderStatus, cond string, args ...any) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel

	query := repo.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC")
	if cond != "" {
		query = query.Where(cond, args...)
	}
	if status != nil {
		query = query.Where("status = ?", status.String())
	}

	if err := query.Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, nil
}

// fromOrderDomain converts a domain entity to a persistence model.
func fromOrderDomain(order *entity.Order) *model.OrderModel {
	items := make([]model.OrderItemModel, 0, len(order.Items))
	for i := range order.Items {
		item := &order.Items[i]
		items = append(items, model.OrderItemModel{
			ID:          item.ID,
			OrderID:     item.OrderID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Subtotal:    item.Subtotal,
		})
	}

	return &model.OrderModel{
		ID:          order.ID,
		OrderNumber: order.OrderNumber,
		QRToken:     order.QRToken,
		BuyerID:     order.BuyerID,
		SellerID:    order.SellerID,
		TotalAmount: order.TotalAmount,
		Status:      order.Status.String(),
		Notes:       order.Notes,
		CreatedAt:   order.CreatedAt,
		ConfirmedAt: order.ConfirmedAt,
		CompletedAt: order.CompletedAt,
		Items:       items,
	}
}

// toOrderDomain converts a persistence model to a domain entity.
func toOrderDomain(orderM *model.OrderModel) *entity.Order {
	items := make([]entity.OrderItem, 0, len(orderM.Items))
	for i := range orderM.Items {
		itemM := &orderM.Items[i]
		items = append(items, entity.OrderItem{
			ID:          itemM.ID,
			OrderID:     itemM.OrderID,
			ProductID:   itemM.ProductID,
			ProductName: itemM.ProductName,
			UnitPrice:   itemM.UnitPrice,
			Quantity:    itemM.Quantity,
			Subtotal:    itemM.Subtotal,
		})
	}

	return &entity.Order{
		ID:          orderM.ID,
		OrderNumber: orderM.OrderNumber,
		QRToken:     orderM.QRToken,
		BuyerID:     orderM.BuyerID,
		SellerID:    orderM.SellerID,
		TotalAmount: orderM.TotalAmount,
		Status:      entity.OrderStatus(orderM.Status),
		Notes:       orderM.Notes,
		Items:       items,
		CreatedAt:   orderM.CreatedAt,
		ConfirmedAt: orderM.ConfirmedAt,
		CompletedAt: orderM.CompletedAt,
	}
}
