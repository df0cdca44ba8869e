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

// cartRepository implements the repository.CartRepository interface.
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepository{
		db: db,
	}
}

// FindByUserID retrieves a buyer's cart with items and their live products.
func (repo *cartRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	var cartM model.CartModel

	if err := repo.db.WithContext(ctx).
		Preload("Items.Product").
		Where("user_id = ?", userID).
		First(&cartM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCartNotFound
		}

		return nil, errors.Wrap(err, "failed to find cart by user ID")
	}

	return toCartDomain(&cartM), nil
}

// GetOrCreate retrieves a buyer's cart, creating an empty one if missing.
func (repo *cartRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	cart, err := repo.FindByUserID(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, repository.ErrCartNotFound) {
		return nil, err
	}

	cartM := &model.CartModel{UserID: userID}
	if err := repo.db.WithContext(ctx).Create(cartM).Error; err != nil {
		// A concurrent request may have created the cart first; the unique
		// index on user_id makes the race harmless.
		if isUniqueConstraintViolation(err) {
			return repo.FindByUserID(ctx, userID)
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to create cart")
	}

	return toCartDomain(cartM), nil
}

// FindItemByID retrieves a single cart item, scoped to the owning buyer.
func (repo *cartRepository) FindItemByID(ctx context.Context, itemID, userID uuid.UUID) (*entity.CartItem, error) {
	var itemM model.CartItemModel

	if err := repo.db.WithContext(ctx).
		Preload("Product").
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.user_id = ?", itemID, userID).
		First(&itemM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCartItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find cart item by ID")
	}

	return toCartItemDomain(&itemM), nil
}

// UpsertItem inserts a new cart line or updates the quantity of an existing
// line for the same product.
func (repo *cartRepository) UpsertItem(ctx context.Context, item *entity.CartItem) error {
	itemM := &model.CartItemModel{
		ID:        item.ID,
		CartID:    item.CartID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
	}

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]any{"quantity": item.Quantity}),
		}).
		Create(itemM).Error; err != nil {
		// The product may be deleted between the availability check and the
		// insert; the FK on product_id catches the race.
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrProductNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert cart item")
	}

	item.ID = itemM.ID
	item.CreatedAt = itemM.CreatedAt
	item.UpdatedAt = itemM.UpdatedAt

	return nil
}

// RemoveItem deletes a single cart line.
func (repo *cartRepository) RemoveItem(ctx context.Context, itemID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", itemID).
		Delete(&model.CartItemModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to remove cart item")
	}

	if result.RowsAffected == 0 {
		return repository.ErrCartItemNotFound
	}

	return nil
}

// Clear deletes every line in the cart.
func (repo *cartRepository) Clear(ctx context.Context, cartID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&model.CartItemModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to clear cart")
	}

	return nil
}

// toCartItemDomain converts a persistence model to a domain entity.
func toCartItemDomain(itemM *model.CartItemModel) *entity.CartItem {
	item := &entity.CartItem{
		ID:        itemM.ID,
		CartID:    itemM.CartID,
		ProductID: itemM.ProductID,
		Quantity:  itemM.Quantity,
		CreatedAt: itemM.CreatedAt,
		UpdatedAt: itemM.UpdatedAt,
	}
	if itemM.Product != nil {
		item.Product = toProductDomain(itemM.Product)
	}

	return item
}

// toCartDomain converts a persistence model to a domain entity.
func toCartDomain(cartM *model.CartModel) *entity.Cart {
	items := make([]entity.CartItem, 0, len(cartM.Items))
	for i := range cartM.Items {
		items = append(items, *toCartItemDomain(&cartM.Items[i]))
	}

	return &entity.Cart{
		ID:        cartM.ID,
		UserID:    cartM.UserID,
		Items:     items,
		CreatedAt: cartM.CreatedAt,
		UpdatedAt: cartM.UpdatedAt,
	}
}
