package postgres

import (
	"context"

	"foodflex/internal/domain/entity"
	"foodflex/internal/domain/repository"
	"foodflex/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// productRepository implements the repository.ProductRepository interface.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{
		db: db,
	}
}

// FindByID retrieves a single product.
func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by ID")
	}

	return toProductDomain(&productM), nil
}

// FindByIDsForUpdate retrieves products with SELECT ... FOR UPDATE row locks.
// Rows are ordered by ID so every concurrent checkout acquires locks in the
// same sequence, which rules out lock-order deadlocks between them.
func (repo *productRepository) FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]*entity.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var productModels []*model.ProductModel

	if err := repo.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Order("id").
		Find(&productModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to lock products by IDs")
	}

	products := make([]*entity.Product, 0, len(productModels))
	for _, productM := range productModels {
		products = append(products, toProductDomain(productM))
	}

	return products, nil
}

// UpdateStock persists the mutated stock quantity and sales counter.
func (repo *productRepository) UpdateStock(ctx context.Context, product *entity.Product) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"stock_quantity": product.StockQuantity,
			"sales_count":    product.SalesCount,
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update product stock")
	}

	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// toProductDomain converts a persistence model to a domain entity.
func toProductDomain(productM *model.ProductModel) *entity.Product {
	return &entity.Product{
		ID:            productM.ID,
		SellerID:      productM.SellerID,
		Name:          productM.Name,
		Price:         productM.Price,
		StockQuantity: productM.StockQuantity,
		SalesCount:    productM.SalesCount,
		IsActive:      productM.IsActive,
		CreatedAt:     productM.CreatedAt,
		UpdatedAt:     productM.UpdatedAt,
	}
}
