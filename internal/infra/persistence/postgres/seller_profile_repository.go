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

// sellerProfileRepository implements the repository.SellerProfileRepository interface.
type sellerProfileRepository struct {
	db *gorm.DB
}

// NewSellerProfileRepository is the constructor for sellerProfileRepository.
func NewSellerProfileRepository(db *gorm.DB) repository.SellerProfileRepository {
	return &sellerProfileRepository{
		db: db,
	}
}

// FindByUserID retrieves a seller's profile.
func (repo *sellerProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.SellerProfile, error) {
	var profileM model.SellerProfileModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profileM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSellerProfileNotFound
		}

		return nil, errors.Wrap(err, "failed to find seller profile by user ID")
	}

	return toSellerProfileDomain(&profileM), nil
}

// FindByUserIDForUpdate retrieves the profile with a SELECT ... FOR UPDATE
// row lock. Concurrent completions paying the same seller queue behind it.
func (repo *sellerProfileRepository) FindByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*entity.SellerProfile, error) {
	var profileM model.SellerProfileModel

	if err := repo.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&profileM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSellerProfileNotFound
		}

		return nil, errors.Wrap(err, "failed to lock seller profile by user ID")
	}

	return toSellerProfileDomain(&profileM), nil
}

// Update persists the mutated wallet balance and statistics.
func (repo *sellerProfileRepository) Update(ctx context.Context, profile *entity.SellerProfile) error {
	result := repo.db.WithContext(ctx).
		Model(&model.SellerProfileModel{}).
		Where("user_id = ?", profile.UserID).
		Updates(map[string]any{
			"wallet_balance":         profile.WalletBalance,
			"total_earnings":         profile.TotalEarnings,
			"total_orders_fulfilled": profile.TotalOrdersFulfilled,
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update seller profile")
	}

	if result.RowsAffected == 0 {
		return repository.ErrSellerProfileNotFound
	}

	return nil
}

// toSellerProfileDomain converts a persistence model to a domain entity.
func toSellerProfileDomain(profileM *model.SellerProfileModel) *entity.SellerProfile {
	return &entity.SellerProfile{
		UserID:               profileM.UserID,
		WalletBalance:        profileM.WalletBalance,
		TotalEarnings:        profileM.TotalEarnings,
		TotalOrdersFulfilled: profileM.TotalOrdersFulfilled,
		CreatedAt:            profileM.CreatedAt,
		UpdatedAt:            profileM.UpdatedAt,
	}
}
