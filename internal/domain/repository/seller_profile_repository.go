package repository

import (
	"context"
	"errors"

	"foodflex/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrSellerProfileNotFound is a domain-specific error returned when a seller profile is not found.
var ErrSellerProfileNotFound = errors.New("seller profile not found")

// SellerProfileRepository defines the operations for seller earnings persistence.
type SellerProfileRepository interface {
	// FindByUserID retrieves a seller's profile.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.SellerProfile, error)

	// FindByUserIDForUpdate retrieves the profile with a row-level write lock.
	// Must be called inside a transaction; serializes concurrent payouts.
	FindByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*entity.SellerProfile, error)

	// Update persists the mutated wallet balance and statistics.
	Update(ctx context.Context, profile *entity.SellerProfile) error
}
