// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	"foodflex/internal/domain/entity"
	domainerrors "foodflex/internal/domain/errors"
	"foodflex/internal/domain/repository"
	"foodflex/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// cartService implements the CartUsecase interface. Cart mutations are
// advisory with respect to stock: availability is checked against the live
// quantity so buyers get early feedback, but nothing is reserved until
// checkout.
type cartService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.CartUsecase {
	return &cartService{
		txManager: txManager,
		logger:    logger,
	}
}

// GetCart retrieves the caller's cart, creating an empty one if missing.
func (srv *cartService) GetCart(ctx context.Context, principal *entity.Principal) (*entity.Cart, error) {
	if principal == nil || !principal.CanPurchase() {
		return nil, domainerrors.ErrPermissionDenied.WrapMessage("only buyers have carts")
	}

	var cart *entity.Cart

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewCartRepository().GetOrCreate(ctx, principal.ID)
		if err != nil {
			return errors.Wrap(err, "failed to get cart")
		}
		cart = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return cart, nil
}

// AddItem adds a product line to the cart, merging quantities when the same
// product is already present.
func (srv *cartService) AddItem(ctx context.Context, principal *entity.Principal, input *usecase.AddCartItemInput) (*entity.Cart, error) {
	if principal == nil || !principal.CanPurchase() {
		return nil, domainerrors.ErrPermissionDenied.WrapMessage("only buyers have carts")
	}
	if input.Quantity < 1 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("quantity must be at least 1")
	}

	srv.logger.Debug("Adding cart item", "buyerID", principal.ID, "productID", input.ProductID, "quantity", input.Quantity)

	var cart *entity.Cart

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.NewCartRepository()
		productRepo := repoFactory.NewProductRepository()

		product, err := productRepo.FindByID(ctx, input.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound
			}

			return errors.Wrap(err, "failed to find product")
		}
		if !product.IsActive {
			return domainerrors.ErrValidationFailed.WrapMessage("product is not available")
		}

		current, err := cartRepo.GetOrCreate(ctx, principal.ID)
		if err != nil {
			return errors.Wrap(err, "failed to get cart")
		}

		// Merge with an existing line for the same product.
		quantity := input.Quantity
		for i := range current.Items {
			if current.Items[i].ProductID == input.ProductID {
				quantity += current.Items[i].Quantity

				break
			}
		}

		if quantity > product.StockQuantity {
			return domainerrors.NewInsufficientStockError(product.Name, product.StockQuantity, quantity)
		}

		if err := cartRepo.UpsertItem(ctx, &entity.CartItem{
			CartID:    current.ID,
			ProductID: input.ProductID,
			Quantity:  quantity,
		}); err != nil {
			// The product can vanish between the availability check and the
			// insert; the repository reports the broken reference.
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound
			}

			return errors.Wrap(err, "failed to upsert cart item")
		}

		cart, err = cartRepo.FindByUserID(ctx, principal.ID)

		return errors.Wrap(err, "failed to reload cart")
	})
	if err != nil {
		return nil, err
	}

	return cart, nil
}

// UpdateItem replaces the quantity of an existing cart line.
func (srv *cartService) UpdateItem(ctx context.Context, principal *entity.Principal, itemID uuid.UUID, input *usecase.UpdateCartItemInput) (*entity.Cart, error) {
	if principal == nil || !principal.CanPurchase() {
		return nil, domainerrors.ErrPermissionDenied.WrapMessage("only buyers have carts")
	}
	if input.Quantity < 1 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("quantity must be at least 1")
	}

	var cart *entity.Cart

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.NewCartRepository()

		item, err := cartRepo.FindItemByID(ctx, itemID, principal.ID)
		if err != nil {
			if errors.Is(err, repository.ErrCartItemNotFound) {
				return domainerrors.ErrCartItemNotFound
			}

			return errors.Wrap(err, "failed to find cart item")
		}

		if item.Product != nil && input.Quantity > item.Product.StockQuantity {
			return domainerrors.NewInsufficientStockError(item.Product.Name, item.Product.StockQuantity, input.Quantity)
		}

		item.Quantity = input.Quantity
		if err := cartRepo.UpsertItem(ctx, item); err != nil {
			return errors.Wrap(err, "failed to update cart item")
		}

		cart, err = cartRepo.FindByUserID(ctx, principal.ID)

		return errors.Wrap(err, "failed to reload cart")
	})
	if err != nil {
		return nil, err
	}

	return cart, nil
}

// RemoveItem deletes a single cart line.
func (srv *cartService) RemoveItem(ctx context.Context, principal *entity.Principal, itemID uuid.UUID) (*entity.Cart, error) {
	if principal == nil || !principal.CanPurchase() {
		return nil, domainerrors.ErrPermissionDenied.WrapMessage("only buyers have carts")
	}

	var cart *entity.Cart

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.NewCartRepository()

		item, err := cartRepo.FindItemByID(ctx, itemID, principal.ID)
		if err != nil {
			if errors.Is(err, repository.ErrCartItemNotFound) {
				return domainerrors.ErrCartItemNotFound
			}

			return errors.Wrap(err, "failed to find cart item")
		}

		if err := cartRepo.RemoveItem(ctx, item.ID); err != nil {
			return errors.Wrap(err, "failed to remove cart item")
		}

		cart, err = cartRepo.FindByUserID(ctx, principal.ID)

		return errors.Wrap(err, "failed to reload cart")
	})
	if err != nil {
		return nil, err
	}

	return cart, nil
}

// Clear deletes every line in the caller's cart. Clearing an absent cart is a no-op.
func (srv *cartService) Clear(ctx context.Context, principal *entity.Principal) error {
	if principal == nil || !principal.CanPurchase() {
		return domainerrors.ErrPermissionDenied.WrapMessage("only buyers have carts")
	}

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.NewCartRepository()

		cart, err := cartRepo.FindByUserID(ctx, principal.ID)
		if err != nil {
			if errors.Is(err, repository.ErrCartNotFound) {
				return nil
			}

			return errors.Wrap(err, "failed to find cart")
		}

		return errors.Wrap(cartRepo.Clear(ctx, cart.ID), "failed to clear cart")
	})
}
