// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"foodflex/internal/domain/entity"
	domainerrors "foodflex/internal/domain/errors"
	"foodflex/internal/domain/repository"
	"foodflex/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.OrderUsecase {
	return &orderService{
		txManager: txManager,
		logger:    logger,
	}
}

// VerifyQRToken resolves a scanned QR token to the caller's matching PENDING
// order. A token bound to another seller and an unknown token both come back
// as invalid, so tokens leak nothing about other sellers' orders.
func (srv *orderService) VerifyQRToken(ctx context.Context, principal *entity.Principal, qrToken string) (*entity.Order, error) {
	if principal == nil || !principal.CanSell() {
		return nil, domainerrors.ErrPermissionDenied.WrapMessage("only sellers can verify pickup codes")
	}
	if qrToken == "" {
		return nil, domainerrors.ErrInvalidQRToken
	}

	var order *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewOrderRepository().FindPendingByQRToken(ctx, qrToken, principal.ID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return domainerrors.ErrInvalidQRToken
			}

			return errors.Wrap(err, "failed to find order by QR token")
		}
		order = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to verify QR token")
	}

	return order, nil
}

// ConfirmOrder transitions a PENDING order to CONFIRMED after the assigned
// seller verified the buyer's QR code.
func (srv *orderService) ConfirmOrder(ctx context.Context, principal *entity.Principal, orderID uuid.UUID) (*entity.Order, error) {
	if principal == nil || !principal.CanSell() {
		return nil, domainerrors.ErrPermissionDenied.WrapMessage("only sellers can confirm orders")
	}

	srv.logger.Info("Confirming order", "orderID", orderID, "sellerID", principal.ID)

	var order *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.NewOrderRepository()

		found, err := orderRepo.FindByIDForUpdate(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return domainerrors.ErrOrderNotFound
			}

			return errors.Wrap(err, "failed to lock order")
		}

		if err := found.Confirm(principal.ID, time.Now()); err != nil {
			return err
		}

		if err := orderRepo.Update(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update order")
		}
		order = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to confirm order")
	}

	return order, nil
}

// CompleteOrder transitions a CONFIRMED order to COMPLETED and credits the
// seller's wallet. This is the only point at which earnings transfer, so a
// cancelled order never pays out.
func (srv *orderService) CompleteOrder(ctx context.Context, principal *entity.Principal, orderID uuid.UUID) (*entity.Order, error) {
	if principal == nil || !principal.CanSell() {
		return nil, domainerrors.ErrPermissionDenied.WrapMessage("only sellers can complete orders")
	}

	srv.logger.Info("Completing order", "orderID", orderID, "sellerID", principal.ID)

	var order *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.NewOrderRepository()
		sellerRepo := repoFactory.NewSellerProfileRepository()

		found, err := orderRepo.FindByIDForUpdate(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return domainerrors.ErrOrderNotFound
			}

			return errors.Wrap(err, "failed to lock order")
		}

		if found.SellerID != principal.ID {
			return domainerrors.ErrPermissionDenied.WrapMessage("only the assigned seller can complete this order")
		}

		if err := found.Complete(time.Now()); err != nil {
			return err
		}

		if err := orderRepo.Update(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update order")
		}

		// Pay the seller: wallet, lifetime earnings and fulfilment counter.
		profile, err := sellerRepo.FindByUserIDForUpdate(ctx, found.SellerID)
		if err != nil {
			if errors.Is(err, repository.ErrSellerProfileNotFound) {
				return domainerrors.ErrNotFound.WrapMessage("seller profile not found")
			}

			return errors.Wrap(err, "failed to lock seller profile")
		}
		profile.AddEarnings(found.TotalAmount)
		profile.IncrementOrderCount()
		if err := sellerRepo.Update(ctx, profile); err != nil {
			return errors.Wrap(err, "failed to update seller profile")
		}
		order = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to complete order")
	}

	srv.logger.Info("Order completed",
		"orderNumber", order.OrderNumber,
		"sellerID", order.SellerID,
		"amount", order.TotalAmount.StringFixed(2),
	)

	return order, nil
}

// CancelOrder cancels a PENDING or CONFIRMED order: reserved stock flows back
// to the products that still exist, the buyer's credit is refunded in full,
// and a compensating ADJUSTMENT entry lands in the transaction log.
func (srv *orderService) CancelOrder(ctx context.Context, principal *entity.Principal, orderID uuid.UUID, reason string) (*entity.Order, error) {
	if principal == nil {
		return nil, domainerrors.ErrPermissionDenied
	}

	srv.logger.Info("Cancelling order", "orderID", orderID, "actorID", principal.ID, "role", principal.Role)

	var order *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.NewOrderRepository()
		productRepo := repoFactory.NewProductRepository()
		creditRepo := repoFactory.NewCreditAccountRepository()
		historyRepo := repoFactory.NewCreditHistoryRepository()

		found, err := orderRepo.FindByIDForUpdate(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return domainerrors.ErrOrderNotFound
			}

			return errors.Wrap(err, "failed to lock order")
		}

		if !canActOnOrder(principal, found) {
			return domainerrors.ErrPermissionDenied.WrapMessage("not allowed to cancel this order")
		}

		if err := found.Cancel(reason); err != nil {
			return err
		}

		// Hand reserved stock back. Products deleted since checkout are
		// skipped; their snapshot rows keep the order intact.
		if err := restoreOrderStock(ctx, productRepo, found); err != nil {
			return err
		}

		// Refund the full amount to the buyer's credit account.
		account, err := creditRepo.FindByUserIDForUpdate(ctx, found.BuyerID)
		if err != nil {
			if errors.Is(err, repository.ErrCreditAccountNotFound) {
				return domainerrors.ErrCreditAccountNotFound
			}

			return errors.Wrap(err, "failed to lock credit account")
		}

		balanceBefore := account.CreditBalance
		if err := account.Refund(found.TotalAmount); err != nil {
			return err
		}
		if err := creditRepo.Update(ctx, account); err != nil {
			return errors.Wrap(err, "failed to update credit account")
		}

		if err := historyRepo.AppendTransaction(ctx, &entity.CreditTransaction{
			CreditAccountID: account.ID,
			Type:            entity.TransactionTypeAdjustment,
			Amount:          found.TotalAmount,
			BalanceBefore:   balanceBefore,
			BalanceAfter:    account.CreditBalance,
			Description:     fmt.Sprintf("Refund for cancelled order %s", found.OrderNumber),
			Reference:       found.OrderNumber,
		}); err != nil {
			return errors.Wrap(err, "failed to log refund transaction")
		}

		if err := orderRepo.Update(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update order")
		}
		order = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to cancel order")
	}

	return order, nil
}

// ListOrders retrieves the orders visible to the caller, newest first.
func (srv *orderService) ListOrders(ctx context.Context, principal *entity.Principal, status *entity.OrderStatus) ([]*entity.Order, error) {
	if principal == nil {
		return nil, domainerrors.ErrPermissionDenied
	}

	var orders []*entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.NewOrderRepository()

		var err error
		switch {
		case principal.IsAdmin():
			orders, err = orderRepo.ListAll(ctx, status)
		case principal.CanSell():
			orders, err = orderRepo.ListBySeller(ctx, principal.ID, status)
		default:
			orders, err = orderRepo.ListByBuyer(ctx, principal.ID, status)
		}

		return errors.Wrap(err, "failed to list orders")
	})
	if err != nil {
		return nil, err
	}

	return orders, nil
}

// GetOrder retrieves a single order. An order the caller may not see is
// reported as not found rather than forbidden.
func (srv *orderService) GetOrder(ctx context.Context, principal *entity.Principal, orderID uuid.UUID) (*entity.Order, error) {
	if principal == nil {
		return nil, domainerrors.ErrPermissionDenied
	}

	var order *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewOrderRepository().FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return domainerrors.ErrOrderNotFound
			}

			return errors.Wrap(err, "failed to find order")
		}

		if !canActOnOrder(principal, found) {
			return domainerrors.ErrOrderNotFound
		}
		order = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get order")
	}

	return order, nil
}

// canActOnOrder reports whether the principal is the buyer, the assigned
// seller, or an admin.
func canActOnOrder(principal *entity.Principal, order *entity.Order) bool {
	if principal.IsAdmin() {
		return true
	}

	return principal.ID == order.BuyerID || principal.ID == order.SellerID
}

// restoreOrderStock returns each snapshot's quantity to its live product.
func restoreOrderStock(ctx context.Context, productRepo repository.ProductRepository, order *entity.Order) error {
	productIDs := make([]uuid.UUID, 0, len(order.Items))
	for i := range order.Items {
		if order.Items[i].ProductID != nil {
			productIDs = append(productIDs, *order.Items[i].ProductID)
		}
	}
	if len(productIDs) == 0 {
		return nil
	}

	products, err := productRepo.FindByIDsForUpdate(ctx, productIDs)
	if err != nil {
		return errors.Wrap(err, "failed to lock products for stock restore")
	}
	productsByID := make(map[uuid.UUID]*entity.Product, len(products))
	for _, product := range products {
		productsByID[product.ID] = product
	}

	for i := range order.Items {
		item := &order.Items[i]
		if item.ProductID == nil {
			continue
		}
		product, ok := productsByID[*item.ProductID]
		if !ok {
			continue
		}

		product.RestoreStock(item.Quantity)
		if err := productRepo.UpdateStock(ctx, product); err != nil {
			return errors.Wrap(err, "failed to restore stock")
		}
	}

	return nil
}
