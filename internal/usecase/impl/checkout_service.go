// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	"foodflex/config"
	"foodflex/internal/domain/entity"
	domainerrors "foodflex/internal/domain/errors"
	"foodflex/internal/domain/repository"
	"foodflex/internal/domain/service"
	"foodflex/internal/usecase"
	"foodflex/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	orderNumberPrefix       = "FF"
	orderNumberRandomLength = 12
	qrTokenLength           = 64
	defaultRefRetries       = 5
)

// checkoutService implements the CheckoutUsecase interface.
type checkoutService struct {
	txManager  repository.TransactionManager
	qrService  service.QRCodeService
	refRetries int
	logger     *slog.Logger
}

// NewCheckoutService is the constructor for checkoutService.
func NewCheckoutService(
	txManager repository.TransactionManager,
	qrService service.QRCodeService,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.CheckoutUsecase {
	retries := defaultRefRetries
	if cfg != nil && cfg.Credit != nil && cfg.Credit.RefGenerationRetries > 0 {
		retries = cfg.Credit.RefGenerationRetries
	}

	return &checkoutService{
		txManager:  txManager,
		qrService:  qrService,
		refRetries: retries,
		logger:     logger,
	}
}

// Checkout converts the buyer's cart into a PENDING order in a single
// transaction: stock is reserved against freshly locked rows, credit is
// deducted, the purchase is logged, and the cart is cleared. Any failure
// rolls the whole conversion back.
func (srv *checkoutService) Checkout(ctx context.Context, principal *entity.Principal) (*usecase.CheckoutOutput, error) {
	if principal == nil || !principal.CanPurchase() {
		return nil, domainerrors.ErrPermissionDenied.WrapMessage("only buyers can checkout")
	}

	srv.logger.Info("Processing checkout", "buyerID", principal.ID)

	var output *usecase.CheckoutOutput

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.NewCartRepository()
		productRepo := repoFactory.NewProductRepository()
		creditRepo := repoFactory.NewCreditAccountRepository()
		historyRepo := repoFactory.NewCreditHistoryRepository()
		orderRepo := repoFactory.NewOrderRepository()

		// 1. Load the cart; an absent cart is the same as an empty one.
		cart, err := cartRepo.FindByUserID(ctx, principal.ID)
		if err != nil {
			if errors.Is(err, repository.ErrCartNotFound) {
				return domainerrors.ErrEmptyCart
			}

			return errors.Wrap(err, "failed to load cart")
		}
		if cart.IsEmpty() {
			return domainerrors.ErrEmptyCart
		}

		// 2. An order binds to exactly one seller.
		sellerID, ok := cart.SingleSellerID()
		if !ok {
			return domainerrors.ErrMixedSellerCart
		}

		// 3. Lock all products in one query (ordered by ID, so concurrent
		// checkouts acquire row locks in the same sequence) and compute the
		// total and item snapshots from the freshest prices.
		productIDs := make([]uuid.UUID, 0, len(cart.Items))
		for i := range cart.Items {
			productIDs = append(productIDs, cart.Items[i].ProductID)
		}

		products, err := productRepo.FindByIDsForUpdate(ctx, productIDs)
		if err != nil {
			return errors.Wrap(err, "failed to lock products")
		}
		productsByID := make(map[uuid.UUID]*entity.Product, len(products))
		for _, product := range products {
			productsByID[product.ID] = product
		}

		total := decimal.Zero
		items := make([]entity.OrderItem, 0, len(cart.Items))
		for i := range cart.Items {
			line := &cart.Items[i]
			product, ok := productsByID[line.ProductID]
			if !ok {
				return domainerrors.ErrProductNotFound.WrapMessage("cart references a deleted product")
			}

			subtotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
			total = total.Add(subtotal)

			productID := product.ID
			items = append(items, entity.OrderItem{
				ProductID:   &productID,
				ProductName: product.Name,
				UnitPrice:   product.Price,
				Quantity:    line.Quantity,
				Subtotal:    subtotal,
			})
		}

		// 4. Lock the credit account and authorize the purchase before any
		// stock moves, so an unfundable checkout reports the credit shortfall.
		account, err := creditRepo.FindByUserIDForUpdate(ctx, principal.ID)
		if err != nil {
			if errors.Is(err, repository.ErrCreditAccountNotFound) {
				return domainerrors.ErrCreditAccountNotFound
			}

			return errors.Wrap(err, "failed to lock credit account")
		}

		balanceBefore := account.CreditBalance
		if err := account.Deduct(total); err != nil {
			return err
		}

		// 5. Reserve stock line by line against the locked rows.
		for i := range cart.Items {
			line := &cart.Items[i]
			product := productsByID[line.ProductID]

			if !product.ReduceStock(line.Quantity) {
				return domainerrors.NewInsufficientStockError(product.Name, product.StockQuantity, line.Quantity)
			}
			if err := productRepo.UpdateStock(ctx, product); err != nil {
				return errors.Wrap(err, "failed to reserve stock")
			}
		}

		// 6. Create the order with unique-reference retry. A collision on the
		// order number or QR token regenerates both and tries again.
		order := &entity.Order{
			BuyerID:     principal.ID,
			SellerID:    sellerID,
			TotalAmount: total,
			Status:      entity.OrderStatusPending,
			Items:       items,
		}
		if err := srv.createWithUniqueRefs(ctx, orderRepo, order); err != nil {
			return err
		}

		// 7. Persist the drawn-down balance and append the audit log entry.
		if err := creditRepo.Update(ctx, account); err != nil {
			return errors.Wrap(err, "failed to update credit account")
		}
		if err := historyRepo.AppendTransaction(ctx, &entity.CreditTransaction{
			CreditAccountID: account.ID,
			Type:            entity.TransactionTypePurchase,
			Amount:          total,
			BalanceBefore:   balanceBefore,
			BalanceAfter:    account.CreditBalance,
			Description:     fmt.Sprintf("Purchase of %d item(s) from order %s", len(items), order.OrderNumber),
			Reference:       order.OrderNumber,
		}); err != nil {
			return errors.Wrap(err, "failed to log purchase transaction")
		}

		// 8. Clear the cart.
		if err := cartRepo.Clear(ctx, cart.ID); err != nil {
			return errors.Wrap(err, "failed to clear cart")
		}

		// 9. Render the pickup QR code for the response.
		payload := srv.qrService.BuildOrderPayload(order.OrderNumber, order.QRToken)
		png, err := srv.qrService.GenerateOrderQR(order.OrderNumber, order.QRToken)
		if err != nil {
			return errors.Wrap(err, "failed to generate order QR code")
		}

		output = &usecase.CheckoutOutput{
			Order:        order,
			QRPayload:    payload,
			QRCodeBase64: base64.StdEncoding.EncodeToString(png),
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "checkout failed")
	}

	srv.logger.Info("Checkout completed",
		"buyerID", principal.ID,
		"orderNumber", output.Order.OrderNumber,
		"total", output.Order.TotalAmount.StringFixed(2),
	)

	return output, nil
}

// createWithUniqueRefs persists the order, regenerating the order number and
// QR token on a unique-index collision, up to the configured attempt budget.
func (srv *checkoutService) createWithUniqueRefs(ctx context.Context, orderRepo repository.OrderRepository, order *entity.Order) error {
	var lastErr error
	for attempt := 0; attempt < srv.refRetries; attempt++ {
		number, err := util.RandomString(orderNumberRandomLength, util.OrderNumberCharset)
		if err != nil {
			return errors.Wrap(err, "failed to generate order number")
		}
		token, err := util.RandomString(qrTokenLength, util.TokenCharset)
		if err != nil {
			return errors.Wrap(err, "failed to generate QR token")
		}

		order.OrderNumber = orderNumberPrefix + number
		order.QRToken = token

		lastErr = orderRepo.Create(ctx, order)
		if lastErr == nil {
			return nil
		}
		if !errors.Is(lastErr, repository.ErrDuplicateOrderRef) {
			return errors.Wrap(lastErr, "failed to create order")
		}

		srv.logger.Warn("Order reference collision, regenerating", "attempt", attempt+1)
	}

	return errors.Wrap(lastErr, "exhausted order reference generation attempts")
}
