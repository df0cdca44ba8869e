package handler

import (
	"log/slog"
	"net/http"

	"foodflex/internal/delivery/http/response"
	"foodflex/internal/domain/entity"
	"foodflex/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler holds dependencies for order lifecycle handlers.
type OrderHandler struct {
	uc     usecase.OrderUsecase
	logger *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(uc usecase.OrderUsecase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		logger: logger,
	}
}

type verifyQRRequest struct {
	QRToken string `json:"qr_token" validate:"required"`
}

type cancelOrderRequest struct {
	Reason string `json:"reason"`
}

// VerifyQR resolves a scanned QR token to the seller's matching PENDING order.
func (h *OrderHandler) VerifyQR(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	var req verifyQRRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid QR verification input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	order, err := h.uc.VerifyQRToken(c.Request().Context(), principal, req.QRToken)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order verified")
}

// Confirm transitions a PENDING order to CONFIRMED.
func (h *OrderHandler) Confirm(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order ID")
	}

	order, err := h.uc.ConfirmOrder(c.Request().Context(), principal, orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order confirmed")
}

// Complete transitions a CONFIRMED order to COMPLETED and pays the seller.
func (h *OrderHandler) Complete(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order ID")
	}

	order, err := h.uc.CompleteOrder(c.Request().Context(), principal, orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order completed")
}

// Cancel cancels a PENDING or CONFIRMED order.
func (h *OrderHandler) Cancel(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order ID")
	}

	var req cancelOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cancellation input")
	}

	order, err := h.uc.CancelOrder(c.Request().Context(), principal, orderID, req.Reason)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order cancelled")
}

// List retrieves the orders visible to the caller.
func (h *OrderHandler) List(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	var status *entity.OrderStatus
	if raw := c.QueryParam("status"); raw != "" {
		parsed := entity.OrderStatus(raw)
		if !parsed.IsValid() {
			return response.BindingError(c, "INVALID_INPUT", "Invalid order status filter")
		}
		status = &parsed
	}

	orders, err := h.uc.ListOrders(c.Request().Context(), principal, status)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "")
}

// Get retrieves a single order.
func (h *OrderHandler) Get(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order ID")
	}

	order, err := h.uc.GetOrder(c.Request().Context(), principal, orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "")
}
