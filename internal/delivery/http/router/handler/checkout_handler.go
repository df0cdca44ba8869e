package handler

import (
	"log/slog"
	"net/http"

	"foodflex/internal/delivery/http/response"
	"foodflex/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CheckoutHandler holds dependencies for checkout handlers.
type CheckoutHandler struct {
	uc     usecase.CheckoutUsecase
	logger *slog.Logger
}

// NewCheckoutHandler is the constructor for CheckoutHandler, injected by Fx.
func NewCheckoutHandler(uc usecase.CheckoutUsecase, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		uc:     uc,
		logger: logger,
	}
}

// Checkout converts the caller's cart into an order.
func (h *CheckoutHandler) Checkout(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	output, err := h.uc.Checkout(c.Request().Context(), principal)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Order created successfully")
}
