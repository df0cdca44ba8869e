package handler

import (
	"log/slog"
	"net/http"

	"foodflex/internal/delivery/http/response"
	"foodflex/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CartHandler holds dependencies for cart handlers.
type CartHandler struct {
	uc     usecase.CartUsecase
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler, injected by Fx.
func NewCartHandler(uc usecase.CartUsecase, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		uc:     uc,
		logger: logger,
	}
}

type addCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// Get retrieves the caller's cart.
func (h *CartHandler) Get(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	cart, err := h.uc.GetCart(c.Request().Context(), principal)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart, "")
}

// AddItem adds a product line to the cart.
func (h *CartHandler) AddItem(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	var req addCartItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart item input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	cart, err := h.uc.AddItem(c.Request().Context(), principal, &usecase.AddCartItemInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart, "Item added to cart")
}

// UpdateItem replaces the quantity of a cart line.
func (h *CartHandler) UpdateItem(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart item ID")
	}

	var req updateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart item input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	cart, err := h.uc.UpdateItem(c.Request().Context(), principal, itemID, &usecase.UpdateCartItemInput{
		Quantity: req.Quantity,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart, "Cart item updated")
}

// RemoveItem deletes a cart line.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart item ID")
	}

	cart, err := h.uc.RemoveItem(c.Request().Context(), principal, itemID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart, "Cart item removed")
}

// Clear deletes every line in the caller's cart.
func (h *CartHandler) Clear(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	if err := h.uc.Clear(c.Request().Context(), principal); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Cart cleared")
}
