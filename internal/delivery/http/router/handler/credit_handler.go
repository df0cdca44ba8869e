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
	"github.com/shopspring/decimal"
)

// CreditHandler holds dependencies for credit account handlers.
type CreditHandler struct {
	uc     usecase.CreditUsecase
	logger *slog.Logger
}

// NewCreditHandler is the constructor for CreditHandler, injected by Fx.
func NewCreditHandler(uc usecase.CreditUsecase, logger *slog.Logger) *CreditHandler {
	return &CreditHandler{
		uc:     uc,
		logger: logger,
	}
}

type repaymentRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
	Notes  string          `json:"notes"`
}

type limitIncreaseRequest struct {
	NewLimit decimal.Decimal `json:"new_limit" validate:"required"`
	Reason   string          `json:"reason"`
}

// GetMyAccount retrieves the caller's credit account.
func (h *CreditHandler) GetMyAccount(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	account, err := h.uc.GetMyAccount(c.Request().Context(), principal)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, account, "")
}

// ListTransactions retrieves the caller's credit transaction log.
func (h *CreditHandler) ListTransactions(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	txns, err := h.uc.ListTransactions(c.Request().Context(), principal)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, txns, "")
}

// ListRepayments retrieves the caller's repayment history.
func (h *CreditHandler) ListRepayments(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	records, err := h.uc.ListRepayments(c.Request().Context(), principal)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, records, "")
}

// ListAccounts retrieves all credit accounts, optionally filtered by loan status.
func (h *CreditHandler) ListAccounts(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	var status *entity.LoanStatus
	if raw := c.QueryParam("status"); raw != "" {
		parsed := entity.LoanStatus(raw)
		if !parsed.IsValid() {
			return response.BindingError(c, "INVALID_INPUT", "Invalid loan status filter")
		}
		status = &parsed
	}

	accounts, err := h.uc.ListAccounts(c.Request().Context(), principal, status)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, accounts, "")
}

// GetAccount retrieves a specific buyer's credit account.
func (h *CreditHandler) GetAccount(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user ID")
	}

	account, err := h.uc.GetAccount(c.Request().Context(), principal, userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, account, "")
}

// ProvisionAccount creates a credit account with the default limit for a
// newly registered buyer. Called by the registration workflow; idempotent.
func (h *CreditHandler) ProvisionAccount(c echo.Context) error {
	if _, err := principalFrom(c); err != nil {
		return err
	}

	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user ID")
	}

	account, err := h.uc.ProvisionAccount(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, account, "Credit account provisioned")
}

// ProcessRepayment records an offline loan repayment.
func (h *CreditHandler) ProcessRepayment(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user ID")
	}

	var req repaymentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid repayment input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	account, err := h.uc.ProcessRepayment(c.Request().Context(), principal, &usecase.ProcessRepaymentInput{
		UserID: userID,
		Amount: req.Amount,
		Notes:  req.Notes,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, account, "Repayment processed")
}

// IncreaseLimit raises a buyer's credit limit.
func (h *CreditHandler) IncreaseLimit(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user ID")
	}

	var req limitIncreaseRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid limit increase input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	account, err := h.uc.IncreaseCreditLimit(c.Request().Context(), principal, &usecase.IncreaseCreditLimitInput{
		UserID:   userID,
		NewLimit: req.NewLimit,
		Reason:   req.Reason,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, account, "Credit limit increased")
}
