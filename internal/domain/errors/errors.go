package errors

import (
	"fmt"
	"net/http"

	"foodflex/internal/errors"

	"github.com/shopspring/decimal"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// Is matches any BaseError carrying the same business error code, so a copy
// produced by WithDetails still compares equal to its sentinel.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)

	return ok && t.errorCode == e.errorCode
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Checkout and order-related errors
	ErrEmptyCart = NewBaseError(
		http.StatusBadRequest,
		"EMPTY_CART",
		"購物車是空的",
		"",
	)

	ErrMixedSellerCart = NewBaseError(
		http.StatusBadRequest,
		"MIXED_SELLER_CART",
		"購物車包含多個賣家的商品，請分開結帳",
		"",
	)

	ErrOrderNotFound = NewBaseError(
		http.StatusNotFound,
		"ORDER_NOT_FOUND",
		"找不到該訂單",
		"",
	)

	ErrInvalidQRToken = NewBaseError(
		http.StatusNotFound,
		"INVALID_QR_TOKEN",
		"QR Code 無效或訂單不存在",
		"",
	)

	// Credit-related errors
	ErrCreditAccountNotFound = NewBaseError(
		http.StatusNotFound,
		"CREDIT_ACCOUNT_NOT_FOUND",
		"找不到信用帳戶",
		"",
	)

	ErrInvalidAmount = NewBaseError(
		http.StatusBadRequest,
		"INVALID_AMOUNT",
		"金額必須大於零",
		"",
	)

	ErrInvalidLimit = NewBaseError(
		http.StatusBadRequest,
		"INVALID_LIMIT",
		"新額度必須高於目前額度",
		"",
	)

	ErrRepaymentExceedsOutstanding = NewBaseError(
		http.StatusBadRequest,
		"REPAYMENT_EXCEEDS_OUTSTANDING",
		"還款金額超過未償餘額",
		"",
	)

	// Catalog-related errors
	ErrProductNotFound = NewBaseError(
		http.StatusNotFound,
		"PRODUCT_NOT_FOUND",
		"找不到該商品",
		"",
	)

	ErrCartItemNotFound = NewBaseError(
		http.StatusNotFound,
		"CART_ITEM_NOT_FOUND",
		"找不到該購物車項目",
		"",
	)

	// Authorization-related errors
	ErrPermissionDenied = NewBaseError(
		http.StatusForbidden,
		"PERMISSION_DENIED",
		"您沒有權限執行此操作",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"輸入資料驗證失敗",
		"",
	)

	// Transaction-related errors
	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"資料庫交易失敗",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"系統內部錯誤",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"找不到該資源",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"資源衝突",
		"",
	)
)

// InsufficientCreditError is returned when a buyer's available credit cannot
// cover a purchase. It carries the amounts so callers can render them.
type InsufficientCreditError struct {
	Available decimal.Decimal
	Required  decimal.Decimal
}

// NewInsufficientCreditError creates an insufficient-credit error with amounts.
func NewInsufficientCreditError(available, required decimal.Decimal) *InsufficientCreditError {
	return &InsufficientCreditError{Available: available, Required: required}
}

// Error implements the error interface
func (e *InsufficientCreditError) Error() string {
	return e.Message()
}

// HTTPCode returns the HTTP status code
func (e *InsufficientCreditError) HTTPCode() int {
	return http.StatusBadRequest
}

// ErrorCode returns the business error code
func (e *InsufficientCreditError) ErrorCode() string {
	return "INSUFFICIENT_CREDIT"
}

// Message returns the user-friendly error message
func (e *InsufficientCreditError) Message() string {
	return "信用額度不足"
}

// Details returns detailed error information
func (e *InsufficientCreditError) Details() string {
	return fmt.Sprintf("available: %s, required: %s", e.Available.StringFixed(2), e.Required.StringFixed(2))
}

// InsufficientStockError is returned when a product cannot cover the requested
// quantity at checkout time.
type InsufficientStockError struct {
	ProductName string
	Available   int
	Requested   int
}

// NewInsufficientStockError creates an insufficient-stock error naming the product.
func NewInsufficientStockError(productName string, available, requested int) *InsufficientStockError {
	return &InsufficientStockError{ProductName: productName, Available: available, Requested: requested}
}

// Error implements the error interface
func (e *InsufficientStockError) Error() string {
	return e.Message()
}

// HTTPCode returns the HTTP status code
func (e *InsufficientStockError) HTTPCode() int {
	return http.StatusBadRequest
}

// ErrorCode returns the business error code
func (e *InsufficientStockError) ErrorCode() string {
	return "INSUFFICIENT_STOCK"
}

// Message returns the user-friendly error message
func (e *InsufficientStockError) Message() string {
	return "商品庫存不足"
}

// Details returns detailed error information
func (e *InsufficientStockError) Details() string {
	return fmt.Sprintf("product: %s, available: %d, requested: %d", e.ProductName, e.Available, e.Requested)
}

// InvalidTransitionError is returned when an order state transition is not
// allowed from the order's current status.
type InvalidTransitionError struct {
	CurrentStatus string
	Attempted     string
}

// NewInvalidTransitionError creates an invalid-transition error.
func NewInvalidTransitionError(currentStatus, attempted string) *InvalidTransitionError {
	return &InvalidTransitionError{CurrentStatus: currentStatus, Attempted: attempted}
}

// Error implements the error interface
func (e *InvalidTransitionError) Error() string {
	return e.Message()
}

// HTTPCode returns the HTTP status code
func (e *InvalidTransitionError) HTTPCode() int {
	return http.StatusConflict
}

// ErrorCode returns the business error code
func (e *InvalidTransitionError) ErrorCode() string {
	return "INVALID_TRANSITION"
}

// Message returns the user-friendly error message
func (e *InvalidTransitionError) Message() string {
	return "訂單狀態不允許此操作"
}

// Details returns detailed error information
func (e *InvalidTransitionError) Details() string {
	return fmt.Sprintf("cannot %s order with status %s", e.Attempted, e.CurrentStatus)
}

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "資料庫執行失敗"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
