// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	domainerrors "foodflex/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultCreditLimit is the store-credit limit granted to a newly provisioned
// buyer account, in minor currency units (₦50,000.00).
var DefaultCreditLimit = decimal.NewFromInt(50000)

// LoanStatus represents the lifecycle state of a buyer's credit account.
type LoanStatus string

const (
	// LoanStatusActive means the account can be used for purchases.
	LoanStatusActive LoanStatus = "ACTIVE"
	// LoanStatusExhausted means the balance has reached zero.
	LoanStatusExhausted LoanStatus = "EXHAUSTED"
	// LoanStatusRepaid means the outstanding loan has been fully cleared.
	LoanStatusRepaid LoanStatus = "REPAID"
	// LoanStatusSuspended means an administrator disabled the account.
	LoanStatusSuspended LoanStatus = "SUSPENDED"
)

// String returns the string representation of the LoanStatus.
func (s LoanStatus) String() string {
	return string(s)
}

// IsValid checks if the LoanStatus is a valid value.
func (s LoanStatus) IsValid() bool {
	switch s {
	case LoanStatusActive, LoanStatusExhausted, LoanStatusRepaid, LoanStatusSuspended:
		return true
	default:
		return false
	}
}

// CreditAccount is a buyer's internal spending-limit ledger. It is not a real
// payment instrument: purchases draw the balance down and admin-processed
// repayments restore it. Each buyer owns exactly one account.
//
// Invariant: 0 <= CreditBalance <= CreditLimit. TotalCreditUsed accumulates
// per purchase and resets to zero on full repayment, so it is not derivable
// from balance and limit alone.
type CreditAccount struct {
	ID                uuid.UUID       // The unique identifier for the credit account.
	UserID            uuid.UUID       // The buyer who owns this account (1:1).
	CreditLimit       decimal.Decimal // Maximum spendable credit.
	CreditBalance     decimal.Decimal // Currently available credit.
	TotalCreditUsed   decimal.Decimal // Credit consumed since the last full repayment.
	LoanStatus        LoanStatus      // ACTIVE, EXHAUSTED, REPAID or SUSPENDED.
	TotalRepaid       decimal.Decimal // Cumulative repayments, monotonic non-decreasing.
	LastRepaymentDate *time.Time      // Timestamp of the most recent repayment, nil if never repaid.
	CreatedAt         time.Time       // Timestamp of account creation.
	UpdatedAt         time.Time       // Timestamp of the last modification.
}

// NewCreditAccount provisions an account with the default limit and a full
// balance. Called by the registration workflow, never implicitly.
func NewCreditAccount(userID uuid.UUID) *CreditAccount {
	return &CreditAccount{
		ID:              uuid.New(),
		UserID:          userID,
		CreditLimit:     DefaultCreditLimit,
		CreditBalance:   DefaultCreditLimit,
		TotalCreditUsed: decimal.Zero,
		LoanStatus:      LoanStatusActive,
		TotalRepaid:     decimal.Zero,
	}
}

// AvailableCredit returns the spendable balance.
func (a *CreditAccount) AvailableCredit() decimal.Decimal {
	return a.CreditBalance
}

// OutstandingBalance returns the amount owed: limit minus balance.
func (a *CreditAccount) OutstandingBalance() decimal.Decimal {
	return a.CreditLimit.Sub(a.CreditBalance)
}

// CanPurchase reports whether the account authorizes a purchase of amount.
// Pure check, no mutation. Requires ACTIVE status and sufficient balance;
// an amount equal to the balance is authorized, one cent over is not.
func (a *CreditAccount) CanPurchase(amount decimal.Decimal) bool {
	return a.LoanStatus == LoanStatusActive && a.CreditBalance.GreaterThanOrEqual(amount)
}

// Deduct draws amount from the balance after a purchase. The caller is
// responsible for appending the matching PURCHASE transaction log entry so
// the balance snapshots stay accurate.
func (a *CreditAccount) Deduct(amount decimal.Decimal) error {
	if !a.CanPurchase(amount) {
		return domainerrors.NewInsufficientCreditError(a.CreditBalance, amount)
	}

	a.CreditBalance = a.CreditBalance.Sub(amount)
	a.TotalCreditUsed = a.TotalCreditUsed.Add(amount)

	if a.CreditBalance.LessThanOrEqual(decimal.Zero) {
		a.LoanStatus = LoanStatusExhausted
	}

	return nil
}

// Refund returns amount to the balance when an order is cancelled. An
// exhausted account becomes active again once the balance is positive.
func (a *CreditAccount) Refund(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return domainerrors.ErrInvalidAmount
	}

	a.CreditBalance = a.CreditBalance.Add(amount)
	a.TotalCreditUsed = a.TotalCreditUsed.Sub(amount)
	if a.TotalCreditUsed.LessThan(decimal.Zero) {
		a.TotalCreditUsed = decimal.Zero
	}

	if a.LoanStatus == LoanStatusExhausted && a.CreditBalance.GreaterThan(decimal.Zero) {
		a.LoanStatus = LoanStatusActive
	}

	return nil
}

// Repay records an admin-processed loan repayment. Any repayment that leaves
// the balance positive makes an exhausted account active again; when the
// balance reaches the limit it is clamped there and the running usage counter
// resets.
func (a *CreditAccount) Repay(amount decimal.Decimal, now time.Time) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return domainerrors.ErrInvalidAmount
	}

	a.TotalRepaid = a.TotalRepaid.Add(amount)
	a.CreditBalance = a.CreditBalance.Add(amount)
	a.LastRepaymentDate = &now

	if a.CreditBalance.GreaterThanOrEqual(a.CreditLimit) {
		a.CreditBalance = a.CreditLimit
		a.TotalCreditUsed = decimal.Zero
		a.LoanStatus = LoanStatusActive
	} else if a.LoanStatus == LoanStatusExhausted && a.CreditBalance.GreaterThan(decimal.Zero) {
		a.LoanStatus = LoanStatusActive
	}

	return nil
}

// IncreaseLimit raises the credit limit to newLimit and adds the delta to the
// available balance. The new limit must be strictly greater than the current one.
func (a *CreditAccount) IncreaseLimit(newLimit decimal.Decimal) error {
	if newLimit.LessThanOrEqual(a.CreditLimit) {
		return domainerrors.ErrInvalidLimit
	}

	delta := newLimit.Sub(a.CreditLimit)
	a.CreditLimit = newLimit
	a.CreditBalance = a.CreditBalance.Add(delta)
	a.LoanStatus = LoanStatusActive

	return nil
}
