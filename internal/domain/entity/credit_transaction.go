// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType classifies a credit-affecting event.
type TransactionType string

const (
	// TransactionTypePurchase is a checkout drawing down the balance.
	TransactionTypePurchase TransactionType = "PURCHASE"
	// TransactionTypeRepayment is an admin-processed loan repayment.
	TransactionTypeRepayment TransactionType = "REPAYMENT"
	// TransactionTypeLimitIncrease is an admin-approved limit raise.
	TransactionTypeLimitIncrease TransactionType = "LIMIT_INCREASE"
	// TransactionTypeAdjustment is a compensating entry, e.g. a cancellation refund.
	TransactionTypeAdjustment TransactionType = "ADJUSTMENT"
)

// String returns the string representation of the TransactionType.
func (t TransactionType) String() string {
	return string(t)
}

// CreditTransaction is one append-only entry in the audit log of a credit
// account. Entries are never mutated or deleted; balance snapshots are
// captured by the orchestrating use case at write time.
type CreditTransaction struct {
	ID              uuid.UUID       // The unique identifier for the log entry.
	CreditAccountID uuid.UUID       // The account this entry belongs to.
	Type            TransactionType // PURCHASE, REPAYMENT, LIMIT_INCREASE or ADJUSTMENT.
	Amount          decimal.Decimal // Magnitude of the event.
	BalanceBefore   decimal.Decimal // Account balance before the event.
	BalanceAfter    decimal.Decimal // Account balance after the event.
	Description     string          // Human-readable summary.
	Reference       string          // Correlates to an order number or repayment id.
	CreatedAt       time.Time       // Timestamp of the event.
}

// RepaymentRecord tracks one loan repayment processed by an administrator.
type RepaymentRecord struct {
	ID              uuid.UUID       // The unique identifier for the record.
	CreditAccountID uuid.UUID       // The account that was repaid.
	Amount          decimal.Decimal // Repayment amount, strictly positive.
	RepaidBy        uuid.UUID       // The admin who processed the repayment.
	Notes           string          // Optional free-form notes.
	CreatedAt       time.Time       // Timestamp of the repayment.
}

// CreditLimitChange tracks one admin-approved credit limit increase.
type CreditLimitChange struct {
	ID              uuid.UUID       // The unique identifier for the record.
	CreditAccountID uuid.UUID       // The account whose limit changed.
	OldLimit        decimal.Decimal // Limit before the change.
	NewLimit        decimal.Decimal // Limit after the change.
	IncreasedBy     uuid.UUID       // The admin who approved the increase.
	Reason          string          // Optional justification.
	CreatedAt       time.Time       // Timestamp of the change.
}
