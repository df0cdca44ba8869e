package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreditAccountModel mirrors the 'credit_accounts' table. PostgreSQL generates
// UUIDs via uuid_generate_v7(). One row per buyer.
type CreditAccountModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID            uuid.UUID       `gorm:"type:uuid;unique;not null;index"`
	CreditLimit       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreditBalance     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalCreditUsed   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	LoanStatus        string          `gorm:"type:varchar(10);not null;default:'ACTIVE';index"`
	TotalRepaid       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	LastRepaymentDate *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Transactions []CreditTransactionModel `gorm:"foreignKey:CreditAccountID"`
	Repayments   []RepaymentRecordModel   `gorm:"foreignKey:CreditAccountID"`
	LimitChanges []CreditLimitChangeModel `gorm:"foreignKey:CreditAccountID"`
}

// TableName explicitly sets the table name for GORM.
func (CreditAccountModel) TableName() string {
	return "credit_accounts"
}

// CreditTransactionModel mirrors the 'credit_transactions' table. Append-only.
type CreditTransactionModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	CreditAccountID uuid.UUID       `gorm:"type:uuid;not null;index:idx_credit_transactions_account_created"`
	TransactionType string          `gorm:"type:varchar(20);not null;index"`
	Amount          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	BalanceBefore   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	BalanceAfter    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Description     string          `gorm:"type:text"`
	Reference       string          `gorm:"type:varchar(100)"`
	CreatedAt       time.Time       `gorm:"index:idx_credit_transactions_account_created,sort:desc"`
}

// TableName explicitly sets the table name for GORM.
func (CreditTransactionModel) TableName() string {
	return "credit_transactions"
}

// RepaymentRecordModel mirrors the 'repayment_history' table.
type RepaymentRecordModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	CreditAccountID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	RepaidBy        uuid.UUID       `gorm:"type:uuid;not null"`
	Notes           string          `gorm:"type:text"`
	CreatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (RepaymentRecordModel) TableName() string {
	return "repayment_history"
}

// CreditLimitChangeModel mirrors the 'credit_limit_history' table.
type CreditLimitChangeModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	CreditAccountID uuid.UUID       `gorm:"type:uuid;not null;index"`
	OldLimit        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	NewLimit        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	IncreasedBy     uuid.UUID       `gorm:"type:uuid;not null"`
	Reason          string          `gorm:"type:text"`
	CreatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (CreditLimitChangeModel) TableName() string {
	return "credit_limit_history"
}
