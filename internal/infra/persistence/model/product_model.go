package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductModel mirrors the slice of the 'products' table this service needs.
// Catalog management owns the rest of the columns.
type ProductModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	SellerID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name          string          `gorm:"type:varchar(255);not null"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	StockQuantity int             `gorm:"not null;default:0"`
	SalesCount    int             `gorm:"not null;default:0"`
	IsActive      bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}

// SellerProfileModel mirrors the 'seller_profiles' table earnings columns.
type SellerProfileModel struct {
	UserID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	WalletBalance        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalEarnings        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalOrdersFulfilled int             `gorm:"not null;default:0"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// TableName explicitly sets the table name for GORM.
func (SellerProfileModel) TableName() string {
	return "seller_profiles"
}
