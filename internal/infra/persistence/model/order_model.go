package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel mirrors the 'orders' table. Orders survive user deactivation;
// buyer and seller are plain UUID references, not cascading foreign keys.
type OrderModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderNumber string          `gorm:"type:varchar(20);unique;not null;index"`
	QRToken     string          `gorm:"column:qr_token;type:varchar(100);unique;not null;index"`
	BuyerID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_orders_buyer_created"`
	SellerID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_orders_seller_created"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status      string          `gorm:"type:varchar(10);not null;default:'PENDING';index"`
	Notes       string          `gorm:"type:text"`
	CreatedAt   time.Time       `gorm:"index:idx_orders_buyer_created,sort:desc;index:idx_orders_seller_created,sort:desc"`
	ConfirmedAt *time.Time
	CompletedAt *time.Time

	Items []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table. ProductID is nullable so
// the snapshot survives product deletion.
type OrderItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   *uuid.UUID      `gorm:"type:uuid"`
	ProductName string          `gorm:"type:varchar(255);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Quantity    int             `gorm:"not null"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
