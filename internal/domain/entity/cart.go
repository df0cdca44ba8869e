// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is one product line in a buyer's cart. A cart holds at most one
// line per product; adding the same product again merges quantities.
type CartItem struct {
	ID        uuid.UUID // The unique identifier for the cart item.
	CartID    uuid.UUID // The cart this item belongs to.
	ProductID uuid.UUID // The product being purchased.
	Product   *Product  // The live product, loaded for price and stock checks.
	Quantity  int       // Requested quantity, at least 1.
	CreatedAt time.Time // Timestamp of when the line was added.
	UpdatedAt time.Time // Timestamp of the last quantity change.
}

// TotalPrice returns the live price of this line (price * quantity).
func (i *CartItem) TotalPrice() decimal.Decimal {
	if i.Product == nil {
		return decimal.Zero
	}

	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is a buyer's staging area before checkout. Cart mutations never touch
// stock; reservation happens atomically at checkout.
type Cart struct {
	ID        uuid.UUID  // The unique identifier for the cart.
	UserID    uuid.UUID  // The buyer who owns this cart (1:1).
	Items     []CartItem // Product lines, unique per product.
	CreatedAt time.Time  // Timestamp of cart creation.
	UpdatedAt time.Time  // Timestamp of the last modification.
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// TotalItems returns the total unit count across all lines.
func (c *Cart) TotalItems() int {
	total := 0
	for i := range c.Items {
		total += c.Items[i].Quantity
	}

	return total
}

// Subtotal returns the live sum of all line prices.
func (c *Cart) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for i := range c.Items {
		subtotal = subtotal.Add(c.Items[i].TotalPrice())
	}

	return subtotal
}

// SingleSellerID returns the seller shared by every line, or false when the
// cart is empty, a product is missing, or lines span multiple sellers.
func (c *Cart) SingleSellerID() (uuid.UUID, bool) {
	if c.IsEmpty() {
		return uuid.Nil, false
	}

	var sellerID uuid.UUID
	for i := range c.Items {
		product := c.Items[i].Product
		if product == nil {
			return uuid.Nil, false
		}
		if i == 0 {
			sellerID = product.SellerID

			continue
		}
		if product.SellerID != sellerID {
			return uuid.Nil, false
		}
	}

	return sellerID, true
}
