package cart

import (
	"time"

	"shopora-be/internal/product"
)

// Cart is the projection every cart operation returns: the persisted row
// plus items, line totals, total and distinct item count.
type Cart struct {
	ID        uint
	UserID    uint
	Items     []CartItem
	Total     float64
	ItemCount int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CartItem struct {
	ID       uint
	CartID   uint
	Quantity int
	Total    float64
	Product  product.Product
}

// CartRow is the raw join of a cart item with its product.
type CartRow struct {
	ItemID   uint
	CartID   uint
	Quantity int
	Product  product.Product
}
