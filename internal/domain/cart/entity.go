// internal/domain/cart/entity.go
package cart

import "time"

// Product is the product snapshot captured when an item enters the cart.
// Name, price and image are frozen at add time; later catalog edits do
// not retroactively change existing line items.
type Product struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"` // minor units (cents)
	Image string `json:"image"`
}

// LineItem is one product entry in the cart with its quantity
type LineItem struct {
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	Image     string    `json:"image"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

// Totals represents derived cart totals. They are recomputed from the
// line items on every read and never stored.
type Totals struct {
	ItemCount     int   `json:"item_count"`     // Number of distinct line items
	TotalQuantity int   `json:"total_quantity"` // Sum of all quantities
	TotalPrice    int64 `json:"total_price"`    // Sum of price * quantity
}

// snapshot is the persisted representation of a cart
type snapshot struct {
	Items     []LineItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}
