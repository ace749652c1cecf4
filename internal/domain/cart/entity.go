// internal/domain/cart/entity.go
package cart

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Items is the cart state: a flat mapping from product id to requested
// quantity. This exact shape is what gets persisted, both in Postgres and in
// Redis, with no metadata co-located with the quantities. No entry is ever
// stored with a quantity <= 0.
type Items map[string]int

// Set applies a quantity to the mapping, deleting the key when qty is zero.
// Negative quantities are rejected by callers before reaching here.
func (i Items) Set(productID string, qty int) {
	if qty <= 0 {
		delete(i, productID)
		return
	}
	i[productID] = qty
}

// Clone returns an independent copy of the mapping
func (i Items) Clone() Items {
	out := make(Items, len(i))
	for id, qty := range i {
		out[id] = qty
	}
	return out
}

// TotalQuantity returns the sum of all quantities
func (i Items) TotalQuantity() int {
	total := 0
	for _, qty := range i {
		total += qty
	}
	return total
}

// Normalize drops entries with non-positive quantities. Persisted carts from
// older clients may carry zeros; loads pass through here.
func (i Items) Normalize() Items {
	out := make(Items, len(i))
	for id, qty := range i {
		if qty > 0 {
			out[id] = qty
		}
	}
	return out
}

// Value serializes the mapping for storage in a jsonb column
func (i Items) Value() (driver.Value, error) {
	if i == nil {
		i = Items{}
	}
	return json.Marshal(i)
}

// Scan deserializes the mapping from a jsonb column
func (i *Items) Scan(src interface{}) error {
	if src == nil {
		*i = Items{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported cart items column type %T", src)
	}
	return json.Unmarshal(data, i)
}

// CartRecord is the account-scoped durable cart, one row per user
type CartRecord struct {
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	Items     Items     `gorm:"type:jsonb;not null;default:'{}'" json:"items"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (CartRecord) TableName() string {
	return "carts"
}

// LineItem is a derived, per-product priced row. Not persisted.
type LineItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// Summary is the output of the pricing calculator
type Summary struct {
	LineItems      []LineItem `json:"line_items"`
	TotalAmount    float64    `json:"total_amount"`
	TotalItemCount int        `json:"total_item_count"`
}

// Result is the outcome of one reconciliation cycle
type Result struct {
	Items             Items    `json:"items"`
	LineItems         []LineItem `json:"line_items"`
	TotalAmount       float64  `json:"total_amount"`
	TotalItemCount    int      `json:"total_item_count"`
	RemovedProductIDs []string `json:"removed_product_ids"`
	Merged            bool     `json:"merged"`
	Generation        uint64   `json:"-"`
}
