// internal/domain/order/entity.go
package order

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// OrderStatus represents the order fulfilment status
type OrderStatus string

const (
	OrderStatusPlaced         OrderStatus = "Order Placed"
	OrderStatusProcessing     OrderStatus = "Processing"
	OrderStatusShipped        OrderStatus = "Shipped"
	OrderStatusOutForDelivery OrderStatus = "Out for Delivery"
	OrderStatusDelivered      OrderStatus = "Delivered"
	OrderStatusCancelled      OrderStatus = "Cancelled"
)

// PaymentType represents how the order is paid
type PaymentType string

const (
	PaymentTypeCOD    PaymentType = "COD"
	PaymentTypeOnline PaymentType = "Online"
)

// Order represents a placed order
type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	OrderNumber string      `gorm:"uniqueIndex;not null;size:50" json:"order_number"`
	UserID      uint        `gorm:"not null;index" json:"user_id"`
	Status      OrderStatus `gorm:"not null;default:'Order Placed'" json:"status"`
	PaymentType PaymentType `gorm:"not null;default:'COD'" json:"payment_type"`
	IsPaid      bool        `gorm:"default:false" json:"is_paid"`

	// Financials. Subtotal uses the offer-if-lower price per unit; tax is a
	// floored percentage of the subtotal; amount is their sum.
	SubtotalAmount float64 `gorm:"not null" json:"subtotal_amount"`
	TaxAmount      float64 `gorm:"not null" json:"tax_amount"`
	Amount         float64 `gorm:"not null" json:"amount"`

	// Shipping address snapshot taken at order time
	Address ShippingAddress `gorm:"embedded;embeddedPrefix:ship_" json:"address"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// OrderItem represents one product line in an order
type OrderItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	ProductID string    `gorm:"type:uuid;not null;index" json:"product_id"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	UnitPrice float64   `gorm:"not null" json:"unit_price"`
	CreatedAt time.Time `json:"created_at"`
}

// ShippingAddress is the address snapshot embedded in an order
type ShippingAddress struct {
	FullName    string `gorm:"size:255" json:"full_name"`
	PhoneNumber string `gorm:"size:20" json:"phone_number"`
	PinCode     string `gorm:"size:20" json:"pin_code"`
	Area        string `gorm:"size:255" json:"area"`
	City        string `gorm:"size:100" json:"city"`
	State       string `gorm:"size:100" json:"state"`
	Landmark    string `gorm:"size:255" json:"landmark"`
}

// TableName overrides
func (Order) TableName() string     { return "orders" }
func (OrderItem) TableName() string { return "order_items" }

// GenerateOrderNumber generates a unique order number
func GenerateOrderNumber(suffix string) string {
	return fmt.Sprintf("ORD-%s-%s", time.Now().UTC().Format("20060102"), suffix)
}

// CanBeCancelled checks if the order can still be cancelled
func (o *Order) CanBeCancelled() bool {
	return o.Status == OrderStatusPlaced || o.Status == OrderStatusProcessing
}
