package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the lifecycle state reported by the checkout provider.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// Order is created by the external checkout provider and is read-only in
// this API.
type Order struct {
	ID            uuid.UUID   `json:"id" db:"id"`
	OrderNumber   string      `json:"order_number" db:"order_number"`
	Status        OrderStatus `json:"status" db:"status"`
	Total         float64     `json:"total" db:"total"`
	Subtotal      float64     `json:"subtotal" db:"subtotal"`
	CustomerEmail string      `json:"customer_email" db:"customer_email"`
	CustomerName  string      `json:"customer_name" db:"customer_name"`
	Items         []OrderItem `json:"items"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
}

// OrderItem is a line on an order, priced at purchase time.
type OrderItem struct {
	ID        uuid.UUID `json:"id" db:"id"`
	OrderID   uuid.UUID `json:"order_id" db:"order_id"`
	ProductID uuid.UUID `json:"product_id" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	Price     float64   `json:"price" db:"price"`
}
