// Package order defines the order and order line item entities, their store
// interface, and the service façade used by callers.
package order

import (
	"time"

	"github.com/stockroomhq/stockroom/id"
)

// Status is the fulfilment state of an order.
type Status string

// Order statuses.
const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Valid reports whether s is a known order status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// PaymentStatus is the payment state of an order.
type PaymentStatus string

// Payment statuses.
const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Valid reports whether p is a known payment status.
func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentUnpaid, PaymentPaid, PaymentRefunded:
		return true
	}
	return false
}

// OrderItem is one line of an order. The product name is a denormalized
// copy taken at order time, not a live reference into inventory. Lines have
// no lifecycle of their own; they are replaced as a unit when the parent
// order's items change.
type OrderItem struct {
	ID          id.LineID `json:"id" db:"id"`
	ProductID   string    `json:"product_id" db:"product_id"`
	ProductName string    `json:"product_name" db:"product_name"`
	Quantity    int       `json:"quantity" db:"quantity"`
	Price       float64   `json:"price" db:"price"`
	Total       float64   `json:"total" db:"total"`
}

// Order represents a customer order with its line items in insertion order.
// Total is expected to equal Subtotal + Tax but the storage layer does not
// enforce that; it is the caller's responsibility.
type Order struct {
	ID            id.OrderID    `json:"id" db:"id"`
	CustomerID    string        `json:"customer_id,omitempty" db:"customer_id"`
	CustomerName  string        `json:"customer_name" db:"customer_name"`
	CustomerEmail string        `json:"customer_email,omitempty" db:"customer_email"`
	Items         []OrderItem   `json:"items"`
	Subtotal      float64       `json:"subtotal" db:"subtotal"`
	Tax           float64       `json:"tax" db:"tax"`
	Total         float64       `json:"total" db:"total"`
	Status        Status        `json:"status" db:"status"`
	PaymentStatus PaymentStatus `json:"payment_status" db:"payment_status"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" db:"updated_at"`
}

// Patch describes a partial update to an order. Nil fields are left
// untouched. A non-nil Items slice replaces the full line item sequence;
// there is no per-line merging.
type Patch struct {
	CustomerID    *string        `json:"customer_id,omitempty"`
	CustomerName  *string        `json:"customer_name,omitempty"`
	CustomerEmail *string        `json:"customer_email,omitempty"`
	Items         []OrderItem    `json:"items,omitempty"`
	Subtotal      *float64       `json:"subtotal,omitempty"`
	Tax           *float64       `json:"tax,omitempty"`
	Total         *float64       `json:"total,omitempty"`
	Status        *Status        `json:"status,omitempty"`
	PaymentStatus *PaymentStatus `json:"payment_status,omitempty"`
}

// DefaultRecentLimit is the number of orders returned by recent-order reads
// when the caller does not supply a limit.
const DefaultRecentLimit = 5
