package order

import (
	"context"

	"github.com/stockroomhq/stockroom/id"
)

// Store defines persistence operations for orders. Every read returns each
// order with its full line item sequence in insertion order.
type Store interface {
	// CreateOrder persists a new order and its line items, assigning the
	// order ID, a fresh ID per line, and both timestamps.
	CreateOrder(ctx context.Context, o *Order) (id.OrderID, error)

	// GetOrder retrieves an order by ID. Returns (nil, nil) if absent.
	GetOrder(ctx context.Context, orderID id.OrderID) (*Order, error)

	// UpdateOrder applies the non-nil patch fields to an order and refreshes
	// its update timestamp. A non-nil Items slice replaces every existing
	// line. Returns store.ErrNotFound if the order is absent.
	UpdateOrder(ctx context.Context, orderID id.OrderID, patch *Patch) (bool, error)

	// DeleteOrder removes an order and its line items. Returns false, not
	// an error, when the order is absent.
	DeleteOrder(ctx context.Context, orderID id.OrderID) (bool, error)

	// ListOrders returns all orders.
	ListOrders(ctx context.Context) ([]*Order, error)

	// ListRecentOrders returns up to limit orders, newest first.
	ListRecentOrders(ctx context.Context, limit int) ([]*Order, error)

	// ListOrdersByStatus returns orders with the given status.
	ListOrdersByStatus(ctx context.Context, status Status) ([]*Order, error)
}
