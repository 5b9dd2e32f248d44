// Package degraded implements the last-resort store used when neither real
// backend is available. Every operation fails with
// store.ErrBackendUnavailable; nothing is persisted.
package degraded

import (
	"context"
	"fmt"

	"github.com/stockroomhq/stockroom/id"
	"github.com/stockroomhq/stockroom/inventory"
	"github.com/stockroomhq/stockroom/order"
	"github.com/stockroomhq/stockroom/store"
)

// Compile-time interface check.
var _ store.Store = (*Store)(nil)

// Store is the degraded fallback store.
type Store struct{}

// New creates a degraded store.
func New() *Store { return &Store{} }

func unavailable(op string) error {
	return fmt.Errorf("%s: %w", op, store.ErrBackendUnavailable)
}

// Migrate fails; there is no backend to initialize.
func (s *Store) Migrate(_ context.Context) error { return unavailable("migrate") }

// Ping fails; there is no backend to reach.
func (s *Store) Ping(_ context.Context) error { return unavailable("ping") }

// Close is a no-op.
func (s *Store) Close() error { return nil }

func (s *Store) CreateItem(_ context.Context, _ *inventory.Item) (id.ItemID, error) {
	return id.Nil, unavailable("create item")
}

func (s *Store) GetItem(_ context.Context, _ id.ItemID) (*inventory.Item, error) {
	return nil, unavailable("get item")
}

func (s *Store) UpdateItem(_ context.Context, _ id.ItemID, _ *inventory.Patch) (bool, error) {
	return false, unavailable("update item")
}

func (s *Store) DeleteItem(_ context.Context, _ id.ItemID) (bool, error) {
	return false, unavailable("delete item")
}

func (s *Store) ListItems(_ context.Context) ([]*inventory.Item, error) {
	return nil, unavailable("list items")
}

func (s *Store) ListItemsByCategory(_ context.Context, _ string) ([]*inventory.Item, error) {
	return nil, unavailable("list items by category")
}

func (s *Store) ListLowStockItems(_ context.Context, _ int) ([]*inventory.Item, error) {
	return nil, unavailable("list low stock items")
}

func (s *Store) CreateOrder(_ context.Context, _ *order.Order) (id.OrderID, error) {
	return id.Nil, unavailable("create order")
}

func (s *Store) GetOrder(_ context.Context, _ id.OrderID) (*order.Order, error) {
	return nil, unavailable("get order")
}

func (s *Store) UpdateOrder(_ context.Context, _ id.OrderID, _ *order.Patch) (bool, error) {
	return false, unavailable("update order")
}

func (s *Store) DeleteOrder(_ context.Context, _ id.OrderID) (bool, error) {
	return false, unavailable("delete order")
}

func (s *Store) ListOrders(_ context.Context) ([]*order.Order, error) {
	return nil, unavailable("list orders")
}

func (s *Store) ListRecentOrders(_ context.Context, _ int) ([]*order.Order, error) {
	return nil, unavailable("list recent orders")
}

func (s *Store) ListOrdersByStatus(_ context.Context, _ order.Status) ([]*order.Order, error) {
	return nil, unavailable("list orders by status")
}
