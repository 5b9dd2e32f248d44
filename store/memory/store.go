// Package memory implements the composite store in process memory.
// It is used by tests and for development; data does not survive a restart.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/stockroomhq/stockroom/id"
	"github.com/stockroomhq/stockroom/inventory"
	"github.com/stockroomhq/stockroom/order"
	"github.com/stockroomhq/stockroom/store"
)

// Compile-time interface check.
var _ store.Store = (*Store)(nil)

// Store is an in-memory implementation of the composite store.
// All methods are safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	items  map[string]*inventory.Item
	orders map[string]*order.Order
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		items:  make(map[string]*inventory.Item),
		orders: make(map[string]*order.Order),
	}
}

// Migrate is a no-op for the memory store.
func (s *Store) Migrate(_ context.Context) error { return nil }

// Ping is a no-op for the memory store.
func (s *Store) Ping(_ context.Context) error { return nil }

// Close is a no-op for the memory store.
func (s *Store) Close() error { return nil }

func now() time.Time {
	return time.Now().UTC()
}

func copyItem(item *inventory.Item) *inventory.Item {
	c := *item
	return &c
}

func copyOrder(o *order.Order) *order.Order {
	c := *o
	c.Items = make([]order.OrderItem, len(o.Items))
	copy(c.Items, o.Items)
	return &c
}

// ──────────────────────────────────────────────────
// Inventory operations
// ──────────────────────────────────────────────────

func (s *Store) CreateItem(_ context.Context, item *inventory.Item) (id.ItemID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	itemID := id.NewItemID()
	t := now()
	item.ID = itemID
	item.CreatedAt = t
	item.UpdatedAt = t
	s.items[itemID.String()] = copyItem(item)
	return itemID, nil
}

func (s *Store) GetItem(_ context.Context, itemID id.ItemID) (*inventory.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[itemID.String()]
	if !ok {
		return nil, nil
	}
	return copyItem(item), nil
}

func (s *Store) UpdateItem(_ context.Context, itemID id.ItemID, patch *inventory.Patch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[itemID.String()]
	if !ok {
		return false, fmt.Errorf("item %s: %w", itemID, store.ErrNotFound)
	}
	if patch != nil {
		if patch.Name != nil {
			item.Name = *patch.Name
		}
		if patch.SKU != nil {
			item.SKU = *patch.SKU
		}
		if patch.Category != nil {
			item.Category = *patch.Category
		}
		if patch.Quantity != nil {
			item.Quantity = *patch.Quantity
		}
		if patch.Price != nil {
			item.Price = *patch.Price
		}
		if patch.Cost != nil {
			item.Cost = *patch.Cost
		}
		if patch.Description != nil {
			item.Description = *patch.Description
		}
	}
	item.UpdatedAt = now()
	return true, nil
}

func (s *Store) DeleteItem(_ context.Context, itemID id.ItemID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[itemID.String()]; !ok {
		return false, nil
	}
	delete(s.items, itemID.String())
	return true, nil
}

func (s *Store) ListItems(_ context.Context) ([]*inventory.Item, error) {
	return s.listItems(func(*inventory.Item) bool { return true }), nil
}

func (s *Store) ListItemsByCategory(_ context.Context, category string) ([]*inventory.Item, error) {
	return s.listItems(func(item *inventory.Item) bool { return item.Category == category }), nil
}

func (s *Store) ListLowStockItems(_ context.Context, threshold int) ([]*inventory.Item, error) {
	return s.listItems(func(item *inventory.Item) bool { return item.Quantity < threshold }), nil
}

func (s *Store) listItems(keep func(*inventory.Item) bool) []*inventory.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := []*inventory.Item{}
	for _, item := range s.items {
		if keep(item) {
			items = append(items, copyItem(item))
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items
}

// ──────────────────────────────────────────────────
// Order operations
// ──────────────────────────────────────────────────

func (s *Store) CreateOrder(_ context.Context, o *order.Order) (id.OrderID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orderID := id.NewOrderID()
	t := now()
	o.ID = orderID
	o.CreatedAt = t
	o.UpdatedAt = t
	for i := range o.Items {
		o.Items[i].ID = id.NewLineID()
	}
	s.orders[orderID.String()] = copyOrder(o)
	return orderID, nil
}

func (s *Store) GetOrder(_ context.Context, orderID id.OrderID) (*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[orderID.String()]
	if !ok {
		return nil, nil
	}
	return copyOrder(o), nil
}

func (s *Store) UpdateOrder(_ context.Context, orderID id.OrderID, patch *order.Patch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderID.String()]
	if !ok {
		return false, fmt.Errorf("order %s: %w", orderID, store.ErrNotFound)
	}
	if patch != nil {
		if patch.CustomerID != nil {
			o.CustomerID = *patch.CustomerID
		}
		if patch.CustomerName != nil {
			o.CustomerName = *patch.CustomerName
		}
		if patch.CustomerEmail != nil {
			o.CustomerEmail = *patch.CustomerEmail
		}
		if patch.Subtotal != nil {
			o.Subtotal = *patch.Subtotal
		}
		if patch.Tax != nil {
			o.Tax = *patch.Tax
		}
		if patch.Total != nil {
			o.Total = *patch.Total
		}
		if patch.Status != nil {
			o.Status = *patch.Status
		}
		if patch.PaymentStatus != nil {
			o.PaymentStatus = *patch.PaymentStatus
		}
		if patch.Items != nil {
			lines := make([]order.OrderItem, len(patch.Items))
			copy(lines, patch.Items)
			for i := range lines {
				lines[i].ID = id.NewLineID()
			}
			o.Items = lines
		}
	}
	o.UpdatedAt = now()
	return true, nil
}

func (s *Store) DeleteOrder(_ context.Context, orderID id.OrderID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[orderID.String()]; !ok {
		return false, nil
	}
	delete(s.orders, orderID.String())
	return true, nil
}

func (s *Store) ListOrders(_ context.Context) ([]*order.Order, error) {
	return s.listOrders(func(*order.Order) bool { return true }, false, 0), nil
}

func (s *Store) ListRecentOrders(_ context.Context, limit int) ([]*order.Order, error) {
	return s.listOrders(func(*order.Order) bool { return true }, true, limit), nil
}

func (s *Store) ListOrdersByStatus(_ context.Context, status order.Status) ([]*order.Order, error) {
	return s.listOrders(func(o *order.Order) bool { return o.Status == status }, false, 0), nil
}

func (s *Store) listOrders(keep func(*order.Order) bool, newestFirst bool, limit int) []*order.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := []*order.Order{}
	for _, o := range s.orders {
		if keep(o) {
			orders = append(orders, copyOrder(o))
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		if newestFirst {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		}
		return orders[i].CreatedAt.Before(orders[j].CreatedAt)
	})
	if limit > 0 && len(orders) > limit {
		orders = orders[:limit]
	}
	return orders
}
