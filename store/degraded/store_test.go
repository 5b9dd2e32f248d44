package degraded

import (
	"context"
	"errors"
	"testing"

	"github.com/stockroomhq/stockroom/id"
	"github.com/stockroomhq/stockroom/inventory"
	"github.com/stockroomhq/stockroom/order"
	"github.com/stockroomhq/stockroom/store"
)

func TestEveryOperationFailsWithBackendUnavailable(t *testing.T) {
	s := New()
	ctx := context.Background()

	checks := []struct {
		name string
		err  func() error
	}{
		{"Migrate", func() error { return s.Migrate(ctx) }},
		{"Ping", func() error { return s.Ping(ctx) }},
		{"CreateItem", func() error { _, err := s.CreateItem(ctx, &inventory.Item{}); return err }},
		{"GetItem", func() error { _, err := s.GetItem(ctx, id.NewItemID()); return err }},
		{"UpdateItem", func() error { _, err := s.UpdateItem(ctx, id.NewItemID(), nil); return err }},
		{"DeleteItem", func() error { _, err := s.DeleteItem(ctx, id.NewItemID()); return err }},
		{"ListItems", func() error { _, err := s.ListItems(ctx); return err }},
		{"ListItemsByCategory", func() error { _, err := s.ListItemsByCategory(ctx, "x"); return err }},
		{"ListLowStockItems", func() error { _, err := s.ListLowStockItems(ctx, 10); return err }},
		{"CreateOrder", func() error { _, err := s.CreateOrder(ctx, &order.Order{}); return err }},
		{"GetOrder", func() error { _, err := s.GetOrder(ctx, id.NewOrderID()); return err }},
		{"UpdateOrder", func() error { _, err := s.UpdateOrder(ctx, id.NewOrderID(), nil); return err }},
		{"DeleteOrder", func() error { _, err := s.DeleteOrder(ctx, id.NewOrderID()); return err }},
		{"ListOrders", func() error { _, err := s.ListOrders(ctx); return err }},
		{"ListRecentOrders", func() error { _, err := s.ListRecentOrders(ctx, 5); return err }},
		{"ListOrdersByStatus", func() error { _, err := s.ListOrdersByStatus(ctx, order.StatusPending); return err }},
	}
	for _, check := range checks {
		if err := check.err(); !errors.Is(err, store.ErrBackendUnavailable) {
			t.Fatalf("%s: expected ErrBackendUnavailable, got %v", check.name, err)
		}
	}
}

func TestCloseIsQuiet(t *testing.T) {
	if err := New().Close(); err != nil {
		t.Fatal(err)
	}
}
