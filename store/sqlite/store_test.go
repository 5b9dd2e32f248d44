package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stockroomhq/stockroom/id"
	"github.com/stockroomhq/stockroom/inventory"
	"github.com/stockroomhq/stockroom/order"
	"github.com/stockroomhq/stockroom/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close() })
	if err := s.Migrate(context.Background()); err != nil {
		t.Fatal(err)
	}
	return s
}

func intPtr(n int) *int { return &n }

func TestMigrateIdempotent(t *testing.T) {
	s := newTestStore(t)
	// Tables are created with IF NOT EXISTS; a second run must be a no-op.
	if err := s.Migrate(context.Background()); err != nil {
		t.Fatal(err)
	}
}

func TestItemRoundtrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	in := &inventory.Item{
		Name:        "Laptop",
		SKU:         "TECH-001",
		Category:    "Electronics",
		Quantity:    15,
		Price:       999.99,
		Cost:        750.00,
		Description: "demo",
	}
	itemID, err := s.CreateItem(ctx, in)
	if err != nil {
		t.Fatal(err)
	}
	if itemID.IsNil() {
		t.Fatal("expected a non-nil assigned ID")
	}

	got, err := s.GetItem(ctx, itemID)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("expected item, got nil")
	}
	if got.Name != in.Name || got.SKU != in.SKU || got.Category != in.Category ||
		got.Quantity != in.Quantity || got.Price != in.Price || got.Cost != in.Cost ||
		got.Description != in.Description {
		t.Fatalf("roundtrip mismatch: %+v", got)
	}
	if !got.CreatedAt.Equal(got.UpdatedAt) {
		t.Fatalf("expected created_at == updated_at, got %v / %v", got.CreatedAt, got.UpdatedAt)
	}
}

func TestItemEmptyDescriptionIsNull(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	itemID, err := s.CreateItem(ctx, &inventory.Item{Name: "Plain", SKU: "X-1", Category: "Misc"})
	if err != nil {
		t.Fatal(err)
	}
	got, err := s.GetItem(ctx, itemID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Description != "" {
		t.Fatalf("description = %q, want empty", got.Description)
	}
}

func TestGetItemAbsent(t *testing.T) {
	s := newTestStore(t)
	got, err := s.GetItem(context.Background(), id.NewItemID())
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatalf("expected nil for absent item, got %+v", got)
	}
}

func TestUpdateItemPartial(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	itemID, err := s.CreateItem(ctx, &inventory.Item{
		Name: "Laptop", SKU: "TECH-001", Category: "Electronics",
		Quantity: 15, Price: 999.99, Cost: 750.00,
	})
	if err != nil {
		t.Fatal(err)
	}

	time.Sleep(5 * time.Millisecond)
	ok, err := s.UpdateItem(ctx, itemID, &inventory.Patch{Quantity: intPtr(7)})
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected update to affect one row")
	}

	got, err := s.GetItem(ctx, itemID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Quantity != 7 {
		t.Fatalf("quantity = %d, want 7", got.Quantity)
	}
	if got.Name != "Laptop" || got.SKU != "TECH-001" || got.Price != 999.99 || got.Cost != 750.00 {
		t.Fatalf("untouched fields changed: %+v", got)
	}
	if !got.UpdatedAt.After(got.CreatedAt) {
		t.Fatalf("expected updated_at > created_at, got %v / %v", got.UpdatedAt, got.CreatedAt)
	}
}

func TestUpdateItemMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.UpdateItem(context.Background(), id.NewItemID(), &inventory.Patch{Quantity: intPtr(1)})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteItem(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	itemID, err := s.CreateItem(ctx, &inventory.Item{Name: "Laptop", SKU: "TECH-001", Category: "Electronics"})
	if err != nil {
		t.Fatal(err)
	}

	ok, err := s.DeleteItem(ctx, itemID)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected delete to report success")
	}
	got, err := s.GetItem(ctx, itemID)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatal("expected nil after delete")
	}

	ok, err = s.DeleteItem(ctx, itemID)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("deleting an absent item should report false, not error")
	}
}

func TestLowStockItems(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, qty := range []int{5, 10, 15} {
		_, err := s.CreateItem(ctx, &inventory.Item{Name: "Item", SKU: "SKU", Category: "Misc", Quantity: qty})
		if err != nil {
			t.Fatal(err)
		}
	}

	low, err := s.ListLowStockItems(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(low) != 1 || low[0].Quantity != 5 {
		t.Fatalf("expected exactly the quantity-5 item, got %+v", low)
	}
}

func TestOrderRoundtripPreservesLineOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	orderID, err := s.CreateOrder(ctx, &order.Order{
		CustomerName:  "John Smith",
		CustomerEmail: "john@example.com",
		Items: []order.OrderItem{
			{ProductID: "p1", ProductName: "First", Quantity: 1, Price: 10, Total: 10},
			{ProductID: "p2", ProductName: "Second", Quantity: 2, Price: 5, Total: 10},
		},
		Subtotal:      20,
		Tax:           1.60,
		Total:         21.60,
		Status:        order.StatusPending,
		PaymentStatus: order.PaymentUnpaid,
	})
	if err != nil {
		t.Fatal(err)
	}

	got, err := s.GetOrder(ctx, orderID)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("expected order, got nil")
	}
	if got.CustomerName != "John Smith" || got.CustomerEmail != "john@example.com" {
		t.Fatalf("customer mismatch: %+v", got)
	}
	if len(got.Items) != 2 ||
		got.Items[0].ProductName != "First" || got.Items[1].ProductName != "Second" {
		t.Fatalf("line order not preserved: %+v", got.Items)
	}
	for _, line := range got.Items {
		if line.ID.IsNil() {
			t.Fatal("expected each line to get an assigned ID")
		}
	}
}

func TestUpdateOrderReplacesLines(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	orderID, err := s.CreateOrder(ctx, &order.Order{
		CustomerName: "John Smith",
		Items: []order.OrderItem{
			{ProductID: "p1", ProductName: "Old A", Quantity: 1, Price: 10, Total: 10},
			{ProductID: "p2", ProductName: "Old B", Quantity: 1, Price: 10, Total: 10},
		},
		Status:        order.StatusPending,
		PaymentStatus: order.PaymentUnpaid,
	})
	if err != nil {
		t.Fatal(err)
	}

	ok, err := s.UpdateOrder(ctx, orderID, &order.Patch{
		Items: []order.OrderItem{
			{ProductID: "p3", ProductName: "New", Quantity: 3, Price: 4, Total: 12},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected update to affect one row")
	}

	got, err := s.GetOrder(ctx, orderID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Items) != 1 || got.Items[0].ProductName != "New" {
		t.Fatalf("expected exactly the new line sequence, got %+v", got.Items)
	}
}

func TestUpdateOrderScalarKeepsLines(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	orderID, err := s.CreateOrder(ctx, &order.Order{
		CustomerName: "John Smith",
		Items: []order.OrderItem{
			{ProductID: "p1", ProductName: "Only", Quantity: 1, Price: 10, Total: 10},
		},
		Status:        order.StatusPending,
		PaymentStatus: order.PaymentUnpaid,
	})
	if err != nil {
		t.Fatal(err)
	}

	status := order.StatusCompleted
	if _, err := s.UpdateOrder(ctx, orderID, &order.Patch{Status: &status}); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetOrder(ctx, orderID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != order.StatusCompleted {
		t.Fatalf("status = %s, want completed", got.Status)
	}
	if len(got.Items) != 1 {
		t.Fatalf("a nil Items patch must keep the line sequence, got %d lines", len(got.Items))
	}
}

func TestUpdateOrderMissing(t *testing.T) {
	s := newTestStore(t)
	name := "Nobody"
	_, err := s.UpdateOrder(context.Background(), id.NewOrderID(), &order.Patch{CustomerName: &name})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteOrderRemovesLines(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	orderID, err := s.CreateOrder(ctx, &order.Order{
		CustomerName: "John Smith",
		Items: []order.OrderItem{
			{ProductID: "p1", ProductName: "Only", Quantity: 1, Price: 10, Total: 10},
		},
		Status:        order.StatusPending,
		PaymentStatus: order.PaymentUnpaid,
	})
	if err != nil {
		t.Fatal(err)
	}

	ok, err := s.DeleteOrder(ctx, orderID)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected delete to report success")
	}
	got, err := s.GetOrder(ctx, orderID)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatal("expected nil after delete")
	}

	var count int
	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM order_items`).Scan(&count)
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Fatalf("expected no orphan lines, found %d", count)
	}
}

func TestRecentOrders(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"First", "Second", "Third"} {
		_, err := s.CreateOrder(ctx, &order.Order{
			CustomerName:  name,
			Status:        order.StatusPending,
			PaymentStatus: order.PaymentUnpaid,
		})
		if err != nil {
			t.Fatal(err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	recent, err := s.ListRecentOrders(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(recent))
	}
	if recent[0].CustomerName != "Third" || recent[1].CustomerName != "Second" {
		t.Fatalf("expected newest first, got %s then %s", recent[0].CustomerName, recent[1].CustomerName)
	}
}

func TestOrdersByStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for name, status := range map[string]order.Status{
		"A": order.StatusPending,
		"B": order.StatusCompleted,
	} {
		_, err := s.CreateOrder(ctx, &order.Order{
			CustomerName:  name,
			Status:        status,
			PaymentStatus: order.PaymentUnpaid,
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.ListOrdersByStatus(ctx, order.StatusCompleted)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].CustomerName != "B" {
		t.Fatalf("unexpected status result: %+v", got)
	}
}
