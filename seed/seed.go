// Package seed populates a store with demo inventory and orders.
package seed

import (
	"context"
	"log/slog"

	"github.com/stockroomhq/stockroom/inventory"
	"github.com/stockroomhq/stockroom/order"
	"github.com/stockroomhq/stockroom/store"
)

// items are the demo inventory fixtures.
func items() []*inventory.Item {
	return []*inventory.Item{
		{Name: "Laptop", SKU: "TECH-001", Category: "Electronics", Quantity: 15, Price: 999.99, Cost: 750.00, Description: "High-performance business laptop"},
		{Name: "Desk Chair", SKU: "FURN-002", Category: "Furniture", Quantity: 8, Price: 199.99, Cost: 120.00, Description: "Ergonomic office chair"},
		{Name: "Wireless Mouse", SKU: "TECH-003", Category: "Electronics", Quantity: 25, Price: 29.99, Cost: 15.00, Description: "Bluetooth wireless mouse"},
		{Name: "Coffee Maker", SKU: "APPL-004", Category: "Appliances", Quantity: 5, Price: 79.99, Cost: 45.00, Description: "12-cup programmable coffee maker"},
		{Name: "Desk Lamp", SKU: "FURN-005", Category: "Furniture", Quantity: 12, Price: 39.99, Cost: 22.00, Description: "LED desk lamp"},
	}
}

// orders are the demo order fixtures.
func orders() []*order.Order {
	return []*order.Order{
		{
			CustomerName:  "John Smith",
			CustomerEmail: "john.smith@example.com",
			Items: []order.OrderItem{
				{ProductID: "TECH-001", ProductName: "Laptop", Quantity: 1, Price: 999.99, Total: 999.99},
			},
			Subtotal:      999.99,
			Tax:           80.00,
			Total:         1079.99,
			Status:        order.StatusCompleted,
			PaymentStatus: order.PaymentPaid,
		},
		{
			CustomerName:  "Sarah Johnson",
			CustomerEmail: "sarah.johnson@example.com",
			Items: []order.OrderItem{
				{ProductID: "FURN-002", ProductName: "Desk Chair", Quantity: 2, Price: 199.99, Total: 399.98},
				{ProductID: "FURN-005", ProductName: "Desk Lamp", Quantity: 1, Price: 39.99, Total: 39.99},
			},
			Subtotal:      439.97,
			Tax:           35.20,
			Total:         475.17,
			Status:        order.StatusProcessing,
			PaymentStatus: order.PaymentPaid,
		},
		{
			CustomerName:  "Michael Brown",
			CustomerEmail: "michael.brown@example.com",
			Items: []order.OrderItem{
				{ProductID: "TECH-003", ProductName: "Wireless Mouse", Quantity: 3, Price: 29.99, Total: 89.97},
			},
			Subtotal:      89.97,
			Tax:           7.20,
			Total:         97.17,
			Status:        order.StatusPending,
			PaymentStatus: order.PaymentUnpaid,
		},
	}
}

// Populate inserts the demo fixtures. Unlike the adapters, it tolerates
// per-entity failures: each one is logged and the rest still go in.
// It returns the number of entities written.
func Populate(ctx context.Context, st store.Store, logger *slog.Logger) int {
	if logger == nil {
		logger = slog.Default()
	}

	written := 0
	for _, item := range items() {
		if _, err := st.CreateItem(ctx, item); err != nil {
			logger.Warn("seed: inventory item skipped", "sku", item.SKU, "error", err)
			continue
		}
		written++
	}
	for _, o := range orders() {
		if _, err := st.CreateOrder(ctx, o); err != nil {
			logger.Warn("seed: order skipped", "customer", o.CustomerName, "error", err)
			continue
		}
		written++
	}
	logger.Info("seed complete", "written", written)
	return written
}
