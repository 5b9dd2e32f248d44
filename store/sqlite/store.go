// Package sqlite implements the composite store on an embedded SQLite
// database. Orders and their line items live in separate tables; every
// order read joins the two with a single batched line item query.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/stockroomhq/stockroom/id"
	"github.com/stockroomhq/stockroom/inventory"
	"github.com/stockroomhq/stockroom/order"
	"github.com/stockroomhq/stockroom/store"
)

// Compile-time interface check.
var _ store.Store = (*Store)(nil)

// Store is a SQLite implementation of the composite store.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database file at path and returns a
// store over it. Use ":memory:" for an ephemeral database.
func Open(path string) (*Store, error) {
	dsn := path
	if path != ":memory:" {
		dsn = "file:" + path + "?_pragma=foreign_keys(1)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("stockroom/sqlite: open %s: %w", path, err)
	}
	// The embedded engine serializes statements on one connection; dependent
	// statement chains (parent row, then its lines) rely on that.
	db.SetMaxOpenConns(1)
	return &Store{db: db}, nil
}

// New wraps an already opened database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the three tables, sequentially, inside one transaction.
// Any statement failure aborts the whole initialization.
func (s *Store) Migrate(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("stockroom/sqlite: begin migration: %w", err)
	}
	for _, stmt := range migrations {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("stockroom/sqlite: migration failed: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("stockroom/sqlite: commit migration: %w", err)
	}
	return nil
}

// Ping verifies the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// isNoRows checks for the standard sql.ErrNoRows sentinel.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// now returns the current UTC time.
func now() time.Time {
	return time.Now().UTC()
}

// ──────────────────────────────────────────────────
// Inventory operations
// ──────────────────────────────────────────────────

func (s *Store) CreateItem(ctx context.Context, item *inventory.Item) (id.ItemID, error) {
	itemID := id.NewItemID()
	t := now()
	_, err := s.db.ExecContext(ctx, `
INSERT INTO inventory (id, name, sku, category, quantity, price, cost, description, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		itemID.String(), item.Name, item.SKU, item.Category, item.Quantity,
		item.Price, item.Cost, nullString(item.Description), formatTime(t), formatTime(t))
	if err != nil {
		return id.Nil, fmt.Errorf("stockroom: create item: %w", err)
	}
	item.ID = itemID
	item.CreatedAt = t
	item.UpdatedAt = t
	return itemID, nil
}

func (s *Store) GetItem(ctx context.Context, itemID id.ItemID) (*inventory.Item, error) {
	var r itemRow
	err := s.db.QueryRowContext(ctx, `
SELECT id, name, sku, category, quantity, price, cost, description, created_at, updated_at
FROM inventory WHERE id = ?`, itemID.String()).
		Scan(&r.ID, &r.Name, &r.SKU, &r.Category, &r.Quantity, &r.Price,
			&r.Cost, &r.Description, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("stockroom: get item: %w", err)
	}
	item, err := itemFromRow(&r)
	if err != nil {
		return nil, fmt.Errorf("stockroom: get item: %w", err)
	}
	return item, nil
}

func (s *Store) UpdateItem(ctx context.Context, itemID id.ItemID, patch *inventory.Patch) (bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM inventory WHERE id = ?`, itemID.String()).Scan(&exists)
	if err != nil {
		if isNoRows(err) {
			return false, fmt.Errorf("item %s: %w", itemID, store.ErrNotFound)
		}
		return false, fmt.Errorf("stockroom: update item: %w", err)
	}

	sets := []string{"updated_at = ?"}
	args := []any{formatTime(now())}
	if patch != nil {
		if patch.Name != nil {
			sets = append(sets, "name = ?")
			args = append(args, *patch.Name)
		}
		if patch.SKU != nil {
			sets = append(sets, "sku = ?")
			args = append(args, *patch.SKU)
		}
		if patch.Category != nil {
			sets = append(sets, "category = ?")
			args = append(args, *patch.Category)
		}
		if patch.Quantity != nil {
			sets = append(sets, "quantity = ?")
			args = append(args, *patch.Quantity)
		}
		if patch.Price != nil {
			sets = append(sets, "price = ?")
			args = append(args, *patch.Price)
		}
		if patch.Cost != nil {
			sets = append(sets, "cost = ?")
			args = append(args, *patch.Cost)
		}
		if patch.Description != nil {
			sets = append(sets, "description = ?")
			args = append(args, nullString(*patch.Description))
		}
	}
	args = append(args, itemID.String())

	res, err := s.db.ExecContext(ctx,
		"UPDATE inventory SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return false, fmt.Errorf("stockroom: update item: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("stockroom: update item: %w", err)
	}
	return rows == 1, nil
}

func (s *Store) DeleteItem(ctx context.Context, itemID id.ItemID) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM inventory WHERE id = ?`, itemID.String())
	if err != nil {
		return false, fmt.Errorf("stockroom: delete item: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("stockroom: delete item: %w", err)
	}
	return rows > 0, nil
}

func (s *Store) ListItems(ctx context.Context) ([]*inventory.Item, error) {
	return s.listItems(ctx, `
SELECT id, name, sku, category, quantity, price, cost, description, created_at, updated_at
FROM inventory ORDER BY created_at ASC`)
}

func (s *Store) ListItemsByCategory(ctx context.Context, category string) ([]*inventory.Item, error) {
	return s.listItems(ctx, `
SELECT id, name, sku, category, quantity, price, cost, description, created_at, updated_at
FROM inventory WHERE category = ? ORDER BY created_at ASC`, category)
}

func (s *Store) ListLowStockItems(ctx context.Context, threshold int) ([]*inventory.Item, error) {
	return s.listItems(ctx, `
SELECT id, name, sku, category, quantity, price, cost, description, created_at, updated_at
FROM inventory WHERE quantity < ? ORDER BY created_at ASC`, threshold)
}

func (s *Store) listItems(ctx context.Context, query string, args ...any) ([]*inventory.Item, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("stockroom: list items: %w", err)
	}
	defer rows.Close()

	items := []*inventory.Item{}
	for rows.Next() {
		var r itemRow
		if err := rows.Scan(&r.ID, &r.Name, &r.SKU, &r.Category, &r.Quantity,
			&r.Price, &r.Cost, &r.Description, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("stockroom: list items: %w", err)
		}
		item, err := itemFromRow(&r)
		if err != nil {
			return nil, fmt.Errorf("stockroom: list items: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("stockroom: list items: %w", err)
	}
	return items, nil
}

// ──────────────────────────────────────────────────
// Order operations
// ──────────────────────────────────────────────────

func (s *Store) CreateOrder(ctx context.Context, o *order.Order) (id.OrderID, error) {
	orderID := id.NewOrderID()
	t := now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return id.Nil, fmt.Errorf("stockroom: create order: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
INSERT INTO orders (id, customer_id, customer_name, customer_email, subtotal, tax, total, status, payment_status, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		orderID.String(), nullString(o.CustomerID), o.CustomerName, nullString(o.CustomerEmail),
		o.Subtotal, o.Tax, o.Total, string(o.Status), string(o.PaymentStatus),
		formatTime(t), formatTime(t))
	if err != nil {
		return id.Nil, fmt.Errorf("stockroom: create order: %w", err)
	}

	// Lines go in one at a time, in submission order. Insertion order is
	// the display order; reads sort by rowid to reproduce it.
	for i := range o.Items {
		lineID := id.NewLineID()
		line := &o.Items[i]
		_, err = tx.ExecContext(ctx, `
INSERT INTO order_items (id, order_id, product_id, product_name, quantity, price, total)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
			lineID.String(), orderID.String(), line.ProductID, line.ProductName,
			line.Quantity, line.Price, line.Total)
		if err != nil {
			return id.Nil, fmt.Errorf("stockroom: create order line: %w", err)
		}
		line.ID = lineID
	}

	if err := tx.Commit(); err != nil {
		return id.Nil, fmt.Errorf("stockroom: create order: %w", err)
	}
	o.ID = orderID
	o.CreatedAt = t
	o.UpdatedAt = t
	return orderID, nil
}

func (s *Store) GetOrder(ctx context.Context, orderID id.OrderID) (*order.Order, error) {
	var r orderRow
	err := s.db.QueryRowContext(ctx, `
SELECT id, customer_id, customer_name, customer_email, subtotal, tax, total, status, payment_status, created_at, updated_at
FROM orders WHERE id = ?`, orderID.String()).
		Scan(&r.ID, &r.CustomerID, &r.CustomerName, &r.CustomerEmail, &r.Subtotal,
			&r.Tax, &r.Total, &r.Status, &r.PaymentStatus, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("stockroom: get order: %w", err)
	}
	o, err := orderFromRow(&r)
	if err != nil {
		return nil, fmt.Errorf("stockroom: get order: %w", err)
	}
	lines, err := s.orderLines(ctx, []string{r.ID})
	if err != nil {
		return nil, err
	}
	o.Items = lines[r.ID]
	if o.Items == nil {
		o.Items = []order.OrderItem{}
	}
	return o, nil
}

func (s *Store) UpdateOrder(ctx context.Context, orderID id.OrderID, patch *order.Patch) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("stockroom: update order: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM orders WHERE id = ?`, orderID.String()).Scan(&exists)
	if err != nil {
		if isNoRows(err) {
			return false, fmt.Errorf("order %s: %w", orderID, store.ErrNotFound)
		}
		return false, fmt.Errorf("stockroom: update order: %w", err)
	}

	sets := []string{"updated_at = ?"}
	args := []any{formatTime(now())}
	if patch != nil {
		if patch.CustomerID != nil {
			sets = append(sets, "customer_id = ?")
			args = append(args, nullString(*patch.CustomerID))
		}
		if patch.CustomerName != nil {
			sets = append(sets, "customer_name = ?")
			args = append(args, *patch.CustomerName)
		}
		if patch.CustomerEmail != nil {
			sets = append(sets, "customer_email = ?")
			args = append(args, nullString(*patch.CustomerEmail))
		}
		if patch.Subtotal != nil {
			sets = append(sets, "subtotal = ?")
			args = append(args, *patch.Subtotal)
		}
		if patch.Tax != nil {
			sets = append(sets, "tax = ?")
			args = append(args, *patch.Tax)
		}
		if patch.Total != nil {
			sets = append(sets, "total = ?")
			args = append(args, *patch.Total)
		}
		if patch.Status != nil {
			sets = append(sets, "status = ?")
			args = append(args, string(*patch.Status))
		}
		if patch.PaymentStatus != nil {
			sets = append(sets, "payment_status = ?")
			args = append(args, string(*patch.PaymentStatus))
		}
	}
	args = append(args, orderID.String())

	res, err := tx.ExecContext(ctx,
		"UPDATE orders SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return false, fmt.Errorf("stockroom: update order: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("stockroom: update order: %w", err)
	}

	// A new line sequence replaces the old one wholesale. No diffing.
	if patch != nil && patch.Items != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = ?`, orderID.String()); err != nil {
			return false, fmt.Errorf("stockroom: update order lines: %w", err)
		}
		for i := range patch.Items {
			lineID := id.NewLineID()
			line := &patch.Items[i]
			_, err = tx.ExecContext(ctx, `
INSERT INTO order_items (id, order_id, product_id, product_name, quantity, price, total)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
				lineID.String(), orderID.String(), line.ProductID, line.ProductName,
				line.Quantity, line.Price, line.Total)
			if err != nil {
				return false, fmt.Errorf("stockroom: update order lines: %w", err)
			}
			line.ID = lineID
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("stockroom: update order: %w", err)
	}
	return rows == 1, nil
}

func (s *Store) DeleteOrder(ctx context.Context, orderID id.OrderID) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("stockroom: delete order: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Children first, then the parent row.
	if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = ?`, orderID.String()); err != nil {
		return false, fmt.Errorf("stockroom: delete order lines: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, orderID.String())
	if err != nil {
		return false, fmt.Errorf("stockroom: delete order: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("stockroom: delete order: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("stockroom: delete order: %w", err)
	}
	return rows > 0, nil
}

func (s *Store) ListOrders(ctx context.Context) ([]*order.Order, error) {
	return s.listOrders(ctx, `
SELECT id, customer_id, customer_name, customer_email, subtotal, tax, total, status, payment_status, created_at, updated_at
FROM orders ORDER BY created_at ASC`)
}

func (s *Store) ListRecentOrders(ctx context.Context, limit int) ([]*order.Order, error) {
	return s.listOrders(ctx, `
SELECT id, customer_id, customer_name, customer_email, subtotal, tax, total, status, payment_status, created_at, updated_at
FROM orders ORDER BY created_at DESC LIMIT ?`, limit)
}

func (s *Store) ListOrdersByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	return s.listOrders(ctx, `
SELECT id, customer_id, customer_name, customer_email, subtotal, tax, total, status, payment_status, created_at, updated_at
FROM orders WHERE status = ? ORDER BY created_at ASC`, string(status))
}

func (s *Store) listOrders(ctx context.Context, query string, args ...any) ([]*order.Order, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("stockroom: list orders: %w", err)
	}
	defer rows.Close()

	orders := []*order.Order{}
	orderIDs := []string{}
	for rows.Next() {
		var r orderRow
		if err := rows.Scan(&r.ID, &r.CustomerID, &r.CustomerName, &r.CustomerEmail,
			&r.Subtotal, &r.Tax, &r.Total, &r.Status, &r.PaymentStatus,
			&r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("stockroom: list orders: %w", err)
		}
		o, err := orderFromRow(&r)
		if err != nil {
			return nil, fmt.Errorf("stockroom: list orders: %w", err)
		}
		orders = append(orders, o)
		orderIDs = append(orderIDs, r.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("stockroom: list orders: %w", err)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	lines, err := s.orderLines(ctx, orderIDs)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		if ls := lines[o.ID.String()]; ls != nil {
			o.Items = ls
		}
	}
	return orders, nil
}

// orderLines fetches the line items for a set of orders with one IN query
// and groups them by order, preserving insertion order within each order.
func (s *Store) orderLines(ctx context.Context, orderIDs []string) (map[string][]order.OrderItem, error) {
	placeholders := strings.Repeat("?, ", len(orderIDs))
	placeholders = strings.TrimSuffix(placeholders, ", ")
	args := make([]any, len(orderIDs))
	for i, oid := range orderIDs {
		args[i] = oid
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT id, order_id, product_id, product_name, quantity, price, total
FROM order_items WHERE order_id IN (`+placeholders+`) ORDER BY order_id, rowid`, args...)
	if err != nil {
		return nil, fmt.Errorf("stockroom: list order lines: %w", err)
	}
	defer rows.Close()

	lines := make(map[string][]order.OrderItem, len(orderIDs))
	for rows.Next() {
		var r orderItemRow
		if err := rows.Scan(&r.ID, &r.OrderID, &r.ProductID, &r.ProductName,
			&r.Quantity, &r.Price, &r.Total); err != nil {
			return nil, fmt.Errorf("stockroom: list order lines: %w", err)
		}
		lines[r.OrderID] = append(lines[r.OrderID], orderItemFromRow(&r))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("stockroom: list order lines: %w", err)
	}
	return lines, nil
}
