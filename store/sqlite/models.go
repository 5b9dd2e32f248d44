package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/stockroomhq/stockroom/id"
	"github.com/stockroomhq/stockroom/inventory"
	"github.com/stockroomhq/stockroom/order"
)

// timeLayout is the on-disk timestamp representation. Nanoseconds are
// zero-padded so that lexicographic order on the column matches time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		// Older rows may carry second-precision stamps.
		t, err = time.Parse(time.RFC3339, s)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

// ──────────────────────────────────────────────────
// Inventory rows
// ──────────────────────────────────────────────────

type itemRow struct {
	ID          string
	Name        string
	SKU         string
	Category    string
	Quantity    int
	Price       float64
	Cost        float64
	Description sql.NullString
	CreatedAt   string
	UpdatedAt   string
}

func itemFromRow(r *itemRow) (*inventory.Item, error) {
	created, err := parseTime(r.CreatedAt)
	if err != nil {
		return nil, err
	}
	updated, err := parseTime(r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	itemID, _ := id.ParseItemID(r.ID) //nolint:errcheck // stored IDs are always valid
	return &inventory.Item{
		ID:          itemID,
		Name:        r.Name,
		SKU:         r.SKU,
		Category:    r.Category,
		Quantity:    r.Quantity,
		Price:       r.Price,
		Cost:        r.Cost,
		Description: r.Description.String,
		CreatedAt:   created,
		UpdatedAt:   updated,
	}, nil
}

// ──────────────────────────────────────────────────
// Order rows
// ──────────────────────────────────────────────────

type orderRow struct {
	ID            string
	CustomerID    sql.NullString
	CustomerName  string
	CustomerEmail sql.NullString
	Subtotal      float64
	Tax           float64
	Total         float64
	Status        string
	PaymentStatus string
	CreatedAt     string
	UpdatedAt     string
}

func orderFromRow(r *orderRow) (*order.Order, error) {
	created, err := parseTime(r.CreatedAt)
	if err != nil {
		return nil, err
	}
	updated, err := parseTime(r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	orderID, _ := id.ParseOrderID(r.ID) //nolint:errcheck // stored IDs are always valid
	return &order.Order{
		ID:            orderID,
		CustomerID:    r.CustomerID.String,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail.String,
		Items:         []order.OrderItem{},
		Subtotal:      r.Subtotal,
		Tax:           r.Tax,
		Total:         r.Total,
		Status:        order.Status(r.Status),
		PaymentStatus: order.PaymentStatus(r.PaymentStatus),
		CreatedAt:     created,
		UpdatedAt:     updated,
	}, nil
}

type orderItemRow struct {
	ID          string
	OrderID     string
	ProductID   string
	ProductName string
	Quantity    int
	Price       float64
	Total       float64
}

func orderItemFromRow(r *orderItemRow) order.OrderItem {
	lineID, _ := id.ParseLineID(r.ID) //nolint:errcheck // stored IDs are always valid
	return order.OrderItem{
		ID:          lineID,
		ProductID:   r.ProductID,
		ProductName: r.ProductName,
		Quantity:    r.Quantity,
		Price:       r.Price,
		Total:       r.Total,
	}
}

// nullString maps an empty string to SQL NULL for optional columns.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
