// Package inventory defines the inventory item entity, its store interface,
// and the service façade used by callers.
package inventory

import (
	"time"

	"github.com/stockroomhq/stockroom/id"
)

// Item represents a stocked product.
type Item struct {
	ID          id.ItemID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	SKU         string    `json:"sku" db:"sku"`
	Category    string    `json:"category" db:"category"`
	Quantity    int       `json:"quantity" db:"quantity"`
	Price       float64   `json:"price" db:"price"`
	Cost        float64   `json:"cost" db:"cost"`
	Description string    `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Patch describes a partial update to an item. Nil fields are left untouched.
type Patch struct {
	Name        *string  `json:"name,omitempty"`
	SKU         *string  `json:"sku,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Quantity    *int     `json:"quantity,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Cost        *float64 `json:"cost,omitempty"`
	Description *string  `json:"description,omitempty"`
}

// IsZero reports whether the patch carries no changes.
func (p *Patch) IsZero() bool {
	return p == nil || (p.Name == nil && p.SKU == nil && p.Category == nil &&
		p.Quantity == nil && p.Price == nil && p.Cost == nil && p.Description == nil)
}

// DefaultLowStockThreshold is the quantity below which an item counts as
// low stock when the caller does not supply a threshold.
const DefaultLowStockThreshold = 10
