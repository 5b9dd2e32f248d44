package inventory

import (
	"context"

	"github.com/stockroomhq/stockroom/id"
)

// Store defines persistence operations for inventory items.
type Store interface {
	// CreateItem persists a new item, assigning its ID and both timestamps.
	CreateItem(ctx context.Context, item *Item) (id.ItemID, error)

	// GetItem retrieves an item by ID. Returns (nil, nil) if absent.
	GetItem(ctx context.Context, itemID id.ItemID) (*Item, error)

	// UpdateItem applies the non-nil patch fields to an item and refreshes
	// its update timestamp. Returns store.ErrNotFound if the item is absent.
	// The bool reports whether exactly one row was affected.
	UpdateItem(ctx context.Context, itemID id.ItemID, patch *Patch) (bool, error)

	// DeleteItem removes an item by ID. Returns false, not an error, when
	// the item is absent.
	DeleteItem(ctx context.Context, itemID id.ItemID) (bool, error)

	// ListItems returns all items.
	ListItems(ctx context.Context) ([]*Item, error)

	// ListItemsByCategory returns items in the given category.
	ListItemsByCategory(ctx context.Context, category string) ([]*Item, error)

	// ListLowStockItems returns items with quantity strictly below threshold.
	ListLowStockItems(ctx context.Context, threshold int) ([]*Item, error)
}
