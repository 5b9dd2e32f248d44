package inventory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/stockroomhq/stockroom/id"
)

// ResolveFunc yields the active inventory store, triggering backend
// selection if it has not happened yet.
type ResolveFunc func(ctx context.Context) (Store, error)

// Service is the inventory façade. It resolves the active backend once,
// caches it, and delegates every operation to it. Errors from the store
// propagate unchanged; the service only logs them.
type Service struct {
	resolve ResolveFunc
	logger  *slog.Logger

	mu    sync.Mutex
	store Store
}

// NewService creates an inventory service over the given resolver.
func NewService(resolve ResolveFunc, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{resolve: resolve, logger: logger}
}

// backend returns the cached store, resolving it on first use.
func (s *Service) backend(ctx context.Context) (Store, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store != nil {
		return s.store, nil
	}
	st, err := s.resolve(ctx)
	if err != nil {
		return nil, err
	}
	s.store = st
	return st, nil
}

// Items returns all inventory items.
func (s *Service) Items(ctx context.Context) ([]*Item, error) {
	st, err := s.backend(ctx)
	if err != nil {
		return nil, err
	}
	items, err := st.ListItems(ctx)
	if err != nil {
		s.logger.Error("list inventory items", "error", err)
		return nil, err
	}
	return items, nil
}

// Item returns one inventory item, or nil if it does not exist.
func (s *Service) Item(ctx context.Context, itemID id.ItemID) (*Item, error) {
	st, err := s.backend(ctx)
	if err != nil {
		return nil, err
	}
	item, err := st.GetItem(ctx, itemID)
	if err != nil {
		s.logger.Error("get inventory item", "id", itemID.String(), "error", err)
		return nil, err
	}
	return item, nil
}

// AddItem persists a new item and returns its assigned ID.
func (s *Service) AddItem(ctx context.Context, item *Item) (id.ItemID, error) {
	st, err := s.backend(ctx)
	if err != nil {
		return id.Nil, err
	}
	itemID, err := st.CreateItem(ctx, item)
	if err != nil {
		s.logger.Error("add inventory item", "name", item.Name, "error", err)
		return id.Nil, err
	}
	return itemID, nil
}

// UpdateItem applies a partial update to an item.
func (s *Service) UpdateItem(ctx context.Context, itemID id.ItemID, patch *Patch) (bool, error) {
	st, err := s.backend(ctx)
	if err != nil {
		return false, err
	}
	ok, err := st.UpdateItem(ctx, itemID, patch)
	if err != nil {
		s.logger.Error("update inventory item", "id", itemID.String(), "error", err)
		return false, err
	}
	return ok, nil
}

// DeleteItem removes an item.
func (s *Service) DeleteItem(ctx context.Context, itemID id.ItemID) (bool, error) {
	st, err := s.backend(ctx)
	if err != nil {
		return false, err
	}
	ok, err := st.DeleteItem(ctx, itemID)
	if err != nil {
		s.logger.Error("delete inventory item", "id", itemID.String(), "error", err)
		return false, err
	}
	return ok, nil
}

// ItemsByCategory returns items in the given category.
func (s *Service) ItemsByCategory(ctx context.Context, category string) ([]*Item, error) {
	st, err := s.backend(ctx)
	if err != nil {
		return nil, err
	}
	items, err := st.ListItemsByCategory(ctx, category)
	if err != nil {
		s.logger.Error("list inventory items by category", "category", category, "error", err)
		return nil, err
	}
	return items, nil
}

// LowStockItems returns items with quantity below threshold.
// A threshold <= 0 uses DefaultLowStockThreshold.
func (s *Service) LowStockItems(ctx context.Context, threshold int) ([]*Item, error) {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	st, err := s.backend(ctx)
	if err != nil {
		return nil, err
	}
	items, err := st.ListLowStockItems(ctx, threshold)
	if err != nil {
		s.logger.Error("list low stock items", "threshold", threshold, "error", err)
		return nil, err
	}
	return items, nil
}
