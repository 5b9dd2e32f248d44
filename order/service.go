package order

import (
	"context"
	"log/slog"
	"sync"

	"github.com/stockroomhq/stockroom/id"
)

// ResolveFunc yields the active order store, triggering backend selection
// if it has not happened yet.
type ResolveFunc func(ctx context.Context) (Store, error)

// Service is the order façade. It resolves the active backend once, caches
// it, and delegates every operation to it. Errors from the store propagate
// unchanged; the service only logs them.
type Service struct {
	resolve ResolveFunc
	logger  *slog.Logger

	mu    sync.Mutex
	store Store
}

// NewService creates an order service over the given resolver.
func NewService(resolve ResolveFunc, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{resolve: resolve, logger: logger}
}

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

// Orders returns all orders.
func (s *Service) Orders(ctx context.Context) ([]*Order, error) {
	st, err := s.backend(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := st.ListOrders(ctx)
	if err != nil {
		s.logger.Error("list orders", "error", err)
		return nil, err
	}
	return orders, nil
}

// Order returns one order, or nil if it does not exist.
func (s *Service) Order(ctx context.Context, orderID id.OrderID) (*Order, error) {
	st, err := s.backend(ctx)
	if err != nil {
		return nil, err
	}
	o, err := st.GetOrder(ctx, orderID)
	if err != nil {
		s.logger.Error("get order", "id", orderID.String(), "error", err)
		return nil, err
	}
	return o, nil
}

// AddOrder persists a new order and returns its assigned ID.
func (s *Service) AddOrder(ctx context.Context, o *Order) (id.OrderID, error) {
	st, err := s.backend(ctx)
	if err != nil {
		return id.Nil, err
	}
	orderID, err := st.CreateOrder(ctx, o)
	if err != nil {
		s.logger.Error("add order", "customer", o.CustomerName, "error", err)
		return id.Nil, err
	}
	return orderID, nil
}

// UpdateOrder applies a partial update to an order.
func (s *Service) UpdateOrder(ctx context.Context, orderID id.OrderID, patch *Patch) (bool, error) {
	st, err := s.backend(ctx)
	if err != nil {
		return false, err
	}
	ok, err := st.UpdateOrder(ctx, orderID, patch)
	if err != nil {
		s.logger.Error("update order", "id", orderID.String(), "error", err)
		return false, err
	}
	return ok, nil
}

// DeleteOrder removes an order and its line items.
func (s *Service) DeleteOrder(ctx context.Context, orderID id.OrderID) (bool, error) {
	st, err := s.backend(ctx)
	if err != nil {
		return false, err
	}
	ok, err := st.DeleteOrder(ctx, orderID)
	if err != nil {
		s.logger.Error("delete order", "id", orderID.String(), "error", err)
		return false, err
	}
	return ok, nil
}

// RecentOrders returns up to limit orders, newest first.
// A limit <= 0 uses DefaultRecentLimit.
func (s *Service) RecentOrders(ctx context.Context, limit int) ([]*Order, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	st, err := s.backend(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := st.ListRecentOrders(ctx, limit)
	if err != nil {
		s.logger.Error("list recent orders", "limit", limit, "error", err)
		return nil, err
	}
	return orders, nil
}

// OrdersByStatus returns orders with the given status.
func (s *Service) OrdersByStatus(ctx context.Context, status Status) ([]*Order, error) {
	st, err := s.backend(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := st.ListOrdersByStatus(ctx, status)
	if err != nil {
		s.logger.Error("list orders by status", "status", string(status), "error", err)
		return nil, err
	}
	return orders, nil
}
