// Package store defines the aggregate persistence interface. Each subsystem
// (inventory, order) defines its own store interface; the composite Store
// composes them. Backends: SQLite, Mongo, Memory, and a degraded fallback.
package store

import (
	"context"
	"errors"

	"github.com/stockroomhq/stockroom/inventory"
	"github.com/stockroomhq/stockroom/order"
)

var (
	// ErrNotFound is returned when an update targets an entity that does
	// not exist. Single-entity reads return (nil, nil) instead, and deletes
	// report absence as false.
	ErrNotFound = errors.New("store: not found")

	// ErrBackendUnavailable is returned by the degraded fallback backend
	// for every operation, and by backends whose connection is gone.
	ErrBackendUnavailable = errors.New("store: backend unavailable")
)

// Store is the aggregate persistence interface. A single backend
// implements all subsystem stores.
type Store interface {
	inventory.Store
	order.Store

	// Migrate creates the backend's schema (tables or indexes).
	Migrate(ctx context.Context) error

	// Ping checks backend connectivity.
	Ping(ctx context.Context) error

	// Close closes the store connection.
	Close() error
}
