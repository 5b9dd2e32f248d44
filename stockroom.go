// Package stockroom provides a pluggable persistence layer for an
// inventory-and-accounting application. One of several storage backends
// (an embedded relational database, a remote document database, or a
// degraded in-memory fallback) is selected at startup by capability
// probing, and every backend implements the same composite store contract.
//
//	mgr := stockroom.NewManager(
//	    stockroom.WithConfig(cfg),
//	)
//	kind, err := mgr.Init(ctx)
//	items, err := mgr.Inventory().Items(ctx)
package stockroom

// BackendKind identifies which physical storage technology is active.
type BackendKind string

const (
	// BackendRelational is the embedded SQLite backend.
	BackendRelational BackendKind = "relational"

	// BackendDocument is the remote MongoDB backend. The degraded fallback
	// also reports this kind, since it stands in for the document backend.
	BackendDocument BackendKind = "document"
)
