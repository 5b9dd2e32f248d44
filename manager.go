package stockroom

import (
	"context"
	"log/slog"
	"sync"

	"github.com/stockroomhq/stockroom/inventory"
	"github.com/stockroomhq/stockroom/order"
	"github.com/stockroomhq/stockroom/store"
	"github.com/stockroomhq/stockroom/store/degraded"
	"github.com/stockroomhq/stockroom/store/mongo"
	"github.com/stockroomhq/stockroom/store/sqlite"
)

// Opener constructs a backend store from the configuration.
type Opener func(ctx context.Context, cfg Config) (store.Store, error)

// Manager owns backend selection and the active store handle. It replaces
// what would otherwise be process-wide mutable state: construct one Manager
// at startup and hand it to every consumer.
type Manager struct {
	cfg            Config
	logger         *slog.Logger
	probe          Probe
	openRelational Opener
	openDocument   Opener

	mu       sync.Mutex
	inflight chan struct{}
	store    store.Store
	kind     BackendKind
	degraded bool

	inventory *inventory.Service
	orders    *order.Service
}

// NewManager creates a storage manager with the given options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		cfg:    DefaultConfig(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.probe == nil {
		m.probe = &defaultProbe{cfg: m.cfg, logger: m.logger}
	}
	if m.openRelational == nil {
		m.openRelational = func(_ context.Context, cfg Config) (store.Store, error) {
			return sqlite.Open(cfg.SQLitePath)
		}
	}
	if m.openDocument == nil {
		m.openDocument = func(_ context.Context, cfg Config) (store.Store, error) {
			return mongo.Open(cfg.MongoURI, cfg.MongoDatabase)
		}
	}

	m.inventory = inventory.NewService(func(ctx context.Context) (inventory.Store, error) {
		st, err := m.ensure(ctx)
		if err != nil {
			return nil, err
		}
		return st, nil
	}, m.logger)
	m.orders = order.NewService(func(ctx context.Context) (order.Store, error) {
		st, err := m.ensure(ctx)
		if err != nil {
			return nil, err
		}
		return st, nil
	}, m.logger)

	return m
}

// Init selects a backend, initializes it, and returns its kind. It is
// idempotent: after the first success every call returns the same kind
// without re-running selection. Concurrent callers share one in-flight
// attempt. A failed attempt does not latch; the next call starts over.
func (m *Manager) Init(ctx context.Context) (BackendKind, error) {
	for {
		m.mu.Lock()
		if m.store != nil {
			kind := m.kind
			m.mu.Unlock()
			return kind, nil
		}
		if m.inflight == nil {
			break
		}
		ch := m.inflight
		m.mu.Unlock()
		select {
		case <-ch:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	ch := make(chan struct{})
	m.inflight = ch
	m.mu.Unlock()

	st, kind, deg, err := m.selectBackend(ctx)

	m.mu.Lock()
	m.inflight = nil
	if err == nil {
		m.store = st
		m.kind = kind
		m.degraded = deg
	}
	m.mu.Unlock()
	close(ch)

	if err != nil {
		return "", err
	}
	return kind, nil
}

// selectBackend runs the probes in preference order: document first, then
// relational, then the degraded fallback. Initialization errors of a chosen
// backend propagate; no other backend is tried after one is chosen.
func (m *Manager) selectBackend(ctx context.Context) (store.Store, BackendKind, bool, error) {
	if m.probe.DocumentAvailable(ctx) {
		st, err := m.openDocument(ctx, m.cfg)
		if err != nil {
			return nil, "", false, err
		}
		if err := st.Migrate(ctx); err != nil {
			_ = st.Close()
			return nil, "", false, err
		}
		m.logger.Info("storage backend selected", "kind", BackendDocument)
		return st, BackendDocument, false, nil
	}

	if m.probe.RelationalAvailable(ctx) {
		st, err := m.openRelational(ctx, m.cfg)
		if err != nil {
			return nil, "", false, err
		}
		if err := st.Migrate(ctx); err != nil {
			_ = st.Close()
			return nil, "", false, err
		}
		m.logger.Info("storage backend selected", "kind", BackendRelational)
		return st, BackendRelational, false, nil
	}

	// Last resort. Reports the document kind but never connects; every
	// operation fails with store.ErrBackendUnavailable.
	m.logger.Warn("no storage backend available, entering degraded mode")
	return degraded.New(), BackendDocument, true, nil
}

// ensure makes sure a backend is active and returns it.
func (m *Manager) ensure(ctx context.Context) (store.Store, error) {
	if _, err := m.Init(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store, nil
}

// Store returns the active store, or nil before a successful Init.
func (m *Manager) Store() store.Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store
}

// Kind returns the active backend kind. Empty before a successful Init.
func (m *Manager) Kind() BackendKind {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.kind
}

// Degraded reports whether the fallback backend is active.
func (m *Manager) Degraded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.degraded
}

// Inventory returns the inventory service façade.
func (m *Manager) Inventory() *inventory.Service { return m.inventory }

// Orders returns the order service façade.
func (m *Manager) Orders() *order.Service { return m.orders }

// Close closes the active store, if any.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.store == nil {
		return nil
	}
	err := m.store.Close()
	m.store = nil
	m.kind = ""
	m.degraded = false
	return err
}
