package stockroom

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stockroomhq/stockroom/inventory"
	"github.com/stockroomhq/stockroom/store"
	"github.com/stockroomhq/stockroom/store/memory"
)

// fakeProbe reports fixed availability.
type fakeProbe struct {
	document   bool
	relational bool
}

func (p *fakeProbe) DocumentAvailable(context.Context) bool   { return p.document }
func (p *fakeProbe) RelationalAvailable(context.Context) bool { return p.relational }

// countingStore counts Migrate calls on top of a working memory store.
type countingStore struct {
	*memory.Store
	migrates *atomic.Int32
}

func (c *countingStore) Migrate(ctx context.Context) error {
	c.migrates.Add(1)
	return c.Store.Migrate(ctx)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestManager(t *testing.T, probe Probe, relational, document Opener) *Manager {
	t.Helper()
	m := NewManager(
		WithLogger(quietLogger()),
		WithProbe(probe),
		WithRelationalOpener(relational),
		WithDocumentOpener(document),
	)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func memoryOpener(calls *atomic.Int32, migrates *atomic.Int32) Opener {
	return func(context.Context, Config) (store.Store, error) {
		calls.Add(1)
		return &countingStore{Store: memory.New(), migrates: migrates}, nil
	}
}

func TestInitPrefersDocumentBackend(t *testing.T) {
	var relCalls, docCalls, migrates atomic.Int32
	m := newTestManager(t, &fakeProbe{document: true, relational: true},
		memoryOpener(&relCalls, &migrates), memoryOpener(&docCalls, &migrates))

	kind, err := m.Init(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if kind != BackendDocument {
		t.Fatalf("kind = %s, want document", kind)
	}
	if docCalls.Load() != 1 || relCalls.Load() != 0 {
		t.Fatalf("opener calls: doc=%d rel=%d", docCalls.Load(), relCalls.Load())
	}
	if m.Degraded() {
		t.Fatal("real backend should not report degraded")
	}
}

func TestInitFallsBackToRelational(t *testing.T) {
	var relCalls, docCalls, migrates atomic.Int32
	m := newTestManager(t, &fakeProbe{document: false, relational: true},
		memoryOpener(&relCalls, &migrates), memoryOpener(&docCalls, &migrates))

	kind, err := m.Init(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if kind != BackendRelational {
		t.Fatalf("kind = %s, want relational", kind)
	}
	if migrates.Load() != 1 {
		t.Fatalf("schema creation ran %d times, want 1", migrates.Load())
	}

	// Second call must be a no-op returning the same kind.
	kind2, err := m.Init(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if kind2 != kind {
		t.Fatalf("second Init returned %s, want %s", kind2, kind)
	}
	if relCalls.Load() != 1 || migrates.Load() != 1 {
		t.Fatalf("selection re-ran: opens=%d migrates=%d", relCalls.Load(), migrates.Load())
	}
}

func TestInitDegradedFallback(t *testing.T) {
	var relCalls, docCalls, migrates atomic.Int32
	m := newTestManager(t, &fakeProbe{},
		memoryOpener(&relCalls, &migrates), memoryOpener(&docCalls, &migrates))

	kind, err := m.Init(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	// The fallback stands in for the document backend.
	if kind != BackendDocument {
		t.Fatalf("kind = %s, want document", kind)
	}
	if !m.Degraded() {
		t.Fatal("expected degraded mode")
	}

	_, err = m.Inventory().Items(context.Background())
	if !errors.Is(err, store.ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}
}

func TestInitFailureDoesNotLatch(t *testing.T) {
	var attempts atomic.Int32
	boom := errors.New("boom")
	opener := func(context.Context, Config) (store.Store, error) {
		if attempts.Add(1) == 1 {
			return nil, boom
		}
		return memory.New(), nil
	}
	m := newTestManager(t, &fakeProbe{relational: true}, opener, nil)

	if _, err := m.Init(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected first Init to fail with boom, got %v", err)
	}

	kind, err := m.Init(context.Background())
	if err != nil {
		t.Fatalf("second Init should retry selection, got %v", err)
	}
	if kind != BackendRelational {
		t.Fatalf("kind = %s, want relational", kind)
	}
	if attempts.Load() != 2 {
		t.Fatalf("expected 2 open attempts, got %d", attempts.Load())
	}
}

func TestInitConcurrentCallersShareOneAttempt(t *testing.T) {
	var opens atomic.Int32
	opener := func(context.Context, Config) (store.Store, error) {
		opens.Add(1)
		time.Sleep(20 * time.Millisecond)
		return memory.New(), nil
	}
	m := newTestManager(t, &fakeProbe{relational: true}, opener, nil)

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.Init(context.Background()); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	if opens.Load() != 1 {
		t.Fatalf("selection ran %d times, want 1", opens.Load())
	}
}

func TestServicesDelegateToActiveBackend(t *testing.T) {
	var relCalls, docCalls, migrates atomic.Int32
	m := newTestManager(t, &fakeProbe{relational: true},
		memoryOpener(&relCalls, &migrates), memoryOpener(&docCalls, &migrates))

	ctx := context.Background()
	itemID, err := m.Inventory().AddItem(ctx, &inventory.Item{
		Name: "Laptop", SKU: "TECH-001", Category: "Electronics", Quantity: 15,
	})
	if err != nil {
		t.Fatal(err)
	}
	got, err := m.Inventory().Item(ctx, itemID)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.Name != "Laptop" {
		t.Fatalf("service roundtrip mismatch: %+v", got)
	}
	// The service triggers selection itself; no explicit Init was needed.
	if m.Kind() != BackendRelational {
		t.Fatalf("kind = %s, want relational", m.Kind())
	}
}
