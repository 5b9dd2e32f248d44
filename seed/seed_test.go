package seed

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stockroomhq/stockroom/store/degraded"
	"github.com/stockroomhq/stockroom/store/memory"
)

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPopulate(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	written := Populate(ctx, s, quiet())
	if written != 8 {
		t.Fatalf("written = %d, want 8", written)
	}

	items, err := s.ListItems(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 5 {
		t.Fatalf("items = %d, want 5", len(items))
	}

	orders, err := s.ListOrders(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(orders) != 3 {
		t.Fatalf("orders = %d, want 3", len(orders))
	}
	for _, o := range orders {
		if len(o.Items) == 0 {
			t.Fatalf("order %s has no lines", o.CustomerName)
		}
	}
}

func TestPopulateToleratesFailures(t *testing.T) {
	// Every insert fails against the degraded store; Populate must not
	// propagate errors, just report zero writes.
	written := Populate(context.Background(), degraded.New(), quiet())
	if written != 0 {
		t.Fatalf("written = %d, want 0", written)
	}
}
