package id

import (
	"testing"
)

func TestNewHasPrefix(t *testing.T) {
	itemID := NewItemID()
	if itemID.IsNil() {
		t.Fatal("expected non-nil ID")
	}
	if itemID.Prefix() != PrefixItem {
		t.Fatalf("prefix = %q, want %q", itemID.Prefix(), PrefixItem)
	}
}

func TestParseRoundtrip(t *testing.T) {
	orig := NewOrderID()
	parsed, err := Parse(orig.String())
	if err != nil {
		t.Fatal(err)
	}
	if parsed.String() != orig.String() {
		t.Fatalf("roundtrip mismatch: %s vs %s", parsed, orig)
	}
}

func TestParseWithPrefixRejectsMismatch(t *testing.T) {
	itemID := NewItemID()
	if _, err := ParseOrderID(itemID.String()); err == nil {
		t.Fatal("expected prefix mismatch error")
	}
}

func TestParseEmpty(t *testing.T) {
	if _, err := Parse(""); err == nil {
		t.Fatal("expected error for empty string")
	}
}

func TestScanAndValue(t *testing.T) {
	orig := NewUserID()
	v, err := orig.Value()
	if err != nil {
		t.Fatal(err)
	}

	var scanned ID
	if err := scanned.Scan(v); err != nil {
		t.Fatal(err)
	}
	if scanned.String() != orig.String() {
		t.Fatalf("scan mismatch: %s vs %s", scanned, orig)
	}

	var null ID
	if err := null.Scan(nil); err != nil {
		t.Fatal(err)
	}
	if !null.IsNil() {
		t.Fatal("expected Nil after scanning NULL")
	}

	nv, err := Nil.Value()
	if err != nil {
		t.Fatal(err)
	}
	if nv != nil {
		t.Fatalf("Nil.Value() = %v, want nil", nv)
	}
}
