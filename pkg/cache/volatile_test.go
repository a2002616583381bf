package cache

import (
	"testing"
	"time"
)

func TestVolatileLookupMiss(t *testing.T) {
	c := NewVolatile[string, int](time.Hour)
	if _, ok := c.Lookup("absent"); ok {
		t.Fatal("expected a miss on an empty cache")
	}
}

func TestVolatileStoreAndLookup(t *testing.T) {
	c := NewVolatile[string, string](time.Hour)
	c.Store("k", "v")
	got, ok := c.Lookup("k")
	if !ok || got != "v" {
		t.Fatalf("Lookup = (%q, %v), want (\"v\", true)", got, ok)
	}
}

func TestVolatileOverwrite(t *testing.T) {
	c := NewVolatile[string, string](time.Hour)
	c.Store("k", "old")
	c.Store("k", "new")
	got, ok := c.Lookup("k")
	if !ok || got != "new" {
		t.Fatalf("Lookup = (%q, %v), want (\"new\", true)", got, ok)
	}
	if c.Len() != 1 {
		t.Fatalf("Len = %d, want 1", c.Len())
	}
}

func TestVolatileReset(t *testing.T) {
	c := NewVolatile[string, string](time.Hour)
	c.Store("a", "1")
	c.Store("b", "2")
	c.Reset()
	if c.Len() != 0 {
		t.Fatalf("Len after Reset = %d, want 0", c.Len())
	}
	if _, ok := c.Lookup("a"); ok {
		t.Fatal("expected a miss after Reset")
	}
}

func TestVolatileInfiniteExpiryKeepsStrongRef(t *testing.T) {
	c := NewVolatile[string, string](0)
	c.Store("k", "forever")
	// With an infinite window the entry keeps its strong reference, so
	// the value stays reachable regardless of collector activity.
	for range 3 {
		got, ok := c.Lookup("k")
		if !ok || got != "forever" {
			t.Fatalf("Lookup = (%q, %v), want (\"forever\", true)", got, ok)
		}
	}
}

func TestVolatileExpiredEntryStillServesWhileAlive(t *testing.T) {
	c := NewVolatile[string, string](time.Nanosecond)
	c.Store("k", "v")
	time.Sleep(time.Millisecond)
	// Past the strong-hold window the value survives only via the weak
	// pointer; a hit is still allowed as long as it has not been reclaimed.
	if got, ok := c.Lookup("k"); ok && got != "v" {
		t.Fatalf("a live weak value must keep its content, got %q", got)
	}
}
