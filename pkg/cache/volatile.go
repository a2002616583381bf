package cache

import (
	"sync"
	"sync/atomic"
	"time"
	"weak"
)

// Volatile is the in-memory exact-match tier. Each entry keeps a strong
// reference until its deadline passes, after which only the weak pointer
// remains and the runtime may reclaim the value at any time.
type Volatile[K comparable, V any] struct {
	entries map[K]*entry[V]
	mu      sync.RWMutex

	// ttl stores the strong-hold duration in nanoseconds.
	// <= 0 means infinite (never drop the strong reference).
	ttl atomic.Int64
}

type entry[V any] struct {
	w        weak.Pointer[V]
	strong   *V        // non-nil while within the strong-hold window
	deadline time.Time // zero => infinite
}

func NewVolatile[K comparable, V any](ttl time.Duration) *Volatile[K, V] {
	v := &Volatile[K, V]{entries: make(map[K]*entry[V])}
	v.Expiry(ttl)
	return v
}

// Expiry sets the strong-hold duration for future writes.
// d <= 0 keeps a permanent strong reference (infinite duration).
func (c *Volatile[K, V]) Expiry(d time.Duration) {
	if d <= 0 {
		c.ttl.Store(0)
		return
	}
	c.ttl.Store(int64(d))
}

// Lookup returns the cached value for k. A value whose strong-hold window
// elapsed can still hit while the weak pointer is live; once the runtime
// reclaims it the entry is removed and the lookup misses.
func (c *Volatile[K, V]) Lookup(k K) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[k]
	c.mu.RUnlock()
	if !ok {
		var zero V
		return zero, false
	}

	if !e.deadline.IsZero() && time.Now().After(e.deadline) {
		c.mu.Lock()
		// Re-check under write lock to avoid racing another dropper.
		if cur, ok := c.entries[k]; ok && cur == e && e.strong != nil && time.Now().After(e.deadline) {
			e.strong = nil
		}
		c.mu.Unlock()
	}

	if vp := e.w.Value(); vp != nil {
		return *vp, true
	}

	// The weak value is gone; remove the entry so the next write replaces it.
	c.mu.Lock()
	if cur, ok := c.entries[k]; ok && cur == e && e.w.Value() == nil {
		delete(c.entries, k)
	}
	c.mu.Unlock()

	var zero V
	return zero, false
}

// Store writes or replaces the value for k, starting a fresh strong-hold
// window.
func (c *Volatile[K, V]) Store(k K, val V) {
	// Allocate a dedicated heap cell so the weak pointer refers to a stable address.
	v := new(V)
	*v = val

	e := &entry[V]{w: weak.Make(v), strong: v}
	if d := time.Duration(c.ttl.Load()); d > 0 {
		e.deadline = time.Now().Add(d)
	}

	c.mu.Lock()
	c.entries[k] = e
	c.mu.Unlock()
}

// Reset drops every entry. In-flight lookups holding older entries finish
// against the values they already dereferenced.
func (c *Volatile[K, V]) Reset() {
	c.mu.Lock()
	c.entries = make(map[K]*entry[V])
	c.mu.Unlock()
}

// Len reports how many entries are currently tracked, including ones whose
// weak value may already be reclaimed.
func (c *Volatile[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
