// Package cache layers a volatile in-memory tier over a persistent store
// and falls through to a caller-supplied generator on a double miss. Both
// tiers key on exact (subject, purpose) pairs; there is no fuzzy matching.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Key identifies one cached generation: the subject it was generated for
// and the purpose it serves (research, brand analysis, tagline, ...).
type Key struct {
	Subject string
	Purpose string
}

func (k Key) String() string {
	return k.Purpose + ":" + k.Subject
}

// Provenance records which tier satisfied a request.
type Provenance string

const (
	FromVolatile     Provenance = "volatile-hit"
	FromPersistent   Provenance = "persistent-hit"
	FreshlyGenerated Provenance = "freshly-generated"
	Failed           Provenance = "failed"
)

// Entry is the result of one cache request, carrying the value together
// with where it came from.
type Entry struct {
	Value       string
	Provenance  Provenance
	GeneratedAt time.Time
}

// Store is the persistent tier. Fetch misses with (_, false, nil); a
// non-nil error also counts as a miss at the manager level.
type Store interface {
	Fetch(ctx context.Context, key Key) (value string, ok bool, err error)
	Persist(ctx context.Context, key Key, value string) error
}

// Generator produces a fresh value for a key on a double miss.
type Generator func(ctx context.Context) (string, error)

type cached struct {
	value       string
	generatedAt time.Time
}

type pending struct {
	entry Entry
	err   error
	done  chan struct{}
}

// Manager is the tiered cache. Concurrent requests for the same key while
// a generation is in flight join that generation instead of starting
// their own.
type Manager struct {
	volatile *Volatile[Key, cached]
	store    Store
	logger   *log.Logger

	pmu      sync.Mutex
	inflight map[Key]*pending
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger replaces the default logger.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithExpiry sets the volatile tier's strong-hold window.
func WithExpiry(d time.Duration) Option {
	return func(m *Manager) { m.volatile.Expiry(d) }
}

// NewManager builds a Manager over the given persistent store. A nil store
// disables the persistent tier entirely.
func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		volatile: NewVolatile[Key, cached](time.Hour),
		store:    store,
		logger:   log.Default(),
		inflight: make(map[Key]*pending),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// GetOrGenerate resolves key through the tiers in order: volatile,
// persistent, then gen. forceFresh skips both lookup tiers but still
// writes the result back to them. A persistent-tier read error is logged
// and treated as a miss; the generator runs at most once per call and is
// never retried here.
func (m *Manager) GetOrGenerate(ctx context.Context, key Key, gen Generator, forceFresh bool) (Entry, error) {
	if !forceFresh {
		if c, ok := m.volatile.Lookup(key); ok {
			return Entry{Value: c.value, Provenance: FromVolatile, GeneratedAt: c.generatedAt}, nil
		}

		if m.store != nil {
			value, ok, err := m.store.Fetch(ctx, key)
			if err != nil {
				m.logger.Error("persistent tier read failed, treating as miss", "key", key, "err", err)
			} else if ok {
				c := cached{value: value, generatedAt: time.Now()}
				m.volatile.Store(key, c)
				return Entry{Value: value, Provenance: FromPersistent, GeneratedAt: c.generatedAt}, nil
			}
		}
	}

	return m.generate(ctx, key, gen)
}

// Invalidate drops every volatile entry. The persistent tier is
// append-only and never invalidated.
func (m *Manager) Invalidate() {
	m.volatile.Reset()
}

func (m *Manager) generate(ctx context.Context, key Key, gen Generator) (Entry, error) {
	m.pmu.Lock()
	if p, ok := m.inflight[key]; ok {
		m.pmu.Unlock()
		select {
		case <-p.done:
			return p.entry, p.err
		case <-ctx.Done():
			return Entry{Provenance: Failed}, ctx.Err()
		}
	}
	p := &pending{done: make(chan struct{})}
	m.inflight[key] = p
	m.pmu.Unlock()

	p.entry, p.err = m.runGenerator(ctx, key, gen)

	m.pmu.Lock()
	delete(m.inflight, key)
	close(p.done)
	m.pmu.Unlock()

	return p.entry, p.err
}

func (m *Manager) runGenerator(ctx context.Context, key Key, gen Generator) (Entry, error) {
	value, err := gen(ctx)
	if err != nil {
		return Entry{Provenance: Failed}, err
	}

	now := time.Now()
	m.volatile.Store(key, cached{value: value, generatedAt: now})
	if m.store != nil {
		if err := m.store.Persist(ctx, key, value); err != nil {
			m.logger.Error("persistent tier write failed", "key", key, "err", err)
		}
	}
	return Entry{Value: value, Provenance: FreshlyGenerated, GeneratedAt: now}, nil
}
