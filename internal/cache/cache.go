// Package cache provides the concurrent keyed caches the menu engine hangs
// compiled definitions and derived render metadata on. GetOrCreate guarantees
// at most one factory run per key under concurrent first access, the same
// per-key once discipline the ingest layer uses for lazy directory scans.
package cache

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Stats is a snapshot of one cache space.
type Stats struct {
	Count int
	Keys  []string
}

// StatsAll aggregates both cache spaces.
type StatsAll struct {
	Definitions Stats
	Derived     Stats
}

type entry[V any] struct {
	once      sync.Once
	done      atomic.Bool // set after the once completes
	val       V
	err       error
	expiresAt time.Time // zero means no expiry
}

// Cache is a concurrent map with atomic get-or-create semantics. The zero
// value is not usable; construct with New.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]*entry[V]
	ttl     time.Duration // 0 disables expiry
	now     func() time.Time
}

func New[V any]() *Cache[V] {
	return &Cache[V]{entries: make(map[string]*entry[V]), now: time.Now}
}

// NewExpiring builds a cache whose entries lapse ttl after construction.
// Lapsed entries behave as absent and are reaped by Sweep.
func NewExpiring[V any](ttl time.Duration) *Cache[V] {
	c := New[V]()
	c.ttl = ttl
	return c
}

func (c *Cache[V]) live(e *entry[V]) bool {
	return e.expiresAt.IsZero() || c.now().Before(e.expiresAt)
}

// GetOrCreate returns the value for name, running factory to build it if
// absent. Concurrent callers for the same key all observe the single value
// produced by exactly one factory invocation. A factory error is returned to
// every waiter of that construction but is not cached: the next GetOrCreate
// retries.
func (c *Cache[V]) GetOrCreate(name string, factory func() (V, error)) (V, error) {
	c.mu.Lock()
	e, ok := c.entries[name]
	if ok && !c.live(e) {
		ok = false
	}
	if !ok {
		e = &entry[V]{}
		if c.ttl > 0 {
			e.expiresAt = c.now().Add(c.ttl)
		}
		c.entries[name] = e
	}
	c.mu.Unlock()

	e.once.Do(func() {
		e.val, e.err = factory()
		e.done.Store(true)
	})
	if e.err != nil {
		c.mu.Lock()
		if c.entries[name] == e {
			delete(c.entries, name)
		}
		c.mu.Unlock()
		var zero V
		return zero, e.err
	}
	return e.val, nil
}

// Get returns the cached value without constructing. A value still being
// built by a concurrent GetOrCreate is not yet visible here.
func (c *Cache[V]) Get(name string) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[name]
	c.mu.RUnlock()
	var zero V
	if !ok || !c.live(e) || !e.done.Load() || e.err != nil {
		return zero, false
	}
	return e.val, true
}

// Has reports whether name holds a live entry.
func (c *Cache[V]) Has(name string) bool {
	_, ok := c.Get(name)
	return ok
}

// Remove drops name and returns its value. Removing an absent key is a
// no-op returning ok=false.
func (c *Cache[V]) Remove(name string) (V, bool) {
	c.mu.Lock()
	e, ok := c.entries[name]
	delete(c.entries, name)
	c.mu.Unlock()
	var zero V
	if !ok || !c.live(e) || !e.done.Load() || e.err != nil {
		return zero, false
	}
	return e.val, true
}

// Clear drops every entry. A subsequent GetOrCreate always re-runs the
// factory.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]*entry[V])
	c.mu.Unlock()
}

// Sweep reaps lapsed entries and returns how many it removed.
func (c *Cache[V]) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k, e := range c.entries {
		if !c.live(e) {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

// Stats snapshots the live keys, sorted.
func (c *Cache[V]) Stats() Stats {
	c.mu.RLock()
	keys := make([]string, 0, len(c.entries))
	for k, e := range c.entries {
		if c.live(e) {
			keys = append(keys, k)
		}
	}
	c.mu.RUnlock()
	sort.Strings(keys)
	return Stats{Count: len(keys), Keys: keys}
}

// Spaces pairs the two independently clearable cache spaces of the engine:
// compiled menu definitions, and derived session-agnostic render metadata.
// A full reload clears both together so no render ever mixes old definitions
// with new metadata.
type Spaces[D, M any] struct {
	Definitions *Cache[D]
	Derived     *Cache[M]
}

func NewSpaces[D, M any](derivedTTL time.Duration) *Spaces[D, M] {
	return &Spaces[D, M]{
		Definitions: New[D](),
		Derived:     NewExpiring[M](derivedTTL),
	}
}

// ClearAll clears both spaces and sweeps the derived space.
func (s *Spaces[D, M]) ClearAll() {
	s.Definitions.Clear()
	s.Derived.Clear()
	s.Derived.Sweep()
}

// Invalidate drops one menu from both spaces, for targeted reloads of a
// single changed file.
func (s *Spaces[D, M]) Invalidate(name string) {
	s.Definitions.Remove(name)
	s.Derived.Remove(name)
}

func (s *Spaces[D, M]) Stats() StatsAll {
	return StatsAll{Definitions: s.Definitions.Stats(), Derived: s.Derived.Stats()}
}
