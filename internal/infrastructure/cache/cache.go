package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultTTL is how long a cached catalog response stays valid
const DefaultTTL = 5 * time.Minute

// entry pairs a cached value with the instant it was stored
type entry[V any] struct {
	value    V
	storedAt time.Time
}

// Cache is a process-wide read-through memoizer with a fixed TTL. An entry
// is valid iff now - storedAt < TTL; expired entries are indistinguishable
// from absent ones and get refreshed on the next access, never proactively
// evicted. Concurrent lookups for the same key share one in-flight
// computation; distinct keys never wait on each other. Callers namespace
// keys as source:operation:id so catalogs cannot collide.
type Cache[V any] struct {
	ttl     time.Duration
	mutex   sync.RWMutex
	entries map[string]entry[V]
	group   singleflight.Group
	now     func() time.Time
}

// New creates a cache with the given TTL; zero or negative falls back to
// DefaultTTL.
func New[V any](ttl time.Duration) *Cache[V] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache[V]{
		ttl:     ttl,
		entries: make(map[string]entry[V]),
		now:     time.Now,
	}
}

// GetOrCompute returns the value cached under key while it is still valid,
// without invoking compute. Otherwise it runs compute, stores the result
// stamped with the current time, and returns it. A compute failure
// propagates to every caller waiting on that key and stores nothing; the
// next access computes again.
func (c *Cache[V]) GetOrCompute(ctx context.Context, key string, compute func(ctx context.Context) (V, error)) (V, error) {
	if value, ok := c.lookup(key); ok {
		return value, nil
	}

	result, err, _ := c.group.Do(key, func() (interface{}, error) {
		// A racing caller may have stored a fresh value between our miss
		// and winning the flight.
		if value, ok := c.lookup(key); ok {
			return value, nil
		}

		value, err := compute(ctx)
		if err != nil {
			return nil, err
		}

		c.store(key, value)
		return value, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}

	return result.(V), nil
}

func (c *Cache[V]) lookup(key string) (V, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	e, ok := c.entries[key]
	if !ok || c.now().Sub(e.storedAt) >= c.ttl {
		var zero V
		return zero, false
	}
	return e.value, true
}

func (c *Cache[V]) store(key string, value V) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[key] = entry[V]{value: value, storedAt: c.now()}
}
