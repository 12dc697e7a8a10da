// Package cache provides an additive-only keyed cache for derived payloads.
//
// Once a key is populated its value is never replaced, so readers may share
// returned values without copying. Concurrent requests for a missing key run
// the computation once; the others wait for its result.
package cache

import (
	"context"
	"sync"
)

// Stats contains cache statistics.
type Stats struct {
	Hits     int64
	Misses   int64
	Computes int64
	Failures int64
	Size     int
	// TotalBytes is the sum of Config.SizeFunc over stored values.
	TotalBytes int64
}

// Config contains cache configuration options.
type Config[V any] struct {
	// SizeFunc estimates the byte size of a value for Stats.TotalBytes.
	// Nil counts every value as zero bytes.
	SizeFunc func(V) int64

	// OnStore is called once for every key when its value is stored.
	OnStore func(key any, value V)
}

// entry is a populated or in-flight value.
type entry[V any] struct {
	ready chan struct{}
	value V
	err   error
}

// Cache is a thread-safe, additive-only cache.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	config  Config[V]
	entries map[K]*entry[V]
	stats   Stats
}

// New creates an empty cache.
func New[K comparable, V any](config Config[V]) *Cache[K, V] {
	return &Cache[K, V]{
		config:  config,
		entries: make(map[K]*entry[V]),
	}
}

// Get retrieves a stored value. In-flight computations count as absent.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || !isReady(e) {
		c.stats.Misses++
		var zero V
		return zero, false
	}
	c.stats.Hits++
	return e.value, true
}

// Put stores value unless key is already present or being computed. It
// reports whether the value was stored.
func (c *Cache[K, V]) Put(key K, value V) bool {
	c.mu.Lock()
	if _, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return false
	}
	e := &entry[V]{ready: make(chan struct{}), value: value}
	close(e.ready)
	c.entries[key] = e
	c.stored(value)
	c.mu.Unlock()

	if c.config.OnStore != nil {
		c.config.OnStore(key, value)
	}
	return true
}

// GetOrCompute returns the stored value for key, computing it with fn on
// first request. A failed computation stores nothing, so a later call tries
// again. Waiting for another caller's computation stops when ctx is done.
func (c *Cache[K, V]) GetOrCompute(ctx context.Context, key K, fn func(context.Context) (V, error)) (V, error) {
	var zero V

	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		c.mu.Unlock()
		select {
		case <-e.ready:
		case <-ctx.Done():
			return zero, ctx.Err()
		}
		if e.err != nil {
			return zero, e.err
		}
		c.mu.Lock()
		c.stats.Hits++
		c.mu.Unlock()
		return e.value, nil
	}
	e := &entry[V]{ready: make(chan struct{})}
	c.entries[key] = e
	c.stats.Misses++
	c.mu.Unlock()

	value, err := fn(ctx)

	c.mu.Lock()
	if err != nil {
		e.err = err
		c.stats.Failures++
		if c.entries[key] == e {
			delete(c.entries, key)
		}
		close(e.ready)
		c.mu.Unlock()
		return zero, err
	}
	e.value = value
	close(e.ready)
	c.stats.Computes++
	c.stored(value)
	c.mu.Unlock()

	if c.config.OnStore != nil {
		c.config.OnStore(key, value)
	}
	return value, nil
}

// Clear removes every entry. It is meant for whole-document resets; values
// already handed out stay valid for their holders.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*entry[V])
	c.stats.Size = 0
	c.stats.TotalBytes = 0
}

// Len returns the number of stored entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats.Size
}

// Stats returns cache statistics.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// stored updates size accounting; c.mu must be held.
func (c *Cache[K, V]) stored(value V) {
	c.stats.Size++
	if c.config.SizeFunc != nil {
		c.stats.TotalBytes += c.config.SizeFunc(value)
	}
}

func isReady[V any](e *entry[V]) bool {
	select {
	case <-e.ready:
		return e.err == nil
	default:
		return false
	}
}
