// Package cache holds per-key state in memory for a limited time.
//
// The services keep one comment forest per post and one chat store per user
// here. An entry's lifetime is refreshed on every write, so a busy thread
// stays warm and an idle one is dropped and rebuilt from the database on the
// next request.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLCache is a concurrency-safe map whose entries expire ttl after their
// last write. Expired entries are never returned; a background sweep removes
// them from memory.
type TTLCache[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]entry[V]
	ttl     time.Duration
	now     func() time.Time

	stopCleanup chan struct{}
	closeOnce   sync.Once
}

// New creates a cache and starts its sweep goroutine. Call Close when done.
func New[K comparable, V any](ttl, cleanupInterval time.Duration) *TTLCache[K, V] {
	c := &TTLCache[K, V]{
		entries:     make(map[K]entry[V]),
		ttl:         ttl,
		now:         time.Now,
		stopCleanup: make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				c.evictExpired()
			case <-c.stopCleanup:
				return
			}
		}
	}()

	return c
}

// Get returns the value for key if present and not expired.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.getLocked(key)
}

// GetOrCreate returns the live value for key, or stores and returns the
// result of create. create runs under the write lock, so concurrent callers
// for the same key never build two values.
func (c *TTLCache[K, V]) GetOrCreate(key K, create func() V) V {
	if v, ok := c.Get(key); ok {
		return v
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.getLocked(key); ok {
		return v
	}
	v := create()
	c.setLocked(key, v)
	return v
}

// Update replaces the value for key with the result of fn, atomically.
// fn gets the current value and whether it was present. If fn returns an
// error nothing is stored and the error is returned.
func (c *TTLCache[K, V]) Update(key K, fn func(current V, ok bool) (V, error)) (V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, ok := c.getLocked(key)
	next, err := fn(current, ok)
	if err != nil {
		var zero V
		return zero, err
	}
	c.setLocked(key, next)
	return next, nil
}

// Delete removes key.
func (c *TTLCache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

// Len counts stored entries, expired ones included until the next sweep.
func (c *TTLCache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Close stops the sweep goroutine. Safe to call more than once.
func (c *TTLCache[K, V]) Close() {
	c.closeOnce.Do(func() { close(c.stopCleanup) })
}

func (c *TTLCache[K, V]) getLocked(key K) (V, bool) {
	e, ok := c.entries[key]
	if !ok || c.now().After(e.expiresAt) {
		var zero V
		return zero, false
	}
	return e.value, true
}

func (c *TTLCache[K, V]) setLocked(key K, value V) {
	c.entries[key] = entry[V]{
		value:     value,
		expiresAt: c.now().Add(c.ttl),
	}
}

func (c *TTLCache[K, V]) evictExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}
