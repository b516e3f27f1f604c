// Package cache provides the in-process caches the client and auth layers
// put in front of remote lookups: a generic LRU with per-entry TTL, a
// presentation cache keyed by presentation id, and an OAuth token cache.
package cache

import (
	"container/list"
	"log/slog"
	"sync"
	"time"
)

var timeNowFunc = time.Now

// Metrics counts cache traffic since construction (or the last reset).
type Metrics struct {
	Hits        int64
	Misses      int64
	Evictions   int64
	Expirations int64
}

// HitRate returns the hit percentage, 0 when the cache saw no traffic.
func (m Metrics) HitRate() float64 {
	total := m.Hits + m.Misses
	if total == 0 {
		return 0
	}
	return float64(m.Hits) / float64(total) * 100
}

// Config holds LRU sizing.
type Config struct {
	// MaxEntries bounds the cache; 0 means unbounded.
	MaxEntries int
	// DefaultTTL applies to Set; SetWithTTL overrides it per entry
	// (default 5m).
	DefaultTTL time.Duration
	// Logger receives cache diagnostics. Defaults to slog.Default.
	Logger *slog.Logger
}

// DefaultConfig returns the general-purpose sizing: 1000 entries, 5 minutes.
func DefaultConfig() Config {
	return Config{
		MaxEntries: 1000,
		DefaultTTL: 5 * time.Minute,
		Logger:     slog.Default(),
	}
}

type entry[V any] struct {
	key       string
	value     V
	expiresAt time.Time
}

// LRU is a mutex-guarded LRU cache with per-entry expiry.
type LRU[V any] struct {
	cfg Config

	mu      sync.Mutex
	elems   map[string]*list.Element
	order   *list.List
	metrics Metrics
}

// New returns an empty LRU.
func New[V any](cfg Config) *LRU[V] {
	if cfg.DefaultTTL <= 0 {
		cfg.DefaultTTL = 5 * time.Minute
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &LRU[V]{
		cfg:   cfg,
		elems: make(map[string]*list.Element),
		order: list.New(),
	}
}

// Get returns the live entry for key and marks it most recently used.
// Expired entries count as misses and are dropped on the way out.
func (c *LRU[V]) Get(key string) (V, bool) {
	var zero V
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.elems[key]
	if !ok {
		c.metrics.Misses++
		return zero, false
	}
	e := elem.Value.(*entry[V])
	if timeNowFunc().After(e.expiresAt) {
		c.removeLocked(elem)
		c.metrics.Misses++
		c.metrics.Expirations++
		c.cfg.Logger.Debug("cache entry expired", slog.String("key", key))
		return zero, false
	}
	c.order.MoveToFront(elem)
	c.metrics.Hits++
	return e.value, true
}

// Set stores value under key with the default TTL.
func (c *LRU[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.cfg.DefaultTTL)
}

// SetWithTTL stores value under key, expiring after ttl.
func (c *LRU[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := timeNowFunc().Add(ttl)
	if elem, ok := c.elems[key]; ok {
		e := elem.Value.(*entry[V])
		e.value = value
		e.expiresAt = expiresAt
		c.order.MoveToFront(elem)
		return
	}
	if c.cfg.MaxEntries > 0 && c.order.Len() >= c.cfg.MaxEntries {
		c.evictOldestLocked()
	}
	c.elems[key] = c.order.PushFront(&entry[V]{key: key, value: value, expiresAt: expiresAt})
}

// Delete removes key, reporting whether it was present.
func (c *LRU[V]) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.elems[key]
	if !ok {
		return false
	}
	c.removeLocked(elem)
	return true
}

// Clear drops every entry. Metrics keep counting.
func (c *LRU[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.elems = make(map[string]*list.Element)
	c.order = list.New()
}

// Len returns the number of entries, counting expired ones not yet dropped.
func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.elems)
}

// Metrics returns a snapshot of the traffic counters.
func (c *LRU[V]) Metrics() Metrics {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.metrics
}

func (c *LRU[V]) evictOldestLocked() {
	elem := c.order.Back()
	if elem == nil {
		return
	}
	e := elem.Value.(*entry[V])
	c.removeLocked(elem)
	c.metrics.Evictions++
	c.cfg.Logger.Debug("cache eviction", slog.String("key", e.key))
}

func (c *LRU[V]) removeLocked(elem *list.Element) {
	delete(c.elems, elem.Value.(*entry[V]).key)
	c.order.Remove(elem)
}
