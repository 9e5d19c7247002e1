// Package cache provides an in-process key/value cache with per-entry TTL.
//
// Expiry is enforced lazily: an entry is evicted when a Get finds it stale.
// There is no background sweeper, so expired entries that are never read
// again stay resident until Delete or Clear.
package cache

import (
	"sort"
	"sync"
	"time"

	"github.com/ShauryaRahlon/Travel-Delite/internal/clock"
)

type entry[V any] struct {
	value     V
	createdAt time.Time
	ttl       time.Duration
}

func (e entry[V]) expired(now time.Time) bool {
	return now.Sub(e.createdAt) > e.ttl
}

// Cache maps string keys to values of type V. It is safe for concurrent use.
type Cache[V any] struct {
	mu      sync.Mutex
	clock   clock.Clock
	entries map[string]entry[V]
	// gens counts Deletes per key; epoch counts Clears.
	gens  map[string]uint64
	epoch uint64
}

// Version identifies the invalidation state of one key. It changes whenever
// the key is deleted or the cache is cleared.
type Version struct {
	epoch uint64
	gen   uint64
}

// New returns an empty cache. A nil clock falls back to the system clock.
func New[V any](clk clock.Clock) *Cache[V] {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &Cache[V]{
		clock:   clk,
		entries: make(map[string]entry[V]),
		gens:    make(map[string]uint64),
	}
}

// Set stores value under key, replacing any previous entry.
func (c *Cache[V]) Set(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = entry[V]{value: value, createdAt: c.clock.Now(), ttl: ttl}
	c.mu.Unlock()
}

// Version returns the current invalidation state of key. Capture it before
// loading a value and pass it to SetIfUnchanged.
func (c *Cache[V]) Version(key string) Version {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Version{epoch: c.epoch, gen: c.gens[key]}
}

// SetIfUnchanged stores value only if key has not been deleted or the cache
// cleared since v was taken. It reports whether the value was stored.
func (c *Cache[V]) SetIfUnchanged(key string, value V, ttl time.Duration, v Version) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != v.epoch || c.gens[key] != v.gen {
		return false
	}
	c.entries[key] = entry[V]{value: value, createdAt: c.clock.Now(), ttl: ttl}
	return true
}

// Get returns the value for key. A stale entry is removed and reported as a miss.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if e.expired(c.clock.Now()) {
		delete(c.entries, key)
		return zero, false
	}
	return e.value, true
}

// Delete removes keys unconditionally.
func (c *Cache[V]) Delete(keys ...string) {
	c.mu.Lock()
	for _, key := range keys {
		delete(c.entries, key)
		c.gens[key]++
	}
	c.mu.Unlock()
}

// Clear drops every entry.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry[V])
	c.gens = make(map[string]uint64)
	c.epoch++
	c.mu.Unlock()
}

// Size counts resident entries, including expired ones not yet read.
func (c *Cache[V]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Keys returns resident keys in sorted order.
func (c *Cache[V]) Keys() []string {
	c.mu.Lock()
	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	c.mu.Unlock()
	sort.Strings(keys)
	return keys
}

// EntryStats is the metadata of one cache entry.
type EntryStats struct {
	Key       string        `json:"key"`
	CreatedAt time.Time     `json:"createdAt"`
	TTL       time.Duration `json:"ttl"`
	Age       time.Duration `json:"age"`
	Expired   bool          `json:"expired"`
}

// Stats reports per-entry metadata sorted by key. It does not evict.
func (c *Cache[V]) Stats() []EntryStats {
	c.mu.Lock()
	now := c.clock.Now()
	out := make([]EntryStats, 0, len(c.entries))
	for key, e := range c.entries {
		out = append(out, EntryStats{
			Key:       key,
			CreatedAt: e.createdAt,
			TTL:       e.ttl,
			Age:       now.Sub(e.createdAt),
			Expired:   e.expired(now),
		})
	}
	c.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
