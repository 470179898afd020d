package cache

import (
	"crypto/md5"
	"fmt"
	"strings"
	"sync"
	"time"
)

// DefaultTTL is the expiry applied when Set is used without an explicit TTL.
const DefaultTTL = time.Hour

// entry is a cached value with an absolute expiry instant.
type entry struct {
	value     any
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !now.Before(e.expiresAt)
}

// Options configures a Cache.
type Options struct {
	// DefaultTTL is used by Set; zero means DefaultTTL (one hour).
	DefaultTTL time.Duration
	// MaxEntries bounds the cache size; zero means unbounded.
	// When full, expired entries are evicted first, then the entry
	// closest to expiry.
	MaxEntries int
	// SweepInterval enables a background janitor that removes expired
	// entries; zero disables it. Lazy eviction on Get is always active.
	SweepInterval time.Duration
}

// Stats reports cache occupancy.
type Stats struct {
	TotalEntries int `json:"total_entries"`
	ValidEntries int `json:"valid_entries"`
}

// Cache is a thread-safe in-process store with per-entry TTL expiry.
// It is constructed once at startup and injected into the GitHub client.
type Cache struct {
	mu         sync.RWMutex
	entries    map[string]entry
	defaultTTL time.Duration
	maxEntries int
	stop       chan struct{}
}

// New creates a Cache from the given options.
func New(opts Options) *Cache {
	ttl := opts.DefaultTTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	c := &Cache{
		entries:    make(map[string]entry),
		defaultTTL: ttl,
		maxEntries: opts.MaxEntries,
		stop:       make(chan struct{}),
	}

	if opts.SweepInterval > 0 {
		go c.sweep(opts.SweepInterval)
	}

	return c
}

// Key derives a deterministic cache key from an operation name and its
// ordered arguments. Identical (op, args) always yield the same key;
// argument order is significant.
func Key(op string, args ...string) string {
	h := md5.Sum([]byte(op + "\x00" + strings.Join(args, "\x00")))
	return fmt.Sprintf("%x", h)
}

// Get returns the value for key if present and not expired. An expired
// entry is evicted and reported as a miss.
func (c *Cache) Get(key string) (any, bool) {
	now := time.Now()

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if e.expired(now) {
		c.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have
		// refreshed the entry.
		if cur, ok := c.entries[key]; ok && cur.expired(time.Now()) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

// GetAs returns the value for key asserted to type T. A present entry of
// the wrong type is treated as a miss; each operation owns its key
// namespace, so this only happens on programmer error.
func GetAs[T any](c *Cache, key string) (T, bool) {
	var zero T
	v, ok := c.Get(key)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// Set stores value under key with the default TTL.
func (c *Cache) Set(key string, value any) {
	c.SetTTL(key, value, c.defaultTTL)
}

// SetTTL stores value under key, expiring at now + ttl. A non-positive
// ttl produces an entry that is already expired.
func (c *Cache) SetTTL(key string, value any, ttl time.Duration) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		if _, exists := c.entries[key]; !exists {
			c.evictLocked(now)
		}
	}

	c.entries[key] = entry{value: value, expiresAt: now.Add(ttl)}
}

// evictLocked frees one slot: expired entries first, otherwise the entry
// with the earliest expiry. Caller holds the write lock.
func (c *Cache) evictLocked(now time.Time) {
	var (
		oldestKey string
		oldestExp time.Time
		found     bool
		freed     bool
	)

	for k, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, k)
			freed = true
			continue
		}
		if !found || e.expiresAt.Before(oldestExp) {
			oldestKey = k
			oldestExp = e.expiresAt
			found = true
		}
	}

	if !freed && found {
		delete(c.entries, oldestKey)
	}
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry)
}

// Stats returns total and non-expired entry counts.
func (c *Cache) Stats() Stats {
	now := time.Now()

	c.mu.RLock()
	defer c.mu.RUnlock()

	valid := 0
	for _, e := range c.entries {
		if !e.expired(now) {
			valid++
		}
	}

	return Stats{TotalEntries: len(c.entries), ValidEntries: valid}
}

// Close stops the background janitor, if any.
func (c *Cache) Close() {
	close(c.stop)
}

// sweep periodically removes expired entries.
func (c *Cache) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for k, e := range c.entries {
				if e.expired(now) {
					delete(c.entries, k)
				}
			}
			c.mu.Unlock()
		}
	}
}
