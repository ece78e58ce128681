package cache

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// entry is one stored value with its absolute expiration instant.
type entry struct {
	value     any
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// Cache is an in-memory key/value store with per-entry expiration.
//
// Expiry is lazy: Get treats an expired entry as absent even if the
// background cleanup has not removed it yet. The cleanup pass only bounds
// memory growth from abandoned keys; correctness never depends on it.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry

	stop chan struct{}
	done chan struct{}
}

// New creates a cache and starts its background cleanup loop.
// cleanupInterval <= 0 disables the loop (useful for tests).
// Callers own the lifecycle and must call Stop on shutdown.
func New(cleanupInterval time.Duration) *Cache {
	c := &Cache{
		entries: make(map[string]entry),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}

	if cleanupInterval > 0 {
		go c.janitor(cleanupInterval)
	} else {
		close(c.done)
	}

	return c
}

// Get returns the value stored under key, or false if the key is absent
// or past its expiration.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || e.expired(time.Now()) {
		return nil, false
	}
	return e.value, true
}

// Set stores value under key, unconditionally replacing any previous entry
// and resetting its expiration.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = entry{value: value, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
}

// Delete removes the entry stored under key, if any.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// DeletePrefix removes every entry whose key starts with prefix and returns
// how many entries were removed.
func (c *Cache) DeletePrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// GetOrCompute returns the cached value for key, or invokes produce on a
// miss, stores the result with the given ttl and returns it. A failing
// produce caches nothing; the next call retries it. Concurrent misses for
// the same key may each invoke produce — acceptable, since producers are
// idempotent query paths.
func (c *Cache) GetOrCompute(key string, ttl time.Duration, produce func() (any, error)) (any, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	v, err := produce()
	if err != nil {
		return nil, err
	}

	c.Set(key, v, ttl)
	return v, nil
}

// Stats describes the current cache contents for operational visibility.
type Stats struct {
	// Size is the number of live (non-expired) entries.
	Size int `json:"size"`
	// Keys lists the live keys in lexical order.
	Keys []string `json:"keys"`
}

// Stats returns a snapshot of the live entries.
func (c *Cache) Stats() Stats {
	now := time.Now()

	c.mu.RLock()
	keys := make([]string, 0, len(c.entries))
	for key, e := range c.entries {
		if !e.expired(now) {
			keys = append(keys, key)
		}
	}
	c.mu.RUnlock()

	sort.Strings(keys)
	return Stats{Size: len(keys), Keys: keys}
}

// Stop terminates the background cleanup loop. Safe to call exactly once.
func (c *Cache) Stop() {
	select {
	case <-c.done:
		// Janitor was never started.
	default:
		close(c.stop)
		<-c.done
	}
}

// cleanup removes every entry whose expiration has passed.
func (c *Cache) cleanup() {
	now := time.Now()

	c.mu.Lock()
	for key, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
}

func (c *Cache) janitor(interval time.Duration) {
	defer close(c.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stop:
			return
		}
	}
}
