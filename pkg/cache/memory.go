package cache

import (
	"context"
	"sync"
	"time"

	"github.com/mvoelker/tourmaline/pkg/observability"
)

// DefaultMaxEntries bounds MemoryCache growth when no explicit limit is
// given. Solve results are small; rendered artifacts can reach a few
// hundred kilobytes each.
const DefaultMaxEntries = 1024

// MemoryCache is a process-local cache with per-entry TTL. It serves the
// HTTP server, which memoizes within a single run; nothing is persisted
// across restarts.
type MemoryCache struct {
	mu         sync.Mutex
	entries    map[string]memoryEntry
	maxEntries int
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryCache creates an in-memory cache holding at most maxEntries
// entries. A non-positive limit selects [DefaultMaxEntries].
func NewMemoryCache(maxEntries int) Cache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &MemoryCache{
		entries:    make(map[string]memoryEntry),
		maxEntries: maxEntries,
	}
}

// Get retrieves a value, lazily dropping it when expired.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		observability.Cache().OnCacheMiss(ctx, keyType(key))
		return nil, false, nil
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		delete(c.entries, key)
		observability.Cache().OnCacheMiss(ctx, keyType(key))
		return nil, false, nil
	}

	observability.Cache().OnCacheHit(ctx, keyType(key))
	data := make([]byte, len(entry.data))
	copy(data, entry.data)
	return data, true, nil
}

// Set stores a value, evicting arbitrary entries when the cache is full.
func (c *MemoryCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := memoryEntry{data: make([]byte, len(data))}
	copy(entry.data, data)
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictLocked()
	}
	c.entries[key] = entry

	observability.Cache().OnCacheSet(ctx, keyType(key), len(data))
	return nil
}

// evictLocked frees a slot, preferring expired entries. When nothing has
// expired it drops an arbitrary entry; hit rates matter less here than
// bounded memory.
func (c *MemoryCache) evictLocked() {
	now := time.Now()
	for key, entry := range c.entries {
		if !entry.expiresAt.IsZero() && now.After(entry.expiresAt) {
			delete(c.entries, key)
			return
		}
	}
	for key := range c.entries {
		delete(c.entries, key)
		return
	}
}

// Delete removes a value from the cache.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

// Close discards all entries.
func (c *MemoryCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]memoryEntry)
	return nil
}

// Len reports the current number of entries, expired or not.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Ensure MemoryCache implements Cache.
var _ Cache = (*MemoryCache)(nil)
