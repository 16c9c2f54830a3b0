package catalog

import (
	"net/url"
	"sync"
	"time"
)

// memCache is a process-local TTL cache for decoded catalog responses.
// Entries are replaced on re-fetch, never mutated in place, and the cache is
// unbounded and never persisted across runs.
type memCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memEntry
	now     func() time.Time
}

type memEntry struct {
	value   any
	expires time.Time
}

func newMemCache(ttl time.Duration) *memCache {
	return &memCache{
		ttl:     ttl,
		entries: make(map[string]memEntry),
		now:     time.Now,
	}
}

func (c *memCache) get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expires) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.value, true
}

func (c *memCache) set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memEntry{value: value, expires: c.now().Add(c.ttl)}
}

// clear drops every cached entry. Used when the API key changes.
func (c *memCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]memEntry)
}

// cacheKey derives the cache key from the endpoint path and its serialized
// parameters. url.Values.Encode sorts keys, so the key is deterministic.
func cacheKey(endpoint string, params url.Values) string {
	if len(params) == 0 {
		return endpoint
	}
	return endpoint + "?" + params.Encode()
}
