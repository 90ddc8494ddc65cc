package api

import (
	"strings"
	"sync"
	"time"
)

const responseCacheTTL = 10 * time.Minute

type cacheEntry struct {
	content  string
	storedAt time.Time
}

// responseCache deduplicates identical generation requests for a short
// window so a repeated prompt does not trigger a second completion call.
type responseCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

func newResponseCache(ttl time.Duration) *responseCache {
	return &responseCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// cacheKey normalizes the request tuple that identifies a generation. The
// attached file is deliberately not part of the key.
func cacheKey(topic, contentType, academicYear, mode string) string {
	return strings.Join([]string{topic, contentType, academicYear, mode}, ":")
}

func (c *responseCache) get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if c.now().Sub(entry.storedAt) > c.ttl {
		delete(c.entries, key)
		return "", false
	}
	return entry.content, true
}

func (c *responseCache) put(key, content string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{content: content, storedAt: c.now()}
}
