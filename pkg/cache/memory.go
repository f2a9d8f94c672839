package cache

import (
	"container/list"
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryStore is a bounded in-process LRU with a per-entry TTL.
type MemoryStore struct {
	entries map[string]*list.Element
	order   *list.List
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	hits    int64
	misses  int64
	now     func() time.Time
}

type cacheEntry struct {
	key       string
	value     []byte
	expiresAt time.Time
}

// MemoryConfig configures the memory store
type MemoryConfig struct {
	MaxSize int
	TTL     time.Duration
}

// DefaultMemoryConfig returns sensible defaults
func DefaultMemoryConfig() MemoryConfig {
	return MemoryConfig{
		MaxSize: 1000,
		TTL:     5 * time.Minute,
	}
}

// NewMemoryStore creates a new memory store. A MaxSize of zero disables
// caching, a TTL of zero keeps entries until they are evicted.
func NewMemoryStore(config MemoryConfig) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*list.Element),
		order:   list.New(),
		maxSize: config.MaxSize,
		ttl:     config.TTL,
		now:     time.Now,
	}
}

func (c *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, exists := c.entries[key]
	if !exists {
		c.misses++
		return nil, false, nil
	}

	entry := elem.Value.(*cacheEntry)
	if !entry.expiresAt.IsZero() && !c.now().Before(entry.expiresAt) {
		c.remove(elem)
		c.misses++
		return nil, false, nil
	}

	c.order.MoveToFront(elem)
	c.hits++
	return entry.value, true, nil
}

func (c *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	if c.maxSize <= 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var expiresAt time.Time
	if c.ttl > 0 {
		expiresAt = c.now().Add(c.ttl)
	}

	if elem, exists := c.entries[key]; exists {
		entry := elem.Value.(*cacheEntry)
		entry.value = value
		entry.expiresAt = expiresAt
		c.order.MoveToFront(elem)
		return nil
	}

	for c.order.Len() >= c.maxSize {
		c.remove(c.order.Back())
	}

	c.entries[key] = c.order.PushFront(&cacheEntry{
		key:       key,
		value:     value,
		expiresAt: expiresAt,
	})
	return nil
}

func (c *MemoryStore) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, exists := c.entries[key]; exists {
		c.remove(elem)
	}
	return nil
}

// InvalidatePrefix removes every entry whose key starts with prefix, e.g.
// KindPrefix("title").
func (c *MemoryStore) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, elem := range c.entries {
		if strings.HasPrefix(key, prefix) {
			c.remove(elem)
		}
	}
}

// Clear removes all entries from the cache
func (c *MemoryStore) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]*list.Element)
	c.order.Init()
	c.mu.Unlock()
}

// remove must be called with the lock held
func (c *MemoryStore) remove(elem *list.Element) {
	entry := c.order.Remove(elem).(*cacheEntry)
	delete(c.entries, entry.key)
}

// Stats holds cache statistics
type Stats struct {
	Size   int
	Hits   int64
	Misses int64
}

func (c *MemoryStore) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Size:   len(c.entries),
		Hits:   c.hits,
		Misses: c.misses,
	}
}
