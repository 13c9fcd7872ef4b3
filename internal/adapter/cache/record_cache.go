package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"textprep/internal/domain"
	"textprep/internal/port"
)

// RecordCache memoizes engine output per input text. Only immutable records
// are stored; every hit builds fresh Tokens so callers may mutate them.
type RecordCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	order   []string
	maxSize int
	ttl     time.Duration
	hits    uint64
	misses  uint64
}

type cacheEntry struct {
	records   []domain.Record
	timestamp time.Time
}

func NewRecordCache(maxSize int, ttl time.Duration) *RecordCache {
	if maxSize <= 0 {
		maxSize = 1024
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RecordCache{
		entries: make(map[string]*cacheEntry),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
		ttl:     ttl,
	}
}

func cacheKey(engine, text string) string {
	data := make([]byte, 0, len(engine)+1+len(text))
	data = append(data, engine...)
	data = append(data, 0)
	data = append(data, text...)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:16])
}

func (c *RecordCache) Get(engine, text string) ([]domain.Record, bool) {
	key := cacheKey(engine, text)

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.entries[key]
	if !exists {
		c.misses++
		return nil, false
	}

	if time.Since(entry.timestamp) > c.ttl {
		delete(c.entries, key)
		c.removeFromOrder(key)
		c.misses++
		return nil, false
	}

	c.moveToEnd(key)
	c.hits++
	return entry.records, true
}

func (c *RecordCache) Put(engine, text string, records []domain.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(engine, text)

	if _, exists := c.entries[key]; exists {
		c.entries[key] = &cacheEntry{records: records, timestamp: time.Now()}
		c.moveToEnd(key)
		return
	}

	if len(c.entries) >= c.maxSize {
		c.evictOldest()
	}

	c.entries[key] = &cacheEntry{records: records, timestamp: time.Now()}
	c.order = append(c.order, key)
}

func (c *RecordCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*cacheEntry)
	c.order = c.order[:0]
}

func (c *RecordCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns the hit and miss counters.
func (c *RecordCache) Stats() (hits, misses uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}

func (c *RecordCache) evictOldest() {
	if len(c.order) == 0 {
		return
	}
	oldest := c.order[0]
	c.order = c.order[1:]
	delete(c.entries, oldest)
}

func (c *RecordCache) moveToEnd(key string) {
	c.removeFromOrder(key)
	c.order = append(c.order, key)
}

func (c *RecordCache) removeFromOrder(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

// CachedEngine wraps an engine with a RecordCache.
type CachedEngine struct {
	engine port.Engine
	cache  *RecordCache
}

func NewCachedEngine(engine port.Engine, cache *RecordCache) *CachedEngine {
	return &CachedEngine{
		engine: engine,
		cache:  cache,
	}
}

func (e *CachedEngine) Tokenize(text string) (domain.Text, error) {
	if records, hit := e.cache.Get(e.engine.Name(), text); hit {
		return domain.NewText(records), nil
	}

	tokens, err := e.engine.Tokenize(text)
	if err != nil {
		return nil, err
	}

	records := make([]domain.Record, len(tokens))
	for i, t := range tokens {
		records[i] = t.Record()
	}
	e.cache.Put(e.engine.Name(), text, records)

	return domain.NewText(records), nil
}

func (e *CachedEngine) Name() string {
	return e.engine.Name()
}

func (e *CachedEngine) Cache() *RecordCache {
	return e.cache
}
