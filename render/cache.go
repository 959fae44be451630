package render

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"

	"mathfig/diagram"
)

// Cache stores rendered results by request. Cached results are shared
// between callers and must be treated as read-only.
type Cache struct {
	mu        sync.RWMutex
	entries   map[string]*diagram.Result
	order     []string
	maxSize   int
	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// NewCache creates a cache holding at most maxSize results. A size of zero
// or less means unbounded.
func NewCache(maxSize int) *Cache {
	return &Cache{entries: make(map[string]*diagram.Result), maxSize: maxSize}
}

// CacheKey identifies a request rendered with o. The key covers the tool
// name, the parameters and the surface geometry, so engines with different
// surfaces may share a cache. encoding/json sorts map keys, so equal
// parameter sets give equal keys.
func CacheKey(req diagram.ToolRequest, o Options) (string, error) {
	data, err := json.Marshal(struct {
		Request  diagram.ToolRequest `json:"request"`
		Width    float64             `json:"width"`
		Height   float64             `json:"height"`
		Margin   float64             `json:"margin"`
		FontSize float64             `json:"fontSize"`
	}{req, o.Width, o.Height, o.Margin, o.FontSize})
	if err != nil {
		return "", fmt.Errorf("cache key: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Get returns the result stored under key.
func (c *Cache) Get(key string) (*diagram.Result, bool) {
	c.mu.RLock()
	res, found := c.entries[key]
	c.mu.RUnlock()

	if found {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return res, found
}

// Put stores a result, evicting the oldest entry when full.
func (c *Cache) Put(key string, res *diagram.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		c.entries[key] = res
		return
	}
	if c.maxSize > 0 && len(c.entries) >= c.maxSize {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
		c.evictions.Add(1)
	}
	c.entries[key] = res
	c.order = append(c.order, key)
}

// Clear removes all entries and resets the counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*diagram.Result)
	c.order = nil
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
}

// Stats returns cache statistics
func (c *Cache) Stats() (hits, misses, evictions, size int) {
	c.mu.RLock()
	size = len(c.entries)
	c.mu.RUnlock()

	return int(c.hits.Load()), int(c.misses.Load()), int(c.evictions.Load()), size
}

// String returns a string representation of cache statistics
func (c *Cache) String() string {
	hits, misses, evictions, size := c.Stats()
	hitRate := 0.0
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}
	return fmt.Sprintf("Cache[size=%d/%d, hits=%d, misses=%d, hitRate=%.1f%%, evictions=%d]",
		size, c.maxSize, hits, misses, hitRate, evictions)
}
