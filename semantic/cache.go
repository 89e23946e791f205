package semantic

import (
	"fmt"
	"strings"
	"sync"

	"github.com/apilens/apilens/fieldtype"
)

// Detection results are memoized on a stable serialization of the field
// identity plus a prefix of its samples. Truncating to three samples trades
// a small risk of stale classification (when later samples differ materially)
// for a much better hit rate.
const cacheSamplePrefix = 3

// Cache memoizes detection results. Safe for concurrent use; last write wins,
// which is harmless since detection is pure.
type Cache struct {
	mu      sync.RWMutex
	entries map[string][]Result
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string][]Result)}
}

// CacheKey builds the memoization key for one detection call.
func CacheKey(fieldPath, fieldName string, ft fieldtype.FieldType, samples []any, hints *Hints) string {
	var b strings.Builder
	b.WriteString(fieldPath)
	b.WriteByte('|')
	b.WriteString(fieldName)
	b.WriteByte('|')
	b.WriteString(string(ft))
	n := len(samples)
	if n > cacheSamplePrefix {
		n = cacheSamplePrefix
	}
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "|%v", samples[i])
	}
	if hints != nil && hints.Format != "" {
		b.WriteString("|fmt:")
		b.WriteString(hints.Format)
	}
	return b.String()
}

func (c *Cache) Get(key string) ([]Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rs, ok := c.entries[key]
	return rs, ok
}

func (c *Cache) Set(key string, results []Result) {
	c.mu.Lock()
	c.entries[key] = results
	c.mu.Unlock()
}

func (c *Cache) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[key]
	return ok
}

func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string][]Result)
	c.mu.Unlock()
}

func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
