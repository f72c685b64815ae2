package query

import (
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
)

// DefaultCacheSize is the capacity of a cache created with size <= 0.
const DefaultCacheSize = 256

// Cache is a bounded cache of compiled programs keyed by schema and filter
// text. Repeated filters (the common case for a query pipeline serving a
// handful of filter templates) skip tokenizing, parsing and checking.
//
// Eviction strategy: when the cache reaches its capacity limit the entire map
// is replaced.
//
// Thread safety: all methods are safe for concurrent use.
type Cache struct {
	mu     sync.RWMutex
	items  map[uint64]*Program
	max    int
	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewCache creates a cache holding at most size programs.
func NewCache(size int) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &Cache{
		items: make(map[uint64]*Program, size),
		max:   size,
	}
}

func (c *Cache) get(key uint64, filter string) (*Program, bool) {
	c.mu.RLock()
	p, ok := c.items[key]
	c.mu.RUnlock()
	// a hash collision must not hand out another filter's program
	if ok && p.Text != filter {
		return nil, false
	}
	return p, ok
}

func (c *Cache) put(key uint64, p *Program) {
	c.mu.Lock()
	if len(c.items) >= c.max {
		c.items = make(map[uint64]*Program, c.max)
	}
	c.items[key] = p
	c.mu.Unlock()
}

// Compile returns the cached program for filter under schema, compiling and
// caching it on a miss. Failed compilations are not cached.
func (c *Cache) Compile(filter string, schema Schema) (*Program, bool, error) {
	key := cacheKey(filter, schema)
	if p, ok := c.get(key, filter); ok {
		c.hits.Add(1)
		return p, true, nil
	}
	c.misses.Add(1)
	p, err := Compile(filter, schema)
	if err != nil {
		return nil, false, err
	}
	c.put(key, p)
	return p, false, nil
}

// Len returns the number of cached programs.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Stats returns the hit and miss counts since creation.
func (c *Cache) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}

func cacheKey(filter string, schema Schema) uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(SchemaFingerprint(schema))
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(filter)
	return h.Sum64()
}

// SchemaFingerprint renders schema as a stable string, "" for nil.
func SchemaFingerprint(schema Schema) string {
	if schema == nil {
		return ""
	}
	names := make([]string, 0, len(schema))
	for name := range schema {
		names = append(names, name)
	}
	sort.Strings(names)
	var b strings.Builder
	for _, name := range names {
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(schema[name].String())
		b.WriteByte(';')
	}
	return b.String()
}
