package fatigue

import (
	"strings"
	"sync"

	"github.com/alexiusacademia/goshaft/internal/shaft"
)

// Cache memoizes Compute for repeated identical inputs. It is safe for
// concurrent use and holds at most size entries, evicting the oldest.
type Cache struct {
	mu      sync.Mutex
	size    int
	entries map[string]Result
	order   []string

	hits   uint64
	misses uint64
}

// NewCache creates a cache. A size <= 0 disables memoization.
func NewCache(size int) *Cache {
	return &Cache{
		size:    size,
		entries: make(map[string]Result),
	}
}

// Compute returns the memoized result for in, computing it on a miss.
func (c *Cache) Compute(in shaft.Inputs) Result {
	if c == nil || c.size <= 0 {
		return Compute(in)
	}

	key := cacheKey(in)
	c.mu.Lock()
	if r, ok := c.entries[key]; ok {
		c.hits++
		c.mu.Unlock()
		return r
	}
	c.misses++
	c.mu.Unlock()

	// Compute is pure, so two goroutines racing on the same miss store the
	// same value.
	r := Compute(in)

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; ok {
		return r
	}
	if len(c.order) >= c.size {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[key] = r
	c.order = append(c.order, key)
	return r
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns the hit and miss counters.
func (c *Cache) Stats() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// cacheKey identifies inputs that produce identical results. The empty
// moment model is the default one. Numbers are keyed by their shortest
// representation, which keeps -0 apart from 0.
func cacheKey(in shaft.Inputs) string {
	in.Moment = in.Moment.OrDefault()
	return strings.Join(in.Record(), ",")
}
