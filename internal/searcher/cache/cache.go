// Package cache memoizes ranked results within one search run. The ranker
// only looks at which vocabulary terms a query contains, so queries with the
// same term set share one result list.
package cache

import (
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/internal/searcher/ranker"
)

// QueryCache maps a term set to its ranked results. Concurrent lookups of
// the same missing key compute it once. Cached slices are shared and must
// not be modified.
type QueryCache struct {
	group   singleflight.Group
	mu      sync.RWMutex
	entries map[string][]ranker.Result
	hits    atomic.Int64
	misses  atomic.Int64
}

func New() *QueryCache {
	return &QueryCache{entries: make(map[string][]ranker.Result)}
}

// Get returns the cached results for terms.
func (c *QueryCache) Get(terms []string) ([]ranker.Result, bool) {
	key := Key(terms)
	c.mu.RLock()
	results, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return results, ok
}

// GetOrCompute returns the cached results for terms, calling compute on a
// miss. The bool reports a cache hit.
func (c *QueryCache) GetOrCompute(terms []string, compute func() []ranker.Result) ([]ranker.Result, bool) {
	if results, ok := c.Get(terms); ok {
		return results, true
	}
	key := Key(terms)
	val, _, _ := c.group.Do(key, func() (interface{}, error) {
		c.mu.RLock()
		results, ok := c.entries[key]
		c.mu.RUnlock()
		if ok {
			return results, nil
		}
		results = compute()
		c.mu.Lock()
		c.entries[key] = results
		c.mu.Unlock()
		return results, nil
	})
	return val.([]ranker.Result), false
}

// Len returns the number of distinct term sets cached.
func (c *QueryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *QueryCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Key is the sorted, de-duplicated term set joined by spaces.
func Key(terms []string) string {
	set := make([]string, 0, len(terms))
	seen := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		set = append(set, t)
	}
	sort.Strings(set)
	return strings.Join(set, " ")
}
