package cache

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/menta2k/aspect-bucketer/pkg/types"
)

// Key identifies a bucket: a resolution value and a rounded aspect ratio
type Key struct {
	Resolution float64 `json:"resolution"`
	Aspect     float64 `json:"aspect"`
}

// Entry is one stored bucket
type Entry struct {
	Key
	Size types.Size `json:"size"`
}

// Stats counts cache traffic
type Stats struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
	Stores uint64 `json:"stores"`
}

// ResolutionCache maps (resolution, aspect) pairs to the canonical target
// size assigned to them. The first write for a key wins and entries are
// never evicted. Safe for concurrent use.
type ResolutionCache struct {
	mu      sync.RWMutex
	entries map[Key]types.Size

	hits   atomic.Uint64
	misses atomic.Uint64
	stores atomic.Uint64
}

// New creates an empty cache
func New() *ResolutionCache {
	return &ResolutionCache{entries: make(map[Key]types.Size)}
}

// Get returns the stored size for a key
func (c *ResolutionCache) Get(resolution, aspect float64) (types.Size, bool) {
	c.mu.RLock()
	size, ok := c.entries[Key{Resolution: resolution, Aspect: aspect}]
	c.mu.RUnlock()

	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return size, ok
}

// SetIfAbsent stores size under the key unless an entry already exists.
// It returns the entry that is canonical after the call and whether this
// call inserted it.
func (c *ResolutionCache) SetIfAbsent(resolution, aspect float64, size types.Size) (types.Size, bool) {
	key := Key{Resolution: resolution, Aspect: aspect}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[key]; ok {
		return existing, false
	}
	c.entries[key] = size
	c.stores.Add(1)
	return size, true
}

// Len returns the number of stored buckets
func (c *ResolutionCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Entries returns a snapshot ordered by resolution, then aspect
func (c *ResolutionCache) Entries() []Entry {
	c.mu.RLock()
	out := make([]Entry, 0, len(c.entries))
	for k, v := range c.entries {
		out = append(out, Entry{Key: k, Size: v})
	}
	c.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Resolution != out[j].Resolution {
			return out[i].Resolution < out[j].Resolution
		}
		return out[i].Aspect < out[j].Aspect
	})
	return out
}

// Stats returns the current counters
func (c *ResolutionCache) Stats() Stats {
	return Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Stores: c.stores.Load(),
	}
}
