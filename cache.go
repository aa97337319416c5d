package ward

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// procCache memoizes compiled procedures by canonical key for the life
// of the process. Entries are never evicted: hint cardinality is assumed
// small relative to process lifetime, and unbounded growth is the
// documented trade-off.
//
// Concurrent first use of one key is collapsed through singleflight, so
// at most one compilation per key runs to completion and only a fully
// built procedure is ever published.
type procCache struct {
	mu    sync.RWMutex
	procs map[string]*Proc
	group singleflight.Group
}

func newProcCache() *procCache {
	return &procCache{procs: make(map[string]*Proc, 32)}
}

// getOrCompile returns the cached procedure for key, compiling it with
// build on first use. The returned procedure's sign is verified against
// the requested node's sign; disagreement is a fatal engine defect.
func (c *procCache) getOrCompile(key string, want Sign, build func() (*Proc, error)) (*Proc, error) {
	c.mu.RLock()
	p := c.procs[key]
	c.mu.RUnlock()
	if p == nil {
		v, err, _ := c.group.Do(key, func() (any, error) {
			c.mu.RLock()
			cached := c.procs[key]
			c.mu.RUnlock()
			if cached != nil {
				return cached, nil
			}
			built, err := build()
			if err != nil {
				return nil, err
			}
			c.mu.Lock()
			c.procs[key] = built
			c.mu.Unlock()
			return built, nil
		})
		if err != nil {
			return nil, err
		}
		p = v.(*Proc)
	}
	if p.sign != want {
		return nil, &InternalError{Key: key, Want: want, Got: p.sign}
	}
	return p, nil
}

// len reports the number of compiled entries.
func (c *procCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.procs)
}
