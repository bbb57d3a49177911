package ore

import (
	"sync"
	"sync/atomic"
)

// BuildFunc produces a fresh registry from the current configuration.
type BuildFunc func() (*Registry, error)

// Cache memoizes one registry build. The first Get builds; later calls
// return the registry or, after a failed build, the recorded error without
// retrying. Invalidate discards the result and permits one new build.
type Cache struct {
	build BuildFunc

	mu        sync.Mutex
	attempted atomic.Bool
	reg       atomic.Pointer[Registry]
	err       error
	version   atomic.Uint64
}

func NewCache(build BuildFunc) *Cache {
	return &Cache{build: build}
}

// Get returns the registry, building it on first use. Concurrent callers
// wait for the single in-flight build.
func (c *Cache) Get() (*Registry, error) {
	if r := c.reg.Load(); r != nil {
		return r, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if r := c.reg.Load(); r != nil {
		return r, nil
	}
	if c.attempted.Load() {
		return nil, c.err
	}
	c.attempted.Store(true)

	r, err := c.build()
	if err == nil && r == nil {
		err = ErrNoOres
	}
	if err != nil {
		c.err = err
		return nil, err
	}
	c.reg.Store(r)
	c.version.Add(1)
	return r, nil
}

// Invalidate drops the cached registry and the attempt marker.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.reg.Store(nil)
	c.err = nil
	c.attempted.Store(false)
	c.version.Add(1)
}

// Attempted reports whether a build ran since the last invalidation.
func (c *Cache) Attempted() bool {
	return c.attempted.Load()
}

// Version changes on every successful build and every invalidation.
func (c *Cache) Version() uint64 {
	return c.version.Load()
}
