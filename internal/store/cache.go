// Package store keeps the loaded valuation tables for the lifetime of the process.
package store

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/preston-bernstein/hooponomics-service/internal/dataset"
)

// ErrNoLoader is returned when a Cache has nothing to load from.
var ErrNoLoader = errors.New("dataset loader not configured")

// LoadFunc produces a fully built dataset or an error, never a partial one.
type LoadFunc func(ctx context.Context) (*dataset.Dataset, error)

// Cache holds one immutable Dataset. The first Get loads it, concurrent first
// callers share that single load, and later calls return the cached value
// without touching the source. A failed load stores nothing.
type Cache struct {
	load  LoadFunc
	mu    sync.RWMutex
	data  *dataset.Dataset
	gen   uint64 // bumped by Reset; loads started before it are not stored
	group singleflight.Group
}

// NewCache constructs an empty cache around load.
func NewCache(load LoadFunc) *Cache {
	return &Cache{load: load}
}

// Get returns the cached dataset, loading it on first use. The shared load
// ignores the first caller's cancellation.
func (c *Cache) Get(ctx context.Context) (*dataset.Dataset, error) {
	ds, gen := c.snapshot()
	if ds != nil {
		return ds, nil
	}
	v, err, _ := c.group.Do("load:"+strconv.FormatUint(gen, 10), func() (any, error) {
		if ds := c.Current(); ds != nil {
			return ds, nil
		}
		ds, err := c.run(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if c.gen == gen {
			c.data = ds
		}
		c.mu.Unlock()
		return ds, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*dataset.Dataset), nil
}

// Reload reads the source again and swaps the cached dataset on success.
// On failure the previous dataset stays in place.
func (c *Cache) Reload(ctx context.Context) (*dataset.Dataset, error) {
	v, err, _ := c.group.Do("reload", func() (any, error) {
		ds, err := c.run(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.data = ds
		c.mu.Unlock()
		return ds, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*dataset.Dataset), nil
}

// Reset drops the cached dataset so the next Get loads again. A Get load
// already in flight still answers its callers but is not cached.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = nil
	c.gen++
}

func (c *Cache) snapshot() (*dataset.Dataset, uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data, c.gen
}

// Current returns the cached dataset without loading; nil when empty.
func (c *Cache) Current() *dataset.Dataset {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data
}

// Ready reports whether a dataset is cached.
func (c *Cache) Ready() bool {
	return c.Current() != nil
}

func (c *Cache) run(ctx context.Context) (*dataset.Dataset, error) {
	if c.load == nil {
		return nil, ErrNoLoader
	}
	return c.load(ctx)
}
