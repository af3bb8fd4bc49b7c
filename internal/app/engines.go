// Package app wires the table cache to the query engine for the services.
package app

import (
	"context"
	"sync"

	"github.com/preston-bernstein/hooponomics-service/internal/dataset"
	"github.com/preston-bernstein/hooponomics-service/internal/query"
	"github.com/preston-bernstein/hooponomics-service/internal/store"
)

// Engines hands out a query engine for the currently cached dataset,
// rebuilding it only when a reload swapped the tables.
type Engines struct {
	cache       *store.Cache
	profileBase string

	mu     sync.Mutex
	ds     *dataset.Dataset
	engine *query.Engine
}

// NewEngines constructs an Engines over cache.
func NewEngines(cache *store.Cache, profileBase string) *Engines {
	return &Engines{cache: cache, profileBase: profileBase}
}

// Engine returns the engine for the cached dataset, loading it on first use.
func (e *Engines) Engine(ctx context.Context) (*query.Engine, error) {
	ds, err := e.cache.Get(ctx)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ds != ds {
		e.ds = ds
		e.engine = query.NewEngine(ds, e.profileBase)
	}
	return e.engine, nil
}

// Reload re-reads the source through the cache.
func (e *Engines) Reload(ctx context.Context) (*dataset.Dataset, error) {
	return e.cache.Reload(ctx)
}

// Ready reports whether tables are loaded.
func (e *Engines) Ready() bool {
	return e.cache.Ready()
}
