package testutil

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/hooponomics-service/internal/dataset"
	"github.com/preston-bernstein/hooponomics-service/internal/store"
)

// StaticSource returns the provided tables with no error.
type StaticSource struct {
	Tables dataset.Tables
}

func (s StaticSource) Name() string { return "static" }

func (s StaticSource) Load(ctx context.Context) (dataset.Tables, error) {
	_ = ctx
	return s.Tables, nil
}

// ErrSource always returns the provided error.
type ErrSource struct {
	Err error
}

func (s ErrSource) Name() string { return "err" }

func (s ErrSource) Load(ctx context.Context) (dataset.Tables, error) {
	_ = ctx
	return dataset.Tables{}, s.Err
}

// CountingSource counts loads and optionally fails while Err is set.
type CountingSource struct {
	Tables dataset.Tables
	calls  atomic.Int64
	mu     sync.Mutex
	err    error
}

func (s *CountingSource) Name() string { return "counting" }

func (s *CountingSource) Load(ctx context.Context) (dataset.Tables, error) {
	_ = ctx
	s.calls.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return dataset.Tables{}, s.err
	}
	return s.Tables, nil
}

// SetErr makes subsequent loads fail with err; nil restores success.
func (s *CountingSource) SetErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Calls reports how many loads ran.
func (s *CountingSource) Calls() int64 {
	return s.calls.Load()
}

// NewSampleCache returns a cache over the sample tables that has not loaded yet.
func NewSampleCache() *store.Cache {
	loader := dataset.NewLoader(StaticSource{Tables: SampleTables()}, nil, nil)
	return store.NewCache(loader.Load)
}

// NewLoadedCache returns a cache already holding the sample dataset.
func NewLoadedCache() *store.Cache {
	c := NewSampleCache()
	if _, err := c.Get(context.Background()); err != nil {
		panic(err)
	}
	return c
}
