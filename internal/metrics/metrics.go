package metrics

import (
	"sync"
	"time"
)

type loadStats struct {
	loads        int
	errors       int
	lastRows     int
	lastDuration time.Duration
}

type queryStats struct {
	calls        int
	errors       int
	lastResults  int
	lastDuration time.Duration
}

// Recorder captures lightweight, in-memory metrics about dataset loads and
// queries, and forwards them to OpenTelemetry instruments when configured.
// All methods are safe on a nil Recorder.
type Recorder struct {
	mu      sync.Mutex
	loads   map[string]*loadStats
	queries map[string]*queryStats
	otel    *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		loads:   make(map[string]*loadStats),
		queries: make(map[string]*queryStats),
		otel:    otel,
	}
}

// RecordDatasetLoad tracks one load attempt for a source.
func (r *Recorder) RecordDatasetLoad(source string, duration time.Duration, rows int, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats, ok := r.loads[source]
	if !ok {
		stats = &loadStats{}
		r.loads[source] = stats
	}
	stats.loads++
	stats.lastDuration = duration
	if err != nil {
		stats.errors++
	} else {
		stats.lastRows = rows
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordDatasetLoad(source, duration, rows, err)
	}
}

// RecordQuery tracks one query execution by kind (player, roster, similar, ...).
func (r *Recorder) RecordQuery(kind string, duration time.Duration, results int, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats, ok := r.queries[kind]
	if !ok {
		stats = &queryStats{}
		r.queries[kind] = stats
	}
	stats.calls++
	stats.lastDuration = duration
	stats.lastResults = results
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordQuery(kind, duration, results, err)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// LoadSnapshot is a copy of the load stats for one source.
type LoadSnapshot struct {
	Loads        int
	Errors       int
	LastRows     int
	LastDuration time.Duration
}

// QuerySnapshot is a copy of the stats for one query kind.
type QuerySnapshot struct {
	Calls        int
	Errors       int
	LastResults  int
	LastDuration time.Duration
}

// LoadStats returns a copy of the current stats for the source.
func (r *Recorder) LoadStats(source string) LoadSnapshot {
	if r == nil {
		return LoadSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.loads[source]
	if !ok {
		return LoadSnapshot{}
	}
	return LoadSnapshot{
		Loads:        stats.loads,
		Errors:       stats.errors,
		LastRows:     stats.lastRows,
		LastDuration: stats.lastDuration,
	}
}

// QueryStats returns a copy of the current stats for the query kind.
func (r *Recorder) QueryStats(kind string) QuerySnapshot {
	if r == nil {
		return QuerySnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.queries[kind]
	if !ok {
		return QuerySnapshot{}
	}
	return QuerySnapshot{
		Calls:        stats.calls,
		Errors:       stats.errors,
		LastResults:  stats.lastResults,
		LastDuration: stats.lastDuration,
	}
}
