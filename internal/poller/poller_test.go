package poller

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/preston-bernstein/hooponomics-service/internal/app"
	"github.com/preston-bernstein/hooponomics-service/internal/dataset"
	"github.com/preston-bernstein/hooponomics-service/internal/store"
	"github.com/preston-bernstein/hooponomics-service/internal/testutil"
)

func newReloader() (*app.Engines, *testutil.CountingSource) {
	source := &testutil.CountingSource{Tables: testutil.SampleTables()}
	loader := dataset.NewLoader(source, nil, nil)
	return app.NewEngines(store.NewCache(loader.Load), ""), source
}

func waitForCalls(t *testing.T, source *testutil.CountingSource, n int64) {
	t.Helper()
	deadline := time.Now().Add(500 * time.Millisecond)
	for source.Calls() < n {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d reloads, got %d", n, source.Calls())
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func TestPollerReloadsOnInterval(t *testing.T) {
	engines, source := newReloader()
	p := New(engines, nil, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	waitForCalls(t, source, 2)
	_ = p.Stop(context.Background())

	if !engines.Ready() {
		t.Fatalf("expected dataset loaded by reload")
	}
	status := p.Status()
	if status.LastSuccess.IsZero() || status.LastPlayers != 12 {
		t.Fatalf("unexpected status %+v", status)
	}
}

func TestPollerStopsOnContextCancel(t *testing.T) {
	engines, source := newReloader()
	p := New(engines, nil, 5*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	p.Start(ctx)
	waitForCalls(t, source, 1)

	cancel()
	_ = p.Stop(context.Background())
	time.Sleep(10 * time.Millisecond)

	callsAfterStop := source.Calls()
	time.Sleep(20 * time.Millisecond)
	if source.Calls() != callsAfterStop {
		t.Fatalf("expected no additional reloads after stop; before=%d after=%d", callsAfterStop, source.Calls())
	}
}

func TestPollerDisabledWithoutInterval(t *testing.T) {
	engines, source := newReloader()
	p := New(engines, nil, 0)

	p.Start(context.Background())
	time.Sleep(10 * time.Millisecond)

	if p.ticker != nil || source.Calls() != 0 {
		t.Fatalf("expected disabled poller to do nothing")
	}
}

func TestPollerStopIsIdempotent(t *testing.T) {
	engines, _ := newReloader()
	p := New(engines, nil, time.Hour)

	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("first stop returned error: %v", err)
	}
	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("second stop returned error: %v", err)
	}
}

func TestPollerStartIsIdempotent(t *testing.T) {
	engines, _ := newReloader()
	p := New(engines, nil, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p.Start(ctx)
	first := p.ticker
	p.Start(ctx)
	if p.ticker != first {
		t.Fatalf("expected second start to no-op")
	}

	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("stop returned error: %v", err)
	}
}

func TestPollerStatusTracksFailuresAndSuccess(t *testing.T) {
	engines, source := newReloader()
	source.SetErr(errors.New("boom"))
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	p := New(engines, logger, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		p.reloadOnce(ctx)
	}
	status := p.Status()
	if status.ConsecutiveFailures != 3 || status.LastError == "" {
		t.Fatalf("expected 3 recorded failures, got %+v", status)
	}
	if !status.LastSuccess.IsZero() {
		t.Fatalf("expected no success recorded yet")
	}
	if status.Healthy() {
		t.Fatalf("expected unhealthy after repeated failures")
	}

	source.SetErr(nil)
	p.reloadOnce(ctx)
	status = p.Status()
	if status.ConsecutiveFailures != 0 || status.LastError != "" {
		t.Fatalf("expected failures reset, got %+v", status)
	}
	if !status.Healthy() || status.LastSuccess.IsZero() {
		t.Fatalf("expected healthy after success")
	}
}

func TestPollerFailedReloadKeepsPreviousTables(t *testing.T) {
	engines, source := newReloader()
	before, err := engines.Engine(context.Background())
	if err != nil {
		t.Fatalf("initial load: %v", err)
	}
	source.SetErr(errors.New("disk gone"))
	p := New(engines, nil, time.Minute)

	p.reloadOnce(context.Background())

	after, err := engines.Engine(context.Background())
	if err != nil {
		t.Fatalf("expected previous tables to stay available: %v", err)
	}
	if after != before {
		t.Fatalf("expected engine unchanged after failed reload")
	}
}
