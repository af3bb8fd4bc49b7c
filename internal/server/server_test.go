package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/preston-bernstein/hooponomics-service/internal/config"
	"github.com/preston-bernstein/hooponomics-service/internal/domain"
	"github.com/preston-bernstein/hooponomics-service/internal/testutil"
)

type stubPoller struct {
	mu         sync.Mutex
	startCalls int
	stopCalls  int
	err        error
}

func (p *stubPoller) Start(ctx context.Context) {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()
	p.startCalls++
}

func (p *stubPoller) Stop(ctx context.Context) error {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopCalls++
	return p.err
}

func TestServerServesHealthAndPlayers(t *testing.T) {
	srv := newServerWithSource(config.Config{}, nil, sampleSource())
	srv.warm(context.Background())

	router := srv.Handler()

	healthRec := httptest.NewRecorder()
	router.ServeHTTP(healthRec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if healthRec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /health, got %d", healthRec.Code)
	}

	readyRec := httptest.NewRecorder()
	router.ServeHTTP(readyRec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if readyRec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /ready after warm, got %d", readyRec.Code)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/players?q=ja", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /players, got %d", rec.Code)
	}
	var body struct {
		Players []string `json:"players"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode players response: %v", err)
	}
	if len(body.Players) != 2 || body.Players[0] != "Jamal Murray" {
		t.Fatalf("unexpected search result %v", body.Players)
	}
}

func TestServerServesDashboardAndMCP(t *testing.T) {
	srv := newServerWithSource(config.Config{}, nil, sampleSource())
	router := srv.Handler()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from dashboard, got %d", rec.Code)
	}

	mcpRec := httptest.NewRecorder()
	router.ServeHTTP(mcpRec, httptest.NewRequest(http.MethodGet, "/mcp", nil))
	if mcpRec.Code == http.StatusNotFound {
		t.Fatalf("expected /mcp to be mounted")
	}
}

func TestServerLoadFailureReportsNotReady(t *testing.T) {
	loadErr := &domain.DataLoadError{Source: "players.csv", Err: errors.New("missing")}
	srv := newServerWithSource(config.Config{}, nil, testutil.ErrSource{Err: loadErr})
	srv.warm(context.Background())

	router := srv.Handler()
	for path, want := range map[string]int{
		"/ready":  http.StatusServiceUnavailable,
		"/teams":  http.StatusServiceUnavailable,
		"/health": http.StatusOK,
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != want {
			t.Fatalf("%s: expected %d, got %d", path, want, rec.Code)
		}
	}
}

func TestSelectSource(t *testing.T) {
	cases := map[string]string{
		"":        "csv",
		"csv":     "csv",
		"sqlite":  "sqlite",
		"parquet": "csv",
	}
	for raw, want := range cases {
		src := selectSource(config.Config{Data: config.DataConfig{Source: raw}}, nil)
		if src.Name() != want {
			t.Fatalf("source %q: expected %s, got %s", raw, want, src.Name())
		}
	}
}

func TestNewServicesReadsConfiguredCSV(t *testing.T) {
	dir := filepath.Join("..", "dataset", "testdata")
	cfg := config.Config{Data: config.DataConfig{
		Source:      "csv",
		PlayersPath: filepath.Join(dir, "players.csv"),
		TeamsPath:   filepath.Join(dir, "teams.csv"),
	}}

	svcs := NewServices(cfg, nil, nil)
	names, err := svcs.Teams.Teams(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 3 || names[0] != "Denver Nuggets" {
		t.Fatalf("unexpected teams %v", names)
	}
}

func TestNewConstructsServer(t *testing.T) {
	cfg := config.Config{
		Port:    "0",
		Metrics: config.MetricsConfig{Enabled: false},
	}
	srv := New(cfg, nil, "test")
	if srv == nil || srv.Handler() == nil {
		t.Fatalf("expected server with handler")
	}
}

func TestGracefulShutdownCallsShutdown(t *testing.T) {
	httpSrv := &testutil.StubHTTPServer{}

	srv := newServerWithDeps(config.Config{}, nil, Services{}, httpSrv, nil)
	srv.gracefulShutdown()

	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", httpSrv.ShutdownCalls)
	}
}

type slowHTTPServer struct {
	testutil.StubHTTPServer
}

func (s *slowHTTPServer) Shutdown(ctx context.Context) error {
	s.ShutdownCalls++
	<-ctx.Done()
	return ctx.Err()
}

func TestGracefulShutdownTimesOutLongRunningShutdown(t *testing.T) {
	slow := &slowHTTPServer{}

	original := shutdownTimeout
	shutdownTimeout = 5 * time.Millisecond
	defer func() { shutdownTimeout = original }()

	srv := newServerWithDeps(config.Config{}, nil, Services{}, slow, nil)

	start := time.Now()
	srv.gracefulShutdown()
	elapsed := time.Since(start)

	if slow.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", slow.ShutdownCalls)
	}
	if elapsed > 200*time.Millisecond {
		t.Fatalf("shutdown took too long: %s", elapsed)
	}
}

func TestServerStartHandlesListenErrorAndStops(t *testing.T) {
	httpSrv := &testutil.ErrHTTPServer{}
	srv := newServerWithDeps(config.Config{}, nil, Services{}, httpSrv, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	stopCalled := make(chan struct{})
	stop := func() {
		close(stopCalled)
		wg.Done()
	}

	srv.startServer(stop)

	select {
	case <-stopCalled:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected stop to be called on listen failure")
	}

	wg.Wait()
}

func TestRunCancelsAndStopsComponents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	source := &testutil.CountingSource{Tables: testutil.SampleTables()}
	svcs := newServicesWithSource(config.Config{}, source, nil, nil)
	httpSrv := testutil.NewBlockingHTTPServer()

	plr := &stubPoller{}
	srv := newServerWithDeps(config.Config{}, nil, svcs, httpSrv, plr)

	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()

	deadline := time.Now().Add(500 * time.Millisecond)
	for !svcs.Engines.Ready() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("run did not return after cancel")
	}

	if source.Calls() != 1 {
		t.Fatalf("expected initial load once, got %d", source.Calls())
	}
	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown called once, got %d", httpSrv.ShutdownCalls)
	}
	if plr.startCalls != 1 || plr.stopCalls != 1 {
		t.Fatalf("expected poller started and stopped once, got %d/%d", plr.startCalls, plr.stopCalls)
	}
}

func TestGracefulShutdownContinuesWhenPollerStopErrors(t *testing.T) {
	plr := &stubPoller{err: errors.New("stop failure")}
	httpSrv := &testutil.StubHTTPServer{}

	srv := newServerWithDeps(config.Config{}, nil, Services{}, httpSrv, plr)
	srv.gracefulShutdown()

	if plr.stopCalls != 1 {
		t.Fatalf("expected poller Stop to be called once, got %d", plr.stopCalls)
	}
	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", httpSrv.ShutdownCalls)
	}
}
