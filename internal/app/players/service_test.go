package players

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/preston-bernstein/hooponomics-service/internal/domain"
	"github.com/preston-bernstein/hooponomics-service/internal/domain/players"
	"github.com/preston-bernstein/hooponomics-service/internal/logging"
	"github.com/preston-bernstein/hooponomics-service/internal/metrics"
	"github.com/preston-bernstein/hooponomics-service/internal/query"
	"github.com/preston-bernstein/hooponomics-service/internal/testutil"
)

type stubEngines struct {
	engine *query.Engine
	err    error
}

func (s stubEngines) Engine(ctx context.Context) (*query.Engine, error) {
	_ = ctx
	return s.engine, s.err
}

func newService(t *testing.T, limits Limits) (*Service, *metrics.Recorder) {
	t.Helper()
	rec := metrics.NewRecorder()
	engine := query.NewEngine(testutil.SampleDataset(t), "https://www.basketball-reference.com")
	return NewService(stubEngines{engine: engine}, limits, rec, nil), rec
}

func TestNewServiceDefaultsLimits(t *testing.T) {
	svc, _ := newService(t, Limits{})
	if got := svc.Limits(); got.Similar != query.DefaultSimilarLimit || got.Ranked != query.DefaultRankedLimit {
		t.Fatalf("unexpected default limits %+v", got)
	}
	svc, _ = newService(t, Limits{Similar: 3, Ranked: 2})
	if got := svc.Limits(); got.Similar != 3 || got.Ranked != 2 {
		t.Fatalf("expected configured limits, got %+v", got)
	}
}

func TestPlayerAndSimilar(t *testing.T) {
	svc, rec := newService(t, Limits{})

	d, err := svc.Player(context.Background(), "Luka Dončić")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if d.MarketValueLabel != "$30M+" || d.SurplusValue != "0" {
		t.Fatalf("unexpected detail %+v", d)
	}

	rows, err := svc.Similar(context.Background(), "Luka Dončić", 5)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(rows) != 2 || rows[0].Name != "Jalen Brunson" {
		t.Fatalf("unexpected similar rows %+v", rows)
	}

	if got := rec.QueryStats("player"); got.Calls != 1 || got.LastResults != 1 {
		t.Fatalf("unexpected player stats %+v", got)
	}
	if got := rec.QueryStats("similar"); got.LastResults != 2 {
		t.Fatalf("unexpected similar stats %+v", got)
	}
}

func TestPlayerNotFoundIsRecorded(t *testing.T) {
	svc, rec := newService(t, Limits{})

	_, err := svc.Player(context.Background(), "Nobody")
	if _, ok := domain.AsNotFoundError(err); !ok {
		t.Fatalf("expected not found, got %v", err)
	}
	if rec.QueryStats("player").Errors != 1 {
		t.Fatalf("expected recorded error")
	}
}

func TestRankedAndSearch(t *testing.T) {
	svc, rec := newService(t, Limits{})

	rows, err := svc.Ranked(context.Background(), query.Overvalued, players.AllPositions, 1)
	if err != nil || len(rows) != 1 || rows[0].Name != "Jamal Murray" {
		t.Fatalf("unexpected ranked rows %+v err %v", rows, err)
	}
	if rec.QueryStats("overvalued").Calls != 1 {
		t.Fatalf("expected overvalued query recorded")
	}

	names, err := svc.Search(context.Background(), "irv", 5)
	if err != nil || len(names) != 1 || names[0] != "Kyrie Irving" {
		t.Fatalf("unexpected search result %v err %v", names, err)
	}
}

func TestServiceLogsThroughContextLogger(t *testing.T) {
	svc, _ := newService(t, Limits{})
	var buf bytes.Buffer
	ctx := logging.WithLogger(context.Background(), logging.NewLogger(logging.Config{Level: "debug", Output: &buf}))

	if _, err := svc.Search(ctx, "ja", 2); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !strings.Contains(buf.String(), "kind=search") {
		t.Fatalf("expected debug query log, got %q", buf.String())
	}
}

func TestServicePropagatesLoadError(t *testing.T) {
	loadErr := &domain.DataLoadError{Source: "csv", Err: errors.New("missing")}
	svc := NewService(stubEngines{err: loadErr}, Limits{}, nil, nil)

	if _, err := svc.Player(context.Background(), "x"); !errors.Is(err, loadErr) {
		t.Fatalf("expected load error, got %v", err)
	}
	if _, err := svc.Similar(context.Background(), "x", 1); !errors.Is(err, loadErr) {
		t.Fatalf("expected load error, got %v", err)
	}
	if _, err := svc.Ranked(context.Background(), query.Undervalued, players.AllPositions, 1); !errors.Is(err, loadErr) {
		t.Fatalf("expected load error, got %v", err)
	}
	if _, err := svc.Search(context.Background(), "x", 1); !errors.Is(err, loadErr) {
		t.Fatalf("expected load error, got %v", err)
	}
}
