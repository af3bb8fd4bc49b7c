package players

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/hooponomics-service/internal/domain/players"
	"github.com/preston-bernstein/hooponomics-service/internal/logging"
	"github.com/preston-bernstein/hooponomics-service/internal/metrics"
	"github.com/preston-bernstein/hooponomics-service/internal/query"
	"github.com/preston-bernstein/hooponomics-service/internal/valuation"
)

// Engines supplies the query engine for the loaded tables.
type Engines interface {
	Engine(ctx context.Context) (*query.Engine, error)
}

// Limits are the default result sizes applied when callers pass none.
type Limits struct {
	Similar int
	Ranked  int
}

// Service coordinates player queries, recording each one.
type Service struct {
	engines  Engines
	limits   Limits
	recorder *metrics.Recorder
	logger   *slog.Logger
}

// NewService constructs a Service. Non-positive limits fall back to the query defaults.
func NewService(engines Engines, limits Limits, recorder *metrics.Recorder, logger *slog.Logger) *Service {
	if limits.Similar <= 0 {
		limits.Similar = query.DefaultSimilarLimit
	}
	if limits.Ranked <= 0 {
		limits.Ranked = query.DefaultRankedLimit
	}
	return &Service{engines: engines, limits: limits, recorder: recorder, logger: logger}
}

// Limits reports the configured default result sizes.
func (s *Service) Limits() Limits {
	return s.limits
}

// Player returns one player's detail record.
func (s *Service) Player(ctx context.Context, name string) (valuation.Detail, error) {
	start := time.Now()
	e, err := s.engines.Engine(ctx)
	if err != nil {
		s.record(ctx, "player", start, 0, err)
		return valuation.Detail{}, err
	}
	d, err := e.Player(name)
	s.record(ctx, "player", start, boolCount(err == nil), err, slog.String(logging.FieldPlayer, name))
	return d, err
}

// Similar returns up to limit players comparable to name.
func (s *Service) Similar(ctx context.Context, name string, limit int) ([]valuation.Row, error) {
	start := time.Now()
	e, err := s.engines.Engine(ctx)
	if err != nil {
		s.record(ctx, "similar", start, 0, err)
		return nil, err
	}
	rows, err := e.Similar(name, limit)
	s.record(ctx, "similar", start, len(rows), err, slog.String(logging.FieldPlayer, name))
	return rows, err
}

// Ranked returns the most under- or overvalued players of the allowed positions.
func (s *Service) Ranked(ctx context.Context, dir query.Direction, positions []players.Position, limit int) ([]valuation.Row, error) {
	start := time.Now()
	kind := string(dir)
	e, err := s.engines.Engine(ctx)
	if err != nil {
		s.record(ctx, kind, start, 0, err)
		return nil, err
	}
	rows := e.Ranked(dir, positions, limit)
	s.record(ctx, kind, start, len(rows), nil, slog.Int(logging.FieldCount, limit))
	return rows, nil
}

// Search returns player names matching q.
func (s *Service) Search(ctx context.Context, q string, limit int) ([]string, error) {
	start := time.Now()
	e, err := s.engines.Engine(ctx)
	if err != nil {
		s.record(ctx, "search", start, 0, err)
		return nil, err
	}
	found := e.Search(q, limit)
	s.record(ctx, "search", start, len(found), nil, slog.String(logging.FieldQuery, q))
	return found, nil
}

func (s *Service) record(ctx context.Context, kind string, start time.Time, results int, err error, attrs ...any) {
	duration := time.Since(start)
	s.recorder.RecordQuery(kind, duration, results, err)
	logger := logging.FromContext(ctx, s.logger)
	args := append([]any{
		slog.String("kind", kind),
		slog.Int("results", results),
		slog.Int64(logging.FieldDurationMS, duration.Milliseconds()),
	}, attrs...)
	if err != nil {
		args = append(args, slog.Any("error", err))
	}
	logging.Debug(logger, "query", args...)
}

func boolCount(ok bool) int {
	if ok {
		return 1
	}
	return 0
}
