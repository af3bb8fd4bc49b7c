package teams

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/hooponomics-service/internal/logging"
	"github.com/preston-bernstein/hooponomics-service/internal/metrics"
	"github.com/preston-bernstein/hooponomics-service/internal/query"
	"github.com/preston-bernstein/hooponomics-service/internal/valuation"
)

// Engines supplies the query engine for the loaded tables.
type Engines interface {
	Engine(ctx context.Context) (*query.Engine, error)
}

// Service coordinates team queries.
type Service struct {
	engines  Engines
	recorder *metrics.Recorder
	logger   *slog.Logger
}

// NewService constructs a Service.
func NewService(engines Engines, recorder *metrics.Recorder, logger *slog.Logger) *Service {
	return &Service{engines: engines, recorder: recorder, logger: logger}
}

// Teams returns team display names in table order.
func (s *Service) Teams(ctx context.Context) ([]string, error) {
	start := time.Now()
	e, err := s.engines.Engine(ctx)
	if err != nil {
		s.record(ctx, "teams", start, 0, err)
		return nil, err
	}
	names := e.Teams()
	s.record(ctx, "teams", start, len(names), nil)
	return names, nil
}

// Roster returns the players of the named team.
func (s *Service) Roster(ctx context.Context, teamName string) ([]valuation.Row, error) {
	start := time.Now()
	e, err := s.engines.Engine(ctx)
	if err != nil {
		s.record(ctx, "roster", start, 0, err)
		return nil, err
	}
	rows, err := e.TeamRoster(teamName)
	s.record(ctx, "roster", start, len(rows), err, slog.String(logging.FieldTeam, teamName))
	return rows, err
}

// Surplus returns the net surplus table, highest first.
func (s *Service) Surplus(ctx context.Context) ([]valuation.TeamSurplusRow, error) {
	start := time.Now()
	e, err := s.engines.Engine(ctx)
	if err != nil {
		s.record(ctx, "team_surplus", start, 0, err)
		return nil, err
	}
	rows := e.TeamSurplus()
	s.record(ctx, "team_surplus", start, len(rows), nil)
	return rows, nil
}

func (s *Service) record(ctx context.Context, kind string, start time.Time, results int, err error, attrs ...any) {
	duration := time.Since(start)
	s.recorder.RecordQuery(kind, duration, results, err)
	args := append([]any{
		slog.String("kind", kind),
		slog.Int("results", results),
		slog.Int64(logging.FieldDurationMS, duration.Milliseconds()),
	}, attrs...)
	if err != nil {
		args = append(args, slog.Any("error", err))
	}
	logging.Debug(logging.FromContext(ctx, s.logger), "query", args...)
}
