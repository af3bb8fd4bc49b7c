package dataset

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/hooponomics-service/internal/logging"
	"github.com/preston-bernstein/hooponomics-service/internal/metrics"
)

// Loader reads a Source and builds a Dataset, logging and recording each attempt.
type Loader struct {
	source   Source
	logger   *slog.Logger
	recorder *metrics.Recorder
	now      func() time.Time
}

// NewLoader constructs a Loader. logger and recorder may be nil.
func NewLoader(source Source, logger *slog.Logger, recorder *metrics.Recorder) *Loader {
	return &Loader{
		source:   source,
		logger:   logger,
		recorder: recorder,
		now:      time.Now,
	}
}

// SourceName reports the configured source.
func (l *Loader) SourceName() string {
	if l == nil || l.source == nil {
		return ""
	}
	return l.source.Name()
}

// Load reads and builds the tables. It is all-or-nothing.
func (l *Loader) Load(ctx context.Context) (*Dataset, error) {
	start := l.now()
	name := l.SourceName()

	tables, err := l.source.Load(ctx)
	if err != nil {
		l.finish(name, start, 0, err)
		return nil, err
	}
	ds, err := Build(tables, name, start)
	if err != nil {
		l.finish(name, start, 0, err)
		return nil, err
	}
	for _, w := range ds.Warnings() {
		logging.Warn(l.logger, "dataset inconsistency", slog.String(logging.FieldSource, name), slog.String("detail", w))
	}
	l.finish(name, start, ds.Len(), nil)
	logging.Info(l.logger, "dataset loaded",
		slog.String(logging.FieldSource, name),
		slog.Int(logging.FieldPlayers, ds.Len()),
		slog.Int(logging.FieldTeams, len(ds.teams)),
		slog.Int("warnings", len(ds.warnings)),
	)
	return ds, nil
}

func (l *Loader) finish(name string, start time.Time, rows int, err error) {
	duration := l.now().Sub(start)
	l.recorder.RecordDatasetLoad(name, duration, rows, err)
	if err != nil {
		logging.Error(l.logger, "dataset load failed", err,
			slog.String(logging.FieldSource, name),
			slog.Int64(logging.FieldDurationMS, duration.Milliseconds()),
		)
	}
}
