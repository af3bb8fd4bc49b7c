// Package poller reloads the valuation tables on a fixed interval so updated
// exports are picked up without a restart.
package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/hooponomics-service/internal/dataset"
	"github.com/preston-bernstein/hooponomics-service/internal/logging"
)

// Reloader swaps in freshly loaded tables, keeping the previous ones on failure.
type Reloader interface {
	Reload(ctx context.Context) (*dataset.Dataset, error)
}

// Poller calls Reload on an interval.
type Poller struct {
	reloader Reloader
	logger   *slog.Logger
	interval time.Duration

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the reload loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
	LastPlayers         int
}

// Healthy reports whether the last few reloads have not all failed.
func (s Status) Healthy() bool {
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller. A non-positive interval yields a Poller whose
// Start is a no-op.
func New(reloader Reloader, logger *slog.Logger, interval time.Duration) *Poller {
	return &Poller{
		reloader: reloader,
		logger:   logger,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start begins reloading until the context is cancelled or Stop is called.
// The first reload happens one interval after Start.
func (p *Poller) Start(ctx context.Context) {
	if p.interval <= 0 || p.reloader == nil {
		return
	}
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.ticker = time.NewTicker(p.interval)
	p.startMu.Unlock()

	go func() {
		logging.Info(p.logger, "poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.done:
				p.stopTicker()
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.ticker.C:
				p.reloadOnce(ctx)
			}
		}
	}()
}

// Stop halts the reload loop.
func (p *Poller) Stop(ctx context.Context) error {
	_ = ctx
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
	return nil
}

func (p *Poller) reloadOnce(ctx context.Context) {
	start := time.Now()
	p.recordAttempt(start)
	ds, err := p.reloader.Reload(ctx)
	if err != nil {
		logging.Error(p.logger, "poller reload failed", err, slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()))
		p.recordFailure(err, start)
		return
	}
	p.recordSuccess(start, ds.Len())
	logging.Info(p.logger, "poller reloaded dataset",
		slog.Int(logging.FieldPlayers, ds.Len()),
		slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
	)
}

func (p *Poller) stopTicker() {
	p.startMu.Lock()
	defer p.startMu.Unlock()
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time, players int) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
	p.status.LastPlayers = players
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
