package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/hooponomics-service/internal/config"
	"github.com/preston-bernstein/hooponomics-service/internal/dataset"
	httpserver "github.com/preston-bernstein/hooponomics-service/internal/http"
	"github.com/preston-bernstein/hooponomics-service/internal/http/dashboard"
	"github.com/preston-bernstein/hooponomics-service/internal/http/handlers"
	"github.com/preston-bernstein/hooponomics-service/internal/http/middleware"
	"github.com/preston-bernstein/hooponomics-service/internal/logging"
	"github.com/preston-bernstein/hooponomics-service/internal/mcptools"
	"github.com/preston-bernstein/hooponomics-service/internal/metrics"
	"github.com/preston-bernstein/hooponomics-service/internal/poller"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	services      Services
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	metricsStop   func(context.Context) error
}

// New constructs a server reading from the configured data source.
func New(cfg config.Config, logger *slog.Logger, version string) *Server {
	return newServerWithMetrics(cfg, logger, nil, nil, version)
}

func newServerWithSource(cfg config.Config, logger *slog.Logger, source dataset.Source) *Server {
	return newServerWithMetrics(cfg, logger, source, nil, "test")
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, source dataset.Source, recorder *metrics.Recorder, version string) *Server {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)
	if source == nil {
		source = selectSource(cfg, logger)
	}
	svcs := newServicesWithSource(cfg, source, logger, recorder)
	httpSrv := buildHTTPServer(cfg, svcs, logger, recorder, version)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		services:      svcs,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		poller:        poller.New(svcs.Engines, logger, cfg.Data.ReloadInterval),
		metricsStop:   metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, svcs Services, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		services:   svcs,
		httpServer: httpSrv,
		poller:     plr,
	}
}

func buildHTTPServer(cfg config.Config, svcs Services, logger *slog.Logger, recorder *metrics.Recorder, version string) httpServer {
	routes := httpserver.Routes{
		API:         handlers.NewHandler(svcs.Players, svcs.Teams, svcs.Engines.Ready, logger),
		Admin:       handlers.NewAdminHandler(svcs.Engines, cfg.AdminToken, logger),
		Dashboard:   dashboard.NewHandler(svcs.Players, svcs.Teams, logger),
		MCP:         mcptools.NewHandler(mcptools.NewServer(svcs.Players, svcs.Teams, version)),
		Logger:      logger,
		Recorder:    recorder,
		RateLimiter: middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.TrustProxy),
		CORSOrigins: cfg.CORSOrigins,
	}

	return newNetHTTPServer(cfg.Port, httpserver.NewRouter(routes))
}

// Run starts the HTTP servers, warms the table cache and starts the reload
// poller, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.warm(ctx)
	if s.poller != nil {
		s.poller.Start(ctx)
	}

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

// warm loads the tables up front. A failure leaves the server running with
// /ready reporting unavailable; the next query or admin reload retries.
func (s *Server) warm(ctx context.Context) {
	if s.services.Engines == nil {
		return
	}
	e, err := s.services.Engines.Engine(ctx)
	if err != nil {
		logging.Error(s.logger, "initial dataset load failed", err)
		return
	}
	ds := e.Dataset()
	logging.Info(s.logger, "dataset ready",
		slog.String(logging.FieldSource, ds.Source()),
		slog.Int(logging.FieldPlayers, ds.Len()),
		slog.Int(logging.FieldTeams, len(ds.Teams())),
	)
}

func (s *Server) startServer(stop context.CancelFunc) {
	if s.logger != nil {
		s.logger.Info("http server starting", slog.String("addr", s.httpServer.Addr()))
	}
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	if s.logger != nil {
		s.logger.Info("metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if s.poller != nil {
		if err := s.poller.Stop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Error("failed to stop poller", "error", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = newNetHTTPServer(recCfg.Port, handler)
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
