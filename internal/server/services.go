package server

import (
	"log/slog"

	"github.com/preston-bernstein/hooponomics-service/internal/app"
	appplayers "github.com/preston-bernstein/hooponomics-service/internal/app/players"
	appteams "github.com/preston-bernstein/hooponomics-service/internal/app/teams"
	"github.com/preston-bernstein/hooponomics-service/internal/config"
	"github.com/preston-bernstein/hooponomics-service/internal/dataset"
	"github.com/preston-bernstein/hooponomics-service/internal/metrics"
	"github.com/preston-bernstein/hooponomics-service/internal/store"
)

// Services is the query layer shared by the HTTP server and the CLI.
type Services struct {
	Cache   *store.Cache
	Engines *app.Engines
	Players *appplayers.Service
	Teams   *appteams.Service
}

// NewServices builds the cache and query services for the configured source.
func NewServices(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) Services {
	return newServicesWithSource(cfg, selectSource(cfg, logger), logger, recorder)
}

func newServicesWithSource(cfg config.Config, source dataset.Source, logger *slog.Logger, recorder *metrics.Recorder) Services {
	loader := dataset.NewLoader(source, logger, recorder)
	cache := store.NewCache(loader.Load)
	engines := app.NewEngines(cache, cfg.ProfileBaseURL)
	limits := appplayers.Limits{Similar: cfg.Query.SimilarLimit, Ranked: cfg.Query.RankedLimit}
	return Services{
		Cache:   cache,
		Engines: engines,
		Players: appplayers.NewService(engines, limits, recorder, logger),
		Teams:   appteams.NewService(engines, recorder, logger),
	}
}
