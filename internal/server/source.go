package server

import (
	"log/slog"

	"github.com/preston-bernstein/hooponomics-service/internal/config"
	"github.com/preston-bernstein/hooponomics-service/internal/dataset"
)

func selectSource(cfg config.Config, logger *slog.Logger) dataset.Source {
	switch cfg.Data.Source {
	case "csv", "":
		return dataset.NewCSVSource(cfg.Data.PlayersPath, cfg.Data.TeamsPath)
	case "sqlite":
		return dataset.NewSQLiteSource(cfg.Data.SQLitePath)
	default:
		if logger != nil {
			logger.Warn("unknown data source, falling back to csv", slog.String("source", cfg.Data.Source))
		}
		return dataset.NewCSVSource(cfg.Data.PlayersPath, cfg.Data.TeamsPath)
	}
}
