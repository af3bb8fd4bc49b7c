// Package config reads runtime settings from the environment and an
// optional dotenv file.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds runtime configuration for the server and CLI.
type Config struct {
	Port           string
	Data           DataConfig
	Query          QueryConfig
	ProfileBaseURL string
	AdminToken     string
	CORSOrigins    []string
	RateLimit      RateLimitConfig
	Metrics        MetricsConfig
	Log            LogConfig
}

// DataConfig selects and locates the valuation tables.
type DataConfig struct {
	Source      string // csv|sqlite
	PlayersPath string
	TeamsPath   string
	SQLitePath  string
	// ReloadInterval re-reads the source periodically; zero disables it.
	ReloadInterval time.Duration
}

// QueryConfig holds default result sizes.
type QueryConfig struct {
	SimilarLimit int
	RankedLimit  int
}

// RateLimitConfig bounds per-client request rates on the API.
type RateLimitConfig struct {
	RPS   float64
	Burst int
	// TrustProxy keys clients on X-Forwarded-For; enable only behind a proxy
	// that appends to it.
	TrustProxy bool
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from DefaultEnvFile and the environment.
func Load() Config {
	return LoadFrom(DefaultEnvFile)
}

// LoadFrom reads configuration from envFile (skipped when absent) and the
// environment. Invalid or non-positive numbers fall back to defaults.
func LoadFrom(envFile string) Config {
	v := newViper(envFile)
	return Config{
		Port: stringOrDefault(v, envPort, defaultPort),
		Data: DataConfig{
			Source:         strings.ToLower(stringOrDefault(v, envDataSource, defaultDataSource)),
			PlayersPath:    stringOrDefault(v, envPlayersCSV, defaultPlayersCSV),
			TeamsPath:      stringOrDefault(v, envTeamsCSV, defaultTeamsCSV),
			SQLitePath:     stringOrDefault(v, envSQLitePath, defaultSQLitePath),
			ReloadInterval: durationOrDefault(v, envReloadInterval, 0),
		},
		Query: QueryConfig{
			SimilarLimit: intOrDefault(v, envSimilarLimit, defaultSimilarLimit),
			RankedLimit:  intOrDefault(v, envRankedLimit, defaultRankedLimit),
		},
		ProfileBaseURL: stringOrDefault(v, envProfileBaseURL, defaultProfileBaseURL),
		AdminToken:     stringOrDefault(v, envAdminToken, ""),
		CORSOrigins:    listOrDefault(v, envCORSOrigins, defaultCORSOrigins),
		RateLimit: RateLimitConfig{
			RPS:        floatOrDefault(v, envRateLimitRPS, defaultRateLimitRPS),
			Burst:      intOrDefault(v, envRateLimitBurst, defaultRateLimitBurst),
			TrustProxy: boolOrDefault(v, envTrustProxy, false),
		},
		Metrics: loadMetrics(v),
		Log:     loadLog(v),
	}
}

func loadLog(v *viper.Viper) LogConfig {
	return LogConfig{
		Level:  stringOrDefault(v, envLogLevel, defaultLogLevel),
		Format: stringOrDefault(v, envLogFormat, defaultLogFormat),
	}
}
