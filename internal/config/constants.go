package config

const (
	envPort           = "PORT"
	envDataSource     = "DATA_SOURCE"
	envPlayersCSV     = "PLAYERS_CSV"
	envTeamsCSV       = "TEAMS_CSV"
	envSQLitePath     = "SQLITE_PATH"
	envReloadInterval = "RELOAD_INTERVAL"
	envSimilarLimit   = "SIMILAR_LIMIT"
	envRankedLimit    = "RANKED_LIMIT"
	envProfileBaseURL = "PROFILE_BASE_URL"
	envAdminToken     = "ADMIN_TOKEN"
	envCORSOrigins    = "CORS_ORIGINS"
	envRateLimitRPS   = "RATE_LIMIT_RPS"
	envRateLimitBurst = "RATE_LIMIT_BURST"
	envTrustProxy     = "TRUST_PROXY"
	envMetricsPort    = "METRICS_PORT"
	envMetricsOn      = "METRICS_ENABLED"
	envOtelEndpoint   = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService    = "OTEL_SERVICE_NAME"
	envOtelInsecure   = "OTEL_EXPORTER_OTLP_INSECURE"
	envLogLevel       = "LOG_LEVEL"
	envLogFormat      = "LOG_FORMAT"

	// DefaultEnvFile is read, when present, before the environment.
	DefaultEnvFile = ".env"

	defaultPort           = "4000"
	defaultDataSource     = "csv"
	defaultPlayersCSV     = "data/app_dfplayers.csv"
	defaultTeamsCSV       = "data/app_dfteams.csv"
	defaultSQLitePath     = "data/valuation.db"
	defaultSimilarLimit   = 10
	defaultRankedLimit    = 5
	defaultProfileBaseURL = "https://www.basketball-reference.com"
	defaultCORSOrigins    = "*"
	defaultRateLimitRPS   = 20.0
	defaultRateLimitBurst = 40
	defaultMetricsPort    = "9090"
	defaultServiceName    = "hooponomics-service"
	defaultLogLevel       = "info"
	defaultLogFormat      = "text"
)
