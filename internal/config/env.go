package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// newViper layers an optional dotenv file under the process environment.
// Variables already set in the environment win over the file.
func newViper(envFile string) *viper.Viper {
	if envFile != "" {
		// A missing file is not an error; the environment alone is enough.
		_ = godotenv.Load(envFile)
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(envPort, defaultPort)
	v.SetDefault(envDataSource, defaultDataSource)
	v.SetDefault(envPlayersCSV, defaultPlayersCSV)
	v.SetDefault(envTeamsCSV, defaultTeamsCSV)
	v.SetDefault(envSQLitePath, defaultSQLitePath)
	v.SetDefault(envProfileBaseURL, defaultProfileBaseURL)
	v.SetDefault(envCORSOrigins, defaultCORSOrigins)
	v.SetDefault(envMetricsPort, defaultMetricsPort)
	v.SetDefault(envOtelService, defaultServiceName)
	v.SetDefault(envLogLevel, defaultLogLevel)
	v.SetDefault(envLogFormat, defaultLogFormat)
}

// stringOrDefault treats blank values as unset.
func stringOrDefault(v *viper.Viper, key, defaultValue string) string {
	val := strings.TrimSpace(v.GetString(key))
	if val != "" {
		return val
	}
	return defaultValue
}

func intOrDefault(v *viper.Viper, key string, defaultValue int) int {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		return defaultValue
	}
	return val
}

func floatOrDefault(v *viper.Viper, key string, defaultValue float64) float64 {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return defaultValue
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil || val <= 0 {
		return defaultValue
	}
	return val
}

func boolOrDefault(v *viper.Viper, key string, defaultValue bool) bool {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return defaultValue
	}
	if raw == "1" || strings.EqualFold(raw, "true") || strings.EqualFold(raw, "yes") {
		return true
	}
	if raw == "0" || strings.EqualFold(raw, "false") || strings.EqualFold(raw, "no") {
		return false
	}
	return defaultValue
}

func listOrDefault(v *viper.Viper, key, defaultValue string) []string {
	raw := stringOrDefault(v, key, defaultValue)
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// durationOrDefault parses Go duration strings ("90s", "15m"). Negative or
// malformed values fall back to defaultValue.
func durationOrDefault(v *viper.Viper, key string, defaultValue time.Duration) time.Duration {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return defaultValue
	}
	val, err := time.ParseDuration(raw)
	if err != nil || val < 0 {
		return defaultValue
	}
	return val
}
