package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// rawEnv holds environment values before validation. Everything is read as a
// string so malformed values can fall back to defaults instead of failing.
type rawEnv struct {
	Port       string `env:"PORT"`
	AdminToken string `env:"ADMIN_TOKEN"`
	LogLevel   string `env:"LOG_LEVEL"`
	LogFormat  string `env:"LOG_FORMAT"`

	EntryFee    string `env:"LEAGUE_ENTRY_FEE"`
	Budget      string `env:"LEAGUE_BUDGET"`
	MaxUsername string `env:"LEAGUE_MAX_USERNAME"`
	MaxTeamName string `env:"LEAGUE_MAX_TEAM_NAME"`
	HouseCutBPS string `env:"LEAGUE_HOUSE_CUT_BPS"`
	Operator    string `env:"LEAGUE_OPERATOR_ADDRESS"`

	ArchiveBackend string `env:"ARCHIVE_BACKEND"`
	ArchiveSQLite  string `env:"ARCHIVE_SQLITE_PATH"`
	ArchiveDir     string `env:"ARCHIVE_DIR"`

	FeedEnabled  string `env:"FEED_ENABLED"`
	FeedSource   string `env:"FEED_SOURCE"`
	FeedURL      string `env:"FEED_URL"`
	FeedAPIKey   string `env:"FEED_API_KEY"`
	FeedInterval string `env:"FEED_INTERVAL"`
	FeedSpacing  string `env:"FEED_MIN_SPACING"`

	MetricsEnabled string `env:"METRICS_ENABLED"`
	MetricsPort    string `env:"METRICS_PORT"`
	OtelEndpoint   string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtelService    string `env:"OTEL_SERVICE_NAME"`
	OtelInsecure   string `env:"OTEL_EXPORTER_OTLP_INSECURE"`
}

func parseEnv() (rawEnv, error) {
	var raw rawEnv
	if err := env.Parse(&raw); err != nil {
		return rawEnv{}, fmt.Errorf("parse env: %w", err)
	}
	return raw, nil
}

func stringOrDefault(raw, defaultValue string) string {
	raw = strings.TrimSpace(raw)
	if raw != "" {
		return raw
	}
	return defaultValue
}

func durationOrDefault(raw string, defaultValue time.Duration) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return defaultValue
	}
	return parsed
}

func boolOrDefault(raw string, defaultValue bool) bool {
	raw = strings.TrimSpace(raw)
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

// int64OrError parses a league rule. A malformed value is an error, never a
// fallback.
func int64OrError(key, raw string, defaultValue int64) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer", key, raw)
	}
	return v, nil
}
