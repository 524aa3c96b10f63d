package config

// Config holds runtime configuration for the server.
type Config struct {
	Port       string
	AdminToken string
	Log        LogConfig
	League     LeagueConfig
	Archive    ArchiveConfig
	Feed       FeedConfig
	Metrics    MetricsConfig
}

// LogConfig selects log level and output format.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with sensible
// defaults. Malformed operational values fall back to defaults; malformed
// league rules are returned as errors.
func Load() (Config, error) {
	raw, err := parseEnv()
	if err != nil {
		return Config{}, err
	}
	league, err := loadLeague(raw)
	if err != nil {
		return Config{}, err
	}
	return Config{
		Port:       stringOrDefault(raw.Port, defaultPort),
		AdminToken: stringOrDefault(raw.AdminToken, ""),
		Log: LogConfig{
			Level:  stringOrDefault(raw.LogLevel, defaultLogLevel),
			Format: stringOrDefault(raw.LogFormat, defaultLogFormat),
		},
		League:  league,
		Archive: loadArchive(raw),
		Feed:    loadFeed(raw),
		Metrics: loadMetrics(raw),
	}, nil
}
