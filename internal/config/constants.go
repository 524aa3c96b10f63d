package config

import "time"

const (
	envPort       = "PORT"
	envAdminToken = "ADMIN_TOKEN"
	envLogLevel   = "LOG_LEVEL"
	envLogFormat  = "LOG_FORMAT"

	envEntryFee    = "LEAGUE_ENTRY_FEE"
	envBudget      = "LEAGUE_BUDGET"
	envMaxUsername = "LEAGUE_MAX_USERNAME"
	envMaxTeamName = "LEAGUE_MAX_TEAM_NAME"
	envHouseCutBPS = "LEAGUE_HOUSE_CUT_BPS"
	envOperator    = "LEAGUE_OPERATOR_ADDRESS"

	envArchiveBackend = "ARCHIVE_BACKEND"
	envArchiveSQLite  = "ARCHIVE_SQLITE_PATH"
	envArchiveDir     = "ARCHIVE_DIR"

	envFeedEnabled  = "FEED_ENABLED"
	envFeedSource   = "FEED_SOURCE"
	envFeedURL      = "FEED_URL"
	envFeedAPIKey   = "FEED_API_KEY"
	envFeedInterval = "FEED_INTERVAL"
	envFeedSpacing  = "FEED_MIN_SPACING"

	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort      = "4000"
	defaultLogLevel  = "info"
	defaultLogFormat = "text"

	defaultEntryFee    int64 = 100
	defaultBudget      int64 = 100_000_000
	defaultMaxUsername       = 20
	defaultMaxTeamName       = 30
	defaultHouseCutBPS int64 = 0

	defaultArchiveBackend = ArchiveMemory
	defaultArchiveSQLite  = "data/archive.db"
	defaultArchiveDir     = "data/archive"

	defaultFeedEnabled = true
	defaultFeedSource  = FeedFixture
	// Upstream stats refresh at most a few times a day.
	defaultFeedInterval = 15 * time.Minute
	defaultFeedSpacing  = time.Minute

	defaultMetricsPort = "9090"
	defaultServiceName = "fantasy-league-service"
)

// Archive backends.
const (
	ArchiveMemory = "memory"
	ArchiveSQLite = "sqlite"
	ArchiveFS     = "fs"
)

// Feed sources.
const (
	FeedFixture = "fixture"
	FeedHTTP    = "http"
)
