package config

import (
	"strings"
	"time"
)

// FeedConfig controls the scheduled player sync.
type FeedConfig struct {
	Enabled  bool
	Source   string
	URL      string
	APIKey   string
	Interval time.Duration
	// MinSpacing is the shortest gap between two upstream HTTP fetches.
	MinSpacing time.Duration
}

func loadFeed(raw rawEnv) FeedConfig {
	cfg := FeedConfig{
		Enabled:    boolOrDefault(raw.FeedEnabled, defaultFeedEnabled),
		Source:     strings.ToLower(stringOrDefault(raw.FeedSource, "")),
		URL:        stringOrDefault(raw.FeedURL, ""),
		APIKey:     stringOrDefault(raw.FeedAPIKey, ""),
		Interval:   durationOrDefault(raw.FeedInterval, defaultFeedInterval),
		MinSpacing: durationOrDefault(raw.FeedSpacing, defaultFeedSpacing),
	}
	switch cfg.Source {
	case FeedFixture, FeedHTTP:
	case "":
		// A URL alone is enough to pick the HTTP feed.
		cfg.Source = defaultFeedSource
		if cfg.URL != "" {
			cfg.Source = FeedHTTP
		}
	default:
		cfg.Source = defaultFeedSource
	}
	return cfg
}
