package server

import (
	"log/slog"

	"github.com/preston-bernstein/fantasy-league-service/internal/config"
	"github.com/preston-bernstein/fantasy-league-service/internal/feed"
	"github.com/preston-bernstein/fantasy-league-service/internal/feed/fixture"
	"github.com/preston-bernstein/fantasy-league-service/internal/metrics"
)

// feedFactory assembles the player feed with the shared retry wrapper. HTTP
// feeds are additionally spaced by a rate limiter.
type feedFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newFeedFactory(logger *slog.Logger, recorder *metrics.Recorder) feedFactory {
	return feedFactory{logger: logger, metrics: recorder}
}

// build returns nil when the feed is disabled.
func (f feedFactory) build(cfg config.FeedConfig) feed.PlayerFeed {
	if !cfg.Enabled {
		return nil
	}
	base, name := selectFeed(cfg, f.logger)
	wrapped := f.wrap(base, name)
	if name == config.FeedHTTP {
		return feed.NewRateLimitedFeed(wrapped, name, cfg.MinSpacing, f.logger)
	}
	return wrapped
}

func (f feedFactory) wrap(source feed.PlayerFeed, name string) feed.PlayerFeed {
	return feed.NewRetryingFeed(source, name, f.logger, f.metrics, 0, 0)
}

func selectFeed(cfg config.FeedConfig, logger *slog.Logger) (feed.PlayerFeed, string) {
	switch cfg.Source {
	case config.FeedHTTP:
		return feed.NewHTTPFeed(feed.HTTPConfig{URL: cfg.URL, APIKey: cfg.APIKey}), config.FeedHTTP
	case config.FeedFixture, "":
		return fixture.New(), config.FeedFixture
	default:
		if logger != nil {
			logger.Warn("unknown feed source, falling back to fixture", slog.String("source", cfg.Source))
		}
		return fixture.New(), config.FeedFixture
	}
}
