package feed

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/preston-bernstein/fantasy-league-service/internal/logging"
)

const defaultMinSpacing = time.Minute

// rateLimitedFeed spaces upstream calls so scheduled and manual syncs
// together stay under the upstream quota. The first call is not delayed.
type rateLimitedFeed struct {
	next    PlayerFeed
	name    string
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewRateLimitedFeed returns a PlayerFeed that allows at most one call per
// spacing. Callers block until their turn or until ctx is done.
func NewRateLimitedFeed(next PlayerFeed, name string, spacing time.Duration, logger *slog.Logger) PlayerFeed {
	if spacing <= 0 {
		spacing = defaultMinSpacing
	}
	return &rateLimitedFeed{
		next:    next,
		name:    name,
		limiter: rate.NewLimiter(rate.Every(spacing), 1),
		logger:  logger,
	}
}

func (f *rateLimitedFeed) FetchPlayers(ctx context.Context) (Batch, error) {
	if f == nil || f.next == nil {
		return Batch{}, ErrFeedUnavailable
	}
	logger := logging.FromContext(ctx, f.logger)
	if res := f.limiter.Reserve(); res.OK() {
		if delay := res.Delay(); delay > 0 {
			logging.Info(logger, "feed fetch delayed by rate limit",
				logging.FieldFeed, f.name,
				"delay_ms", delay.Milliseconds(),
			)
			timer := time.NewTimer(delay)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				res.Cancel()
				return Batch{}, ctx.Err()
			case <-timer.C:
			}
		}
	}
	return f.next.FetchPlayers(ctx)
}
