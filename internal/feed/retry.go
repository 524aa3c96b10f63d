package feed

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/fantasy-league-service/internal/logging"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
	maxRetryAfter        = 30 * time.Second
)

// Recorder receives per-attempt telemetry. *metrics.Recorder satisfies it.
type Recorder interface {
	RecordFeedAttempt(feed string, duration time.Duration, err error)
	RecordRateLimit(feed string, retryAfter time.Duration)
}

type backoffFunc func(attempt int) time.Duration

// retryingFeed wraps a PlayerFeed with retry/backoff behavior.
type retryingFeed struct {
	inner       PlayerFeed
	name        string
	logger      *slog.Logger
	metrics     Recorder
	maxAttempts int
	backoffFn   backoffFunc
}

// NewRetryingFeed wraps the given feed with retries. If maxAttempts/backoff
// are <= 0, defaults are used. A rate-limited attempt waits at least the
// upstream Retry-After, capped at 30s.
func NewRetryingFeed(inner PlayerFeed, name string, logger *slog.Logger, recorder Recorder, maxAttempts int, backoff time.Duration) PlayerFeed {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	return &retryingFeed{
		inner:       inner,
		name:        name,
		logger:      logger,
		metrics:     recorder,
		maxAttempts: maxAttempts,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
	}
}

func (r *retryingFeed) FetchPlayers(ctx context.Context) (Batch, error) {
	if r == nil || r.inner == nil {
		return Batch{}, ErrFeedUnavailable
	}
	var lastErr error

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		start := time.Now()
		batch, err := r.inner.FetchPlayers(ctx)
		if r.metrics != nil {
			r.metrics.RecordFeedAttempt(r.name, time.Since(start), err)
		}
		if err == nil {
			return batch, nil
		}
		lastErr = err

		delay := r.backoffFn(attempt)
		if rl, ok := AsRateLimitError(err); ok {
			if r.metrics != nil {
				r.metrics.RecordRateLimit(r.name, rl.RetryAfter)
			}
			if rl.RetryAfter > delay {
				delay = min(rl.RetryAfter, maxRetryAfter)
			}
		}

		if attempt == r.maxAttempts {
			break
		}

		r.logWarn(ctx, "feed fetch retry", "attempt", attempt, "max_attempts", r.maxAttempts, "err", err)

		select {
		case <-ctx.Done():
			return Batch{}, ctx.Err()
		case <-time.After(delay):
		}
	}

	r.logWarn(ctx, "feed fetch failed", "attempts", r.maxAttempts, "err", lastErr)
	return Batch{}, lastErr
}

func (r *retryingFeed) logWarn(ctx context.Context, msg string, args ...any) {
	logger := logging.FromContext(ctx, r.logger)
	if logger != nil {
		logger.Warn(msg, append(args, logging.FieldFeed, r.name)...)
	}
}
