package feed

import (
	"context"
	"errors"
	"testing"
	"time"
)

type countingFeed struct {
	calls int
}

func (c *countingFeed) FetchPlayers(context.Context) (Batch, error) {
	c.calls++
	return Batch{Records: []Record{{Name: "A"}}}, nil
}

func TestRateLimitedFeedFirstCallIsImmediate(t *testing.T) {
	inner := &countingFeed{}
	f := NewRateLimitedFeed(inner, "test", time.Hour, nil)

	start := time.Now()
	if _, err := f.FetchPlayers(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Fatalf("expected immediate first call, took %s", elapsed)
	}
	if inner.calls != 1 {
		t.Fatalf("expected one inner call, got %d", inner.calls)
	}
}

func TestRateLimitedFeedSpacesCalls(t *testing.T) {
	inner := &countingFeed{}
	f := NewRateLimitedFeed(inner, "test", 20*time.Millisecond, nil)

	start := time.Now()
	for i := 0; i < 2; i++ {
		if _, err := f.FetchPlayers(context.Background()); err != nil {
			t.Fatalf("fetch %d: %v", i, err)
		}
	}
	if elapsed := time.Since(start); elapsed < 15*time.Millisecond {
		t.Fatalf("expected second call to wait, elapsed %s", elapsed)
	}
	if inner.calls != 2 {
		t.Fatalf("expected two inner calls, got %d", inner.calls)
	}
}

func TestRateLimitedFeedRespectsCanceledContext(t *testing.T) {
	inner := &countingFeed{}
	f := NewRateLimitedFeed(inner, "test", time.Hour, nil)
	if _, err := f.FetchPlayers(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := f.FetchPlayers(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if inner.calls != 1 {
		t.Fatalf("expected waiting call not to reach inner feed, got %d calls", inner.calls)
	}
}

func TestRateLimitedFeedHandlesNilInner(t *testing.T) {
	f := NewRateLimitedFeed(nil, "test", time.Millisecond, nil)
	if _, err := f.FetchPlayers(context.Background()); !errors.Is(err, ErrFeedUnavailable) {
		t.Fatalf("expected ErrFeedUnavailable, got %v", err)
	}
}

func TestRateLimitedFeedDefaultsSpacing(t *testing.T) {
	f := NewRateLimitedFeed(&countingFeed{}, "test", 0, nil).(*rateLimitedFeed)
	if got := f.limiter.Limit(); got <= 0 {
		t.Fatalf("expected positive default limit, got %v", got)
	}
}
