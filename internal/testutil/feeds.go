package testutil

import (
	"context"

	"github.com/preston-bernstein/fantasy-league-service/internal/feed"
)

// GoodFeed returns the provided batch with no error.
type GoodFeed struct {
	Batch feed.Batch
}

func (f GoodFeed) FetchPlayers(ctx context.Context) (feed.Batch, error) {
	_ = ctx
	return f.Batch, nil
}

// ErrFeed always returns the provided error.
type ErrFeed struct {
	Err error
}

func (f ErrFeed) FetchPlayers(ctx context.Context) (feed.Batch, error) {
	_ = ctx
	return feed.Batch{}, f.Err
}

// UnavailableFeed returns ErrFeedUnavailable.
type UnavailableFeed struct{}

func (UnavailableFeed) FetchPlayers(ctx context.Context) (feed.Batch, error) {
	_ = ctx
	return feed.Batch{}, feed.ErrFeedUnavailable
}
