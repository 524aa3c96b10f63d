// Package fixture serves a static player list for local runs and tests.
package fixture

import (
	"context"
	_ "embed"

	"github.com/preston-bernstein/fantasy-league-service/internal/feed"
)

//go:embed players.json
var playersJSON []byte

// Feed returns the embedded player list.
type Feed struct{}

// New creates a fixture feed.
func New() *Feed {
	return &Feed{}
}

// FetchPlayers returns a deterministic set of players.
func (f *Feed) FetchPlayers(ctx context.Context) (feed.Batch, error) {
	if err := ctx.Err(); err != nil {
		return feed.Batch{}, err
	}
	return feed.ParseBatch(playersJSON)
}

// Raw returns a copy of the embedded feed body.
func Raw() []byte {
	return append([]byte(nil), playersJSON...)
}
