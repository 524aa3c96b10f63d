package server

import (
	"context"

	"github.com/preston-bernstein/fantasy-league-service/internal/poller"
)

// Poller defines the minimal poller behavior needed by the server.
type Poller interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Status() poller.Status
}
