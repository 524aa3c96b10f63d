package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/fantasy-league-service/internal/domain/players"
	"github.com/preston-bernstein/fantasy-league-service/internal/feed"
)

// StubFeed is a test double for feed.PlayerFeed.
type StubFeed struct {
	Batch  feed.Batch
	Err    error
	Calls  atomic.Int32
	Notify chan struct{}
}

// FetchPlayers returns the configured batch and error while tracking calls.
func (s *StubFeed) FetchPlayers(ctx context.Context) (feed.Batch, error) {
	_ = ctx
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)
	return s.Batch, s.Err
}

// Upsert records one call to StubRegistry.UpsertPlayer.
type Upsert struct {
	Name  string
	Stats []byte
	Price int64
}

// StubRegistry is a test double for the player registry the poller syncs into.
type StubRegistry struct {
	// Errs fails upserts for the named players.
	Errs map[string]error

	mu      sync.Mutex
	upserts []Upsert
	seen    map[string]bool
}

// UpsertPlayer records the call and reports whether the name was new.
func (s *StubRegistry) UpsertPlayer(ctx context.Context, name string, rawStats []byte, price int64) (players.Player, bool, error) {
	_ = ctx
	if err := s.Errs[name]; err != nil {
		return players.Player{}, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seen == nil {
		s.seen = make(map[string]bool)
	}
	s.upserts = append(s.upserts, Upsert{Name: name, Stats: append([]byte(nil), rawStats...), Price: price})
	created := !s.seen[name]
	s.seen[name] = true
	return players.Player{ID: players.ID(len(s.seen)), Name: name, Price: price}, created, nil
}

// Upserts returns a copy of the recorded calls.
func (s *StubRegistry) Upserts() []Upsert {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Upsert(nil), s.upserts...)
}
