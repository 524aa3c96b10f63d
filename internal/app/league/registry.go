package league

import (
	"context"
	"strconv"

	"github.com/preston-bernstein/fantasy-league-service/internal/app/roster"
	domainleague "github.com/preston-bernstein/fantasy-league-service/internal/domain/league"
	"github.com/preston-bernstein/fantasy-league-service/internal/domain/players"
	"github.com/preston-bernstein/fantasy-league-service/internal/logging"
)

// UpsertPlayer inserts a player whose name is unseen or replaces the price and
// statistics of the existing player with the same identity key. A rejected
// payload leaves the previous record untouched.
func (e *Engine) UpsertPlayer(ctx context.Context, name string, rawStats []byte, price int64) (p players.Player, created bool, err error) {
	defer func() {
		e.observe(ctx, "upsert_player", err, "name", name, logging.FieldPlayerID, int64(p.ID))
	}()

	name = roster.NormalizeName(name)
	key, err := players.KeyFromName(name)
	if err != nil {
		return players.Player{}, false, &domainleague.FieldError{Err: domainleague.ErrInvalidInput, Field: "name", Value: name}
	}
	if price < 0 {
		return players.Player{}, false, &domainleague.FieldError{Err: domainleague.ErrInvalidInput, Field: "price", Value: strconv.FormatInt(price, 10)}
	}
	stats, err := players.ParseStats(rawStats)
	if err != nil {
		return players.Player{}, false, &domainleague.FieldError{Err: domainleague.ErrInvalidStatsBlob, Field: "stats", Value: err.Error()}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return players.Player{}, false, err
	}
	p, created = e.players.UpsertPlayer(players.Player{
		Key:       key,
		Name:      name,
		Price:     price,
		Stats:     stats,
		UpdatedAt: e.now(),
	})
	return p, created, nil
}

// Player returns the player with the given id.
func (e *Engine) Player(id players.ID) (players.Player, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	p, ok := e.players.Player(id)
	if !ok {
		return players.Player{}, playerNotFound(id)
	}
	return p, nil
}

// PlayerIDs lists every player id in ascending order.
func (e *Engine) PlayerIDs() []players.ID {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.players.PlayerIDs()
}

// Players pages over players in id order and reports the total count. A
// non-positive limit returns everything after offset.
func (e *Engine) Players(offset, limit int) ([]players.Player, int) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	ids := e.players.PlayerIDs()
	total := len(ids)
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	out := make([]players.Player, 0, end-offset)
	for _, id := range ids[offset:end] {
		if p, ok := e.players.Player(id); ok {
			out = append(out, p)
		}
	}
	return out, total
}

// SelectionPercentage is the share of submitted teams in the current season
// that include the player.
func (e *Engine) SelectionPercentage(id players.ID) (domainleague.Percent, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if _, ok := e.players.Player(id); !ok {
		return 0, playerNotFound(id)
	}
	var picked, submitted int64
	e.season.ledger.each(func(p *domainleague.Participant) {
		if !p.Submitted() {
			return
		}
		submitted++
		if p.Team.Contains(id) {
			picked++
		}
	})
	return domainleague.PercentOf(picked, submitted), nil
}

func playerNotFound(id players.ID) error {
	return &domainleague.NotFoundError{Entity: "player", Key: strconv.FormatInt(int64(id), 10)}
}
