package league

import (
	"context"
	"strconv"

	domainleague "github.com/preston-bernstein/fantasy-league-service/internal/domain/league"
)

// ArchivedSeasonIDs lists settled season ids in ascending order.
func (e *Engine) ArchivedSeasonIDs(ctx context.Context) ([]int64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.archive.SeasonIDs(ctx)
}

// ArchivedSeason returns the full record of a settled season.
func (e *Engine) ArchivedSeason(ctx context.Context, id int64) (domainleague.ArchivedSeason, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.archive.Season(ctx, id)
}

// ArchivedParticipants returns the participant snapshots of a settled season
// in final rank order.
func (e *Engine) ArchivedParticipants(ctx context.Context, id int64) ([]domainleague.ArchivedParticipant, error) {
	s, err := e.ArchivedSeason(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Participants, nil
}

// ArchivedTeam returns one participant's snapshot from a settled season.
func (e *Engine) ArchivedTeam(ctx context.Context, id int64, address string) (domainleague.ArchivedParticipant, error) {
	s, err := e.ArchivedSeason(ctx, id)
	if err != nil {
		return domainleague.ArchivedParticipant{}, err
	}
	addr := domainleague.NormalizeAddress(address)
	p, ok := s.Participant(addr)
	if !ok {
		return domainleague.ArchivedParticipant{}, &domainleague.NotFoundError{
			Entity: "participant",
			Key:    strconv.FormatInt(id, 10) + "/" + string(addr),
		}
	}
	return p, nil
}

// ArchivedWinner returns the winner of a settled season.
func (e *Engine) ArchivedWinner(ctx context.Context, id int64) (domainleague.Address, error) {
	s, err := e.ArchivedSeason(ctx, id)
	if err != nil {
		return "", err
	}
	return s.Winner, nil
}

// ArchivedPrizePool returns what the winner of a settled season received.
func (e *Engine) ArchivedPrizePool(ctx context.Context, id int64) (domainleague.Amount, error) {
	s, err := e.ArchivedSeason(ctx, id)
	if err != nil {
		return 0, err
	}
	return s.FinalPrizePool, nil
}
