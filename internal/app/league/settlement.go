package league

import (
	"context"
	"fmt"

	"github.com/preston-bernstein/fantasy-league-service/internal/app/scoring"
	domainleague "github.com/preston-bernstein/fantasy-league-service/internal/domain/league"
	"github.com/preston-bernstein/fantasy-league-service/internal/logging"
)

// EndSeasonAndDistribute settles the current season: it scores and ranks every
// participant who paid and submitted, pays the winner (and the house cut, if
// configured), appends the season to the archive and opens the next season.
// Either all of that happens or none of it does.
func (e *Engine) EndSeasonAndDistribute(ctx context.Context, authorized bool) (rec domainleague.ArchivedSeason, err error) {
	var seasonID int64
	defer func() { e.observe(ctx, "end_season", err, logging.FieldSeasonID, seasonID) }()

	if !authorized {
		return domainleague.ArchivedSeason{}, domainleague.ErrUnauthorized
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	season := e.season
	seasonID = season.ID
	season.State = domainleague.SeasonLocked

	rec, err = e.buildArchive(season)
	if err != nil {
		season.State = domainleague.SeasonOpen
		return domainleague.ArchivedSeason{}, err
	}
	if err := e.archive.AppendSeason(ctx, rec); err != nil {
		season.State = domainleague.SeasonOpen
		return domainleague.ArchivedSeason{}, fmt.Errorf("archive season %d: %w", season.ID, err)
	}

	season.State = domainleague.SeasonSettled
	e.announcePayouts(ctx, rec)
	e.season = newSeason(season.ID + 1)
	return rec.Clone(), nil
}

// buildArchive computes standings and payouts without mutating the season.
func (e *Engine) buildArchive(season *Season) (domainleague.ArchivedSeason, error) {
	var (
		standings []domainleague.Standing
		entries   = make(map[domainleague.Address]*domainleague.Participant)
	)
	season.ledger.each(func(p *domainleague.Participant) {
		if !p.Eligible() {
			return
		}
		entries[p.Address] = p
		standings = append(standings, domainleague.Standing{
			Address:       p.Address,
			Username:      p.Username,
			TeamName:      p.TeamName,
			Score:         scoring.Score(*p.Team, e.players),
			SubmittedAt:   p.SubmittedAt,
			SubmissionSeq: p.SubmissionSeq,
		})
	})
	if len(standings) == 0 {
		return domainleague.ArchivedSeason{}, domainleague.ErrNoParticipants
	}
	scoring.Rank(standings)

	winner := standings[0].Address
	houseCut, prize := season.Pool.Split(e.opts.HouseCutBPS)

	rec := domainleague.ArchivedSeason{
		SeasonID:       season.ID,
		Participants:   make([]domainleague.ArchivedParticipant, 0, len(standings)),
		Winner:         winner,
		FinalPrizePool: prize,
		Collected:      season.Pool,
		HouseCut:       houseCut,
		SettledAt:      e.now(),
	}
	for _, s := range standings {
		p := entries[s.Address]
		rec.Participants = append(rec.Participants, domainleague.ArchivedParticipant{
			Address:     p.Address,
			Username:    p.Username,
			TeamName:    p.TeamName,
			Team:        p.Team.Clone(),
			TeamCost:    p.TeamCost,
			Score:       s.Score,
			Rank:        s.Rank,
			SubmittedAt: p.SubmittedAt,
		})
	}

	rec.Payouts = append(rec.Payouts, domainleague.Payout{
		ID:        e.opts.NewID(),
		SeasonID:  season.ID,
		Kind:      domainleague.PayoutWinner,
		Recipient: winner,
		Amount:    prize,
	})
	if houseCut > 0 {
		rec.Payouts = append(rec.Payouts, domainleague.Payout{
			ID:        e.opts.NewID(),
			SeasonID:  season.ID,
			Kind:      domainleague.PayoutHouse,
			Recipient: e.opts.Operator,
			Amount:    houseCut,
		})
	}
	return rec, nil
}

func (e *Engine) announcePayouts(ctx context.Context, rec domainleague.ArchivedSeason) {
	if e.opts.Metrics != nil {
		e.opts.Metrics.RecordSettlement(len(rec.Participants), int64(rec.FinalPrizePool), int64(rec.HouseCut))
	}
	logger := logging.FromContext(ctx, e.opts.Logger)
	for _, p := range rec.Payouts {
		logging.Info(logger, "payout recorded",
			logging.FieldSeasonID, rec.SeasonID,
			"payout_id", p.ID,
			"payout_kind", string(p.Kind),
			logging.FieldAddress, string(p.Recipient),
			"amount", int64(p.Amount),
		)
	}
	logging.Info(logger, "season settled",
		logging.FieldSeasonID, rec.SeasonID,
		"winner", string(rec.Winner),
		logging.FieldCount, len(rec.Participants),
		"collected", int64(rec.Collected),
	)
}
