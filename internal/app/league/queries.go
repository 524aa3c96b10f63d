package league

import (
	"time"

	"github.com/preston-bernstein/fantasy-league-service/internal/app/scoring"
	domainleague "github.com/preston-bernstein/fantasy-league-service/internal/domain/league"
	"github.com/preston-bernstein/fantasy-league-service/internal/domain/players"
)

// UserTeam is a participant's view of their own entry.
type UserTeam struct {
	Address     domainleague.Address `json:"address"`
	Username    string               `json:"username"`
	TeamName    string               `json:"teamName"`
	FeePaid     bool                 `json:"feePaid"`
	Submitted   bool                 `json:"submitted"`
	Main        []players.ID         `json:"main"`
	Reserve     players.ID           `json:"reserve,omitempty"`
	Captain     players.ID           `json:"captain,omitempty"`
	TeamCost    int64                `json:"teamCost"`
	Score       int64                `json:"score"`
	Rank        int                  `json:"rank"`
	Lines       []scoring.Line       `json:"lines,omitempty"`
	SubmittedAt *time.Time           `json:"submittedAt,omitempty"`
}

// ParticipantSummary is one row of the participant listing.
type ParticipantSummary struct {
	Address   domainleague.Address `json:"address"`
	Username  string               `json:"username"`
	TeamName  string               `json:"teamName"`
	FeePaid   bool                 `json:"feePaid"`
	Submitted bool                 `json:"submitted"`
	Score     int64                `json:"score"`
	Rank      int                  `json:"rank"`
}

// SeasonSummary describes the current season.
type SeasonSummary struct {
	ID           int64                    `json:"id"`
	State        domainleague.SeasonState `json:"state"`
	PrizePool    domainleague.Amount      `json:"prizePool"`
	EntryFee     domainleague.Amount      `json:"entryFee"`
	Budget       int64                    `json:"budget"`
	HouseCutBPS  int64                    `json:"houseCutBps"`
	Participants int                      `json:"participants"`
	Submitted    int64                    `json:"submitted"`
}

// UserTeam returns the entry for addr with its live score and rank. Rank is 0
// until the team is submitted.
func (e *Engine) UserTeam(address string) (UserTeam, error) {
	addr := domainleague.NormalizeAddress(address)

	e.mu.RLock()
	defer e.mu.RUnlock()

	p, ok := e.season.ledger.get(addr)
	if !ok {
		return UserTeam{}, participantNotFound(addr)
	}
	view := UserTeam{
		Address:   p.Address,
		Username:  p.Username,
		TeamName:  p.TeamName,
		FeePaid:   p.FeePaid,
		Submitted: p.Submitted(),
		Main:      []players.ID{},
	}
	if !p.Submitted() {
		return view, nil
	}
	view.Main = append(view.Main, p.Team.Main...)
	view.Reserve = p.Team.Reserve
	view.Captain = p.Team.Captain
	view.TeamCost = p.TeamCost
	view.Lines = scoring.Lines(*p.Team, e.players)
	submittedAt := p.SubmittedAt
	view.SubmittedAt = &submittedAt
	for _, s := range e.standingsLocked() {
		if s.Address == addr {
			view.Score = s.Score
			view.Rank = s.Rank
			break
		}
	}
	return view, nil
}

// Participants lists every enrolled participant in enrollment order with
// their live score and rank.
func (e *Engine) Participants() []ParticipantSummary {
	e.mu.RLock()
	defer e.mu.RUnlock()

	ranked := make(map[domainleague.Address]domainleague.Standing)
	for _, s := range e.standingsLocked() {
		ranked[s.Address] = s
	}
	out := make([]ParticipantSummary, 0, len(e.season.ledger.order))
	e.season.ledger.each(func(p *domainleague.Participant) {
		s := ranked[p.Address]
		out = append(out, ParticipantSummary{
			Address:   p.Address,
			Username:  p.Username,
			TeamName:  p.TeamName,
			FeePaid:   p.FeePaid,
			Submitted: p.Submitted(),
			Score:     s.Score,
			Rank:      s.Rank,
		})
	})
	return out
}

// Leaderboard ranks every participant who would take part in settlement.
func (e *Engine) Leaderboard() []domainleague.Standing {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.standingsLocked()
}

// CurrentSeason summarizes the season in progress.
func (e *Engine) CurrentSeason() SeasonSummary {
	e.mu.RLock()
	defer e.mu.RUnlock()

	s := e.season
	return SeasonSummary{
		ID:           s.ID,
		State:        s.State,
		PrizePool:    s.Pool,
		EntryFee:     e.opts.EntryFee,
		Budget:       e.opts.Rules.Budget,
		HouseCutBPS:  e.opts.HouseCutBPS,
		Participants: len(s.ledger.order),
		Submitted:    s.ledger.submittedCount(),
	}
}

// standingsLocked must be called with e.mu held.
func (e *Engine) standingsLocked() []domainleague.Standing {
	standings := make([]domainleague.Standing, 0, len(e.season.ledger.order))
	e.season.ledger.each(func(p *domainleague.Participant) {
		if !p.Eligible() {
			return
		}
		standings = append(standings, domainleague.Standing{
			Address:       p.Address,
			Username:      p.Username,
			TeamName:      p.TeamName,
			Score:         scoring.Score(*p.Team, e.players),
			SubmittedAt:   p.SubmittedAt,
			SubmissionSeq: p.SubmissionSeq,
		})
	})
	scoring.Rank(standings)
	return standings
}
