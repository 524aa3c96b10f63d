package league

import "time"

// PayoutKind distinguishes the winner's prize from the operator's share.
type PayoutKind string

const (
	PayoutWinner PayoutKind = "winner"
	PayoutHouse  PayoutKind = "house"
)

// Payout records one credit made at settlement.
type Payout struct {
	ID        string     `json:"id"`
	SeasonID  int64      `json:"seasonId"`
	Kind      PayoutKind `json:"kind"`
	Recipient Address    `json:"recipient"`
	Amount    Amount     `json:"amount"`
}

// ArchivedParticipant is a participant's frozen state at settlement.
type ArchivedParticipant struct {
	Address     Address   `json:"address"`
	Username    string    `json:"username"`
	TeamName    string    `json:"teamName"`
	Team        Team      `json:"team"`
	TeamCost    int64     `json:"teamCost"`
	Score       int64     `json:"score"`
	Rank        int       `json:"rank"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// ArchivedSeason is the immutable record written when a season settles.
// FinalPrizePool is what the winner received: Collected minus HouseCut.
type ArchivedSeason struct {
	SeasonID       int64                 `json:"seasonId"`
	Participants   []ArchivedParticipant `json:"participants"`
	Winner         Address               `json:"winner"`
	FinalPrizePool Amount                `json:"finalPrizePool"`
	Collected      Amount                `json:"collected"`
	HouseCut       Amount                `json:"houseCut"`
	Payouts        []Payout              `json:"payouts"`
	SettledAt      time.Time             `json:"settledAt"`
}

// Participant finds an archived participant by address.
func (s ArchivedSeason) Participant(addr Address) (ArchivedParticipant, bool) {
	for _, p := range s.Participants {
		if p.Address == addr {
			return p, true
		}
	}
	return ArchivedParticipant{}, false
}

// Clone returns a deep copy so callers can never alter stored history.
func (s ArchivedSeason) Clone() ArchivedSeason {
	parts := make([]ArchivedParticipant, len(s.Participants))
	for i, p := range s.Participants {
		p.Team = p.Team.Clone()
		parts[i] = p
	}
	s.Participants = parts
	s.Payouts = append([]Payout(nil), s.Payouts...)
	return s
}
