package league

import (
	"strings"
	"time"

	"github.com/preston-bernstein/fantasy-league-service/internal/domain/players"
)

// Roster shape.
const (
	MainSize    = 11
	ReserveSize = 1
	TeamSize    = MainSize + ReserveSize
)

// Address identifies a participant's account. Addresses are compared after
// NormalizeAddress.
type Address string

// NormalizeAddress trims and lower-cases an account address.
func NormalizeAddress(raw string) Address {
	return Address(strings.ToLower(strings.TrimSpace(raw)))
}

// Selection is a candidate team as submitted by a caller. The grouping into
// main and reserve is declared by the caller and checked by the validator.
type Selection struct {
	Main    []players.ID `json:"main"`
	Reserve []players.ID `json:"reserve"`
	Captain players.ID   `json:"captain"`
}

// IDs returns main ids followed by reserve ids.
func (s Selection) IDs() []players.ID {
	out := make([]players.ID, 0, len(s.Main)+len(s.Reserve))
	out = append(out, s.Main...)
	return append(out, s.Reserve...)
}

// Team is a locked, validated selection.
type Team struct {
	Main    []players.ID `json:"main"`
	Reserve players.ID   `json:"reserve"`
	Captain players.ID   `json:"captain"`
}

// IDs returns the 12 selected ids, main first.
func (t Team) IDs() []players.ID {
	out := make([]players.ID, 0, TeamSize)
	out = append(out, t.Main...)
	return append(out, t.Reserve)
}

// Contains reports whether id is anywhere in the team.
func (t Team) Contains(id players.ID) bool {
	if t.Reserve == id {
		return true
	}
	for _, m := range t.Main {
		if m == id {
			return true
		}
	}
	return false
}

// Clone copies the team.
func (t Team) Clone() Team {
	t.Main = append([]players.ID(nil), t.Main...)
	return t
}

// Participant is one account's record for the current season.
type Participant struct {
	Address       Address   `json:"address"`
	Username      string    `json:"username"`
	TeamName      string    `json:"teamName"`
	Enrolled      bool      `json:"enrolled"`
	FeePaid       bool      `json:"feePaid"`
	Team          *Team     `json:"team,omitempty"`
	TeamCost      int64     `json:"teamCost,omitempty"`
	SubmittedAt   time.Time `json:"submittedAt,omitempty"`
	SubmissionSeq int64     `json:"submissionSeq,omitempty"`
}

// Submitted reports whether the participant has locked a team.
func (p Participant) Submitted() bool {
	return p.Team != nil
}

// Eligible reports whether the participant takes part in settlement.
func (p Participant) Eligible() bool {
	return p.FeePaid && p.Submitted()
}

// Clone returns a deep copy.
func (p Participant) Clone() Participant {
	if p.Team != nil {
		t := p.Team.Clone()
		p.Team = &t
	}
	return p
}

// SeasonState is the lifecycle state of a season.
type SeasonState string

const (
	SeasonOpen    SeasonState = "open"
	SeasonLocked  SeasonState = "locked"
	SeasonSettled SeasonState = "settled"
)

// Standing is one ranked row of a leaderboard.
type Standing struct {
	Address       Address   `json:"address"`
	Username      string    `json:"username"`
	TeamName      string    `json:"teamName"`
	Score         int64     `json:"score"`
	Rank          int       `json:"rank"`
	SubmittedAt   time.Time `json:"submittedAt"`
	SubmissionSeq int64     `json:"-"`
}
