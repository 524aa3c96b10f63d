// Package scoring turns locked teams into points and orders the leaderboard.
package scoring

import (
	"sort"

	"github.com/preston-bernstein/fantasy-league-service/internal/domain/league"
	"github.com/preston-bernstein/fantasy-league-service/internal/domain/players"
)

// CaptainMultiplier is applied to the captain's points.
const CaptainMultiplier = 2

// PlayerLookup resolves player ids.
type PlayerLookup interface {
	Player(id players.ID) (players.Player, bool)
}

// Line is one player's contribution to a team score.
type Line struct {
	PlayerID players.ID `json:"playerId"`
	Points   int64      `json:"points"`
	Captain  bool       `json:"captain,omitempty"`
	Reserve  bool       `json:"reserve,omitempty"`
	Counted  int64      `json:"counted"`
}

// Score returns the team's total. Only the main players count; the captain
// counts twice. Unknown players and missing statistics count as zero.
func Score(team league.Team, lookup PlayerLookup) int64 {
	var total int64
	for _, l := range Lines(team, lookup) {
		total = addSaturating(total, l.Counted)
	}
	return total
}

// Lines breaks a team score down per player, main players first.
func Lines(team league.Team, lookup PlayerLookup) []Line {
	out := make([]Line, 0, len(team.Main)+1)
	for _, id := range team.Main {
		pts := pointsOf(lookup, id)
		line := Line{PlayerID: id, Points: pts, Counted: pts}
		if id == team.Captain {
			line.Captain = true
			line.Counted = mulSaturating(pts, CaptainMultiplier)
		}
		out = append(out, line)
	}
	out = append(out, Line{PlayerID: team.Reserve, Points: pointsOf(lookup, team.Reserve), Reserve: true})
	return out
}

// Rank orders standings by score descending, then earlier submission, then
// lower submission sequence, and assigns 1-based ranks in place.
func Rank(standings []league.Standing) {
	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if !a.SubmittedAt.Equal(b.SubmittedAt) {
			return a.SubmittedAt.Before(b.SubmittedAt)
		}
		return a.SubmissionSeq < b.SubmissionSeq
	})
	for i := range standings {
		standings[i].Rank = i + 1
	}
}

func pointsOf(lookup PlayerLookup, id players.ID) int64 {
	p, ok := lookup.Player(id)
	if !ok {
		return 0
	}
	return p.Points()
}

const maxInt64 = 1<<63 - 1

func addSaturating(a, b int64) int64 {
	if a > maxInt64-b {
		return maxInt64
	}
	return a + b
}

func mulSaturating(a, m int64) int64 {
	if a > maxInt64/m {
		return maxInt64
	}
	return a * m
}
