package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/preston-bernstein/fantasy-league-service/internal/app/league"
	"github.com/preston-bernstein/fantasy-league-service/internal/app/roster"
	domainleague "github.com/preston-bernstein/fantasy-league-service/internal/domain/league"
	"github.com/preston-bernstein/fantasy-league-service/internal/domain/players"
	"github.com/preston-bernstein/fantasy-league-service/internal/store"
)

// DefaultFee is the entry fee of engines built by NewEngine.
const DefaultFee domainleague.Amount = 100

// NewEngine builds an engine over in-memory stores with a stepping clock.
// mutate may adjust the options before construction.
func NewEngine(t testing.TB, mutate func(*league.Options)) (*league.Engine, *store.MemoryArchive) {
	t.Helper()
	archive := store.NewMemoryArchive()
	opts := league.Options{
		Rules:    roster.Rules{Budget: 100_000_000, MaxUsername: 20, MaxTeamName: 30},
		EntryFee: DefaultFee,
		Now:      NewStepClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), time.Second).Now,
	}
	if mutate != nil {
		mutate(&opts)
	}
	e, err := league.New(context.Background(), store.NewMemoryStore(), archive, opts)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return e, archive
}

// SampleStats builds a statistics record with the given current points.
func SampleStats(name string, points int) []byte {
	return []byte(fmt.Sprintf(`{"PLAYER":%q,"current_TOTAL_POINTS":%d,"previous_TOTAL_POINTS":0}`, name, points))
}

// SeedPlayers upserts n players named "Player 1".."Player n". points maps a
// 1-based player number to its current points.
func SeedPlayers(t testing.TB, e *league.Engine, n int, price int64, points map[int]int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		name := fmt.Sprintf("Player %d", i)
		if _, _, err := e.UpsertPlayer(context.Background(), name, SampleStats(name, points[i]), price); err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}
}

// SampleSelection picks 11 main players starting at id first, the next id as
// reserve, and the first as captain.
func SampleSelection(first int) domainleague.Selection {
	sel := domainleague.Selection{Captain: players.ID(first)}
	for i := 0; i < domainleague.MainSize; i++ {
		sel.Main = append(sel.Main, players.ID(first+i))
	}
	sel.Reserve = []players.ID{players.ID(first + domainleague.MainSize)}
	return sel
}

// JoinAndSubmit pays the fee for addr and submits SampleSelection(first).
func JoinAndSubmit(t testing.TB, e *league.Engine, addr string, first int, username, teamName string) {
	t.Helper()
	ctx := context.Background()
	if _, _, err := e.JoinLeague(ctx, addr, e.EntryFee()); err != nil {
		t.Fatalf("join %s: %v", addr, err)
	}
	if _, err := e.SubmitTeam(ctx, addr, SampleSelection(first), username, teamName); err != nil {
		t.Fatalf("submit %s: %v", addr, err)
	}
}
