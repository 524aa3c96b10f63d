package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/preston-bernstein/fantasy-league-service/internal/domain/league"
	"github.com/preston-bernstein/fantasy-league-service/internal/domain/players"
)

func TestMemoryStoreUpsertAssignsSequentialIDs(t *testing.T) {
	s := NewMemoryStore()

	a, created := s.UpsertPlayer(players.Player{Key: "virat-kohli", Name: "Virat Kohli", Price: 10})
	if !created || a.ID != 1 {
		t.Fatalf("expected new player with id 1, got %+v created=%v", a, created)
	}
	b, created := s.UpsertPlayer(players.Player{Key: "ms-dhoni", Name: "MS Dhoni", Price: 12})
	if !created || b.ID != 2 {
		t.Fatalf("expected new player with id 2, got %+v", b)
	}
}

func TestMemoryStoreUpsertReplacesExisting(t *testing.T) {
	s := NewMemoryStore()
	s.UpsertPlayer(players.Player{Key: "virat-kohli", Name: "Virat Kohli", Price: 10})

	updated, created := s.UpsertPlayer(players.Player{Key: "virat-kohli", Name: "Virat  Kohli", Price: 25})
	if created {
		t.Fatalf("expected existing player to be replaced")
	}
	if updated.ID != 1 || updated.Price != 25 {
		t.Fatalf("unexpected player %+v", updated)
	}
	if got := len(s.PlayerIDs()); got != 1 {
		t.Fatalf("expected 1 player, got %d", got)
	}
	if p, ok := s.PlayerByKey("virat-kohli"); !ok || p.Price != 25 {
		t.Fatalf("expected lookup by key to see new price")
	}
}

func TestMemoryStoreGetNotFound(t *testing.T) {
	s := NewMemoryStore()
	if _, ok := s.Player(42); ok {
		t.Fatalf("expected missing id to return false")
	}
	if _, ok := s.PlayerByKey("nobody"); ok {
		t.Fatalf("expected missing key to return false")
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	stats, _ := players.ParseStats([]byte(`{"current_TOTAL_POINTS": 5}`))
	p, _ := s.UpsertPlayer(players.Player{Key: "k", Name: "K", Stats: stats})

	p.Stats["current_TOTAL_POINTS"] = players.Text("999")
	stored, _ := s.Player(p.ID)
	if stored.Points() != 5 {
		t.Fatalf("expected store to remain unchanged, got %d", stored.Points())
	}
}

func TestMemoryStorePlayerIDsSorted(t *testing.T) {
	s := NewMemoryStore()
	for _, key := range []string{"c", "a", "b", "d"} {
		s.UpsertPlayer(players.Player{Key: key, Name: key})
	}
	ids := s.PlayerIDs()
	for i, id := range ids {
		if id != players.ID(i+1) {
			t.Fatalf("expected ascending ids, got %v", ids)
		}
	}
}

func archivedSeason(id int64) league.ArchivedSeason {
	return league.ArchivedSeason{
		SeasonID: id,
		Participants: []league.ArchivedParticipant{{
			Address: "0xaaa",
			Team:    league.Team{Main: []players.ID{1, 2}, Reserve: 3, Captain: 1},
			Score:   10,
			Rank:    1,
		}},
		Winner:         "0xaaa",
		FinalPrizePool: 300,
		Collected:      300,
		SettledAt:      time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestMemoryArchiveAppendAndRead(t *testing.T) {
	ctx := context.Background()
	a := NewMemoryArchive()

	if err := a.AppendSeason(ctx, archivedSeason(2)); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := a.AppendSeason(ctx, archivedSeason(1)); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := a.AppendSeason(ctx, archivedSeason(1)); !errors.Is(err, league.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	ids, err := a.SeasonIDs(ctx)
	if err != nil || len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Fatalf("unexpected ids %v (%v)", ids, err)
	}

	got, err := a.Season(ctx, 1)
	if err != nil {
		t.Fatalf("season: %v", err)
	}
	got.Participants[0].Team.Main[0] = 99
	again, _ := a.Season(ctx, 1)
	if again.Participants[0].Team.Main[0] != 1 {
		t.Fatalf("expected archived history to be immutable")
	}
}

func TestMemoryArchiveMissingSeason(t *testing.T) {
	_, err := NewMemoryArchive().Season(context.Background(), 7)
	if !errors.Is(err, league.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryArchiveHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewMemoryArchive().AppendSeason(ctx, archivedSeason(1)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
