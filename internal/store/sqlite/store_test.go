package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/preston-bernstein/fantasy-league-service/internal/domain/league"
	"github.com/preston-bernstein/fantasy-league-service/internal/domain/players"
)

func openStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "archive.db")
	store, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	})
	return store, path
}

func sampleSeason(id int64) league.ArchivedSeason {
	settled := time.Date(2026, 6, 1, 18, 30, 0, 0, time.UTC)
	return league.ArchivedSeason{
		SeasonID: id,
		Participants: []league.ArchivedParticipant{
			{
				Address:     "0xbbb",
				Username:    "bob",
				TeamName:    "High",
				Team:        league.Team{Main: []players.ID{13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23}, Reserve: 24, Captain: 13},
				TeamCost:    12_000,
				Score:       240,
				Rank:        1,
				SubmittedAt: settled.Add(-2 * time.Hour),
			},
			{
				Address:     "0xaaa",
				Username:    "alice",
				TeamName:    "Low",
				Team:        league.Team{Main: []players.ID{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, Reserve: 12, Captain: 1},
				TeamCost:    12_000,
				Score:       120,
				Rank:        2,
				SubmittedAt: settled.Add(-3 * time.Hour),
			},
		},
		Winner:         "0xbbb",
		FinalPrizePool: 270,
		Collected:      300,
		HouseCut:       30,
		Payouts: []league.Payout{
			{ID: "p-1", SeasonID: id, Kind: league.PayoutWinner, Recipient: "0xbbb", Amount: 270},
			{ID: "p-2", SeasonID: id, Kind: league.PayoutHouse, Recipient: "0xop", Amount: 30},
		},
		SettledAt: settled,
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(context.Background(), " "); err == nil {
		t.Fatalf("expected error")
	}
}

func TestOpenRunsMigrations(t *testing.T) {
	_, path := openStore(t)

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer func() { _ = db.Close() }()

	for _, table := range []string{"archived_seasons", "archived_participants", "archived_payouts", migrationTable} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Fatalf("expected table %s: %v", table, err)
		}
	}
}

func TestReopenSkipsAppliedMigrations(t *testing.T) {
	store, path := openStore(t)
	if err := store.AppendSeason(context.Background(), sampleSeason(1)); err != nil {
		t.Fatalf("append: %v", err)
	}

	again, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = again.Close() }()
	ids, err := again.SeasonIDs(context.Background())
	if err != nil || len(ids) != 1 || ids[0] != 1 {
		t.Fatalf("expected data to survive reopen, got %v (%v)", ids, err)
	}
}

func TestAppendAndReadSeason(t *testing.T) {
	store, _ := openStore(t)
	ctx := context.Background()
	want := sampleSeason(1)

	if err := store.AppendSeason(ctx, want); err != nil {
		t.Fatalf("append: %v", err)
	}
	got, err := store.Season(ctx, 1)
	if err != nil {
		t.Fatalf("season: %v", err)
	}

	if got.Winner != want.Winner || got.FinalPrizePool != 270 || got.Collected != 300 || got.HouseCut != 30 {
		t.Fatalf("unexpected season header %+v", got)
	}
	if !got.SettledAt.Equal(want.SettledAt) {
		t.Fatalf("expected settledAt %s, got %s", want.SettledAt, got.SettledAt)
	}
	if len(got.Participants) != 2 || got.Participants[0].Address != "0xbbb" || got.Participants[1].Rank != 2 {
		t.Fatalf("unexpected participants %+v", got.Participants)
	}
	first := got.Participants[0]
	if len(first.Team.Main) != 11 || first.Team.Main[10] != 23 || first.Team.Reserve != 24 || first.Team.Captain != 13 {
		t.Fatalf("unexpected team %+v", first.Team)
	}
	if !first.SubmittedAt.Equal(want.Participants[0].SubmittedAt) {
		t.Fatalf("unexpected submittedAt %s", first.SubmittedAt)
	}
	if len(got.Payouts) != 2 || got.Payouts[0].ID != "p-1" || got.Payouts[1].Kind != league.PayoutHouse || got.Payouts[1].SeasonID != 1 {
		t.Fatalf("unexpected payouts %+v", got.Payouts)
	}
}

func TestAppendRejectsExistingSeason(t *testing.T) {
	store, _ := openStore(t)
	ctx := context.Background()
	if err := store.AppendSeason(ctx, sampleSeason(1)); err != nil {
		t.Fatalf("append: %v", err)
	}

	changed := sampleSeason(1)
	changed.Winner = "0xaaa"
	if err := store.AppendSeason(ctx, changed); !errors.Is(err, league.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	got, _ := store.Season(ctx, 1)
	if got.Winner != "0xbbb" {
		t.Fatalf("expected original record to survive, got winner %s", got.Winner)
	}
}

func TestSeasonNotFound(t *testing.T) {
	store, _ := openStore(t)
	if _, err := store.Season(context.Background(), 4); !errors.Is(err, league.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	ids, err := store.SeasonIDs(context.Background())
	if err != nil || len(ids) != 0 {
		t.Fatalf("expected no seasons, got %v (%v)", ids, err)
	}
}

func TestCancelledContext(t *testing.T) {
	store, _ := openStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := store.AppendSeason(ctx, sampleSeason(1)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestUpSection(t *testing.T) {
	content := "-- header\n-- +migrate Up\nCREATE TABLE a (x INT);\n-- +migrate Down\nDROP TABLE a;\n"
	if got := upSection(content); got != "\nCREATE TABLE a (x INT);\n" {
		t.Fatalf("unexpected up section %q", got)
	}
	if got := upSection("CREATE TABLE b (y INT);"); got != "CREATE TABLE b (y INT);" {
		t.Fatalf("expected whole file without markers, got %q", got)
	}
}

func TestApplyMigrationsRecordsApplied(t *testing.T) {
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "m.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = db.Close() }()

	fsys := fstest.MapFS{
		"001_a.sql": {Data: []byte("-- +migrate Up\nCREATE TABLE a (x INTEGER);\n")},
		"notes.txt": {Data: []byte("ignored")},
	}
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if err := applyMigrations(ctx, db, fsys); err != nil {
			t.Fatalf("apply pass %d: %v", i, err)
		}
	}
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM ` + migrationTable).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one recorded migration, got %d", count)
	}
}
