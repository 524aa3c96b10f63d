package archivefs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/fantasy-league-service/internal/domain/league"
	"github.com/preston-bernstein/fantasy-league-service/internal/domain/players"
	"github.com/preston-bernstein/fantasy-league-service/internal/testutil"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func season(id int64) league.ArchivedSeason {
	return league.ArchivedSeason{
		SeasonID: id,
		Participants: []league.ArchivedParticipant{{
			Address:  "0xaaa",
			Username: "alice",
			TeamName: "Strikers",
			Team:     league.Team{Main: []players.ID{1, 2, 3}, Reserve: 4, Captain: 2},
			Score:    30,
			Rank:     1,
		}},
		Winner:         "0xaaa",
		FinalPrizePool: 100,
		Collected:      100,
		Payouts:        []league.Payout{{ID: "p-1", SeasonID: id, Kind: league.PayoutWinner, Recipient: "0xaaa", Amount: 100}},
		SettledAt:      time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestNewRequiresDirectory(t *testing.T) {
	if _, err := New("", nil); err == nil {
		t.Fatalf("expected error for empty directory")
	}
}

func TestAppendWritesSeasonAndManifest(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	if err := s.AppendSeason(ctx, season(1)); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.AppendSeason(ctx, season(2)); err != nil {
		t.Fatalf("append: %v", err)
	}

	if _, err := os.Stat(SeasonPath(s.BasePath(), 1)); err != nil {
		t.Fatalf("expected season file, got %v", err)
	}
	if _, err := os.Stat(SeasonPath(s.BasePath(), 1) + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("expected no leftover temp file")
	}

	m, err := ReadManifest(s.BasePath())
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	if len(m.Seasons.IDs) != 2 || m.Seasons.IDs[0] != 1 || m.Seasons.IDs[1] != 2 {
		t.Fatalf("unexpected manifest ids %v", m.Seasons.IDs)
	}
	if m.Version != 1 || m.GeneratedAt.IsZero() || !m.Seasons.LastSettled.Equal(season(2).SettledAt) {
		t.Fatalf("unexpected manifest %+v", m)
	}
}

func TestSeasonRoundTrip(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	if err := s.AppendSeason(ctx, season(3)); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := s.Season(ctx, 3)
	if err != nil {
		t.Fatalf("season: %v", err)
	}
	if got.Winner != "0xaaa" || got.FinalPrizePool != 100 || len(got.Participants) != 1 {
		t.Fatalf("unexpected season %+v", got)
	}
	if team := got.Participants[0].Team; team.Captain != 2 || team.Reserve != 4 || len(team.Main) != 3 {
		t.Fatalf("unexpected team %+v", team)
	}
	if len(got.Payouts) != 1 || got.Payouts[0].Kind != league.PayoutWinner {
		t.Fatalf("unexpected payouts %+v", got.Payouts)
	}
}

func TestAppendNeverOverwrites(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	if err := s.AppendSeason(ctx, season(1)); err != nil {
		t.Fatalf("append: %v", err)
	}
	changed := season(1)
	changed.Winner = "0xbbb"
	if err := s.AppendSeason(ctx, changed); !errors.Is(err, league.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	got, _ := s.Season(ctx, 1)
	if got.Winner != "0xaaa" {
		t.Fatalf("expected original winner, got %s", got.Winner)
	}
}

func TestSeasonIDsIgnoresStrayFiles(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	if err := s.AppendSeason(ctx, season(10)); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.AppendSeason(ctx, season(2)); err != nil {
		t.Fatalf("append: %v", err)
	}
	dir := filepath.Join(s.BasePath(), seasonsDir)
	_ = os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644)
	_ = os.WriteFile(filepath.Join(dir, "draft.json"), []byte("{}"), 0o644)

	ids, err := s.SeasonIDs(ctx)
	if err != nil {
		t.Fatalf("ids: %v", err)
	}
	if len(ids) != 2 || ids[0] != 2 || ids[1] != 10 {
		t.Fatalf("expected numeric ordering [2 10], got %v", ids)
	}
}

func TestSeasonMissingAndCorrupt(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	if _, err := s.Season(ctx, 1); !errors.Is(err, league.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := os.WriteFile(SeasonPath(s.BasePath(), 5), []byte("{"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := s.Season(ctx, 5); err == nil || errors.Is(err, league.ErrNotFound) {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestReadManifestMissingReturnsDefault(t *testing.T) {
	m, err := ReadManifest(t.TempDir())
	if err == nil {
		t.Fatalf("expected error for missing manifest")
	}
	if m.Version != 1 || m.Seasons.IDs == nil {
		t.Fatalf("expected default manifest, got %+v", m)
	}
}

func TestAppendSucceedsWhenManifestCannotBeWritten(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	s, err := New(t.TempDir(), logger)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	// A non-empty directory at the manifest path makes the rename fail.
	blocker := ManifestPath(s.BasePath())
	if err := os.MkdirAll(filepath.Join(blocker, "keep"), 0o755); err != nil {
		t.Fatalf("block manifest: %v", err)
	}

	if err := s.AppendSeason(ctx, season(1)); err != nil {
		t.Fatalf("expected append to succeed, got %v", err)
	}
	got, err := s.Season(ctx, 1)
	if err != nil || got.Winner != "0xaaa" {
		t.Fatalf("expected stored season, got %+v (%v)", got, err)
	}
	if _, err := os.Stat(blocker + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("expected manifest temp file to be cleaned up")
	}
	if !strings.Contains(buf.String(), "archive manifest not updated") {
		t.Fatalf("expected manifest warning, got %q", buf.String())
	}

	if err := s.AppendSeason(ctx, season(2)); err != nil {
		t.Fatalf("expected next append to succeed, got %v", err)
	}
	ids, err := s.SeasonIDs(ctx)
	if err != nil || len(ids) != 2 {
		t.Fatalf("expected two seasons, got %v (%v)", ids, err)
	}
}
