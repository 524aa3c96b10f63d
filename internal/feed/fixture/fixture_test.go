package fixture

import (
	"context"
	"testing"
)

func TestFixtureReturnsEnoughPlayersForATeam(t *testing.T) {
	batch, err := New().FetchPlayers(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(batch.Skipped) != 0 {
		t.Fatalf("expected no skipped records, got %+v", batch.Skipped)
	}
	if len(batch.Records) < 12 {
		t.Fatalf("expected at least 12 players, got %d", len(batch.Records))
	}
	seen := map[string]bool{}
	for _, rec := range batch.Records {
		if rec.Name == "" || rec.Price <= 0 {
			t.Fatalf("unexpected record %+v", rec)
		}
		if seen[rec.Name] {
			t.Fatalf("duplicate player %s", rec.Name)
		}
		seen[rec.Name] = true
	}
}

func TestFixtureHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New().FetchPlayers(ctx); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestRawReturnsCopy(t *testing.T) {
	a := Raw()
	a[0] = 'x'
	if Raw()[0] == 'x' {
		t.Fatalf("expected Raw to return a copy")
	}
}
