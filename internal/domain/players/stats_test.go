package players

import (
	"errors"
	"testing"
)

func TestParseStatsRejectsMalformed(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"not json", "{oops"},
		{"array", `[1,2]`},
		{"null", `null`},
		{"nested object", `{"a":{"b":1}}`},
		{"nested array", `{"a":[1]}`},
		{"bool", `{"a":true}`},
		{"empty key", `{"":1}`},
		{"trailing data", `{"a":1} {"b":2}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseStats([]byte(tc.raw)); !errors.Is(err, ErrMalformedStats) {
				t.Fatalf("expected ErrMalformedStats, got %v", err)
			}
		})
	}
}

func TestParseStatsDropsNulls(t *testing.T) {
	stats, err := ParseStats([]byte(`{"current_TOTAL_POINTS":null,"PLAYER":"X"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := stats["current_TOTAL_POINTS"]; ok {
		t.Fatalf("expected null value to be dropped")
	}
	if len(stats) != 1 {
		t.Fatalf("expected 1 key, got %d", len(stats))
	}
}

func TestStatsPointsDefaultsToZero(t *testing.T) {
	stats := Stats{
		"current_A": Text("n/a"),
		"current_B": Number("-12"),
		"current_C": Text(" 17 "),
		"current_D": Number("1e400"),
	}
	cases := map[string]int64{
		"A":       0,
		"B":       0,
		"C":       17,
		"D":       0,
		"MISSING": 0,
	}
	for name, want := range cases {
		if got := stats.Points(ViewCurrent, name); got != want {
			t.Fatalf("Points(%s) = %d, want %d", name, got, want)
		}
	}
}

func TestStatsPointsOnNilRecord(t *testing.T) {
	var stats Stats
	if got := stats.Points(ViewCurrent, StatTotalPoints); got != 0 {
		t.Fatalf("expected 0 from nil stats, got %d", got)
	}
	if stats.Clone() != nil {
		t.Fatalf("expected nil clone")
	}
}
