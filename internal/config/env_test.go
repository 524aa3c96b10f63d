package config

import (
	"testing"
	"time"
)

func TestBoolOrDefault(t *testing.T) {
	if got := boolOrDefault("", true); !got {
		t.Fatalf("expected default true when unset")
	}

	cases := []struct {
		val      string
		expected bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"FALSE", false},
		{"0", false},
		{"no", false},
		{"maybe", true}, // falls back to default on unknown
	}

	for _, tc := range cases {
		if got := boolOrDefault(tc.val, true); got != tc.expected {
			t.Fatalf("expected %v for %s, got %v", tc.expected, tc.val, got)
		}
	}
}

func TestDurationOrDefault(t *testing.T) {
	if got := durationOrDefault(" 2m ", time.Second); got != 2*time.Minute {
		t.Fatalf("expected 2m, got %s", got)
	}
	for _, raw := range []string{"", "-1s", "0s", "soon"} {
		if got := durationOrDefault(raw, time.Second); got != time.Second {
			t.Fatalf("expected default for %q, got %s", raw, got)
		}
	}
}

func TestStringOrDefault(t *testing.T) {
	if got := stringOrDefault("  ", "x"); got != "x" {
		t.Fatalf("expected default for blank, got %q", got)
	}
	if got := stringOrDefault(" y ", "x"); got != "y" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
}

func TestInt64OrError(t *testing.T) {
	if v, err := int64OrError("K", "", 7); err != nil || v != 7 {
		t.Fatalf("expected default, got %d %v", v, err)
	}
	if v, err := int64OrError("K", " 42 ", 7); err != nil || v != 42 {
		t.Fatalf("expected 42, got %d %v", v, err)
	}
	if _, err := int64OrError("K", "4.2", 7); err == nil {
		t.Fatalf("expected error for non-integer")
	}
}

func TestParseEnvReadsTaggedVariables(t *testing.T) {
	t.Setenv(envArchiveDir, "/var/lib/league")
	raw, err := parseEnv()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if raw.ArchiveDir != "/var/lib/league" {
		t.Fatalf("expected archive dir from env, got %q", raw.ArchiveDir)
	}
}
