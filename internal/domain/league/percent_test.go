package league

import (
	"encoding/json"
	"testing"
)

func TestPercentOf(t *testing.T) {
	cases := []struct {
		part, whole int64
		want        string
	}{
		{0, 0, "0.00"},
		{3, 0, "0.00"},
		{1, 3, "33.33"},
		{2, 3, "66.66"},
		{1, 2, "50.00"},
		{3, 3, "100.00"},
		{1, 10_000, "0.01"},
		{1, 20_000, "0.00"},
	}
	for _, tc := range cases {
		if got := PercentOf(tc.part, tc.whole).String(); got != tc.want {
			t.Fatalf("PercentOf(%d, %d) = %s, want %s", tc.part, tc.whole, got, tc.want)
		}
	}
}

func TestPercentMarshalsAsString(t *testing.T) {
	raw, err := json.Marshal(map[string]Percent{"p": 3333})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"p":"33.33"}` {
		t.Fatalf("unexpected json %s", raw)
	}
}
