package roster

import (
	"errors"
	"strings"
	"testing"

	"github.com/preston-bernstein/fantasy-league-service/internal/domain/league"
	"github.com/preston-bernstein/fantasy-league-service/internal/domain/players"
)

type lookupStub map[players.ID]players.Player

func (l lookupStub) Player(id players.ID) (players.Player, bool) {
	p, ok := l[id]
	return p, ok
}

type namesStub map[string]league.Address

func (n namesStub) TeamNameHolder(name string) (league.Address, bool) {
	a, ok := n[name]
	return a, ok
}

var testRules = Rules{Budget: 1200, MaxUsername: 20, MaxTeamName: 30}

// registryOf13 holds players 1..13 priced at 100 each.
func registryOf13() lookupStub {
	l := lookupStub{}
	for i := players.ID(1); i <= 13; i++ {
		l[i] = players.Player{ID: i, Name: "p", Price: 100}
	}
	return l
}

func validCandidate() Candidate {
	return Candidate{
		Address:  "0xaaa",
		Username: "alice",
		TeamName: "Strikers",
		Selection: league.Selection{
			Main:    []players.ID{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
			Reserve: []players.ID{12},
			Captain: 3,
		},
	}
}

func reasonOf(t *testing.T, err error) league.RosterReason {
	t.Helper()
	var re *league.RosterError
	if !errors.As(err, &re) {
		t.Fatalf("expected roster error, got %v", err)
	}
	return re.Reason
}

func TestValidateAcceptsTeamExactlyAtBudget(t *testing.T) {
	cost, err := Validate(validCandidate(), registryOf13(), namesStub{}, testRules)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cost != 1200 {
		t.Fatalf("expected cost 1200, got %d", cost)
	}
}

func TestValidateRejectsOneUnitOverBudget(t *testing.T) {
	lookup := registryOf13()
	p := lookup[12]
	p.Price = 101
	lookup[12] = p

	_, err := Validate(validCandidate(), lookup, namesStub{}, testRules)
	if reasonOf(t, err) != league.ReasonOverBudget {
		t.Fatalf("expected over_budget, got %v", err)
	}
	if !errors.Is(err, league.ErrRoster) {
		t.Fatalf("expected ErrRoster match")
	}
	if field, value := league.Fields(err); field != "budget" || value != "1201" {
		t.Fatalf("unexpected fields %s=%s", field, value)
	}
}

func TestValidateBudgetDoesNotOverflow(t *testing.T) {
	lookup := registryOf13()
	for _, id := range []players.ID{1, 2} {
		p := lookup[id]
		p.Price = 1<<63 - 1
		lookup[id] = p
	}
	rules := testRules
	rules.Budget = 1<<63 - 1
	if _, err := Validate(validCandidate(), lookup, namesStub{}, rules); reasonOf(t, err) != league.ReasonOverBudget {
		t.Fatalf("expected over_budget, got %v", err)
	}
}

func TestValidateCheckOrder(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Candidate)
		names  namesStub
		want   league.RosterReason
	}{
		{
			name:   "ten main players",
			mutate: func(c *Candidate) { c.Selection.Main = c.Selection.Main[:10] },
			want:   league.ReasonComposition,
		},
		{
			name:   "two reserves",
			mutate: func(c *Candidate) { c.Selection.Reserve = []players.ID{12, 13} },
			want:   league.ReasonComposition,
		},
		{
			name:   "reserve repeats a main player",
			mutate: func(c *Candidate) { c.Selection.Reserve = []players.ID{1} },
			want:   league.ReasonDuplicatePlayer,
		},
		{
			name: "unknown id beats captain check",
			mutate: func(c *Candidate) {
				c.Selection.Main[10] = 99
				c.Selection.Captain = 12
			},
			want: league.ReasonUnknownPlayer,
		},
		{
			name:   "captain is the reserve",
			mutate: func(c *Candidate) { c.Selection.Captain = 12 },
			want:   league.ReasonCaptainNotMain,
		},
		{
			name:   "team name held by someone else",
			mutate: func(c *Candidate) { c.Username = "" },
			names:  namesStub{"Strikers": "0xbbb"},
			want:   league.ReasonTeamNameTaken,
		},
		{
			name:   "empty username",
			mutate: func(c *Candidate) { c.Username = "" },
			want:   league.ReasonUsernameEmpty,
		},
		{
			name:   "long username",
			mutate: func(c *Candidate) { c.Username = "abcdefghijklmnopqrstu" },
			want:   league.ReasonUsernameTooLong,
		},
		{
			name:   "empty team name",
			mutate: func(c *Candidate) { c.TeamName = "" },
			want:   league.ReasonTeamNameEmpty,
		},
		{
			name:   "long team name",
			mutate: func(c *Candidate) { c.TeamName = "abcdefghijklmnopqrstuvwxyzabcde" },
			want:   league.ReasonTeamNameTooLong,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := validCandidate()
			tc.mutate(&c)
			names := tc.names
			if names == nil {
				names = namesStub{}
			}
			_, err := Validate(c, registryOf13(), names, testRules)
			if got := reasonOf(t, err); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestValidateAllowsOwnTeamName(t *testing.T) {
	names := namesStub{"Strikers": "0xaaa"}
	if _, err := Validate(validCandidate(), registryOf13(), names, testRules); err != nil {
		t.Fatalf("expected own team name to be allowed, got %v", err)
	}
}

func TestTeamNameMatchIsCaseSensitive(t *testing.T) {
	names := namesStub{"strikers": "0xbbb"}
	if _, err := Validate(validCandidate(), registryOf13(), names, testRules); err != nil {
		t.Fatalf("expected differently cased name to be allowed, got %v", err)
	}
}

func TestLengthsCountRunes(t *testing.T) {
	c := validCandidate()
	c.Username = strings.Repeat("\u00e9", 20)
	if _, err := Validate(c, registryOf13(), namesStub{}, testRules); err != nil {
		t.Fatalf("expected 20-rune username to pass, got %v", err)
	}
}

func TestValidateProfile(t *testing.T) {
	names := namesStub{"Strikers": "0xbbb"}
	taken := "Strikers"
	if err := ValidateProfile("0xaaa", nil, &taken, names, testRules); reasonOf(t, err) != league.ReasonTeamNameTaken {
		t.Fatalf("expected team_name_taken, got %v", err)
	}
	if err := ValidateProfile("0xbbb", nil, &taken, names, testRules); err != nil {
		t.Fatalf("expected holder to keep own name, got %v", err)
	}
	empty := ""
	if err := ValidateProfile("0xaaa", &empty, nil, names, testRules); reasonOf(t, err) != league.ReasonUsernameEmpty {
		t.Fatalf("expected username_empty, got %v", err)
	}
	if err := ValidateProfile("0xaaa", nil, nil, names, testRules); err != nil {
		t.Fatalf("expected no-op profile change to pass, got %v", err)
	}
}

func TestNormalizeName(t *testing.T) {
	composed := "Caf\u00e9"
	decomposed := "Cafe\u0301"
	if NormalizeName("  "+decomposed+" ") != composed {
		t.Fatalf("expected NFC normalized name")
	}
}
