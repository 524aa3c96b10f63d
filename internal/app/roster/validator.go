// Package roster checks candidate teams and profile names against the league
// rules. Everything here is pure: callers pass read-only lookups and get back
// either the team cost or a *league.RosterError.
package roster

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/preston-bernstein/fantasy-league-service/internal/domain/league"
	"github.com/preston-bernstein/fantasy-league-service/internal/domain/players"
)

// Rules are the configurable limits. Budget is the inclusive ceiling on the
// summed price of all 12 players.
type Rules struct {
	Budget      int64
	MaxUsername int
	MaxTeamName int
}

// PlayerLookup resolves player ids.
type PlayerLookup interface {
	Player(id players.ID) (players.Player, bool)
}

// TeamNameIndex reports which participant currently holds a team name.
type TeamNameIndex interface {
	TeamNameHolder(name string) (league.Address, bool)
}

// Candidate is everything submitTeam needs validated.
type Candidate struct {
	Address   league.Address
	Username  string
	TeamName  string
	Selection league.Selection
}

// NormalizeName trims and NFC-normalizes a display name so that visually
// identical names compare equal.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// Validate runs the six team checks in order and returns the team's total
// price. Names must already be normalized.
func Validate(c Candidate, lookup PlayerLookup, names TeamNameIndex, rules Rules) (int64, error) {
	if err := checkComposition(c.Selection); err != nil {
		return 0, err
	}
	ids := c.Selection.IDs()
	selected := make([]players.Player, 0, len(ids))
	for _, id := range ids {
		p, ok := lookup.Player(id)
		if !ok {
			return 0, rosterErr(league.ReasonUnknownPlayer, "player", formatID(id))
		}
		selected = append(selected, p)
	}
	if !containsID(c.Selection.Main, c.Selection.Captain) {
		return 0, rosterErr(league.ReasonCaptainNotMain, "captain", formatID(c.Selection.Captain))
	}
	cost, err := checkBudget(selected, rules.Budget)
	if err != nil {
		return 0, err
	}
	if err := checkTeamNameFree(c.Address, c.TeamName, names); err != nil {
		return 0, err
	}
	if err := checkUsername(c.Username, rules.MaxUsername); err != nil {
		return 0, err
	}
	if err := checkTeamName(c.TeamName, rules.MaxTeamName); err != nil {
		return 0, err
	}
	return cost, nil
}

// ValidateProfile applies the name rules to a profile change. Nil fields are
// left unchanged and not re-checked.
func ValidateProfile(addr league.Address, username, teamName *string, names TeamNameIndex, rules Rules) error {
	if teamName != nil {
		if err := checkTeamNameFree(addr, *teamName, names); err != nil {
			return err
		}
	}
	if username != nil {
		if err := checkUsername(*username, rules.MaxUsername); err != nil {
			return err
		}
	}
	if teamName != nil {
		if err := checkTeamName(*teamName, rules.MaxTeamName); err != nil {
			return err
		}
	}
	return nil
}

func checkComposition(sel league.Selection) error {
	if len(sel.Main) != league.MainSize {
		return rosterErr(league.ReasonComposition, "main", strconv.Itoa(len(sel.Main)))
	}
	if len(sel.Reserve) != league.ReserveSize {
		return rosterErr(league.ReasonComposition, "reserve", strconv.Itoa(len(sel.Reserve)))
	}
	seen := make(map[players.ID]struct{}, league.TeamSize)
	for _, id := range sel.IDs() {
		if _, dup := seen[id]; dup {
			return rosterErr(league.ReasonDuplicatePlayer, "player", formatID(id))
		}
		seen[id] = struct{}{}
	}
	return nil
}

func checkBudget(selected []players.Player, budget int64) (int64, error) {
	var cost int64
	over := false
	for _, p := range selected {
		if p.Price > budget-cost {
			over = true
		}
		if !over {
			cost += p.Price
		}
	}
	if over {
		return 0, rosterErr(league.ReasonOverBudget, "budget", strconv.FormatInt(sumSaturating(selected), 10))
	}
	return cost, nil
}

func sumSaturating(selected []players.Player) int64 {
	var total int64
	for _, p := range selected {
		if total > (1<<63-1)-p.Price {
			return 1<<63 - 1
		}
		total += p.Price
	}
	return total
}

func checkTeamNameFree(addr league.Address, teamName string, names TeamNameIndex) error {
	if names == nil || teamName == "" {
		return nil
	}
	if holder, ok := names.TeamNameHolder(teamName); ok && holder != addr {
		return rosterErr(league.ReasonTeamNameTaken, "teamName", teamName)
	}
	return nil
}

func checkUsername(username string, max int) error {
	if username == "" {
		return rosterErr(league.ReasonUsernameEmpty, "username", username)
	}
	if max > 0 && utf8.RuneCountInString(username) > max {
		return rosterErr(league.ReasonUsernameTooLong, "username", username)
	}
	return nil
}

func checkTeamName(teamName string, max int) error {
	if teamName == "" {
		return rosterErr(league.ReasonTeamNameEmpty, "teamName", teamName)
	}
	if max > 0 && utf8.RuneCountInString(teamName) > max {
		return rosterErr(league.ReasonTeamNameTooLong, "teamName", teamName)
	}
	return nil
}

func containsID(ids []players.ID, id players.ID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func rosterErr(reason league.RosterReason, field, value string) error {
	return &league.RosterError{Reason: reason, Field: field, Value: value}
}

func formatID(id players.ID) string {
	return strconv.FormatInt(int64(id), 10)
}
