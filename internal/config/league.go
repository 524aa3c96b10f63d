package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidLeague is returned when league rules cannot be used.
var ErrInvalidLeague = errors.New("invalid league configuration")

// LeagueConfig holds the money and roster rules of a season.
type LeagueConfig struct {
	EntryFee    int64
	Budget      int64
	MaxUsername int
	MaxTeamName int
	HouseCutBPS int64
	Operator    string
}

func loadLeague(raw rawEnv) (LeagueConfig, error) {
	var (
		cfg LeagueConfig
		err error
	)
	if cfg.EntryFee, err = int64OrError(envEntryFee, raw.EntryFee, defaultEntryFee); err != nil {
		return LeagueConfig{}, fmt.Errorf("%w: %v", ErrInvalidLeague, err)
	}
	if cfg.Budget, err = int64OrError(envBudget, raw.Budget, defaultBudget); err != nil {
		return LeagueConfig{}, fmt.Errorf("%w: %v", ErrInvalidLeague, err)
	}
	maxUser, err := int64OrError(envMaxUsername, raw.MaxUsername, defaultMaxUsername)
	if err != nil {
		return LeagueConfig{}, fmt.Errorf("%w: %v", ErrInvalidLeague, err)
	}
	maxTeam, err := int64OrError(envMaxTeamName, raw.MaxTeamName, defaultMaxTeamName)
	if err != nil {
		return LeagueConfig{}, fmt.Errorf("%w: %v", ErrInvalidLeague, err)
	}
	if cfg.HouseCutBPS, err = int64OrError(envHouseCutBPS, raw.HouseCutBPS, defaultHouseCutBPS); err != nil {
		return LeagueConfig{}, fmt.Errorf("%w: %v", ErrInvalidLeague, err)
	}
	cfg.MaxUsername = int(maxUser)
	cfg.MaxTeamName = int(maxTeam)
	cfg.Operator = strings.TrimSpace(raw.Operator)

	if err := cfg.validate(); err != nil {
		return LeagueConfig{}, err
	}
	return cfg, nil
}

func (c LeagueConfig) validate() error {
	switch {
	case c.EntryFee < 0:
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidLeague, envEntryFee)
	case c.Budget < 0:
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidLeague, envBudget)
	case c.MaxUsername <= 0:
		return fmt.Errorf("%w: %s must be positive", ErrInvalidLeague, envMaxUsername)
	case c.MaxTeamName <= 0:
		return fmt.Errorf("%w: %s must be positive", ErrInvalidLeague, envMaxTeamName)
	case c.HouseCutBPS < 0 || c.HouseCutBPS > 10_000:
		return fmt.Errorf("%w: %s must be within 0..10000", ErrInvalidLeague, envHouseCutBPS)
	case c.HouseCutBPS > 0 && c.Operator == "":
		return fmt.Errorf("%w: %s is required when a house cut is set", ErrInvalidLeague, envOperator)
	}
	return nil
}
