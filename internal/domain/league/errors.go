package league

import (
	"errors"
	"fmt"
)

// Sentinel errors. Structured errors below match them through errors.Is.
// Repeat enrollment is not an error: Enroll reports it as created=false.
var (
	ErrNotFound         = errors.New("league: not found")
	ErrRoster           = errors.New("league: roster rejected")
	ErrAlreadyPaid      = errors.New("league: entry fee already paid")
	ErrAlreadySubmitted = errors.New("league: team already submitted")
	ErrWrongFeeAmount   = errors.New("league: wrong entry fee amount")
	ErrFeeNotPaid       = errors.New("league: entry fee not paid")
	ErrUnauthorized     = errors.New("league: unauthorized")
	ErrNoParticipants   = errors.New("league: no eligible participants")
	ErrInvalidStatsBlob = errors.New("league: invalid statistics blob")
	ErrInvalidInput     = errors.New("league: invalid input")
	ErrAlreadyExists    = errors.New("league: already exists")
)

// RosterReason enumerates validator failures in check order.
type RosterReason string

const (
	ReasonComposition     RosterReason = "composition"
	ReasonDuplicatePlayer RosterReason = "duplicate_player"
	ReasonUnknownPlayer   RosterReason = "unknown_player"
	ReasonCaptainNotMain  RosterReason = "captain_not_main"
	ReasonOverBudget      RosterReason = "over_budget"
	ReasonTeamNameTaken   RosterReason = "team_name_taken"
	ReasonUsernameEmpty   RosterReason = "username_empty"
	ReasonUsernameTooLong RosterReason = "username_too_long"
	ReasonTeamNameEmpty   RosterReason = "team_name_empty"
	ReasonTeamNameTooLong RosterReason = "team_name_too_long"
)

// RosterError is a rejected team or profile change.
type RosterError struct {
	Reason RosterReason
	Field  string
	Value  string
}

func (e *RosterError) Error() string {
	return fmt.Sprintf("league: roster rejected: %s (%s=%q)", e.Reason, e.Field, e.Value)
}

func (e *RosterError) Is(target error) bool {
	return target == ErrRoster
}

// NotFoundError names the missing entity.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("league: %s %q not found", e.Entity, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// FieldError attaches the offending field and value to a sentinel.
type FieldError struct {
	Err   error
	Field string
	Value string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%v (%s=%q)", e.Err, e.Field, e.Value)
}

func (e *FieldError) Unwrap() error { return e.Err }

// Fields extracts the offending field and value from a structured error.
func Fields(err error) (field, value string) {
	var re *RosterError
	if errors.As(err, &re) {
		return re.Field, re.Value
	}
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Field, fe.Value
	}
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf.Entity, nf.Key
	}
	return "", ""
}

// Kind returns a stable machine-readable name for err.
func Kind(err error) string {
	var re *RosterError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &re):
		return string(re.Reason)
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrAlreadyPaid):
		return "already_paid"
	case errors.Is(err, ErrAlreadySubmitted):
		return "already_submitted"
	case errors.Is(err, ErrWrongFeeAmount):
		return "wrong_fee_amount"
	case errors.Is(err, ErrFeeNotPaid):
		return "fee_not_paid"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrNoParticipants):
		return "no_participants"
	case errors.Is(err, ErrInvalidStatsBlob):
		return "invalid_stats_blob"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrAlreadyExists):
		return "already_exists"
	default:
		return "internal"
	}
}
