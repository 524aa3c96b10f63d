package league

import (
	"context"
	"strconv"

	"github.com/preston-bernstein/fantasy-league-service/internal/app/roster"
	domainleague "github.com/preston-bernstein/fantasy-league-service/internal/domain/league"
	"github.com/preston-bernstein/fantasy-league-service/internal/logging"
)

// Enroll registers addr for the current season. Enrolling twice is a no-op
// reported through created=false.
func (e *Engine) Enroll(ctx context.Context, address string) (p domainleague.Participant, created bool, err error) {
	addr := domainleague.NormalizeAddress(address)
	defer func() { e.observe(ctx, "enroll", err, logging.FieldAddress, string(addr)) }()

	if addr == "" {
		return domainleague.Participant{}, false, invalidAddress(address)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if existing, ok := e.season.ledger.get(addr); ok {
		return existing.Clone(), false, nil
	}
	return e.season.ledger.add(addr).Clone(), true, nil
}

// PayEntryFee credits the entry fee for an enrolled participant. The amount
// must equal the configured fee and may only be paid once per season.
func (e *Engine) PayEntryFee(ctx context.Context, address string, amount domainleague.Amount) (p domainleague.Participant, err error) {
	addr := domainleague.NormalizeAddress(address)
	defer func() { e.observe(ctx, "pay_entry_fee", err, logging.FieldAddress, string(addr)) }()

	e.mu.Lock()
	defer e.mu.Unlock()

	existing, ok := e.season.ledger.get(addr)
	if !ok {
		return domainleague.Participant{}, participantNotFound(addr)
	}
	if err := e.creditFee(existing, amount); err != nil {
		return domainleague.Participant{}, err
	}
	return existing.Clone(), nil
}

// JoinLeague enrolls addr if needed and pays the entry fee in one step.
func (e *Engine) JoinLeague(ctx context.Context, address string, amount domainleague.Amount) (p domainleague.Participant, created bool, err error) {
	addr := domainleague.NormalizeAddress(address)
	defer func() { e.observe(ctx, "join_league", err, logging.FieldAddress, string(addr)) }()

	if addr == "" {
		return domainleague.Participant{}, false, invalidAddress(address)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	existing, ok := e.season.ledger.get(addr)
	if ok {
		if err := e.creditFee(existing, amount); err != nil {
			return domainleague.Participant{}, false, err
		}
		return existing.Clone(), false, nil
	}

	// Check the payment against a scratch record so a rejected payment leaves
	// no enrollment behind.
	scratch := &domainleague.Participant{Address: addr, Enrolled: true}
	if err := e.checkFee(scratch, amount); err != nil {
		return domainleague.Participant{}, false, err
	}
	fresh := e.season.ledger.add(addr)
	if err := e.creditFee(fresh, amount); err != nil {
		return domainleague.Participant{}, false, err
	}
	return fresh.Clone(), true, nil
}

func (e *Engine) checkFee(p *domainleague.Participant, amount domainleague.Amount) error {
	if p.FeePaid {
		return domainleague.ErrAlreadyPaid
	}
	if amount != e.opts.EntryFee {
		return &domainleague.FieldError{Err: domainleague.ErrWrongFeeAmount, Field: "amount", Value: strconv.FormatInt(int64(amount), 10)}
	}
	if _, err := e.season.Pool.Add(amount); err != nil {
		return err
	}
	return nil
}

func (e *Engine) creditFee(p *domainleague.Participant, amount domainleague.Amount) error {
	if err := e.checkFee(p, amount); err != nil {
		return err
	}
	pool, _ := e.season.Pool.Add(amount)
	e.season.Pool = pool
	p.FeePaid = true
	return nil
}

// SubmitTeam validates and locks the participant's team. It requires the
// entry fee to be paid and can succeed only once per season.
func (e *Engine) SubmitTeam(ctx context.Context, address string, sel domainleague.Selection, username, teamName string) (p domainleague.Participant, err error) {
	addr := domainleague.NormalizeAddress(address)
	defer func() { e.observe(ctx, "submit_team", err, logging.FieldAddress, string(addr)) }()

	username = roster.NormalizeName(username)
	teamName = roster.NormalizeName(teamName)

	e.mu.Lock()
	defer e.mu.Unlock()

	existing, ok := e.season.ledger.get(addr)
	switch {
	case !ok:
		return domainleague.Participant{}, participantNotFound(addr)
	case existing.Submitted():
		return domainleague.Participant{}, domainleague.ErrAlreadySubmitted
	case !existing.FeePaid:
		return domainleague.Participant{}, domainleague.ErrFeeNotPaid
	}

	cost, err := roster.Validate(roster.Candidate{
		Address:   addr,
		Username:  username,
		TeamName:  teamName,
		Selection: sel,
	}, e.players, e.season.ledger, e.opts.Rules)
	if err != nil {
		return domainleague.Participant{}, err
	}

	led := e.season.ledger
	existing.Username = username
	led.setTeamName(existing, teamName)
	existing.Team = &domainleague.Team{
		Main:    append(sel.Main[:0:0], sel.Main...),
		Reserve: sel.Reserve[0],
		Captain: sel.Captain,
	}
	existing.TeamCost = cost
	existing.SubmittedAt = e.now()
	existing.SubmissionSeq = led.nextSeq
	led.nextSeq++
	return existing.Clone(), nil
}

// UpdateProfile changes the username and/or team name. Nil arguments are left
// as they are. The locked team is never touched.
func (e *Engine) UpdateProfile(ctx context.Context, address string, username, teamName *string) (p domainleague.Participant, err error) {
	addr := domainleague.NormalizeAddress(address)
	defer func() { e.observe(ctx, "update_profile", err, logging.FieldAddress, string(addr)) }()

	if username != nil {
		n := roster.NormalizeName(*username)
		username = &n
	}
	if teamName != nil {
		n := roster.NormalizeName(*teamName)
		teamName = &n
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	existing, ok := e.season.ledger.get(addr)
	if !ok {
		return domainleague.Participant{}, participantNotFound(addr)
	}
	if err := roster.ValidateProfile(addr, username, teamName, e.season.ledger, e.opts.Rules); err != nil {
		return domainleague.Participant{}, err
	}
	if username != nil {
		existing.Username = *username
	}
	if teamName != nil {
		e.season.ledger.setTeamName(existing, *teamName)
	}
	return existing.Clone(), nil
}

func participantNotFound(addr domainleague.Address) error {
	return &domainleague.NotFoundError{Entity: "participant", Key: string(addr)}
}

func invalidAddress(raw string) error {
	return &domainleague.FieldError{Err: domainleague.ErrInvalidInput, Field: "address", Value: raw}
}
