package league

import (
	domainleague "github.com/preston-bernstein/fantasy-league-service/internal/domain/league"
)

// Season is the current, mutable season. It owns its participant ledger and
// is replaced wholesale when settlement completes.
type Season struct {
	ID     int64
	State  domainleague.SeasonState
	Pool   domainleague.Amount
	ledger *ledger
}

func newSeason(id int64) *Season {
	return &Season{
		ID:     id,
		State:  domainleague.SeasonOpen,
		ledger: newLedger(),
	}
}

// ledger holds participant records in enrollment order together with the
// team-name index.
type ledger struct {
	participants map[domainleague.Address]*domainleague.Participant
	order        []domainleague.Address
	teamNames    map[string]domainleague.Address
	nextSeq      int64
}

func newLedger() *ledger {
	return &ledger{
		participants: make(map[domainleague.Address]*domainleague.Participant),
		teamNames:    make(map[string]domainleague.Address),
		nextSeq:      1,
	}
}

func (l *ledger) get(addr domainleague.Address) (*domainleague.Participant, bool) {
	p, ok := l.participants[addr]
	return p, ok
}

func (l *ledger) add(addr domainleague.Address) *domainleague.Participant {
	p := &domainleague.Participant{Address: addr, Enrolled: true}
	l.participants[addr] = p
	l.order = append(l.order, addr)
	return p
}

// TeamNameHolder implements roster.TeamNameIndex.
func (l *ledger) TeamNameHolder(name string) (domainleague.Address, bool) {
	addr, ok := l.teamNames[name]
	return addr, ok
}

func (l *ledger) setTeamName(p *domainleague.Participant, name string) {
	if p.TeamName != "" && l.teamNames[p.TeamName] == p.Address {
		delete(l.teamNames, p.TeamName)
	}
	p.TeamName = name
	if name != "" {
		l.teamNames[name] = p.Address
	}
}

// each visits participants in enrollment order.
func (l *ledger) each(fn func(p *domainleague.Participant)) {
	for _, addr := range l.order {
		fn(l.participants[addr])
	}
}

func (l *ledger) submittedCount() int64 {
	var n int64
	l.each(func(p *domainleague.Participant) {
		if p.Submitted() {
			n++
		}
	})
	return n
}
