package allocate

import (
	"github.com/artplanhq/artplan/internal/art"
	"github.com/artplanhq/artplan/internal/capacity"
	"github.com/artplanhq/artplan/internal/domain"
)

// Ledger tracks remaining usable capacity per team within a single
// iteration. Ledgers are value-threaded: Place returns an updated copy
// instead of mutating in place, so each allocation step can be tested
// in isolation.
type Ledger struct {
	remaining  map[domain.TeamID]float64
	roundRobin map[string]int
}

// NewLedger opens a fresh ledger for one iteration, charging the buffer
// up front so allocation only ever sees usable capacity.
func NewLedger(teams []art.Team, buffer float64) Ledger {
	remaining := make(map[domain.TeamID]float64, len(teams))
	for _, team := range teams {
		remaining[team.ID] = capacity.UsableForIteration(team, buffer)
	}
	return Ledger{
		remaining:  remaining,
		roundRobin: make(map[string]int),
	}
}

// Remaining returns the unconsumed usable capacity for a team.
func (l Ledger) Remaining(id domain.TeamID) float64 {
	return l.remaining[id]
}

// clone copies the ledger so the caller's value stays untouched.
func (l Ledger) clone() Ledger {
	remaining := make(map[domain.TeamID]float64, len(l.remaining))
	for k, v := range l.remaining {
		remaining[k] = v
	}
	roundRobin := make(map[string]int, len(l.roundRobin))
	for k, v := range l.roundRobin {
		roundRobin[k] = v
	}
	return Ledger{remaining: remaining, roundRobin: roundRobin}
}

// Place tries to consume capacity for the item from one of the teams.
// When the item carries a specialization hint and at least one team
// matches it, candidates rotate round-robin across the matching teams;
// otherwise the first team (in input order) with enough remaining
// capacity wins. Returns the updated ledger and the chosen team.
func (l Ledger) Place(item art.WorkItem, teams []art.Team) (Ledger, domain.TeamID, bool) {
	candidates := teams
	rrKey := ""
	if item.Specialization != "" {
		var matching []art.Team
		for _, team := range teams {
			if team.HasSpecialization(item.Specialization) {
				matching = append(matching, team)
			}
		}
		if len(matching) > 0 {
			candidates = matching
			rrKey = item.Specialization
		}
	}
	if len(candidates) == 0 {
		return l, "", false
	}

	start := 0
	if rrKey != "" {
		start = l.roundRobin[rrKey] % len(candidates)
	}

	for i := 0; i < len(candidates); i++ {
		team := candidates[(start+i)%len(candidates)]
		if l.remaining[team.ID] >= item.Estimate {
			next := l.clone()
			next.remaining[team.ID] -= item.Estimate
			if rrKey != "" {
				next.roundRobin[rrKey]++
			}
			return next, team.ID, true
		}
	}

	return l, "", false
}
