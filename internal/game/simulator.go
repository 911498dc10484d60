package game

import (
	"github.com/nier2kirito/PokerBots/internal/strategy"
)

// Source supplies uniform draws in [0, 1). *math/rand/v2.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Simulator samples decisions for non-user seats from a mixed strategy.
type Simulator struct {
	lookup strategy.Lookup
	rng    Source
}

// NewSimulator returns a simulator drawing from rng. A nil lookup behaves like an
// empty table.
func NewSimulator(lookup strategy.Lookup, rng Source) *Simulator {
	if rng == nil {
		panic("rng is required for the decision simulator")
	}
	if lookup == nil {
		lookup = strategy.Empty()
	}
	return &Simulator{lookup: lookup, rng: rng}
}

// Infoset returns the lookup key for seat given the decisions recorded so far,
// indexed by seat. Only seats acting before seat are consulted; an unset
// decision counts as a fold.
func Infoset(seat Seat, decisions []Decision) string {
	prior := make([]bool, int(seat))
	for i := range prior {
		prior[i] = i < len(decisions) && decisions[i] == AllIn
	}
	key, err := strategy.Infoset(prior)
	if err != nil {
		return ""
	}
	return key
}

// Probabilities returns the strategy entry for seat holding handKey, or the
// 50/50 default when the table has no entry.
func (s *Simulator) Probabilities(seat Seat, handKey string, decisions []Decision) strategy.Probabilities {
	if p, ok := s.lookup.Lookup(Infoset(seat, decisions), handKey); ok {
		return p
	}
	return strategy.DefaultProbabilities
}

// Decide draws once: ALL_IN when the draw falls below the all-in probability,
// FOLD otherwise.
func (s *Simulator) Decide(seat Seat, handKey string, decisions []Decision) Decision {
	p := s.Probabilities(seat, handKey, decisions)
	if s.rng.Float64() < p.AllIn {
		return AllIn
	}
	return Fold
}
