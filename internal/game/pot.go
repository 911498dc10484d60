package game

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nier2kirito/PokerBots/internal/evaluator"
)

// Outcome describes how a pot was settled.
type Outcome string

const (
	OutcomeShowdown        Outcome = "Showdown"
	OutcomeOpponentsFolded Outcome = "Opponents Folded"
	OutcomeNoWinner        Outcome = "No Winner"
	OutcomeEvaluationError Outcome = "Evaluation Error"
)

// Result is the settlement of one hand.
type Result struct {
	Outcome       Outcome
	Winners       []Seat
	Pot           Chips
	Contributions [NumSeats]Chips
	Shares        [NumSeats]Chips
	Net           [NumSeats]Chips
	// Unclaimed is the part of the pot nobody won (no live or scoring seat).
	Unclaimed Chips
	Showdown  bool
	// Scores holds each evaluated seat's best hand; nil for seats not evaluated.
	Scores   [NumSeats]*evaluator.Score
	Category evaluator.Category
}

// HandType names the winning hand: the category at showdown, otherwise a
// description of how the pot ended.
func (r Result) HandType() string {
	switch r.Outcome {
	case OutcomeShowdown:
		return r.Category.String()
	case OutcomeOpponentsFolded:
		return "Opponents Folded"
	case OutcomeNoWinner:
		return "All Folded"
	default:
		return "Unknown"
	}
}

// WinnerName joins the winning seats, or returns the outcome when nobody won.
func (r Result) WinnerName() string {
	if len(r.Winners) == 0 {
		return string(r.Outcome)
	}
	names := make([]string, len(r.Winners))
	for i, s := range r.Winners {
		names[i] = s.String()
	}
	return strings.Join(names, ", ")
}

// IsWinner reports whether s won at least part of the pot.
func (r Result) IsWinner(s Seat) bool {
	for _, w := range r.Winners {
		if w == s {
			return true
		}
	}
	return false
}

// ResolvePot settles h's pot. Undecided seats are folded first. A lone live seat
// takes the pot without evaluation; otherwise the best score among live seats
// wins, and a tied pot is split in whole chips with the remainder going one chip
// at a time to the tied seats in acting order. When nobody is live or nobody can
// be scored, the pot is left unclaimed.
func ResolvePot(h *HandState, logger *log.Logger) Result {
	res := Result{Pot: h.Pot, Contributions: h.Bets}

	for _, s := range Seats {
		if !h.Decisions[s].Decided() {
			h.Decisions[s] = Fold
		}
	}

	live := h.Live()
	switch len(live) {
	case 0:
		logger.Warn("All seats folded, pot unclaimed", "pot", h.Pot)
		res.Outcome = OutcomeNoWinner
	case 1:
		res.Outcome = OutcomeOpponentsFolded
		res.Winners = live
	default:
		res.Showdown = true
		scores := make([]evaluator.Score, 0, len(live))
		scored := make([]Seat, 0, len(live))
		for _, s := range live {
			score, ok := evaluator.Evaluate(h.Hole[s], h.Community)
			if !ok {
				logger.Warn("Could not evaluate hand", "seat", s, "hole", len(h.Hole[s]), "community", len(h.Community))
				continue
			}
			res.Scores[s] = &score
			scores = append(scores, score)
			scored = append(scored, s)
		}

		best := evaluator.Best(scores)
		if len(best) == 0 {
			logger.Error("No live seat could be evaluated", "live", len(live))
			res.Outcome = OutcomeEvaluationError
			break
		}
		res.Outcome = OutcomeShowdown
		res.Category = scores[best[0]].Category
		for _, i := range best {
			res.Winners = append(res.Winners, scored[i])
		}
	}

	if len(res.Winners) > 0 {
		share := h.Pot / Chips(len(res.Winners))
		rem := h.Pot % Chips(len(res.Winners))
		for _, w := range res.Winners {
			res.Shares[w] = share
			if rem > 0 {
				res.Shares[w]++
				rem--
			}
			h.Stacks[w] += res.Shares[w]
		}
		h.Pot = 0
	} else {
		res.Unclaimed = h.Pot
	}

	for _, s := range Seats {
		res.Net[s] = res.Shares[s] - res.Contributions[s]
	}
	return res
}
