// Package evaluator ranks poker hands. It is stateless: every function is pure and
// safe for concurrent use.
package evaluator

import (
	"errors"
	"fmt"
	"slices"

	"github.com/nier2kirito/PokerBots/internal/deck"
)

// ErrNotEnoughCards is returned when fewer than five cards are available.
var ErrNotEnoughCards = errors.New("at least 5 cards are required")

// Evaluate returns the best five-card Score obtainable from the hole and community
// cards. It reports false when fewer than five cards are available, more than seven
// are given, or any card is invalid.
func Evaluate(hole, community []deck.Card) (Score, bool) {
	h, ok := EvaluateHand(hole, community)
	return h.Score, ok
}

// EvaluateHand is Evaluate but also returns the five cards making the best hand.
func EvaluateHand(hole, community []deck.Card) (Hand, bool) {
	all := make([]deck.Card, 0, len(hole)+len(community))
	all = append(all, hole...)
	all = append(all, community...)

	if len(all) < handSize || len(all) > maxCards {
		return Hand{}, false
	}
	for _, c := range all {
		if !c.Valid() {
			return Hand{}, false
		}
	}

	var best Hand
	found := false
	var five [handSize]deck.Card
	for _, idx := range subsets[len(all)] {
		for i, j := range idx {
			five[i] = all[j]
		}
		s := ScoreFive(five)
		if !found || s.Beats(best.Score) {
			best = Hand{Score: s, Cards: slices.Clone(five[:])}
			found = true
		}
	}
	return best, found
}

// EvaluateTokens parses card tokens and evaluates them. Any malformed token makes the
// hand unevaluable.
func EvaluateTokens(hole, community []string) (Score, error) {
	parse := func(tokens []string) ([]deck.Card, error) {
		cards := make([]deck.Card, len(tokens))
		for i, tok := range tokens {
			c, err := deck.ParseCard(tok)
			if err != nil {
				return nil, err
			}
			cards[i] = c
		}
		return cards, nil
	}

	h, err := parse(hole)
	if err != nil {
		return Score{}, fmt.Errorf("cannot evaluate: %w", err)
	}
	c, err := parse(community)
	if err != nil {
		return Score{}, fmt.Errorf("cannot evaluate: %w", err)
	}

	s, ok := Evaluate(h, c)
	if !ok {
		return Score{}, fmt.Errorf("cannot evaluate %d cards: %w", len(h)+len(c), ErrNotEnoughCards)
	}
	return s, nil
}

type rankGroup struct {
	rank  int
	count int
}

// ScoreFive scores exactly five cards.
func ScoreFive(cards [handSize]deck.Card) Score {
	var ranks [handSize]int
	for i, c := range cards {
		ranks[i] = int(c.Rank)
	}
	slices.SortFunc(ranks[:], func(a, b int) int { return b - a })

	var counts [int(deck.Ace) + 1]int
	for _, r := range ranks {
		counts[r]++
	}
	groups := make([]rankGroup, 0, handSize)
	for r := int(deck.Ace); r >= int(deck.Two); r-- {
		if counts[r] > 0 {
			groups = append(groups, rankGroup{rank: r, count: counts[r]})
		}
	}
	// Stable sort keeps ranks descending within equal counts.
	slices.SortStableFunc(groups, func(a, b rankGroup) int { return b.count - a.count })

	flush := true
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			flush = false
			break
		}
	}
	high, straight := straightHigh(ranks, len(groups))

	switch {
	case flush && straight:
		return Score{Category: StraightFlush, Tiebreak: []int{high}}
	case groups[0].count == 4:
		return Score{Category: FourOfAKind, Tiebreak: []int{groups[0].rank, groups[1].rank}}
	case groups[0].count == 3 && len(groups) > 1 && groups[1].count >= 2:
		return Score{Category: FullHouse, Tiebreak: []int{groups[0].rank, groups[1].rank}}
	case flush:
		return Score{Category: Flush, Tiebreak: slices.Clone(ranks[:])}
	case straight:
		return Score{Category: Straight, Tiebreak: []int{high}}
	case groups[0].count == 3:
		return Score{Category: ThreeOfAKind, Tiebreak: append([]int{groups[0].rank}, kickers(ranks, groups[0].rank)...)}
	case groups[0].count == 2 && groups[1].count == 2:
		return Score{Category: TwoPair, Tiebreak: []int{groups[0].rank, groups[1].rank, groups[2].rank}}
	case groups[0].count == 2:
		return Score{Category: Pair, Tiebreak: append([]int{groups[0].rank}, kickers(ranks, groups[0].rank)...)}
	default:
		return Score{Category: HighCard, Tiebreak: slices.Clone(ranks[:])}
	}
}

// straightHigh reports whether the descending ranks form a straight and, if so, its
// high card. The wheel A-5-4-3-2 plays as a five-high straight.
func straightHigh(ranks [handSize]int, distinct int) (int, bool) {
	if distinct != handSize {
		return 0, false
	}
	if ranks[0]-ranks[4] == 4 {
		return ranks[0], true
	}
	if ranks == [handSize]int{int(deck.Ace), 5, 4, 3, 2} {
		return 5, true
	}
	return 0, false
}

func kickers(ranks [handSize]int, exclude int) []int {
	out := make([]int, 0, handSize)
	for _, r := range ranks {
		if r != exclude {
			out = append(out, r)
		}
	}
	return out
}
