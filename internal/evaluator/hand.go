package evaluator

import (
	"fmt"
	"strings"

	"github.com/nier2kirito/PokerBots/internal/deck"
)

// Category is the class of a five-card poker hand, ordered weakest to strongest.
type Category int

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns the string representation of a hand category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// Score ranks a five-card hand. Tiebreak holds rank values (Ace = 14, except that a
// wheel straight is represented by 5) whose length and meaning are fixed per category:
//
//	StraightFlush, Straight  [high]
//	FourOfAKind              [quad, kicker]
//	FullHouse                [trips, pair]
//	Flush, HighCard          [five ranks, descending]
//	ThreeOfAKind             [trips, kicker, kicker]
//	TwoPair                  [high pair, low pair, kicker]
//	Pair                     [pair, kicker, kicker, kicker]
type Score struct {
	Category Category
	Tiebreak []int
}

// Compare returns -1 if s is weaker than o, 0 if they tie and 1 if s is stronger.
func (s Score) Compare(o Score) int {
	if s.Category != o.Category {
		if s.Category < o.Category {
			return -1
		}
		return 1
	}

	for i := 0; i < len(s.Tiebreak) && i < len(o.Tiebreak); i++ {
		if s.Tiebreak[i] < o.Tiebreak[i] {
			return -1
		}
		if s.Tiebreak[i] > o.Tiebreak[i] {
			return 1
		}
	}

	switch {
	case len(s.Tiebreak) < len(o.Tiebreak):
		return -1
	case len(s.Tiebreak) > len(o.Tiebreak):
		return 1
	}
	return 0
}

// Beats returns true if s is strictly stronger than o
func (s Score) Beats(o Score) bool {
	return s.Compare(o) > 0
}

// Equal returns true if both scores tie
func (s Score) Equal(o Score) bool {
	return s.Compare(o) == 0
}

// String returns e.g. "Two Pair [K 7 2]"
func (s Score) String() string {
	parts := make([]string, len(s.Tiebreak))
	for i, v := range s.Tiebreak {
		parts[i] = deck.Rank(v).Token()
	}
	return fmt.Sprintf("%s [%s]", s.Category, strings.Join(parts, " "))
}

// Hand is a Score together with the five cards that produce it.
type Hand struct {
	Score Score
	Cards []deck.Card
}

// String returns a string representation of the hand
func (h Hand) String() string {
	return fmt.Sprintf("%s (%s)", h.Score, deck.FormatCards(h.Cards))
}

// Best returns the indices of every score equal to the maximum. It returns nil for
// an empty slice.
func Best(scores []Score) []int {
	var best []int
	for i, s := range scores {
		if len(best) == 0 {
			best = []int{i}
			continue
		}
		switch s.Compare(scores[best[0]]) {
		case 1:
			best = []int{i}
		case 0:
			best = append(best, i)
		}
	}
	return best
}
