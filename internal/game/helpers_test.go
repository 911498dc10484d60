package game

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nier2kirito/PokerBots/internal/deck"
	"github.com/nier2kirito/PokerBots/internal/randutil"
	"github.com/nier2kirito/PokerBots/internal/strategy"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// seatLookup pushes each seat with a fixed probability, identified by the
// acting-seat prefix of the infoset.
type seatLookup map[Seat]float64

func (l seatLookup) Lookup(infoset, _ string) (strategy.Probabilities, bool) {
	var seat Seat
	switch {
	case strings.HasPrefix(infoset, "P2:"):
		seat = CO
	case strings.HasPrefix(infoset, "P3:"):
		seat = BTN
	case strings.HasPrefix(infoset, "P0:"):
		seat = SB
	case strings.HasPrefix(infoset, "P1:"):
		seat = BB
	default:
		return strategy.Probabilities{}, false
	}
	p, ok := l[seat]
	if !ok {
		return strategy.Probabilities{}, false
	}
	return strategy.Probabilities{Fold: 1 - p, AllIn: p}, true
}

// everyone returns a lookup where every seat pushes with probability p.
func everyone(p float64) seatLookup {
	return seatLookup{CO: p, BTN: p, SB: p, BB: p}
}

// stacked builds a deck dealing CO, BTN, SB, BB hole cards then the board.
func stacked(co, btn, sb, bb, board string) *deck.Deck {
	tokens := strings.Join([]string{co, btn, sb, bb, board}, " ")
	return deck.NewStackedDeck(deck.MustParseCards(tokens))
}

func newTestHand(lookup strategy.Lookup, opts ...Option) *HandState {
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	return NewHand(randutil.New(1), lookup, opts...)
}

func newTestSession(seed int64, lookup strategy.Lookup, opts ...Option) *Session {
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	return NewSession(randutil.New(seed), lookup, opts...)
}

const royalBoard = "Ah Kh Qh Jh 10h"
