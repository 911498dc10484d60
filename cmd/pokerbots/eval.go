package main

import (
	"fmt"
	"io"
	"os"

	"github.com/nier2kirito/PokerBots/internal/deck"
	"github.com/nier2kirito/PokerBots/internal/evaluator"
)

type EvalCmd struct {
	Cards []string `arg:"" help:"Two hole cards followed by up to five community cards, e.g. Ah Kh Qh Jh 10h"`

	out io.Writer `kong:"-"`
}

func (c *EvalCmd) Run() error {
	out := c.out
	if out == nil {
		out = os.Stdout
	}
	hand, err := evaluateArgs(c.Cards)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, hand)
	return nil
}

// evaluateArgs treats the first two tokens as hole cards and the rest as the board.
func evaluateArgs(tokens []string) (evaluator.Hand, error) {
	if len(tokens) < 2 || len(tokens) > 2+5 {
		return evaluator.Hand{}, fmt.Errorf("want 2 hole cards and up to 5 community cards, got %d cards", len(tokens))
	}
	cards := make([]deck.Card, len(tokens))
	seen := make(map[deck.Card]bool, len(tokens))
	for i, tok := range tokens {
		card, err := deck.ParseCard(tok)
		if err != nil {
			return evaluator.Hand{}, err
		}
		if seen[card] {
			return evaluator.Hand{}, fmt.Errorf("duplicate card %s", card)
		}
		seen[card] = true
		cards[i] = card
	}
	hand, ok := evaluator.EvaluateHand(cards[:2], cards[2:])
	if !ok {
		return evaluator.Hand{}, fmt.Errorf("cannot evaluate %d cards: %w", len(cards), evaluator.ErrNotEnoughCards)
	}
	return hand, nil
}
