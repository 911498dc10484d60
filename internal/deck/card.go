package deck

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit int

const (
	Hearts Suit = iota + 1
	Diamonds
	Clubs
	Spades
)

// Suits lists every suit in deal order.
var Suits = [...]Suit{Hearts, Diamonds, Clubs, Spades}

// String returns the suit symbol
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// Letter returns the single-character token used in card strings.
func (s Suit) Letter() string {
	switch s {
	case Hearts:
		return "h"
	case Diamonds:
		return "d"
	case Clubs:
		return "c"
	case Spades:
		return "s"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank. Aces are high (14).
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Token returns the rank as written in a card token ("10" for tens).
func (r Rank) Token() string {
	switch {
	case r >= Two && r <= Ten:
		return fmt.Sprintf("%d", int(r))
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	case r == Ace:
		return "A"
	default:
		return "?"
	}
}

// KeyToken returns the single-character rank used by starting-hand keys ("T" for tens).
func (r Rank) KeyToken() string {
	if r == Ten {
		return "T"
	}
	return r.Token()
}

// String returns the card-token form of the rank
func (r Rank) String() string {
	return r.Token()
}

// Valid reports whether r is one of the thirteen ranks.
func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

// Card represents a playing card
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a new card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// String returns the token form of the card (e.g. "10h", "As")
func (c Card) String() string {
	return c.Rank.Token() + c.Suit.Letter()
}

// Pretty returns the card with its suit symbol (e.g. "A♠")
func (c Card) Pretty() string {
	return c.Rank.Token() + c.Suit.String()
}

// Valid reports whether the card has a real rank and suit. The zero Card is invalid.
func (c Card) Valid() bool {
	return c.Rank.Valid() && c.Suit >= Hearts && c.Suit <= Spades
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

var rankTokens = map[string]Rank{
	"2": Two, "3": Three, "4": Four, "5": Five, "6": Six, "7": Seven, "8": Eight,
	"9": Nine, "10": Ten, "T": Ten, "J": Jack, "Q": Queen, "K": King, "A": Ace,
}

var suitTokens = map[byte]Suit{'h': Hearts, 'd': Diamonds, 'c': Clubs, 's': Spades}

// ParseCard parses a token such as "10h", "Ah" or "tc". Input is case-insensitive.
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || len(s) > 3 {
		return Card{}, fmt.Errorf("invalid card %q: want 2 or 3 characters", s)
	}

	suit, ok := suitTokens[strings.ToLower(s[len(s)-1:])[0]]
	if !ok {
		return Card{}, fmt.Errorf("invalid card %q: unknown suit %q", s, s[len(s)-1:])
	}
	rank, ok := rankTokens[strings.ToUpper(s[:len(s)-1])]
	if !ok {
		return Card{}, fmt.Errorf("invalid card %q: unknown rank %q", s, s[:len(s)-1])
	}

	return Card{Rank: rank, Suit: suit}, nil
}

// ParseCards parses a list of tokens separated by whitespace or commas.
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})

	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is like ParseCards but panics on error. Intended for tests and fixtures.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

// FormatCards joins card tokens with a single space.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
