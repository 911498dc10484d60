package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nier2kirito/PokerBots/internal/randutil"
)

func TestParseCard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    Card
		wantErr bool
	}{
		{name: "ten with digits", input: "10h", want: Card{Rank: Ten, Suit: Hearts}},
		{name: "ten alias", input: "Td", want: Card{Rank: Ten, Suit: Diamonds}},
		{name: "ace", input: "Ah", want: Card{Rank: Ace, Suit: Hearts}},
		{name: "lowest", input: "2c", want: Card{Rank: Two, Suit: Clubs}},
		{name: "case insensitive", input: "kS", want: Card{Rank: King, Suit: Spades}},
		{name: "upper suit", input: "10D", want: Card{Rank: Ten, Suit: Diamonds}},
		{name: "surrounding space", input: " Qc ", want: Card{Rank: Queen, Suit: Clubs}},
		{name: "invalid rank", input: "Xs", wantErr: true},
		{name: "invalid suit", input: "Ax", wantErr: true},
		{name: "eleven", input: "11h", wantErr: true},
		{name: "one char", input: "A", wantErr: true},
		{name: "too long", input: "10hh", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseCard(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCardString(t *testing.T) {
	assert.Equal(t, "10h", NewCard(Ten, Hearts).String())
	assert.Equal(t, "As", NewCard(Ace, Spades).String())
	assert.Equal(t, "J♦", NewCard(Jack, Diamonds).Pretty())
	assert.False(t, Card{}.Valid())
	assert.True(t, NewCard(Two, Clubs).Valid())
}

func TestParseCards(t *testing.T) {
	cards, err := ParseCards("Qh, Jh Th\t2c 3d")
	require.NoError(t, err)
	assert.Equal(t, "Qh Jh 10h 2c 3d", FormatCards(cards))

	_, err = ParseCards("Qh Zz")
	assert.Error(t, err)

	empty, err := ParseCards("")
	require.NoError(t, err)
	assert.Empty(t, empty)

	assert.Panics(t, func() { MustParseCards("nope") })
}

func TestStartingHandKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		hole string
		want string
	}{
		{"Ah 10h", "A Ts"},
		{"10h Ah", "A Ts"},
		{"Kd Qc", "K Qo"},
		{"2s 7d", "7 2o"},
		{"8h 8d", "8 8o"},
		{"Js Ts", "J Ts"},
	}
	for _, tt := range tests {
		cards := MustParseCards(tt.hole)
		assert.Equal(t, tt.want, StartingHandKey(cards[0], cards[1]), tt.hole)
		assert.Equal(t, tt.want, HoleKey(cards), tt.hole)
	}
	assert.Equal(t, "", HoleKey(nil))
}

func TestDeckDealsAllCardsOnce(t *testing.T) {
	d := NewDeck(randutil.New(7))
	d.Shuffle()
	require.Equal(t, 52, d.CardsRemaining())

	seen := make(map[Card]bool)
	for {
		c, ok := d.Deal()
		if !ok {
			break
		}
		require.True(t, c.Valid())
		require.False(t, seen[c], "duplicate card %s", c)
		seen[c] = true
	}
	assert.Len(t, seen, 52)

	d.Reset()
	assert.Equal(t, 52, d.CardsRemaining())
}

func TestDeckShuffleIsDeterministic(t *testing.T) {
	a := NewDeck(randutil.New(42))
	b := NewDeck(randutil.New(42))
	a.Shuffle()
	b.Shuffle()
	assert.Equal(t, a.DealN(9), b.DealN(9))
}

func TestStackedDeck(t *testing.T) {
	cards := MustParseCards("Ah Kh Qh")
	d := NewStackedDeck(cards)
	d.Shuffle()
	assert.Equal(t, cards[:2], d.DealN(2))
	assert.Equal(t, cards[2:], d.DealN(5))
	_, ok := d.Deal()
	assert.False(t, ok)
}

func TestNewDeckRequiresRNG(t *testing.T) {
	assert.Panics(t, func() { NewDeck(nil) })
}
