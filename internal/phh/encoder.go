package phh

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/nier2kirito/PokerBots/internal/deck"
	"github.com/nier2kirito/PokerBots/internal/game"
)

// Encode writes the hand history to the provided writer in PHH TOML format.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return fmt.Errorf("phh: hand history is nil")
	}

	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// EncodeToBytes encodes and returns the result as bytes.
func EncodeToBytes(hand *HandHistory) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, hand); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeSection writes hand as table [index] of a .phhs file.
func EncodeSection(w io.Writer, index int, hand *HandHistory) error {
	if hand == nil {
		return fmt.Errorf("phh: hand history is nil")
	}
	enc := toml.NewEncoder(w)
	enc.Indent = ""
	return enc.Encode(map[string]*HandHistory{strconv.Itoa(index): hand})
}

// Player returns the PHH player label for a seat. PHH numbers players from
// the small blind, so SB is p1 and BTN is p4.
func Player(seat game.Seat) string {
	return fmt.Sprintf("p%d", playerIndex(seat)+1)
}

func playerIndex(seat game.Seat) int {
	return (int(seat) + 2) % game.NumSeats
}

// FormatAction converts a push/fold decision to a PHH action. The first
// all-in is a bet of the whole stack; later ones call it. Undecided seats
// yield false.
func FormatAction(seat game.Seat, d game.Decision, firstAllIn bool, total game.Chips) (string, bool) {
	switch d {
	case game.Fold:
		return Player(seat) + " f", true
	case game.AllIn:
		if firstAllIn {
			return fmt.Sprintf("%s cbr %d", Player(seat), int64(total)), true
		}
		return Player(seat) + " cc", true
	default:
		return "", false
	}
}

// FormatCards writes cards without separators using T for tens, e.g. "AhTd".
func FormatCards(cards []deck.Card) string {
	var b strings.Builder
	for _, c := range cards {
		if !c.Valid() {
			b.WriteString("??")
			continue
		}
		b.WriteString(c.Rank.KeyToken())
		b.WriteString(c.Suit.Letter())
	}
	return b.String()
}
