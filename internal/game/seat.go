package game

import (
	"fmt"
	"strings"
)

// NumSeats is the fixed table size.
const NumSeats = 4

// Seat is a table position. Seats act in ascending order.
type Seat int

const (
	CO Seat = iota
	BTN
	SB
	BB
)

// Seats lists every seat in acting order.
var Seats = [NumSeats]Seat{CO, BTN, SB, BB}

func (s Seat) String() string {
	switch s {
	case CO:
		return "CO"
	case BTN:
		return "BTN"
	case SB:
		return "SB"
	case BB:
		return "BB"
	default:
		return fmt.Sprintf("Seat(%d)", int(s))
	}
}

// Valid reports whether s is one of the four seats.
func (s Seat) Valid() bool {
	return s >= CO && s <= BB
}

// Next returns the seat after s, wrapping from BB back to CO.
func (s Seat) Next() Seat {
	return (s + 1) % NumSeats
}

// ParseSeat parses a seat name, case-insensitively.
func ParseSeat(name string) (Seat, error) {
	for _, s := range Seats {
		if strings.EqualFold(name, s.String()) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown seat %q", name)
}

func (s Seat) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid seat %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Seat) UnmarshalText(b []byte) error {
	v, err := ParseSeat(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Phase is the stage of the current hand.
type Phase int

const (
	PreDeal Phase = iota
	AwaitingDecision
	Showdown
)

func (p Phase) String() string {
	switch p {
	case PreDeal:
		return "pre_deal"
	case AwaitingDecision:
		return "awaiting_decision"
	case Showdown:
		return "showdown"
	default:
		return "unknown"
	}
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
