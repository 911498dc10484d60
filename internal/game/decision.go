package game

import (
	"fmt"
	"strings"
)

// Decision is a seat's single action in a hand.
type Decision int

const (
	Undecided Decision = iota
	Fold
	AllIn
)

// String returns the wire name: "FOLD", "ALL_IN", or "" when undecided.
func (d Decision) String() string {
	switch d {
	case Fold:
		return "FOLD"
	case AllIn:
		return "ALL_IN"
	default:
		return ""
	}
}

// Decided reports whether d is Fold or AllIn.
func (d Decision) Decided() bool {
	return d == Fold || d == AllIn
}

// ParseDecision accepts the wire names plus a few lenient spellings
// ("fold", "allin", "push").
func ParseDecision(s string) (Decision, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "FOLD", "F":
		return Fold, nil
	case "ALL_IN", "ALLIN", "ALL-IN", "PUSH", "A":
		return AllIn, nil
	default:
		return Undecided, fmt.Errorf("%w: %q", ErrInvalidDecision, s)
	}
}

func (d Decision) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Decision) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Undecided
		return nil
	}
	v, err := ParseDecision(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
