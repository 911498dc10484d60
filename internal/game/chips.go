package game

import (
	"math"
	"strconv"
)

// Chips counts hundredths of a big blind.
type Chips int64

// ChipsPerBB is the number of Chips in one big blind.
const ChipsPerBB Chips = 100

// FromBB converts a big-blind amount to Chips, rounding to the nearest hundredth.
func FromBB(bb float64) Chips {
	return Chips(math.Round(bb * float64(ChipsPerBB)))
}

// BB returns the amount in big blinds.
func (c Chips) BB() float64 {
	return float64(c) / float64(ChipsPerBB)
}

// String formats the amount in big blinds with two decimals (e.g. "9.40").
func (c Chips) String() string {
	return strconv.FormatFloat(c.BB(), 'f', 2, 64)
}
