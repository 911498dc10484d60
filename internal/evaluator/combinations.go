package evaluator

import "math/bits"

const (
	handSize = 5
	maxCards = 7
)

// subsets[n] lists every 5-element index set over n positions, in ascending
// bitmask order. Built once; read-only afterwards.
var subsets [maxCards + 1][][handSize]int

func init() {
	for n := handSize; n <= maxCards; n++ {
		subsets[n] = enumerate(n)
	}
}

func enumerate(n int) [][handSize]int {
	var out [][handSize]int
	for mask := uint(0); mask < 1<<n; mask++ {
		if bits.OnesCount(mask) != handSize {
			continue
		}
		var idx [handSize]int
		k := 0
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				idx[k] = i
				k++
			}
		}
		out = append(out, idx)
	}
	return out
}

// Subsets returns a copy of the 5-card index sets over n cards. n outside 5..7
// yields nil.
func Subsets(n int) [][handSize]int {
	if n < handSize || n > maxCards {
		return nil
	}
	out := make([][handSize]int, len(subsets[n]))
	copy(out, subsets[n])
	return out
}
