package deck

// StartingHandKey converts two hole cards to the strategy lookup form: the higher
// rank, a space, the lower rank, then "s" when suited or "o" otherwise
// (e.g. "A Ts", "K Qo", "8 8o"). Tens are written as "T".
func StartingHandKey(a, b Card) string {
	hi, lo := a, b
	if lo.Rank > hi.Rank {
		hi, lo = lo, hi
	}

	suited := "o"
	if a.Suit == b.Suit {
		suited = "s"
	}

	return hi.Rank.KeyToken() + " " + lo.Rank.KeyToken() + suited
}

// HoleKey is StartingHandKey for a slice. It returns "" unless exactly two cards are given.
func HoleKey(hole []Card) string {
	if len(hole) != 2 {
		return ""
	}
	return StartingHandKey(hole[0], hole[1])
}
