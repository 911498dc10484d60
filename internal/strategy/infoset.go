package strategy

import "fmt"

// Seats is the number of seats the infoset scheme understands. The templates
// below cover exactly four seats and a single fold-or-push round.
const Seats = 4

func actionLetter(allIn bool) string {
	if allIn {
		return "A"
	}
	return "F"
}

// Infoset returns the lookup key for the seat acting after len(prior) earlier
// seats. prior[i] reports whether the i-th earlier seat (in CO, BTN, SB order)
// pushed; anything else, including an unset decision, counts as a fold.
func Infoset(prior []bool) (string, error) {
	switch len(prior) {
	case 0:
		return "P2:[P0:P][P1:P]", nil
	case 1:
		return fmt.Sprintf("P3:[P0:P][P1:P][P2:%s]", actionLetter(prior[0])), nil
	case 2:
		return fmt.Sprintf("P0:[P1:P][P2:%s][P3:%s]",
			actionLetter(prior[0]), actionLetter(prior[1])), nil
	case 3:
		return fmt.Sprintf("P1:[P0:%s][P2:%s][P3:%s]",
			actionLetter(prior[0]), actionLetter(prior[1]), actionLetter(prior[2])), nil
	default:
		return "", fmt.Errorf("no infoset for acting position %d", len(prior))
	}
}

// Infosets enumerates every infoset the scheme can produce, in acting order.
func Infosets() []string {
	var out []string
	for pos := range Seats {
		for mask := 0; mask < 1<<pos; mask++ {
			prior := make([]bool, pos)
			for i := range prior {
				prior[i] = mask&(1<<i) != 0
			}
			key, _ := Infoset(prior)
			out = append(out, key)
		}
	}
	return out
}
