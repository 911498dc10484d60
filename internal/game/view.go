package game

import (
	"github.com/nier2kirito/PokerBots/internal/deck"
)

// SeatView is one seat as the user may see it.
type SeatView struct {
	Seat     Seat     `json:"seat"`
	Stack    float64  `json:"stack"`
	Bet      float64  `json:"bet"`
	Decision Decision `json:"decision"`
	// Cards is nil while hidden.
	Cards    []string `json:"cards"`
	IsUser   bool     `json:"is_user"`
	IsWinner bool     `json:"is_winner"`
}

// View is the snapshot front ends render. Amounts are in big blinds.
type View struct {
	Phase         Phase       `json:"phase"`
	UserSeat      Seat        `json:"user_seat"`
	Seats         []SeatView  `json:"seats"`
	UserHand      []string    `json:"user_hand"`
	Community     []string    `json:"community"`
	Pot           float64     `json:"pot"`
	HandsPlayed   int         `json:"hands_played"`
	Bankroll      []float64   `json:"bankroll"`
	Messages      []string    `json:"messages"`
	Winner        *WinnerInfo `json:"winner"`
	Winners       []Seat      `json:"winners"`
	StartingStack float64     `json:"starting_stack"`
	SmallBlind    float64     `json:"small_blind"`
	BigBlind      float64     `json:"big_blind"`
}

func cardTokens(cards []deck.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

// State returns the current view. The user's own cards show once dealt; every
// seat's cards and the board show at showdown. During showdown the user seat is
// the one just played, not the next one.
func (s *Session) State() View {
	h := s.hand
	sb, bb := h.Blinds()

	user := s.userSeat
	if h.Phase == Showdown {
		user = s.lastUserSeat
	}

	v := View{
		Phase:         h.Phase,
		UserSeat:      user,
		Seats:         make([]SeatView, NumSeats),
		Pot:           h.Pot.BB(),
		HandsPlayed:   h.Number,
		Messages:      s.Messages(),
		Winner:        s.winner,
		StartingStack: h.StartingStack().BB(),
		SmallBlind:    sb.BB(),
		BigBlind:      bb.BB(),
	}
	for _, c := range s.bankroll {
		v.Bankroll = append(v.Bankroll, c.BB())
	}

	for _, seat := range Seats {
		sv := SeatView{
			Seat:     seat,
			Stack:    h.Stacks[seat].BB(),
			Bet:      h.Bets[seat].BB(),
			Decision: h.Decisions[seat],
			IsUser:   seat == user,
		}
		dealt := len(h.Hole[seat]) == 2
		visible := h.Phase == Showdown || (seat == user && h.Phase != PreDeal)
		if dealt && visible {
			sv.Cards = cardTokens(h.Hole[seat])
		}
		if h.Phase == Showdown && h.Result != nil {
			sv.IsWinner = h.Result.IsWinner(seat)
		}
		v.Seats[seat] = sv
	}

	if h.Phase != PreDeal && len(h.Hole[user]) == 2 {
		v.UserHand = cardTokens(h.Hole[user])
	}
	if h.Phase == Showdown {
		v.Community = cardTokens(h.Community)
		if h.Result != nil {
			v.Winners = h.Result.Winners
		}
	}
	return v
}
