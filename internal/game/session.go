package game

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/nier2kirito/PokerBots/internal/deck"
	"github.com/nier2kirito/PokerBots/internal/strategy"
)

// MaxMessages is how many log messages a session keeps.
const MaxMessages = 10

// WinnerInfo summarises the last settled hand for display.
type WinnerInfo struct {
	Name     string `json:"name"`
	HandType string `json:"hand_type"`
}

// Session plays successive hands for one user. It is not safe for concurrent
// use; callers serialise access.
type Session struct {
	hand         *HandState
	bus          EventBus
	logger       *log.Logger
	userSeat     Seat
	lastUserSeat Seat
	bankroll     []Chips
	messages     []string
	winner       *WinnerInfo
}

// NewSession creates a session with the user in CO and an empty bankroll.
func NewSession(rng *rand.Rand, lookup strategy.Lookup, opts ...Option) *Session {
	opts = append([]Option{WithEventBus(NewEventBus())}, opts...)
	h := NewHand(rng, lookup, opts...)

	s := &Session{
		hand:     h,
		bus:      h.cfg.bus,
		logger:   h.cfg.logger.WithPrefix("session"),
		bankroll: []Chips{0},
	}
	s.bus.Subscribe(EventSubscriberFunc(s.record))
	return s
}

// Subscribe registers sub for this session's events.
func (s *Session) Subscribe(sub EventSubscriber) {
	s.bus.Subscribe(sub)
}

// Unsubscribe removes sub from this session's events.
func (s *Session) Unsubscribe(sub EventSubscriber) {
	s.bus.Unsubscribe(sub)
}

// Hand exposes the underlying hand state. Callers must not mutate it.
func (s *Session) Hand() *HandState { return s.hand }

// UserSeat returns the seat the user plays in the next or current hand.
func (s *Session) UserSeat() Seat { return s.userSeat }

// HandsPlayed returns the number of hands dealt since the last restart.
func (s *Session) HandsPlayed() int { return s.hand.Number }

// Bankroll returns the cumulative user result after each hand, starting at 0.
func (s *Session) Bankroll() []Chips { return slices.Clone(s.bankroll) }

// Messages returns the most recent messages, oldest first.
func (s *Session) Messages() []string { return slices.Clone(s.messages) }

// Winner returns the summary of the last settled hand, or nil.
func (s *Session) Winner() *WinnerInfo { return s.winner }

func (s *Session) logMessage(format string, args ...any) {
	s.messages = append(s.messages, fmt.Sprintf(format, args...))
	if n := len(s.messages) - MaxMessages; n > 0 {
		s.messages = slices.Delete(s.messages, 0, n)
	}
}

// record turns hand events into user-facing messages.
func (s *Session) record(event GameEvent) {
	switch e := event.(type) {
	case HandStartedEvent:
		s.logMessage("Hand #%d. You are %s.", e.HandNumber, e.UserSeat)
		s.logMessage("Your hand: %s", deck.FormatCards(e.UserHole))
	case SeatActedEvent:
		switch {
		case e.MissingCards:
			s.logMessage("Warning: Cards not found for %s, defaulting their action to FOLD.", e.Seat)
		case e.User:
			s.logMessage("You (%s) decided: %s", e.Seat, e.Decision)
			if e.Decision == AllIn {
				s.logMessage("You go ALL IN. Your bet this hand: %s BB. Pot: %s BB", e.Bet, e.Pot)
			}
		default:
			s.logMessage("%s (%s) decided: %s", e.Seat, e.HandKey, e.Decision)
		}
	}
}

// NewHand deals the next hand with the user in the current seat. It fails with
// ErrHandInProgress while a decision is pending.
func (s *Session) NewHand() error {
	if s.hand.Phase == AwaitingDecision {
		s.logMessage("Cannot deal, hand in progress.")
		return ErrHandInProgress
	}

	s.winner = nil
	s.lastUserSeat = s.userSeat
	if err := s.hand.Deal(s.userSeat); err != nil {
		return err
	}
	s.logger.Debug("New hand", "number", s.hand.Number, "seat", s.userSeat)
	return nil
}

// UserDecide records the user's decision, lets the remaining seats act, settles
// the pot, appends to the bankroll and rotates the user to the next seat.
func (s *Session) UserDecide(d Decision) error {
	if err := s.hand.Act(d); err != nil {
		return err
	}
	res, err := s.hand.Resolve()
	if err != nil {
		return err
	}

	user := s.hand.UserSeat
	s.describe(res)

	net := res.Net[user]
	total := s.bankroll[len(s.bankroll)-1] + net
	s.bankroll = append(s.bankroll, total)
	s.logMessage("Your BB change for hand: %s. Total: %s", net, total)
	s.logger.Info("Hand resolved",
		"number", s.hand.Number,
		"seat", user,
		"decision", d,
		"outcome", res.Outcome,
		"winners", res.WinnerName(),
		"net", net.BB(),
	)

	s.winner = &WinnerInfo{Name: res.WinnerName(), HandType: res.HandType()}
	s.bus.Publish(NewHandResolvedEvent(s.hand.Number, s.hand, net, total))

	s.lastUserSeat = user
	s.userSeat = user.Next()
	return nil
}

func (s *Session) describe(res Result) {
	switch res.Outcome {
	case OutcomeNoWinner:
		s.logMessage("Error: All players folded? Pot distributed or error.")
	case OutcomeOpponentsFolded:
		s.logMessage("%s wins the pot of %s BB (others folded).", res.Winners[0], res.Pot)
	case OutcomeEvaluationError, OutcomeShowdown:
		for _, seat := range s.hand.Live() {
			if sc := res.Scores[seat]; sc != nil {
				s.logMessage("%s has %s (%s)", seat, sc.Category, deck.FormatCards(s.hand.Hole[seat]))
			} else {
				s.logMessage("%s (%s) - could not evaluate hand.", seat, deck.FormatCards(s.hand.Hole[seat]))
			}
		}
		if res.Outcome == OutcomeEvaluationError {
			s.logMessage("Error: Could not determine a winner from hand evaluation.")
			return
		}
		s.logMessage("Winner(s): %s with %s. Each gets %s BB.",
			res.WinnerName(), res.Category, res.Shares[res.Winners[0]])
	}
}

// Restart resets stacks, bankroll, message log and hand count, and returns the
// user to CO.
func (s *Session) Restart() {
	s.hand.Reset()
	s.userSeat = CO
	s.lastUserSeat = CO
	s.bankroll = []Chips{0}
	s.messages = nil
	s.winner = nil
	s.logMessage("Game restarted!")
	s.logger.Info("Session restarted")
	s.bus.Publish(NewRestartedEvent())
}
