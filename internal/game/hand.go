package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/nier2kirito/PokerBots/internal/deck"
	"github.com/nier2kirito/PokerBots/internal/strategy"
)

// CommunitySize is the number of board cards dealt each hand.
const CommunitySize = 5

// HandState represents the state of a push/fold hand. It is reused across hands:
// each Deal resets stacks, bets and decisions.
type HandState struct {
	Hole      [NumSeats][]deck.Card
	Community []deck.Card
	Stacks    [NumSeats]Chips
	Bets      [NumSeats]Chips
	Decisions [NumSeats]Decision
	Pot       Chips
	Phase     Phase
	UserSeat  Seat
	Result    *Result
	// Number counts hands dealt since the last Reset.
	Number int

	cfg    *tableConfig
	deck   *deck.Deck
	sim    *Simulator
	logger *log.Logger
}

// NewHand creates a table in PreDeal with a required RNG and optional
// configuration. The RNG shuffles the deck (unless WithDeck is given) and drives
// simulated decisions. Invalid configuration panics.
func NewHand(rng *rand.Rand, lookup strategy.Lookup, opts ...Option) *HandState {
	if rng == nil {
		panic("rng is required for hand creation")
	}
	cfg := newTableConfig(opts)

	d := cfg.deck
	if d == nil {
		d = deck.NewDeck(rng)
	}

	h := &HandState{
		cfg:    cfg,
		deck:   d,
		sim:    NewSimulator(lookup, rng),
		logger: cfg.logger.WithPrefix("hand"),
	}
	h.reset()
	return h
}

func (h *HandState) reset() {
	for i := range h.Stacks {
		h.Stacks[i] = h.cfg.startingStack
		h.Bets[i] = 0
		h.Decisions[i] = Undecided
		h.Hole[i] = nil
	}
	h.Community = nil
	h.Pot = 0
	h.Result = nil
}

// Reset returns the table to PreDeal with full stacks.
func (h *HandState) Reset() {
	h.reset()
	h.Phase = PreDeal
	h.UserSeat = CO
	h.Number = 0
}

// StartingStack returns the configured stack each seat starts a hand with.
func (h *HandState) StartingStack() Chips { return h.cfg.startingStack }

// Blinds returns the configured small and big blind.
func (h *HandState) Blinds() (small, big Chips) { return h.cfg.smallBlind, h.cfg.bigBlind }

// Deal starts a hand with the user in seat user: it shuffles, deals two cards to
// each seat in seat order and then the board, posts the blinds and simulates
// every seat acting before the user.
func (h *HandState) Deal(user Seat) error {
	if h.Phase == AwaitingDecision {
		return ErrHandInProgress
	}
	if !user.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidSeat, int(user))
	}

	h.reset()
	h.deck.Reset()
	for _, s := range Seats {
		h.Hole[s] = h.deck.DealN(2)
	}
	h.Community = h.deck.DealN(CommunitySize)
	if len(h.Community) < CommunitySize {
		h.logger.Warn("Deck ran short dealing the board", "community", len(h.Community))
	}

	h.post(SB, h.cfg.smallBlind)
	h.post(BB, h.cfg.bigBlind)

	h.Number++
	h.UserSeat = user
	h.Phase = AwaitingDecision
	h.logger.Debug("Dealt hand", "number", h.Number, "user", user, "pot", h.Pot)
	h.cfg.bus.Publish(NewHandStartedEvent(h.Number, user, h.Hole[user]))

	for s := CO; s < user; s++ {
		h.simulate(s)
	}
	return nil
}

func (h *HandState) post(s Seat, amount Chips) {
	amount = min(amount, h.Stacks[s])
	h.Stacks[s] -= amount
	h.Bets[s] += amount
	h.Pot += amount
}

// simulate records a strategy decision for s. A seat without two hole cards folds.
func (h *HandState) simulate(s Seat) {
	if h.Decisions[s].Decided() {
		return
	}
	key := deck.HoleKey(h.Hole[s])
	if key == "" {
		h.logger.Warn("Cards not found, defaulting to FOLD", "seat", s)
		h.apply(s, Fold, "", true)
		return
	}
	h.apply(s, h.sim.Decide(s, key, h.Decisions[:]), key, false)
}

// apply records d for s and moves the whole remaining stack in on ALL_IN. A
// decision already recorded is never overwritten.
func (h *HandState) apply(s Seat, d Decision, key string, missing bool) {
	if h.Decisions[s].Decided() {
		return
	}
	h.Decisions[s] = d
	if d == AllIn {
		h.post(s, h.Stacks[s])
	}
	h.logger.Debug("Seat acted", "seat", s, "hand", key, "decision", d, "pot", h.Pot)
	h.cfg.bus.Publish(NewSeatActedEvent(s, d, key, s == h.UserSeat, missing, h.Bets[s], h.Pot))
}

// Act records the user's decision and simulates every remaining undecided seat
// in seat order. It may be called once per hand.
func (h *HandState) Act(d Decision) error {
	if h.Phase != AwaitingDecision || h.Decisions[h.UserSeat].Decided() {
		return ErrNotAwaitingDecision
	}
	if !d.Decided() {
		return ErrInvalidDecision
	}

	h.apply(h.UserSeat, d, deck.HoleKey(h.Hole[h.UserSeat]), false)
	for _, s := range Seats {
		if s != h.UserSeat {
			h.simulate(s)
		}
	}
	return nil
}

// Resolve settles the pot and moves the hand to Showdown.
func (h *HandState) Resolve() (Result, error) {
	if h.Phase != AwaitingDecision {
		return Result{}, ErrNotAwaitingDecision
	}
	res := ResolvePot(h, h.logger)
	h.Result = &res
	h.Phase = Showdown
	return res, nil
}

// TotalChips returns the sum of all stacks and the pot.
func (h *HandState) TotalChips() Chips {
	total := h.Pot
	for _, s := range h.Stacks {
		total += s
	}
	return total
}

// Live returns the seats that have not folded. Undecided seats count as folded.
func (h *HandState) Live() []Seat {
	var live []Seat
	for _, s := range Seats {
		if h.Decisions[s] == AllIn {
			live = append(live, s)
		}
	}
	return live
}
