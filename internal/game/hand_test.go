package game

import (
	"errors"
	"testing"

	"github.com/nier2kirito/PokerBots/internal/deck"
	"github.com/nier2kirito/PokerBots/internal/randutil"
)

func TestDealPostsBlindsAndDealsCards(t *testing.T) {
	t.Parallel()
	h := newTestHand(everyone(0))

	if err := h.Deal(BB); err != nil {
		t.Fatalf("Deal failed: %v", err)
	}

	if h.Phase != AwaitingDecision {
		t.Errorf("Expected AwaitingDecision, got %s", h.Phase)
	}
	if h.Stacks[SB] != 760 || h.Bets[SB] != 40 {
		t.Errorf("Small blind not posted correctly: stack %d bet %d", h.Stacks[SB], h.Bets[SB])
	}
	if h.Stacks[BB] != 700 || h.Bets[BB] != 100 {
		t.Errorf("Big blind not posted correctly: stack %d bet %d", h.Stacks[BB], h.Bets[BB])
	}
	if h.Pot != 140 {
		t.Errorf("Initial pot incorrect: %d", h.Pot)
	}
	for _, s := range Seats {
		if len(h.Hole[s]) != 2 {
			t.Errorf("%s has %d hole cards, expected 2", s, len(h.Hole[s]))
		}
	}
	if len(h.Community) != CommunitySize {
		t.Errorf("Expected %d community cards, got %d", CommunitySize, len(h.Community))
	}

	// Everyone ahead of the user has acted, the user has not.
	for _, s := range []Seat{CO, BTN, SB} {
		if h.Decisions[s] != Fold {
			t.Errorf("%s should have folded before the user, got %q", s, h.Decisions[s])
		}
	}
	if h.Decisions[BB] != Undecided {
		t.Errorf("User decision should be unset, got %q", h.Decisions[BB])
	}

	seen := make(map[deck.Card]bool)
	for _, cards := range append(h.Hole[:], h.Community) {
		for _, c := range cards {
			if seen[c] {
				t.Fatalf("Card %s dealt twice", c)
			}
			seen[c] = true
		}
	}
}

func TestDealOrderFollowsSeats(t *testing.T) {
	t.Parallel()
	h := newTestHand(everyone(0), WithDeck(stacked("2c 3c", "4c 5c", "6c 7c", "8c 9c", "2d 3d 4d 5d 7h")))

	if err := h.Deal(CO); err != nil {
		t.Fatal(err)
	}
	want := map[Seat]string{CO: "2c 3c", BTN: "4c 5c", SB: "6c 7c", BB: "8c 9c"}
	for s, cards := range want {
		if got := deck.FormatCards(h.Hole[s]); got != cards {
			t.Errorf("%s hole = %s, want %s", s, got, cards)
		}
	}
	if got := deck.FormatCards(h.Community); got != "2d 3d 4d 5d 7h" {
		t.Errorf("Board = %s", got)
	}
}

func TestIllegalTransitions(t *testing.T) {
	t.Parallel()
	h := newTestHand(everyone(0))

	if err := h.Act(AllIn); !errors.Is(err, ErrNotAwaitingDecision) {
		t.Errorf("Act before deal: got %v", err)
	}
	if _, err := h.Resolve(); !errors.Is(err, ErrNotAwaitingDecision) {
		t.Errorf("Resolve before deal: got %v", err)
	}
	if err := h.Deal(Seat(7)); !errors.Is(err, ErrInvalidSeat) {
		t.Errorf("Deal with bad seat: got %v", err)
	}
	if h.Phase != PreDeal {
		t.Errorf("Failed calls must not change phase, got %s", h.Phase)
	}

	if err := h.Deal(SB); err != nil {
		t.Fatal(err)
	}
	pot := h.Pot
	if err := h.Deal(SB); !errors.Is(err, ErrHandInProgress) {
		t.Errorf("Second deal: got %v", err)
	}
	if h.Pot != pot {
		t.Errorf("Rejected deal changed the pot: %d -> %d", pot, h.Pot)
	}
	if err := h.Act(Undecided); !errors.Is(err, ErrInvalidDecision) {
		t.Errorf("Act(Undecided): got %v", err)
	}

	if err := h.Act(Fold); err != nil {
		t.Fatal(err)
	}
	if err := h.Act(AllIn); !errors.Is(err, ErrNotAwaitingDecision) {
		t.Errorf("Second act: got %v", err)
	}
	if h.Decisions[SB] != Fold {
		t.Errorf("User decision overwritten: %q", h.Decisions[SB])
	}
}

func TestDecisionsAreNeverOverwritten(t *testing.T) {
	t.Parallel()
	h := newTestHand(seatLookup{CO: 1, BTN: 0, SB: 1, BB: 1})

	if err := h.Deal(SB); err != nil {
		t.Fatal(err)
	}
	before := h.Decisions
	if before[CO] != AllIn || before[BTN] != Fold {
		t.Fatalf("Unexpected early decisions %v", before)
	}
	if err := h.Act(Fold); err != nil {
		t.Fatal(err)
	}
	if h.Decisions[CO] != before[CO] || h.Decisions[BTN] != before[BTN] {
		t.Errorf("Earlier decisions changed: %v -> %v", before, h.Decisions)
	}
	if h.Decisions[BB] != AllIn {
		t.Errorf("BB should have pushed, got %q", h.Decisions[BB])
	}

	// Re-applying a decision is ignored.
	h.apply(CO, Fold, "", false)
	if h.Decisions[CO] != AllIn {
		t.Error("apply overwrote an existing decision")
	}
}

func TestAllInMovesWholeStack(t *testing.T) {
	t.Parallel()
	h := newTestHand(everyone(1))

	if err := h.Deal(CO); err != nil {
		t.Fatal(err)
	}
	if err := h.Act(AllIn); err != nil {
		t.Fatal(err)
	}
	for _, s := range Seats {
		if h.Stacks[s] != 0 || h.Bets[s] != DefaultStartingStack {
			t.Errorf("%s: stack %d bet %d after pushing", s, h.Stacks[s], h.Bets[s])
		}
	}
	if h.Pot != 4*DefaultStartingStack {
		t.Errorf("Pot = %d", h.Pot)
	}
}

func TestMissingHoleCardsFold(t *testing.T) {
	t.Parallel()
	// Only three cards: CO gets two, BTN one, nobody else any.
	h := newTestHand(everyone(1), WithDeck(deck.NewStackedDeck(deck.MustParseCards("Ac Ad Ah"))))

	if err := h.Deal(BB); err != nil {
		t.Fatal(err)
	}
	if h.Decisions[CO] != AllIn {
		t.Errorf("CO has cards and should follow the strategy, got %q", h.Decisions[CO])
	}
	if h.Decisions[BTN] != Fold || h.Decisions[SB] != Fold {
		t.Errorf("Seats without cards must fold: BTN %q SB %q", h.Decisions[BTN], h.Decisions[SB])
	}
}

func TestChipConservationAcrossRandomHands(t *testing.T) {
	t.Parallel()
	rng := randutil.New(99)
	h := NewHand(rng, everyone(0.5), WithLogger(quietLogger()))
	total := 4 * DefaultStartingStack

	for i := range 500 {
		user := Seats[i%NumSeats]
		if err := h.Deal(user); err != nil {
			t.Fatal(err)
		}
		if h.TotalChips() != total {
			t.Fatalf("Hand %d: chips not conserved after deal: %d", i, h.TotalChips())
		}
		d := Fold
		if rng.IntN(2) == 0 {
			d = AllIn
		}
		if err := h.Act(d); err != nil {
			t.Fatal(err)
		}
		res, err := h.Resolve()
		if err != nil {
			t.Fatal(err)
		}
		if h.TotalChips() != total {
			t.Fatalf("Hand %d: chips not conserved after resolve: %d", i, h.TotalChips())
		}
		if len(h.Live()) > 0 {
			var paid, net Chips
			for _, s := range Seats {
				paid += res.Shares[s]
				net += res.Net[s]
			}
			if paid != res.Pot || net != 0 || h.Pot != 0 {
				t.Fatalf("Hand %d: paid %d of %d, net %d, pot left %d", i, paid, res.Pot, net, h.Pot)
			}
		}
	}
}

func TestNewHandPanicsOnInvalidConfig(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		fn   func()
	}{
		{"nil rng", func() { NewHand(nil, everyone(0)) }},
		{"zero blind", func() { NewHand(randutil.New(1), nil, WithBlinds(0, 100)) }},
		{"big below small", func() { NewHand(randutil.New(1), nil, WithBlinds(100, 40)) }},
		{"stack below big blind", func() { NewHand(randutil.New(1), nil, WithStartingStack(50)) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}
