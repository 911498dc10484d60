package statistics

import (
	"math"
	"testing"

	"github.com/nier2kirito/PokerBots/internal/game"
)

func TestStatistics_Empty(t *testing.T) {
	stats := &Statistics{}

	if stats.Mean() != 0 {
		t.Errorf("Expected mean of 0 for empty stats, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for empty stats, got %f", stats.Variance())
	}
	if stats.StdError() != 0 {
		t.Errorf("Expected stderr of 0 for empty stats, got %f", stats.StdError())
	}
	if stats.Median() != 0 {
		t.Errorf("Expected median of 0 for empty stats, got %f", stats.Median())
	}
	if err := stats.Validate(); err == nil {
		t.Error("Expected validation error for empty stats")
	}
}

func TestStatistics_Add(t *testing.T) {
	stats := &Statistics{}
	stats.Add(HandResult{NetBB: 1.4, Seat: game.CO, Decision: game.AllIn, PotBB: 9.4})
	stats.Add(HandResult{NetBB: -8, Seat: game.BTN, Decision: game.AllIn, Showdown: true, PotBB: 17.4})
	stats.Add(HandResult{NetBB: 0, Seat: game.BTN, Decision: game.Fold})
	stats.Add(HandResult{NetBB: 8.6, Seat: game.BB, Decision: game.AllIn, Showdown: true, PotBB: 17.4})

	if stats.Hands != 4 {
		t.Fatalf("Expected 4 hands, got %d", stats.Hands)
	}
	if got := stats.Mean(); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Expected mean 0.5, got %f", got)
	}
	if stats.ShowdownWins != 1 || stats.NonShowdownWins != 1 {
		t.Errorf("Wins split wrong: showdown %d, uncontested %d", stats.ShowdownWins, stats.NonShowdownWins)
	}
	if math.Abs(stats.ShowdownBB-0.6) > 1e-9 || math.Abs(stats.NonShowdownBB-1.4) > 1e-9 {
		t.Errorf("BB buckets wrong: %f / %f", stats.ShowdownBB, stats.NonShowdownBB)
	}
	if stats.Seats[game.BTN].Hands != 2 || stats.Seats[game.BTN].PushRate() != 0.5 {
		t.Errorf("BTN stats wrong: %+v", stats.Seats[game.BTN])
	}
	if got := stats.SeatMean(game.BTN); got != -4 {
		t.Errorf("BTN mean = %f", got)
	}
	if stats.MaxPotBB != 17.4 {
		t.Errorf("MaxPotBB = %f", stats.MaxPotBB)
	}
	if got := stats.Median(); math.Abs(got-0.7) > 1e-9 {
		t.Errorf("Median = %f", got)
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	lo, hi := stats.ConfidenceInterval95()
	if lo >= stats.Mean() || hi <= stats.Mean() {
		t.Errorf("CI [%f, %f] does not bracket mean", lo, hi)
	}
}

func TestStatistics_Merge(t *testing.T) {
	a, b, all := &Statistics{}, &Statistics{}, &Statistics{}
	results := []HandResult{
		{NetBB: 1.4, Seat: game.CO, Decision: game.AllIn},
		{NetBB: -1, Seat: game.BB, Decision: game.Fold},
		{NetBB: 8.6, Seat: game.SB, Decision: game.AllIn, Showdown: true},
		{NetBB: -8, Seat: game.BTN, Decision: game.AllIn, Showdown: true},
	}
	for i, r := range results {
		all.Add(r)
		if i%2 == 0 {
			a.Add(r)
		} else {
			b.Add(r)
		}
	}
	a.Merge(b)

	if a.Hands != all.Hands || math.Abs(a.SumBB-all.SumBB) > 1e-9 || math.Abs(a.Variance()-all.Variance()) > 1e-9 {
		t.Errorf("Merged stats differ: %+v vs %+v", a, all)
	}
	if a.Seats != all.Seats {
		t.Errorf("Seat stats differ: %+v vs %+v", a.Seats, all.Seats)
	}
	if err := a.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestStatistics_Percentile(t *testing.T) {
	stats := &Statistics{}
	for i := 1; i <= 5; i++ {
		stats.Add(HandResult{NetBB: float64(i), Seat: game.CO})
	}
	if got := stats.Percentile(0); got != 1 {
		t.Errorf("P0 = %f", got)
	}
	if got := stats.Percentile(1); got != 5 {
		t.Errorf("P100 = %f", got)
	}
	if got := stats.Percentile(0.25); got != 2 {
		t.Errorf("P25 = %f", got)
	}
}
