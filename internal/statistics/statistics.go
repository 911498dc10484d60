// Package statistics accumulates per-hand results of the user's seat into
// summary figures: mean, spread, confidence interval and per-seat breakdowns.
package statistics

import (
	"fmt"
	"math"
	"slices"

	"github.com/nier2kirito/PokerBots/internal/game"
)

// HandResult is the user's outcome in one hand.
type HandResult struct {
	NetBB    float64
	Seat     game.Seat
	Decision game.Decision
	Showdown bool
	PotBB    float64
}

// FromEvent converts a resolved hand into a HandResult.
func FromEvent(e game.HandResolvedEvent) HandResult {
	return HandResult{
		NetBB:    e.UserNet.BB(),
		Seat:     e.UserSeat,
		Decision: e.Decisions[e.UserSeat],
		Showdown: e.Result.Showdown,
		PotBB:    e.Result.Pot.BB(),
	}
}

// SeatStats tracks results for one seat.
type SeatStats struct {
	Hands  int     `json:"hands"`
	Pushes int     `json:"pushes"`
	SumBB  float64 `json:"sum_bb"`
	SumBB2 float64 `json:"-"`
}

// Mean returns the average result in big blinds.
func (ps SeatStats) Mean() float64 {
	if ps.Hands == 0 {
		return 0
	}
	return ps.SumBB / float64(ps.Hands)
}

// PushRate returns the fraction of hands the seat went all-in.
func (ps SeatStats) PushRate() float64 {
	if ps.Hands == 0 {
		return 0
	}
	return float64(ps.Pushes) / float64(ps.Hands)
}

// Statistics tracks simulation results
type Statistics struct {
	Hands  int
	SumBB  float64
	SumBB2 float64   // sum of squares for the variance
	Values []float64 // every result, for median and percentiles

	ShowdownWins    int     // hands won at showdown
	NonShowdownWins int     // hands won uncontested
	ShowdownBB      float64 // BB from showdowns, wins and losses
	NonShowdownBB   float64 // BB from hands without a showdown
	AllBB           float64

	Seats [game.NumSeats]SeatStats

	MaxPotBB float64
}

// Mean returns the arithmetic mean of all results in big blinds per hand
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumBB / float64(s.Hands)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return max(0, (s.SumBB2-float64(s.Hands)*mean*mean)/float64(s.Hands-1))
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add incorporates a new hand result into the statistics
func (s *Statistics) Add(r HandResult) {
	net := r.NetBB
	s.Hands++
	s.SumBB += net
	s.SumBB2 += net * net
	s.Values = append(s.Values, net)

	if net > 0 {
		if r.Showdown {
			s.ShowdownWins++
		} else {
			s.NonShowdownWins++
		}
	}
	if r.Showdown {
		s.ShowdownBB += net
	} else {
		s.NonShowdownBB += net
	}
	s.AllBB += net

	if r.Seat.Valid() {
		ps := &s.Seats[r.Seat]
		ps.Hands++
		ps.SumBB += net
		ps.SumBB2 += net * net
		if r.Decision == game.AllIn {
			ps.Pushes++
		}
	}
	s.MaxPotBB = max(s.MaxPotBB, r.PotBB)
}

// Merge folds other into s.
func (s *Statistics) Merge(other *Statistics) {
	s.Hands += other.Hands
	s.SumBB += other.SumBB
	s.SumBB2 += other.SumBB2
	s.Values = append(s.Values, other.Values...)
	s.ShowdownWins += other.ShowdownWins
	s.NonShowdownWins += other.NonShowdownWins
	s.ShowdownBB += other.ShowdownBB
	s.NonShowdownBB += other.NonShowdownBB
	s.AllBB += other.AllBB
	for i := range s.Seats {
		s.Seats[i].Hands += other.Seats[i].Hands
		s.Seats[i].Pushes += other.Seats[i].Pushes
		s.Seats[i].SumBB += other.Seats[i].SumBB
		s.Seats[i].SumBB2 += other.Seats[i].SumBB2
	}
	s.MaxPotBB = max(s.MaxPotBB, other.MaxPotBB)
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0),
// interpolating between neighbouring results.
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := slices.Clone(s.Values)
	slices.Sort(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// SeatMean returns the mean result for hands played from seat.
func (s *Statistics) SeatMean(seat game.Seat) float64 {
	if !seat.Valid() {
		return 0
	}
	return s.Seats[seat].Mean()
}

// IsLedgerBalanced checks the showdown and non-showdown buckets add up.
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.AllBB-s.ShowdownBB-s.NonShowdownBB) <= 1e-6
}

// Validate checks the counters are mutually consistent.
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: AllBB=%.6f, ShowdownBB=%.6f, NonShowdownBB=%.6f",
			s.AllBB, s.ShowdownBB, s.NonShowdownBB)
	}
	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}
	if len(s.Values) != s.Hands {
		return fmt.Errorf("values array length (%d) does not match hands count (%d)",
			len(s.Values), s.Hands)
	}
	if wins := s.ShowdownWins + s.NonShowdownWins; wins > s.Hands {
		return fmt.Errorf("total wins (%d) exceeds total hands (%d)", wins, s.Hands)
	}
	seatHands := 0
	for _, ps := range s.Seats {
		seatHands += ps.Hands
	}
	if seatHands != s.Hands {
		return fmt.Errorf("seat hands total (%d) does not match total hands (%d)", seatHands, s.Hands)
	}
	return nil
}
