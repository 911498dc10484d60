// Package simulator plays many push/fold sessions in parallel and summarises
// how the user's seat fares under a fixed policy.
package simulator

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/nier2kirito/PokerBots/internal/deck"
	"github.com/nier2kirito/PokerBots/internal/fileutil"
	"github.com/nier2kirito/PokerBots/internal/game"
	"github.com/nier2kirito/PokerBots/internal/randutil"
	"github.com/nier2kirito/PokerBots/internal/statistics"
	"github.com/nier2kirito/PokerBots/internal/strategy"
)

// Policy decides how the user's seat plays.
type Policy string

const (
	// PolicyStrategy samples from the same table the other seats use.
	PolicyStrategy Policy = "strategy"
	PolicyFold     Policy = "fold"
	PolicyPush     Policy = "push"
)

// Policies lists the accepted policy names.
var Policies = []Policy{PolicyStrategy, PolicyFold, PolicyPush}

// ParsePolicy validates a policy name.
func ParsePolicy(s string) (Policy, error) {
	p := Policy(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PolicyStrategy, PolicyFold, PolicyPush:
		return p, nil
	}
	return "", fmt.Errorf("unknown policy %q (want strategy, fold or push)", s)
}

// Config holds configuration for running simulations
type Config struct {
	Sessions int
	Hands    int // per session
	Policy   Policy
	// Seed fixes every session's RNG; 0 draws a fresh base seed.
	Seed    int64
	Workers int // 0 runs every session at once
	Lookup  strategy.Lookup
	Options []game.Option
	Logger  *log.Logger
}

// Report is the outcome of a run.
type Report struct {
	Policy          Policy                 `json:"policy"`
	Sessions        int                    `json:"sessions"`
	HandsPerSession int                    `json:"hands_per_session"`
	Seed            int64                  `json:"seed"`
	Stats           *statistics.Statistics `json:"-"`
	// Bankroll is the sum over sessions of the cumulative result after each hand.
	Bankroll []game.Chips `json:"-"`
}

// Simulator runs push/fold sessions
type Simulator struct {
	config Config
	logger *log.Logger
}

// New creates a new simulator with the given configuration
func New(config Config) (*Simulator, error) {
	if config.Sessions < 1 {
		return nil, fmt.Errorf("sessions must be positive, got %d", config.Sessions)
	}
	if config.Hands < 1 {
		return nil, fmt.Errorf("hands must be positive, got %d", config.Hands)
	}
	if config.Policy == "" {
		config.Policy = PolicyStrategy
	}
	if _, err := ParsePolicy(string(config.Policy)); err != nil {
		return nil, err
	}
	if config.Lookup == nil {
		config.Lookup = strategy.Empty()
	}
	if config.Seed == 0 {
		config.Seed = randutil.Fresh().Int64()
	}
	logger := config.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Simulator{config: config, logger: logger.WithPrefix("sim")}, nil
}

// Run plays every session and merges their results. Sessions are seeded from
// Config.Seed by index, so the report does not depend on scheduling.
func (s *Simulator) Run(ctx context.Context) (*Report, error) {
	cfg := s.config
	results := make([]sessionResult, cfg.Sessions)

	g, ctx := errgroup.WithContext(ctx)
	if cfg.Workers > 0 {
		g.SetLimit(cfg.Workers)
	}
	for i := range cfg.Sessions {
		g.Go(func() error {
			r, err := s.playSession(ctx, i)
			if err != nil {
				return fmt.Errorf("session %d: %w", i, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{
		Policy:          cfg.Policy,
		Sessions:        cfg.Sessions,
		HandsPerSession: cfg.Hands,
		Seed:            cfg.Seed,
		Stats:           &statistics.Statistics{},
		Bankroll:        make([]game.Chips, cfg.Hands+1),
	}
	for _, r := range results {
		report.Stats.Merge(r.stats)
		for i, c := range r.bankroll {
			report.Bankroll[i] += c
		}
	}
	if err := report.Stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	s.logger.Info("Simulation complete",
		"sessions", cfg.Sessions,
		"hands", report.Stats.Hands,
		"policy", cfg.Policy,
		"mean_bb", report.Stats.Mean(),
	)
	return report, nil
}

type sessionResult struct {
	stats    *statistics.Statistics
	bankroll []game.Chips
}

func (s *Simulator) playSession(ctx context.Context, index int) (sessionResult, error) {
	cfg := s.config
	rng := randutil.New(randutil.Derive(cfg.Seed, 2*index))
	userRng := randutil.New(randutil.Derive(cfg.Seed, 2*index+1))

	opts := append([]game.Option{game.WithLogger(s.logger)}, cfg.Options...)
	session := game.NewSession(rng, cfg.Lookup, opts...)
	user := game.NewSimulator(cfg.Lookup, userRng)

	stats := &statistics.Statistics{}
	session.Subscribe(game.EventSubscriberFunc(func(event game.GameEvent) {
		if e, ok := event.(game.HandResolvedEvent); ok {
			stats.Add(statistics.FromEvent(e))
		}
	}))

	for range cfg.Hands {
		if err := ctx.Err(); err != nil {
			return sessionResult{}, err
		}
		if err := session.NewHand(); err != nil {
			return sessionResult{}, err
		}
		if err := session.UserDecide(s.choose(user, session.Hand())); err != nil {
			return sessionResult{}, err
		}
	}
	s.logger.Debug("Session finished", "session", index, "mean_bb", stats.Mean())
	return sessionResult{stats: stats, bankroll: session.Bankroll()}, nil
}

func (s *Simulator) choose(user *game.Simulator, h *game.HandState) game.Decision {
	switch s.config.Policy {
	case PolicyFold:
		return game.Fold
	case PolicyPush:
		return game.AllIn
	}
	seat := h.UserSeat
	return user.Decide(seat, deck.HoleKey(h.Hole[seat]), h.Decisions[:])
}

type reportJSON struct {
	Hands        int                   `json:"hands"`
	MeanBB       float64               `json:"mean_bb"`
	MedianBB     float64               `json:"median_bb"`
	StdDevBB     float64               `json:"std_dev_bb"`
	CI95         [2]float64            `json:"ci95_bb"`
	ShowdownBB   float64               `json:"showdown_bb"`
	NoShowdownBB float64               `json:"no_showdown_bb"`
	Seats        map[string]seatReport `json:"seats"`
	BankrollBB   []float64             `json:"bankroll_bb"`
}

type seatReport struct {
	statistics.SeatStats
	MeanBB   float64 `json:"mean_bb"`
	PushRate float64 `json:"push_rate"`
}

// MarshalJSON flattens the summary figures alongside the run parameters.
func (r *Report) MarshalJSON() ([]byte, error) {
	type plain Report
	out := struct {
		*plain
		reportJSON
	}{plain: (*plain)(r)}
	st := r.Stats
	if st == nil {
		st = &statistics.Statistics{}
	}
	lo, hi := st.ConfidenceInterval95()
	out.Hands = st.Hands
	out.MeanBB = st.Mean()
	out.MedianBB = st.Median()
	out.StdDevBB = st.StdDev()
	out.CI95 = [2]float64{lo, hi}
	out.ShowdownBB = st.ShowdownBB
	out.NoShowdownBB = st.NonShowdownBB
	out.Seats = make(map[string]seatReport, game.NumSeats)
	for _, seat := range game.Seats {
		ps := st.Seats[seat]
		out.Seats[seat.String()] = seatReport{SeatStats: ps, MeanBB: ps.Mean(), PushRate: ps.PushRate()}
	}
	out.BankrollBB = make([]float64, len(r.Bankroll))
	for i, c := range r.Bankroll {
		out.BankrollBB[i] = c.BB()
	}
	return json.Marshal(out)
}

// Save writes the report as JSON, replacing path atomically.
func (r *Report) Save(path string) error {
	return fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	})
}

// PrintSummary writes a human-readable summary of the report
func PrintSummary(w io.Writer, r *Report) {
	stats := r.Stats
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== RESULTS: %s policy ===\n", r.Policy)
	fmt.Fprintf(w, "Sessions: %d x %d hands (seed %d)\n", r.Sessions, r.HandsPerSession, r.Seed)
	fmt.Fprintf(w, "Hands played: %d\n", stats.Hands)

	fmt.Fprintf(w, "\n=== STATISTICAL RESULTS ===\n")
	fmt.Fprintf(w, "Mean: %.4f bb/hand\n", stats.Mean())
	fmt.Fprintf(w, "Median: %.4f bb/hand\n", stats.Median())
	fmt.Fprintf(w, "Std Dev: %.4f bb\n", stats.StdDev())
	fmt.Fprintf(w, "Std Error: %.4f bb\n", stats.StdError())
	fmt.Fprintf(w, "95%% CI: [%.4f, %.4f] bb/hand\n", low, high)
	fmt.Fprintf(w, "Percentiles: P5=%.3f, P25=%.3f, P75=%.3f, P95=%.3f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))

	fmt.Fprintf(w, "\n=== PROFIT SOURCE ANALYSIS ===\n")
	if wins := stats.ShowdownWins + stats.NonShowdownWins; wins > 0 {
		fmt.Fprintf(w, "Winning hands: %d showdown (%.1f%%), %d uncontested (%.1f%%)\n",
			stats.ShowdownWins, float64(stats.ShowdownWins)/float64(wins)*100,
			stats.NonShowdownWins, float64(stats.NonShowdownWins)/float64(wins)*100)
	}
	if stats.Hands > 0 {
		fmt.Fprintf(w, "Showdown: %.3f bb/hand avg (all hands)\n", stats.ShowdownBB/float64(stats.Hands))
		fmt.Fprintf(w, "No showdown: %.3f bb/hand avg (all hands)\n", stats.NonShowdownBB/float64(stats.Hands))
	}
	fmt.Fprintf(w, "Max pot observed: %.1f bb\n", stats.MaxPotBB)

	fmt.Fprintf(w, "\n=== SEAT ANALYSIS ===\n")
	for _, seat := range game.Seats {
		ps := stats.Seats[seat]
		if ps.Hands > 0 {
			fmt.Fprintf(w, "%-3s: %d hands, %.3f bb/hand, pushed %.1f%%\n",
				seat, ps.Hands, ps.Mean(), ps.PushRate()*100)
		}
	}
	if n := len(r.Bankroll); n > 0 {
		fmt.Fprintf(w, "\nCombined bankroll: %s bb\n", r.Bankroll[n-1])
	}
}
