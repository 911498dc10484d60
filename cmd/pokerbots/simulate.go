package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nier2kirito/PokerBots/internal/game"
	"github.com/nier2kirito/PokerBots/internal/simulator"
)

type SimulateCmd struct {
	Sessions int    `help:"Number of independent sessions" default:"100"`
	Hands    int    `help:"Hands per session" default:"1000"`
	Policy   string `help:"User seat policy (strategy, fold, push)" default:"strategy" enum:"strategy,fold,push"`
	Seed     int64  `help:"Base random seed (0 for a fresh one)"`
	Workers  int    `help:"Parallel sessions (0 for all at once)" default:"0"`
	Report   string `help:"Write a JSON report to this path" type:"path"`

	out io.Writer `kong:"-"`
}

func (c *SimulateCmd) Run(globals *Globals) error {
	cfg, err := globals.load()
	if err != nil {
		return err
	}
	out := c.out
	if out == nil {
		out = os.Stdout
	}
	logger := newLogger(os.Stderr, cfg)

	policy, err := simulator.ParsePolicy(c.Policy)
	if err != nil {
		return err
	}
	seed := c.Seed
	if seed == 0 {
		seed = cfg.Table.Seed
	}

	// Per-hand game logs would swamp a batch run.
	gameLogger := logger.WithPrefix("game")
	gameLogger.SetLevel(max(logger.GetLevel(), log.WarnLevel))

	sim, err := simulator.New(simulator.Config{
		Sessions: c.Sessions,
		Hands:    c.Hands,
		Policy:   policy,
		Seed:     seed,
		Workers:  c.Workers,
		Lookup:   loadStrategy(cfg, logger),
		Options:  append(cfg.TableOptions(), game.WithLogger(gameLogger)),
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(logger)
	defer cancel()
	return c.run(ctx, sim, logger, out)
}

func (c *SimulateCmd) run(ctx context.Context, sim *simulator.Simulator, logger *log.Logger, out io.Writer) error {
	start := time.Now()
	report, err := sim.Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}
	logger.Info("Simulation complete", "hands", report.Stats.Hands, "duration", time.Since(start).Round(time.Millisecond))

	simulator.PrintSummary(out, report)
	if c.Report != "" {
		if err := report.Save(c.Report); err != nil {
			return fmt.Errorf("save report: %w", err)
		}
		logger.Info("Report written", "path", c.Report)
	}
	return nil
}
