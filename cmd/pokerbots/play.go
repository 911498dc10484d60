package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nier2kirito/PokerBots/internal/config"
	"github.com/nier2kirito/PokerBots/internal/game"
	"github.com/nier2kirito/PokerBots/internal/phh"
	"github.com/nier2kirito/PokerBots/internal/randutil"
	"github.com/nier2kirito/PokerBots/internal/tui"
)

type PlayCmd struct {
	Seed    int64  `help:"Random seed; overrides the config file (0 for a fresh seed)"`
	LogFile string `help:"Write logs here instead of the terminal" default:"pokerbots-play.log" type:"path"`
	History string `help:"Write every hand to this PHH file" type:"path" placeholder:"FILE.phhs"`
}

func (c *PlayCmd) Run(globals *Globals) error {
	cfg, err := globals.load()
	if err != nil {
		return err
	}

	// The alt screen owns the terminal, so logs go to a file.
	logFile, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	logger := log.NewWithOptions(logFile, log.Options{
		Level:           cfg.LogLevel(),
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "play",
	})

	seed := cfg.Table.Seed
	if c.Seed != 0 {
		seed = c.Seed
	}
	table := loadStrategy(cfg, logger)
	opts := append(cfg.TableOptions(), game.WithLogger(logger))
	session := game.NewSession(randutil.NewOrFresh(seed), table, opts...)

	if c.History != "" {
		f, err := os.OpenFile(c.History, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return fmt.Errorf("open history file: %w", err)
		}
		defer f.Close()
		rec := phh.NewRecorder(f, phhTable(cfg), logger)
		session.Subscribe(rec)
		defer func() {
			logger.Info("Hand history written", "path", c.History, "hands", rec.Count())
		}()
	}

	logger.Info("Starting terminal session", "seed", seed, "strategy_entries", table.Len())
	p := tea.NewProgram(tui.New(session, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}

func phhTable(cfg *config.Config) phh.Table {
	return phh.Table{
		Name:          "pokerbots",
		StartingStack: game.FromBB(cfg.Table.StartingStack),
		SmallBlind:    game.FromBB(cfg.Table.SmallBlind),
		BigBlind:      game.FromBB(cfg.Table.BigBlind),
	}
}
