package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/nier2kirito/PokerBots/internal/config"
	"github.com/nier2kirito/PokerBots/internal/strategy"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Config   string `short:"c" help:"Path to the HCL configuration file" default:"pokerbots.hcl" type:"path"`
	LogLevel string `help:"Log level (debug, info, warn, error); overrides the config file"`
	Strategy string `short:"s" help:"Path to the strategy table; overrides the config file" type:"path"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Serve    ServeCmd         `cmd:"" help:"Serve the trainer over HTTP and websockets"`
	Play     PlayCmd          `cmd:"" help:"Play in the terminal"`
	Simulate SimulateCmd      `cmd:"" help:"Run batch simulations of the user seat"`
	Eval     EvalCmd          `cmd:"" help:"Evaluate a hand from card tokens"`
	History  HistoryCmd       `cmd:"" help:"Show recorded hands for a web session"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokerbots"),
		kong.Description("Four-handed push/fold poker trainer"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// load reads the configuration and applies flag overrides.
func (g *Globals) load() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.LogLevel != "" {
		cfg.Server.LogLevel = g.LogLevel
	}
	if g.Strategy != "" {
		cfg.Strategy.Path = g.Strategy
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(w io.Writer, cfg *config.Config) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           cfg.LogLevel(),
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
}

func loadStrategy(cfg *config.Config, logger *log.Logger) *strategy.Table {
	return strategy.LoadOrEmpty(cfg.Strategy.Path, logger)
}

// signalContext is cancelled on interrupt or SIGTERM.
func signalContext(logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctx.Done()
		logger.Debug("Shutdown signal received")
	}()
	return ctx, cancel
}
