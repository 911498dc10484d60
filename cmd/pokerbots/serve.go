package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/nier2kirito/PokerBots/internal/config"
	"github.com/nier2kirito/PokerBots/internal/game"
	"github.com/nier2kirito/PokerBots/internal/randutil"
	"github.com/nier2kirito/PokerBots/internal/store"
	"github.com/nier2kirito/PokerBots/internal/strategy"
	"github.com/nier2kirito/PokerBots/internal/web"
)

type ServeCmd struct {
	Addr string `help:"Listen address; overrides the config file" placeholder:"HOST:PORT"`
}

func (c *ServeCmd) Run(globals *Globals) error {
	cfg, err := globals.load()
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr, cfg)
	ctx, cancel := signalContext(logger)
	defer cancel()

	table := loadStrategy(cfg, logger)
	opts := []web.RegistryOption{web.WithLogger(logger)}

	if cfg.Server.DatabaseURL != "" {
		db, err := store.Open(ctx, cfg.Server.DatabaseURL, logger)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := store.Migrate(ctx, db); err != nil {
			return err
		}
		opts = append(opts, web.WithRecorder(db))
		logger.Info("Recording hands to database")
	}

	registry := web.NewRegistry(sessionFactory(cfg, table, logger), cfg.SessionTTL(), opts...)
	addr := cfg.ListenAddress()
	if c.Addr != "" {
		addr = c.Addr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           web.NewServer(registry, logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting server", "addr", addr, "strategy_entries", table.Len())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		err := registry.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// sessionFactory builds sessions from the table settings. A fixed seed gives
// each new session its own derived stream.
func sessionFactory(cfg *config.Config, table strategy.Lookup, logger *log.Logger) web.SessionFactory {
	var n atomic.Int64
	opts := append(cfg.TableOptions(), game.WithLogger(logger))
	seed := cfg.Table.Seed
	return func() *game.Session {
		i := int(n.Add(1))
		rng := randutil.Fresh()
		if seed != 0 {
			rng = randutil.New(randutil.Derive(seed, i))
		}
		return game.NewSession(rng, table, opts...)
	}
}
