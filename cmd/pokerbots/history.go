package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/nier2kirito/PokerBots/internal/sessionid"
	"github.com/nier2kirito/PokerBots/internal/store"
)

type HistoryCmd struct {
	Session string `arg:"" help:"Session id (the pokerbots_session cookie)"`
	Limit   int    `help:"Maximum hands to show" default:"20"`

	out io.Writer `kong:"-"`
}

func (c *HistoryCmd) Run(globals *Globals) error {
	cfg, err := globals.load()
	if err != nil {
		return err
	}
	if cfg.Server.DatabaseURL == "" {
		return errors.New("no database configured (set server.database_url or POKERBOTS_DATABASE_URL)")
	}
	if err := sessionid.Validate(c.Session); err != nil {
		return err
	}
	out := c.out
	if out == nil {
		out = os.Stdout
	}
	logger := newLogger(os.Stderr, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	db, err := store.Open(ctx, cfg.Server.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	hands, err := db.RecentHands(ctx, c.Session, c.Limit)
	if err != nil {
		return err
	}
	printHistory(out, hands)
	return nil
}

func printHistory(w io.Writer, hands []store.HandRecord) {
	if len(hands) == 0 {
		fmt.Fprintln(w, "No hands recorded.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "HAND\tSEAT\tCARDS\tBOARD\tWINNERS\tNET\tBANKROLL")
	for _, h := range hands {
		board := h.Community
		if board == "" {
			board = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			h.HandNumber, h.UserSeat, h.Hole[h.UserSeat], board,
			strings.Join(h.Winners, ","), h.UserNet, h.Bankroll)
	}
	_ = tw.Flush()
}
