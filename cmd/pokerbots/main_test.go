package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nier2kirito/PokerBots/internal/game"
	"github.com/nier2kirito/PokerBots/internal/simulator"
	"github.com/nier2kirito/PokerBots/internal/store"
)

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("pokerbots"), kong.Vars{"version": "test"})
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return &cli, ctx
}

func TestParseCommands(t *testing.T) {
	cli, ctx := parse(t, "simulate", "--sessions", "4", "--hands", "10", "--policy", "fold")
	assert.Equal(t, "simulate", ctx.Command())
	assert.Equal(t, 4, cli.Simulate.Sessions)
	assert.Equal(t, 10, cli.Simulate.Hands)
	assert.Equal(t, "fold", cli.Simulate.Policy)

	cli, ctx = parse(t, "eval", "Ah", "Kh", "Qh", "Jh", "10h")
	assert.Equal(t, "eval <cards>", ctx.Command())
	assert.Equal(t, []string{"Ah", "Kh", "Qh", "Jh", "10h"}, cli.Eval.Cards)

	cli, _ = parse(t, "--log-level", "debug", "-s", "table.json", "serve")
	assert.Equal(t, "debug", cli.LogLevel)
	assert.True(t, strings.HasSuffix(cli.Strategy, "table.json"))
}

func TestGlobalsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pokerbots.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
strategy {
  path = "from-file.json"
}
server {
  log_level = "info"
}
`), 0o644))

	g := &Globals{Config: path, LogLevel: "debug", Strategy: "from-flag.json"}
	cfg, err := g.load()
	require.NoError(t, err)
	assert.Equal(t, "from-flag.json", cfg.Strategy.Path)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel())

	g = &Globals{Config: path, LogLevel: "loud"}
	_, err = g.load()
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestEvaluateArgs(t *testing.T) {
	tests := []struct {
		cards []string
		want  string
	}{
		{[]string{"Ah", "Kh", "Qh", "Jh", "10h", "2c", "3d"}, "Straight Flush [A]"},
		{[]string{"7h", "7d", "2s", "2c", "Kd"}, "Two Pair [7 2 K]"},
		{[]string{"As", "2d", "3c", "4h", "5s"}, "Straight [5]"},
	}
	for _, tt := range tests {
		hand, err := evaluateArgs(tt.cards)
		require.NoError(t, err, tt.cards)
		assert.Equal(t, tt.want, hand.Score.String(), tt.cards)
	}
}

func TestEvaluateArgsErrors(t *testing.T) {
	_, err := evaluateArgs([]string{"Ah"})
	assert.Error(t, err)

	_, err = evaluateArgs([]string{"Ah", "Kh", "Qh"})
	assert.ErrorContains(t, err, "at least 5 cards")

	_, err = evaluateArgs([]string{"Ah", "Ah", "Qh", "Jh", "10h"})
	assert.ErrorContains(t, err, "duplicate card")

	_, err = evaluateArgs([]string{"Ah", "Xx", "Qh", "Jh", "10h"})
	assert.Error(t, err)

	_, err = evaluateArgs(strings.Fields("Ah Kh Qh Jh 10h 9h 8h 7h"))
	assert.Error(t, err)
}

func TestEvalCommandPrintsHand(t *testing.T) {
	var out bytes.Buffer
	cmd := &EvalCmd{Cards: strings.Fields("Ac Kd 7h 7d 3c 4c Qh"), out: &out}
	require.NoError(t, cmd.Run())
	assert.Equal(t, "Pair [7 A K Q] (Ac Kd 7h 7d Qh)\n", out.String())
}

func TestSimulateRunWritesReport(t *testing.T) {
	sim, err := simulator.New(simulator.Config{
		Sessions: 2,
		Hands:    5,
		Policy:   simulator.PolicyFold,
		Seed:     7,
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "report.json")
	var out bytes.Buffer
	cmd := &SimulateCmd{Report: path}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	require.NoError(t, cmd.run(context.Background(), sim, logger, &out))

	assert.Contains(t, out.String(), "=== RESULTS: fold policy ===")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var report map[string]any
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, "fold", report["policy"])
	assert.Equal(t, float64(10), report["hands"])
}

func TestPrintHistory(t *testing.T) {
	var out bytes.Buffer
	printHistory(&out, nil)
	assert.Equal(t, "No hands recorded.\n", out.String())

	out.Reset()
	var hole [game.NumSeats]string
	hole[game.BTN] = "Ac Kd"
	printHistory(&out, []store.HandRecord{{
		HandNumber: 3,
		UserSeat:   game.BTN,
		Hole:       hole,
		Winners:    []string{"BB"},
		Bankroll:   game.Chips(-140),
		PlayedAt:   time.Now(),
	}})
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "HAND"))
	fields := strings.Fields(lines[1])
	assert.Equal(t, []string{"3", "BTN", "Ac", "Kd", "-", "BB"}, fields[:6])
}

func TestPHHTableFollowsConfig(t *testing.T) {
	cfg, err := (&Globals{Config: filepath.Join(t.TempDir(), "missing.hcl")}).load()
	require.NoError(t, err)
	cfg.Table.StartingStack = 10

	table := phhTable(cfg)
	assert.Equal(t, game.Chips(1000), table.StartingStack)
	assert.Equal(t, game.DefaultSmallBlind, table.SmallBlind)
	assert.Equal(t, game.DefaultBigBlind, table.BigBlind)
}
