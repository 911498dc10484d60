package game

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/nier2kirito/PokerBots/internal/deck"
)

// Default table amounts.
const (
	DefaultStartingStack Chips = 800
	DefaultSmallBlind    Chips = 40
	DefaultBigBlind      Chips = 100
)

// Option configures a HandState or Session during creation.
type Option func(*tableConfig)

type tableConfig struct {
	startingStack Chips
	smallBlind    Chips
	bigBlind      Chips
	deck          *deck.Deck // overrides the RNG-built deck when set
	logger        *log.Logger
	bus           EventBus
}

func newTableConfig(opts []Option) *tableConfig {
	cfg := &tableConfig{
		startingStack: DefaultStartingStack,
		smallBlind:    DefaultSmallBlind,
		bigBlind:      DefaultBigBlind,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.smallBlind <= 0 || cfg.bigBlind <= 0 {
		panic("blinds must be positive")
	}
	if cfg.bigBlind < cfg.smallBlind {
		panic("big blind must not be smaller than the small blind")
	}
	if cfg.startingStack < cfg.bigBlind {
		panic("starting stack must cover the big blind")
	}
	if cfg.logger == nil {
		cfg.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if cfg.bus == nil {
		cfg.bus = NewEventBus()
	}
	return cfg
}

// WithStartingStack sets the stack every seat starts each hand with.
// Default is 8 BB.
func WithStartingStack(stack Chips) Option {
	return func(c *tableConfig) {
		c.startingStack = stack
	}
}

// WithBlinds sets the small and big blind. Default is 0.4 / 1 BB.
func WithBlinds(small, big Chips) Option {
	return func(c *tableConfig) {
		c.smallBlind = small
		c.bigBlind = big
	}
}

// WithDeck sets a specific deck, typically a stacked one for tests.
// The RNG is still used for decisions.
func WithDeck(d *deck.Deck) Option {
	return func(c *tableConfig) {
		c.deck = d
	}
}

// WithLogger sets the structured logger. Default discards output.
func WithLogger(logger *log.Logger) Option {
	return func(c *tableConfig) {
		c.logger = logger
	}
}

// WithEventBus sets the bus events are published on.
func WithEventBus(bus EventBus) Option {
	return func(c *tableConfig) {
		c.bus = bus
	}
}
