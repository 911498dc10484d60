// Package config loads pokerbots settings from an HCL file, a .env file and the
// environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/joho/godotenv"

	"github.com/nier2kirito/PokerBots/internal/game"
)

// DefaultPath is the configuration file looked for when none is given.
const DefaultPath = "pokerbots.hcl"

// Environment variables that override file settings.
const (
	EnvAddress     = "POKERBOTS_ADDRESS"
	EnvPort        = "POKERBOTS_PORT"
	EnvLogLevel    = "POKERBOTS_LOG_LEVEL"
	EnvStrategy    = "POKERBOTS_STRATEGY"
	EnvDatabaseURL = "POKERBOTS_DATABASE_URL"
	EnvSeed        = "POKERBOTS_SEED"
)

// Config represents the complete configuration
type Config struct {
	Table    TableSettings    `hcl:"table,block"`
	Strategy StrategySettings `hcl:"strategy,block"`
	Server   ServerSettings   `hcl:"server,block"`
}

// TableSettings holds amounts in big blinds.
type TableSettings struct {
	StartingStack float64 `hcl:"starting_stack,optional"`
	SmallBlind    float64 `hcl:"small_blind,optional"`
	BigBlind      float64 `hcl:"big_blind,optional"`
	// Seed fixes the RNG; 0 means a fresh seed per session.
	Seed int64 `hcl:"seed,optional"`
}

// StrategySettings locates the strategy table.
type StrategySettings struct {
	Path string `hcl:"path,optional"`
}

// ServerSettings contains web server configuration
type ServerSettings struct {
	Address     string `hcl:"address,optional"`
	Port        int    `hcl:"port,optional"`
	LogLevel    string `hcl:"log_level,optional"`
	SessionTTL  string `hcl:"session_ttl,optional"`
	DatabaseURL string `hcl:"database_url,optional"`
}

// fileConfig mirrors Config with optional blocks so a file may omit any of them.
type fileConfig struct {
	Table    *TableSettings    `hcl:"table,block"`
	Strategy *StrategySettings `hcl:"strategy,block"`
	Server   *ServerSettings   `hcl:"server,block"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Table: TableSettings{
			StartingStack: game.DefaultStartingStack.BB(),
			SmallBlind:    game.DefaultSmallBlind.BB(),
			BigBlind:      game.DefaultBigBlind.BB(),
		},
		Strategy: StrategySettings{Path: "strategy.json"},
		Server: ServerSettings{
			Address:    "0.0.0.0",
			Port:       8080,
			LogLevel:   "info",
			SessionTTL: "30m",
		},
	}
}

// LoadFile reads an HCL file over the defaults. A missing file yields the defaults.
func LoadFile(filename string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(filename); errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if fc.Table != nil {
		overlayFloat(&cfg.Table.StartingStack, fc.Table.StartingStack)
		overlayFloat(&cfg.Table.SmallBlind, fc.Table.SmallBlind)
		overlayFloat(&cfg.Table.BigBlind, fc.Table.BigBlind)
		cfg.Table.Seed = fc.Table.Seed
	}
	if fc.Strategy != nil && fc.Strategy.Path != "" {
		cfg.Strategy.Path = fc.Strategy.Path
	}
	if s := fc.Server; s != nil {
		overlayString(&cfg.Server.Address, s.Address)
		overlayString(&cfg.Server.LogLevel, s.LogLevel)
		overlayString(&cfg.Server.SessionTTL, s.SessionTTL)
		overlayString(&cfg.Server.DatabaseURL, s.DatabaseURL)
		if s.Port != 0 {
			cfg.Server.Port = s.Port
		}
	}
	return cfg, nil
}

func overlayFloat(dst *float64, v float64) {
	if v != 0 {
		*dst = v
	}
}

func overlayString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// Load reads filename, then .env (if present), then the process environment.
func Load(filename string) (*Config, error) {
	cfg, err := LoadFile(filename)
	if err != nil {
		return nil, err
	}
	if err := LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv exports the variables in path without overriding ones already set.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides settings from environment variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAddress); ok && v != "" {
		c.Server.Address = v
	}
	if v, ok := lookup(EnvPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPort, err)
		}
		c.Server.Port = port
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Server.LogLevel = v
	}
	if v, ok := lookup(EnvStrategy); ok && v != "" {
		c.Strategy.Path = v
	}
	if v, ok := lookup(EnvDatabaseURL); ok {
		c.Server.DatabaseURL = v
	}
	if v, ok := lookup(EnvSeed); ok && v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Table.Seed = seed
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	t := c.Table
	if t.SmallBlind <= 0 {
		return fmt.Errorf("small blind must be positive")
	}
	if t.BigBlind <= t.SmallBlind {
		return fmt.Errorf("big blind must be greater than small blind")
	}
	if t.StartingStack < t.BigBlind {
		return fmt.Errorf("starting stack must be at least the big blind")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if ttl, err := time.ParseDuration(c.Server.SessionTTL); err != nil {
		return fmt.Errorf("invalid session_ttl %q: %w", c.Server.SessionTTL, err)
	} else if ttl <= 0 {
		return fmt.Errorf("session_ttl must be positive")
	}
	if _, err := log.ParseLevel(c.Server.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q", c.Server.LogLevel)
	}
	return nil
}

// ListenAddress returns the full server address
func (c *Config) ListenAddress() string {
	return net.JoinHostPort(c.Server.Address, strconv.Itoa(c.Server.Port))
}

// SessionTTL returns the parsed idle timeout. Call Validate first.
func (c *Config) SessionTTL() time.Duration {
	d, _ := time.ParseDuration(c.Server.SessionTTL)
	return d
}

// LogLevel returns the parsed level, defaulting to info.
func (c *Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(strings.ToLower(c.Server.LogLevel))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// TableOptions converts the table settings into game options.
func (c *Config) TableOptions() []game.Option {
	return []game.Option{
		game.WithStartingStack(game.FromBB(c.Table.StartingStack)),
		game.WithBlinds(game.FromBB(c.Table.SmallBlind), game.FromBB(c.Table.BigBlind)),
	}
}
