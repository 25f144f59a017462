// Package config loads the configuration of the echo simulator.
//
// Values come from Default, then from an optional YAML file; command line
// flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/celestiaorg/echo"
	"github.com/celestiaorg/echo/address"
	"github.com/celestiaorg/echo/ledger"
)

type Config struct {
	// ProgramID is the base58 id the echo processor is registered under.
	ProgramID string `yaml:"program_id"`

	// StateFile holds the ledger snapshot between runs.
	StateFile string `yaml:"state_file"`

	// LogLevel is a zerolog level name.
	LogLevel string `yaml:"log_level"`

	// Airdrop is credited to every fee payer before it pays for anything.
	Airdrop uint64 `yaml:"airdrop"`

	MaxCallDepth int         `yaml:"max_call_depth"`
	Rent         ledger.Rent `yaml:"rent"`

	Authorized AuthorizedConfig `yaml:"authorized"`
	Vending    VendingConfig    `yaml:"vending"`
}

// AuthorizedConfig configures the authorized-echo commands.
type AuthorizedConfig struct {
	Seed       uint64 `yaml:"seed"`
	BufferSize uint64 `yaml:"buffer_size"`
}

// VendingConfig configures the vending-echo command.
type VendingConfig struct {
	BufferSize uint64 `yaml:"buffer_size"`
}

func Default() *Config {
	return &Config{
		ProgramID:    echo.DefaultProgramID.String(),
		StateFile:    "echo-sim.state",
		LogLevel:     zerolog.InfoLevel.String(),
		Airdrop:      2_000_000_000,
		MaxCallDepth: 4,
		Rent:         ledger.DefaultRent(),
		Authorized: AuthorizedConfig{
			Seed:       53243,
			BufferSize: 100,
		},
		Vending: VendingConfig{
			BufferSize: 123,
		},
	}
}

// LoadFile reads path over the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every field holds a usable value.
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.Program(); err != nil {
		errs = append(errs, fmt.Errorf("program_id: %w", err))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if c.StateFile == "" {
		errs = append(errs, errors.New("state_file is required"))
	}
	if c.MaxCallDepth < 1 {
		errs = append(errs, fmt.Errorf("max_call_depth: got: %d, want >= 1", c.MaxCallDepth))
	}
	if c.Rent.ExemptionThreshold < 0 {
		errs = append(errs, fmt.Errorf("rent.exemption_threshold: got: %v, want >= 0", c.Rent.ExemptionThreshold))
	}
	return errors.Join(errs...)
}

func (c *Config) Program() (address.Address, error) {
	return address.FromBase58(c.ProgramID)
}

func (c *Config) Level() (zerolog.Level, error) {
	return zerolog.ParseLevel(c.LogLevel)
}

// LedgerOptions returns the ledger options the configuration implies.
func (c *Config) LedgerOptions(logger zerolog.Logger) []ledger.Option {
	return []ledger.Option{
		ledger.WithLogger(logger),
		ledger.WithRent(c.Rent),
		ledger.WithMaxCallDepth(c.MaxCallDepth),
	}
}
