package ledger

import (
	"github.com/rs/zerolog"

	"github.com/celestiaorg/echo/storage"
)

// AccountStorageOverhead is the number of bytes charged for an account
// in addition to its data.
const AccountStorageOverhead = 128

// Rent determines the balance an account needs to be exempt from rent.
type Rent struct {
	LamportsPerByteYear uint64  `yaml:"lamports_per_byte_year"`
	ExemptionThreshold  float64 `yaml:"exemption_threshold"`
}

// DefaultRent returns the rent parameters of the public networks.
func DefaultRent() Rent {
	return Rent{
		LamportsPerByteYear: 3480,
		ExemptionThreshold:  2.0,
	}
}

// MinimumBalance returns the lamports required to keep an account of size
// data bytes rent exempt.
func (r Rent) MinimumBalance(size uint64) uint64 {
	return uint64(float64((AccountStorageOverhead+size)*r.LamportsPerByteYear) * r.ExemptionThreshold)
}

type Options struct {
	Logger       zerolog.Logger
	Rent         Rent
	MaxCallDepth int
	Store        storage.AccountStore
}

type Option func(*Options)

// WithLogger sets the logger handed to programs. Defaults to zerolog.Nop().
func WithLogger(logger zerolog.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// WithRent sets the rent parameters. Defaults to DefaultRent().
func WithRent(rent Rent) Option {
	return func(opts *Options) {
		opts.Rent = rent
	}
}

// WithMaxCallDepth sets how deep programs may invoke each other, the top
// level instruction counting as depth 1. Defaults to 4.
func WithMaxCallDepth(depth int) Option {
	if depth < 1 {
		panic("Got invalid call depth. Expected depth >= 1.")
	}
	return func(opts *Options) {
		opts.MaxCallDepth = depth
	}
}

// WithStore sets the backing account store. Defaults to an in-memory store.
func WithStore(store storage.AccountStore) Option {
	return func(opts *Options) {
		opts.Store = store
	}
}
